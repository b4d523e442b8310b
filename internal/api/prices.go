package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"suedtirol/server/config"
	"suedtirol/server/internal/dataset"
	"suedtirol/server/internal/models"
	"suedtirol/server/internal/pipeline"
)

type priceQuery struct {
	Type      string   `form:"type"`
	Zone      string   `form:"zone"`
	Condition string   `form:"condition"`
	Entities  []string `form:"entity"`
}

// selection resolves the dropdown labels, falling back to the first option
// of each list.
func (q priceQuery) selection() (models.PriceSelection, error) {
	typeLabel, zoneLabel, condLabel := q.Type, q.Zone, q.Condition
	if typeLabel == "" {
		typeLabel = config.PropertyTypes[0].Label
	}
	if zoneLabel == "" {
		zoneLabel = config.Zones[0].Label
	}
	if condLabel == "" {
		condLabel = config.Conditions[0].Label
	}
	return pipeline.ResolvePriceSelection(typeLabel, zoneLabel, condLabel)
}

func (h *Handler) bindPriceQuery(c *gin.Context) (priceQuery, models.PriceSelection, bool) {
	var q priceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondError(c, &queryError{param: "query", value: c.Request.URL.RawQuery}, "Failed to parse price query")
		return q, models.PriceSelection{}, false
	}
	sel, err := q.selection()
	if err != nil {
		h.respondError(c, err, "Unknown price selection")
		return q, models.PriceSelection{}, false
	}
	return q, sel, true
}

// GetPriceMunicipalities lists the municipalities present in a price slice.
func (h *Handler) GetPriceMunicipalities(c *gin.Context) {
	_, sel, ok := h.bindPriceQuery(c)
	if !ok {
		return
	}
	catalog, ok := h.catalog(c, dataset.DatasetPrices)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selection":      sel,
		"municipalities": pipeline.EntityOptions(pipeline.PriceSlice(catalog.Prices, sel)),
	})
}

func (h *Handler) priceComparison(c *gin.Context) (*pipeline.ComparisonResult, bool) {
	q, sel, ok := h.bindPriceQuery(c)
	if !ok {
		return nil, false
	}
	catalog, ok := h.catalog(c, dataset.DatasetPrices)
	if !ok {
		return nil, false
	}

	entities := q.Entities
	if len(entities) == 0 {
		// same preselection as the dropdowns: the first three options
		entities = pipeline.EntityOptions(pipeline.PriceSlice(catalog.Prices, sel))
		if len(entities) > pipeline.MaxComparedEntities {
			entities = entities[:pipeline.MaxComparedEntities]
		}
		if len(entities) < pipeline.MinComparedEntities {
			return pipeline.EmptyPriceComparison(entities), true
		}
	}

	result, err := pipeline.PriceComparison(catalog.Prices, sel, entities)
	if err != nil {
		h.respondError(c, err, "Failed to build price comparison")
		return nil, false
	}
	return result, true
}

func (h *Handler) GetPriceComparison(c *gin.Context) {
	result, ok := h.priceComparison(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetPriceComparisonChart(c *gin.Context) {
	result, ok := h.priceComparison(c)
	if !ok {
		return
	}
	h.renderChart(c, result, "Vergleich der mittleren Verkaufspreise")
}

// GetPriceRanking returns the most and least expensive municipalities of a
// slice for one year.
func (h *Handler) GetPriceRanking(c *gin.Context) {
	_, sel, ok := h.bindPriceQuery(c)
	if !ok {
		return
	}
	rq, err := parseRankingQuery(c)
	if err != nil {
		h.respondError(c, err, "Invalid ranking query")
		return
	}
	catalog, ok := h.catalog(c, dataset.DatasetPrices)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, pipeline.PriceRanking(catalog.Prices, sel, rq.Year, rq.N))
}
