package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"suedtirol/server/config"
	"suedtirol/server/internal/dataset"
	"suedtirol/server/internal/models"
	"suedtirol/server/internal/pipeline"
)

// incomeFlow describes one of the two income dashboards.
type incomeFlow struct {
	name        string
	datasetName string
	title       string
	records     func(*dataset.Catalog) []models.IncomeRecord
	pinned      []string
	averageName string
	defaults    []string
}

var regionFlow = incomeFlow{
	name:        "regions",
	datasetName: dataset.DatasetIncomeRegions,
	title:       "Vergleich: Südtirol mit anderen Regionen",
	records:     func(c *dataset.Catalog) []models.IncomeRecord { return c.IncomeRegions },
	pinned:      []string{config.HomeProvince, config.RegionAverageName},
	averageName: config.RegionAverageName,
	defaults:    config.DefaultRegions,
}

var municipalityFlow = incomeFlow{
	name:        "municipalities",
	datasetName: dataset.DatasetIncomeMunicipalities,
	title:       "Vergleich: Südtiroler Gemeinden",
	records:     func(c *dataset.Catalog) []models.IncomeRecord { return c.IncomeMunicipalities },
	pinned:      []string{config.MunicipalityAverageName},
	averageName: config.MunicipalityAverageName,
	defaults:    config.DefaultMunicipalities,
}

type incomeQuery struct {
	Category string   `form:"category"`
	Entities []string `form:"entity"`
}

func (h *Handler) bindIncomeQuery(c *gin.Context) (incomeQuery, models.IncomeSelection, bool) {
	var q incomeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondError(c, &queryError{param: "query", value: c.Request.URL.RawQuery}, "Failed to parse income query")
		return q, models.IncomeSelection{}, false
	}
	label := q.Category
	if label == "" {
		label = config.IncomeCategories[0].Label
	}
	sel, err := pipeline.ResolveIncomeSelection(label)
	if err != nil {
		h.respondError(c, err, "Unknown income category")
		return q, models.IncomeSelection{}, false
	}
	return q, sel, true
}

func (h *Handler) incomeComparison(c *gin.Context, flow incomeFlow) (*pipeline.ComparisonResult, bool) {
	q, sel, ok := h.bindIncomeQuery(c)
	if !ok {
		return nil, false
	}
	catalog, ok := h.catalog(c, flow.datasetName)
	if !ok {
		return nil, false
	}

	entities := q.Entities
	if len(entities) == 0 {
		entities = flow.defaults
	}

	result, err := pipeline.IncomeComparison(flow.records(catalog), sel, entities, flow.pinned, flow.averageName)
	if err != nil {
		h.respondError(c, err, "Failed to build income comparison")
		return nil, false
	}
	return result, true
}

func (h *Handler) GetIncomeComparison(flow incomeFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := h.incomeComparison(c, flow)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (h *Handler) GetIncomeComparisonChart(flow incomeFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := h.incomeComparison(c, flow)
		if !ok {
			return
		}
		h.renderChart(c, result, flow.title)
	}
}

func (h *Handler) GetIncomeRanking(flow incomeFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, sel, ok := h.bindIncomeQuery(c)
		if !ok {
			return
		}
		rq, err := parseRankingQuery(c)
		if err != nil {
			h.respondError(c, err, "Invalid ranking query")
			return
		}
		catalog, ok := h.catalog(c, flow.datasetName)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, pipeline.IncomeRanking(flow.records(catalog), sel, flow.averageName, rq.Year, rq.N))
	}
}

// SetupIncomeRoutes registers the comparison, chart and ranking endpoints of
// both income dashboards.
func SetupIncomeRoutes(group *gin.RouterGroup, handler *Handler) {
	for _, flow := range []incomeFlow{regionFlow, municipalityFlow} {
		g := group.Group("/income/" + flow.name)
		g.GET("/comparison", handler.GetIncomeComparison(flow))
		g.GET("/comparison.png", handler.GetIncomeComparisonChart(flow))
		g.GET("/ranking", handler.GetIncomeRanking(flow))
	}
}
