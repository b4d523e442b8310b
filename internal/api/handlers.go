package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"suedtirol/server/config"
	"suedtirol/server/internal/charts"
	"suedtirol/server/internal/dataset"
	"suedtirol/server/internal/pipeline"
)

const maxRankingSize = 50

var errInvalidQuery = errors.New("invalid query parameter")

type Handler struct {
	holder    *dataset.Holder
	loader    dataset.CatalogLoader
	logger    *logrus.Logger
	chartOpts charts.Options
}

func NewHandler(holder *dataset.Holder, loader dataset.CatalogLoader, chartOpts charts.Options, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		holder:    holder,
		loader:    loader,
		logger:    logger,
		chartOpts: chartOpts,
	}
}

// Health reports "ok" when every dataset is loaded, "degraded" when some
// are missing and "loading" before the first catalog is in place.
func (h *Handler) Health(c *gin.Context) {
	catalog, err := h.holder.Get()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "loading"})
		return
	}

	status := "ok"
	if len(catalog.Errors) > 0 {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             status,
		"datasets_loaded_at": catalog.LoadedAt,
		"datasets":           datasetStates(catalog),
	})
}

// GetOptions returns every dropdown list with its preselected values.
func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"property_types":         config.PropertyTypes,
		"zones":                  config.Zones,
		"conditions":             config.Conditions,
		"income_categories":      config.IncomeCategories,
		"regions":                config.Regions,
		"default_regions":        config.DefaultRegions,
		"municipalities":         config.Municipalities,
		"default_municipalities": config.DefaultMunicipalities,
		"ranking_size":           config.RankingSize,
	})
}

// ReloadDatasets fetches all datasets again and swaps them in when at least
// one of them loaded.
func (h *Handler) ReloadDatasets(c *gin.Context) {
	catalog, err := h.holder.Reload(c.Request.Context(), h.loader)
	if err != nil {
		h.respondError(c, err, "Failed to reload datasets")
		return
	}

	resp := gin.H{
		"loaded_at": catalog.LoadedAt,
		"datasets":  datasetStates(catalog),
	}
	for _, name := range dataset.Datasets {
		resp[name] = catalog.Len(name)
	}
	c.JSON(http.StatusOK, resp)
}

type datasetState struct {
	Rows   int    `json:"rows"`
	Error  string `json:"error,omitempty"`
	Reused bool   `json:"reused,omitempty"`
}

func datasetStates(catalog *dataset.Catalog) map[string]datasetState {
	states := make(map[string]datasetState, len(dataset.Datasets))
	for _, name := range dataset.Datasets {
		st := datasetState{Rows: catalog.Len(name)}
		if err := catalog.Err(name); err != nil {
			st.Error = err.Error()
		} else if err, ok := catalog.Reused[name]; ok {
			st.Error = err.Error()
			st.Reused = true
		}
		states[name] = st
	}
	return states
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidQuery),
		errors.Is(err, pipeline.ErrUnknownSelection),
		errors.Is(err, pipeline.ErrTooFewEntities),
		errors.Is(err, pipeline.ErrTooManyEntities),
		errors.Is(err, pipeline.ErrTooManyPinned):
		return http.StatusBadRequest
	case errors.Is(err, charts.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, dataset.ErrNotLoaded),
		errors.Is(err, dataset.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, dataset.ErrSchemaMismatch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	entry := h.logger.WithError(err).WithField("request_id", c.GetString("request_id"))
	if status >= http.StatusInternalServerError {
		entry.Error(msg)
	} else {
		entry.Warn(msg)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// catalog returns the current catalog when the named dataset is loaded.
func (h *Handler) catalog(c *gin.Context, name string) (*dataset.Catalog, bool) {
	catalog, err := h.holder.Get()
	if err == nil {
		err = catalog.Err(name)
	}
	if err != nil {
		h.respondError(c, err, "Dataset not available")
		return nil, false
	}
	return catalog, true
}

type rankingQuery struct {
	Year *int
	N    int
}

func parseRankingQuery(c *gin.Context) (rankingQuery, error) {
	q := rankingQuery{N: config.RankingSize}

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return q, &queryError{param: "year", value: raw}
		}
		q.Year = &year
	}
	if raw := c.Query("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRankingSize {
			return q, &queryError{param: "n", value: raw}
		}
		q.N = n
	}
	return q, nil
}

type queryError struct {
	param string
	value string
}

func (e *queryError) Error() string {
	return errInvalidQuery.Error() + ": " + e.param + "=" + strconv.Quote(e.value)
}

func (e *queryError) Unwrap() error {
	return errInvalidQuery
}

func (h *Handler) renderChart(c *gin.Context, result *pipeline.ComparisonResult, title string) {
	if result.Axis == nil {
		h.respondError(c, charts.ErrNoData, "Nothing to draw")
		return
	}
	opts := h.chartOpts
	opts.Title = title
	png, err := charts.RenderComparison(result.Table, *result.Axis, opts)
	if err != nil {
		h.respondError(c, err, "Failed to render chart")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
