package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with recovery, request ids, request logging
// and CORS, then registers every route.
func NewRouter(handler *Handler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(handler.logger))

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	router.Use(cors.New(corsConfig))

	SetupRoutes(router, handler)
	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/options", handler.GetOptions)
		api.POST("/datasets/reload", handler.ReloadDatasets)

		api.GET("/prices/municipalities", handler.GetPriceMunicipalities)
		api.GET("/prices/comparison", handler.GetPriceComparison)
		api.GET("/prices/comparison.png", handler.GetPriceComparisonChart)
		api.GET("/prices/ranking", handler.GetPriceRanking)

		SetupIncomeRoutes(api, handler)
	}
}
