package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/adapter/http/handlers"
)

const (
	PathEstimates = "/estimates"
)

func addEstimateRoutes(rg *gin.RouterGroup, estimateHandler *handlers.EstimateHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.DELETE("/:id", estimateHandler.DeleteEstimate)

		estimates.POST("/:id/refine", estimateHandler.RefineEstimate)

		estimates.POST("/:id/tiers/:tier/items", estimateHandler.AddLineItem)
		estimates.PUT("/:id/tiers/:tier/items/:index", estimateHandler.UpdateLineItem)
		estimates.DELETE("/:id/tiers/:tier/items/:index", estimateHandler.DeleteLineItem)
		estimates.PUT("/:id/tiers/:tier/logistics/:category", estimateHandler.UpdateLogistics)

		estimates.PATCH("/:id/status", estimateHandler.UpdateStatus)
		estimates.PATCH("/:id/details", estimateHandler.UpdateDetails)

		estimates.GET("/:id/export", estimateHandler.ExportEstimate)
	}
}
