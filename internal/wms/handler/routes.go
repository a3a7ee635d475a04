package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册全部业务路由
func RegisterRoutes(api *gin.RouterGroup, h *Handlers) {
	materials := api.Group("/materials")
	{
		materials.POST("", h.Material.Create)
		materials.GET("", h.Material.List)
		materials.GET("/search", h.Material.Search)
		materials.GET("/generate-code", h.Material.GenerateCode)
		materials.GET("/check-code/:code", h.Material.CheckCode)
		materials.GET("/code/:code", h.Material.GetByCode)
		materials.GET("/category/:category", h.Material.ListByCategory)
		materials.GET("/categories", h.Material.ListCategories)
		materials.GET("/brands", h.Material.ListBrands)
		materials.GET("/statistics", h.Material.Statistics)
		materials.GET("/export", h.Material.Export)
		materials.DELETE("/batch", h.Material.DeleteBatch)
		materials.GET("/:id", h.Material.Get)
		materials.PUT("/:id", h.Material.Update)
		materials.DELETE("/:id", h.Material.Delete)
		materials.PUT("/:id/toggle-status", h.Material.ToggleStatus)
	}

	inventory := api.Group("/inventory")
	{
		stocks := inventory.Group("/stocks")
		{
			stocks.GET("", h.Stock.List)
			stocks.GET("/low-stock", h.Stock.ListLowStock)
			stocks.GET("/over-stock", h.Stock.ListOverStock)
			stocks.GET("/material/:materialId", h.Stock.GetByMaterial)
			stocks.PUT("/:materialId", h.Stock.Update)
			stocks.PUT("/:materialId/safety-stock", h.Stock.SetSafetyStock)
			stocks.PUT("/:materialId/max-stock", h.Stock.SetMaxStock)
		}

		stockIn := inventory.Group("/stock-in")
		{
			stockIn.POST("", h.StockIn.Create)
			stockIn.GET("", h.StockIn.List)
			stockIn.GET("/material/:materialId", h.StockIn.ListByMaterial)
			stockIn.GET("/status/:status", h.StockIn.ListByStatus)
			stockIn.GET("/:id", h.StockIn.Get)
			stockIn.PUT("/:id/complete", h.StockIn.Complete)
			stockIn.PUT("/:id/cancel", h.StockIn.Cancel)
		}

		stockOut := inventory.Group("/stock-out")
		{
			stockOut.POST("", h.StockOut.Create)
			stockOut.GET("", h.StockOut.List)
			stockOut.GET("/material/:materialId", h.StockOut.ListByMaterial)
			stockOut.GET("/status/:status", h.StockOut.ListByStatus)
			stockOut.GET("/:id", h.StockOut.Get)
			stockOut.PUT("/:id/complete", h.StockOut.Complete)
			stockOut.PUT("/:id/cancel", h.StockOut.Cancel)
		}

		inventory.GET("/records/material/:materialId", h.Report.ListRecordsByMaterial)

		inventory.GET("/statistics", h.Report.Statistics)
		inventory.GET("/statistics/material/:id", h.Report.MaterialStatistics)
		inventory.GET("/alerts", h.Report.Alerts)
		inventory.GET("/reports", h.Report.Report)
		inventory.GET("/reports/export", h.Report.ExportReport)
		inventory.GET("/reports/csv", h.Report.ExportReportCSV)
	}
}
