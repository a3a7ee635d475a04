package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myapp2768/DSAS/internal/wms/service"
)

// StockHandler 库存处理器
type StockHandler struct {
	svc *service.InventoryService
}

// NewStockHandler 创建库存处理器
func NewStockHandler(svc *service.InventoryService) *StockHandler {
	return &StockHandler{svc: svc}
}

// List GET /inventory/stocks
func (h *StockHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword": c.Query("keyword"),
	}
	if materialID := c.Query("material_id"); materialID != "" {
		if v, err := strconv.ParseInt(materialID, 10, 64); err == nil {
			filters["material_id"] = v
		}
	}

	stocks, total, err := h.svc.ListStocks(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: stocks, Total: total, Page: page, PageSize: pageSize})
}

// GetByMaterial GET /inventory/stocks/material/:materialId
func (h *StockHandler) GetByMaterial(c *gin.Context) {
	materialID, ok := ParamID(c, "materialId")
	if !ok {
		return
	}
	stock, err := h.svc.GetStock(c.Request.Context(), materialID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// ListLowStock GET /inventory/stocks/low-stock
func (h *StockHandler) ListLowStock(c *gin.Context) {
	stocks, err := h.svc.LowStocks(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": stocks})
}

// ListOverStock GET /inventory/stocks/over-stock
func (h *StockHandler) ListOverStock(c *gin.Context) {
	stocks, err := h.svc.OverStocks(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": stocks})
}

// UpdateStockRequest 库存可调字段更新请求
type UpdateStockRequest struct {
	ReservedQuantity *float64 `json:"reserved_quantity" binding:"omitempty,gte=0"`
	SafetyStock      *float64 `json:"safety_stock" binding:"omitempty,gte=0"`
	MaxStock         *float64 `json:"max_stock" binding:"omitempty,gte=0"`
}

// Update PUT /inventory/stocks/:materialId
func (h *StockHandler) Update(c *gin.Context) {
	materialID, ok := ParamID(c, "materialId")
	if !ok {
		return
	}
	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	stock, err := h.svc.UpdateStock(c.Request.Context(), materialID, req.ReservedQuantity, req.SafetyStock, req.MaxStock)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// SetSafetyStock PUT /inventory/stocks/:materialId/safety-stock?safetyStock=
func (h *StockHandler) SetSafetyStock(c *gin.Context) {
	materialID, ok := ParamID(c, "materialId")
	if !ok {
		return
	}
	value, err := strconv.ParseFloat(c.Query("safetyStock"), 64)
	if err != nil || value < 0 {
		Fail(c, http.StatusBadRequest, "invalid safetyStock")
		return
	}

	stock, err := h.svc.SetSafetyStock(c.Request.Context(), materialID, value)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// SetMaxStock PUT /inventory/stocks/:materialId/max-stock?maxStock=
func (h *StockHandler) SetMaxStock(c *gin.Context) {
	materialID, ok := ParamID(c, "materialId")
	if !ok {
		return
	}
	value, err := strconv.ParseFloat(c.Query("maxStock"), 64)
	if err != nil || value < 0 {
		Fail(c, http.StatusBadRequest, "invalid maxStock")
		return
	}

	stock, err := h.svc.SetMaxStock(c.Request.Context(), materialID, value)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}
