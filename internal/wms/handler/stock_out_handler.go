package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myapp2768/DSAS/internal/wms/entity"
	"github.com/myapp2768/DSAS/internal/wms/service"
)

// StockOutHandler 出库处理器
type StockOutHandler struct {
	svc *service.InventoryService
}

// NewStockOutHandler 创建出库处理器
func NewStockOutHandler(svc *service.InventoryService) *StockOutHandler {
	return &StockOutHandler{svc: svc}
}

// StockOutRequest 出库单创建请求
type StockOutRequest struct {
	MaterialID      int64   `json:"material_id" binding:"required,gt=0"`
	Quantity        float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice       float64 `json:"unit_price" binding:"gte=0"`
	CustomerName    string  `json:"customer_name"`
	CustomerContact string  `json:"customer_contact"`
	OutboundType    string  `json:"outbound_type" binding:"required,oneof=SALE USE TRANSFER LOSS"`
	BatchNumber     string  `json:"batch_number"`
	StorageLocation string  `json:"storage_location"`
	OperatorName    string  `json:"operator_name"`
	OutboundReason  string  `json:"outbound_reason"`
	Remark          string  `json:"remark"`
}

// Create POST /inventory/stock-out
func (h *StockOutHandler) Create(c *gin.Context) {
	var req StockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	record := &entity.StockOutRecord{
		MaterialID:      req.MaterialID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		OutboundType:    req.OutboundType,
		BatchNumber:     req.BatchNumber,
		StorageLocation: req.StorageLocation,
		OperatorName:    req.OperatorName,
		OutboundReason:  req.OutboundReason,
		Remark:          req.Remark,
	}
	if err := h.svc.CreateStockOut(c.Request.Context(), record); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Complete PUT /inventory/stock-out/:id/complete
func (h *StockOutHandler) Complete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	record, err := h.svc.CompleteStockOut(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Cancel PUT /inventory/stock-out/:id/cancel
func (h *StockOutHandler) Cancel(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	record, err := h.svc.CancelStockOut(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Get GET /inventory/stock-out/:id
func (h *StockOutHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	record, err := h.svc.GetStockOut(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// List GET /inventory/stock-out
func (h *StockOutHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := stockRecordFilters(c)

	records, total, err := h.svc.ListStockOut(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: records, Total: total, Page: page, PageSize: pageSize})
}

// ListByMaterial GET /inventory/stock-out/material/:materialId
func (h *StockOutHandler) ListByMaterial(c *gin.Context) {
	materialID, ok := ParamID(c, "materialId")
	if !ok {
		return
	}
	records, err := h.svc.ListStockOutByMaterial(c.Request.Context(), materialID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}

// ListByStatus GET /inventory/stock-out/status/:status
func (h *StockOutHandler) ListByStatus(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{"status": c.Param("status")}

	records, total, err := h.svc.ListStockOut(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: records, Total: total, Page: page, PageSize: pageSize})
}
