package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myapp2768/DSAS/internal/wms/entity"
	"github.com/myapp2768/DSAS/internal/wms/service"
)

// StockInHandler 入库处理器
type StockInHandler struct {
	svc *service.InventoryService
}

// NewStockInHandler 创建入库处理器
func NewStockInHandler(svc *service.InventoryService) *StockInHandler {
	return &StockInHandler{svc: svc}
}

// StockInRequest 入库单创建请求
type StockInRequest struct {
	MaterialID      int64      `json:"material_id" binding:"required,gt=0"`
	Quantity        float64    `json:"quantity" binding:"required,gt=0"`
	UnitPrice       float64    `json:"unit_price" binding:"gte=0"`
	Supplier        string     `json:"supplier"`
	BatchNumber     string     `json:"batch_number"`
	StorageLocation string     `json:"storage_location"`
	QualityStatus   string     `json:"quality_status"`
	OperatorName    string     `json:"operator_name"`
	InboundReason   string     `json:"inbound_reason"`
	Remark          string     `json:"remark"`
	ExpiryDate      *time.Time `json:"expiry_date"`
}

// Create POST /inventory/stock-in
func (h *StockInHandler) Create(c *gin.Context) {
	var req StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	record := &entity.StockInRecord{
		MaterialID:      req.MaterialID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		Supplier:        req.Supplier,
		BatchNumber:     req.BatchNumber,
		StorageLocation: req.StorageLocation,
		QualityStatus:   req.QualityStatus,
		OperatorName:    req.OperatorName,
		InboundReason:   req.InboundReason,
		Remark:          req.Remark,
		ExpiryDate:      req.ExpiryDate,
	}
	if err := h.svc.CreateStockIn(c.Request.Context(), record); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Complete PUT /inventory/stock-in/:id/complete
func (h *StockInHandler) Complete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	record, err := h.svc.CompleteStockIn(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Cancel PUT /inventory/stock-in/:id/cancel
func (h *StockInHandler) Cancel(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	record, err := h.svc.CancelStockIn(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Get GET /inventory/stock-in/:id
func (h *StockInHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	record, err := h.svc.GetStockIn(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// List GET /inventory/stock-in
func (h *StockInHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := stockRecordFilters(c)

	records, total, err := h.svc.ListStockIn(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: records, Total: total, Page: page, PageSize: pageSize})
}

// ListByMaterial GET /inventory/stock-in/material/:materialId
func (h *StockInHandler) ListByMaterial(c *gin.Context) {
	materialID, ok := ParamID(c, "materialId")
	if !ok {
		return
	}
	records, err := h.svc.ListStockInByMaterial(c.Request.Context(), materialID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}

// ListByStatus GET /inventory/stock-in/status/:status
func (h *StockInHandler) ListByStatus(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{"status": c.Param("status")}

	records, total, err := h.svc.ListStockIn(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: records, Total: total, Page: page, PageSize: pageSize})
}

// stockRecordFilters 出入库列表共用的查询条件
func stockRecordFilters(c *gin.Context) map[string]interface{} {
	filters := map[string]interface{}{
		"status":        c.Query("status"),
		"supplier":      c.Query("supplier"),
		"customer":      c.Query("customer"),
		"outbound_type": c.Query("outbound_type"),
	}
	if materialID := c.Query("material_id"); materialID != "" {
		if v, err := strconv.ParseInt(materialID, 10, 64); err == nil {
			filters["material_id"] = v
		}
	}
	if start := c.Query("startTime"); start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			filters["start_time"] = t
		}
	}
	if end := c.Query("endTime"); end != "" {
		if t, err := time.Parse(time.RFC3339, end); err == nil {
			filters["end_time"] = t
		}
	}
	return filters
}
