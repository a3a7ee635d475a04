package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myapp2768/DSAS/internal/wms/entity"
	"github.com/myapp2768/DSAS/internal/wms/service"
)

// MaterialHandler 农资物料处理器
type MaterialHandler struct {
	svc       *service.MaterialService
	reportSvc *service.ReportService
}

// NewMaterialHandler 创建农资物料处理器
func NewMaterialHandler(svc *service.MaterialService, reportSvc *service.ReportService) *MaterialHandler {
	return &MaterialHandler{svc: svc, reportSvc: reportSvc}
}

// MaterialRequest 物料创建/更新请求
type MaterialRequest struct {
	InternalCode  string  `json:"internal_code"`
	Category      string  `json:"category" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Brand         string  `json:"brand"`
	Specification string  `json:"specification"`
	Unit          string  `json:"unit"`
	Content       float64 `json:"content"`
	UnitPrice     float64 `json:"unit_price" binding:"gte=0"`
	PricePerUnit  float64 `json:"price_per_unit" binding:"gte=0"`
	Remark        string  `json:"remark"`
}

func (r *MaterialRequest) toEntity() *entity.Material {
	return &entity.Material{
		InternalCode:  r.InternalCode,
		Category:      r.Category,
		Name:          r.Name,
		Brand:         r.Brand,
		Specification: r.Specification,
		Unit:          r.Unit,
		Content:       r.Content,
		UnitPrice:     r.UnitPrice,
		PricePerUnit:  r.PricePerUnit,
		Remark:        r.Remark,
	}
}

// Create POST /materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	material := req.toEntity()
	if err := h.svc.Create(c.Request.Context(), material); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

// Get GET /materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	material, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// GetByCode GET /materials/code/:code
func (h *MaterialHandler) GetByCode(c *gin.Context) {
	material, err := h.svc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// List GET /materials
func (h *MaterialHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword":  c.Query("keyword"),
		"category": c.Query("category"),
		"brand":    c.Query("brand"),
	}
	if active := c.Query("active"); active != "" {
		if v, err := strconv.ParseBool(active); err == nil {
			filters["active"] = v
		}
	}

	materials, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: materials, Total: total, Page: page, PageSize: pageSize})
}

// ListByCategory GET /materials/category/:category
func (h *MaterialHandler) ListByCategory(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{"category": c.Param("category")}

	materials, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: materials, Total: total, Page: page, PageSize: pageSize})
}

// Search GET /materials/search?name=
func (h *MaterialHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		Fail(c, http.StatusBadRequest, "name is required")
		return
	}

	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{"keyword": name}

	materials, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: materials, Total: total, Page: page, PageSize: pageSize})
}

// Update PUT /materials/:id
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	material, err := h.svc.Update(c.Request.Context(), id, req.toEntity())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// Delete DELETE /materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BatchDeleteRequest 批量删除请求
type BatchDeleteRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// DeleteBatch DELETE /materials/batch
func (h *MaterialHandler) DeleteBatch(c *gin.Context) {
	var req BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ok := h.svc.DeleteBatch(c.Request.Context(), req.IDs)
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

// ToggleStatus PUT /materials/:id/toggle-status
func (h *MaterialHandler) ToggleStatus(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	material, err := h.svc.ToggleActive(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// GenerateCode GET /materials/generate-code
func (h *MaterialHandler) GenerateCode(c *gin.Context) {
	code, err := h.svc.GenerateCode(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"internal_code": code})
}

// CheckCode GET /materials/check-code/:code
func (h *MaterialHandler) CheckCode(c *gin.Context) {
	available, err := h.svc.CheckCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// ListCategories GET /materials/categories
func (h *MaterialHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListBrands GET /materials/brands
func (h *MaterialHandler) ListBrands(c *gin.Context) {
	brands, err := h.svc.Brands(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// Statistics GET /materials/statistics
func (h *MaterialHandler) Statistics(c *gin.Context) {
	stats, err := h.svc.Statistics(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export GET /materials/export
func (h *MaterialHandler) Export(c *gin.Context) {
	f, filename, err := h.reportSvc.ExportMaterials(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		Fail(c, http.StatusInternalServerError, "write excel: "+err.Error())
	}
}
