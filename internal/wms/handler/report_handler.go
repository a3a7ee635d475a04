package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myapp2768/DSAS/internal/wms/service"
)

// ReportHandler 报表处理器
type ReportHandler struct {
	svc          *service.ReportService
	inventorySvc *service.InventoryService
}

// NewReportHandler 创建报表处理器
func NewReportHandler(svc *service.ReportService, inventorySvc *service.InventoryService) *ReportHandler {
	return &ReportHandler{svc: svc, inventorySvc: inventorySvc}
}

// Statistics GET /inventory/statistics
func (h *ReportHandler) Statistics(c *gin.Context) {
	stats, err := h.svc.Statistics(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// MaterialStatistics GET /inventory/statistics/material/:id
func (h *ReportHandler) MaterialStatistics(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	stats, err := h.svc.MaterialStatistics(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Alerts GET /inventory/alerts
func (h *ReportHandler) Alerts(c *gin.Context) {
	alerts, err := h.svc.Alerts(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// timeRange 解析 startTime/endTime 查询参数
func timeRange(c *gin.Context) (start, end time.Time, ok bool) {
	var err error
	start, err = time.Parse(time.RFC3339, c.Query("startTime"))
	if err != nil {
		Fail(c, http.StatusBadRequest, "invalid startTime")
		return start, end, false
	}
	end, err = time.Parse(time.RFC3339, c.Query("endTime"))
	if err != nil {
		Fail(c, http.StatusBadRequest, "invalid endTime")
		return start, end, false
	}
	if end.Before(start) {
		Fail(c, http.StatusBadRequest, "endTime must not be before startTime")
		return start, end, false
	}
	return start, end, true
}

// Report GET /inventory/reports?startTime=&endTime=
func (h *ReportHandler) Report(c *gin.Context) {
	start, end, ok := timeRange(c)
	if !ok {
		return
	}
	report, err := h.svc.Report(c.Request.Context(), start, end)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportReport GET /inventory/reports/export?startTime=&endTime=
func (h *ReportHandler) ExportReport(c *gin.Context) {
	start, end, ok := timeRange(c)
	if !ok {
		return
	}
	f, filename, err := h.svc.ExportReport(c.Request.Context(), start, end)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		Fail(c, http.StatusInternalServerError, "write excel: "+err.Error())
	}
}

// ExportReportCSV GET /inventory/reports/csv?startTime=&endTime=
func (h *ReportHandler) ExportReportCSV(c *gin.Context) {
	start, end, ok := timeRange(c)
	if !ok {
		return
	}
	data, filename, err := h.svc.ExportReportCSV(c.Request.Context(), start, end)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, "text/csv; charset=GBK", data)
}

// ListRecordsByMaterial GET /inventory/records/material/:materialId
func (h *ReportHandler) ListRecordsByMaterial(c *gin.Context) {
	materialID, ok := ParamID(c, "materialId")
	if !ok {
		return
	}
	records, err := h.inventorySvc.ListRecordsByMaterial(c.Request.Context(), materialID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}
