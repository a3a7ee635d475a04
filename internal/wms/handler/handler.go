package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myapp2768/DSAS/internal/wms/repository"
	"github.com/myapp2768/DSAS/internal/wms/service"
)

// Handlers 处理器集合
type Handlers struct {
	Material *MaterialHandler
	Stock    *StockHandler
	StockIn  *StockInHandler
	StockOut *StockOutHandler
	Report   *ReportHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Material: NewMaterialHandler(svc.Material, svc.Report),
		Stock:    NewStockHandler(svc.Inventory),
		StockIn:  NewStockInHandler(svc.Inventory),
		StockOut: NewStockOutHandler(svc.Inventory),
		Report:   NewReportHandler(svc.Report, svc.Inventory),
	}
}

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// ListResponse 列表响应体
type ListResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// Fail 错误响应
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

// HandleError 业务错误映射为HTTP状态码
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateCode),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrInsufficientStock):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMaterialInUse):
		Fail(c, http.StatusConflict, err.Error())
	default:
		Fail(c, http.StatusInternalServerError, err.Error())
	}
}

// GetPagination 从请求获取分页参数
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

// ParamID 解析路径参数里的数字ID，非法时写入400响应并返回false
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		Fail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
