package service

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/myapp2768/DSAS/internal/wms/repository"
)

// 业务错误定义
var (
	ErrDuplicateCode     = errors.New("internal code already exists")
	ErrMaterialInUse     = errors.New("material has related records")
	ErrInvalidState      = errors.New("record state does not allow this operation")
	ErrInsufficientStock = errors.New("insufficient available stock")
)

// Services 服务集合
type Services struct {
	Material  *MaterialService
	Inventory *InventoryService
	Report    *ReportService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *Services {
	inventorySvc := NewInventoryService(repos, rdb, logger)

	return &Services{
		Material:  NewMaterialService(repos, logger),
		Inventory: inventorySvc,
		Report:    NewReportService(repos, rdb, logger),
	}
}
