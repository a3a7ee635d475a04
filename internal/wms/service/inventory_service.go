package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/myapp2768/DSAS/internal/wms/entity"
	"github.com/myapp2768/DSAS/internal/wms/repository"
)

// statisticsCacheKey 库存统计的缓存键，出入库完成时失效
const statisticsCacheKey = "wms:inventory:statistics"

// InventoryService 库存服务，负责出入库单据生命周期和库存汇总
type InventoryService struct {
	repos  *repository.Repositories
	rdb    *redis.Client
	logger *zap.Logger
}

// NewInventoryService 创建库存服务
func NewInventoryService(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *InventoryService {
	return &InventoryService{repos: repos, rdb: rdb, logger: logger}
}

// ============================================================
// 库存汇总
// ============================================================

// GetStock 获取物料库存，没有记录时重算出一条
func (s *InventoryService) GetStock(ctx context.Context, materialID int64) (*entity.Stock, error) {
	stock, err := s.repos.Stock.FindByMaterialID(ctx, materialID)
	if err == nil {
		return stock, nil
	}
	if err != repository.ErrNotFound {
		return nil, err
	}
	return s.Recompute(ctx, materialID)
}

// ListStocks 获取库存列表
func (s *InventoryService) ListStocks(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Stock, int64, error) {
	return s.repos.Stock.List(ctx, page, pageSize, filters)
}

// LowStocks 低于安全库存的物料
func (s *InventoryService) LowStocks(ctx context.Context) ([]entity.Stock, error) {
	return s.repos.Stock.FindLowStock(ctx)
}

// OverStocks 超过最大库存的物料
func (s *InventoryService) OverStocks(ctx context.Context) ([]entity.Stock, error) {
	return s.repos.Stock.FindOverStock(ctx)
}

// UpdateStock 更新库存的可调字段（预留、安全、最大库存），并重算派生字段
func (s *InventoryService) UpdateStock(ctx context.Context, materialID int64, reserved, safety, max *float64) (*entity.Stock, error) {
	stock, err := s.GetStock(ctx, materialID)
	if err != nil {
		return nil, err
	}

	if reserved != nil {
		stock.ReservedQuantity = *reserved
	}
	if safety != nil {
		stock.SafetyStock = *safety
	}
	if max != nil {
		stock.MaxStock = *max
	}
	stock.RecalcDerived()

	if err := s.repos.Stock.Save(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// SetSafetyStock 设置安全库存
func (s *InventoryService) SetSafetyStock(ctx context.Context, materialID int64, value float64) (*entity.Stock, error) {
	return s.UpdateStock(ctx, materialID, nil, &value, nil)
}

// SetMaxStock 设置最大库存
func (s *InventoryService) SetMaxStock(ctx context.Context, materialID int64, value float64) (*entity.Stock, error) {
	return s.UpdateStock(ctx, materialID, nil, nil, &value)
}

// Recompute 从已完成的出入库记录重算物料库存，没有库存行时新建
func (s *InventoryService) Recompute(ctx context.Context, materialID int64) (*entity.Stock, error) {
	material, err := s.repos.Material.FindByID(ctx, materialID)
	if err != nil {
		return nil, err
	}

	totalIn, err := s.repos.StockIn.SumCompletedQuantityByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	totalOut, err := s.repos.StockOut.SumCompletedQuantityByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	lastIn, err := s.repos.StockIn.LatestCompletedDate(ctx, materialID)
	if err != nil {
		return nil, err
	}
	lastOut, err := s.repos.StockOut.LatestCompletedDate(ctx, materialID)
	if err != nil {
		return nil, err
	}

	stock, err := s.repos.Stock.FindByMaterialID(ctx, materialID)
	if err != nil {
		if err != repository.ErrNotFound {
			return nil, err
		}
		stock = &entity.Stock{MaterialID: materialID}
	}

	stock.CurrentQuantity = totalIn - totalOut
	// 平均价格取物料档案的单价，不按批次加权
	stock.AveragePrice = material.UnitPrice
	stock.LastInDate = lastIn
	stock.LastOutDate = lastOut
	stock.RecalcDerived()

	if stock.ID == 0 {
		if err := s.repos.Stock.Create(ctx, stock); err != nil {
			return nil, err
		}
	} else {
		if err := s.repos.Stock.Save(ctx, stock); err != nil {
			return nil, err
		}
	}
	return stock, nil
}

// RecomputeAll 逐个重算全部物料库存
func (s *InventoryService) RecomputeAll(ctx context.Context) error {
	materials, err := s.repos.Material.ListAll(ctx)
	if err != nil {
		return err
	}
	for i := range materials {
		if _, err := s.Recompute(ctx, materials[i].ID); err != nil {
			return fmt.Errorf("recompute material %d: %w", materials[i].ID, err)
		}
	}
	return nil
}

// ============================================================
// 入库
// ============================================================

// CreateStockIn 创建入库单，状态为待处理
func (s *InventoryService) CreateStockIn(ctx context.Context, record *entity.StockInRecord) error {
	material, err := s.repos.Material.FindByID(ctx, record.MaterialID)
	if err != nil {
		return err
	}

	if record.InboundNumber == "" {
		record.InboundNumber = generateDocumentNumber("IN")
	}
	if record.UnitPrice == 0 {
		record.UnitPrice = material.UnitPrice
	}
	record.TotalAmount = record.Quantity * record.UnitPrice
	record.Status = entity.RecordStatusPending

	if err := s.repos.StockIn.Create(ctx, record); err != nil {
		return err
	}
	s.logger.Info("stock-in created",
		zap.String("inbound_number", record.InboundNumber),
		zap.Int64("material_id", record.MaterialID),
		zap.Float64("quantity", record.Quantity))
	return nil
}

// CompleteStockIn 完成入库。只有待处理单据可以完成。
func (s *InventoryService) CompleteStockIn(ctx context.Context, id int64) (*entity.StockInRecord, error) {
	record, err := s.repos.StockIn.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status != entity.RecordStatusPending {
		return nil, fmt.Errorf("%w: stock-in %s is %s", ErrInvalidState, record.InboundNumber, record.Status)
	}

	now := time.Now()
	record.Status = entity.RecordStatusCompleted
	record.InboundDate = &now
	if err := s.repos.StockIn.Save(ctx, record); err != nil {
		return nil, err
	}

	stock, err := s.Recompute(ctx, record.MaterialID)
	if err != nil {
		return nil, err
	}

	if err := s.appendHistory(ctx, record.MaterialID, entity.OperationTypeIn,
		record.Quantity, record.UnitPrice, stock.CurrentQuantity,
		record.InboundNumber, record.OperatorName, record.InboundReason, now); err != nil {
		return nil, err
	}

	s.invalidateStatisticsCache(ctx)
	return record, nil
}

// CancelStockIn 取消入库。只有待处理单据可以取消，取消不影响库存。
func (s *InventoryService) CancelStockIn(ctx context.Context, id int64) (*entity.StockInRecord, error) {
	record, err := s.repos.StockIn.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status != entity.RecordStatusPending {
		return nil, fmt.Errorf("%w: stock-in %s is %s", ErrInvalidState, record.InboundNumber, record.Status)
	}

	record.Status = entity.RecordStatusCancelled
	if err := s.repos.StockIn.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetStockIn 根据ID获取入库单
func (s *InventoryService) GetStockIn(ctx context.Context, id int64) (*entity.StockInRecord, error) {
	return s.repos.StockIn.FindByID(ctx, id)
}

// ListStockIn 获取入库单列表
func (s *InventoryService) ListStockIn(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.StockInRecord, int64, error) {
	return s.repos.StockIn.List(ctx, page, pageSize, filters)
}

// ListStockInByMaterial 物料的入库单列表
func (s *InventoryService) ListStockInByMaterial(ctx context.Context, materialID int64) ([]entity.StockInRecord, error) {
	return s.repos.StockIn.ListByMaterial(ctx, materialID)
}

// ============================================================
// 出库
// ============================================================

// CreateStockOut 创建出库单，校验可用库存后落为待处理
func (s *InventoryService) CreateStockOut(ctx context.Context, record *entity.StockOutRecord) error {
	material, err := s.repos.Material.FindByID(ctx, record.MaterialID)
	if err != nil {
		return err
	}

	stock, err := s.GetStock(ctx, record.MaterialID)
	if err != nil {
		return err
	}
	if stock.AvailableQuantity < record.Quantity {
		return fmt.Errorf("%w: available %.2f, requested %.2f",
			ErrInsufficientStock, stock.AvailableQuantity, record.Quantity)
	}

	if record.OutboundNumber == "" {
		record.OutboundNumber = generateDocumentNumber("OUT")
	}
	if record.UnitPrice == 0 {
		record.UnitPrice = material.UnitPrice
	}
	record.TotalAmount = record.Quantity * record.UnitPrice
	record.Status = entity.RecordStatusPending

	if err := s.repos.StockOut.Create(ctx, record); err != nil {
		return err
	}
	s.logger.Info("stock-out created",
		zap.String("outbound_number", record.OutboundNumber),
		zap.Int64("material_id", record.MaterialID),
		zap.Float64("quantity", record.Quantity))
	return nil
}

// CompleteStockOut 完成出库。只有待处理单据可以完成，完成前再次校验可用库存。
func (s *InventoryService) CompleteStockOut(ctx context.Context, id int64) (*entity.StockOutRecord, error) {
	record, err := s.repos.StockOut.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status != entity.RecordStatusPending {
		return nil, fmt.Errorf("%w: stock-out %s is %s", ErrInvalidState, record.OutboundNumber, record.Status)
	}

	stock, err := s.GetStock(ctx, record.MaterialID)
	if err != nil {
		return nil, err
	}
	if stock.AvailableQuantity < record.Quantity {
		return nil, fmt.Errorf("%w: available %.2f, requested %.2f",
			ErrInsufficientStock, stock.AvailableQuantity, record.Quantity)
	}

	now := time.Now()
	record.Status = entity.RecordStatusCompleted
	record.OutboundDate = &now
	if err := s.repos.StockOut.Save(ctx, record); err != nil {
		return nil, err
	}

	stock, err = s.Recompute(ctx, record.MaterialID)
	if err != nil {
		return nil, err
	}

	if err := s.appendHistory(ctx, record.MaterialID, entity.OperationTypeOut,
		record.Quantity, record.UnitPrice, stock.CurrentQuantity,
		record.OutboundNumber, record.OperatorName, record.OutboundReason, now); err != nil {
		return nil, err
	}

	s.invalidateStatisticsCache(ctx)
	return record, nil
}

// CancelStockOut 取消出库。只有待处理单据可以取消。
func (s *InventoryService) CancelStockOut(ctx context.Context, id int64) (*entity.StockOutRecord, error) {
	record, err := s.repos.StockOut.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status != entity.RecordStatusPending {
		return nil, fmt.Errorf("%w: stock-out %s is %s", ErrInvalidState, record.OutboundNumber, record.Status)
	}

	record.Status = entity.RecordStatusCancelled
	if err := s.repos.StockOut.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetStockOut 根据ID获取出库单
func (s *InventoryService) GetStockOut(ctx context.Context, id int64) (*entity.StockOutRecord, error) {
	return s.repos.StockOut.FindByID(ctx, id)
}

// ListStockOut 获取出库单列表
func (s *InventoryService) ListStockOut(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.StockOutRecord, int64, error) {
	return s.repos.StockOut.List(ctx, page, pageSize, filters)
}

// ListStockOutByMaterial 物料的出库单列表
func (s *InventoryService) ListStockOutByMaterial(ctx context.Context, materialID int64) ([]entity.StockOutRecord, error) {
	return s.repos.StockOut.ListByMaterial(ctx, materialID)
}

// ============================================================
// 库存流水
// ============================================================

// ListRecords 获取库存流水列表
func (s *InventoryService) ListRecords(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.InventoryRecord, int64, error) {
	return s.repos.InventoryRecord.List(ctx, page, pageSize, filters)
}

// ListRecordsByMaterial 物料的库存流水
func (s *InventoryService) ListRecordsByMaterial(ctx context.Context, materialID int64) ([]entity.InventoryRecord, error) {
	return s.repos.InventoryRecord.ListByMaterial(ctx, materialID)
}

// appendHistory 追加一条库存流水，变动前数量由变动后数量反推
func (s *InventoryService) appendHistory(ctx context.Context, materialID int64, operationType string,
	quantity, unitPrice, afterQuantity float64, relatedNumber, operator, remark string, operatedAt time.Time) error {

	before := afterQuantity - quantity
	if operationType == entity.OperationTypeOut {
		before = afterQuantity + quantity
	}

	record := &entity.InventoryRecord{
		MaterialID:     materialID,
		OperationType:  operationType,
		Quantity:       quantity,
		BeforeQuantity: before,
		AfterQuantity:  afterQuantity,
		UnitPrice:      unitPrice,
		TotalAmount:    quantity * unitPrice,
		RelatedNumber:  relatedNumber,
		OperatorName:   operator,
		Remark:         remark,
		OperatedAt:     operatedAt,
	}
	return s.repos.InventoryRecord.Create(ctx, record)
}

// invalidateStatisticsCache 出入库完成后删除统计缓存
func (s *InventoryService) invalidateStatisticsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statisticsCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate statistics cache", zap.Error(err))
	}
}

// generateDocumentNumber 生成单据号：前缀 + 毫秒时间戳后8位
func generateDocumentNumber(prefix string) string {
	millis := time.Now().UnixMilli()
	return fmt.Sprintf("%s%08d", prefix, millis%100000000)
}
