package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/myapp2768/DSAS/internal/wms/entity"
)

// InventoryRecordRepository 库存流水仓库，只追加不修改
type InventoryRecordRepository struct {
	db *gorm.DB
}

// NewInventoryRecordRepository 创建库存流水仓库
func NewInventoryRecordRepository(db *gorm.DB) *InventoryRecordRepository {
	return &InventoryRecordRepository{db: db}
}

// Create 追加一条流水
func (r *InventoryRecordRepository) Create(ctx context.Context, record *entity.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// List 获取流水列表
func (r *InventoryRecordRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.InventoryRecord, int64, error) {
	var records []entity.InventoryRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryRecord{})

	if materialID, ok := filters["material_id"].(int64); ok && materialID > 0 {
		query = query.Where("material_id = ?", materialID)
	}
	if operationType, ok := filters["operation_type"].(string); ok && operationType != "" {
		query = query.Where("operation_type = ?", operationType)
	}
	if relatedNumber, ok := filters["related_number"].(string); ok && relatedNumber != "" {
		query = query.Where("related_number = ?", relatedNumber)
	}
	if start, ok := filters["start_time"].(time.Time); ok && !start.IsZero() {
		query = query.Where("operated_at >= ?", start)
	}
	if end, ok := filters["end_time"].(time.Time); ok && !end.IsZero() {
		query = query.Where("operated_at <= ?", end)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Material").
		Order("operated_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListByMaterial 物料的全部流水
func (r *InventoryRecordRepository) ListByMaterial(ctx context.Context, materialID int64) ([]entity.InventoryRecord, error) {
	var records []entity.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("operated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListByTimeRange 时间段内的全部流水，用于报表导出
func (r *InventoryRecordRepository) ListByTimeRange(ctx context.Context, start, end time.Time) ([]entity.InventoryRecord, error) {
	var records []entity.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("operated_at >= ? AND operated_at <= ?", start, end).
		Order("operated_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
