package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/myapp2768/DSAS/internal/wms/entity"
)

// StockInRepository 入库记录仓库
type StockInRepository struct {
	db *gorm.DB
}

// NewStockInRepository 创建入库记录仓库
func NewStockInRepository(db *gorm.DB) *StockInRepository {
	return &StockInRepository{db: db}
}

// FindByID 根据ID查找入库记录
func (r *StockInRepository) FindByID(ctx context.Context, id int64) (*entity.StockInRecord, error) {
	var record entity.StockInRecord
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Create 创建入库记录
func (r *StockInRepository) Create(ctx context.Context, record *entity.StockInRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Save 保存入库记录
func (r *StockInRepository) Save(ctx context.Context, record *entity.StockInRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// List 获取入库记录列表
func (r *StockInRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.StockInRecord, int64, error) {
	var records []entity.StockInRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockInRecord{})

	if materialID, ok := filters["material_id"].(int64); ok && materialID > 0 {
		query = query.Where("material_id = ?", materialID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if supplier, ok := filters["supplier"].(string); ok && supplier != "" {
		query = query.Where("supplier ILIKE ?", "%"+supplier+"%")
	}
	if start, ok := filters["start_time"].(time.Time); ok && !start.IsZero() {
		query = query.Where("created_at >= ?", start)
	}
	if end, ok := filters["end_time"].(time.Time); ok && !end.IsZero() {
		query = query.Where("created_at <= ?", end)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Material").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListByMaterial 物料的全部入库记录
func (r *StockInRepository) ListByMaterial(ctx context.Context, materialID int64) ([]entity.StockInRecord, error) {
	var records []entity.StockInRecord
	err := r.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountByMaterial 物料的入库记录数
func (r *StockInRepository) CountByMaterial(ctx context.Context, materialID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.StockInRecord{}).
		Where("material_id = ?", materialID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SumCompletedQuantityByMaterial 物料已完成入库的数量合计
func (r *StockInRepository) SumCompletedQuantityByMaterial(ctx context.Context, materialID int64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entity.StockInRecord{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("material_id = ? AND status = ?", materialID, entity.RecordStatusCompleted).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// SumCompletedByTimeRange 时间段内已完成入库的数量与金额合计
func (r *StockInRepository) SumCompletedByTimeRange(ctx context.Context, start, end time.Time) (quantity, amount float64, err error) {
	row := struct {
		Quantity float64
		Amount   float64
	}{}
	err = r.db.WithContext(ctx).
		Model(&entity.StockInRecord{}).
		Select("COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(total_amount), 0) AS amount").
		Where("status = ? AND inbound_date >= ? AND inbound_date <= ?", entity.RecordStatusCompleted, start, end).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Quantity, row.Amount, nil
}

// CountByStatus 按状态统计入库记录数
func (r *StockInRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.StockInRecord{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// LatestCompletedDate 物料最近一次完成入库的时间
func (r *StockInRepository) LatestCompletedDate(ctx context.Context, materialID int64) (*time.Time, error) {
	var record entity.StockInRecord
	err := r.db.WithContext(ctx).
		Where("material_id = ? AND status = ?", materialID, entity.RecordStatusCompleted).
		Order("inbound_date DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.InboundDate, nil
}
