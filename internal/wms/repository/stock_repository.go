package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/myapp2768/DSAS/internal/wms/entity"
)

// StockRepository 库存仓库
type StockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建库存仓库
func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// FindByMaterialID 根据物料ID查找库存
func (r *StockRepository) FindByMaterialID(ctx context.Context, materialID int64) (*entity.Stock, error) {
	var stock entity.Stock
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("material_id = ?", materialID).
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// List 获取库存列表
func (r *StockRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Stock, int64, error) {
	var stocks []entity.Stock
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Stock{})

	if materialID, ok := filters["material_id"].(int64); ok && materialID > 0 {
		query = query.Where("material_id = ?", materialID)
	}
	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Joins("JOIN agricultural_materials m ON m.id = stocks.material_id").
			Where("m.name ILIKE ? OR m.internal_code ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Material").
		Order("updated_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&stocks).Error
	if err != nil {
		return nil, 0, err
	}

	return stocks, total, nil
}

// ListAll 获取全部库存
func (r *StockRepository) ListAll(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	err := r.db.WithContext(ctx).
		Preload("Material").
		Order("material_id ASC").
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

// Create 创建库存记录
func (r *StockRepository) Create(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

// Save 保存库存记录
func (r *StockRepository) Save(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

// DeleteByMaterialID 删除物料对应的库存记录
func (r *StockRepository) DeleteByMaterialID(ctx context.Context, materialID int64) error {
	return r.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&entity.Stock{}).Error
}

// FindLowStock 低于安全库存的记录
func (r *StockRepository) FindLowStock(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("safety_stock > 0 AND current_quantity < safety_stock").
		Order("current_quantity ASC").
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindOverStock 超过最大库存的记录
func (r *StockRepository) FindOverStock(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("max_stock > 0 AND current_quantity > max_stock").
		Order("current_quantity DESC").
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

// TotalValue 全部库存总价值
func (r *StockRepository) TotalValue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entity.Stock{}).
		Select("COALESCE(SUM(total_value), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// TotalQuantity 全部库存总数量
func (r *StockRepository) TotalQuantity(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entity.Stock{}).
		Select("COALESCE(SUM(current_quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Count 库存记录数
func (r *StockRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Stock{}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
