package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/myapp2768/DSAS/internal/wms/entity"
)

// MaterialRepository 农资物料仓库
type MaterialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository 创建农资物料仓库
func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// FindByID 根据ID查找物料
func (r *MaterialRepository) FindByID(ctx context.Context, id int64) (*entity.Material, error) {
	var material entity.Material
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&material).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// FindByCode 根据内部编码查找物料
func (r *MaterialRepository) FindByCode(ctx context.Context, code string) (*entity.Material, error) {
	var material entity.Material
	err := r.db.WithContext(ctx).
		Where("internal_code = ?", code).
		First(&material).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// ExistsByCode 内部编码是否已存在
func (r *MaterialRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Material{}).
		Where("internal_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建物料
func (r *MaterialRepository) Create(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

// Update 更新物料
func (r *MaterialRepository) Update(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

// Delete 删除物料
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&entity.Material{}, id).Error
}

// DeleteBatch 批量删除物料
func (r *MaterialRepository) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.db.WithContext(ctx).Delete(&entity.Material{}, ids).Error
}

// List 获取物料列表
func (r *MaterialRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Material, int64, error) {
	var materials []entity.Material
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Material{})

	// 应用过滤条件
	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("name ILIKE ? OR internal_code ILIKE ? OR brand ILIKE ?",
			"%"+keyword+"%", "%"+keyword+"%", "%"+keyword+"%")
	}
	if category, ok := filters["category"].(string); ok && category != "" {
		query = query.Where("category = ?", category)
	}
	if brand, ok := filters["brand"].(string); ok && brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if active, ok := filters["active"].(bool); ok {
		query = query.Where("active = ?", active)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&materials).Error
	if err != nil {
		return nil, 0, err
	}

	return materials, total, nil
}

// ListAll 获取全部物料，用于导出
func (r *MaterialRepository) ListAll(ctx context.Context) ([]entity.Material, error) {
	var materials []entity.Material
	err := r.db.WithContext(ctx).
		Order("internal_code ASC").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

// MaxInternalCode 当前最大内部编码，格式 XS-NNNN，没有记录时返回空串
func (r *MaterialRepository) MaxInternalCode(ctx context.Context) (string, error) {
	var code string
	err := r.db.WithContext(ctx).
		Model(&entity.Material{}).
		Select("internal_code").
		Where("internal_code LIKE ?", "XS-%").
		Order("internal_code DESC").
		Limit(1).
		Scan(&code).Error
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}

// Categories 去重后的分类列表
func (r *MaterialRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&entity.Material{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Brands 去重后的品牌列表
func (r *MaterialRepository) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	err := r.db.WithContext(ctx).
		Model(&entity.Material{}).
		Distinct("brand").
		Where("brand <> ''").
		Order("brand ASC").
		Pluck("brand", &brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// Statistics 物料主数据统计
func (r *MaterialRepository) Statistics(ctx context.Context) (*entity.MaterialStatistics, error) {
	var stats entity.MaterialStatistics

	model := r.db.WithContext(ctx).Model(&entity.Material{})
	if err := model.Count(&stats.TotalCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.Material{}).
		Where("active = ?", true).Count(&stats.ActiveCount).Error; err != nil {
		return nil, err
	}
	stats.InactiveCount = stats.TotalCount - stats.ActiveCount

	if err := r.db.WithContext(ctx).Model(&entity.Material{}).
		Distinct("category").Where("category <> ''").Count(&stats.CategoryCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.Material{}).
		Distinct("brand").Where("brand <> ''").Count(&stats.BrandCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
