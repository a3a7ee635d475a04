package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/myapp2768/DSAS/internal/wms/entity"
	"github.com/myapp2768/DSAS/internal/wms/repository"
)

// MaterialService 农资物料服务
type MaterialService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewMaterialService 创建农资物料服务
func NewMaterialService(repos *repository.Repositories, logger *zap.Logger) *MaterialService {
	return &MaterialService{repos: repos, logger: logger}
}

// Create 创建物料。内部编码为空时自动生成，重复时返回 ErrDuplicateCode。
func (s *MaterialService) Create(ctx context.Context, material *entity.Material) error {
	if material.InternalCode == "" {
		code, err := s.GenerateCode(ctx)
		if err != nil {
			return err
		}
		material.InternalCode = code
	} else {
		exists, err := s.repos.Material.ExistsByCode(ctx, material.InternalCode)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateCode
		}
	}

	material.Active = true

	if err := s.repos.Material.Create(ctx, material); err != nil {
		return err
	}

	// 物料建档时同步建一条零库存记录
	stock := &entity.Stock{
		MaterialID:   material.ID,
		AveragePrice: material.UnitPrice,
	}
	stock.RecalcDerived()
	if err := s.repos.Stock.Create(ctx, stock); err != nil {
		return err
	}

	s.logger.Info("material created",
		zap.Int64("material_id", material.ID),
		zap.String("internal_code", material.InternalCode))
	return nil
}

// GetByID 根据ID获取物料
func (s *MaterialService) GetByID(ctx context.Context, id int64) (*entity.Material, error) {
	return s.repos.Material.FindByID(ctx, id)
}

// GetByCode 根据内部编码获取物料
func (s *MaterialService) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	return s.repos.Material.FindByCode(ctx, code)
}

// List 获取物料列表
func (s *MaterialService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Material, int64, error) {
	return s.repos.Material.List(ctx, page, pageSize, filters)
}

// Update 更新物料，内部编码变更时校验唯一性
func (s *MaterialService) Update(ctx context.Context, id int64, updated *entity.Material) (*entity.Material, error) {
	material, err := s.repos.Material.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.InternalCode != "" && updated.InternalCode != material.InternalCode {
		exists, err := s.repos.Material.ExistsByCode(ctx, updated.InternalCode)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateCode
		}
		material.InternalCode = updated.InternalCode
	}

	material.Category = updated.Category
	material.Name = updated.Name
	material.Brand = updated.Brand
	material.Specification = updated.Specification
	material.Unit = updated.Unit
	material.Content = updated.Content
	material.UnitPrice = updated.UnitPrice
	material.PricePerUnit = updated.PricePerUnit
	material.Remark = updated.Remark

	if err := s.repos.Material.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// Delete 删除物料。存在出入库记录的物料不允许删除。
func (s *MaterialService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repos.Material.FindByID(ctx, id); err != nil {
		return err
	}

	inCount, err := s.repos.StockIn.CountByMaterial(ctx, id)
	if err != nil {
		return err
	}
	outCount, err := s.repos.StockOut.CountByMaterial(ctx, id)
	if err != nil {
		return err
	}
	if inCount > 0 || outCount > 0 {
		return ErrMaterialInUse
	}

	if err := s.repos.Stock.DeleteByMaterialID(ctx, id); err != nil {
		return err
	}
	return s.repos.Material.Delete(ctx, id)
}

// DeleteBatch 批量删除物料，返回是否全部删除成功
func (s *MaterialService) DeleteBatch(ctx context.Context, ids []int64) bool {
	ok := true
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				s.logger.Warn("batch delete skipped material",
					zap.Int64("material_id", id), zap.Error(err))
			}
			ok = false
		}
	}
	return ok
}

// ToggleActive 切换物料启用状态
func (s *MaterialService) ToggleActive(ctx context.Context, id int64) (*entity.Material, error) {
	material, err := s.repos.Material.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	material.Active = !material.Active
	if err := s.repos.Material.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// GenerateCode 生成下一个内部编码，格式 XS-NNNN，从 XS-0001 开始递增
func (s *MaterialService) GenerateCode(ctx context.Context) (string, error) {
	maxCode, err := s.repos.Material.MaxInternalCode(ctx)
	if err != nil {
		return "", err
	}

	seq := 0
	if maxCode != "" {
		suffix := strings.TrimPrefix(maxCode, "XS-")
		n, err := strconv.Atoi(suffix)
		if err != nil {
			return "", fmt.Errorf("unexpected internal code format %q: %w", maxCode, err)
		}
		seq = n
	}

	return fmt.Sprintf("XS-%04d", seq+1), nil
}

// CheckCode 内部编码是否可用
func (s *MaterialService) CheckCode(ctx context.Context, code string) (bool, error) {
	exists, err := s.repos.Material.ExistsByCode(ctx, code)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// Categories 分类列表
func (s *MaterialService) Categories(ctx context.Context) ([]string, error) {
	return s.repos.Material.Categories(ctx)
}

// Brands 品牌列表
func (s *MaterialService) Brands(ctx context.Context) ([]string, error) {
	return s.repos.Material.Brands(ctx)
}

// Statistics 物料主数据统计
func (s *MaterialService) Statistics(ctx context.Context) (*entity.MaterialStatistics, error) {
	return s.repos.Material.Statistics(ctx)
}
