package repository

import (
	"errors"

	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	Material        *MaterialRepository
	Stock           *StockRepository
	StockIn         *StockInRepository
	StockOut        *StockOutRepository
	InventoryRecord *InventoryRecordRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Material:        NewMaterialRepository(db),
		Stock:           NewStockRepository(db),
		StockIn:         NewStockInRepository(db),
		StockOut:        NewStockOutRepository(db),
		InventoryRecord: NewInventoryRecordRepository(db),
	}
}
