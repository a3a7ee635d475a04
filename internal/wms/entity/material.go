package entity

import (
	"time"
)

// Material 农资物料主数据
type Material struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	InternalCode  string    `json:"internal_code" gorm:"size:20;not null;uniqueIndex"`
	Category      string    `json:"category" gorm:"size:50;not null"`
	Name          string    `json:"name" gorm:"size:100;not null"`
	Brand         string    `json:"brand" gorm:"size:50"`
	Specification string    `json:"specification" gorm:"size:100"`
	Unit          string    `json:"unit" gorm:"size:20"`
	Content       float64   `json:"content" gorm:"type:decimal(10,2)"`
	UnitPrice     float64   `json:"unit_price" gorm:"type:decimal(10,4)"`
	PricePerUnit  float64   `json:"price_per_unit" gorm:"type:decimal(10,4)"`
	Remark        string    `json:"remark" gorm:"type:text"`
	Active        bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Material) TableName() string {
	return "agricultural_materials"
}

// MaterialStatistics 物料主数据统计
type MaterialStatistics struct {
	TotalCount    int64 `json:"total_count"`
	ActiveCount   int64 `json:"active_count"`
	InactiveCount int64 `json:"inactive_count"`
	CategoryCount int64 `json:"category_count"`
	BrandCount    int64 `json:"brand_count"`
}
