package entity

import (
	"time"
)

// Stock 库存汇总，每个物料一条，由已完成的出入库记录推导
type Stock struct {
	ID                int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	MaterialID        int64      `json:"material_id" gorm:"not null;uniqueIndex"`
	CurrentQuantity   float64    `json:"current_quantity" gorm:"type:decimal(10,2);not null;default:0"`
	ReservedQuantity  float64    `json:"reserved_quantity" gorm:"type:decimal(10,2);not null;default:0"`
	AvailableQuantity float64    `json:"available_quantity" gorm:"type:decimal(10,2);not null;default:0"`
	SafetyStock       float64    `json:"safety_stock" gorm:"type:decimal(10,2);not null;default:0"`
	MaxStock          float64    `json:"max_stock" gorm:"type:decimal(10,2);not null;default:0"`
	AveragePrice      float64    `json:"average_price" gorm:"type:decimal(10,4);not null;default:0"`
	TotalValue        float64    `json:"total_value" gorm:"type:decimal(15,2);not null;default:0"`
	LastInDate        *time.Time `json:"last_in_date"`
	LastOutDate       *time.Time `json:"last_out_date"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (Stock) TableName() string {
	return "stocks"
}

// RecalcDerived 重算派生字段：可用库存 = 当前库存 - 预留库存，总价值 = 当前库存 × 平均价格。
// 派生字段只在这里更新，不在字段赋值时隐式触发。
func (s *Stock) RecalcDerived() {
	s.AvailableQuantity = s.CurrentQuantity - s.ReservedQuantity
	s.TotalValue = s.CurrentQuantity * s.AveragePrice
}

// IsBelowSafetyStock 是否低于安全库存
func (s *Stock) IsBelowSafetyStock() bool {
	return s.CurrentQuantity < s.SafetyStock
}

// IsAboveMaxStock 是否超过最大库存
func (s *Stock) IsAboveMaxStock() bool {
	return s.MaxStock > 0 && s.CurrentQuantity > s.MaxStock
}
