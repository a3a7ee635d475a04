package entity

import (
	"time"
)

// RecordStatus 出入库单据状态
const (
	RecordStatusPending   = "PENDING"   // 待处理
	RecordStatusCompleted = "COMPLETED" // 已完成
	RecordStatusCancelled = "CANCELLED" // 已取消
)

// OutboundType 出库类型
const (
	OutboundTypeSale     = "SALE"     // 销售
	OutboundTypeUse      = "USE"      // 自用
	OutboundTypeTransfer = "TRANSFER" // 调拨
	OutboundTypeLoss     = "LOSS"     // 损耗
)

// StockInRecord 入库记录
type StockInRecord struct {
	ID              int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	InboundNumber   string     `json:"inbound_number" gorm:"size:50;not null;uniqueIndex"`
	MaterialID      int64      `json:"material_id" gorm:"not null;index"`
	Quantity        float64    `json:"quantity" gorm:"type:decimal(10,2);not null"`
	UnitPrice       float64    `json:"unit_price" gorm:"type:decimal(10,4)"`
	TotalAmount     float64    `json:"total_amount" gorm:"type:decimal(15,2)"`
	Supplier        string     `json:"supplier" gorm:"size:100"`
	BatchNumber     string     `json:"batch_number" gorm:"size:50"`
	StorageLocation string     `json:"storage_location" gorm:"size:100"`
	QualityStatus   string     `json:"quality_status" gorm:"size:20"`
	OperatorName    string     `json:"operator_name" gorm:"size:50"`
	InboundReason   string     `json:"inbound_reason" gorm:"size:200"`
	Remark          string     `json:"remark" gorm:"type:text"`
	Status          string     `json:"status" gorm:"size:16;not null;default:PENDING"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	InboundDate     *time.Time `json:"inbound_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (StockInRecord) TableName() string {
	return "stock_in_records"
}

// StockOutRecord 出库记录
type StockOutRecord struct {
	ID              int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OutboundNumber  string     `json:"outbound_number" gorm:"size:50;not null;uniqueIndex"`
	MaterialID      int64      `json:"material_id" gorm:"not null;index"`
	Quantity        float64    `json:"quantity" gorm:"type:decimal(10,2);not null"`
	UnitPrice       float64    `json:"unit_price" gorm:"type:decimal(10,4)"`
	TotalAmount     float64    `json:"total_amount" gorm:"type:decimal(15,2)"`
	CustomerName    string     `json:"customer_name" gorm:"size:100"`
	CustomerContact string     `json:"customer_contact" gorm:"size:50"`
	OutboundType    string     `json:"outbound_type" gorm:"size:16;not null"`
	BatchNumber     string     `json:"batch_number" gorm:"size:50"`
	StorageLocation string     `json:"storage_location" gorm:"size:100"`
	OperatorName    string     `json:"operator_name" gorm:"size:50"`
	OutboundReason  string     `json:"outbound_reason" gorm:"size:200"`
	Remark          string     `json:"remark" gorm:"type:text"`
	Status          string     `json:"status" gorm:"size:16;not null;default:PENDING"`
	OutboundDate    *time.Time `json:"outbound_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (StockOutRecord) TableName() string {
	return "stock_out_records"
}
