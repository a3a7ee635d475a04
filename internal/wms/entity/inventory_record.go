package entity

import (
	"time"
)

// OperationType 库存流水操作类型
const (
	OperationTypeIn       = "IN"       // 入库
	OperationTypeOut      = "OUT"      // 出库
	OperationTypeAdjust   = "ADJUST"   // 调整
	OperationTypeTransfer = "TRANSFER" // 调拨
)

// InventoryRecord 库存流水，追加写入，不做修改和删除
type InventoryRecord struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	MaterialID     int64     `json:"material_id" gorm:"not null;index"`
	OperationType  string    `json:"operation_type" gorm:"size:16;not null;index"`
	Quantity       float64   `json:"quantity" gorm:"type:decimal(10,2);not null"`
	BeforeQuantity float64   `json:"before_quantity" gorm:"type:decimal(10,2);not null"`
	AfterQuantity  float64   `json:"after_quantity" gorm:"type:decimal(10,2);not null"`
	UnitPrice      float64   `json:"unit_price" gorm:"type:decimal(10,4)"`
	TotalAmount    float64   `json:"total_amount" gorm:"type:decimal(15,2)"`
	RelatedNumber  string    `json:"related_number" gorm:"size:50;index"`
	OperatorName   string    `json:"operator_name" gorm:"size:50"`
	Remark         string    `json:"remark" gorm:"size:200"`
	OperatedAt     time.Time `json:"operated_at" gorm:"not null;index"`
	CreatedAt      time.Time `json:"created_at"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (InventoryRecord) TableName() string {
	return "inventory_records"
}
