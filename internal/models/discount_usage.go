package models

import (
	"time"

	"gorm.io/gorm"
)

// DiscountUsage 优惠码使用记录
type DiscountUsage struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                         // 主键
	DiscountID uint           `gorm:"index;not null" json:"discount_id"`                            // 优惠码ID
	StoreID    uint           `gorm:"index;not null" json:"store_id"`                               // 店铺ID
	OrderID    uint           `gorm:"index;not null" json:"order_id"`                               // 订单ID
	CustomerID *uint          `gorm:"index" json:"customer_id,omitempty"`                           // 顾客ID
	Amount     Money          `gorm:"type:decimal(20,0);not null;default:0" json:"amount"`          // 优惠金额
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (DiscountUsage) TableName() string {
	return "discount_usages"
}
