package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`                          // 订单编号
	StoreID        uint           `gorm:"index;not null" json:"store_id"`                                // 店铺ID
	CustomerID     *uint          `gorm:"index" json:"customer_id,omitempty"`                            // 顾客ID（游客订单为空）
	CustomerEmail  string         `gorm:"index" json:"customer_email,omitempty"`                         // 顾客邮箱
	Status         string         `gorm:"index;not null" json:"status"`                                  // 订单状态
	Currency       string         `gorm:"not null" json:"currency"`                                      // 币种
	SubtotalAmount Money          `gorm:"type:decimal(20,0);not null;default:0" json:"subtotal_amount"`  // 折前金额
	DiscountAmount Money          `gorm:"type:decimal(20,0);not null;default:0" json:"discount_amount"`  // 优惠金额
	TotalAmount    Money          `gorm:"type:decimal(20,0);not null;default:0" json:"total_amount"`     // 实付金额
	DiscountID     *uint          `gorm:"index" json:"discount_id,omitempty"`                            // 优惠码ID
	ClientIP       string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                   // 下单客户端IP
	ExpiresAt      *time.Time     `gorm:"index" json:"expires_at"`                                       // 待处理超时时间
	CanceledAt     *time.Time     `gorm:"index" json:"canceled_at"`                                      // 取消时间
	DeliveredAt    *time.Time     `gorm:"index" json:"delivered_at"`                                     // 交付时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`    // 订单项
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"` // 支付记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
