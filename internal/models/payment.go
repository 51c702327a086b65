package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment 支付记录
type Payment struct {
	ID              uint           `gorm:"primarykey" json:"id"`                              // 主键
	OrderID         uint           `gorm:"index;not null" json:"order_id"`                    // 订单ID
	StoreID         uint           `gorm:"index;not null" json:"store_id"`                    // 店铺ID
	Amount          Money          `gorm:"type:decimal(20,0);not null" json:"amount"`         // 支付金额（最小货币单位）
	Currency        string         `gorm:"not null" json:"currency"`                          // 币种
	Method          string         `gorm:"not null" json:"method"`                            // 支付方式（card/wallet/cod）
	Status          string         `gorm:"index;not null" json:"status"`                      // 支付状态
	ProviderRef     string         `gorm:"index" json:"provider_ref"`                         // 网关流水号
	ProviderPayload JSON           `gorm:"type:json" json:"provider_payload"`                 // 网关回执数据
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                           // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
