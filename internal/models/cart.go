package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车（店面会话维度）
type Cart struct {
	ID         uint           `gorm:"primarykey" json:"id"`                 // 主键
	Token      string         `gorm:"uniqueIndex;not null" json:"token"`    // 购物车令牌（对外标识）
	StoreID    uint           `gorm:"index;not null" json:"store_id"`       // 店铺ID
	CustomerID *uint          `gorm:"index" json:"customer_id,omitempty"`   // 顾客ID（游客购物车为空）
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
