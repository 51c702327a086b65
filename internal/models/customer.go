package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 顾客（店铺维度）
type Customer struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                      // 主键
	StoreID   uint           `gorm:"not null;uniqueIndex:idx_customer_store_email" json:"store_id"` // 店铺ID
	Email     string         `gorm:"not null;uniqueIndex:idx_customer_store_email" json:"email"`    // 邮箱
	Name      string         `gorm:"type:varchar(100)" json:"name"`                             // 姓名
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
