package models

import (
	"time"

	"gorm.io/gorm"
)

// Store 店铺（租户）
type Store struct {
	ID           uint           `gorm:"primarykey" json:"id"`                               // 主键
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`                   // 店铺唯一标识（用于店面路由）
	Name         string         `gorm:"not null" json:"name"`                               // 店铺名称
	Description  string         `gorm:"type:text" json:"description"`                       // 店铺描述
	Currency     string         `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"` // 结算币种
	SettingsJSON JSON           `gorm:"type:json" json:"settings"`                          // 店铺配置
	IsActive     bool           `gorm:"not null;default:true;index" json:"is_active"`       // 是否启用
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                            // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
