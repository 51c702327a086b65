package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 分类表（店铺维度）
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                       // 主键
	StoreID   uint           `gorm:"not null;uniqueIndex:idx_category_store_slug" json:"store_id"` // 店铺ID
	Slug      string         `gorm:"not null;uniqueIndex:idx_category_store_slug" json:"slug"`     // 唯一标识（店铺内唯一）
	Name      string         `gorm:"not null" json:"name"`                                       // 分类名称
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`                          // 排序权重
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`                        // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
