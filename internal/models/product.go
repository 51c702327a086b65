package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（店铺维度）
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	StoreID       uint           `gorm:"not null;uniqueIndex:idx_product_store_slug" json:"store_id"` // 店铺ID
	CategoryID    *uint          `gorm:"index" json:"category_id,omitempty"`                          // 分类ID
	Slug          string         `gorm:"not null;uniqueIndex:idx_product_store_slug" json:"slug"`     // 唯一标识（店铺内唯一）
	Title         string         `gorm:"not null" json:"title"`                                       // 商品标题
	Description   string         `gorm:"type:text" json:"description"`                                // 商品描述
	PriceAmount   Money          `gorm:"type:decimal(20,0);not null;default:0" json:"price_amount"`   // 价格（最小货币单位）
	Images        StringArray    `gorm:"type:json" json:"images"`                                     // 图片数组
	Tags          StringArray    `gorm:"type:json" json:"tags"`                                       // 标签数组
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`                    // 库存数量（-1 表示不限制）
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                         // 是否上架
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                           // 排序权重
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
