package repository

import "time"

// StoreListFilter 查询店铺列表的过滤条件
type StoreListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	StoreID      uint
	CategoryID   uint
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	Page       int
	PageSize   int
	StoreID    uint
	OnlyActive bool
}

// DiscountListFilter 查询优惠码列表的过滤条件
type DiscountListFilter struct {
	Page     int
	PageSize int
	StoreID  uint
	Code     string
	IsActive *bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	StoreID       uint
	CustomerID    uint
	Status        string
	OrderNo       string
	CustomerEmail string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// PaymentListFilter 查询支付列表的过滤条件
type PaymentListFilter struct {
	Page        int
	PageSize    int
	StoreID     uint
	OrderID     uint
	Method      string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// DiscountUsageListFilter 查询优惠码使用记录列表的过滤条件
type DiscountUsageListFilter struct {
	Page       int
	PageSize   int
	StoreID    uint
	DiscountID uint
}
