package service

import "errors"

// 店铺相关错误
var (
	ErrStoreNotFound = errors.New("store not found")
	ErrStoreInactive = errors.New("store inactive")
	ErrStoreInvalid  = errors.New("store invalid")
	ErrSlugExists    = errors.New("slug already exists")
	ErrSlugExhausted = errors.New("slug candidates exhausted")
)

// 商品/分类相关错误
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrProductInvalid      = errors.New("product invalid")
	ErrStockInsufficient   = errors.New("stock insufficient")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInvalid     = errors.New("category invalid")
	ErrCategoryInUse       = errors.New("category has products")
)

// 购物车相关错误
var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrCartEmpty       = errors.New("cart empty")
	ErrCartItemInvalid = errors.New("cart item invalid")
)

// 优惠码相关错误
var (
	ErrDiscountInvalid    = errors.New("discount invalid")
	ErrDiscountNotFound   = errors.New("discount not found")
	ErrDiscountExhausted  = errors.New("discount usage exhausted")
	ErrDiscountCodeExists = errors.New("discount code already exists")
)

// 订单/支付相关错误
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderInvalid         = errors.New("order invalid")
	ErrOrderStatusInvalid   = errors.New("order status transition invalid")
	ErrPaymentDeclined      = errors.New("payment declined")
	ErrPaymentMethodInvalid = errors.New("payment method invalid")
)
