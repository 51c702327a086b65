package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
	OrderStatusCanceled   = "canceled"
)

// 支付状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusDeclined  = "declined"
	PaymentStatusRefunded  = "refunded"
)

// 支付方式常量
const (
	PaymentMethodCard   = "card"
	PaymentMethodWallet = "wallet"
	PaymentMethodCOD    = "cod"
)

// 优惠码类型常量
const (
	DiscountTypeFixed      = "fixed"
	DiscountTypePercentage = "percentage"
)

// 队列任务常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskOrderTimeoutCancel = "order:timeout_cancel"
)

// 商品库存常量
const (
	StockUnlimited = -1
)
