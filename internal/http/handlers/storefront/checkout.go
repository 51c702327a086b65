package storefront

import (
	"github.com/storeforge-next/internal/http/response"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/service"

	"github.com/gin-gonic/gin"
)

// checkoutPaymentRequest 结算支付信息
type checkoutPaymentRequest struct {
	Method      string                 `json:"method" binding:"required"`
	Status      string                 `json:"status"`
	ProviderRef string                 `json:"provider_ref"`
	Payload     map[string]interface{} `json:"payload"`
}

// checkoutRequest 结算确认请求体
type checkoutRequest struct {
	DiscountCode  string                 `json:"discount_code"`
	CustomerEmail string                 `json:"customer_email"`
	Payment       checkoutPaymentRequest `json:"payment" binding:"required"`
}

// PreviewCheckout 预览结算金额
func (h *Handler) PreviewCheckout(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	preview, err := h.CheckoutService.Preview(store, getCartToken(c), c.Query("discount_code"))
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "failed to preview checkout")
		return
	}
	response.Success(c, preview)
}

// ConfirmCheckout 确认结算：下单、记录支付、核销优惠码、清空购物车
func (h *Handler) ConfirmCheckout(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	token := getCartToken(c)
	if token == "" {
		respondError(c, response.CodeBadRequest, "cart token required", nil)
		return
	}
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	result, err := h.CheckoutService.Confirm(store, service.CheckoutInput{
		StoreID:       store.ID,
		CartToken:     token,
		DiscountCode:  req.DiscountCode,
		CustomerEmail: req.CustomerEmail,
		ClientIP:      c.ClientIP(),
		Payment: service.PaymentInput{
			Method:      req.Payment.Method,
			Status:      req.Payment.Status,
			ProviderRef: req.Payment.ProviderRef,
			Payload:     models.JSON(req.Payment.Payload),
		},
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
		return
	}

	requestLog(c).Infow("checkout_confirmed",
		"store_id", store.ID,
		"order_id", result.Order.ID,
		"order_no", result.Order.OrderNo,
		"total_amount", result.Order.TotalAmount,
		"payment_status", result.PaymentStatus,
	)
	response.Success(c, gin.H{
		"order":          result.Order,
		"payment_status": result.PaymentStatus,
	})
}

// GetOrder 根据订单编号查询订单
func (h *Handler) GetOrder(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetByOrderNo(store.ID, c.Param("order_no"))
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "failed to fetch order")
		return
	}
	response.Success(c, order)
}
