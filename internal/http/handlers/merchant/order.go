package merchant

import (
	"strconv"
	"strings"

	handlershared "github.com/storeforge-next/internal/http/handlers/shared"
	"github.com/storeforge-next/internal/http/response"
	"github.com/storeforge-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListOrders 获取订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		StoreID:       storeID,
		Status:        strings.TrimSpace(c.Query("status")),
		OrderNo:       strings.TrimSpace(c.Query("order_no")),
		CustomerEmail: strings.ToLower(strings.TrimSpace(c.Query("customer_email"))),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch orders", err)
		return
	}
	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// ListPayments 获取支付记录列表
func (h *Handler) ListPayments(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)

	payments, total, err := h.OrderService.ListPayments(repository.PaymentListFilter{
		Page:     page,
		PageSize: pageSize,
		StoreID:  storeID,
		OrderID:  uint(orderID),
		Method:   strings.ToLower(strings.TrimSpace(c.Query("method"))),
		Status:   strings.ToLower(strings.TrimSpace(c.Query("status"))),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch payments", err)
		return
	}
	response.SuccessWithPage(c, payments, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByStoreAndID(storeID, orderID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to fetch order")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(storeID, orderID, req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to update order status")
		return
	}
	requestLog(c).Infow("order_status_updated",
		"store_id", storeID,
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", order.Status,
	)
	response.Success(c, order)
}
