package merchant

import (
	"strconv"
	"time"

	handlershared "github.com/storeforge-next/internal/http/handlers/shared"
	"github.com/storeforge-next/internal/http/response"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/repository"
	"github.com/storeforge-next/internal/service"

	"github.com/gin-gonic/gin"
)

// discountRequest 创建/更新优惠码请求体（金额使用最小货币单位）
type discountRequest struct {
	Code           string     `json:"code" binding:"required"`
	Type           string     `json:"type" binding:"required"`
	Value          int64      `json:"value"`
	MinOrderAmount int64      `json:"min_order_amount"`
	MaxDiscount    int64      `json:"max_discount"`
	UsageLimit     int        `json:"usage_limit"`
	StartsAt       *time.Time `json:"starts_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
	IsActive       *bool      `json:"is_active"`
}

func (r discountRequest) toInput() service.DiscountInput {
	return service.DiscountInput{
		Code:           r.Code,
		Type:           r.Type,
		Value:          models.NewMoneyFromInt(r.Value),
		MinOrderAmount: models.NewMoneyFromInt(r.MinOrderAmount),
		MaxDiscount:    models.NewMoneyFromInt(r.MaxDiscount),
		UsageLimit:     r.UsageLimit,
		StartsAt:       r.StartsAt,
		ExpiresAt:      r.ExpiresAt,
		IsActive:       r.IsActive,
	}
}

// ListDiscounts 获取优惠码列表
func (h *Handler) ListDiscounts(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.DiscountListFilter{
		Page:     page,
		PageSize: pageSize,
		StoreID:  storeID,
		Code:     service.NormalizeCode(c.Query("code")),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	discounts, total, err := h.DiscountAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch discounts", err)
		return
	}
	response.SuccessWithPage(c, discounts, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetDiscount 获取优惠码详情
func (h *Handler) GetDiscount(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	discountID, ok := parseUintParam(c, "discount_id")
	if !ok {
		return
	}
	discount, err := h.DiscountAdminService.GetByID(storeID, discountID)
	if err != nil {
		respondWithMappedError(c, err, discountErrorRules, response.CodeInternal, "failed to fetch discount")
		return
	}
	response.Success(c, discount)
}

// ListDiscountUsages 获取优惠码使用记录
func (h *Handler) ListDiscountUsages(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	discountID, ok := parseUintParam(c, "discount_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	usages, total, err := h.DiscountAdminService.ListUsages(storeID, discountID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, discountErrorRules, response.CodeInternal, "failed to fetch discount usages")
		return
	}
	response.SuccessWithPage(c, usages, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CreateDiscount 创建优惠码
func (h *Handler) CreateDiscount(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	discount, err := h.DiscountAdminService.Create(storeID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, discountErrorRules, response.CodeInternal, "failed to create discount")
		return
	}
	requestLog(c).Infow("discount_created", "store_id", storeID, "discount_id", discount.ID, "code", discount.Code)
	response.Success(c, discount)
}

// UpdateDiscount 更新优惠码
func (h *Handler) UpdateDiscount(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	discountID, ok := parseUintParam(c, "discount_id")
	if !ok {
		return
	}
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	discount, err := h.DiscountAdminService.Update(storeID, discountID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, discountErrorRules, response.CodeInternal, "failed to update discount")
		return
	}
	response.Success(c, discount)
}

// DeleteDiscount 删除优惠码
func (h *Handler) DeleteDiscount(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	discountID, ok := parseUintParam(c, "discount_id")
	if !ok {
		return
	}
	if err := h.DiscountAdminService.Delete(storeID, discountID); err != nil {
		respondWithMappedError(c, err, discountErrorRules, response.CodeInternal, "failed to delete discount")
		return
	}
	response.SuccessWithMsg(c, "discount deleted", nil)
}
