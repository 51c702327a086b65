package service

import (
	"strings"
	"time"

	"github.com/storeforge-next/internal/constants"
	"github.com/storeforge-next/internal/logger"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountService 优惠码服务
type DiscountService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountService 创建优惠码服务
func NewDiscountService(discountRepo repository.DiscountRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo}
}

// WithTx 绑定事务后的服务副本
func (s *DiscountService) WithTx(tx *gorm.DB) *DiscountService {
	return &DiscountService{discountRepo: s.discountRepo.WithTx(tx)}
}

// NormalizeCode 规范化优惠码：去空白并转大写
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Calculate 计算优惠码抵扣金额。
// 未传码返回 0 且不查库；不满足资格的码同样返回 0 抵扣（不报错），
// 只有基础设施错误（数据库失败）才返回 error。
func (s *DiscountService) Calculate(storeID uint, code string, subtotal models.Money) (models.Money, *models.Discount, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return models.Money{}, nil, nil
	}

	discount, err := s.discountRepo.GetByCode(storeID, normalized)
	if err != nil {
		return models.Money{}, nil, err
	}

	if reason := checkEligibility(discount, subtotal, time.Now()); reason != "" {
		logger.Debugw("discount_not_applied",
			"store_id", storeID,
			"code", normalized,
			"reason", reason,
		)
		return models.Money{}, nil, nil
	}

	deduction := calculateDeduction(discount, subtotal)
	if deduction.Decimal.LessThanOrEqual(decimal.Zero) {
		return models.Money{}, nil, nil
	}
	return deduction, discount, nil
}

// checkEligibility 逐项检查资格，返回第一条不满足的原因（空串表示通过）
func checkEligibility(discount *models.Discount, subtotal models.Money, now time.Time) string {
	if discount == nil {
		return "not_found"
	}
	if !discount.IsActive {
		return "inactive"
	}
	if discount.StartsAt != nil && now.Before(*discount.StartsAt) {
		return "not_started"
	}
	if discount.ExpiresAt != nil && now.After(*discount.ExpiresAt) {
		return "expired"
	}
	if discount.UsageLimit > 0 && discount.UsedCount >= discount.UsageLimit {
		return "usage_limit_reached"
	}
	if subtotal.Decimal.Cmp(discount.MinOrderAmount.Decimal) < 0 {
		return "below_min_order_amount"
	}
	return ""
}

// calculateDeduction 按类型计算抵扣金额，封顶在小计
func calculateDeduction(discount *models.Discount, subtotal models.Money) models.Money {
	var deduction decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(discount.Type)) {
	case constants.DiscountTypeFixed:
		deduction = discount.Value.Decimal
	case constants.DiscountTypePercentage:
		percent := discount.Value.Decimal
		if percent.GreaterThan(decimal.NewFromInt(100)) {
			percent = decimal.NewFromInt(100)
		}
		deduction = subtotal.Decimal.Mul(percent).Div(decimal.NewFromInt(100))
		if discount.MaxDiscount.Decimal.GreaterThan(decimal.Zero) &&
			deduction.Round(0).GreaterThan(discount.MaxDiscount.Decimal) {
			deduction = discount.MaxDiscount.Decimal
		}
	default:
		return models.Money{}
	}

	if deduction.GreaterThan(subtotal.Decimal) {
		deduction = subtotal.Decimal
	}
	return models.NewMoneyFromDecimal(deduction)
}
