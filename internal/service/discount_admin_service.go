package service

import (
	"strings"
	"time"

	"github.com/storeforge-next/internal/constants"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountAdminService 优惠码管理服务
type DiscountAdminService struct {
	repo      repository.DiscountRepository
	usageRepo repository.DiscountUsageRepository
}

// NewDiscountAdminService 创建优惠码管理服务
func NewDiscountAdminService(repo repository.DiscountRepository, usageRepo repository.DiscountUsageRepository) *DiscountAdminService {
	return &DiscountAdminService{repo: repo, usageRepo: usageRepo}
}

// DiscountInput 创建/更新优惠码输入
type DiscountInput struct {
	Code           string
	Type           string
	Value          models.Money
	MinOrderAmount models.Money
	MaxDiscount    models.Money
	UsageLimit     int
	StartsAt       *time.Time
	ExpiresAt      *time.Time
	IsActive       *bool
}

// List 获取优惠码列表
func (s *DiscountAdminService) List(filter repository.DiscountListFilter) ([]models.Discount, int64, error) {
	return s.repo.List(filter)
}

// ListUsages 获取优惠码使用记录列表
func (s *DiscountAdminService) ListUsages(storeID, discountID uint, page, pageSize int) ([]models.DiscountUsage, int64, error) {
	if _, err := s.GetByID(storeID, discountID); err != nil {
		return nil, 0, err
	}
	return s.usageRepo.List(repository.DiscountUsageListFilter{
		Page:       page,
		PageSize:   pageSize,
		StoreID:    storeID,
		DiscountID: discountID,
	})
}

// GetByID 获取优惠码详情
func (s *DiscountAdminService) GetByID(storeID, id uint) (*models.Discount, error) {
	if storeID == 0 || id == 0 {
		return nil, ErrDiscountNotFound
	}
	discount, err := s.repo.GetByID(storeID, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrDiscountNotFound
	}
	return discount, nil
}

// Create 创建优惠码（码值大写存储）
func (s *DiscountAdminService) Create(storeID uint, input DiscountInput) (*models.Discount, error) {
	code := NormalizeCode(input.Code)
	if storeID == 0 || code == "" {
		return nil, ErrDiscountInvalid
	}
	if err := validateDiscountInput(input); err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByCode(storeID, code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrDiscountCodeExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	discount := &models.Discount{
		StoreID:        storeID,
		Code:           code,
		Type:           strings.ToLower(strings.TrimSpace(input.Type)),
		Value:          input.Value,
		MinOrderAmount: input.MinOrderAmount,
		MaxDiscount:    input.MaxDiscount,
		UsageLimit:     input.UsageLimit,
		UsedCount:      0,
		StartsAt:       input.StartsAt,
		ExpiresAt:      input.ExpiresAt,
		IsActive:       isActive,
	}
	if err := s.repo.Create(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// Update 更新优惠码（已使用次数不可改写）
func (s *DiscountAdminService) Update(storeID, id uint, input DiscountInput) (*models.Discount, error) {
	discount, err := s.GetByID(storeID, id)
	if err != nil {
		return nil, err
	}
	code := NormalizeCode(input.Code)
	if code == "" {
		return nil, ErrDiscountInvalid
	}
	if err := validateDiscountInput(input); err != nil {
		return nil, err
	}
	if code != discount.Code {
		exist, err := s.repo.GetByCode(storeID, code)
		if err != nil {
			return nil, err
		}
		if exist != nil && exist.ID != discount.ID {
			return nil, ErrDiscountCodeExists
		}
	}

	discount.Code = code
	discount.Type = strings.ToLower(strings.TrimSpace(input.Type))
	discount.Value = input.Value
	discount.MinOrderAmount = input.MinOrderAmount
	discount.MaxDiscount = input.MaxDiscount
	discount.UsageLimit = input.UsageLimit
	discount.StartsAt = input.StartsAt
	discount.ExpiresAt = input.ExpiresAt
	if input.IsActive != nil {
		discount.IsActive = *input.IsActive
	}
	if err := s.repo.Update(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// Delete 删除优惠码（软删除）
func (s *DiscountAdminService) Delete(storeID, id uint) error {
	discount, err := s.GetByID(storeID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(storeID, discount.ID)
}

func validateDiscountInput(input DiscountInput) error {
	discountType := strings.ToLower(strings.TrimSpace(input.Type))
	if discountType != constants.DiscountTypeFixed && discountType != constants.DiscountTypePercentage {
		return ErrDiscountInvalid
	}
	if input.Value.Decimal.LessThanOrEqual(decimal.Zero) {
		return ErrDiscountInvalid
	}
	if discountType == constants.DiscountTypePercentage && input.Value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return ErrDiscountInvalid
	}
	if input.MinOrderAmount.Decimal.IsNegative() || input.MaxDiscount.Decimal.IsNegative() {
		return ErrDiscountInvalid
	}
	if input.UsageLimit < 0 {
		return ErrDiscountInvalid
	}
	if input.StartsAt != nil && input.ExpiresAt != nil && input.ExpiresAt.Before(*input.StartsAt) {
		return ErrDiscountInvalid
	}
	return nil
}
