package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/storeforge-next/internal/constants"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  save20 "); got != "SAVE20" {
		t.Fatalf("expected SAVE20, got %s", got)
	}
	if got := NormalizeCode(""); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

func TestCheckEligibility(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	base := func() *models.Discount {
		return &models.Discount{
			Code:           "SAVE20",
			Type:           constants.DiscountTypePercentage,
			Value:          models.NewMoneyFromInt(20),
			MinOrderAmount: models.NewMoneyFromInt(1000),
			IsActive:       true,
		}
	}

	tests := []struct {
		name     string
		mutate   func(d *models.Discount)
		subtotal int64
		want     string
	}{
		{"pass", func(d *models.Discount) {}, 5000, ""},
		{"inactive", func(d *models.Discount) { d.IsActive = false }, 5000, "inactive"},
		{"not_started", func(d *models.Discount) { d.StartsAt = &future }, 5000, "not_started"},
		{"expired", func(d *models.Discount) { d.ExpiresAt = &past }, 5000, "expired"},
		{"usage_limit", func(d *models.Discount) { d.UsageLimit = 3; d.UsedCount = 3 }, 5000, "usage_limit_reached"},
		{"unlimited_usage", func(d *models.Discount) { d.UsageLimit = 0; d.UsedCount = 999 }, 5000, ""},
		{"below_min_order", func(d *models.Discount) {}, 999, "below_min_order_amount"},
		{"at_min_order", func(d *models.Discount) {}, 1000, ""},
	}
	for _, tt := range tests {
		discount := base()
		tt.mutate(discount)
		got := checkEligibility(discount, models.NewMoneyFromInt(tt.subtotal), now)
		if got != tt.want {
			t.Fatalf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
	if got := checkEligibility(nil, models.NewMoneyFromInt(100), now); got != "not_found" {
		t.Fatalf("expected not_found for nil discount, got %q", got)
	}
}

func TestCalculateDeductionPercentage(t *testing.T) {
	discount := &models.Discount{
		Type:  constants.DiscountTypePercentage,
		Value: models.NewMoneyFromInt(20),
	}
	got := calculateDeduction(discount, models.NewMoneyFromInt(10000))
	if got.String() != "2000" {
		t.Fatalf("expected 2000, got %s", got.String())
	}
}

func TestCalculateDeductionPercentageMaxCap(t *testing.T) {
	discount := &models.Discount{
		Type:        constants.DiscountTypePercentage,
		Value:       models.NewMoneyFromInt(20),
		MaxDiscount: models.NewMoneyFromInt(1500),
	}
	got := calculateDeduction(discount, models.NewMoneyFromInt(10000))
	if got.String() != "1500" {
		t.Fatalf("expected 1500, got %s", got.String())
	}
}

func TestCalculateDeductionPercentageRounding(t *testing.T) {
	// 15% of 105 = 15.75，四舍五入到 16
	discount := &models.Discount{
		Type:  constants.DiscountTypePercentage,
		Value: models.NewMoneyFromInt(15),
	}
	got := calculateDeduction(discount, models.NewMoneyFromInt(105))
	if got.String() != "16" {
		t.Fatalf("expected 16, got %s", got.String())
	}
}

func TestCalculateDeductionFixedCappedAtSubtotal(t *testing.T) {
	discount := &models.Discount{
		Type:  constants.DiscountTypeFixed,
		Value: models.NewMoneyFromInt(500),
	}
	got := calculateDeduction(discount, models.NewMoneyFromInt(300))
	if got.String() != "300" {
		t.Fatalf("expected 300, got %s", got.String())
	}
}

func TestCalculateDeductionPercentageOverHundred(t *testing.T) {
	discount := &models.Discount{
		Type:  constants.DiscountTypePercentage,
		Value: models.NewMoneyFromInt(150),
	}
	got := calculateDeduction(discount, models.NewMoneyFromInt(2000))
	if got.String() != "2000" {
		t.Fatalf("expected 2000, got %s", got.String())
	}
}

func TestCalculateEmptyCodeSkipsLookup(t *testing.T) {
	// 仓库传 nil：空码不应触发任何查询
	svc := NewDiscountService(nil)
	deduction, discount, err := svc.Calculate(1, "   ", models.NewMoneyFromInt(1000))
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if discount != nil {
		t.Fatalf("expected nil discount, got %+v", discount)
	}
	if !deduction.Decimal.IsZero() {
		t.Fatalf("expected zero deduction, got %s", deduction.String())
	}
}

func openDiscountTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:discount_service_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Discount{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestCalculateAppliesDiscount(t *testing.T) {
	db := openDiscountTestDB(t)
	discount := models.Discount{
		StoreID:  1,
		Code:     "SAVE20",
		Type:     constants.DiscountTypePercentage,
		Value:    models.NewMoneyFromInt(20),
		IsActive: true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	svc := NewDiscountService(repository.NewDiscountRepository(db))
	deduction, applied, err := svc.Calculate(1, "save20", models.NewMoneyFromInt(10000))
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if applied == nil || applied.ID != discount.ID {
		t.Fatalf("expected applied discount %d, got %+v", discount.ID, applied)
	}
	if deduction.String() != "2000" {
		t.Fatalf("expected deduction 2000, got %s", deduction.String())
	}
}

func TestCalculateIneligibleReturnsZero(t *testing.T) {
	db := openDiscountTestDB(t)
	discount := models.Discount{
		StoreID:  1,
		Code:     "DISABLED",
		Type:     constants.DiscountTypeFixed,
		Value:    models.NewMoneyFromInt(500),
		IsActive: false,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	svc := NewDiscountService(repository.NewDiscountRepository(db))
	deduction, applied, err := svc.Calculate(1, "DISABLED", models.NewMoneyFromInt(10000))
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if applied != nil {
		t.Fatalf("expected nil discount for inactive code, got %+v", applied)
	}
	if !deduction.Decimal.IsZero() {
		t.Fatalf("expected zero deduction, got %s", deduction.String())
	}
}

func TestCalculateUnknownCodeReturnsZero(t *testing.T) {
	db := openDiscountTestDB(t)
	svc := NewDiscountService(repository.NewDiscountRepository(db))
	deduction, applied, err := svc.Calculate(1, "NOPE", models.NewMoneyFromInt(10000))
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if applied != nil {
		t.Fatalf("expected nil discount for unknown code, got %+v", applied)
	}
	if !deduction.Decimal.IsZero() {
		t.Fatalf("expected zero deduction, got %s", deduction.String())
	}
}
