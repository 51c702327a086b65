package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/storeforge-next/internal/constants"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newDiscountAdminTestService(t *testing.T) (*gorm.DB, *DiscountAdminService) {
	t.Helper()
	dsn := fmt.Sprintf("file:discount_admin_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Discount{}, &models.DiscountUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db, NewDiscountAdminService(repository.NewDiscountRepository(db), repository.NewDiscountUsageRepository(db))
}

func TestDiscountCreateNormalizesCode(t *testing.T) {
	_, svc := newDiscountAdminTestService(t)
	discount, err := svc.Create(1, DiscountInput{
		Code:  "  save20 ",
		Type:  "Percentage",
		Value: models.NewMoneyFromInt(20),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if discount.Code != "SAVE20" {
		t.Fatalf("expected SAVE20, got %s", discount.Code)
	}
	if discount.Type != constants.DiscountTypePercentage {
		t.Fatalf("expected percentage type, got %s", discount.Type)
	}
	if !discount.IsActive {
		t.Fatalf("expected active by default")
	}
}

func TestDiscountCreateRejectsDuplicateCode(t *testing.T) {
	_, svc := newDiscountAdminTestService(t)
	input := DiscountInput{Code: "DUP", Type: constants.DiscountTypeFixed, Value: models.NewMoneyFromInt(100)}
	if _, err := svc.Create(1, input); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Create(1, input); !errors.Is(err, ErrDiscountCodeExists) {
		t.Fatalf("expected ErrDiscountCodeExists, got %v", err)
	}
	// 其他店铺可以复用同一码值
	if _, err := svc.Create(2, input); err != nil {
		t.Fatalf("expected cross-store reuse allowed, got %v", err)
	}
}

func TestValidateDiscountInput(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name  string
		input DiscountInput
		ok    bool
	}{
		{"fixed_ok", DiscountInput{Type: "fixed", Value: models.NewMoneyFromInt(500)}, true},
		{"percentage_ok", DiscountInput{Type: "percentage", Value: models.NewMoneyFromInt(20)}, true},
		{"unknown_type", DiscountInput{Type: "bogo", Value: models.NewMoneyFromInt(1)}, false},
		{"zero_value", DiscountInput{Type: "fixed", Value: models.NewMoneyFromInt(0)}, false},
		{"percent_over_100", DiscountInput{Type: "percentage", Value: models.NewMoneyFromInt(101)}, false},
		{"negative_min_order", DiscountInput{Type: "fixed", Value: models.NewMoneyFromInt(1), MinOrderAmount: models.NewMoneyFromInt(-1)}, false},
		{"negative_usage_limit", DiscountInput{Type: "fixed", Value: models.NewMoneyFromInt(1), UsageLimit: -1}, false},
		{"window_inverted", DiscountInput{Type: "fixed", Value: models.NewMoneyFromInt(1), StartsAt: &now, ExpiresAt: &earlier}, false},
	}
	for _, tt := range tests {
		err := validateDiscountInput(tt.input)
		if tt.ok && err != nil {
			t.Fatalf("%s: expected valid, got %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrDiscountInvalid) {
			t.Fatalf("%s: expected ErrDiscountInvalid, got %v", tt.name, err)
		}
	}
}

func TestDiscountUpdatePreservesUsedCount(t *testing.T) {
	db, svc := newDiscountAdminTestService(t)
	discount, err := svc.Create(1, DiscountInput{
		Code:  "KEEP",
		Type:  constants.DiscountTypeFixed,
		Value: models.NewMoneyFromInt(100),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := db.Model(&models.Discount{}).Where("id = ?", discount.ID).
		UpdateColumn("used_count", 7).Error; err != nil {
		t.Fatalf("seed used_count failed: %v", err)
	}

	updated, err := svc.Update(1, discount.ID, DiscountInput{
		Code:  "KEEP",
		Type:  constants.DiscountTypeFixed,
		Value: models.NewMoneyFromInt(200),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Value.String() != "200" {
		t.Fatalf("expected value 200, got %s", updated.Value.String())
	}
	if updated.UsedCount != 7 {
		t.Fatalf("expected used_count preserved, got %d", updated.UsedCount)
	}
}

func TestDiscountListUsages(t *testing.T) {
	db, svc := newDiscountAdminTestService(t)
	discount, err := svc.Create(1, DiscountInput{
		Code:  "TRACKED",
		Type:  constants.DiscountTypeFixed,
		Value: models.NewMoneyFromInt(100),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	for orderID := uint(1); orderID <= 2; orderID++ {
		usage := models.DiscountUsage{
			DiscountID: discount.ID,
			StoreID:    1,
			OrderID:    orderID,
			Amount:     models.NewMoneyFromInt(100),
		}
		if err := db.Create(&usage).Error; err != nil {
			t.Fatalf("seed usage failed: %v", err)
		}
	}

	usages, total, err := svc.ListUsages(1, discount.ID, 1, 20)
	if err != nil {
		t.Fatalf("ListUsages error: %v", err)
	}
	if total != 2 || len(usages) != 2 {
		t.Fatalf("expected 2 usages, got total=%d len=%d", total, len(usages))
	}

	if _, _, err := svc.ListUsages(1, discount.ID+100, 1, 20); !errors.Is(err, ErrDiscountNotFound) {
		t.Fatalf("expected ErrDiscountNotFound for unknown discount, got %v", err)
	}
}

func TestDiscountDelete(t *testing.T) {
	_, svc := newDiscountAdminTestService(t)
	discount, err := svc.Create(1, DiscountInput{
		Code:  "GONE",
		Type:  constants.DiscountTypeFixed,
		Value: models.NewMoneyFromInt(100),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := svc.Delete(1, discount.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := svc.GetByID(1, discount.ID); !errors.Is(err, ErrDiscountNotFound) {
		t.Fatalf("expected ErrDiscountNotFound after delete, got %v", err)
	}
}
