package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/storeforge-next/internal/constants"
	"github.com/storeforge-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openDiscountRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:discount_repo_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Discount{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestRedeemUsageStopsAtLimit(t *testing.T) {
	db := openDiscountRepoTestDB(t)
	repo := NewDiscountRepository(db)
	discount := models.Discount{
		StoreID:    1,
		Code:       "LIMITED",
		Type:       constants.DiscountTypeFixed,
		Value:      models.NewMoneyFromInt(500),
		UsageLimit: 2,
		IsActive:   true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		affected, err := repo.RedeemUsage(discount.ID)
		if err != nil {
			t.Fatalf("RedeemUsage error: %v", err)
		}
		if affected != 1 {
			t.Fatalf("redeem %d: expected 1 row affected, got %d", i+1, affected)
		}
	}

	// 打满上限后不再兑换
	affected, err := repo.RedeemUsage(discount.ID)
	if err != nil {
		t.Fatalf("RedeemUsage error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows at limit, got %d", affected)
	}

	var reloaded models.Discount
	if err := db.First(&reloaded, discount.ID).Error; err != nil {
		t.Fatalf("load discount failed: %v", err)
	}
	if reloaded.UsedCount != 2 {
		t.Fatalf("expected used_count 2, got %d", reloaded.UsedCount)
	}
}

func TestRedeemUsageUnlimited(t *testing.T) {
	db := openDiscountRepoTestDB(t)
	repo := NewDiscountRepository(db)
	discount := models.Discount{
		StoreID:    1,
		Code:       "FOREVER",
		Type:       constants.DiscountTypeFixed,
		Value:      models.NewMoneyFromInt(100),
		UsageLimit: 0,
		UsedCount:  1000,
		IsActive:   true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	affected, err := repo.RedeemUsage(discount.ID)
	if err != nil {
		t.Fatalf("RedeemUsage error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row for unlimited discount, got %d", affected)
	}
}

func TestReleaseUsageFloorsAtZero(t *testing.T) {
	db := openDiscountRepoTestDB(t)
	repo := NewDiscountRepository(db)
	discount := models.Discount{
		StoreID:   1,
		Code:      "RELEASE",
		Type:      constants.DiscountTypeFixed,
		Value:     models.NewMoneyFromInt(100),
		UsedCount: 1,
		IsActive:  true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	if err := repo.ReleaseUsage(discount.ID); err != nil {
		t.Fatalf("ReleaseUsage error: %v", err)
	}
	if err := repo.ReleaseUsage(discount.ID); err != nil {
		t.Fatalf("ReleaseUsage error: %v", err)
	}

	var reloaded models.Discount
	if err := db.First(&reloaded, discount.ID).Error; err != nil {
		t.Fatalf("load discount failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("expected used_count 0, got %d", reloaded.UsedCount)
	}
}

func TestGetByCodeScopedToStore(t *testing.T) {
	db := openDiscountRepoTestDB(t)
	repo := NewDiscountRepository(db)
	discount := models.Discount{
		StoreID:  1,
		Code:     "SCOPED",
		Type:     constants.DiscountTypeFixed,
		Value:    models.NewMoneyFromInt(100),
		IsActive: true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	got, err := repo.GetByCode(1, "SCOPED")
	if err != nil {
		t.Fatalf("GetByCode error: %v", err)
	}
	if got == nil || got.ID != discount.ID {
		t.Fatalf("expected discount %d, got %+v", discount.ID, got)
	}

	other, err := repo.GetByCode(2, "SCOPED")
	if err != nil {
		t.Fatalf("GetByCode error: %v", err)
	}
	if other != nil {
		t.Fatalf("expected nil for other store, got %+v", other)
	}
}
