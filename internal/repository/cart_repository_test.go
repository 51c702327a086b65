package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/storeforge-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openCartRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_repo_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestGetByStoreAndTokenEmptyToken(t *testing.T) {
	db := openCartRepoTestDB(t)
	repo := NewCartRepository(db)

	cart, err := repo.GetByStoreAndToken(1, "   ")
	if err != nil {
		t.Fatalf("GetByStoreAndToken error: %v", err)
	}
	if cart != nil {
		t.Fatalf("expected nil cart for empty token, got %+v", cart)
	}
}

func TestGetByStoreAndTokenScopedToStore(t *testing.T) {
	db := openCartRepoTestDB(t)
	repo := NewCartRepository(db)
	cart := models.Cart{StoreID: 1, Token: "tok-1"}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	got, err := repo.GetByStoreAndToken(1, "tok-1")
	if err != nil {
		t.Fatalf("GetByStoreAndToken error: %v", err)
	}
	if got == nil || got.ID != cart.ID {
		t.Fatalf("expected cart %d, got %+v", cart.ID, got)
	}

	other, err := repo.GetByStoreAndToken(2, "tok-1")
	if err != nil {
		t.Fatalf("GetByStoreAndToken error: %v", err)
	}
	if other != nil {
		t.Fatalf("expected nil for other store, got %+v", other)
	}
}

func TestUpsertItemCreatesThenUpdates(t *testing.T) {
	db := openCartRepoTestDB(t)
	repo := NewCartRepository(db)
	cart := models.Cart{StoreID: 1, Token: "tok-upsert"}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: 7,
		Quantity:  1,
		UnitPrice: models.NewMoneyFromInt(2500),
	}
	if err := repo.UpsertItem(&item); err != nil {
		t.Fatalf("UpsertItem error: %v", err)
	}

	item.Quantity = 3
	if err := repo.UpsertItem(&item); err != nil {
		t.Fatalf("UpsertItem error: %v", err)
	}

	var items []models.CartItem
	if err := db.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		t.Fatalf("load items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected single item row, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	if items[0].UnitPrice.String() != "2500" {
		t.Fatalf("expected unit price 2500, got %s", items[0].UnitPrice.String())
	}
}

func TestClearItems(t *testing.T) {
	db := openCartRepoTestDB(t)
	repo := NewCartRepository(db)
	cart := models.Cart{StoreID: 1, Token: "tok-clear"}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	for pid := uint(1); pid <= 3; pid++ {
		if err := repo.UpsertItem(&models.CartItem{
			CartID:    cart.ID,
			ProductID: pid,
			Quantity:  1,
			UnitPrice: models.NewMoneyFromInt(100),
		}); err != nil {
			t.Fatalf("UpsertItem error: %v", err)
		}
	}

	if err := repo.ClearItems(cart.ID); err != nil {
		t.Fatalf("ClearItems error: %v", err)
	}
	var count int64
	if err := db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cart cleared, got %d items", count)
	}
}
