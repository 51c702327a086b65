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

func newCartTestService(t *testing.T) (*gorm.DB, *CartService) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return db, svc
}

func createCartTestProduct(t *testing.T, db *gorm.DB, price int64, stock int, active bool) models.Product {
	t.Helper()
	product := models.Product{
		StoreID:       1,
		Slug:          fmt.Sprintf("p-%d", time.Now().UnixNano()),
		Title:         "Cart Product",
		PriceAmount:   models.NewMoneyFromInt(price),
		StockQuantity: stock,
		IsActive:      active,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestAddItemCreatesCartWithToken(t *testing.T) {
	db, svc := newCartTestService(t)
	product := createCartTestProduct(t, db, 2500, 10, true)

	cart, err := svc.AddItem(1, "", product.ID, 2)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if cart.Token == "" {
		t.Fatalf("expected generated token")
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart items: %+v", cart.Items)
	}
	if cart.Items[0].UnitPrice.String() != "2500" {
		t.Fatalf("expected unit price snapshot 2500, got %s", cart.Items[0].UnitPrice.String())
	}
}

func TestAddItemMergesQuantity(t *testing.T) {
	db, svc := newCartTestService(t)
	product := createCartTestProduct(t, db, 1000, 10, true)

	cart, err := svc.AddItem(1, "", product.ID, 2)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	cart, err = svc.AddItem(1, cart.Token, product.ID, 3)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 merged item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
}

func TestAddItemRejectsMergedQuantityOverStock(t *testing.T) {
	db, svc := newCartTestService(t)
	product := createCartTestProduct(t, db, 1000, 4, true)

	cart, err := svc.AddItem(1, "", product.ID, 3)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.AddItem(1, cart.Token, product.ID, 2); !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected ErrStockInsufficient, got %v", err)
	}
}

func TestAddItemInactiveProduct(t *testing.T) {
	db, svc := newCartTestService(t)
	product := createCartTestProduct(t, db, 1000, 10, false)

	if _, err := svc.AddItem(1, "", product.ID, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	_, svc := newCartTestService(t)
	if _, err := svc.AddItem(1, "", 999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddItemUnlimitedStock(t *testing.T) {
	db, svc := newCartTestService(t)
	product := createCartTestProduct(t, db, 1000, constants.StockUnlimited, true)

	cart, err := svc.AddItem(1, "", product.ID, 50)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if cart.Items[0].Quantity != 50 {
		t.Fatalf("expected quantity 50, got %d", cart.Items[0].Quantity)
	}
}

func TestUpdateItemZeroQuantityRemoves(t *testing.T) {
	db, svc := newCartTestService(t)
	product := createCartTestProduct(t, db, 1000, 10, true)

	cart, err := svc.AddItem(1, "", product.ID, 2)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	cart, err = svc.UpdateItem(1, cart.Token, product.ID, 0)
	if err != nil {
		t.Fatalf("UpdateItem error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}
}

func TestUpdateItemKeepsPriceSnapshot(t *testing.T) {
	db, svc := newCartTestService(t)
	product := createCartTestProduct(t, db, 1000, 10, true)

	cart, err := svc.AddItem(1, "", product.ID, 2)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	// 加购后涨价，快照价格保持不变
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		UpdateColumn("price_amount", models.NewMoneyFromInt(9999)).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	cart, err = svc.UpdateItem(1, cart.Token, product.ID, 5)
	if err != nil {
		t.Fatalf("UpdateItem error: %v", err)
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].UnitPrice.String() != "1000" {
		t.Fatalf("expected snapshot 1000, got %s", cart.Items[0].UnitPrice.String())
	}
}

func TestUpdateItemNotInCart(t *testing.T) {
	db, svc := newCartTestService(t)
	productA := createCartTestProduct(t, db, 1000, 10, true)
	productB := createCartTestProduct(t, db, 2000, 10, true)

	cart, err := svc.AddItem(1, "", productA.ID, 1)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.UpdateItem(1, cart.Token, productB.ID, 2); !errors.Is(err, ErrCartItemInvalid) {
		t.Fatalf("expected ErrCartItemInvalid, got %v", err)
	}
}

func TestClearCart(t *testing.T) {
	db, svc := newCartTestService(t)
	product := createCartTestProduct(t, db, 1000, 10, true)

	cart, err := svc.AddItem(1, "", product.ID, 2)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	cart, err = svc.Clear(1, cart.Token)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", cart.Items)
	}
}

func TestGetCartNotFound(t *testing.T) {
	_, svc := newCartTestService(t)
	if _, err := svc.Get(1, "missing"); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}
