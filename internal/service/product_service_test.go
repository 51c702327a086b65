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

func newProductTestService(t *testing.T) (*gorm.DB, *ProductService) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewProductService(repository.NewProductRepository(db), repository.NewCategoryRepository(db))
	return db, svc
}

func TestProductCreate(t *testing.T) {
	_, svc := newProductTestService(t)
	product, err := svc.Create(1, ProductInput{
		Title:         "Wireless Earphones",
		PriceAmount:   4999,
		StockQuantity: 10,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if product.Slug != "wireless-earphones" {
		t.Fatalf("expected slug from title, got %s", product.Slug)
	}
	if product.PriceAmount.String() != "4999" {
		t.Fatalf("expected price 4999, got %s", product.PriceAmount.String())
	}
	if !product.IsActive {
		t.Fatalf("expected active by default")
	}
}

func TestProductCreateRejectsDuplicateSlug(t *testing.T) {
	_, svc := newProductTestService(t)
	input := ProductInput{Title: "Same", Slug: "same", PriceAmount: 100}
	if _, err := svc.Create(1, input); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Create(1, input); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
	// 不同店铺可复用 slug
	if _, err := svc.Create(2, input); err != nil {
		t.Fatalf("expected cross-store slug reuse allowed, got %v", err)
	}
}

func TestProductCreateValidation(t *testing.T) {
	_, svc := newProductTestService(t)
	if _, err := svc.Create(1, ProductInput{Title: " ", PriceAmount: 100}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected ErrProductInvalid for empty title, got %v", err)
	}
	if _, err := svc.Create(1, ProductInput{Title: "X", PriceAmount: -1}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected ErrProductInvalid for negative price, got %v", err)
	}
	if _, err := svc.Create(1, ProductInput{Title: "X", PriceAmount: 1, StockQuantity: -5}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected ErrProductInvalid for bad stock, got %v", err)
	}
	// -1 是无限库存哨兵值，允许
	if _, err := svc.Create(1, ProductInput{Title: "X", PriceAmount: 1, StockQuantity: constants.StockUnlimited}); err != nil {
		t.Fatalf("expected unlimited stock allowed, got %v", err)
	}
}

func TestProductCreateRejectsForeignCategory(t *testing.T) {
	db, svc := newProductTestService(t)
	category := models.Category{StoreID: 2, Slug: "other", Name: "Other", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := svc.Create(1, ProductInput{
		Title:       "X",
		PriceAmount: 100,
		CategoryID:  &category.ID,
	}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestGetPublicBySlugHidesInactive(t *testing.T) {
	db, svc := newProductTestService(t)
	product := models.Product{
		StoreID:     1,
		Slug:        "hidden",
		Title:       "Hidden",
		PriceAmount: models.NewMoneyFromInt(100),
		IsActive:    false,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if _, err := svc.GetPublicBySlug(1, "hidden"); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
	if _, err := svc.GetPublicBySlug(1, "missing"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestListPublicOnlyActive(t *testing.T) {
	db, svc := newProductTestService(t)
	for i, active := range []bool{true, true, false} {
		product := models.Product{
			StoreID:     1,
			Slug:        fmt.Sprintf("item-%d", i),
			Title:       fmt.Sprintf("Item %d", i),
			PriceAmount: models.NewMoneyFromInt(100),
			IsActive:    active,
		}
		if err := db.Create(&product).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	products, total, err := svc.ListPublic(1, 0, "", 1, 20)
	if err != nil {
		t.Fatalf("ListPublic error: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("expected 2 active products, got total %d, len %d", total, len(products))
	}
}
