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

func TestIsTransitionAllowed(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPending, constants.OrderStatusCanceled, true},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusProcessing, constants.OrderStatusDelivered, true},
		{constants.OrderStatusProcessing, constants.OrderStatusCanceled, true},
		{constants.OrderStatusProcessing, constants.OrderStatusPending, false},
		{constants.OrderStatusDelivered, constants.OrderStatusCanceled, false},
		{constants.OrderStatusCanceled, constants.OrderStatusProcessing, false},
	}
	for _, tt := range tests {
		if got := isTransitionAllowed(tt.from, tt.to); got != tt.want {
			t.Fatalf("isTransitionAllowed(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

type orderTestEnv struct {
	db      *gorm.DB
	service *OrderService
	store   models.Store
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Store{},
		&models.Product{},
		&models.Discount{},
		&models.DiscountUsage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	store := models.Store{Slug: "demo", Name: "Demo", Currency: "USD", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	svc := NewOrderService(
		repository.NewTxRunner(db),
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewDiscountRepository(db),
		repository.NewDiscountUsageRepository(db),
		repository.NewPaymentRepository(db),
	)
	return &orderTestEnv{db: db, service: svc, store: store}
}

func (e *orderTestEnv) createOrder(t *testing.T, status string, mutate func(o *models.Order)) models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:     fmt.Sprintf("SF%d", time.Now().UnixNano()),
		StoreID:     e.store.ID,
		Status:      status,
		Currency:    "USD",
		TotalAmount: models.NewMoneyFromInt(1000),
	}
	if mutate != nil {
		mutate(&order)
	}
	if err := e.db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestUpdateStatusPendingToProcessing(t *testing.T) {
	env := newOrderTestEnv(t)
	order := env.createOrder(t, constants.OrderStatusPending, nil)

	updated, err := env.service.UpdateStatus(env.store.ID, order.ID, "processing")
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected processing, got %s", updated.Status)
	}

	var reloaded models.Order
	if err := env.db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected persisted processing, got %s", reloaded.Status)
	}
}

func TestUpdateStatusDeliveredSetsTimestamp(t *testing.T) {
	env := newOrderTestEnv(t)
	order := env.createOrder(t, constants.OrderStatusProcessing, nil)

	updated, err := env.service.UpdateStatus(env.store.ID, order.ID, "delivered")
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if updated.DeliveredAt == nil {
		t.Fatalf("expected delivered_at to be set")
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	env := newOrderTestEnv(t)
	order := env.createOrder(t, constants.OrderStatusDelivered, nil)

	_, err := env.service.UpdateStatus(env.store.ID, order.ID, "canceled")
	if !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
	_, err = env.service.UpdateStatus(env.store.ID, order.ID, "shipped")
	if !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for unknown status, got %v", err)
	}
}

func TestUpdateStatusCancelRestoresStockAndDiscount(t *testing.T) {
	env := newOrderTestEnv(t)
	product := models.Product{
		StoreID:       env.store.ID,
		Slug:          "item",
		Title:         "Item",
		PriceAmount:   models.NewMoneyFromInt(1000),
		StockQuantity: 8,
		IsActive:      true,
	}
	if err := env.db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	discount := models.Discount{
		StoreID:    env.store.ID,
		Code:       "SAVE20",
		Type:       constants.DiscountTypePercentage,
		Value:      models.NewMoneyFromInt(20),
		UsageLimit: 5,
		UsedCount:  1,
		IsActive:   true,
	}
	if err := env.db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	order := env.createOrder(t, constants.OrderStatusPending, func(o *models.Order) {
		o.DiscountID = &discount.ID
	})
	item := models.OrderItem{
		OrderID:    order.ID,
		ProductID:  product.ID,
		Title:      product.Title,
		UnitPrice:  product.PriceAmount,
		Quantity:   2,
		TotalPrice: models.NewMoneyFromInt(2000),
	}
	if err := env.db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	usage := models.DiscountUsage{
		DiscountID: discount.ID,
		StoreID:    env.store.ID,
		OrderID:    order.ID,
		Amount:     models.NewMoneyFromInt(400),
	}
	if err := env.db.Create(&usage).Error; err != nil {
		t.Fatalf("create usage failed: %v", err)
	}

	updated, err := env.service.UpdateStatus(env.store.ID, order.ID, "canceled")
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if updated.Status != constants.OrderStatusCanceled {
		t.Fatalf("expected canceled, got %s", updated.Status)
	}
	if updated.CanceledAt == nil {
		t.Fatalf("expected canceled_at to be set")
	}

	var reloadedProduct models.Product
	if err := env.db.First(&reloadedProduct, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if reloadedProduct.StockQuantity != 10 {
		t.Fatalf("expected stock restored to 10, got %d", reloadedProduct.StockQuantity)
	}
	var reloadedDiscount models.Discount
	if err := env.db.First(&reloadedDiscount, discount.ID).Error; err != nil {
		t.Fatalf("load discount failed: %v", err)
	}
	if reloadedDiscount.UsedCount != 0 {
		t.Fatalf("expected used_count released to 0, got %d", reloadedDiscount.UsedCount)
	}
	var usageCount int64
	if err := env.db.Model(&models.DiscountUsage{}).Where("order_id = ?", order.ID).Count(&usageCount).Error; err != nil {
		t.Fatalf("count usage failed: %v", err)
	}
	if usageCount != 0 {
		t.Fatalf("expected usage rows removed, got %d", usageCount)
	}
}

func TestCancelExpiredOrder(t *testing.T) {
	env := newOrderTestEnv(t)
	expired := time.Now().Add(-time.Minute)
	order := env.createOrder(t, constants.OrderStatusPending, func(o *models.Order) {
		o.ExpiresAt = &expired
	})

	canceled, err := env.service.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("CancelExpiredOrder error: %v", err)
	}
	if canceled.Status != constants.OrderStatusCanceled {
		t.Fatalf("expected canceled, got %s", canceled.Status)
	}
}

func TestCancelExpiredOrderSkipsUnexpired(t *testing.T) {
	env := newOrderTestEnv(t)
	future := time.Now().Add(time.Hour)
	order := env.createOrder(t, constants.OrderStatusPending, func(o *models.Order) {
		o.ExpiresAt = &future
	})

	got, err := env.service.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("CancelExpiredOrder error: %v", err)
	}
	if got.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending kept, got %s", got.Status)
	}
}

func TestCancelExpiredOrderSkipsNonPending(t *testing.T) {
	env := newOrderTestEnv(t)
	expired := time.Now().Add(-time.Minute)
	order := env.createOrder(t, constants.OrderStatusProcessing, func(o *models.Order) {
		o.ExpiresAt = &expired
	})

	got, err := env.service.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("CancelExpiredOrder error: %v", err)
	}
	if got.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected processing kept, got %s", got.Status)
	}
}

func TestCancelExpiredOrderNotFound(t *testing.T) {
	env := newOrderTestEnv(t)
	_, err := env.service.CancelExpiredOrder(999)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestGetByOrderNoScopedToStore(t *testing.T) {
	env := newOrderTestEnv(t)
	order := env.createOrder(t, constants.OrderStatusPending, nil)

	got, err := env.service.GetByOrderNo(env.store.ID, order.OrderNo)
	if err != nil {
		t.Fatalf("GetByOrderNo error: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("expected order %d, got %d", order.ID, got.ID)
	}
	if _, err := env.service.GetByOrderNo(env.store.ID+1, order.OrderNo); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other store, got %v", err)
	}
}
