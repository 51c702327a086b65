package service

import (
	"strings"
	"time"

	"github.com/storeforge-next/internal/constants"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/repository"

	"github.com/google/uuid"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// Get 根据令牌获取购物车
func (s *CartService) Get(storeID uint, token string) (*models.Cart, error) {
	if storeID == 0 || strings.TrimSpace(token) == "" {
		return nil, ErrCartNotFound
	}
	cart, err := s.cartRepo.GetByStoreAndToken(storeID, token)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

// AddItem 添加商品到购物车，令牌为空时新建购物车
func (s *CartService) AddItem(storeID uint, token string, productID uint, quantity int) (*models.Cart, error) {
	if storeID == 0 || productID == 0 || quantity <= 0 {
		return nil, ErrCartItemInvalid
	}
	product, err := s.productRepo.GetByID(storeID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	if product.StockQuantity != constants.StockUnlimited && product.StockQuantity < quantity {
		return nil, ErrStockInsufficient
	}

	now := time.Now()
	cart, err := s.resolveCart(storeID, token, now)
	if err != nil {
		return nil, err
	}

	quantity = s.mergeQuantity(cart, productID, quantity)
	if product.StockQuantity != constants.StockUnlimited && product.StockQuantity < quantity {
		return nil, ErrStockInsufficient
	}
	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: product.PriceAmount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.UpsertItem(item); err != nil {
		return nil, err
	}
	return s.Get(storeID, cart.Token)
}

// UpdateItem 调整购物车项数量，数量为 0 时移除
func (s *CartService) UpdateItem(storeID uint, token string, productID uint, quantity int) (*models.Cart, error) {
	if productID == 0 || quantity < 0 {
		return nil, ErrCartItemInvalid
	}
	cart, err := s.Get(storeID, token)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
			return nil, err
		}
		return s.Get(storeID, cart.Token)
	}

	var existing *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			existing = &cart.Items[i]
			break
		}
	}
	if existing == nil {
		return nil, ErrCartItemInvalid
	}
	product, err := s.productRepo.GetByID(storeID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	if product.StockQuantity != constants.StockUnlimited && product.StockQuantity < quantity {
		return nil, ErrStockInsufficient
	}

	now := time.Now()
	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: existing.UnitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.UpsertItem(item); err != nil {
		return nil, err
	}
	return s.Get(storeID, cart.Token)
}

// RemoveItem 移除购物车项
func (s *CartService) RemoveItem(storeID uint, token string, productID uint) (*models.Cart, error) {
	cart, err := s.Get(storeID, token)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
		return nil, err
	}
	return s.Get(storeID, cart.Token)
}

// Clear 清空购物车
func (s *CartService) Clear(storeID uint, token string) (*models.Cart, error) {
	cart, err := s.Get(storeID, token)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return nil, err
	}
	return s.Get(storeID, cart.Token)
}

// resolveCart 获取现有购物车，令牌为空或不存在时新建
func (s *CartService) resolveCart(storeID uint, token string, now time.Time) (*models.Cart, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed != "" {
		cart, err := s.cartRepo.GetByStoreAndToken(storeID, trimmed)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
	}
	cart := &models.Cart{
		Token:     uuid.NewString(),
		StoreID:   storeID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// mergeQuantity 同商品重复加购时累加数量
func (s *CartService) mergeQuantity(cart *models.Cart, productID uint, quantity int) int {
	for _, item := range cart.Items {
		if item.ProductID == productID {
			return item.Quantity + quantity
		}
	}
	return quantity
}
