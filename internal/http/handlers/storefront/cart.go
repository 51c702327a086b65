package storefront

import (
	"strconv"

	"github.com/storeforge-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// cartItemRequest 购物车项请求体
type cartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Get(store.ID, getCartToken(c))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to fetch cart")
		return
	}
	response.Success(c, cart)
}

// AddCartItem 添加商品到购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	cart, err := h.CartService.AddItem(store.ID, getCartToken(c), req.ProductID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to add cart item")
		return
	}
	response.Success(c, cart)
}

// UpdateCartItem 调整购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "product id invalid", nil)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	cart, err := h.CartService.UpdateItem(store.ID, getCartToken(c), uint(productID), req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart item")
		return
	}
	response.Success(c, cart)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "product id invalid", nil)
		return
	}
	cart, err := h.CartService.RemoveItem(store.ID, getCartToken(c), uint(productID))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to remove cart item")
		return
	}
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Clear(store.ID, getCartToken(c))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to clear cart")
		return
	}
	response.Success(c, cart)
}
