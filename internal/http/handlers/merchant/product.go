package merchant

import (
	"strconv"
	"strings"

	handlershared "github.com/storeforge-next/internal/http/handlers/shared"
	"github.com/storeforge-next/internal/http/response"
	"github.com/storeforge-next/internal/repository"
	"github.com/storeforge-next/internal/service"

	"github.com/gin-gonic/gin"
)

// productRequest 创建/更新商品请求体（金额使用最小货币单位）
type productRequest struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	PriceAmount   int64    `json:"price_amount"`
	CategoryID    *uint    `json:"category_id"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	StockQuantity int      `json:"stock_quantity"`
	SortOrder     int      `json:"sort_order"`
	IsActive      *bool    `json:"is_active"`
}

func (r productRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Slug:          r.Slug,
		Title:         r.Title,
		Description:   r.Description,
		PriceAmount:   r.PriceAmount,
		CategoryID:    r.CategoryID,
		Images:        r.Images,
		Tags:          r.Tags,
		StockQuantity: r.StockQuantity,
		SortOrder:     r.SortOrder,
		IsActive:      r.IsActive,
	}
}

// ListProducts 获取商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		StoreID:      storeID,
		CategoryID:   uint(categoryID),
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch products", err)
		return
	}
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(storeID, productID)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "failed to fetch product")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Create(storeID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "failed to create product")
		return
	}
	requestLog(c).Infow("product_created", "store_id", storeID, "product_id", product.ID, "slug", product.Slug)
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Update(storeID, productID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "failed to update product")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(storeID, productID); err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "failed to delete product")
		return
	}
	response.SuccessWithMsg(c, "product deleted", nil)
}
