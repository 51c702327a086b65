package storefront

import (
	"strconv"
	"strings"

	handlershared "github.com/storeforge-next/internal/http/handlers/shared"
	"github.com/storeforge-next/internal/http/response"
	"github.com/storeforge-next/internal/repository"
	"github.com/storeforge-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetStore 获取店面基础信息
func (h *Handler) GetStore(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"id":          store.ID,
		"slug":        store.Slug,
		"name":        store.Name,
		"description": store.Description,
		"currency":    store.Currency,
		"settings":    store.SettingsJSON,
	})
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	categories, _, err := h.CategoryService.List(repository.CategoryListFilter{
		StoreID:    store.ID,
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch categories", err)
		return
	}
	response.Success(c, categories)
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	store, ok := getStore(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListPublic(store.ID, uint(categoryID), search, page, pageSize)
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
	store, ok := getStore(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetPublicBySlug(store.ID, c.Param("product_slug"))
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
			{target: service.ErrProductNotAvailable, code: response.CodeNotFound, msg: "product not available"},
		}, response.CodeInternal, "failed to fetch product")
		return
	}
	response.Success(c, product)
}
