package merchant

import (
	"strconv"

	handlershared "github.com/storeforge-next/internal/http/handlers/shared"
	"github.com/storeforge-next/internal/http/response"
	"github.com/storeforge-next/internal/repository"
	"github.com/storeforge-next/internal/service"

	"github.com/gin-gonic/gin"
)

// createStoreRequest 创建店铺请求体
type createStoreRequest struct {
	Slug        string                 `json:"slug"`
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Currency    string                 `json:"currency"`
	Settings    map[string]interface{} `json:"settings"`
}

// updateStoreRequest 更新店铺请求体
type updateStoreRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Currency    *string                `json:"currency"`
	Settings    map[string]interface{} `json:"settings"`
	IsActive    *bool                  `json:"is_active"`
}

// ListStores 获取店铺列表
func (h *Handler) ListStores(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.StoreListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	stores, total, err := h.StoreService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch stores", err)
		return
	}
	response.SuccessWithPage(c, stores, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetStore 获取店铺详情
func (h *Handler) GetStore(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	store, err := h.StoreService.GetByID(storeID)
	if err != nil {
		respondWithMappedError(c, err, storeErrorRules, response.CodeInternal, "failed to fetch store")
		return
	}
	response.Success(c, store)
}

// CreateStore 创建店铺
func (h *Handler) CreateStore(c *gin.Context) {
	var req createStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	store, err := h.StoreService.Create(service.CreateStoreInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Currency:    req.Currency,
		Settings:    req.Settings,
	})
	if err != nil {
		respondWithMappedError(c, err, storeErrorRules, response.CodeInternal, "failed to create store")
		return
	}
	requestLog(c).Infow("store_created", "store_id", store.ID, "slug", store.Slug)
	response.Success(c, store)
}

// UpdateStore 更新店铺
func (h *Handler) UpdateStore(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	var req updateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	store, err := h.StoreService.Update(storeID, service.UpdateStoreInput{
		Name:        req.Name,
		Description: req.Description,
		Currency:    req.Currency,
		Settings:    req.Settings,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondWithMappedError(c, err, storeErrorRules, response.CodeInternal, "failed to update store")
		return
	}
	response.Success(c, store)
}

// DeleteStore 删除店铺
func (h *Handler) DeleteStore(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	if err := h.StoreService.Delete(storeID); err != nil {
		respondWithMappedError(c, err, storeErrorRules, response.CodeInternal, "failed to delete store")
		return
	}
	response.SuccessWithMsg(c, "store deleted", nil)
}
