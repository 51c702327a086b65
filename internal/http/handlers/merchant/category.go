package merchant

import (
	"strconv"

	handlershared "github.com/storeforge-next/internal/http/handlers/shared"
	"github.com/storeforge-next/internal/http/response"
	"github.com/storeforge-next/internal/repository"
	"github.com/storeforge-next/internal/service"

	"github.com/gin-gonic/gin"
)

// categoryRequest 创建/更新分类请求体
type categoryRequest struct {
	Slug      string `json:"slug"`
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

func (r categoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Slug:      r.Slug,
		Name:      r.Name,
		SortOrder: r.SortOrder,
		IsActive:  r.IsActive,
	}
}

// ListCategories 获取分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	categories, total, err := h.CategoryService.List(repository.CategoryListFilter{
		Page:     page,
		PageSize: pageSize,
		StoreID:  storeID,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch categories", err)
		return
	}
	response.SuccessWithPage(c, categories, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Create(storeID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "failed to create category")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	categoryID, ok := parseUintParam(c, "category_id")
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Update(storeID, categoryID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "failed to update category")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	storeID, ok := parseUintParam(c, "store_id")
	if !ok {
		return
	}
	categoryID, ok := parseUintParam(c, "category_id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(storeID, categoryID); err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "failed to delete category")
		return
	}
	response.SuccessWithMsg(c, "category deleted", nil)
}
