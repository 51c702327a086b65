package service

import (
	"strings"

	"github.com/storeforge-next/internal/constants"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// ProductInput 创建/更新商品输入（金额使用最小货币单位）
type ProductInput struct {
	Slug          string
	Title         string
	Description   string
	PriceAmount   int64
	CategoryID    *uint
	Images        []string
	Tags          []string
	StockQuantity int
	SortOrder     int
	IsActive      *bool
}

// ListPublic 店面商品列表（仅上架商品）
func (s *ProductService) ListPublic(storeID uint, categoryID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		StoreID:      storeID,
		CategoryID:   categoryID,
		Search:       strings.TrimSpace(search),
		OnlyActive:   true,
		WithCategory: true,
	})
}

// GetPublicBySlug 店面商品详情
func (s *ProductService) GetPublicBySlug(storeID uint, slug string) (*models.Product, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if storeID == 0 || slug == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.repo.GetBySlug(storeID, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	return product, nil
}

// List 管理端商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// GetByID 获取商品详情
func (s *ProductService) GetByID(storeID, id uint) (*models.Product, error) {
	if storeID == 0 || id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.repo.GetByID(storeID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(storeID uint, input ProductInput) (*models.Product, error) {
	title := strings.TrimSpace(input.Title)
	if storeID == 0 || title == "" {
		return nil, ErrProductInvalid
	}
	if input.PriceAmount < 0 {
		return nil, ErrProductInvalid
	}
	if input.StockQuantity < 0 && input.StockQuantity != constants.StockUnlimited {
		return nil, ErrProductInvalid
	}
	if err := s.ensureCategory(storeID, input.CategoryID); err != nil {
		return nil, err
	}
	slug := sanitizeSlug(input.Slug)
	if slug == "" {
		slug = sanitizeSlug(title)
	}
	if slug == "" {
		return nil, ErrProductInvalid
	}
	exists, err := s.repo.SlugExists(storeID, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugExists
	}

	product := &models.Product{
		StoreID:       storeID,
		CategoryID:    input.CategoryID,
		Slug:          slug,
		Title:         title,
		Description:   input.Description,
		PriceAmount:   models.NewMoneyFromInt(input.PriceAmount),
		Images:        models.StringArray(input.Images),
		Tags:          models.StringArray(input.Tags),
		StockQuantity: input.StockQuantity,
		SortOrder:     input.SortOrder,
		IsActive:      true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(storeID, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetByID(storeID, id)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrProductInvalid
	}
	if input.PriceAmount < 0 {
		return nil, ErrProductInvalid
	}
	if input.StockQuantity < 0 && input.StockQuantity != constants.StockUnlimited {
		return nil, ErrProductInvalid
	}
	if err := s.ensureCategory(storeID, input.CategoryID); err != nil {
		return nil, err
	}
	slug := sanitizeSlug(input.Slug)
	if slug == "" {
		slug = product.Slug
	}
	if slug != product.Slug {
		exists, err := s.repo.SlugExists(storeID, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrSlugExists
		}
	}

	product.CategoryID = input.CategoryID
	product.Slug = slug
	product.Title = title
	product.Description = input.Description
	product.PriceAmount = models.NewMoneyFromInt(input.PriceAmount)
	product.Images = models.StringArray(input.Images)
	product.Tags = models.StringArray(input.Tags)
	product.StockQuantity = input.StockQuantity
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品（软删除）
func (s *ProductService) Delete(storeID, id uint) error {
	product, err := s.GetByID(storeID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(storeID, product.ID)
}

// ensureCategory 校验分类归属当前店铺
func (s *ProductService) ensureCategory(storeID uint, categoryID *uint) error {
	if categoryID == nil || *categoryID == 0 {
		return nil
	}
	category, err := s.categoryRepo.GetByID(storeID, *categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}
