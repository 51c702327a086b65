package service

import (
	"strings"

	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{repo: repo, productRepo: productRepo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Slug      string
	Name      string
	SortOrder int
	IsActive  *bool
}

// List 获取分类列表
func (s *CategoryService) List(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.repo.List(filter)
}

// GetByID 获取分类详情
func (s *CategoryService) GetByID(storeID, id uint) (*models.Category, error) {
	if storeID == 0 || id == 0 {
		return nil, ErrCategoryNotFound
	}
	category, err := s.repo.GetByID(storeID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(storeID uint, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if storeID == 0 || name == "" {
		return nil, ErrCategoryInvalid
	}
	slug := sanitizeSlug(input.Slug)
	if slug == "" {
		slug = sanitizeSlug(name)
	}
	if slug == "" {
		return nil, ErrCategoryInvalid
	}
	exists, err := s.repo.SlugExists(storeID, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugExists
	}

	category := &models.Category{
		StoreID:   storeID,
		Slug:      slug,
		Name:      name,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(storeID, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.GetByID(storeID, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryInvalid
	}
	slug := sanitizeSlug(input.Slug)
	if slug == "" {
		slug = category.Slug
	}
	if slug != category.Slug {
		exists, err := s.repo.SlugExists(storeID, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrSlugExists
		}
	}

	category.Slug = slug
	category.Name = name
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类（存在商品时拒绝删除）
func (s *CategoryService) Delete(storeID, id uint) error {
	category, err := s.GetByID(storeID, id)
	if err != nil {
		return err
	}
	count, err := s.productRepo.CountByCategory(storeID, category.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(storeID, category.ID)
}
