package repository

import (
	"errors"

	"github.com/storeforge-next/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	GetByID(storeID, id uint) (*models.Category, error)
	SlugExists(storeID uint, slug string) (bool, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(storeID, id uint) error
	List(filter CategoryListFilter) ([]models.Category, int64, error)
	WithTx(tx *gorm.DB) *GormCategoryRepository
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) *GormCategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

// GetByID 根据ID获取分类（限定店铺）
func (r *GormCategoryRepository) GetByID(storeID, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("store_id = ?", storeID).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// SlugExists 判断 slug 是否在店铺内已被占用
func (r *GormCategoryRepository) SlugExists(storeID uint, slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).
		Where("store_id = ? AND slug = ?", storeID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete 删除分类
func (r *GormCategoryRepository) Delete(storeID, id uint) error {
	return r.db.Where("store_id = ?", storeID).Delete(&models.Category{}, id).Error
}

// List 获取分类列表
func (r *GormCategoryRepository) List(filter CategoryListFilter) ([]models.Category, int64, error) {
	var categories []models.Category
	query := r.db.Model(&models.Category{})

	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order asc, id asc").Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}
