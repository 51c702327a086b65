package repository

import (
	"errors"
	"strings"

	"github.com/storeforge-next/internal/models"

	"gorm.io/gorm"
)

// StoreRepository 店铺数据访问接口
type StoreRepository interface {
	GetByID(id uint) (*models.Store, error)
	GetBySlug(slug string) (*models.Store, error)
	SlugExists(slug string) (bool, error)
	Create(store *models.Store) error
	Update(store *models.Store) error
	Delete(id uint) error
	List(filter StoreListFilter) ([]models.Store, int64, error)
	WithTx(tx *gorm.DB) *GormStoreRepository
}

// GormStoreRepository GORM 实现
type GormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓库
func NewStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStoreRepository) WithTx(tx *gorm.DB) *GormStoreRepository {
	if tx == nil {
		return r
	}
	return &GormStoreRepository{db: tx}
}

// GetByID 根据ID获取店铺
func (r *GormStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// GetBySlug 根据 slug 获取店铺
func (r *GormStoreRepository) GetBySlug(slug string) (*models.Store, error) {
	var store models.Store
	if err := r.db.Where("slug = ?", strings.TrimSpace(slug)).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// SlugExists 判断 slug 是否已被占用
func (r *GormStoreRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Store{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建店铺
func (r *GormStoreRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}

// Update 更新店铺
func (r *GormStoreRepository) Update(store *models.Store) error {
	return r.db.Save(store).Error
}

// Delete 删除店铺
func (r *GormStoreRepository) Delete(id uint) error {
	return r.db.Delete(&models.Store{}, id).Error
}

// List 获取店铺列表
func (r *GormStoreRepository) List(filter StoreListFilter) ([]models.Store, int64, error) {
	var stores []models.Store
	query := r.db.Model(&models.Store{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(name LIKE ? OR slug LIKE ?)", like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&stores).Error; err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}
