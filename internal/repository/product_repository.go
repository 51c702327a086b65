package repository

import (
	"errors"

	"github.com/storeforge-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(storeID, id uint) (*models.Product, error)
	GetBySlug(storeID uint, slug string) (*models.Product, error)
	SlugExists(storeID uint, slug string) (bool, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(storeID, id uint) error
	List(filter ProductListFilter) ([]models.Product, int64, error)
	CountByCategory(storeID, categoryID uint) (int64, error)
	ReserveStock(storeID, id uint, quantity int) (int64, error)
	RestoreStock(storeID, id uint, quantity int) error
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// GetByID 根据ID获取商品（限定店铺）
func (r *GormProductRepository) GetByID(storeID, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("store_id = ?", storeID).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品（限定店铺）
func (r *GormProductRepository) GetBySlug(storeID uint, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("store_id = ? AND slug = ?", storeID, slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// SlugExists 判断 slug 是否在店铺内已被占用
func (r *GormProductRepository) SlugExists(storeID uint, slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).
		Where("store_id = ? AND slug = ?", storeID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(storeID, id uint) error {
	return r.db.Where("store_id = ?", storeID).Delete(&models.Product{}, id).Error
}

// List 获取商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product
	query := r.db.Model(&models.Product{})

	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(title LIKE ? OR slug LIKE ?)", like, like)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithCategory {
		query = query.Preload("Category")
	}

	if err := query.Order("sort_order asc, id desc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// CountByCategory 统计分类下的商品数量
func (r *GormProductRepository) CountByCategory(storeID, categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("store_id = ? AND category_id = ?", storeID, categoryID).
		Count(&count).Error
	return count, err
}

// ReserveStock 条件扣减库存（库存不足时影响行数为 0）
func (r *GormProductRepository) ReserveStock(storeID, id uint, quantity int) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("store_id = ? AND id = ?", storeID, id).
		Where("stock_quantity = ? OR stock_quantity >= ?", -1, quantity).
		UpdateColumn("stock_quantity", gorm.Expr(
			"CASE WHEN stock_quantity = ? THEN stock_quantity ELSE stock_quantity - ? END", -1, quantity,
		))
	return result.RowsAffected, result.Error
}

// RestoreStock 回补库存（无限库存商品保持 -1 不变）
func (r *GormProductRepository) RestoreStock(storeID, id uint, quantity int) error {
	return r.db.Model(&models.Product{}).
		Where("store_id = ? AND id = ?", storeID, id).
		Where("stock_quantity <> ?", -1).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error
}
