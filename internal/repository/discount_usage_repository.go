package repository

import (
	"github.com/storeforge-next/internal/models"

	"gorm.io/gorm"
)

// DiscountUsageRepository 优惠码使用记录数据访问接口
type DiscountUsageRepository interface {
	Create(usage *models.DiscountUsage) error
	DeleteByOrder(orderID uint) error
	List(filter DiscountUsageListFilter) ([]models.DiscountUsage, int64, error)
	WithTx(tx *gorm.DB) *GormDiscountUsageRepository
}

// GormDiscountUsageRepository GORM 实现
type GormDiscountUsageRepository struct {
	db *gorm.DB
}

// NewDiscountUsageRepository 创建使用记录仓库
func NewDiscountUsageRepository(db *gorm.DB) *GormDiscountUsageRepository {
	return &GormDiscountUsageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDiscountUsageRepository) WithTx(tx *gorm.DB) *GormDiscountUsageRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountUsageRepository{db: tx}
}

// Create 创建使用记录
func (r *GormDiscountUsageRepository) Create(usage *models.DiscountUsage) error {
	return r.db.Create(usage).Error
}

// DeleteByOrder 按订单删除使用记录（订单取消时回收）
func (r *GormDiscountUsageRepository) DeleteByOrder(orderID uint) error {
	return r.db.Where("order_id = ?", orderID).Delete(&models.DiscountUsage{}).Error
}

// List 获取使用记录列表
func (r *GormDiscountUsageRepository) List(filter DiscountUsageListFilter) ([]models.DiscountUsage, int64, error) {
	var usages []models.DiscountUsage
	query := r.db.Model(&models.DiscountUsage{})

	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.DiscountID > 0 {
		query = query.Where("discount_id = ?", filter.DiscountID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&usages).Error; err != nil {
		return nil, 0, err
	}
	return usages, total, nil
}
