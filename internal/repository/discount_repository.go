package repository

import (
	"errors"

	"github.com/storeforge-next/internal/models"

	"gorm.io/gorm"
)

// DiscountRepository 优惠码数据访问接口
type DiscountRepository interface {
	GetByID(storeID, id uint) (*models.Discount, error)
	GetByCode(storeID uint, code string) (*models.Discount, error)
	Create(discount *models.Discount) error
	Update(discount *models.Discount) error
	Delete(storeID, id uint) error
	List(filter DiscountListFilter) ([]models.Discount, int64, error)
	RedeemUsage(id uint) (int64, error)
	ReleaseUsage(id uint) error
	WithTx(tx *gorm.DB) *GormDiscountRepository
}

// GormDiscountRepository GORM 实现
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 创建优惠码仓库
func NewDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDiscountRepository) WithTx(tx *gorm.DB) *GormDiscountRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountRepository{db: tx}
}

// GetByID 根据ID获取优惠码（限定店铺）
func (r *GormDiscountRepository) GetByID(storeID, id uint) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.Where("store_id = ?", storeID).First(&discount, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// GetByCode 根据优惠码获取记录（码以大写存储）
func (r *GormDiscountRepository) GetByCode(storeID uint, code string) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.Where("store_id = ? AND code = ?", storeID, code).First(&discount).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// Create 创建优惠码
func (r *GormDiscountRepository) Create(discount *models.Discount) error {
	return r.db.Create(discount).Error
}

// Update 更新优惠码
func (r *GormDiscountRepository) Update(discount *models.Discount) error {
	return r.db.Save(discount).Error
}

// Delete 删除优惠码
func (r *GormDiscountRepository) Delete(storeID, id uint) error {
	return r.db.Where("store_id = ?", storeID).Delete(&models.Discount{}, id).Error
}

// List 获取优惠码列表
func (r *GormDiscountRepository) List(filter DiscountListFilter) ([]models.Discount, int64, error) {
	var discounts []models.Discount
	query := r.db.Model(&models.Discount{})

	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.Code != "" {
		query = query.Where("code = ?", filter.Code)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&discounts).Error; err != nil {
		return nil, 0, err
	}
	return discounts, total, nil
}

// RedeemUsage 条件递增使用次数：资格检查与计数在同一条 UPDATE 内完成，
// 达到上限时影响行数为 0，并发兑换不会超发
func (r *GormDiscountRepository) RedeemUsage(id uint) (int64, error) {
	result := r.db.Model(&models.Discount{}).
		Where("id = ?", id).
		Where("usage_limit = 0 OR used_count < usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	return result.RowsAffected, result.Error
}

// ReleaseUsage 回退使用次数（订单取消时），不会减至负数
func (r *GormDiscountRepository) ReleaseUsage(id uint) error {
	return r.db.Model(&models.Discount{}).
		Where("id = ?", id).
		Where("used_count >= ?", 1).
		UpdateColumn("used_count", gorm.Expr("used_count - 1")).Error
}
