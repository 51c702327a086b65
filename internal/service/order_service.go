package service

import (
	"strings"
	"time"

	"github.com/storeforge-next/internal/constants"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	txRunner     repository.TxRunner
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	discountRepo repository.DiscountRepository
	usageRepo    repository.DiscountUsageRepository
	paymentRepo  repository.PaymentRepository
}

// NewOrderService 创建订单服务
func NewOrderService(txRunner repository.TxRunner, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, discountRepo repository.DiscountRepository, usageRepo repository.DiscountUsageRepository, paymentRepo repository.PaymentRepository) *OrderService {
	return &OrderService{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		discountRepo: discountRepo,
		usageRepo:    usageRepo,
		paymentRepo:  paymentRepo,
	}
}

var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCanceled:   true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCanceled:  true,
	},
}

func isTransitionAllowed(from, to string) bool {
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// GetByStoreAndID 获取订单详情
func (s *OrderService) GetByStoreAndID(storeID, orderID uint) (*models.Order, error) {
	if storeID == 0 || orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByStoreAndID(storeID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNo 根据订单编号获取订单
func (s *OrderService) GetByOrderNo(storeID uint, orderNo string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if storeID == 0 || orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(storeID, orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 获取订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// ListPayments 获取支付记录列表
func (s *OrderService) ListPayments(filter repository.PaymentListFilter) ([]models.Payment, int64, error) {
	return s.paymentRepo.List(filter)
}

// UpdateStatus 管理端更新订单状态（仅放行合法流转）
func (s *OrderService) UpdateStatus(storeID, orderID uint, targetStatus string) (*models.Order, error) {
	target := strings.ToLower(strings.TrimSpace(targetStatus))
	switch target {
	case constants.OrderStatusProcessing, constants.OrderStatusDelivered, constants.OrderStatusCanceled:
	default:
		return nil, ErrOrderStatusInvalid
	}

	order, err := s.GetByStoreAndID(storeID, orderID)
	if err != nil {
		return nil, err
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	if target == constants.OrderStatusCanceled {
		if err := s.cancelOrder(order, true); err != nil {
			return nil, err
		}
		return order, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}
	if target == constants.OrderStatusDelivered {
		updates["delivered_at"] = now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, updates); err != nil {
		return nil, err
	}
	order.Status = target
	order.UpdatedAt = now
	if target == constants.OrderStatusDelivered {
		order.DeliveredAt = &now
	}
	return order, nil
}

// CancelExpiredOrder 取消超时未处理订单（队列任务入口）
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return order, nil
	}
	if order.ExpiresAt == nil || order.ExpiresAt.After(time.Now()) {
		return order, nil
	}
	if err := s.cancelOrder(order, true); err != nil {
		return nil, err
	}
	return order, nil
}

// cancelOrder 事务内取消订单：回补库存、回退优惠码核销
func (s *OrderService) cancelOrder(order *models.Order, rollbackDiscount bool) error {
	if order == nil {
		return ErrOrderNotFound
	}
	now := time.Now()
	err := s.txRunner.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		updates := map[string]interface{}{
			"status":      constants.OrderStatusCanceled,
			"canceled_at": now,
			"updated_at":  now,
		}
		if err := orderRepo.UpdateStatus(order.ID, updates); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := productRepo.RestoreStock(order.StoreID, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if rollbackDiscount && order.DiscountID != nil {
			discountRepo := s.discountRepo.WithTx(tx)
			usageRepo := s.usageRepo.WithTx(tx)
			if err := usageRepo.DeleteByOrder(order.ID); err != nil {
				return err
			}
			if err := discountRepo.ReleaseUsage(*order.DiscountID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	order.Status = constants.OrderStatusCanceled
	order.CanceledAt = &now
	order.UpdatedAt = now
	return nil
}
