package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/storeforge-next/internal/constants"
	"github.com/storeforge-next/internal/logger"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/queue"
	"github.com/storeforge-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService 结算服务：在单个数据库事务内完成
// 购物车校验、优惠计算、订单与支付落库、优惠码核销和购物车清空
type CheckoutService struct {
	txRunner        repository.TxRunner
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	orderRepo       repository.OrderRepository
	paymentRepo     repository.PaymentRepository
	usageRepo       repository.DiscountUsageRepository
	customerRepo    repository.CustomerRepository
	discountService *DiscountService
	queueClient     *queue.Client
	expireMinutes   int
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(txRunner repository.TxRunner, cartRepo repository.CartRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository, usageRepo repository.DiscountUsageRepository, customerRepo repository.CustomerRepository, discountService *DiscountService, queueClient *queue.Client, expireMinutes int) *CheckoutService {
	return &CheckoutService{
		txRunner:        txRunner,
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		orderRepo:       orderRepo,
		paymentRepo:     paymentRepo,
		usageRepo:       usageRepo,
		customerRepo:    customerRepo,
		discountService: discountService,
		queueClient:     queueClient,
		expireMinutes:   expireMinutes,
	}
}

// PaymentInput 结算支付输入（网关结果由外层透传，仅作记录）
type PaymentInput struct {
	Method      string
	Status      string
	ProviderRef string
	Payload     models.JSON
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	StoreID       uint
	CartToken     string
	DiscountCode  string
	CustomerID    *uint
	CustomerEmail string
	ClientIP      string
	Payment       PaymentInput
}

// CheckoutResult 结算结果
type CheckoutResult struct {
	Order         *models.Order `json:"order"`
	PaymentStatus string        `json:"payment_status"`
}

// CheckoutPreview 结算金额预览
type CheckoutPreview struct {
	Currency       string       `json:"currency"`
	SubtotalAmount models.Money `json:"subtotal_amount"`
	DiscountAmount models.Money `json:"discount_amount"`
	TotalAmount    models.Money `json:"total_amount"`
}

// Preview 预览结算金额（不落库）
func (s *CheckoutService) Preview(store *models.Store, cartToken, discountCode string) (*CheckoutPreview, error) {
	if store == nil {
		return nil, ErrStoreNotFound
	}
	cart, err := s.validateCart(s.cartRepo, store.ID, cartToken)
	if err != nil {
		return nil, err
	}
	subtotal := cartSubtotal(cart)
	deduction, _, err := s.discountService.Calculate(store.ID, discountCode, subtotal)
	if err != nil {
		return nil, err
	}
	return &CheckoutPreview{
		Currency:       store.Currency,
		SubtotalAmount: subtotal,
		DiscountAmount: deduction,
		TotalAmount:    models.NewMoneyFromDecimal(subtotal.Decimal.Sub(deduction.Decimal)),
	}, nil
}

// Confirm 确认结算：事务内全部成功才提交，任一失败整体回滚
func (s *CheckoutService) Confirm(store *models.Store, input CheckoutInput) (*CheckoutResult, error) {
	if store == nil {
		return nil, ErrStoreNotFound
	}
	if strings.TrimSpace(input.CartToken) == "" {
		return nil, ErrOrderInvalid
	}
	method := strings.ToLower(strings.TrimSpace(input.Payment.Method))
	switch method {
	case constants.PaymentMethodCard, constants.PaymentMethodWallet, constants.PaymentMethodCOD:
	default:
		return nil, ErrPaymentMethodInvalid
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.resolveExpireMinutes()) * time.Minute)

	var order *models.Order
	var payment *models.Payment

	err := s.txRunner.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)
		usageRepo := s.usageRepo.WithTx(tx)
		discountService := s.discountService.WithTx(tx)

		cart, err := s.validateCart(cartRepo, store.ID, input.CartToken)
		if err != nil {
			return err
		}

		subtotal := cartSubtotal(cart)
		deduction, discount, err := discountService.Calculate(store.ID, input.DiscountCode, subtotal)
		if err != nil {
			return err
		}
		total := models.NewMoneyFromDecimal(subtotal.Decimal.Sub(deduction.Decimal))

		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			affected, err := productRepo.ReserveStock(store.ID, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockInsufficient
			}
			title := ""
			if item.Product != nil {
				title = item.Product.Title
			}
			lineTotal := item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
			items = append(items, models.OrderItem{
				ProductID:  item.ProductID,
				Title:      title,
				UnitPrice:  item.UnitPrice,
				Quantity:   item.Quantity,
				TotalPrice: models.NewMoneyFromDecimal(lineTotal),
				CreatedAt:  now,
			})
		}

		email := strings.ToLower(strings.TrimSpace(input.CustomerEmail))
		customerID, err := s.resolveCustomer(tx, store.ID, input.CustomerID, email, now)
		if err != nil {
			return err
		}

		order = &models.Order{
			OrderNo:        generateOrderNo(),
			StoreID:        store.ID,
			CustomerID:     customerID,
			CustomerEmail:  email,
			Status:         constants.OrderStatusPending,
			Currency:       store.Currency,
			SubtotalAmount: subtotal,
			DiscountAmount: deduction,
			TotalAmount:    total,
			ClientIP:       strings.TrimSpace(input.ClientIP),
			ExpiresAt:      &expiresAt,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if discount != nil {
			order.DiscountID = &discount.ID
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}

		payment = &models.Payment{
			OrderID:         order.ID,
			StoreID:         store.ID,
			Amount:          total,
			Currency:        store.Currency,
			Method:          method,
			Status:          normalizePaymentStatus(input.Payment.Status),
			ProviderRef:     strings.TrimSpace(input.Payment.ProviderRef),
			ProviderPayload: input.Payment.Payload,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		if payment.Status == constants.PaymentStatusDeclined {
			return ErrPaymentDeclined
		}

		if discount != nil {
			affected, err := discountService.discountRepo.RedeemUsage(discount.ID)
			if err != nil {
				return err
			}
			// 并发兑换打满上限时放弃本次结算，避免超发
			if affected == 0 {
				return ErrDiscountExhausted
			}
			usage := &models.DiscountUsage{
				DiscountID: discount.ID,
				StoreID:    store.ID,
				OrderID:    order.ID,
				CustomerID: customerID,
				Amount:     deduction,
				CreatedAt:  now,
			}
			if err := usageRepo.Create(usage); err != nil {
				return err
			}
		}

		return cartRepo.ClearItems(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	if s.queueClient != nil {
		if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{
			OrderID: order.ID,
		}, time.Until(expiresAt)); err != nil {
			logger.Errorw("order_enqueue_timeout_cancel_failed",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"error", err,
			)
		}
	}

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		order = full
	}
	return &CheckoutResult{
		Order:         order,
		PaymentStatus: payment.Status,
	}, nil
}

// resolveCustomer 按邮箱绑定顾客，不存在时创建（游客无邮箱时保持为空）
func (s *CheckoutService) resolveCustomer(tx *gorm.DB, storeID uint, customerID *uint, email string, now time.Time) (*uint, error) {
	if customerID != nil && *customerID > 0 {
		return customerID, nil
	}
	if email == "" {
		return nil, nil
	}
	customerRepo := s.customerRepo.WithTx(tx)
	customer, err := customerRepo.GetByEmail(storeID, email)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &models.Customer{
			StoreID:   storeID,
			Email:     email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := customerRepo.Create(customer); err != nil {
			return nil, err
		}
	}
	return &customer.ID, nil
}

// validateCart 校验购物车：存在、属于该店铺、非空
func (s *CheckoutService) validateCart(cartRepo repository.CartRepository, storeID uint, token string) (*models.Cart, error) {
	if storeID == 0 || strings.TrimSpace(token) == "" {
		return nil, ErrOrderInvalid
	}
	cart, err := cartRepo.GetByStoreAndToken(storeID, token)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	return cart, nil
}

func (s *CheckoutService) resolveExpireMinutes() int {
	if s.expireMinutes > 0 {
		return s.expireMinutes
	}
	return 30
}

// cartSubtotal 按单价快照汇总折前金额
func cartSubtotal(cart *models.Cart) models.Money {
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return models.NewMoneyFromDecimal(subtotal)
}

// normalizePaymentStatus 规范化网关结果：未传视为待支付，未知状态按拒付处理
func normalizePaymentStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.PaymentStatusSucceeded, "success", "paid":
		return constants.PaymentStatusSucceeded
	case constants.PaymentStatusPending, "":
		return constants.PaymentStatusPending
	default:
		return constants.PaymentStatusDeclined
	}
}

// generateOrderNo 生成订单编号（时间戳 + 随机尾号）
func generateOrderNo() string {
	suffix, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		suffix = big.NewInt(time.Now().UnixNano() % 1000000)
	}
	return fmt.Sprintf("SF%s%06d", time.Now().Format("20060102150405"), suffix.Int64())
}
