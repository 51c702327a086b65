package provider

import (
	"github.com/storeforge-next/internal/cache"
	"github.com/storeforge-next/internal/config"
	"github.com/storeforge-next/internal/logger"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/queue"
	"github.com/storeforge-next/internal/repository"
	"github.com/storeforge-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	TxRunner    repository.TxRunner

	// Repositories
	StoreRepo         repository.StoreRepository
	CategoryRepo      repository.CategoryRepository
	ProductRepo       repository.ProductRepository
	CustomerRepo      repository.CustomerRepository
	CartRepo          repository.CartRepository
	DiscountRepo      repository.DiscountRepository
	DiscountUsageRepo repository.DiscountUsageRepository
	OrderRepo         repository.OrderRepository
	PaymentRepo       repository.PaymentRepository

	// Services
	StoreService         *service.StoreService
	CategoryService      *service.CategoryService
	ProductService       *service.ProductService
	CartService          *service.CartService
	DiscountService      *service.DiscountService
	DiscountAdminService *service.DiscountAdminService
	CheckoutService      *service.CheckoutService
	OrderService         *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.TxRunner = repository.NewTxRunner(db)
	c.StoreRepo = repository.NewStoreRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.DiscountRepo = repository.NewDiscountRepository(db)
	c.DiscountUsageRepo = repository.NewDiscountUsageRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
}

func (c *Container) initServices() {
	c.StoreService = service.NewStoreService(c.StoreRepo, c.Config.Store.SlugCacheSeconds)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.DiscountService = service.NewDiscountService(c.DiscountRepo)
	c.DiscountAdminService = service.NewDiscountAdminService(c.DiscountRepo, c.DiscountUsageRepo)
	c.CheckoutService = service.NewCheckoutService(
		c.TxRunner,
		c.CartRepo,
		c.ProductRepo,
		c.OrderRepo,
		c.PaymentRepo,
		c.DiscountUsageRepo,
		c.CustomerRepo,
		c.DiscountService,
		c.QueueClient,
		c.Config.Order.PendingExpireMinutes,
	)
	c.OrderService = service.NewOrderService(
		c.TxRunner,
		c.OrderRepo,
		c.ProductRepo,
		c.DiscountRepo,
		c.DiscountUsageRepo,
		c.PaymentRepo,
	)
}
