package router

import (
	"fmt"
	"strings"

	"github.com/storeforge-next/internal/cache"
	"github.com/storeforge-next/internal/config"
	merchanthandlers "github.com/storeforge-next/internal/http/handlers/merchant"
	storefronthandlers "github.com/storeforge-next/internal/http/handlers/storefront"
	"github.com/storeforge-next/internal/logger"
	"github.com/storeforge-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按店面/商家分组）
	storefrontHandler := storefronthandlers.New(c)
	merchantHandler := merchanthandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 店面接口（按店铺 slug 路由）
		storefront := apiV1.Group("/stores/:store_slug")
		storefront.Use(TenantMiddleware(c.StoreService))
		{
			storefront.GET("", storefrontHandler.GetStore)
			storefront.GET("/categories", storefrontHandler.GetCategories)
			storefront.GET("/products", storefrontHandler.GetProducts)
			storefront.GET("/products/:product_slug", storefrontHandler.GetProduct)

			storefront.GET("/cart", storefrontHandler.GetCart)
			storefront.POST("/cart/items", storefrontHandler.AddCartItem)
			storefront.PUT("/cart/items/:product_id", storefrontHandler.UpdateCartItem)
			storefront.DELETE("/cart/items/:product_id", storefrontHandler.RemoveCartItem)
			storefront.DELETE("/cart", storefrontHandler.ClearCart)

			storefront.GET("/checkout/preview", storefrontHandler.PreviewCheckout)
			storefront.POST("/checkout/confirm",
				RateLimitMiddleware(redisClient, checkoutRule, KeyByIPAndHeader("X-Cart-Token")),
				storefrontHandler.ConfirmCheckout)
			storefront.GET("/orders/:order_no", storefrontHandler.GetOrder)
		}

		// 商家管理接口
		merchant := apiV1.Group("/merchant")
		{
			merchant.GET("/stores", merchantHandler.ListStores)
			merchant.POST("/stores", merchantHandler.CreateStore)
			merchant.GET("/stores/:store_id", merchantHandler.GetStore)
			merchant.PUT("/stores/:store_id", merchantHandler.UpdateStore)
			merchant.DELETE("/stores/:store_id", merchantHandler.DeleteStore)

			merchant.GET("/stores/:store_id/categories", merchantHandler.ListCategories)
			merchant.POST("/stores/:store_id/categories", merchantHandler.CreateCategory)
			merchant.PUT("/stores/:store_id/categories/:category_id", merchantHandler.UpdateCategory)
			merchant.DELETE("/stores/:store_id/categories/:category_id", merchantHandler.DeleteCategory)

			merchant.GET("/stores/:store_id/products", merchantHandler.ListProducts)
			merchant.POST("/stores/:store_id/products", merchantHandler.CreateProduct)
			merchant.GET("/stores/:store_id/products/:product_id", merchantHandler.GetProduct)
			merchant.PUT("/stores/:store_id/products/:product_id", merchantHandler.UpdateProduct)
			merchant.DELETE("/stores/:store_id/products/:product_id", merchantHandler.DeleteProduct)

			merchant.GET("/stores/:store_id/discounts", merchantHandler.ListDiscounts)
			merchant.POST("/stores/:store_id/discounts", merchantHandler.CreateDiscount)
			merchant.GET("/stores/:store_id/discounts/:discount_id", merchantHandler.GetDiscount)
			merchant.PUT("/stores/:store_id/discounts/:discount_id", merchantHandler.UpdateDiscount)
			merchant.DELETE("/stores/:store_id/discounts/:discount_id", merchantHandler.DeleteDiscount)
			merchant.GET("/stores/:store_id/discounts/:discount_id/usages", merchantHandler.ListDiscountUsages)

			merchant.GET("/stores/:store_id/orders", merchantHandler.ListOrders)
			merchant.GET("/stores/:store_id/orders/:order_id", merchantHandler.GetOrder)
			merchant.PUT("/stores/:store_id/orders/:order_id/status", merchantHandler.UpdateOrderStatus)
			merchant.GET("/stores/:store_id/payments", merchantHandler.ListPayments)
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
