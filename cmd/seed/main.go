package main

import (
	"time"

	"github.com/storeforge-next/internal/config"
	"github.com/storeforge-next/internal/constants"
	"github.com/storeforge-next/internal/logger"
	"github.com/storeforge-next/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示店铺
	store := models.Store{
		Slug:        "demo",
		Name:        "Demo Store",
		Description: "用于本地联调的演示店铺",
		Currency:    "USD",
		IsActive:    true,
	}
	var existingStore models.Store
	if err := models.DB.Where("slug = ?", store.Slug).First(&existingStore).Error; err != nil {
		if err := models.DB.Create(&store).Error; err != nil {
			stdLog.Fatalf("Failed to create store: %v", err)
		}
		stdLog.Printf("Created store: %s", store.Slug)
	} else {
		store = existingStore
		stdLog.Printf("Store already exists: %s", store.Slug)
	}

	// 分类
	categories := []models.Category{
		{StoreID: store.ID, Slug: "electronics", Name: "Electronics", SortOrder: 1, IsActive: true},
		{StoreID: store.ID, Slug: "lifestyle", Name: "Lifestyle", SortOrder: 2, IsActive: true},
		{StoreID: store.ID, Slug: "accessories", Name: "Accessories", SortOrder: 3, IsActive: true},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("store_id = ? AND slug = ?", store.ID, cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("store_id = ?", store.ID).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	electronicsID := categoryIDs["electronics"]
	lifestyleID := categoryIDs["lifestyle"]

	// 商品（金额使用最小货币单位）
	products := []models.Product{
		{
			StoreID:       store.ID,
			CategoryID:    &electronicsID,
			Slug:          "wireless-earphones",
			Title:         "Wireless Bluetooth Earphones",
			Description:   "高品质音质，长续航，舒适佩戴",
			PriceAmount:   models.NewMoneyFromInt(4999),
			StockQuantity: 100,
			IsActive:      true,
			SortOrder:     1,
		},
		{
			StoreID:       store.ID,
			CategoryID:    &electronicsID,
			Slug:          "mechanical-keyboard",
			Title:         "Mechanical Keyboard",
			Description:   "热插拔轴体，RGB 背光",
			PriceAmount:   models.NewMoneyFromInt(12900),
			StockQuantity: 50,
			IsActive:      true,
			SortOrder:     2,
		},
		{
			StoreID:       store.ID,
			CategoryID:    &lifestyleID,
			Slug:          "thermos-bottle",
			Title:         "Thermos Bottle",
			Description:   "24 小时保温保冷",
			PriceAmount:   models.NewMoneyFromInt(2500),
			StockQuantity: constants.StockUnlimited,
			IsActive:      true,
			SortOrder:     3,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("store_id = ? AND slug = ?", store.ID, product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 优惠码
	expires := time.Now().AddDate(1, 0, 0)
	discounts := []models.Discount{
		{
			StoreID:     store.ID,
			Code:        "SAVE20",
			Type:        constants.DiscountTypePercentage,
			Value:       models.NewMoneyFromInt(20),
			MaxDiscount: models.NewMoneyFromInt(1500),
			UsageLimit:  0,
			ExpiresAt:   &expires,
			IsActive:    true,
		},
		{
			StoreID:        store.ID,
			Code:           "FLAT500",
			Type:           constants.DiscountTypeFixed,
			Value:          models.NewMoneyFromInt(500),
			MinOrderAmount: models.NewMoneyFromInt(2000),
			UsageLimit:     100,
			ExpiresAt:      &expires,
			IsActive:       true,
		},
	}
	for _, discount := range discounts {
		var existing models.Discount
		if err := models.DB.Where("store_id = ? AND code = ?", store.ID, discount.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&discount).Error; err != nil {
				stdLog.Printf("Failed to create discount %s: %v", discount.Code, err)
			} else {
				stdLog.Printf("Created discount: %s", discount.Code)
			}
		} else {
			stdLog.Printf("Discount already exists: %s", discount.Code)
		}
	}

	stdLog.Println("Seed completed")
}
