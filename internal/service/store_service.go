package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/storeforge-next/internal/cache"
	"github.com/storeforge-next/internal/logger"
	"github.com/storeforge-next/internal/models"
	"github.com/storeforge-next/internal/repository"
)

// slug 仅允许小写字母、数字和中划线
var slugSanitizer = regexp.MustCompile(`[^a-z0-9-]+`)

// StoreService 店铺业务服务
type StoreService struct {
	repo             repository.StoreRepository
	slugCacheSeconds int
}

// NewStoreService 创建店铺服务
func NewStoreService(repo repository.StoreRepository, slugCacheSeconds int) *StoreService {
	return &StoreService{repo: repo, slugCacheSeconds: slugCacheSeconds}
}

// CreateStoreInput 创建店铺输入
type CreateStoreInput struct {
	Slug        string
	Name        string
	Description string
	Currency    string
	Settings    map[string]interface{}
}

// UpdateStoreInput 更新店铺输入
type UpdateStoreInput struct {
	Name        *string
	Description *string
	Currency    *string
	Settings    map[string]interface{}
	IsActive    *bool
}

// GetActiveBySlug 店面路由解析：根据 slug 获取启用中的店铺，命中 Redis 缓存时跳过数据库
func (s *StoreService) GetActiveBySlug(ctx context.Context, slug string) (*models.Store, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, ErrStoreNotFound
	}

	cacheKey := storeSlugCacheKey(slug)
	if cache.Enabled() {
		var cached models.Store
		found, err := cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warnw("store_slug_cache_read_failed", "slug", slug, "error", err)
		} else if found {
			if !cached.IsActive {
				return nil, ErrStoreInactive
			}
			return &cached, nil
		}
	}

	store, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	if !store.IsActive {
		return nil, ErrStoreInactive
	}
	if cache.Enabled() && s.slugCacheSeconds > 0 {
		ttl := time.Duration(s.slugCacheSeconds) * time.Second
		if err := cache.SetJSON(ctx, cacheKey, store, ttl); err != nil {
			logger.Warnw("store_slug_cache_write_failed", "slug", slug, "error", err)
		}
	}
	return store, nil
}

// GetByID 获取店铺详情
func (s *StoreService) GetByID(id uint) (*models.Store, error) {
	if id == 0 {
		return nil, ErrStoreNotFound
	}
	store, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// List 获取店铺列表
func (s *StoreService) List(filter repository.StoreListFilter) ([]models.Store, int64, error) {
	return s.repo.List(filter)
}

// Create 创建店铺，slug 冲突时自动追加序号
func (s *StoreService) Create(input CreateStoreInput) (*models.Store, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrStoreInvalid
	}
	base := sanitizeSlug(input.Slug)
	if base == "" {
		base = sanitizeSlug(name)
	}
	if base == "" {
		return nil, ErrStoreInvalid
	}
	slug, err := s.resolveUniqueSlug(base)
	if err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "USD"
	}
	store := &models.Store{
		Slug:         slug,
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		Currency:     currency,
		SettingsJSON: models.JSON(input.Settings),
		IsActive:     true,
	}
	if err := s.repo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// Update 更新店铺（slug 不可变更）
func (s *StoreService) Update(id uint, input UpdateStoreInput) (*models.Store, error) {
	store, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrStoreInvalid
		}
		store.Name = name
	}
	if input.Description != nil {
		store.Description = strings.TrimSpace(*input.Description)
	}
	if input.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if currency == "" {
			return nil, ErrStoreInvalid
		}
		store.Currency = currency
	}
	if input.Settings != nil {
		store.SettingsJSON = models.JSON(input.Settings)
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}
	if err := s.repo.Update(store); err != nil {
		return nil, err
	}
	s.invalidateSlugCache(store.Slug)
	return store, nil
}

// Delete 删除店铺（软删除）
func (s *StoreService) Delete(id uint) error {
	store, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(store.ID); err != nil {
		return err
	}
	s.invalidateSlugCache(store.Slug)
	return nil
}

// resolveUniqueSlug 冲突时追加 -2、-3 等序号，尝试上限后报错
func (s *StoreService) resolveUniqueSlug(base string) (string, error) {
	candidate := base
	for i := 2; i <= 50; i++ {
		exists, err := s.repo.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrSlugExhausted
}

func (s *StoreService) invalidateSlugCache(slug string) {
	if err := cache.Del(context.Background(), storeSlugCacheKey(slug)); err != nil {
		logger.Warnw("store_slug_cache_invalidate_failed", "slug", slug, "error", err)
	}
}

func storeSlugCacheKey(slug string) string {
	return "store:slug:" + strings.ToLower(strings.TrimSpace(slug))
}

// sanitizeSlug 规范化 slug：小写、空白转中划线、去除非法字符
func sanitizeSlug(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugSanitizer.ReplaceAllString(slug, "")
	return strings.Trim(slug, "-")
}
