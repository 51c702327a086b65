package router

import (
	"errors"

	"github.com/storeforge-next/internal/http/response"
	"github.com/storeforge-next/internal/service"

	"github.com/gin-gonic/gin"
)

const contextStoreKey = "store"

// TenantMiddleware 租户中间件：解析路径中的店铺 slug 并注入上下文
func TenantMiddleware(storeService *service.StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("store_slug")
		store, err := storeService.GetActiveBySlug(c.Request.Context(), slug)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrStoreNotFound):
				response.NotFound(c, "store not found")
			case errors.Is(err, service.ErrStoreInactive):
				response.NotFound(c, "store not available")
			default:
				response.Error(c, response.CodeInternal, "failed to resolve store")
			}
			c.Abort()
			return
		}
		c.Set(contextStoreKey, store)
		c.Next()
	}
}
