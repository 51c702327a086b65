package storefront

import (
	"strings"

	"github.com/storeforge-next/internal/http/response"
	"github.com/storeforge-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	contextStoreKey = "store"
	cartTokenHeader = "X-Cart-Token"
)

// getStore 从上下文读取租户中间件注入的店铺。
func getStore(c *gin.Context) (*models.Store, bool) {
	value, exists := c.Get(contextStoreKey)
	if !exists {
		respondError(c, response.CodeNotFound, "store not found", nil)
		return nil, false
	}
	store, ok := value.(*models.Store)
	if !ok || store == nil {
		respondError(c, response.CodeInternal, "store context invalid", nil)
		return nil, false
	}
	return store, true
}

// getCartToken 读取购物车令牌（优先请求头，其次查询参数）。
func getCartToken(c *gin.Context) string {
	token := strings.TrimSpace(c.GetHeader(cartTokenHeader))
	if token == "" {
		token = strings.TrimSpace(c.Query("cart_token"))
	}
	return token
}
