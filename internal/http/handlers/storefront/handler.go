package storefront

import "github.com/storeforge-next/internal/provider"

// Handler 店面/买家侧接口处理器入口
// 说明：该处理器挂载在 /api/v1/stores/:store_slug 下，依赖租户中间件解析店铺。
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
