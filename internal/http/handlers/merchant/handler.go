package merchant

import "github.com/storeforge-next/internal/provider"

// Handler 商家管理接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建商家处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
