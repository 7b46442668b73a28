package public

import "github.com/stroyprombeton/internal/provider"

// Handler 前台/公开接口处理器入口
// 说明：目录、搜索、购物车与询价订单均为游客接口。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
