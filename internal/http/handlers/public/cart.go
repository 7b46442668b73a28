package public

import (
	"strings"

	"github.com/stroyprombeton/internal/constants"
	"github.com/stroyprombeton/internal/http/response"
	"github.com/stroyprombeton/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	OptionID uint `json:"option_id" form:"option_id" binding:"required"`
	Quantity int  `json:"quantity" form:"quantity"`
}

// CartRemoveRequest 移除购物车项请求
type CartRemoveRequest struct {
	OptionID uint `json:"option_id" form:"option_id" binding:"required"`
}

// resolveCartToken 读取 X-Cart-Token；缺失时签发新令牌，格式非法时报错。
// 令牌总会回写到响应头。
func resolveCartToken(c *gin.Context) (string, error) {
	raw := strings.TrimSpace(c.GetHeader(constants.HeaderCartToken))
	if raw == "" {
		token := service.NewCartToken()
		c.Header(constants.HeaderCartToken, token)
		return token, nil
	}
	token, err := service.NormalizeCartToken(raw)
	if err != nil {
		return "", err
	}
	c.Header(constants.HeaderCartToken, token)
	return token, nil
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	token, err := resolveCartToken(c)
	if err != nil {
		respondCartError(c, err)
		return
	}
	cart, err := h.CartService.Get(token)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// AddToCart 加入购物车，数量缺省为 1
func (h *Handler) AddToCart(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	token, err := resolveCartToken(c)
	if err != nil {
		respondCartError(c, err)
		return
	}
	cart, err := h.CartService.Add(token, req.OptionID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// ChangeCartCount 修改数量，数量不大于 0 时移除
func (h *Handler) ChangeCartCount(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	token, err := resolveCartToken(c)
	if err != nil {
		respondCartError(c, err)
		return
	}
	cart, err := h.CartService.ChangeCount(token, req.OptionID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// RemoveFromCart 移除购物车项
func (h *Handler) RemoveFromCart(c *gin.Context) {
	var req CartRemoveRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	token, err := resolveCartToken(c)
	if err != nil {
		respondCartError(c, err)
		return
	}
	cart, err := h.CartService.Remove(token, req.OptionID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// FlushCart 清空购物车
func (h *Handler) FlushCart(c *gin.Context) {
	token, err := resolveCartToken(c)
	if err != nil {
		respondCartError(c, err)
		return
	}
	cart, err := h.CartService.Flush(token)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}
