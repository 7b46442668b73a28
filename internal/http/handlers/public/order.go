package public

import (
	"github.com/stroyprombeton/internal/constants"
	"github.com/stroyprombeton/internal/http/handlers/shared"
	"github.com/stroyprombeton/internal/http/response"
	"github.com/stroyprombeton/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 询价订单请求
type CreateOrderRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Company string `json:"company" form:"company"`
	Address string `json:"address" form:"address"`
	Comment string `json:"comment" form:"comment"`
	shared.CaptchaPayloadRequest
}

// CreateOrder 根据购物车创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	captchaID, captchaCode := req.CaptchaPayloadRequest.Normalize()
	order, err := h.OrderService.Place(service.PlaceOrderInput{
		CartToken:   c.GetHeader(constants.HeaderCartToken),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Address:     req.Address,
		Comment:     req.Comment,
		CaptchaID:   captchaID,
		CaptchaCode: captchaCode,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	requestLog(c).Infow("order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"positions", len(order.Positions),
	)
	response.Success(c, order)
}
