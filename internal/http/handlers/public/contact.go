package public

import (
	"github.com/stroyprombeton/internal/http/response"
	"github.com/stroyprombeton/internal/service"

	"github.com/gin-gonic/gin"
)

// BackcallRequest 回电请求
type BackcallRequest struct {
	Name  string `json:"name" form:"name"`
	Phone string `json:"phone" form:"phone"`
	URL   string `json:"url" form:"url"`
}

// PriceRequestRequest 价目表申请
type PriceRequestRequest struct {
	Name     string `json:"name" form:"name"`
	Phone    string `json:"phone" form:"phone"`
	Email    string `json:"email" form:"email"`
	Company  string `json:"company" form:"company"`
	City     string `json:"city" form:"city"`
	Activity string `json:"activity" form:"activity"`
	Site     string `json:"site" form:"site"`
}

// CreateBackcall 保存回电请求
func (h *Handler) CreateBackcall(c *gin.Context) {
	var req BackcallRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	request, err := h.ContactService.Backcall(service.BackcallInput{
		Name:     req.Name,
		Phone:    req.Phone,
		PageURL:  req.URL,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		respondContactCreateError(c, err)
		return
	}
	requestLog(c).Infow("contact_backcall_requested", "request_id", request.ID)
	response.Success(c, gin.H{"id": request.ID})
}

// CreatePriceRequest 保存价目表申请
func (h *Handler) CreatePriceRequest(c *gin.Context) {
	var req PriceRequestRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	request, err := h.ContactService.RequestPrice(service.PriceRequestInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Company:  req.Company,
		City:     req.City,
		Activity: req.Activity,
		Site:     req.Site,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		respondContactCreateError(c, err)
		return
	}
	requestLog(c).Infow("contact_price_requested", "request_id", request.ID, "city", request.City)
	response.Success(c, gin.H{"id": request.ID})
}
