package public

import (
	"github.com/stroyprombeton/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetConfig 获取站点公开配置
func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, h.SiteService.PublicConfig())
}

// GetPageMeta 获取自定义页面元信息
func (h *Handler) GetPageMeta(c *gin.Context) {
	meta, err := h.PageMetaService.Get(c.Param("slug"))
	if err != nil {
		respondPageError(c, err)
		return
	}
	response.Success(c, meta)
}

// GetPriceList 获取价目表快照
func (h *Handler) GetPriceList(c *gin.Context) {
	list, err := h.PriceListService.Get(c.Request.Context())
	if err != nil {
		respondPriceListError(c, err)
		return
	}
	response.Success(c, list)
}
