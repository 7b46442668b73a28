package public

import (
	"github.com/stroyprombeton/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Search 全站搜索
func (h *Handler) Search(c *gin.Context) {
	result, err := h.SearchService.Search(c.Query("term"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.search_failed", err)
		return
	}
	response.Success(c, result)
}

// Autocomplete 搜索自动补全
func (h *Handler) Autocomplete(c *gin.Context) {
	items, err := h.SearchService.Autocomplete(c.Query("term"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.search_failed", err)
		return
	}
	response.Success(c, items)
}
