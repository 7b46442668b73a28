package public

import (
	"github.com/stroyprombeton/internal/catalog"
	"github.com/stroyprombeton/internal/http/response"
	"github.com/stroyprombeton/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCategoryTree 获取分类树
func (h *Handler) GetCategoryTree(c *gin.Context) {
	tree, err := h.CategoryService.Tree(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, tree)
}

// GetCategoryPage 获取分类页，可带标签段
func (h *Handler) GetCategoryPage(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		respondCatalogError(c, service.ErrCategoryNotFound)
		return
	}
	page, err := h.CatalogService.CategoryPage(service.CategoryPageRequest{
		CategoryID:  id,
		Tags:        c.Param("tags"),
		Page:        catalog.ParsePageNumber(c.Query("page")),
		PerPage:     catalog.ParsePositiveInt(c.Query("step"), 0),
		DeviceClass: deviceClass(c),
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, page)
}

// FetchOptions 加载更多规格（表单提交）
func (h *Handler) FetchOptions(c *gin.Context) {
	result, err := h.CatalogService.FetchOptions(service.FetchOptionsRequest{
		CategoryID: c.PostForm("categoryId"),
		Tags:       c.PostForm("tags"),
		Term:       c.PostForm("term"),
		Filtered:   parseFormBool(c.PostForm("filtered")),
		Offset:     c.PostForm("offset"),
		Limit:      c.PostForm("limit"),
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, result)
}

// GetSeriesPage 获取系列页，可带标签段
func (h *Handler) GetSeriesPage(c *gin.Context) {
	page, err := h.CatalogService.SeriesPage(service.SeriesPageRequest{
		Slug:        c.Param("slug"),
		Tags:        c.Param("tags"),
		Page:        catalog.ParsePageNumber(c.Query("page")),
		PerPage:     catalog.ParsePositiveInt(c.Query("step"), 0),
		DeviceClass: deviceClass(c),
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, page)
}

// GetSectionPage 获取分区页
func (h *Handler) GetSectionPage(c *gin.Context) {
	page, err := h.CatalogService.SectionPage(service.SectionPageRequest{
		Slug:        c.Param("slug"),
		Page:        catalog.ParsePageNumber(c.Query("page")),
		PerPage:     catalog.ParsePositiveInt(c.Query("step"), 0),
		DeviceClass: deviceClass(c),
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, page)
}

// GetProductPage 获取商品页
func (h *Handler) GetProductPage(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		respondCatalogError(c, service.ErrProductNotFound)
		return
	}
	page, err := h.ProductService.GetPage(id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, page)
}
