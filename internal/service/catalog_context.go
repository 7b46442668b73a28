package service

import (
	"github.com/stroyprombeton/internal/catalog"
	"github.com/stroyprombeton/internal/models"
)

// SelectedTags 已选标签
type SelectedTags struct {
	Tags  []models.Tag `json:"tags"`
	Title string       `json:"title"`
	Raw   string       `json:"raw"`
}

func newSelectedTags(tags []models.Tag) SelectedTags {
	return SelectedTags{
		Tags:  catalog.SortTags(tags),
		Title: catalog.TagTitle(tags),
		Raw:   catalog.SerializeTags(tags),
	}
}

// pagedOptions 一页规格及其未截取的总数
type pagedOptions struct {
	items []models.Option
	total int64
	page  catalog.Page
}

// CategoryPageContext 分类页
type CategoryPageContext struct {
	Category      models.Category        `json:"category"`
	Breadcrumbs   []Breadcrumb           `json:"breadcrumbs"`
	Page          PageMeta               `json:"page"`
	Products      []models.Option        `json:"products"`
	TotalProducts int64                  `json:"total_products"`
	Pagination    catalog.Page           `json:"pagination"`
	GroupedTags   []catalog.TagGroupView `json:"group_tags"`
	SelectedTags  SelectedTags           `json:"selected_tags"`
	Limits        []int                  `json:"limits"`
}

// FetchOptionsContext 加载更多
type FetchOptionsContext struct {
	Products      []models.Option `json:"products"`
	TotalProducts int64           `json:"total_products"`
	Offset        int             `json:"offset"`
	Limit         int             `json:"limit"`
	HasMore       bool            `json:"has_more"`
}

// SeriesPageContext 系列页
type SeriesPageContext struct {
	Series        models.Series          `json:"series"`
	Page          PageMeta               `json:"page"`
	Products      []models.Option        `json:"products"`
	TotalProducts int64                  `json:"total_products"`
	Pagination    catalog.Page           `json:"pagination"`
	GroupedTags   []catalog.TagGroupView `json:"group_tags"`
	SelectedTags  SelectedTags           `json:"selected_tags"`
	Limits        []int                  `json:"limits"`
}

// SectionPageContext 分区页
type SectionPageContext struct {
	Section       models.Section   `json:"section"`
	Page          PageMeta         `json:"page"`
	Products      []models.Product `json:"products"`
	TotalProducts int64            `json:"total_products"`
	Pagination    catalog.Page     `json:"pagination"`
	Limits        []int            `json:"limits"`
}

// Breadcrumb 面包屑
type Breadcrumb struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func composeCategoryPage(category models.Category, crumbs []Breadcrumb, meta PageMeta, selected SelectedTags, options pagedOptions, groups []catalog.TagGroupView, limits []int) CategoryPageContext {
	category.Page = nil
	return CategoryPageContext{
		Category:      category,
		Breadcrumbs:   crumbs,
		Page:          meta,
		Products:      nonNilOptions(options.items),
		TotalProducts: options.total,
		Pagination:    options.page,
		GroupedTags:   groups,
		SelectedTags:  selected,
		Limits:        limits,
	}
}

func composeFetchOptions(items []models.Option, total int64, window catalog.Window) FetchOptionsContext {
	items = nonNilOptions(items)
	return FetchOptionsContext{
		Products:      items,
		TotalProducts: total,
		Offset:        window.Offset,
		Limit:         window.Limit,
		HasMore:       int64(window.Offset+len(items)) < total,
	}
}

func composeSeriesPage(series models.Series, meta PageMeta, selected SelectedTags, options pagedOptions, groups []catalog.TagGroupView, limits []int) SeriesPageContext {
	series.Page = nil
	return SeriesPageContext{
		Series:        series,
		Page:          meta,
		Products:      nonNilOptions(options.items),
		TotalProducts: options.total,
		Pagination:    options.page,
		GroupedTags:   groups,
		SelectedTags:  selected,
		Limits:        limits,
	}
}

func composeSectionPage(section models.Section, meta PageMeta, products []models.Product, total int64, page catalog.Page, limits []int) SectionPageContext {
	section.Page = nil
	if products == nil {
		products = []models.Product{}
	}
	return SectionPageContext{
		Section:       section,
		Page:          meta,
		Products:      products,
		TotalProducts: total,
		Pagination:    page,
		Limits:        limits,
	}
}

func nonNilOptions(items []models.Option) []models.Option {
	if items == nil {
		return []models.Option{}
	}
	return items
}
