package service

import (
	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/repository"
)

// ProductPageContext 商品页
type ProductPageContext struct {
	Product     models.Product  `json:"product"`
	Page        PageMeta        `json:"page"`
	Options     []models.Option `json:"options"`
	Breadcrumbs []Breadcrumb    `json:"breadcrumbs"`
}

// ProductService 商品页服务
type ProductService struct {
	productRepo     repository.ProductRepository
	optionRepo      repository.OptionRepository
	categoryService *CategoryService
	renderer        *PageMetaRenderer
	ordering        []repository.Ordering
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, optionRepo repository.OptionRepository, categoryService *CategoryService, renderer *PageMetaRenderer, cfg config.CatalogConfig) *ProductService {
	if renderer == nil {
		renderer = NewPageMetaRenderer()
	}
	return &ProductService{
		productRepo:     productRepo,
		optionRepo:      optionRepo,
		categoryService: categoryService,
		renderer:        renderer,
		ordering:        repository.ParseOrderings(cfg.Ordering),
	}
}

// GetPage 获取上架商品及其规格，面包屑包含商品所在分类
func (s *ProductService) GetPage(id uint) (*ProductPageContext, error) {
	product, err := s.productRepo.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	options, err := s.optionRepo.Find(repository.NewOptionQuery().Active().InProducts([]uint{product.ID}).OrderBy(s.ordering...))
	if err != nil {
		return nil, err
	}
	meta, err := s.renderer.Render(product.Page, nil)
	if err != nil {
		return nil, err
	}
	crumbs := make([]Breadcrumb, 0)
	if s.categoryService != nil {
		if crumbs, err = s.categoryService.Breadcrumbs(product.CategoryID); err != nil {
			return nil, err
		}
	}
	page := product.Page
	product.Page = nil
	for i := range options {
		options[i].Product = nil
	}
	result := &ProductPageContext{
		Product:     *product,
		Page:        meta,
		Options:     nonNilOptions(options),
		Breadcrumbs: crumbs,
	}
	if page != nil {
		result.Breadcrumbs = append(result.Breadcrumbs, Breadcrumb{ID: product.ID, Name: product.Name, Slug: page.Slug})
	}
	return result, nil
}
