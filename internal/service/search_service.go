package service

import (
	"strings"

	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/repository"
)

// 自动补全条目类型
const (
	AutocompleteTypeCategory = "category"
	AutocompleteTypeProduct  = "product"
	AutocompleteTypeOption   = "option"
)

// SearchResult 搜索结果
type SearchResult struct {
	Term         string            `json:"term"`
	Categories   []models.Category `json:"categories"`
	Options      []models.Option   `json:"options"`
	TotalOptions int64             `json:"total_options"`
}

// AutocompleteItem 自动补全条目
type AutocompleteItem struct {
	Type string `json:"type"`
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Mark string `json:"mark,omitempty"`
}

// SearchService 全站搜索
type SearchService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	optionRepo   repository.OptionRepository
	cfg          config.CatalogConfig
	ordering     []repository.Ordering
}

// NewSearchService 创建搜索服务
func NewSearchService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, optionRepo repository.OptionRepository, cfg config.CatalogConfig) *SearchService {
	return &SearchService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		optionRepo:   optionRepo,
		cfg:          cfg,
		ordering:     repository.ParseOrderings(cfg.Ordering),
	}
}

// Search 搜索分类与规格；空词条返回空结果
func (s *SearchService) Search(term string) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	result := &SearchResult{Term: term, Categories: []models.Category{}, Options: []models.Option{}}
	if term == "" {
		return result, nil
	}
	limit := positiveOr(s.cfg.SearchLimit, 20)

	categories, err := s.categoryRepo.SearchActive(term, limit)
	if err != nil {
		return nil, err
	}
	query := repository.NewOptionQuery().Active().Search(term).OrderBy(s.ordering...)
	total, err := s.optionRepo.Count(query)
	if err != nil {
		return nil, err
	}
	options, err := s.optionRepo.Find(query.Slice(0, limit))
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].Page = nil
	}
	result.Categories = categories
	result.Options = nonNilOptions(options)
	result.TotalOptions = total
	return result, nil
}

// Autocomplete 依次补全分类、商品与规格，总数不超过配置上限
func (s *SearchService) Autocomplete(term string) ([]AutocompleteItem, error) {
	term = strings.TrimSpace(term)
	items := make([]AutocompleteItem, 0)
	if term == "" {
		return items, nil
	}
	limit := positiveOr(s.cfg.AutocompleteLimit, 10)

	categories, err := s.categoryRepo.SearchActive(term, limit)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		items = append(items, AutocompleteItem{Type: AutocompleteTypeCategory, ID: category.ID, Name: category.Name})
	}
	if len(items) >= limit {
		return items[:limit], nil
	}

	products, err := s.productRepo.SearchActive(term, limit-len(items))
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		items = append(items, AutocompleteItem{Type: AutocompleteTypeProduct, ID: product.ID, Name: product.Name})
	}
	if len(items) >= limit {
		return items[:limit], nil
	}

	query := repository.NewOptionQuery().
		Active().
		Search(term, repository.LookupMark, repository.LookupCode).
		OrderBy(repository.Ordering{Field: "mark"}).
		Slice(0, limit-len(items))
	options, err := s.optionRepo.Find(query)
	if err != nil {
		return nil, err
	}
	for _, option := range options {
		item := AutocompleteItem{Type: AutocompleteTypeOption, ID: option.ID, Mark: option.Mark}
		if option.Product != nil {
			item.Name = option.Product.Name
		}
		items = append(items, item)
	}
	return items, nil
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
