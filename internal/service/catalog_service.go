package service

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/stroyprombeton/internal/catalog"
	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/constants"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/repository"
)

// CatalogService 分类页、系列页、分区页与加载更多
type CatalogService struct {
	categoryRepo    repository.CategoryRepository
	optionRepo      repository.OptionRepository
	tagRepo         repository.TagRepository
	seriesRepo      repository.SeriesRepository
	sectionRepo     repository.SectionRepository
	productRepo     repository.ProductRepository
	categoryService *CategoryService
	renderer        *PageMetaRenderer
	cfg             config.CatalogConfig
	ordering        []repository.Ordering
}

// NewCatalogService 创建目录服务
func NewCatalogService(categoryRepo repository.CategoryRepository, optionRepo repository.OptionRepository, tagRepo repository.TagRepository, seriesRepo repository.SeriesRepository, sectionRepo repository.SectionRepository, productRepo repository.ProductRepository, categoryService *CategoryService, renderer *PageMetaRenderer, cfg config.CatalogConfig) *CatalogService {
	if renderer == nil {
		renderer = NewPageMetaRenderer()
	}
	return &CatalogService{
		categoryRepo:    categoryRepo,
		optionRepo:      optionRepo,
		tagRepo:         tagRepo,
		seriesRepo:      seriesRepo,
		sectionRepo:     sectionRepo,
		productRepo:     productRepo,
		categoryService: categoryService,
		renderer:        renderer,
		cfg:             cfg,
		ordering:        repository.ParseOrderings(cfg.Ordering),
	}
}

// CategoryPageRequest 分类页请求
type CategoryPageRequest struct {
	CategoryID  uint
	Tags        string
	Page        int
	PerPage     int // 为 0 时按设备类型取默认值
	DeviceClass string
}

// FetchOptionsRequest 加载更多请求，字段保持表单原始值
type FetchOptionsRequest struct {
	CategoryID string
	Tags       string
	Term       string
	Filtered   bool
	Offset     string
	Limit      string
}

// SeriesPageRequest 系列页请求
type SeriesPageRequest struct {
	Slug        string
	Tags        string
	Page        int
	PerPage     int
	DeviceClass string
}

// SectionPageRequest 分区页请求
type SectionPageRequest struct {
	Slug        string
	Page        int
	PerPage     int
	DeviceClass string
}

// CategoryPage 组装分类页：上架 -> 分类及后代 -> 标签 -> 排序 -> 分页
func (s *CatalogService) CategoryPage(req CategoryPageRequest) (*CategoryPageContext, error) {
	category, err := s.categoryRepo.GetActiveByID(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	selected, err := s.resolveTags(req.Tags)
	if err != nil {
		return nil, err
	}
	query, err := s.categoryOptions(category.ID, selected)
	if err != nil {
		return nil, err
	}

	perPage := s.perPage(req.PerPage, req.DeviceClass)
	options, err := s.paginateOptions(query, req.Page, perPage, ErrCategoryEmpty)
	if err != nil {
		return nil, err
	}
	groups, err := s.groupedTags(query)
	if err != nil {
		return nil, err
	}
	meta, err := s.renderer.Render(category.Page, selected)
	if err != nil {
		return nil, err
	}
	var crumbs []Breadcrumb
	if s.categoryService != nil {
		if crumbs, err = s.categoryService.Breadcrumbs(category.ID); err != nil {
			return nil, err
		}
	}

	result := composeCategoryPage(*category, crumbs, meta, newSelectedTags(selected), options, groups, s.allowedSteps())
	return &result, nil
}

// FetchOptions 分类页加载更多；结果为空时不报错
func (s *CatalogService) FetchOptions(req FetchOptionsRequest) (*FetchOptionsContext, error) {
	rawID := strings.TrimSpace(req.CategoryID)
	if rawID == "" {
		return nil, ErrCategoryIDRequired
	}
	categoryID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetActiveByID(uint(categoryID))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	selected, err := s.resolveTags(req.Tags)
	if err != nil {
		return nil, err
	}
	query, err := s.categoryOptions(category.ID, selected)
	if err != nil {
		return nil, err
	}
	if req.Filtered {
		query = query.Search(req.Term)
	}

	window := catalog.ParseWindow(req.Offset, req.Limit, s.fetchLimit()).Clamp(s.fetchMaxLimit())
	total, err := s.optionRepo.Count(query)
	if err != nil {
		return nil, err
	}
	items, err := s.optionRepo.Find(query.Slice(window.Offset, window.Limit))
	if err != nil {
		return nil, err
	}
	result := composeFetchOptions(items, total, window)
	return &result, nil
}

// SeriesPage 组装系列页；系列没有上架规格时视为不存在
func (s *CatalogService) SeriesPage(req SeriesPageRequest) (*SeriesPageContext, error) {
	series, err := s.seriesRepo.GetBySlug(strings.TrimSpace(req.Slug))
	if err != nil {
		return nil, err
	}
	if series == nil || series.Page == nil || !series.Page.IsActive {
		return nil, ErrSeriesNotFound
	}
	selected, err := s.resolveTags(req.Tags)
	if err != nil {
		return nil, err
	}
	query := repository.NewOptionQuery().
		Active().
		InSeries(series.ID).
		TaggedOrAll(catalog.TagIDs(selected)).
		OrderBy(s.ordering...)

	perPage := s.perPage(req.PerPage, req.DeviceClass)
	options, err := s.paginateOptions(query, req.Page, perPage, ErrSeriesNotFound)
	if err != nil {
		return nil, err
	}
	groups, err := s.groupedTags(query)
	if err != nil {
		return nil, err
	}
	meta, err := s.renderer.Render(series.Page, selected)
	if err != nil {
		return nil, err
	}
	result := composeSeriesPage(*series, meta, newSelectedTags(selected), options, groups, s.allowedSteps())
	return &result, nil
}

// SectionPage 组装分区页；分区没有上架商品时视为不存在
func (s *CatalogService) SectionPage(req SectionPageRequest) (*SectionPageContext, error) {
	section, err := s.sectionRepo.GetBySlug(strings.TrimSpace(req.Slug))
	if err != nil {
		return nil, err
	}
	if section == nil || section.Page == nil || !section.Page.IsActive {
		return nil, ErrSectionNotFound
	}
	perPage := s.perPage(req.PerPage, req.DeviceClass)
	steps := s.allowedSteps()
	if req.Page < 1 || !containsStep(steps, perPage) {
		return nil, ErrPageOutOfRange
	}
	products, total, err := s.productRepo.ListActiveBySection(section.ID, req.Page, perPage)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, ErrSectionNotFound
	}
	page, err := catalog.Paginate(total, req.Page, perPage, steps, s.cfg.PaginationNeighbors)
	if err != nil {
		return nil, ErrPageOutOfRange
	}
	meta, err := s.renderer.Render(section.Page, nil)
	if err != nil {
		return nil, err
	}
	result := composeSectionPage(*section, meta, products, total, page, steps)
	return &result, nil
}

// resolveTags 解析 URL 中的标签段；非空选择中有不存在的标签时返回 ErrTagsNotFound
func (s *CatalogService) resolveTags(raw string) ([]models.Tag, error) {
	slugs := catalog.ParseTagSlugs(raw)
	if len(slugs) == 0 {
		return []models.Tag{}, nil
	}
	tags, err := s.tagRepo.ListBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(slugs) {
		return nil, ErrTagsNotFound
	}
	return tags, nil
}

func (s *CatalogService) categoryOptions(categoryID uint, selected []models.Tag) (repository.OptionQuery, error) {
	ids, err := s.categoryRepo.DescendantIDs(categoryID)
	if err != nil {
		return repository.OptionQuery{}, err
	}
	return repository.NewOptionQuery().
		Active().
		InCategories(ids).
		TaggedOrAll(catalog.TagIDs(selected)).
		OrderBy(s.ordering...), nil
}

// paginateOptions 统计未截取的总数并取出当前页；总数为 0 时返回 emptyErr
func (s *CatalogService) paginateOptions(query repository.OptionQuery, number, perPage int, emptyErr error) (pagedOptions, error) {
	total, err := s.optionRepo.Count(query)
	if err != nil {
		return pagedOptions{}, err
	}
	if total == 0 {
		return pagedOptions{}, emptyErr
	}
	page, err := catalog.Paginate(total, number, perPage, s.allowedSteps(), s.cfg.PaginationNeighbors)
	if err != nil {
		if errors.Is(err, catalog.ErrPageOutOfRange) {
			return pagedOptions{}, ErrPageOutOfRange
		}
		return pagedOptions{}, err
	}
	items, err := s.optionRepo.Find(query.Slice(page.Offset, page.Limit))
	if err != nil {
		return pagedOptions{}, err
	}
	return pagedOptions{items: items, total: total, page: page}, nil
}

func (s *CatalogService) groupedTags(query repository.OptionQuery) ([]catalog.TagGroupView, error) {
	tags, err := s.tagRepo.ListByOptionQuery(query)
	if err != nil {
		return nil, err
	}
	return catalog.GroupTags(tags, s.cfg.TagsUILimit), nil
}

func (s *CatalogService) perPage(requested int, deviceClass string) int {
	if requested > 0 {
		return requested
	}
	return s.devicePageSize(deviceClass)
}

func (s *CatalogService) devicePageSize(deviceClass string) int {
	if deviceClass == constants.DeviceClassMobile && s.cfg.MobilePageSize > 0 {
		return s.cfg.MobilePageSize
	}
	if s.cfg.DesktopPageSize > 0 {
		return s.cfg.DesktopPageSize
	}
	return 48
}

func (s *CatalogService) fetchLimit() int {
	if s.cfg.FetchDefaultLimit > 0 {
		return s.cfg.FetchDefaultLimit
	}
	return s.devicePageSize(constants.DeviceClassDesktop)
}

// fetchMaxLimit 加载更多单次上限，未配置时取最大的每页档位
func (s *CatalogService) fetchMaxLimit() int {
	limit := s.cfg.FetchMaxLimit
	if limit <= 0 {
		for _, step := range s.allowedSteps() {
			if step > limit {
				limit = step
			}
		}
	}
	if fallback := s.fetchLimit(); limit < fallback {
		limit = fallback
	}
	return limit
}

// allowedSteps 配置的每页数量档位，设备默认值总是合法
func (s *CatalogService) allowedSteps() []int {
	steps := make([]int, 0, len(s.cfg.StepMultipliers)+2)
	for _, step := range s.cfg.StepMultipliers {
		if step > 0 && !containsStep(steps, step) {
			steps = append(steps, step)
		}
	}
	for _, step := range []int{s.devicePageSize(constants.DeviceClassMobile), s.devicePageSize(constants.DeviceClassDesktop)} {
		if !containsStep(steps, step) {
			steps = append(steps, step)
		}
	}
	sort.Ints(steps)
	return steps
}

func containsStep(steps []int, step int) bool {
	for _, value := range steps {
		if value == step {
			return true
		}
	}
	return false
}
