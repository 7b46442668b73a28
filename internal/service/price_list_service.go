package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/stroyprombeton/internal/cache"
	"github.com/stroyprombeton/internal/catalog"
	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/constants"
	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/queue"
	"github.com/stroyprombeton/internal/repository"
)

// PriceEntry 价目表中的一个规格
type PriceEntry struct {
	OptionID    uint              `json:"option_id"`
	ProductID   uint              `json:"product_id"`
	Code        *int              `json:"code,omitempty"`
	Mark        string            `json:"mark"`
	ProductName string            `json:"product_name"`
	CatalogName string            `json:"catalog_name"`
	Price       models.Money      `json:"price"`
	InStock     int               `json:"in_stock"`
	URLs        map[string]string `json:"urls"`
}

// PriceList 价目表快照
type PriceList struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Sources     []string     `json:"sources"`
	Entries     []PriceEntry `json:"entries"`
}

// PriceListService 价目表服务：生成快照并写入缓存
type PriceListService struct {
	optionRepo      repository.OptionRepository
	categoryService *CategoryService
	queueClient     *queue.Client
	cfg             config.PriceConfig
	baseURL         string
	ttl             time.Duration
}

// NewPriceListService 创建价目表服务
func NewPriceListService(optionRepo repository.OptionRepository, categoryService *CategoryService, queueClient *queue.Client, cfg config.PriceConfig, site config.SiteConfig) *PriceListService {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	if strings.TrimSpace(cfg.UTMMedium) == "" {
		cfg.UTMMedium = "cpc"
	}
	return &PriceListService{
		optionRepo:      optionRepo,
		categoryService: categoryService,
		queueClient:     queueClient,
		cfg:             cfg,
		baseURL:         strings.TrimRight(strings.TrimSpace(site.BaseURL), "/"),
		ttl:             ttl,
	}
}

// Build 从数据库构造价目表，只包含上架且有价格的规格
func (s *PriceListService) Build() (*PriceList, error) {
	options, err := s.optionRepo.Find(repository.NewOptionQuery().Active().Priced().OrderBy(repository.ParseOrderings([]string{"product_name", "mark"})...))
	if err != nil {
		return nil, err
	}
	tree, err := s.categoryService.LoadTree()
	if err != nil {
		return nil, err
	}
	list := &PriceList{
		GeneratedAt: time.Now(),
		Sources:     append([]string{}, s.cfg.UTMSources...),
		Entries:     make([]PriceEntry, 0, len(options)),
	}
	for _, option := range options {
		list.Entries = append(list.Entries, s.newEntry(option, tree))
	}
	return list, nil
}

// Regenerate 重新生成价目表并写入缓存
func (s *PriceListService) Regenerate(ctx context.Context) (*PriceList, error) {
	list, err := s.Build()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, constants.CacheKeyPriceList, list, s.ttl); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Infow("price_list_regenerated", "entries", len(list.Entries))
	return list, nil
}

// Get 读取缓存中的价目表。缓存未命中时投递重新生成任务并返回 ErrPriceListNotReady；
// 未启用缓存时直接构造。
func (s *PriceListService) Get(ctx context.Context) (*PriceList, error) {
	if !cache.Enabled() {
		return s.Build()
	}
	var list PriceList
	hit, err := cache.GetJSON(ctx, constants.CacheKeyPriceList, &list)
	if err != nil {
		return nil, err
	}
	if hit {
		return &list, nil
	}
	if err := s.queueClient.EnqueuePriceRegenerate(queue.PriceRegeneratePayload{Reason: "cache_miss"}); err != nil {
		logger.FromContext(ctx).Warnw("price_list_enqueue_regenerate_failed", "error", err)
	}
	return nil, ErrPriceListNotReady
}

func (s *PriceListService) newEntry(option models.Option, tree *catalog.Tree) PriceEntry {
	entry := PriceEntry{
		OptionID:  option.ID,
		ProductID: option.ProductID,
		Code:      option.Code,
		Mark:      option.Mark,
		Price:     option.Price,
		InStock:   option.InStock,
		URLs:      map[string]string{},
	}
	rootSlug := ""
	if option.Product != nil {
		entry.ProductName = option.Product.Name
		if root, ok := tree.Root(option.Product.CategoryID); ok {
			entry.CatalogName = root.Name
			if root.Page != nil {
				rootSlug = root.Page.Slug
			}
		}
	}
	for _, source := range s.cfg.UTMSources {
		entry.URLs[source] = s.productURL(option.ProductID, source, rootSlug)
	}
	return entry
}

func (s *PriceListService) productURL(productID uint, source, rootSlug string) string {
	params := url.Values{}
	params.Set("utm_source", source)
	params.Set("utm_medium", s.cfg.UTMMedium)
	params.Set("utm_campaign", constants.PriceUTMCampaign)
	if rootSlug != "" {
		params.Set("utm_content", rootSlug)
	}
	params.Set("utm_term", strconv.FormatUint(uint64(productID), 10))
	return s.baseURL + fmt.Sprintf(constants.PriceProductURLPath, productID) + "?" + params.Encode()
}
