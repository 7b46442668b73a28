package provider

import (
	"github.com/stroyprombeton/internal/cache"
	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/queue"
	"github.com/stroyprombeton/internal/repository"
	"github.com/stroyprombeton/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	OptionRepo   repository.OptionRepository
	TagRepo      repository.TagRepository
	SeriesRepo   repository.SeriesRepository
	SectionRepo  repository.SectionRepository
	PageRepo     repository.PageRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	ContactRepo  repository.ContactRequestRepository

	// Services
	PageMetaRenderer *service.PageMetaRenderer
	PageMetaService  *service.PageMetaService
	CategoryService  *service.CategoryService
	CatalogService   *service.CatalogService
	ProductService   *service.ProductService
	SearchService    *service.SearchService
	CartService      *service.CartService
	CaptchaService   *service.CaptchaService
	OrderService     *service.OrderService
	PriceListService *service.PriceListService
	SiteService      *service.SiteService
	ContactService   *service.ContactService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OptionRepo = repository.NewOptionRepository(db)
	c.TagRepo = repository.NewTagRepository(db)
	c.SeriesRepo = repository.NewSeriesRepository(db)
	c.SectionRepo = repository.NewSectionRepository(db)
	c.PageRepo = repository.NewPageRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ContactRepo = repository.NewContactRequestRepository(db)
}

func (c *Container) initServices() {
	cfg := c.Config
	c.PageMetaRenderer = service.NewPageMetaRenderer()
	c.PageMetaService = service.NewPageMetaService(cfg.Pages, c.PageRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, cfg.Catalog)
	c.CatalogService = service.NewCatalogService(
		c.CategoryRepo,
		c.OptionRepo,
		c.TagRepo,
		c.SeriesRepo,
		c.SectionRepo,
		c.ProductRepo,
		c.CategoryService,
		c.PageMetaRenderer,
		cfg.Catalog,
	)
	c.ProductService = service.NewProductService(c.ProductRepo, c.OptionRepo, c.CategoryService, c.PageMetaRenderer, cfg.Catalog)
	c.SearchService = service.NewSearchService(c.CategoryRepo, c.ProductRepo, c.OptionRepo, cfg.Catalog)
	c.CartService = service.NewCartService(c.CartRepo, c.OptionRepo, c.CategoryService, cfg.Order)
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha, cfg.Order.RequireCaptcha)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.CartService, c.CaptchaService, c.QueueClient, cfg.Order)
	c.PriceListService = service.NewPriceListService(c.OptionRepo, c.CategoryService, c.QueueClient, cfg.Price, cfg.Site)
	c.SiteService = service.NewSiteService(cfg.Site, cfg.Catalog, c.CaptchaService)
	c.ContactService = service.NewContactService(c.ContactRepo, c.QueueClient)
}

// Close 释放容器持有的外部连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.QueueClient.Close()
}
