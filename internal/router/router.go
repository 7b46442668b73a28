package router

import (
	"fmt"

	"github.com/stroyprombeton/internal/cache"
	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/constants"
	publichandlers "github.com/stroyprombeton/internal/http/handlers/public"
	"github.com/stroyprombeton/internal/http/handlers/shared"
	"github.com/stroyprombeton/internal/http/response"
	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisClient := cache.Client()
	searchRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:search", cache.Prefix()),
		WindowSeconds: cfg.Security.SearchRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SearchRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.SearchRateLimit.BlockSeconds,
	}
	orderRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order", cache.Prefix()),
		WindowSeconds: cfg.Security.OrderRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OrderRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.OrderRateLimit.BlockSeconds,
	}
	contactRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:contact", cache.Prefix()),
		WindowSeconds: cfg.Security.ContactRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ContactRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.ContactRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(DeviceClassMiddleware())

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.GetCategoryTree)
			public.GET("/categories/:id", publicHandler.GetCategoryPage)
			public.GET("/categories/:id/tags/:tags", publicHandler.GetCategoryPage)
			public.POST("/categories/fetch-options", publicHandler.FetchOptions)
			public.GET("/series/:slug", publicHandler.GetSeriesPage)
			public.GET("/series/:slug/tags/:tags", publicHandler.GetSeriesPage)
			public.GET("/sections/:slug", publicHandler.GetSectionPage)
			public.GET("/products/:id", publicHandler.GetProductPage)
			public.GET("/search", RateLimitMiddleware(redisClient, searchRule, KeyByIP), publicHandler.Search)
			public.GET("/autocomplete", RateLimitMiddleware(redisClient, searchRule, KeyByIP), publicHandler.Autocomplete)
			public.GET("/pages/:slug/meta", publicHandler.GetPageMeta)
			public.GET("/price-list", publicHandler.GetPriceList)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 购物车（匿名，X-Cart-Token）
		cart := apiV1.Group("/cart")
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/add", publicHandler.AddToCart)
			cart.POST("/change-count", publicHandler.ChangeCartCount)
			cart.POST("/remove", publicHandler.RemoveFromCart)
			cart.POST("/flush", publicHandler.FlushCart)
		}

		apiV1.POST("/orders", RateLimitMiddleware(redisClient, orderRule, KeyByIPAndHeader(constants.HeaderCartToken)), publicHandler.CreateOrder)

		// 客户联系表单
		apiV1.POST("/backcall", RateLimitMiddleware(redisClient, contactRule, KeyByIP), publicHandler.CreateBackcall)
		apiV1.POST("/price-request", RateLimitMiddleware(redisClient, contactRule, KeyByIP), publicHandler.CreatePriceRequest)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		shared.RespondError(c, response.CodeNotFound, "error.not_found", nil)
	})

	return r
}
