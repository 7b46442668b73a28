package config

import (
	"fmt"
	"strings"

	"github.com/stroyprombeton/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig              `mapstructure:"server"`
	Log      LogConfig                 `mapstructure:"log"`
	Database DatabaseConfig            `mapstructure:"database"`
	Redis    RedisConfig               `mapstructure:"redis"`
	Queue    QueueConfig               `mapstructure:"queue"`
	CORS     CORSConfig                `mapstructure:"cors"`
	Security SecurityConfig            `mapstructure:"security"`
	Catalog  CatalogConfig             `mapstructure:"catalog"`
	Site     SiteConfig                `mapstructure:"site"`
	Pages    map[string]PageMetaConfig `mapstructure:"pages"`
	Price    PriceConfig               `mapstructure:"price"`
	Order    OrderConfig               `mapstructure:"order"`
	Captcha  CaptchaConfig             `mapstructure:"captcha"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Level,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	SearchRateLimit  RateLimitConfig `mapstructure:"search_rate_limit"`
	OrderRateLimit   RateLimitConfig `mapstructure:"order_rate_limit"`
	ContactRateLimit RateLimitConfig `mapstructure:"contact_rate_limit"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
	BlockSeconds  int `mapstructure:"block_seconds"`
}

// CatalogConfig 目录分页与标签配置
type CatalogConfig struct {
	DesktopPageSize     int      `mapstructure:"desktop_page_size"`
	MobilePageSize      int      `mapstructure:"mobile_page_size"`
	FetchDefaultLimit   int      `mapstructure:"fetch_default_limit"`
	FetchMaxLimit       int      `mapstructure:"fetch_max_limit"`
	StepMultipliers     []int    `mapstructure:"step_multipliers"`
	TagsUILimit         int      `mapstructure:"tags_ui_limit"`
	PaginationNeighbors int      `mapstructure:"pagination_neighbors"`
	Ordering            []string `mapstructure:"ordering"`
	SearchLimit         int      `mapstructure:"search_limit"`
	AutocompleteLimit   int      `mapstructure:"autocomplete_limit"`
	TreeCacheTTLSeconds int      `mapstructure:"tree_cache_ttl_seconds"`
}

// SiteConfig 站点信息
type SiteConfig struct {
	Name    string   `mapstructure:"name"`
	BaseURL string   `mapstructure:"base_url"`
	Email   string   `mapstructure:"email"`
	Phones  []string `mapstructure:"phones"`
	Address string   `mapstructure:"address"`
}

// PageMetaConfig 自定义页面元信息
type PageMetaConfig struct {
	Title       string `mapstructure:"title"`
	H1          string `mapstructure:"h1"`
	Description string `mapstructure:"description"`
	Keywords    string `mapstructure:"keywords"`
}

// PriceConfig 价目表配置
type PriceConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	Schedule        string   `mapstructure:"schedule"`
	UTMSources      []string `mapstructure:"utm_sources"`
	UTMMedium       string   `mapstructure:"utm_medium"`
	CacheTTLSeconds int      `mapstructure:"cache_ttl_seconds"`
}

// OrderConfig 订单配置
type OrderConfig struct {
	NumberPrefix   string `mapstructure:"number_prefix"`
	MaxPositions   int    `mapstructure:"max_positions"`
	MaxQuantity    int    `mapstructure:"max_quantity"`
	RequireCaptcha bool   `mapstructure:"require_captcha"`
}

// CaptchaConfig 图片验证码配置
type CaptchaConfig struct {
	Length        int `mapstructure:"length"`
	Width         int `mapstructure:"width"`
	Height        int `mapstructure:"height"`
	NoiseCount    int `mapstructure:"noise_count"`
	ShowLine      int `mapstructure:"show_line"`
	ExpireSeconds int `mapstructure:"expire_seconds"`
	MaxStore      int `mapstructure:"max_store"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	v := viper.GetViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // 从当前目录查找
	v.AddConfigPath("../")   // 如果从 cmd/server 运行
	v.AddConfigPath("./etc") // etc 文件夹

	SetDefaults(v)

	// 环境变量支持（例如 server.port -> SERVER_PORT）
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg, err := Decode(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

// Decode 解析并校正配置
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Catalog.normalize()
	return &cfg, nil
}

// SetDefaults 写入默认配置
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/stroyprombeton.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "stb")
	v.SetDefault("queue.enabled", true)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 10)
	v.SetDefault("queue.queues", map[string]int{
		"default":  10,
		"critical": 5,
	})
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Accept-Language",
		"Cache-Control",
		"X-Requested-With",
		"X-Cart-Token",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.search_rate_limit.window_seconds", 60)
	v.SetDefault("security.search_rate_limit.max_requests", 120)
	v.SetDefault("security.search_rate_limit.block_seconds", 60)
	v.SetDefault("security.order_rate_limit.window_seconds", 600)
	v.SetDefault("security.order_rate_limit.max_requests", 10)
	v.SetDefault("security.order_rate_limit.block_seconds", 1800)
	v.SetDefault("security.contact_rate_limit.window_seconds", 600)
	v.SetDefault("security.contact_rate_limit.max_requests", 5)
	v.SetDefault("security.contact_rate_limit.block_seconds", 1800)
	v.SetDefault("catalog.desktop_page_size", 48)
	v.SetDefault("catalog.mobile_page_size", 12)
	v.SetDefault("catalog.fetch_default_limit", 48)
	v.SetDefault("catalog.fetch_max_limit", 96)
	v.SetDefault("catalog.step_multipliers", []int{12, 24, 48})
	v.SetDefault("catalog.tags_ui_limit", 10)
	v.SetDefault("catalog.pagination_neighbors", 10)
	v.SetDefault("catalog.ordering", []string{"product_name", "mark"})
	v.SetDefault("catalog.search_limit", 20)
	v.SetDefault("catalog.autocomplete_limit", 10)
	v.SetDefault("catalog.tree_cache_ttl_seconds", 600)
	v.SetDefault("site.name", "Стройпромбетон")
	v.SetDefault("site.base_url", "https://www.stroyprombeton.ru")
	v.SetDefault("site.email", "info@stroyprombeton.ru")
	v.SetDefault("site.phones", []string{"+7 (812) 648-13-80"})
	v.SetDefault("site.address", "")
	v.SetDefault("price.enabled", true)
	v.SetDefault("price.schedule", "0 0 3 * * *")
	v.SetDefault("price.utm_sources", []string{"YM", "GM"})
	v.SetDefault("price.utm_medium", "cpc")
	v.SetDefault("price.cache_ttl_seconds", 172800)
	v.SetDefault("order.number_prefix", "STB")
	v.SetDefault("order.max_positions", 200)
	v.SetDefault("order.max_quantity", 100000)
	v.SetDefault("order.require_captcha", false)
	v.SetDefault("captcha.length", 5)
	v.SetDefault("captcha.width", 240)
	v.SetDefault("captcha.height", 80)
	v.SetDefault("captcha.noise_count", 2)
	v.SetDefault("captcha.show_line", 2)
	v.SetDefault("captcha.expire_seconds", 300)
	v.SetDefault("captcha.max_store", 10240)
}

func (c *CatalogConfig) normalize() {
	if c.DesktopPageSize <= 0 {
		c.DesktopPageSize = 48
	}
	if c.MobilePageSize <= 0 {
		c.MobilePageSize = 12
	}
	if c.FetchDefaultLimit <= 0 {
		c.FetchDefaultLimit = c.DesktopPageSize
	}
	if len(c.StepMultipliers) == 0 {
		c.StepMultipliers = []int{c.MobilePageSize, c.MobilePageSize * 2, c.DesktopPageSize}
	}
	if c.FetchMaxLimit < c.FetchDefaultLimit {
		c.FetchMaxLimit = c.FetchDefaultLimit
	}
	if c.TagsUILimit <= 0 {
		c.TagsUILimit = 10
	}
	if c.PaginationNeighbors <= 0 {
		c.PaginationNeighbors = 10
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = 20
	}
	if c.AutocompleteLimit <= 0 {
		c.AutocompleteLimit = 10
	}
}
