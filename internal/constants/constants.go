package constants

// 队列与任务常量
const (
	QueueDefault         = "default"
	QueueLow             = "low"
	TaskOrderPlaced      = "order:placed"
	TaskPriceRegenerate  = "price:regenerate"
	TaskContactRequested = "contact:requested"
)

// 设备类型常量，决定类目页默认每页数量
const (
	DeviceClassDesktop = "desktop"
	DeviceClassMobile  = "mobile"
	DeviceClassTablet  = "tablet"
)

// 请求上下文键与请求头
const (
	ContextKeyRequestID   = "request_id"
	ContextKeyDeviceClass = "device_class"
	HeaderRequestID       = "X-Request-ID"
	HeaderCartToken       = "X-Cart-Token"
)

// 缓存键
const (
	CacheKeyCategoryTree = "catalog:tree"
	CacheKeyPriceList    = "price:list"
)

// 价目表 UTM 参数
const (
	PriceUTMCampaign    = "price"
	PriceProductURLPath = "/catalog/products/%d/"
)
