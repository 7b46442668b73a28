package i18n

var messagesEN = map[string]string{
	"error.bad_request":             "Bad request",
	"error.not_found":               "Not found",
	"error.internal":                "Internal server error",
	"error.rate_limited":            "Too many requests, retry in %d s",
	"error.rate_limit_unavailable":  "Rate limiter unavailable",
	"error.category_not_found":      "Category not found",
	"error.category_empty":          "Category has no products",
	"error.category_id_required":    "Category id is required",
	"error.series_not_found":        "Series not found",
	"error.section_not_found":       "Section not found",
	"error.tags_not_found":          "Tags not found",
	"error.page_out_of_range":       "Page not found",
	"error.page_not_configured":     "Page is not configured",
	"error.product_not_found":       "Product not found",
	"error.catalog_fetch_failed":    "Failed to load catalog",
	"error.search_failed":           "Search failed",
	"error.cart_token_invalid":      "Invalid cart token",
	"error.cart_empty":              "Cart is empty",
	"error.cart_failed":             "Failed to update cart",
	"error.invalid_quantity":        "Invalid quantity",
	"error.option_not_available":    "Position is not available",
	"error.order_create_failed":     "Failed to place order",
	"error.order_too_many_items":    "Too many positions in order",
	"error.captcha_invalid":         "Invalid captcha",
	"error.captcha_generate_failed": "Failed to generate captcha",
	"error.price_list_failed":       "Failed to load price list",
	"error.price_list_not_ready":    "Price list is not generated yet",
	"error.contact_create_failed":   "Failed to send request",
	"error.validation_failed":       "Please check the form fields",
	"validation.required":           "This field is required",
	"validation.email":              "Invalid email address",
	"validation.max":                "Value is too long",
	"validation.min":                "Value is too short",
	"validation.url":                "Invalid site address",
	"validation.activity":           "Choose an activity from the list",
	"validation.invalid":            "Invalid value",
}
