package public

import (
	"errors"

	"github.com/stroyprombeton/internal/http/handlers/shared"
	"github.com/stroyprombeton/internal/http/response"
	"github.com/stroyprombeton/internal/i18n"
	"github.com/stroyprombeton/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		respondValidationError(c, validationErr)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// respondValidationError 返回逐字段的校验提示
func respondValidationError(c *gin.Context, err *service.ValidationError) {
	locale := i18n.ResolveLocale(c)
	fields := make(gin.H, len(err.Fields))
	for field, tag := range err.Fields {
		key := "validation." + tag
		msg := i18n.T(locale, key)
		if msg == key {
			msg = i18n.T(locale, "validation.invalid")
		}
		fields[field] = msg
	}
	shared.RespondErrorWithData(c, response.CodeBadRequest, "error.validation_failed", gin.H{"fields": fields}, nil)
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrCategoryEmpty, code: response.CodeNotFound, key: "error.category_empty"},
	{target: service.ErrSeriesNotFound, code: response.CodeNotFound, key: "error.series_not_found"},
	{target: service.ErrSectionNotFound, code: response.CodeNotFound, key: "error.section_not_found"},
	{target: service.ErrTagsNotFound, code: response.CodeNotFound, key: "error.tags_not_found"},
	{target: service.ErrPageOutOfRange, code: response.CodeNotFound, key: "error.page_out_of_range"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCategoryIDRequired, code: response.CodeBadRequest, key: "error.category_id_required"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrBadRequest, code: response.CodeBadRequest, key: "error.bad_request"},
}

var pageErrorRules = []mappedHandlerError{
	{target: service.ErrPageNotConfigured, code: response.CodeNotFound, key: "error.page_not_configured"},
}

var priceListErrorRules = []mappedHandlerError{
	{target: service.ErrPriceListNotReady, code: response.CodeNotFound, key: "error.price_list_not_ready"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrCartTokenInvalid, code: response.CodeBadRequest, key: "error.cart_token_invalid"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.invalid_quantity"},
	{target: service.ErrOptionNotAvailable, code: response.CodeBadRequest, key: "error.option_not_available"},
}

var orderExtraErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrTooManyPositions, code: response.CodeBadRequest, key: "error.order_too_many_items"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
}

func respondCatalogError(c *gin.Context, err error) {
	respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_fetch_failed")
}

func respondPageError(c *gin.Context, err error) {
	respondWithMappedError(c, err, pageErrorRules, response.CodeInternal, "error.catalog_fetch_failed")
}

func respondPriceListError(c *gin.Context, err error) {
	respondWithMappedError(c, err, priceListErrorRules, response.CodeInternal, "error.price_list_failed")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartErrorRules, orderExtraErrorRules), response.CodeInternal, "error.order_create_failed")
}

func respondContactCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, nil, response.CodeInternal, "error.contact_create_failed")
}
