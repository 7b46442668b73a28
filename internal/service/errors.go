package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/stroyprombeton/internal/catalog"
)

// 错误分类：处理器按分类映射到 404 / 400
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

// 资源不存在或过滤后为空
var (
	ErrCategoryNotFound  = fmt.Errorf("category not found: %w", ErrNotFound)
	ErrCategoryEmpty     = fmt.Errorf("category has no options: %w", ErrNotFound)
	ErrSeriesNotFound    = fmt.Errorf("series not found: %w", ErrNotFound)
	ErrSectionNotFound   = fmt.Errorf("section not found: %w", ErrNotFound)
	ErrTagsNotFound      = fmt.Errorf("tags not found: %w", ErrNotFound)
	ErrPageOutOfRange    = fmt.Errorf("%w: %w", catalog.ErrPageOutOfRange, ErrNotFound)
	ErrPageNotConfigured = fmt.Errorf("page not configured: %w", ErrNotFound)
	ErrProductNotFound   = fmt.Errorf("product not found: %w", ErrNotFound)
	ErrPriceListNotReady = fmt.Errorf("price list not generated: %w", ErrNotFound)
)

// 请求参数不合法
var (
	ErrCategoryIDRequired = fmt.Errorf("category id required: %w", ErrBadRequest)
	ErrCartTokenInvalid   = fmt.Errorf("cart token invalid: %w", ErrBadRequest)
	ErrCartEmpty          = fmt.Errorf("cart is empty: %w", ErrBadRequest)
	ErrInvalidQuantity    = fmt.Errorf("invalid quantity: %w", ErrBadRequest)
	ErrOptionNotAvailable = fmt.Errorf("option not available: %w", ErrBadRequest)
	ErrTooManyPositions   = fmt.Errorf("too many positions: %w", ErrBadRequest)
	ErrCaptchaInvalid     = fmt.Errorf("captcha invalid: %w", ErrBadRequest)
)

// ValidationError 表单字段校验失败，Fields 为字段名到校验规则的映射
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrBadRequest
}
