package catalog

import (
	"errors"
	"strconv"
	"strings"
)

// ErrPageOutOfRange 页码或每页数量不合法
var ErrPageOutOfRange = errors.New("page out of range")

// Page 页码分页结果
type Page struct {
	Number      int   `json:"number"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
	Previous    int   `json:"previous,omitempty"`
	Next        int   `json:"next,omitempty"`
	Numbers     []int `json:"numbers"`
	Offset      int   `json:"-"`
	Limit       int   `json:"-"`
}

// Paginate 计算页码分页。页码从 1 开始；空集合的最后一页为 1。
// perPage 不在 allowedSteps 内（allowedSteps 非空时）或页码越界返回 ErrPageOutOfRange。
func Paginate(total int64, number, perPage int, allowedSteps []int, neighbors int) (Page, error) {
	if number < 1 || perPage < 1 {
		return Page{}, ErrPageOutOfRange
	}
	if len(allowedSteps) > 0 && !containsInt(allowedSteps, perPage) {
		return Page{}, ErrPageOutOfRange
	}
	if total < 0 {
		total = 0
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	if number > totalPages {
		return Page{}, ErrPageOutOfRange
	}

	page := Page{
		Number:      number,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasPrevious: number > 1,
		HasNext:     number < totalPages,
		Offset:      (number - 1) * perPage,
		Limit:       perPage,
		Numbers:     pageNumbers(number, totalPages, neighbors),
	}
	if page.HasPrevious {
		page.Previous = number - 1
	}
	if page.HasNext {
		page.Next = number + 1
	}
	return page, nil
}

func pageNumbers(number, totalPages, neighbors int) []int {
	if neighbors < 0 {
		neighbors = 0
	}
	from, to := number-neighbors, number+neighbors
	if from < 1 {
		from = 1
	}
	if to > totalPages {
		to = totalPages
	}
	numbers := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		numbers = append(numbers, i)
	}
	return numbers
}

func containsInt(values []int, target int) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// Window 偏移量分页（加载更多）
type Window struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ParseWindow 解析偏移量与数量：偏移量缺失或非法时为 0，数量缺失或非法时取默认值。
// 数量为 0 是合法的，对应空切片。
func ParseWindow(rawOffset, rawLimit string, defaultLimit int) Window {
	window := Window{Offset: 0, Limit: defaultLimit}
	if offset, err := strconv.Atoi(strings.TrimSpace(rawOffset)); err == nil && offset >= 0 {
		window.Offset = offset
	}
	if limit, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && limit >= 0 {
		window.Limit = limit
	}
	return window
}

// Clamp 限制单次加载数量，maxLimit <= 0 时不限制
func (w Window) Clamp(maxLimit int) Window {
	if maxLimit > 0 && w.Limit > maxLimit {
		w.Limit = maxLimit
	}
	return w
}

// ParsePositiveInt 解析正整数，失败时返回默认值
func ParsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// ParsePageNumber 解析页码：缺失时为 1，非法时为 0（随后由 Paginate 判定越界）
func ParsePageNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0
	}
	return value
}
