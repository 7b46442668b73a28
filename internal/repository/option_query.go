package repository

import (
	"strings"
)

// SearchLookup 可搜索字段
type SearchLookup string

const (
	LookupProductName SearchLookup = "product_name"
	LookupCode        SearchLookup = "code"
	LookupMark        SearchLookup = "mark"
)

// DefaultSearchLookups 规格搜索默认字段
var DefaultSearchLookups = []SearchLookup{LookupProductName, LookupCode, LookupMark}

// Ordering 排序项，Field 为白名单内的字段名
type Ordering struct {
	Field string
	Desc  bool
}

// ParseOrdering 解析 "-price" 形式的排序声明，未知字段返回 false
func ParseOrdering(raw string) (Ordering, bool) {
	raw = strings.TrimSpace(raw)
	desc := strings.HasPrefix(raw, "-")
	field := strings.TrimPrefix(raw, "-")
	if _, ok := orderingColumns[field]; !ok {
		return Ordering{}, false
	}
	return Ordering{Field: field, Desc: desc}, true
}

// ParseOrderings 批量解析排序声明，忽略未知字段
func ParseOrderings(raw []string) []Ordering {
	result := make([]Ordering, 0, len(raw))
	for _, item := range raw {
		if ordering, ok := ParseOrdering(item); ok {
			result = append(result, ordering)
		}
	}
	return result
}

var orderingColumns = map[string]string{
	"product_name": "products.name",
	"mark":         "options.mark",
	"code":         "options.code",
	"price":        "options.price",
	"popularity":   "options.is_popular",
	"in_stock":     "options.in_stock",
}

// OptionQuery 规格查询描述。值类型且不可变，每个方法都返回新的查询；
// 只有仓库的 Find/Count 才会真正访问数据库。
type OptionQuery struct {
	onlyActive  bool
	onlyPriced  bool
	categorySet [][]uint
	tagSets     [][]uint
	seriesIDs   []uint
	sectionIDs  []uint
	optionIDs   [][]uint
	productIDs  [][]uint
	searchTerm  string
	lookups     []SearchLookup
	orderings   []Ordering
	sliced      bool
	offset      int
	limit       int
}

// NewOptionQuery 创建全量规格查询
func NewOptionQuery() OptionQuery {
	return OptionQuery{}
}

// Active 只保留商品页面上架的规格
func (q OptionQuery) Active() OptionQuery {
	q.onlyActive = true
	return q
}

// Priced 只保留价格大于 0 的规格
func (q OptionQuery) Priced() OptionQuery {
	q.onlyPriced = true
	return q
}

// InCategories 限定商品分类，多次调用取交集；空集合不匹配任何规格
func (q OptionQuery) InCategories(ids []uint) OptionQuery {
	q.categorySet = appendSet(q.categorySet, ids)
	return q
}

// TaggedOrAll 未选择标签时原样返回；否则只保留至少带有其中一个标签的规格
func (q OptionQuery) TaggedOrAll(tagIDs []uint) OptionQuery {
	if len(tagIDs) == 0 {
		return q
	}
	q.tagSets = appendSet(q.tagSets, tagIDs)
	return q
}

// InSeries 限定系列
func (q OptionQuery) InSeries(seriesID uint) OptionQuery {
	q.seriesIDs = append(append([]uint(nil), q.seriesIDs...), seriesID)
	return q
}

// InSection 限定商品分区
func (q OptionQuery) InSection(sectionID uint) OptionQuery {
	q.sectionIDs = append(append([]uint(nil), q.sectionIDs...), sectionID)
	return q
}

// WithIDs 限定规格 ID
func (q OptionQuery) WithIDs(ids []uint) OptionQuery {
	q.optionIDs = appendSet(q.optionIDs, ids)
	return q
}

// InProducts 限定商品
func (q OptionQuery) InProducts(ids []uint) OptionQuery {
	q.productIDs = appendSet(q.productIDs, ids)
	return q
}

// Search 在指定字段中做不区分大小写的子串匹配，字段之间为 OR；
// 空白词条原样返回。排序时商品名称以词条开头的规格优先。
func (q OptionQuery) Search(term string, lookups ...SearchLookup) OptionQuery {
	term = strings.TrimSpace(term)
	if term == "" {
		return q
	}
	if len(lookups) == 0 {
		lookups = DefaultSearchLookups
	}
	q.searchTerm = term
	q.lookups = append([]SearchLookup(nil), lookups...)
	return q
}

// OrderBy 替换排序声明
func (q OptionQuery) OrderBy(orderings ...Ordering) OptionQuery {
	q.orderings = append([]Ordering(nil), orderings...)
	return q
}

// Slice 截取 [offset, offset+limit)
func (q OptionQuery) Slice(offset, limit int) OptionQuery {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	q.sliced = true
	q.offset = offset
	q.limit = limit
	return q
}

// Unsliced 去掉截取，用于统计总数
func (q OptionQuery) Unsliced() OptionQuery {
	q.sliced = false
	q.offset = 0
	q.limit = 0
	return q
}

// SearchTerm 当前搜索词
func (q OptionQuery) SearchTerm() string {
	return q.searchTerm
}

// IsSliced 是否设置了截取
func (q OptionQuery) IsSliced() bool {
	return q.sliced
}

// Window 返回截取参数
func (q OptionQuery) Window() (offset, limit int) {
	return q.offset, q.limit
}

func appendSet(sets [][]uint, ids []uint) [][]uint {
	copied := make([]uint, len(ids))
	copy(copied, ids)
	next := make([][]uint, 0, len(sets)+1)
	next = append(next, sets...)
	return append(next, copied)
}
