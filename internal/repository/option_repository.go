package repository

import (
	"errors"
	"strings"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OptionRepository 规格数据访问接口
type OptionRepository interface {
	Find(q OptionQuery) ([]models.Option, error)
	Count(q OptionQuery) (int64, error)
	GetByID(id uint) (*models.Option, error)
	ListByIDs(ids []uint) ([]models.Option, error)
	WithTx(tx *gorm.DB) *GormOptionRepository
}

// GormOptionRepository GORM 实现
type GormOptionRepository struct {
	db *gorm.DB
}

// NewOptionRepository 创建规格仓库
func NewOptionRepository(db *gorm.DB) *GormOptionRepository {
	return &GormOptionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOptionRepository) WithTx(tx *gorm.DB) *GormOptionRepository {
	if tx == nil {
		return r
	}
	return &GormOptionRepository{db: tx}
}

// Find 按查询描述取出规格，带商品与标签
func (r *GormOptionRepository) Find(q OptionQuery) ([]models.Option, error) {
	offset, limit := q.Window()
	if q.IsSliced() && limit == 0 {
		return []models.Option{}, nil
	}
	query := compileOptionQuery(r.db, q, true).
		Select("options.*").
		Preload("Product").
		Preload("Tags.Group")
	if q.IsSliced() {
		query = query.Offset(offset).Limit(limit)
	}
	var options []models.Option
	if err := query.Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// Count 统计查询命中数量，忽略截取
func (r *GormOptionRepository) Count(q OptionQuery) (int64, error) {
	var total int64
	if err := compileOptionQuery(r.db, q.Unsliced(), false).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// GetByID 根据 ID 获取上架规格
func (r *GormOptionRepository) GetByID(id uint) (*models.Option, error) {
	var option models.Option
	err := compileOptionQuery(r.db, NewOptionQuery().Active(), false).
		Select("options.*").
		Preload("Product").
		Where("options.id = ?", id).
		First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

// ListByIDs 批量获取上架规格
func (r *GormOptionRepository) ListByIDs(ids []uint) ([]models.Option, error) {
	if len(ids) == 0 {
		return []models.Option{}, nil
	}
	return r.Find(NewOptionQuery().Active().WithIDs(ids))
}

// compileOptionQuery 把查询描述翻译为 GORM 语句；withOrder 为 false 时用于统计与子查询
func compileOptionQuery(db *gorm.DB, q OptionQuery, withOrder bool) *gorm.DB {
	dialect := dbDialectName(db)
	query := db.Model(&models.Option{}).
		Joins("JOIN products ON products.id = options.product_id AND products.deleted_at IS NULL")

	if q.onlyActive {
		query = query.
			Joins("JOIN pages AS product_pages ON product_pages.id = products.page_id AND product_pages.deleted_at IS NULL").
			Where("product_pages.is_active = ?", true)
	}
	if q.onlyPriced {
		query = query.Where("options.price > 0")
	}
	for _, ids := range q.categorySet {
		if len(ids) == 0 {
			query = query.Where("1 = 0")
			continue
		}
		query = query.Where("products.category_id IN ?", ids)
	}
	for _, ids := range q.tagSets {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Table("option_tags").
			Select("option_tags.option_id").
			Where("option_tags.tag_id IN ?", ids)
		query = query.Where("options.id IN (?)", sub)
	}
	for _, id := range q.seriesIDs {
		query = query.Where("options.series_id = ?", id)
	}
	for _, id := range q.sectionIDs {
		query = query.Where("products.section_id = ?", id)
	}
	for _, ids := range q.optionIDs {
		if len(ids) == 0 {
			query = query.Where("1 = 0")
			continue
		}
		query = query.Where("options.id IN ?", ids)
	}
	for _, ids := range q.productIDs {
		if len(ids) == 0 {
			query = query.Where("1 = 0")
			continue
		}
		query = query.Where("options.product_id IN ?", ids)
	}
	if term := q.searchTerm; term != "" {
		condition, argCount := buildSearchCondition(dialect, q.lookups)
		if argCount > 0 {
			query = query.Where("("+condition+")", repeatLikeArgs(containsPattern(term), argCount)...)
		}
	}

	if withOrder {
		query = query.Order(buildOptionOrder(dialect, q))
	}
	return query
}

func searchColumn(lookup SearchLookup) string {
	switch lookup {
	case LookupProductName:
		return "products.search_name"
	case LookupCode:
		return "CAST(options.code AS TEXT)"
	case LookupMark:
		return "options.search_mark"
	default:
		return ""
	}
}

func buildSearchCondition(dialect string, lookups []SearchLookup) (string, int) {
	columns := make([]string, 0, len(lookups))
	for _, lookup := range lookups {
		if column := searchColumn(lookup); column != "" {
			columns = append(columns, column)
		}
	}
	return buildLikeConditionByDialect(dialect, columns)
}

// buildOptionOrder 组装完整排序：搜索相关度、声明的排序，最后以 options.id 收尾保证截取稳定
func buildOptionOrder(dialect string, q OptionQuery) clause.OrderBy {
	parts := make([]string, 0, len(q.orderings)+2)
	vars := make([]interface{}, 0, 1)
	if q.searchTerm != "" {
		parts = append(parts, prefixRankExpr(dialect, "products.search_name"))
		vars = append(vars, prefixPattern(q.searchTerm))
	}
	for _, ordering := range q.orderings {
		column, ok := orderingColumns[ordering.Field]
		if !ok {
			continue
		}
		direction := "ASC"
		if ordering.Desc {
			direction = "DESC"
		}
		parts = append(parts, column+" "+direction)
	}
	parts = append(parts, "options.id ASC")
	return orderExpr(strings.Join(parts, ", "), vars...)
}
