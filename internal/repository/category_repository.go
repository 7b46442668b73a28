package repository

import (
	"errors"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	GetByID(id uint) (*models.Category, error)
	GetActiveByID(id uint) (*models.Category, error)
	ListAll() ([]models.Category, error)
	DescendantIDs(id uint) ([]uint, error)
	SearchActive(term string, limit int) ([]models.Category, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// GetByID 根据 ID 获取分类（不区分上下架）
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.Preload("Page.Template").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetActiveByID 获取页面上架的分类
func (r *GormCategoryRepository) GetActiveByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.activeScope(r.db.Model(&models.Category{})).
		Select("categories.*").
		Preload("Page.Template").
		Where("categories.id = ?", id).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListAll 全部分类（带页面），按 position、name 排序
func (r *GormCategoryRepository) ListAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Preload("Page").Order("position ASC, name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DescendantIDs 返回分类自身及其全部后代 ID。
// 递归使用 UNION 去重，即使数据中出现环也会终止。
func (r *GormCategoryRepository) DescendantIDs(id uint) ([]uint, error) {
	const query = `
WITH RECURSIVE category_tree(id) AS (
	SELECT id FROM categories WHERE id = ? AND deleted_at IS NULL
	UNION
	SELECT categories.id FROM categories
	JOIN category_tree ON categories.parent_id = category_tree.id
	WHERE categories.deleted_at IS NULL
)
SELECT id FROM category_tree`
	ids := make([]uint, 0)
	if err := r.db.Raw(query, id).Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// SearchActive 按名称搜索上架分类，名称前缀匹配的排在前面
func (r *GormCategoryRepository) SearchActive(term string, limit int) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if term == "" || limit <= 0 {
		return categories, nil
	}
	dialect := dbDialectName(r.db)
	condition, argCount := buildLikeConditionByDialect(dialect, []string{"categories.search_name"})
	err := r.activeScope(r.db.Model(&models.Category{})).
		Select("categories.*").
		Where(condition, repeatLikeArgs(containsPattern(term), argCount)...).
		Order(orderExpr(prefixRankExpr(dialect, "categories.search_name")+", categories.name ASC, categories.id ASC", prefixPattern(term))).
		Limit(limit).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCategoryRepository) activeScope(query *gorm.DB) *gorm.DB {
	return query.
		Joins("JOIN pages AS category_pages ON category_pages.id = categories.page_id AND category_pages.deleted_at IS NULL").
		Where("category_pages.is_active = ?", true)
}
