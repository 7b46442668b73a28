package repository

import (
	"errors"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetActiveByID(id uint) (*models.Product, error)
	SearchActive(term string, limit int) ([]models.Product, error)
	ListActiveBySection(sectionID uint, page, pageSize int) ([]models.Product, int64, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetActiveByID 获取页面上架的商品
func (r *GormProductRepository) GetActiveByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.activeScope(r.db.Model(&models.Product{})).
		Select("products.*").
		Preload("Page.Template").
		Preload("Category").
		Where("products.id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// SearchActive 按名称搜索上架商品，名称前缀匹配的排在前面
func (r *GormProductRepository) SearchActive(term string, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if term == "" || limit <= 0 {
		return products, nil
	}
	dialect := dbDialectName(r.db)
	condition, argCount := buildLikeConditionByDialect(dialect, []string{"products.search_name"})
	err := r.activeScope(r.db.Model(&models.Product{})).
		Select("products.*").
		Where(condition, repeatLikeArgs(containsPattern(term), argCount)...).
		Order(orderExpr(prefixRankExpr(dialect, "products.search_name")+", products.name ASC, products.id ASC", prefixPattern(term))).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListActiveBySection 分区内上架商品分页
func (r *GormProductRepository) ListActiveBySection(sectionID uint, page, pageSize int) ([]models.Product, int64, error) {
	query := r.activeScope(r.db.Model(&models.Product{})).
		Where("products.section_id = ?", sectionID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := make([]models.Product, 0)
	err := applyPagination(query.Select("products.*").Order("products.name ASC, products.id ASC"), page, pageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *GormProductRepository) activeScope(query *gorm.DB) *gorm.DB {
	return query.
		Joins("JOIN pages AS product_pages ON product_pages.id = products.page_id AND product_pages.deleted_at IS NULL").
		Where("product_pages.is_active = ?", true)
}
