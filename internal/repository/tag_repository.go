package repository

import (
	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

// TagRepository 标签数据访问接口
type TagRepository interface {
	ListBySlugs(slugs []string) ([]models.Tag, error)
	ListByOptionQuery(q OptionQuery) ([]models.Tag, error)
}

// GormTagRepository GORM 实现
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// ListBySlugs 根据 slug 批量获取标签
func (r *GormTagRepository) ListBySlugs(slugs []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if len(slugs) == 0 {
		return tags, nil
	}
	if err := r.db.Preload("Group").Where("slug IN ?", slugs).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ListByOptionQuery 返回查询命中的规格上出现过的全部标签，每个标签只出现一次
func (r *GormTagRepository) ListByOptionQuery(q OptionQuery) ([]models.Tag, error) {
	optionIDs := compileOptionQuery(r.db.Session(&gorm.Session{NewDB: true}), q.Unsliced(), false).
		Select("options.id")
	tagIDs := r.db.Session(&gorm.Session{NewDB: true}).
		Table("option_tags").
		Select("option_tags.tag_id").
		Where("option_tags.option_id IN (?)", optionIDs)

	tags := make([]models.Tag, 0)
	err := r.db.Preload("Group").
		Where("tags.id IN (?)", tagIDs).
		Order("tags.position ASC, tags.id ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
