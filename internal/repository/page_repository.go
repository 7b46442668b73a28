package repository

import (
	"errors"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

// PageRepository 页面数据访问接口
type PageRepository interface {
	GetActiveBySlug(slug string) (*models.Page, error)
}

// GormPageRepository GORM 实现
type GormPageRepository struct {
	db *gorm.DB
}

// NewPageRepository 创建页面仓库
func NewPageRepository(db *gorm.DB) *GormPageRepository {
	return &GormPageRepository{db: db}
}

// GetActiveBySlug 根据 slug 获取上架页面
func (r *GormPageRepository) GetActiveBySlug(slug string) (*models.Page, error) {
	var page models.Page
	err := r.db.Preload("Template").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}
