package repository

import (
	"errors"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

// SeriesRepository 系列数据访问接口
type SeriesRepository interface {
	GetBySlug(slug string) (*models.Series, error)
}

// GormSeriesRepository GORM 实现
type GormSeriesRepository struct {
	db *gorm.DB
}

// NewSeriesRepository 创建系列仓库
func NewSeriesRepository(db *gorm.DB) *GormSeriesRepository {
	return &GormSeriesRepository{db: db}
}

// GetBySlug 根据 slug 获取系列
func (r *GormSeriesRepository) GetBySlug(slug string) (*models.Series, error) {
	var series models.Series
	if err := r.db.Preload("Page.Template").Where("slug = ?", slug).First(&series).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &series, nil
}

// SectionRepository 分区数据访问接口
type SectionRepository interface {
	GetBySlug(slug string) (*models.Section, error)
}

// GormSectionRepository GORM 实现
type GormSectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository 创建分区仓库
func NewSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

// GetBySlug 根据 slug 获取分区
func (r *GormSectionRepository) GetBySlug(slug string) (*models.Section, error) {
	var section models.Section
	if err := r.db.Preload("Page.Template").Where("slug = ?", slug).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}
