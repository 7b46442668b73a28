package repository

import (
	"errors"
	"time"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

// ContactRequestRepository 联系请求数据访问接口
type ContactRequestRepository interface {
	Create(request *models.ContactRequest) error
	GetByID(id uint) (*models.ContactRequest, error)
	MarkNotified(id uint, at time.Time) error
}

// GormContactRequestRepository GORM 实现
type GormContactRequestRepository struct {
	db *gorm.DB
}

// NewContactRequestRepository 创建联系请求仓库
func NewContactRequestRepository(db *gorm.DB) *GormContactRequestRepository {
	return &GormContactRequestRepository{db: db}
}

// Create 保存联系请求
func (r *GormContactRequestRepository) Create(request *models.ContactRequest) error {
	return r.db.Create(request).Error
}

// GetByID 不存在时返回 nil
func (r *GormContactRequestRepository) GetByID(id uint) (*models.ContactRequest, error) {
	var request models.ContactRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// MarkNotified 只更新尚未通知的请求
func (r *GormContactRequestRepository) MarkNotified(id uint, at time.Time) error {
	return r.db.Model(&models.ContactRequest{}).
		Where("id = ? AND notified_at IS NULL", id).
		Updates(map[string]interface{}{
			"notified_at": at,
			"updated_at":  at,
		}).Error
}
