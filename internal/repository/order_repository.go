package repository

import (
	"errors"
	"time"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, positions []models.OrderPosition) error
	GetByID(id uint) (*models.Order, error)
	MarkNotified(id uint, at time.Time) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, positions []models.OrderPosition) error {
	if err := r.db.Omit("Positions").Create(order).Error; err != nil {
		return err
	}
	for i := range positions {
		positions[i].OrderID = order.ID
	}
	if len(positions) > 0 {
		if err := r.db.Create(&positions).Error; err != nil {
			return err
		}
	}
	order.Positions = positions
	return nil
}

// GetByID 根据 ID 获取订单与订单项
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Positions").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// MarkNotified 标记订单已通知
func (r *GormOrderRepository) MarkNotified(id uint, at time.Time) error {
	return r.db.Model(&models.Order{}).
		Where("id = ? AND notified_at IS NULL", id).
		Updates(map[string]interface{}{
			"status":      models.OrderStatusNotified,
			"notified_at": at,
			"updated_at":  at,
		}).Error
}
