package repository

import (
	"errors"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByToken(token string) ([]models.CartItem, error)
	GetByTokenAndOption(token string, optionID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteByTokenAndOption(token string, optionID uint) error
	ClearByToken(token string) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByToken 获取购物车项，按加入顺序
func (r *GormCartRepository) ListByToken(token string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("cart_token = ?", token).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByTokenAndOption 获取单个购物车项
func (r *GormCartRepository) GetByTokenAndOption(token string, optionID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_token = ? AND option_id = ?", token, optionID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Upsert 添加或更新购物车项
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("cart_token = ? AND option_id = ?", item.CartToken, item.OptionID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	item.ID = existing.ID
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"quantity":   item.Quantity,
		"updated_at": item.UpdatedAt,
	}).Error
}

// DeleteByTokenAndOption 删除购物车项
func (r *GormCartRepository) DeleteByTokenAndOption(token string, optionID uint) error {
	return r.db.Where("cart_token = ? AND option_id = ?", token, optionID).Delete(&models.CartItem{}).Error
}

// ClearByToken 清空购物车
func (r *GormCartRepository) ClearByToken(token string) error {
	return r.db.Where("cart_token = ?", token).Delete(&models.CartItem{}).Error
}
