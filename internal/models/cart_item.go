package models

import (
	"time"
)

// CartItem 购物车项，匿名购物车以 CartToken 区分
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                 // 主键
	CartToken string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_token_option" json:"-"` // 购物车令牌
	OptionID  uint      `gorm:"not null;uniqueIndex:idx_cart_token_option" json:"option_id"`          // 规格ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                             // 数量
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                              // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                              // 更新时间

	Option *Option `gorm:"foreignKey:OptionID" json:"option,omitempty"` // 关联规格
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
