package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表，Option 是它的可售规格
type Product struct {
	ID         uint           `gorm:"primarykey" json:"id"`                         // 主键
	Name       string         `gorm:"type:varchar(255);not null;index" json:"name"` // 名称
	SearchName string         `gorm:"type:varchar(255);index" json:"-"`             // 小写名称，用于搜索
	CategoryID uint           `gorm:"index;not null" json:"category_id"`            // 分类
	SectionID  *uint          `gorm:"index" json:"section_id,omitempty"`            // 所属分区
	PageID     uint           `gorm:"index;not null" json:"page_id"`                // 页面
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Page     *Page     `gorm:"foreignKey:PageID" json:"page,omitempty"`
	Options  []Option  `gorm:"foreignKey:ProductID" json:"options,omitempty"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsActive 商品页面是否上架
func (p Product) IsActive() bool {
	return p.Page != nil && p.Page.IsActive
}
