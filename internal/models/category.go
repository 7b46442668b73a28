package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 分类表，通过 ParentID 组成森林
type Category struct {
	ID            uint           `gorm:"primarykey" json:"id"`                     // 主键
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`   // 名称
	SearchName    string         `gorm:"type:varchar(255);index" json:"-"`         // 小写名称，用于搜索
	ParentID      *uint          `gorm:"index" json:"parent_id,omitempty"`         // 父分类
	Position      int            `gorm:"default:0;index" json:"position"`          // 排序权重
	Specification string         `gorm:"type:text" json:"specification,omitempty"` // 技术规范
	PageID        uint           `gorm:"index;not null" json:"page_id"`            // 页面
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间

	Page *Page `gorm:"foreignKey:PageID" json:"page,omitempty"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// IsActive 分类页面是否上架
func (c Category) IsActive() bool {
	return c.Page != nil && c.Page.IsActive
}
