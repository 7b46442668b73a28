package models

import (
	"time"

	"gorm.io/gorm"
)

// Series 系列，按规格聚合
type Series struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	PageID    uint           `gorm:"index;not null" json:"page_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Page *Page `gorm:"foreignKey:PageID" json:"page,omitempty"`
}

// TableName 指定表名
func (Series) TableName() string {
	return "series"
}

// Section 分区，按商品聚合
type Section struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	PageID    uint           `gorm:"index;not null" json:"page_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Page *Page `gorm:"foreignKey:PageID" json:"page,omitempty"`
}

// TableName 指定表名
func (Section) TableName() string {
	return "sections"
}
