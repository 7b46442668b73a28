package models

import (
	"time"

	"gorm.io/gorm"
)

// 页面类型
const (
	PageTypeCategory = "category"
	PageTypeProduct  = "product"
	PageTypeSeries   = "series"
	PageTypeSection  = "section"
	PageTypeCustom   = "custom"
)

// Page 页面表，目录实体的展示信息与上下架状态都保存在页面上
type Page struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                         // 主键
	Slug        string         `gorm:"uniqueIndex;type:varchar(400);not null" json:"slug"`           // 唯一标识
	Type        string         `gorm:"type:varchar(32);index;not null;default:'custom'" json:"type"` // 页面类型
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`                       // 名称
	H1          string         `gorm:"type:varchar(255)" json:"h1"`                                  // 标题
	Title       string         `gorm:"type:varchar(255)" json:"title"`                               // SEO 标题
	Description string         `gorm:"type:text" json:"description"`                                 // SEO 描述
	Keywords    string         `gorm:"type:text" json:"keywords"`                                    // SEO 关键词
	SEOText     string         `gorm:"type:text" json:"seo_text"`                                    // SEO 文本
	Content     string         `gorm:"type:text" json:"content"`                                     // 正文
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                          // 是否上架
	Position    int            `gorm:"default:0;index" json:"position"`                              // 排序
	TemplateID  *uint          `gorm:"index" json:"template_id,omitempty"`                           // 元信息模板
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Template *PageTemplate `gorm:"foreignKey:TemplateID" json:"-"`
}

// TableName 指定表名
func (Page) TableName() string {
	return "pages"
}

// PageTemplate 页面元信息模板，字段内容为 text/template 源码
type PageTemplate struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	H1          string    `gorm:"type:text" json:"h1"`
	Title       string    `gorm:"type:text" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Keywords    string    `gorm:"type:text" json:"keywords"`
	SEOText     string    `gorm:"type:text" json:"seo_text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (PageTemplate) TableName() string {
	return "page_templates"
}
