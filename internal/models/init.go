package models

import (
	"errors"

	"github.com/stroyprombeton/internal/logger"

	"gorm.io/gorm"
)

// DefaultCategoryTemplateName 分类页默认模板名
const DefaultCategoryTemplateName = "category"

// DefaultCategoryTemplate 分类页默认元信息模板
func DefaultCategoryTemplate() PageTemplate {
	return PageTemplate{
		Name:        DefaultCategoryTemplateName,
		H1:          `{{ .Page.Name }}{{ if .TagTitles }} {{ .TagTitles }}{{ end }}`,
		Title:       `{{ .Page.Name }}{{ if .TagTitles }} {{ .TagTitles }}{{ end }} | купить от производителя`,
		Description: `{{ .Page.Name }}{{ if .TagTitles }} {{ .TagTitles }}{{ end }} от завода ЖБИ «Стройпромбетон».`,
		Keywords:    `{{ .Page.Name }}`,
	}
}

// EnsureDefaultPageTemplates 初始化默认元信息模板，并挂到未配置模板的分类页上
func EnsureDefaultPageTemplates(db *gorm.DB) error {
	var tpl PageTemplate
	err := db.Where("name = ?", DefaultCategoryTemplateName).First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tpl = DefaultCategoryTemplate()
		if err := db.Create(&tpl).Error; err != nil {
			return err
		}
		logger.Infow("default_page_template_created", "name", tpl.Name, "id", tpl.ID)
	} else if err != nil {
		return err
	}

	result := db.Model(&Page{}).
		Where("type = ? AND template_id IS NULL", PageTypeCategory).
		Update("template_id", tpl.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		logger.Infow("default_page_template_attached", "pages", result.RowsAffected)
	}
	return nil
}
