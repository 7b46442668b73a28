// Package seed 构造目录数据，供 cmd/seed 与测试复用。
package seed

import (
	"fmt"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

// Builder 目录数据构造器，第一次出错后其余调用均为空操作
type Builder struct {
	db       *gorm.DB
	err      error
	nextCode int
	pages    int
}

// NewBuilder 创建构造器
func NewBuilder(db *gorm.DB) *Builder {
	return &Builder{db: db, nextCode: 100000}
}

// Err 返回第一次出现的错误
func (b *Builder) Err() error {
	return b.err
}

// DB 返回底层连接
func (b *Builder) DB() *gorm.DB {
	return b.db
}

func (b *Builder) create(value interface{}) {
	if b.err != nil {
		return
	}
	if err := b.db.Create(value).Error; err != nil {
		b.err = err
	}
}

// Page 创建页面
func (b *Builder) Page(pageType, name string, active bool) *models.Page {
	b.pages++
	page := &models.Page{
		Slug:     fmt.Sprintf("%s-%d", pageType, b.pages),
		Type:     pageType,
		Name:     name,
		H1:       name,
		Title:    name,
		IsActive: true,
	}
	b.create(page)
	if b.err == nil && !active {
		// GORM 对零值 bool 使用默认值 true，需要单独更新
		if err := b.db.Model(page).Update("is_active", false).Error; err != nil {
			b.err = err
		}
		page.IsActive = false
	}
	return page
}

// Category 创建分类；parent 为空时为根分类
func (b *Builder) Category(name string, parent *models.Category, active bool) *models.Category {
	page := b.Page(models.PageTypeCategory, name, active)
	category := &models.Category{Name: name, PageID: page.ID}
	if parent != nil {
		parentID := parent.ID
		category.ParentID = &parentID
	}
	b.create(category)
	category.Page = page
	return category
}

// Product 创建商品
func (b *Builder) Product(name string, category *models.Category, active bool) *models.Product {
	page := b.Page(models.PageTypeProduct, name, active)
	product := &models.Product{Name: name, PageID: page.ID}
	if category != nil {
		product.CategoryID = category.ID
	}
	b.create(product)
	product.Page = page
	return product
}

// Option 创建规格，编码自动递增
func (b *Builder) Option(product *models.Product, mark string, price string, tags ...*models.Tag) *models.Option {
	if b.err != nil {
		return &models.Option{}
	}
	amount, err := models.NewMoneyFromString(price)
	if err != nil {
		b.err = err
		return &models.Option{}
	}
	b.nextCode++
	code := b.nextCode
	option := &models.Option{
		ProductID: product.ID,
		Code:      &code,
		Mark:      mark,
		Price:     amount,
		InStock:   1,
	}
	for _, tag := range tags {
		if tag != nil {
			option.Tags = append(option.Tags, models.Tag{ID: tag.ID, GroupID: tag.GroupID, Name: tag.Name, Slug: tag.Slug, Position: tag.Position})
		}
	}
	b.create(option)
	return option
}

// Options 批量创建同一商品下的规格
func (b *Builder) Options(product *models.Product, count int, price string, tags ...*models.Tag) []*models.Option {
	result := make([]*models.Option, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, b.Option(product, fmt.Sprintf("%s-%03d", product.Name, i+1), price, tags...))
	}
	return result
}

// TagGroup 创建标签组
func (b *Builder) TagGroup(name string, position int) *models.TagGroup {
	group := &models.TagGroup{Name: name, Position: position}
	b.create(group)
	return group
}

// Tag 创建标签
func (b *Builder) Tag(group *models.TagGroup, name, slug string) *models.Tag {
	tag := &models.Tag{Name: name, Slug: slug}
	if group != nil {
		groupID := group.ID
		tag.GroupID = &groupID
	}
	b.create(tag)
	tag.Group = group
	return tag
}

// Series 创建系列，并把规格挂到系列下
func (b *Builder) Series(name, slug string, options ...*models.Option) *models.Series {
	page := b.Page(models.PageTypeSeries, name, true)
	series := &models.Series{Name: name, Slug: slug, PageID: page.ID}
	b.create(series)
	series.Page = page
	for _, option := range options {
		if b.err != nil {
			break
		}
		if err := b.db.Model(option).Update("series_id", series.ID).Error; err != nil {
			b.err = err
		}
	}
	return series
}

// Section 创建分区，并把商品挂到分区下
func (b *Builder) Section(name, slug string, products ...*models.Product) *models.Section {
	page := b.Page(models.PageTypeSection, name, true)
	section := &models.Section{Name: name, Slug: slug, PageID: page.ID}
	b.create(section)
	section.Page = page
	for _, product := range products {
		if b.err != nil {
			break
		}
		if err := b.db.Model(product).Update("section_id", section.ID).Error; err != nil {
			b.err = err
		}
	}
	return section
}
