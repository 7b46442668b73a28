package service

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/stroyprombeton/internal/catalog"
	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/repository"
)

// PageMeta 渲染后的页面元信息
type PageMeta struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	H1          string `json:"h1"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
	SEOText     string `json:"seo_text,omitempty"`
	Content     string `json:"content,omitempty"`
}

// PageTemplateData 元信息模板可用的变量
type PageTemplateData struct {
	Page      models.Page
	TagTitles string
	Tags      []models.Tag
}

// PageMetaRenderer 用页面模板渲染元信息，解析结果按源码缓存
type PageMetaRenderer struct {
	mu     sync.RWMutex
	parsed map[string]*template.Template
}

// NewPageMetaRenderer 创建渲染器
func NewPageMetaRenderer() *PageMetaRenderer {
	return &PageMetaRenderer{parsed: map[string]*template.Template{}}
}

// Render 渲染页面元信息。页面没有模板或模板字段为空时使用页面自身的字段。
func (r *PageMetaRenderer) Render(page *models.Page, tags []models.Tag) (PageMeta, error) {
	if page == nil {
		return PageMeta{}, nil
	}
	meta := PageMeta{
		Slug:        page.Slug,
		Name:        page.Name,
		H1:          page.H1,
		Title:       page.Title,
		Description: page.Description,
		Keywords:    page.Keywords,
		SEOText:     page.SEOText,
		Content:     page.Content,
	}
	if meta.H1 == "" {
		meta.H1 = page.Name
	}
	if meta.Title == "" {
		meta.Title = page.Name
	}
	tpl := page.Template
	if tpl == nil {
		return meta, nil
	}

	data := PageTemplateData{Page: *page, TagTitles: catalog.TagTitle(tags), Tags: catalog.SortTags(tags)}
	data.Page.Template = nil
	fields := []struct {
		name   string
		source string
		target *string
	}{
		{"h1", tpl.H1, &meta.H1},
		{"title", tpl.Title, &meta.Title},
		{"description", tpl.Description, &meta.Description},
		{"keywords", tpl.Keywords, &meta.Keywords},
		{"seo_text", tpl.SEOText, &meta.SEOText},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.source) == "" {
			continue
		}
		rendered, err := r.execute(field.source, data)
		if err != nil {
			return PageMeta{}, fmt.Errorf("render page %d %s: %w", page.ID, field.name, err)
		}
		*field.target = strings.TrimSpace(rendered)
	}
	return meta, nil
}

func (r *PageMetaRenderer) execute(source string, data PageTemplateData) (string, error) {
	tpl, err := r.lookup(source)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *PageMetaRenderer) lookup(source string) (*template.Template, error) {
	r.mu.RLock()
	tpl, ok := r.parsed[source]
	r.mu.RUnlock()
	if ok {
		return tpl, nil
	}
	tpl, err := template.New("page_meta").Option("missingkey=zero").Parse(source)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.parsed[source] = tpl
	r.mu.Unlock()
	return tpl, nil
}

// PageMetaService 自定义页面元信息，来自配置中的 pages 映射
type PageMetaService struct {
	pages    map[string]config.PageMetaConfig
	pageRepo repository.PageRepository
}

// NewPageMetaService 创建自定义页面元信息服务
func NewPageMetaService(pages map[string]config.PageMetaConfig, pageRepo repository.PageRepository) *PageMetaService {
	normalized := make(map[string]config.PageMetaConfig, len(pages))
	for slug, meta := range pages {
		normalized[strings.ToLower(strings.TrimSpace(slug))] = meta
	}
	return &PageMetaService{pages: normalized, pageRepo: pageRepo}
}

// Get 获取自定义页面元信息；未配置的页面返回 ErrPageNotConfigured。
// 数据库中存在同名上架页面时补充正文与 SEO 文本。
func (s *PageMetaService) Get(slug string) (*PageMeta, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	cfg, ok := s.pages[slug]
	if !ok {
		return nil, ErrPageNotConfigured
	}
	meta := &PageMeta{
		Slug:        slug,
		Name:        cfg.H1,
		H1:          cfg.H1,
		Title:       cfg.Title,
		Description: cfg.Description,
		Keywords:    cfg.Keywords,
	}
	if meta.Title == "" {
		meta.Title = cfg.H1
	}
	if s.pageRepo == nil {
		return meta, nil
	}
	page, err := s.pageRepo.GetActiveBySlug(slug)
	if err != nil {
		return nil, err
	}
	if page != nil {
		meta.Name = page.Name
		meta.Content = page.Content
		meta.SEOText = page.SEOText
	}
	return meta, nil
}
