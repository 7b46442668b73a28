package service

import (
	"context"
	"time"

	"github.com/stroyprombeton/internal/cache"
	"github.com/stroyprombeton/internal/catalog"
	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/constants"
	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/repository"
)

// CategoryService 分类树服务
type CategoryService struct {
	repo repository.CategoryRepository
	ttl  time.Duration
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, cfg config.CatalogConfig) *CategoryService {
	ttl := time.Duration(cfg.TreeCacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CategoryService{repo: repo, ttl: ttl}
}

// Tree 获取上架分类的嵌套结构，优先读缓存
func (s *CategoryService) Tree(ctx context.Context) ([]catalog.TreeNode, error) {
	load := func() ([]catalog.TreeNode, error) {
		tree, err := s.LoadTree()
		if err != nil {
			return nil, err
		}
		return tree.Nested(true), nil
	}
	return cache.Remember(ctx, constants.CacheKeyCategoryTree, s.ttl, load, func(op string, err error) {
		logger.FromContext(ctx).Warnw("category_tree_cache_failed", "op", op, "error", err)
	})
}

// InvalidateTree 清除分类树缓存
func (s *CategoryService) InvalidateTree(ctx context.Context) error {
	return cache.Del(ctx, constants.CacheKeyCategoryTree)
}

// LoadTree 从数据库构造完整分类树（含下架分类）
func (s *CategoryService) LoadTree() (*catalog.Tree, error) {
	categories, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	return catalog.NewTree(categories), nil
}

// Breadcrumbs 从根分类到 categoryID 自身的路径
func (s *CategoryService) Breadcrumbs(categoryID uint) ([]Breadcrumb, error) {
	tree, err := s.LoadTree()
	if err != nil {
		return nil, err
	}
	return breadcrumbsFromTree(tree, categoryID), nil
}

func breadcrumbsFromTree(tree *catalog.Tree, categoryID uint) []Breadcrumb {
	crumbs := make([]Breadcrumb, 0)
	path := tree.Ancestors(categoryID)
	if self, ok := tree.Get(categoryID); ok {
		path = append(path, self)
	}
	for _, category := range path {
		crumb := Breadcrumb{ID: category.ID, Name: category.Name}
		if category.Page != nil {
			crumb.Slug = category.Page.Slug
		}
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}
