package service

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func testCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{
		DesktopPageSize:     48,
		MobilePageSize:      12,
		FetchDefaultLimit:   48,
		StepMultipliers:     []int{12, 24, 48},
		TagsUILimit:         10,
		PaginationNeighbors: 10,
		Ordering:            []string{"product_name", "mark"},
		SearchLimit:         20,
		AutocompleteLimit:   10,
	}
}

type testServices struct {
	db       *gorm.DB
	category *CategoryService
	catalog  *CatalogService
	product  *ProductService
	search   *SearchService
	cart     *CartService
}

func newTestServices(db *gorm.DB) testServices {
	cfg := testCatalogConfig()
	categoryRepo := repository.NewCategoryRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	productRepo := repository.NewProductRepository(db)
	renderer := NewPageMetaRenderer()
	categoryService := NewCategoryService(categoryRepo, cfg)
	return testServices{
		db:       db,
		category: categoryService,
		catalog: NewCatalogService(
			categoryRepo,
			optionRepo,
			repository.NewTagRepository(db),
			repository.NewSeriesRepository(db),
			repository.NewSectionRepository(db),
			productRepo,
			categoryService,
			renderer,
			cfg,
		),
		product: NewProductService(productRepo, optionRepo, categoryService, renderer, cfg),
		search:  NewSearchService(categoryRepo, productRepo, optionRepo, cfg),
		cart:    NewCartService(repository.NewCartRepository(db), optionRepo, categoryService, config.OrderConfig{MaxQuantity: 1000}),
	}
}

func optionIDSet(options []models.Option) map[uint]int {
	ids := make(map[uint]int, len(options))
	for _, option := range options {
		ids[option.ID]++
	}
	return ids
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
