package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestFoldSearchText(t *testing.T) {
	cases := map[string]string{
		" Плита ПК-60 ": "плита пк-60",
		"ЛОТОК":         "лоток",
		"Tray LT-1":     "tray lt-1",
		"":              "",
	}
	for input, want := range cases {
		if got := FoldSearchText(input); got != want {
			t.Fatalf("FoldSearchText(%q) want %q got %q", input, want, got)
		}
	}
}

func TestMigrateBackfillsSearchColumns(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:search_backfill?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	page := Page{Slug: "plity", Type: PageTypeCategory, Name: "Плиты"}
	if err := db.Create(&page).Error; err != nil {
		t.Fatalf("create page failed: %v", err)
	}
	category := Category{Name: "Плиты", PageID: page.ID}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if category.SearchName != "плиты" {
		t.Fatalf("hook should fill category search name, got %q", category.SearchName)
	}
	product := Product{Name: "Плита ПК-60", CategoryID: category.ID, PageID: page.ID}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.SearchName != "плита пк-60" {
		t.Fatalf("hook should fill search name, got %q", product.SearchName)
	}
	option := Option{ProductID: product.ID, Mark: "ПК60.15-8"}
	if err := db.Create(&option).Error; err != nil {
		t.Fatalf("create option failed: %v", err)
	}

	if err := db.Table("products").Where("id = ?", product.ID).UpdateColumn("search_name", "").Error; err != nil {
		t.Fatalf("clear search name failed: %v", err)
	}
	if err := db.Table("options").Where("id = ?", option.ID).UpdateColumn("search_mark", "").Error; err != nil {
		t.Fatalf("clear search mark failed: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	var searchName, searchMark string
	if err := db.Table("products").Select("search_name").Where("id = ?", product.ID).Scan(&searchName).Error; err != nil {
		t.Fatalf("load search name failed: %v", err)
	}
	if err := db.Table("options").Select("search_mark").Where("id = ?", option.ID).Scan(&searchMark).Error; err != nil {
		t.Fatalf("load search mark failed: %v", err)
	}
	if searchName != "плита пк-60" || searchMark != "пк60.15-8" {
		t.Fatalf("backfill mismatch: %q %q", searchName, searchMark)
	}
}
