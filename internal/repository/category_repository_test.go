package repository

import (
	"sort"
	"testing"

	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/seed"
)

func sortedIDs(ids []uint) []uint {
	out := append([]uint(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestCategoryDescendantIDs(t *testing.T) {
	db := setupCatalogDB(t)
	b := seed.NewBuilder(db)
	root := b.Category("Лотки", nil, true)
	child := b.Category("Лотки дорожные", root, true)
	grandchild := b.Category("Лотки дорожные малые", child, true)
	sibling := b.Category("Лотки железнодорожные", root, true)
	otherRoot := b.Category("Плиты", nil, true)
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	repo := NewCategoryRepository(db)

	ids, err := repo.DescendantIDs(child.ID)
	if err != nil {
		t.Fatalf("descendants failed: %v", err)
	}
	got := sortedIDs(ids)
	if len(got) != 2 || got[0] != child.ID || got[1] != grandchild.ID {
		t.Fatalf("expected child and grandchild, got %v", got)
	}
	for _, id := range got {
		if id == root.ID || id == sibling.ID || id == otherRoot.ID {
			t.Fatalf("descendants must not include ancestors or siblings, got %v", got)
		}
	}

	rootIDs, err := repo.DescendantIDs(root.ID)
	if err != nil {
		t.Fatalf("root descendants failed: %v", err)
	}
	if len(rootIDs) != 4 {
		t.Fatalf("expected root subtree of 4, got %v", rootIDs)
	}

	leaf, err := repo.DescendantIDs(grandchild.ID)
	if err != nil {
		t.Fatalf("leaf descendants failed: %v", err)
	}
	if len(leaf) != 1 || leaf[0] != grandchild.ID {
		t.Fatalf("leaf should only contain itself, got %v", leaf)
	}

	missing, err := repo.DescendantIDs(999999)
	if err != nil {
		t.Fatalf("missing descendants failed: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("missing category should have no descendants, got %v", missing)
	}
}

func TestCategoryDescendantIDsTerminatesOnCycle(t *testing.T) {
	db := setupCatalogDB(t)
	b := seed.NewBuilder(db)
	a := b.Category("A", nil, true)
	c := b.Category("B", a, true)
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := db.Model(&models.Category{}).Where("id = ?", a.ID).Update("parent_id", c.ID).Error; err != nil {
		t.Fatalf("create cycle failed: %v", err)
	}

	ids, err := NewCategoryRepository(db).DescendantIDs(a.ID)
	if err != nil {
		t.Fatalf("descendants failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected each node once, got %v", ids)
	}
}

func TestCategoryGetActiveByID(t *testing.T) {
	db := setupCatalogDB(t)
	b := seed.NewBuilder(db)
	active := b.Category("Плиты", nil, true)
	inactive := b.Category("Архив", nil, false)
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	repo := NewCategoryRepository(db)

	got, err := repo.GetActiveByID(active.ID)
	if err != nil || got == nil {
		t.Fatalf("expected active category, got %v err=%v", got, err)
	}
	if got.Page == nil || got.Page.Name != "Плиты" {
		t.Fatalf("expected page preloaded, got %+v", got.Page)
	}
	hidden, err := repo.GetActiveByID(inactive.ID)
	if err != nil {
		t.Fatalf("get inactive failed: %v", err)
	}
	if hidden != nil {
		t.Fatalf("inactive category should not be returned")
	}
	raw, err := repo.GetByID(inactive.ID)
	if err != nil || raw == nil {
		t.Fatalf("GetByID should ignore page status, got %v err=%v", raw, err)
	}
}

func TestCategorySearchActive(t *testing.T) {
	db := setupCatalogDB(t)
	b := seed.NewBuilder(db)
	b.Category("Road plates", nil, true)
	b.Category("Plates", nil, true)
	b.Category("Plates archive", nil, false)
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	found, err := NewCategoryRepository(db).SearchActive("plates", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected two active matches, got %d", len(found))
	}
	if found[0].Name != "Plates" {
		t.Fatalf("prefix match should come first, got %s", found[0].Name)
	}
}

func TestCategorySearchActiveFoldsCyrillicCase(t *testing.T) {
	db := setupCatalogDB(t)
	b := seed.NewBuilder(db)
	b.Category("Дорожные плиты", nil, true)
	b.Category("Плиты перекрытия", nil, true)
	b.Category("Лотки", nil, true)
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	found, err := NewCategoryRepository(db).SearchActive("ПЛИТЫ", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected two matches regardless of case, got %d", len(found))
	}
	if found[0].Name != "Плиты перекрытия" {
		t.Fatalf("prefix match should come first, got %s", found[0].Name)
	}
}
