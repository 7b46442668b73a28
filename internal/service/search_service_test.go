package service

import (
	"testing"

	"github.com/stroyprombeton/internal/seed"
)

func TestSearchRanksPrefixMatchFirst(t *testing.T) {
	db := setupServiceDB(t)
	b := seed.NewBuilder(db)
	root := b.Category("Beams", nil, true)
	cross := b.Product("Alpha beam", root, true)
	beam := b.Product("Beam", root, true)
	hidden := b.Product("Beam hidden", root, false)
	b.Option(cross, "AB-1", "10")
	b.Option(beam, "B-1", "10")
	b.Option(hidden, "BH-1", "10")
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	services := newTestServices(db)

	result, err := services.search.Search("beam")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.TotalOptions != 2 || len(result.Options) != 2 {
		t.Fatalf("expected two active options, got %d", result.TotalOptions)
	}
	if result.Options[0].ProductID != beam.ID {
		t.Fatalf("expected prefix match ranked first, got product %d", result.Options[0].ProductID)
	}
	if len(result.Categories) != 1 || result.Categories[0].Page != nil {
		t.Fatalf("expected one category without page, got %+v", result.Categories)
	}

	empty, err := services.search.Search("   ")
	if err != nil {
		t.Fatalf("blank search failed: %v", err)
	}
	if len(empty.Options) != 0 || len(empty.Categories) != 0 {
		t.Fatalf("blank term must return nothing")
	}
}

func TestAutocompleteOrdersByKind(t *testing.T) {
	db := setupServiceDB(t)
	b := seed.NewBuilder(db)
	root := b.Category("Rings", nil, true)
	ring := b.Product("Ring KS", root, true)
	b.Option(ring, "RING-10", "10")
	b.Option(ring, "RING-20", "10")
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	services := newTestServices(db)

	items, err := services.search.Autocomplete("ring")
	if err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected category, product and two options, got %+v", items)
	}
	kinds := []string{AutocompleteTypeCategory, AutocompleteTypeProduct, AutocompleteTypeOption, AutocompleteTypeOption}
	for i, kind := range kinds {
		if items[i].Type != kind {
			t.Fatalf("item %d: expected %s, got %s", i, kind, items[i].Type)
		}
	}
	if items[2].Mark != "RING-10" || items[3].Mark != "RING-20" {
		t.Fatalf("expected options ordered by mark, got %+v", items[2:])
	}
}

func TestSearchMatchesCyrillicRegardlessOfCase(t *testing.T) {
	db := setupServiceDB(t)
	b := seed.NewBuilder(db)
	root := b.Category("Плиты перекрытия", nil, true)
	slab := b.Product("Плита ПК-60", root, true)
	road := b.Product("Дорожная плита ПД", root, true)
	b.Option(slab, "ПК60.15-8", "10")
	b.Option(road, "ПД-2", "10")
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	services := newTestServices(db)

	for _, term := range []string{"Плит", "плит", "ПЛИТ"} {
		result, err := services.search.Search(term)
		if err != nil {
			t.Fatalf("search %q failed: %v", term, err)
		}
		if result.TotalOptions != 2 || len(result.Categories) != 1 {
			t.Fatalf("search %q want 2 options and 1 category, got %d and %d", term, result.TotalOptions, len(result.Categories))
		}
		if result.Options[0].ProductID != slab.ID {
			t.Fatalf("search %q should rank the name prefix match first, got product %d", term, result.Options[0].ProductID)
		}
	}

	items, err := services.search.Autocomplete("пк60")
	if err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if len(items) != 1 || items[0].Type != AutocompleteTypeOption || items[0].Mark != "ПК60.15-8" {
		t.Fatalf("expected mark completion, got %+v", items)
	}
}
