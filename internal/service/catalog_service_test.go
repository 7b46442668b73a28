package service

import (
	"errors"
	"testing"

	"github.com/stroyprombeton/internal/constants"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/seed"
)

type catalogFixture struct {
	services testServices
	root     *models.Category
	child    *models.Category
	sibling  *models.Category
	empty    *models.Category
	short    *models.Tag
	long     *models.Tag
	unused   *models.Tag
	series   *models.Series
	section  *models.Section
}

// 根分类 Лотки 下 60 个规格：20 个 1000 мм，10 个两者都有，10 个 3000 мм，20 个无标签
func newCatalogFixture(t *testing.T) catalogFixture {
	t.Helper()
	db := setupServiceDB(t)
	b := seed.NewBuilder(db)
	group := b.TagGroup("Длина", 1)
	short := b.Tag(group, "1000 мм", "1000-mm")
	long := b.Tag(group, "3000 мм", "3000-mm")
	unused := b.Tag(group, "9000 мм", "9000-mm")

	root := b.Category("Лотки", nil, true)
	child := b.Category("Лотки малые", root, true)
	sibling := b.Category("Плиты", nil, true)
	empty := b.Category("Пустая", nil, true)

	tray := b.Product("Лоток", root, true)
	smallTray := b.Product("Лоток малый", child, true)
	plate := b.Product("Плита", sibling, true)
	hidden := b.Product("Лоток снятый", root, false)

	b.Options(tray, 20, "100", short)
	both := b.Options(smallTray, 10, "150", short, long)
	b.Options(smallTray, 10, "200", long)
	b.Options(tray, 20, "0")
	plates := b.Options(plate, 5, "300", unused)
	b.Options(hidden, 3, "100", short)

	series := b.Series("Серия 3.006", "series-3-006", append(both, plates...)...)
	section := b.Section("Дорожное строительство", "road", tray, plate, hidden)
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return catalogFixture{
		services: newTestServices(db),
		root:     root,
		child:    child,
		sibling:  sibling,
		empty:    empty,
		short:    short,
		long:     long,
		unused:   unused,
		series:   series,
		section:  section,
	}
}

func TestCategoryPageFirstPageOnDesktop(t *testing.T) {
	f := newCatalogFixture(t)
	ctx, err := f.services.catalog.CategoryPage(CategoryPageRequest{CategoryID: f.root.ID, Page: 1, DeviceClass: constants.DeviceClassDesktop})
	if err != nil {
		t.Fatalf("category page failed: %v", err)
	}
	if len(ctx.Products) != 48 {
		t.Fatalf("expected 48 products, got %d", len(ctx.Products))
	}
	if ctx.TotalProducts != 60 {
		t.Fatalf("expected total 60, got %d", ctx.TotalProducts)
	}
	if !ctx.Pagination.HasNext || ctx.Pagination.HasPrevious {
		t.Fatalf("unexpected pagination flags: %+v", ctx.Pagination)
	}
	if ctx.Page.H1 != "Лотки" {
		t.Fatalf("expected page h1 from category page, got %q", ctx.Page.H1)
	}
	if len(ctx.Breadcrumbs) != 1 || ctx.Breadcrumbs[0].ID != f.root.ID {
		t.Fatalf("unexpected breadcrumbs: %+v", ctx.Breadcrumbs)
	}
	for _, option := range ctx.Products {
		if option.Product == nil || option.Product.CategoryID == f.sibling.ID {
			t.Fatalf("option %d does not belong to the category tree", option.ID)
		}
	}
}

func TestCategoryPageMobileUsesSmallerPage(t *testing.T) {
	f := newCatalogFixture(t)
	ctx, err := f.services.catalog.CategoryPage(CategoryPageRequest{CategoryID: f.root.ID, Page: 1, DeviceClass: constants.DeviceClassMobile})
	if err != nil {
		t.Fatalf("category page failed: %v", err)
	}
	if len(ctx.Products) != 12 || ctx.Pagination.TotalPages != 5 {
		t.Fatalf("expected 12 products on 5 pages, got %d on %d", len(ctx.Products), ctx.Pagination.TotalPages)
	}
}

func TestCategoryPageRoundTripCoversEveryOptionOnce(t *testing.T) {
	f := newCatalogFixture(t)
	seen := map[uint]int{}
	for number := 1; number <= 5; number++ {
		ctx, err := f.services.catalog.CategoryPage(CategoryPageRequest{CategoryID: f.root.ID, Page: number, PerPage: 12})
		if err != nil {
			t.Fatalf("page %d failed: %v", number, err)
		}
		for id, count := range optionIDSet(ctx.Products) {
			seen[id] += count
		}
	}
	if len(seen) != 60 {
		t.Fatalf("expected 60 distinct options across pages, got %d", len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("option %d appeared %d times", id, count)
		}
	}
}

func TestCategoryPageOutOfRange(t *testing.T) {
	f := newCatalogFixture(t)
	cases := []CategoryPageRequest{
		{CategoryID: f.root.ID, Page: 3},
		{CategoryID: f.root.ID, Page: 0},
		{CategoryID: f.root.ID, Page: 1, PerPage: 30},
	}
	for _, req := range cases {
		_, err := f.services.catalog.CategoryPage(req)
		if !errors.Is(err, ErrPageOutOfRange) || !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected page out of range for %+v, got %v", req, err)
		}
	}
}

func TestCategoryPageEmptyAndMissing(t *testing.T) {
	f := newCatalogFixture(t)
	if _, err := f.services.catalog.CategoryPage(CategoryPageRequest{CategoryID: f.empty.ID, Page: 1}); !errors.Is(err, ErrCategoryEmpty) {
		t.Fatalf("expected empty category error, got %v", err)
	}
	if _, err := f.services.catalog.CategoryPage(CategoryPageRequest{CategoryID: 9999, Page: 1}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}
}

func TestCategoryPageTagsUnion(t *testing.T) {
	f := newCatalogFixture(t)
	ctx, err := f.services.catalog.CategoryPage(CategoryPageRequest{CategoryID: f.root.ID, Tags: "1000-mm-or-3000-mm", Page: 1})
	if err != nil {
		t.Fatalf("category page failed: %v", err)
	}
	if ctx.TotalProducts != 40 || len(ctx.Products) != 40 {
		t.Fatalf("expected union of 40 options, got total %d page %d", ctx.TotalProducts, len(ctx.Products))
	}
	for id, count := range optionIDSet(ctx.Products) {
		if count != 1 {
			t.Fatalf("option %d listed %d times", id, count)
		}
	}
	if ctx.SelectedTags.Title != "1000 мм или 3000 мм" {
		t.Fatalf("unexpected tags title %q", ctx.SelectedTags.Title)
	}
	if ctx.SelectedTags.Raw != "1000-mm-or-3000-mm" {
		t.Fatalf("unexpected serialized tags %q", ctx.SelectedTags.Raw)
	}
	if len(ctx.GroupedTags) != 1 || len(ctx.GroupedTags[0].Tags) != 2 {
		t.Fatalf("expected one group with two tags, got %+v", ctx.GroupedTags)
	}
}

func TestCategoryPageFiltersByDescendantTag(t *testing.T) {
	f := newCatalogFixture(t)
	ctx, err := f.services.catalog.CategoryPage(CategoryPageRequest{CategoryID: f.child.ID, Tags: "3000-mm", Page: 1})
	if err != nil {
		t.Fatalf("category page failed: %v", err)
	}
	if ctx.TotalProducts != 20 {
		t.Fatalf("expected 20 long options in child, got %d", ctx.TotalProducts)
	}
	if len(ctx.Breadcrumbs) != 2 || ctx.Breadcrumbs[0].ID != f.root.ID || ctx.Breadcrumbs[1].ID != f.child.ID {
		t.Fatalf("unexpected breadcrumbs: %+v", ctx.Breadcrumbs)
	}
}

func TestCategoryPageUnknownOrForeignTags(t *testing.T) {
	f := newCatalogFixture(t)
	if _, err := f.services.catalog.CategoryPage(CategoryPageRequest{CategoryID: f.root.ID, Tags: "missing", Page: 1}); !errors.Is(err, ErrTagsNotFound) {
		t.Fatalf("expected tags not found, got %v", err)
	}
	if _, err := f.services.catalog.CategoryPage(CategoryPageRequest{CategoryID: f.root.ID, Tags: "9000-mm", Page: 1}); !errors.Is(err, ErrCategoryEmpty) {
		t.Fatalf("expected empty result for tag of another category, got %v", err)
	}
}

func TestFetchOptionsLoadMore(t *testing.T) {
	f := newCatalogFixture(t)
	id := uintString(f.root.ID)

	first, err := f.services.catalog.FetchOptions(FetchOptionsRequest{CategoryID: id, Offset: "48", Limit: "48"})
	if err != nil {
		t.Fatalf("fetch options failed: %v", err)
	}
	if len(first.Products) != 12 || first.TotalProducts != 60 || first.HasMore {
		t.Fatalf("unexpected load more result: %d products total %d has_more %v", len(first.Products), first.TotalProducts, first.HasMore)
	}

	tail, err := f.services.catalog.FetchOptions(FetchOptionsRequest{CategoryID: id, Offset: "60", Limit: "48"})
	if err != nil {
		t.Fatalf("fetch past the end failed: %v", err)
	}
	if len(tail.Products) != 0 || tail.Products == nil {
		t.Fatalf("expected empty non-nil slice, got %+v", tail.Products)
	}

	none, err := f.services.catalog.FetchOptions(FetchOptionsRequest{CategoryID: id, Offset: "0", Limit: "0"})
	if err != nil {
		t.Fatalf("fetch zero limit failed: %v", err)
	}
	if len(none.Products) != 0 || !none.HasMore {
		t.Fatalf("expected empty slice with more remaining, got %+v", none)
	}
}

func TestFetchOptionsCapsLimit(t *testing.T) {
	f := newCatalogFixture(t)
	id := uintString(f.root.ID)

	huge, err := f.services.catalog.FetchOptions(FetchOptionsRequest{CategoryID: id, Offset: "0", Limit: "100000000"})
	if err != nil {
		t.Fatalf("fetch options failed: %v", err)
	}
	if huge.Limit != 48 || len(huge.Products) != 48 || !huge.HasMore {
		t.Fatalf("expected limit capped at the largest step, got limit %d with %d products", huge.Limit, len(huge.Products))
	}
}

func TestFetchOptionsDefaultsAndFilter(t *testing.T) {
	f := newCatalogFixture(t)
	id := uintString(f.root.ID)

	defaults, err := f.services.catalog.FetchOptions(FetchOptionsRequest{CategoryID: id, Offset: "bad", Limit: ""})
	if err != nil {
		t.Fatalf("fetch options failed: %v", err)
	}
	if defaults.Offset != 0 || defaults.Limit != 48 || len(defaults.Products) != 48 || !defaults.HasMore {
		t.Fatalf("unexpected defaults: offset %d limit %d products %d", defaults.Offset, defaults.Limit, len(defaults.Products))
	}

	filtered, err := f.services.catalog.FetchOptions(FetchOptionsRequest{CategoryID: id, Term: "Лоток малый", Filtered: true, Limit: "100"})
	if err != nil {
		t.Fatalf("filtered fetch failed: %v", err)
	}
	if filtered.TotalProducts != 20 {
		t.Fatalf("expected 20 options of the small tray, got %d", filtered.TotalProducts)
	}

	ignored, err := f.services.catalog.FetchOptions(FetchOptionsRequest{CategoryID: id, Term: "Лоток малый", Filtered: false, Limit: "100"})
	if err != nil {
		t.Fatalf("unfiltered fetch failed: %v", err)
	}
	if ignored.TotalProducts != 60 {
		t.Fatalf("term must be ignored without filtered flag, got %d", ignored.TotalProducts)
	}
}

func TestFetchOptionsCategoryErrors(t *testing.T) {
	f := newCatalogFixture(t)
	if _, err := f.services.catalog.FetchOptions(FetchOptionsRequest{}); !errors.Is(err, ErrCategoryIDRequired) || !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected category id required, got %v", err)
	}
	if _, err := f.services.catalog.FetchOptions(FetchOptionsRequest{CategoryID: "abc"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}
}

func TestSeriesPage(t *testing.T) {
	f := newCatalogFixture(t)
	ctx, err := f.services.catalog.SeriesPage(SeriesPageRequest{Slug: "series-3-006", Page: 1})
	if err != nil {
		t.Fatalf("series page failed: %v", err)
	}
	if ctx.TotalProducts != 15 || ctx.Series.ID != f.series.ID {
		t.Fatalf("expected 15 series options, got %d", ctx.TotalProducts)
	}

	tagged, err := f.services.catalog.SeriesPage(SeriesPageRequest{Slug: "series-3-006", Tags: "9000-mm", Page: 1})
	if err != nil {
		t.Fatalf("tagged series page failed: %v", err)
	}
	if tagged.TotalProducts != 5 {
		t.Fatalf("expected 5 plates in series, got %d", tagged.TotalProducts)
	}

	if _, err := f.services.catalog.SeriesPage(SeriesPageRequest{Slug: "missing", Page: 1}); !errors.Is(err, ErrSeriesNotFound) {
		t.Fatalf("expected series not found, got %v", err)
	}
}

func TestSectionPage(t *testing.T) {
	f := newCatalogFixture(t)
	ctx, err := f.services.catalog.SectionPage(SectionPageRequest{Slug: "road", Page: 1})
	if err != nil {
		t.Fatalf("section page failed: %v", err)
	}
	if ctx.TotalProducts != 2 || len(ctx.Products) != 2 {
		t.Fatalf("expected two active products, got %d", ctx.TotalProducts)
	}
	if _, err := f.services.catalog.SectionPage(SectionPageRequest{Slug: "road", Page: 2}); !errors.Is(err, ErrPageOutOfRange) {
		t.Fatalf("expected page out of range, got %v", err)
	}
	if _, err := f.services.catalog.SectionPage(SectionPageRequest{Slug: "nowhere", Page: 1}); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected section not found, got %v", err)
	}
}
