package catalog

import (
	"testing"

	"github.com/stroyprombeton/internal/models"
)

func uintPtr(v uint) *uint {
	return &v
}

func sampleTags() []models.Tag {
	length := &models.TagGroup{ID: 1, Name: "Длина", Position: 1}
	load := &models.TagGroup{ID: 2, Name: "Нагрузка", Position: 2}
	return []models.Tag{
		{ID: 5, GroupID: uintPtr(2), Group: load, Name: "10 т", Slug: "10-t"},
		{ID: 1, GroupID: uintPtr(1), Group: length, Name: "3000 мм", Slug: "3000-mm"},
		{ID: 2, GroupID: uintPtr(1), Group: length, Name: "1000 мм", Slug: "1000-mm"},
		{ID: 4, GroupID: uintPtr(2), Group: load, Name: "0,8 т", Slug: "0-8-t"},
		{ID: 3, GroupID: uintPtr(1), Group: length, Name: "1500 мм", Slug: "1500-mm"},
		{ID: 2, GroupID: uintPtr(1), Group: length, Name: "1000 мм", Slug: "1000-mm"},
	}
}

func TestGroupTagsOrdersGroupsAndTags(t *testing.T) {
	groups := GroupTags(sampleTags(), 10)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Длина" || groups[1].Name != "Нагрузка" {
		t.Fatalf("groups should follow position, got %s, %s", groups[0].Name, groups[1].Name)
	}
	lengths := groups[0].Tags
	if len(lengths) != 3 {
		t.Fatalf("duplicate tags should collapse, got %d", len(lengths))
	}
	if lengths[0].Name != "1000 мм" || lengths[1].Name != "1500 мм" || lengths[2].Name != "3000 мм" {
		t.Fatalf("tags should be sorted numerically, got %+v", lengths)
	}
	if groups[0].Collapsed || groups[0].Min != nil {
		t.Fatalf("small group should not collapse")
	}
}

func TestGroupTagsCollapsesLargeGroups(t *testing.T) {
	groups := GroupTags(sampleTags(), 2)
	lengths := groups[0]
	if !lengths.Collapsed {
		t.Fatalf("group over the limit should collapse")
	}
	if lengths.Min == nil || lengths.Min.Name != "1000 мм" || lengths.Max == nil || lengths.Max.Name != "3000 мм" {
		t.Fatalf("unexpected bounds: %+v %+v", lengths.Min, lengths.Max)
	}
	if groups[1].Collapsed {
		t.Fatalf("group within the limit should stay expanded")
	}
}

func TestTagTitleAndSerialize(t *testing.T) {
	tags := sampleTags()
	title := TagTitle(tags)
	want := "1000 мм или 1500 мм или 3000 мм и 0,8 т или 10 т"
	if title != want {
		t.Fatalf("title mismatch:\n got %s\nwant %s", title, want)
	}
	if TagTitle(nil) != "" {
		t.Fatalf("empty selection should have empty title")
	}

	raw := SerializeTags(tags)
	if raw != "1000-mm-or-1500-mm-or-3000-mm-and-0-8-t-or-10-t" {
		t.Fatalf("unexpected serialized tags: %s", raw)
	}
	slugs := ParseTagSlugs(raw)
	if len(slugs) != 5 || slugs[0] != "1000-mm" || slugs[4] != "10-t" {
		t.Fatalf("parse should invert serialize, got %v", slugs)
	}
}

func TestParseTagSlugsDeduplicates(t *testing.T) {
	slugs := ParseTagSlugs(" 1000-mm-or-1000-mm-and--and-10-t ")
	if len(slugs) != 2 || slugs[0] != "1000-mm" || slugs[1] != "10-t" {
		t.Fatalf("unexpected slugs: %v", slugs)
	}
	if len(ParseTagSlugs("")) != 0 {
		t.Fatalf("empty input should yield no slugs")
	}
}
