package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/stroyprombeton/internal/models"
)

// URL 与标题中的标签分隔符
const (
	TagsOrDelimiter    = "-or-"
	TagsAndDelimiter   = "-and-"
	TitleOrDelimiter   = " или "
	TitleAndDelimiter  = " и "
	ungroupedPosition  = math.MaxInt32
	ungroupedGroupName = ""
)

// TagGroupView 分组后的标签。标签数超过展示上限时折叠，只给出数值最小与最大的标签。
type TagGroupView struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	Position  int          `json:"position"`
	Tags      []models.Tag `json:"tags"`
	Collapsed bool         `json:"collapsed"`
	Min       *models.Tag  `json:"min,omitempty"`
	Max       *models.Tag  `json:"max,omitempty"`
}

type groupKey struct {
	id       uint
	name     string
	position int
}

func keyOf(tag models.Tag) groupKey {
	if tag.GroupID == nil {
		return groupKey{position: ungroupedPosition, name: ungroupedGroupName}
	}
	key := groupKey{id: *tag.GroupID}
	if tag.Group != nil {
		key.name = tag.Group.Name
		key.position = tag.Group.Position
	}
	return key
}

func lessGroup(a, b groupKey) bool {
	if a.position != b.position {
		return a.position < b.position
	}
	if a.name != b.name {
		return a.name < b.name
	}
	return a.id < b.id
}

// SortTags 返回排序后的副本：先按标签组，再按字母数字顺序
func SortTags(tags []models.Tag) []models.Tag {
	sorted := make([]models.Tag, len(tags))
	copy(sorted, tags)
	sort.SliceStable(sorted, func(i, j int) bool {
		gi, gj := keyOf(sorted[i]), keyOf(sorted[j])
		if gi != gj {
			return lessGroup(gi, gj)
		}
		if c := CompareAlphanumeric(sorted[i].Name, sorted[j].Name); c != 0 {
			return c < 0
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// GroupTags 按标签组聚合并排序，重复标签只保留一个
func GroupTags(tags []models.Tag, uiLimit int) []TagGroupView {
	groups := make([]TagGroupView, 0)
	index := map[groupKey]int{}
	seen := map[uint]bool{}
	for _, tag := range SortTags(tags) {
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		key := keyOf(tag)
		pos, ok := index[key]
		if !ok {
			groups = append(groups, TagGroupView{ID: key.id, Name: key.name, Position: key.position})
			pos = len(groups) - 1
			index[key] = pos
		}
		tag.Group = nil
		groups[pos].Tags = append(groups[pos].Tags, tag)
	}
	for i := range groups {
		if uiLimit > 0 && len(groups[i].Tags) > uiLimit {
			groups[i].Collapsed = true
			groups[i].Min, groups[i].Max = numericBounds(groups[i].Tags)
		}
	}
	return groups
}

func numericBounds(tags []models.Tag) (*models.Tag, *models.Tag) {
	var min, max *models.Tag
	var minValue, maxValue float64
	for i := range tags {
		value, ok := NumericValue(tags[i].Name)
		if !ok {
			continue
		}
		if min == nil || value < minValue {
			min, minValue = &tags[i], value
		}
		if max == nil || value > maxValue {
			max, maxValue = &tags[i], value
		}
	}
	if min == nil && len(tags) > 0 {
		min, max = &tags[0], &tags[len(tags)-1]
	}
	return min, max
}

// TagTitle 生成标签标题：组内用 " или " 连接，组之间用 " и " 连接
func TagTitle(tags []models.Tag) string {
	groups := GroupTags(tags, 0)
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		names := make([]string, 0, len(group.Tags))
		for _, tag := range group.Tags {
			names = append(names, tag.Name)
		}
		parts = append(parts, strings.Join(names, TitleOrDelimiter))
	}
	return strings.Join(parts, TitleAndDelimiter)
}

// SerializeTags 生成 URL 中的标签段，ParseTagSlugs 的逆操作
func SerializeTags(tags []models.Tag) string {
	groups := GroupTags(tags, 0)
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		slugs := make([]string, 0, len(group.Tags))
		for _, tag := range group.Tags {
			slugs = append(slugs, tag.Slug)
		}
		parts = append(parts, strings.Join(slugs, TagsOrDelimiter))
	}
	return strings.Join(parts, TagsAndDelimiter)
}

// ParseTagSlugs 解析 URL 中的标签段，去重并保持出现顺序
func ParseTagSlugs(raw string) []string {
	raw = strings.TrimSpace(raw)
	slugs := make([]string, 0)
	if raw == "" {
		return slugs
	}
	seen := map[string]bool{}
	for _, group := range strings.Split(raw, TagsAndDelimiter) {
		for _, slug := range strings.Split(group, TagsOrDelimiter) {
			slug = strings.TrimSpace(slug)
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true
			slugs = append(slugs, slug)
		}
	}
	return slugs
}

// TagIDs 提取标签 ID
func TagIDs(tags []models.Tag) []uint {
	ids := make([]uint, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids
}
