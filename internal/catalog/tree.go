package catalog

import (
	"sort"

	"github.com/stroyprombeton/internal/models"
)

// TreeNode 可序列化的分类树节点
type TreeNode struct {
	ID       uint       `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Position int        `json:"position"`
	Children []TreeNode `json:"children,omitempty"`
}

// Tree 内存中的分类森林
type Tree struct {
	nodes    map[uint]models.Category
	children map[uint][]uint
	roots    []uint
}

// NewTree 由分类列表构造分类树；父节点缺失的分类视为根
func NewTree(categories []models.Category) *Tree {
	tree := &Tree{
		nodes:    make(map[uint]models.Category, len(categories)),
		children: map[uint][]uint{},
	}
	for _, category := range categories {
		tree.nodes[category.ID] = category
	}
	for _, category := range categories {
		if category.ParentID != nil {
			if _, ok := tree.nodes[*category.ParentID]; ok && *category.ParentID != category.ID {
				tree.children[*category.ParentID] = append(tree.children[*category.ParentID], category.ID)
				continue
			}
		}
		tree.roots = append(tree.roots, category.ID)
	}
	tree.sortIDs(tree.roots)
	for parent := range tree.children {
		tree.sortIDs(tree.children[parent])
	}
	return tree
}

func (t *Tree) sortIDs(ids []uint) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := t.nodes[ids[i]], t.nodes[ids[j]]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

// Get 获取分类
func (t *Tree) Get(id uint) (models.Category, bool) {
	category, ok := t.nodes[id]
	return category, ok
}

// Ancestors 从根到父节点的路径，不含自身
func (t *Tree) Ancestors(id uint) []models.Category {
	path := make([]models.Category, 0)
	visited := map[uint]bool{id: true}
	current, ok := t.nodes[id]
	for ok && current.ParentID != nil {
		parentID := *current.ParentID
		if visited[parentID] {
			break
		}
		visited[parentID] = true
		current, ok = t.nodes[parentID]
		if ok {
			path = append(path, current)
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Root 分类所在的根分类
func (t *Tree) Root(id uint) (models.Category, bool) {
	if ancestors := t.Ancestors(id); len(ancestors) > 0 {
		return ancestors[0], true
	}
	return t.Get(id)
}

// Descendants 分类自身及全部后代 ID
func (t *Tree) Descendants(id uint) []uint {
	if _, ok := t.nodes[id]; !ok {
		return []uint{}
	}
	result := []uint{id}
	visited := map[uint]bool{id: true}
	for i := 0; i < len(result); i++ {
		for _, child := range t.children[result[i]] {
			if !visited[child] {
				visited[child] = true
				result = append(result, child)
			}
		}
	}
	return result
}

// Nested 生成嵌套结构；onlyActive 时跳过页面下架的分类及其子树
func (t *Tree) Nested(onlyActive bool) []TreeNode {
	return t.build(t.roots, onlyActive, map[uint]bool{})
}

func (t *Tree) build(ids []uint, onlyActive bool, visited map[uint]bool) []TreeNode {
	nodes := make([]TreeNode, 0, len(ids))
	for _, id := range ids {
		if visited[id] {
			continue
		}
		category := t.nodes[id]
		if onlyActive && !category.IsActive() {
			continue
		}
		visited[id] = true
		node := TreeNode{ID: category.ID, Name: category.Name, Position: category.Position}
		if category.Page != nil {
			node.Slug = category.Page.Slug
		}
		node.Children = t.build(t.children[id], onlyActive, visited)
		nodes = append(nodes, node)
	}
	return nodes
}
