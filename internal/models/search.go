package models

import (
	"strings"

	"gorm.io/gorm"
)

const searchBackfillBatch = 500

// FoldSearchText 搜索列与搜索词统一折叠为小写。
// sqlite 的 LIKE 只折叠 ASCII，西里尔字母需要在写入时预先转换。
func FoldSearchText(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// BeforeSave 同步商品搜索列
func (p *Product) BeforeSave(_ *gorm.DB) error {
	p.SearchName = FoldSearchText(p.Name)
	return nil
}

// BeforeSave 同步分类搜索列
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.SearchName = FoldSearchText(c.Name)
	return nil
}

// BeforeSave 同步规格搜索列
func (o *Option) BeforeSave(_ *gorm.DB) error {
	o.SearchMark = FoldSearchText(o.Mark)
	return nil
}

type searchBackfill struct {
	table  string
	source string
	target string
}

var searchBackfills = []searchBackfill{
	{table: "products", source: "name", target: "search_name"},
	{table: "categories", source: "name", target: "search_name"},
	{table: "options", source: "mark", target: "search_mark"},
}

// backfillSearchColumns 为迁移前写入的数据补齐搜索列
func backfillSearchColumns(db *gorm.DB) error {
	for _, item := range searchBackfills {
		if err := backfillSearchColumn(db, item); err != nil {
			return err
		}
	}
	return nil
}

func backfillSearchColumn(db *gorm.DB, item searchBackfill) error {
	type row struct {
		ID     uint
		Source string
	}
	var lastID uint
	for {
		rows := make([]row, 0, searchBackfillBatch)
		err := db.Table(item.table).
			Select("id, "+item.source+" AS source").
			Where("id > ?", lastID).
			Where("("+item.target+" IS NULL OR "+item.target+" = '') AND "+item.source+" <> ''").
			Order("id ASC").
			Limit(searchBackfillBatch).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, r := range rows {
			if err := db.Table(item.table).Where("id = ?", r.ID).UpdateColumn(item.target, FoldSearchText(r.Source)).Error; err != nil {
				return err
			}
		}
		if len(rows) < searchBackfillBatch {
			return nil
		}
		lastID = rows[len(rows)-1].ID
	}
}
