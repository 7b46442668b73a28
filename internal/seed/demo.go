package seed

import (
	"fmt"

	"github.com/stroyprombeton/internal/models"

	"gorm.io/gorm"
)

// DemoSummary 演示数据统计
type DemoSummary struct {
	Categories int
	Products   int
	Options    int
	Tags       int
}

// Demo 写入一份演示目录：两棵分类树、按长度与荷载分组的标签、系列与分区
func Demo(db *gorm.DB) (DemoSummary, error) {
	b := NewBuilder(db)
	summary := DemoSummary{}

	lengthGroup := b.TagGroup("Длина, мм", 1)
	loadGroup := b.TagGroup("Нагрузка, т", 2)
	lengths := []*models.Tag{
		b.Tag(lengthGroup, "1000 мм", "1000-mm"),
		b.Tag(lengthGroup, "1500 мм", "1500-mm"),
		b.Tag(lengthGroup, "3000 мм", "3000-mm"),
		b.Tag(lengthGroup, "6000 мм", "6000-mm"),
	}
	loads := []*models.Tag{
		b.Tag(loadGroup, "0,8 т", "0-8-t"),
		b.Tag(loadGroup, "2,5 т", "2-5-t"),
		b.Tag(loadGroup, "10 т", "10-t"),
	}
	summary.Tags = len(lengths) + len(loads)

	trays := b.Category("Лотки", nil, true)
	railTrays := b.Category("Лотки железнодорожные", trays, true)
	roadTrays := b.Category("Лотки дорожные", trays, true)
	plates := b.Category("Плиты", nil, true)
	roadPlates := b.Category("Плиты дорожные", plates, true)
	archive := b.Category("Архив", nil, false)
	summary.Categories = 6

	featured := make([]*models.Product, 0)
	for i, category := range []*models.Category{railTrays, roadTrays, roadPlates} {
		for j := 1; j <= 3; j++ {
			product := b.Product(fmt.Sprintf("%s %d", category.Name, j), category, true)
			summary.Products++
			if j == 1 {
				featured = append(featured, product)
			}
			for k, length := range lengths {
				price := fmt.Sprintf("%d.00", 1500+(i*1000)+(j*100)+(k*250))
				b.Option(product, fmt.Sprintf("Л%d.%d-%d", i+1, j, k+1), price, length, loads[(j+k)%len(loads)])
				summary.Options++
			}
		}
	}
	hidden := b.Product("Снятое с производства изделие", archive, false)
	b.Option(hidden, "СП-1", "0", lengths[0])
	summary.Products++
	summary.Options++

	var seriesOptions []models.Option
	if b.Err() == nil {
		if err := db.Where("mark LIKE ?", "Л1.%").Find(&seriesOptions).Error; err != nil {
			return summary, err
		}
	}
	pointers := make([]*models.Option, 0, len(seriesOptions))
	for i := range seriesOptions {
		pointers = append(pointers, &seriesOptions[i])
	}
	b.Series("Серия 3.006.1-2.87", "3-006-1-2-87", pointers...)
	b.Section("Изделия для железной дороги", "railway", featured...)

	if err := b.Err(); err != nil {
		return summary, err
	}
	return summary, models.EnsureDefaultPageTemplates(db)
}
