package models

import (
	"time"

	"gorm.io/gorm"
)

// Option 商品规格（可售单元）
type Option struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                   // 主键
	ProductID  uint           `gorm:"index;not null" json:"product_id"`                       // 商品
	SeriesID   *uint          `gorm:"index" json:"series_id,omitempty"`                       // 系列
	Code       *int           `gorm:"index" json:"code,omitempty"`                            // 内部编码
	Mark       string         `gorm:"type:varchar(255);index" json:"mark"`                    // 型号
	SearchMark string         `gorm:"type:varchar(255);index" json:"-"`                       // 小写型号，用于搜索
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`     // 价格
	InStock    int            `gorm:"not null;default:0;check:in_stock >= 0" json:"in_stock"` // 库存
	IsPopular  bool           `gorm:"default:false;index" json:"is_popular"`                  // 是否热门
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                             // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Series  *Series  `gorm:"foreignKey:SeriesID" json:"series,omitempty"`
	Tags    []Tag    `gorm:"many2many:option_tags;" json:"tags,omitempty"`
}

// TableName 指定表名
func (Option) TableName() string {
	return "options"
}
