package models

// TagGroup 标签组
type TagGroup struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Position int    `gorm:"default:0;index" json:"position"`
}

// TableName 指定表名
func (TagGroup) TableName() string {
	return "tag_groups"
}

// Tag 标签，按名称中的数值排序
type Tag struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	GroupID  *uint     `gorm:"index" json:"group_id,omitempty"`
	Name     string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug     string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Position int       `gorm:"default:0;index" json:"position"`
	Group    *TagGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
