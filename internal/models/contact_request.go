package models

import (
	"time"
)

// 联系请求类型
const (
	ContactKindBackcall = "backcall"
	ContactKindPrice    = "price"
)

// ContactRequest 客户提交的联系表单：回电请求或价目表申请
type ContactRequest struct {
	ID         uint       `gorm:"primarykey" json:"id"`                         // 主键
	Kind       string     `gorm:"type:varchar(32);index;not null" json:"kind"`  // 请求类型
	Name       string     `gorm:"type:varchar(100)" json:"name"`                // 联系人
	Phone      string     `gorm:"type:varchar(100);not null" json:"phone"`      // 电话
	Email      string     `gorm:"type:varchar(255)" json:"email,omitempty"`     // 邮箱
	Company    string     `gorm:"type:varchar(100)" json:"company,omitempty"`   // 公司
	City       string     `gorm:"type:varchar(100)" json:"city,omitempty"`      // 城市
	Activity   string     `gorm:"type:varchar(100)" json:"activity,omitempty"`  // 业务方向
	Site       string     `gorm:"type:varchar(255)" json:"site,omitempty"`      // 公司网站
	PageURL    string     `gorm:"type:varchar(1000)" json:"page_url,omitempty"` // 提交页面
	ClientIP   string     `gorm:"type:varchar(64)" json:"-"`                    // 客户端IP
	NotifiedAt *time.Time `gorm:"index" json:"notified_at,omitempty"`           // 通知时间
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt  time.Time  `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (ContactRequest) TableName() string {
	return "contact_requests"
}
