package models

import (
	"time"

	"gorm.io/gorm"
)

// 订单状态
const (
	OrderStatusNew       = "new"
	OrderStatusNotified  = "notified"
	OrderStatusProcessed = "processed"
)

// Order 订单表（询价单）
type Order struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderNo    string         `gorm:"uniqueIndex;not null" json:"order_no"`                     // 订单编号
	Name       string         `gorm:"type:varchar(255)" json:"name"`                            // 联系人
	Email      string         `gorm:"type:varchar(255);index;not null" json:"email"`            // 邮箱
	Phone      string         `gorm:"type:varchar(64);not null" json:"phone"`                   // 电话
	Company    string         `gorm:"type:varchar(255)" json:"company"`                         // 公司
	Address    string         `gorm:"type:text" json:"address"`                                 // 地址
	Comment    string         `gorm:"type:text" json:"comment"`                                 // 备注
	Status     string         `gorm:"index;not null" json:"status"`                             // 订单状态
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 总价
	ClientIP   string         `gorm:"type:varchar(64)" json:"-"`                                // 下单客户端IP
	NotifiedAt *time.Time     `gorm:"index" json:"notified_at,omitempty"`                       // 通知时间
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Positions []OrderPosition `gorm:"foreignKey:OrderID" json:"positions,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderPosition 订单项，保存下单时的规格快照
type OrderPosition struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OrderID     uint      `gorm:"index;not null" json:"order_id"`
	OptionID    uint      `gorm:"index;not null" json:"option_id"`
	Code        *int      `json:"code,omitempty"`
	Mark        string    `gorm:"type:varchar(255)" json:"mark"`
	ProductName string    `gorm:"type:varchar(255)" json:"product_name"`
	CatalogName string    `gorm:"type:varchar(255)" json:"catalog_name"`
	Price       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Total       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 指定表名
func (OrderPosition) TableName() string {
	return "order_positions"
}
