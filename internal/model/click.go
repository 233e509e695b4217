package model

import (
	"time"
)

// ClickEvent 访问记录，只追加不修改
// 对外序列化时只暴露 id、createdAt、ctaClick，访客 IP 和 UA 仅在服务端保留
type ClickEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	LinkID    uint      `gorm:"not null;index" json:"-"`
	ViewerIP  string    `gorm:"size:45" json:"-"`
	UserAgent string    `gorm:"type:text" json:"-"`
	CtaClick  bool      `gorm:"default:false" json:"ctaClick"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ClickEvent) TableName() string {
	return "click_events"
}
