package model

import (
	"time"
)

// Link 短链接模型，每条链接归属于创建它的用户
type Link struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	UserID      uint         `gorm:"not null;index" json:"userId"`
	OriginalURL string       `gorm:"type:text;not null" json:"originalUrl"`
	ShortID     string       `gorm:"size:16;uniqueIndex;not null" json:"shortUrl"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Cta         *CtaOverlay  `gorm:"foreignKey:LinkID" json:"ctaOverlay,omitempty"`
	Clicks      []ClickEvent `gorm:"foreignKey:LinkID" json:"clicks"`
}

// TableName 指定表名
func (Link) TableName() string {
	return "links"
}

// CtaOverlay 链接的 CTA 浮层配置，与 Link 一对一，随链接删除
type CtaOverlay struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	LinkID     uint      `gorm:"not null;uniqueIndex" json:"-"`
	Message    string    `gorm:"size:100;not null" json:"message"`
	ButtonText string    `gorm:"size:30;not null" json:"buttonText"`
	ButtonURL  string    `gorm:"type:text;not null" json:"buttonUrl"`
	Position   string    `gorm:"size:20;not null" json:"position"`
	Color      string    `gorm:"size:7;not null" json:"color"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (CtaOverlay) TableName() string {
	return "cta_overlays"
}

// CTA 浮层允许出现的位置
const (
	CtaPositionTopLeft     = "TOP_LEFT"
	CtaPositionTopRight    = "TOP_RIGHT"
	CtaPositionBottomLeft  = "BOTTOM_LEFT"
	CtaPositionBottomRight = "BOTTOM_RIGHT"
	CtaPositionCenter      = "CENTER"
)

// IsValidCtaPosition 校验位置枚举值
func IsValidCtaPosition(p string) bool {
	switch p {
	case CtaPositionTopLeft, CtaPositionTopRight, CtaPositionBottomLeft, CtaPositionBottomRight, CtaPositionCenter:
		return true
	}
	return false
}
