package repository

import (
	"context"

	"ctalink-platform/internal/model"

	"gorm.io/gorm"
)

// ClickRepository 基于 gorm 的访问记录存储实现，只追加
type ClickRepository struct {
	db *gorm.DB
}

// NewClickRepository 创建访问记录存储实例
func NewClickRepository(db *gorm.DB) *ClickRepository {
	return &ClickRepository{db: db}
}

// Record 追加一条访问记录
func (r *ClickRepository) Record(ctx context.Context, click *model.ClickEvent) error {
	return r.db.WithContext(ctx).Create(click).Error
}
