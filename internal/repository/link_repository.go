package repository

import (
	"context"
	"errors"
	"time"

	"ctalink-platform/internal/model"
	"ctalink-platform/internal/service"

	"gorm.io/gorm"
)

// LinkRepository 基于 gorm 的链接存储实现
type LinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository 创建链接存储实例
func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// withRelations 所有面向归属者的读取都带上 CTA 浮层和访问摘要
// 访问摘要只取 id、cta_click、created_at（link_id 用于关联装配），按时间正序
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Cta").
		Preload("Clicks", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id, link_id, cta_click, created_at").Order("created_at ASC")
		})
}

// Insert 写入链接及其 CTA 浮层，短 ID 冲突时返回 service.ErrDuplicateShortID
// 唯一性完全依赖数据库的唯一索引，不做先查再插
func (r *LinkRepository) Insert(ctx context.Context, link *model.Link) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return service.ErrDuplicateShortID
		}
		return err
	}
	return nil
}

// FindByID 按主键查询，不限定归属者
// 业务代码不使用这个方法：面向用户的读取必须走 FindByOwnerAndID
func (r *LinkRepository) FindByID(ctx context.Context, id uint) (*model.Link, error) {
	var link model.Link
	err := withRelations(r.db.WithContext(ctx)).First(&link, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	normalize(&link)
	return &link, nil
}

// FindByOwnerAndID 按归属者和主键查询，归属关系放在查询条件里
func (r *LinkRepository) FindByOwnerAndID(ctx context.Context, ownerID, id uint) (*model.Link, error) {
	var link model.Link
	err := withRelations(r.db.WithContext(ctx)).
		Where("user_id = ? AND id = ?", ownerID, id).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	normalize(&link)
	return &link, nil
}

// FindAllByOwner 返回归属者的全部链接，按创建时间倒序
func (r *LinkRepository) FindAllByOwner(ctx context.Context, ownerID uint) ([]model.Link, error) {
	var links []model.Link
	err := withRelations(r.db.WithContext(ctx)).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	for i := range links {
		normalize(&links[i])
	}
	return links, nil
}

// FindByShortID 公开重定向路径使用的查询，只带 CTA 浮层
func (r *LinkRepository) FindByShortID(ctx context.Context, shortID string) (*model.Link, error) {
	var link model.Link
	err := r.db.WithContext(ctx).
		Preload("Cta").
		Where("short_id = ?", shortID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// Update 在一个事务里应用补丁：替换原始地址、新建或替换 CTA 浮层、删除浮层
// 归属校验和修改在同一个事务里完成，链接在事务外被删除时不会留下孤儿浮层
func (r *LinkRepository) Update(ctx context.Context, ownerID, id uint, patch service.LinkPatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := claimOwnedLink(tx, ownerID, id); err != nil {
			return err
		}

		if patch.OriginalURL != nil {
			err := tx.Model(&model.Link{}).
				Where("id = ?", id).
				Update("original_url", *patch.OriginalURL).Error
			if err != nil {
				return err
			}
		}

		switch {
		case patch.Cta != nil:
			var existing model.CtaOverlay
			err := tx.Where("link_id = ?", id).First(&existing).Error
			switch {
			case err == nil:
				existing.Message = patch.Cta.Message
				existing.ButtonText = patch.Cta.ButtonText
				existing.ButtonURL = patch.Cta.ButtonURL
				existing.Position = patch.Cta.Position
				existing.Color = patch.Cta.Color
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				patch.Cta.LinkID = id
				if err := tx.Create(patch.Cta).Error; err != nil {
					return err
				}
			default:
				return err
			}
		case patch.RemoveCta:
			if err := tx.Where("link_id = ?", id).Delete(&model.CtaOverlay{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete 在一个事务里删除链接及其 CTA 浮层和访问记录
func (r *LinkRepository) Delete(ctx context.Context, ownerID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := claimOwnedLink(tx, ownerID, id); err != nil {
			return err
		}
		if err := tx.Where("link_id = ?", id).Delete(&model.ClickEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("link_id = ?", id).Delete(&model.CtaOverlay{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Link{}, id).Error
	})
}

// claimOwnedLink 在事务内用归属条件更新时间戳
// 既确认链接存在且属于归属者，又持有行锁，后续修改不会和并发删除交错
func claimOwnedLink(tx *gorm.DB, ownerID, id uint) error {
	res := tx.Model(&model.Link{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("updated_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

// normalize 没有访问记录时返回空切片而不是 null
func normalize(link *model.Link) {
	if link.Clicks == nil {
		link.Clicks = []model.ClickEvent{}
	}
}
