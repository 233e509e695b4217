package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"regexp"
	"time"
	"unicode/utf8"

	"ctalink-platform/internal/model"
	"ctalink-platform/internal/shortid"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// maxShortIDRetries 短 ID 冲突时的最大重新生成次数
const maxShortIDRetries = 3

// LinkRepository 链接存储接口
// 所有包含 ownerID 的查询都必须在查询条件里限定归属，
// 而不是先查出来再比较，避免向其他用户泄露链接是否存在
type LinkRepository interface {
	Insert(ctx context.Context, link *model.Link) error
	FindByOwnerAndID(ctx context.Context, ownerID, id uint) (*model.Link, error)
	FindAllByOwner(ctx context.Context, ownerID uint) ([]model.Link, error)
	FindByShortID(ctx context.Context, shortID string) (*model.Link, error)
	Update(ctx context.Context, ownerID, id uint, patch LinkPatch) error
	Delete(ctx context.Context, ownerID, id uint) error
}

// ClickRepository 访问记录存储接口，只追加
type ClickRepository interface {
	Record(ctx context.Context, click *model.ClickEvent) error
}

// CtaInput CTA 浮层的输入字段
type CtaInput struct {
	Message    string
	ButtonText string
	ButtonURL  string
	Position   string
	Color      string
}

// CreateLinkInput 创建链接的输入
type CreateLinkInput struct {
	OriginalURL string
	Cta         *CtaInput
}

// UpdateLinkInput 更新链接的输入
// CtaSet 表示请求里是否携带了 cta 字段：携带 null 表示删除浮层，不携带则保持不变
type UpdateLinkInput struct {
	OriginalURL *string
	CtaSet      bool
	Cta         *CtaInput
}

// LinkPatch 传给存储层的补丁，字段为 nil 表示不修改
type LinkPatch struct {
	OriginalURL *string
	Cta         *model.CtaOverlay
	RemoveCta   bool
}

// PublicLink 公开重定向接口返回的字段，不包含归属者信息
type PublicLink struct {
	OriginalURL string            `json:"originalUrl"`
	Cta         *model.CtaOverlay `json:"cta"`
}

// LinkService 链接业务逻辑：创建、查询、更新、删除以及公开的重定向解析和访问记录
type LinkService struct {
	links           LinkRepository
	clicks          ClickRepository
	cache           *redis.Client
	shortIDLength   int
	redirectTTL     time.Duration
	logger          *zap.SugaredLogger
	generateShortID func() (string, error)
}

// NewLinkService 创建链接服务实例，cache 可以为 nil
func NewLinkService(
	links LinkRepository,
	clicks ClickRepository,
	cache *redis.Client,
	shortIDLength int,
	redirectTTL time.Duration,
	logger *zap.SugaredLogger,
) *LinkService {
	if shortIDLength <= 0 {
		shortIDLength = shortid.DefaultLength
	}
	if redirectTTL <= 0 {
		redirectTTL = 24 * time.Hour
	}
	s := &LinkService{
		links:         links,
		clicks:        clicks,
		cache:         cache,
		shortIDLength: shortIDLength,
		redirectTTL:   redirectTTL,
		logger:        logger.Named("link_service"),
	}
	s.generateShortID = func() (string, error) {
		return shortid.Generate(s.shortIDLength)
	}
	return s
}

// Create 校验输入后生成短 ID 并落库
// 短 ID 冲突时重新生成，最多尝试 maxShortIDRetries 次
func (s *LinkService) Create(ctx context.Context, ownerID uint, in CreateLinkInput) (*model.Link, error) {
	if err := validateHTTPURL("originalUrl", in.OriginalURL); err != nil {
		return nil, err
	}
	if in.Cta != nil {
		if err := validateCta(in.Cta); err != nil {
			return nil, err
		}
	}

	var lastErr error
	for i := 0; i < maxShortIDRetries; i++ {
		sid, err := s.generateShortID()
		if err != nil {
			return nil, err
		}

		link := &model.Link{
			UserID:      ownerID,
			OriginalURL: in.OriginalURL,
			ShortID:     sid,
		}
		if in.Cta != nil {
			link.Cta = ctaToModel(in.Cta)
		}

		err = s.links.Insert(ctx, link)
		if err == nil {
			// 新建链接还没有任何访问记录，返回空切片而不是 null
			link.Clicks = []model.ClickEvent{}
			return link, nil
		}
		if errors.Is(err, ErrDuplicateShortID) {
			s.logger.Warnf("短 ID %s 冲突，重新生成（第 %d 次）", sid, i+1)
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

// List 返回用户自己的全部链接，按创建时间倒序
func (s *LinkService) List(ctx context.Context, ownerID uint) ([]model.Link, error) {
	return s.links.FindAllByOwner(ctx, ownerID)
}

// Get 返回用户自己的单条链接，不存在或不属于该用户都返回 ErrNotFound
func (s *LinkService) Get(ctx context.Context, ownerID, id uint) (*model.Link, error) {
	return s.links.FindByOwnerAndID(ctx, ownerID, id)
}

// Update 更新链接，支持替换原始地址、新建或替换 CTA 浮层、以及显式删除浮层
func (s *LinkService) Update(ctx context.Context, ownerID, id uint, in UpdateLinkInput) (*model.Link, error) {
	if in.OriginalURL != nil {
		if err := validateHTTPURL("originalUrl", *in.OriginalURL); err != nil {
			return nil, err
		}
	}
	if in.CtaSet && in.Cta != nil {
		if err := validateCta(in.Cta); err != nil {
			return nil, err
		}
	}

	link, err := s.links.FindByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	patch := LinkPatch{OriginalURL: in.OriginalURL}
	if in.CtaSet {
		if in.Cta != nil {
			patch.Cta = ctaToModel(in.Cta)
		} else {
			patch.RemoveCta = true
		}
	}

	if err := s.links.Update(ctx, ownerID, link.ID, patch); err != nil {
		return nil, err
	}
	s.invalidateRedirectCache(ctx, link.ShortID)

	return s.links.FindByOwnerAndID(ctx, ownerID, id)
}

// Remove 删除用户自己的链接，级联删除 CTA 浮层和访问记录
func (s *LinkService) Remove(ctx context.Context, ownerID, id uint) error {
	link, err := s.links.FindByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.links.Delete(ctx, ownerID, link.ID); err != nil {
		return err
	}
	s.invalidateRedirectCache(ctx, link.ShortID)
	return nil
}

// ResolvePublic 公开接口：根据短 ID 返回重定向所需的字段
// 优先读缓存，未命中时回源数据库并写回缓存
func (s *LinkService) ResolvePublic(ctx context.Context, shortID string) (*PublicLink, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, redirectCacheKey(shortID)).Result(); err == nil {
			var pl PublicLink
			if json.Unmarshal([]byte(raw), &pl) == nil {
				return &pl, nil
			}
		}
	}

	link, err := s.links.FindByShortID(ctx, shortID)
	if err != nil {
		return nil, err
	}

	pl := &PublicLink{OriginalURL: link.OriginalURL, Cta: link.Cta}
	if s.cache != nil {
		if data, err := json.Marshal(pl); err == nil {
			s.cache.Set(ctx, redirectCacheKey(shortID), data, s.redirectTTL)
		}
	}
	return pl, nil
}

// RecordVisit 公开接口：记录一次访问
// 必须先把短 ID 解析成链接，访问记录需要链接 ID；短 ID 不存在时返回 ErrNotFound
func (s *LinkService) RecordVisit(ctx context.Context, shortID, viewerIP, userAgent string, ctaClick bool) error {
	link, err := s.links.FindByShortID(ctx, shortID)
	if err != nil {
		return err
	}
	click := &model.ClickEvent{
		LinkID:    link.ID,
		ViewerIP:  viewerIP,
		UserAgent: userAgent,
		CtaClick:  ctaClick,
	}
	return s.clicks.Record(ctx, click)
}

func (s *LinkService) invalidateRedirectCache(ctx context.Context, shortID string) {
	if s.cache != nil {
		s.cache.Del(ctx, redirectCacheKey(shortID))
	}
}

func redirectCacheKey(shortID string) string {
	return "redirect:" + shortID
}

func ctaToModel(in *CtaInput) *model.CtaOverlay {
	return &model.CtaOverlay{
		Message:    in.Message,
		ButtonText: in.ButtonText,
		ButtonURL:  in.ButtonURL,
		Position:   in.Position,
		Color:      in.Color,
	}
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateHTTPURL 校验是否为合法的 http/https 绝对地址
func validateHTTPURL(field, raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return newValidationError(field, "必须是合法的 http/https 地址")
	}
	return nil
}

// validateCta 校验 CTA 浮层的全部字段
func validateCta(cta *CtaInput) error {
	if cta.Message == "" {
		return newValidationError("cta.message", "不能为空")
	}
	if utf8.RuneCountInString(cta.Message) > 100 {
		return newValidationError("cta.message", "长度不能超过 100 个字符")
	}
	if cta.ButtonText == "" {
		return newValidationError("cta.buttonText", "不能为空")
	}
	if utf8.RuneCountInString(cta.ButtonText) > 30 {
		return newValidationError("cta.buttonText", "长度不能超过 30 个字符")
	}
	if err := validateHTTPURL("cta.buttonUrl", cta.ButtonURL); err != nil {
		return err
	}
	if !model.IsValidCtaPosition(cta.Position) {
		return newValidationError("cta.position", "必须是 TOP_LEFT、TOP_RIGHT、BOTTOM_LEFT、BOTTOM_RIGHT、CENTER 之一")
	}
	if !hexColorPattern.MatchString(cta.Color) {
		return newValidationError("cta.color", "必须是 # 开头的 3 位或 6 位十六进制颜色")
	}
	return nil
}
