package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ctalink-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LinkHandler 链接管理处理器，全部路由要求认证
type LinkHandler struct {
	svc *service.LinkService
}

// NewLinkHandler 创建链接处理器实例
func NewLinkHandler(svc *service.LinkService) *LinkHandler {
	return &LinkHandler{svc: svc}
}

// CtaRequest CTA 浮层的请求字段
type CtaRequest struct {
	Message    string `json:"message" example:"欢迎加入"`
	ButtonText string `json:"buttonText" example:"立即前往"`
	ButtonURL  string `json:"buttonUrl" example:"https://example.com/join"`
	Position   string `json:"position" example:"CENTER"`
	Color      string `json:"color" example:"#FF0000"`
}

// CreateLinkRequest 创建链接的请求体
type CreateLinkRequest struct {
	OriginalURL string      `json:"originalUrl" binding:"required" example:"https://example.com/landing"`
	Cta         *CtaRequest `json:"cta"`
}

// CtaPatch 区分「请求里没有 cta 字段」和「cta 显式为 null」
// 前者保持浮层不变，后者删除浮层
type CtaPatch struct {
	Present bool
	Value   *CtaRequest
}

// UnmarshalJSON 只要字段出现就置 Present，null 时 Value 为 nil
func (p *CtaPatch) UnmarshalJSON(data []byte) error {
	p.Present = true
	if string(data) == "null" {
		p.Value = nil
		return nil
	}
	var v CtaRequest
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

// UpdateLinkRequest 更新链接的请求体，字段都可省略
type UpdateLinkRequest struct {
	OriginalURL *string  `json:"originalUrl"`
	Cta         CtaPatch `json:"cta"`
}

func ctaRequestToInput(req *CtaRequest) *service.CtaInput {
	if req == nil {
		return nil
	}
	return &service.CtaInput{
		Message:    req.Message,
		ButtonText: req.ButtonText,
		ButtonURL:  req.ButtonURL,
		Position:   req.Position,
		Color:      req.Color,
	}
}

// currentUserID 从认证中间件写入的上下文中取归属者 ID
func currentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// linkIDParam 解析路径里的链接 ID
// 非数字的 ID 和不存在的 ID 走同一个 404，不暴露可区分的响应
func linkIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// respondServiceError 把业务错误映射成 HTTP 响应
func respondServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "链接不存在"})
	default:
		zap.S().Errorf("请求处理失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}

// Create godoc
// @Summary 创建链接
// @Description 为原始地址生成短 ID，可以附带 CTA 浮层配置
// @Tags Link
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   link  body   CreateLinkRequest  true  "链接信息"
// @Success 201 {object} model.Link "成功响应"
// @Failure 400 {object} gin.H "请求无效"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /links [post]
func (h *LinkHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	link, err := h.svc.Create(c.Request.Context(), ownerID, service.CreateLinkInput{
		OriginalURL: req.OriginalURL,
		Cta:         ctaRequestToInput(req.Cta),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// List godoc
// @Summary 链接列表
// @Description 返回当前用户的全部链接，按创建时间倒序
// @Tags Link
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {array} model.Link "成功响应"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /links [get]
func (h *LinkHandler) List(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	links, err := h.svc.List(c.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// Get godoc
// @Summary 链接详情
// @Description 返回当前用户的单条链接，含 CTA 浮层和访问摘要
// @Tags Link
// @Security ApiKeyAuth
// @Produce  json
// @Param   id  path  int  true  "链接 ID"
// @Success 200 {object} model.Link "成功响应"
// @Failure 404 {object} gin.H "链接不存在"
// @Router /links/{id} [get]
func (h *LinkHandler) Get(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}
	id, ok := linkIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "链接不存在"})
		return
	}

	link, err := h.svc.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// Update godoc
// @Summary 更新链接
// @Description 替换原始地址，新建、替换或删除 CTA 浮层（cta 传 null 表示删除）
// @Tags Link
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   id    path  int                true  "链接 ID"
// @Param   link  body  UpdateLinkRequest  true  "更新内容"
// @Success 200 {object} model.Link "成功响应"
// @Failure 400 {object} gin.H "请求无效"
// @Failure 404 {object} gin.H "链接不存在"
// @Router /links/{id} [patch]
func (h *LinkHandler) Update(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}
	id, ok := linkIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "链接不存在"})
		return
	}

	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	link, err := h.svc.Update(c.Request.Context(), ownerID, id, service.UpdateLinkInput{
		OriginalURL: req.OriginalURL,
		CtaSet:      req.Cta.Present,
		Cta:         ctaRequestToInput(req.Cta.Value),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// Delete godoc
// @Summary 删除链接
// @Description 删除当前用户的链接，级联删除 CTA 浮层和访问记录
// @Tags Link
// @Security ApiKeyAuth
// @Produce  json
// @Param   id  path  int  true  "链接 ID"
// @Success 200 {object} gin.H "成功响应"
// @Failure 404 {object} gin.H "链接不存在"
// @Router /links/{id} [delete]
func (h *LinkHandler) Delete(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}
	id, ok := linkIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "链接不存在"})
		return
	}

	if err := h.svc.Remove(c.Request.Context(), ownerID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
