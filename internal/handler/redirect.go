package handler

import (
	"net/http"
	"time"

	"ctalink-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// RedirectHandler 公开的重定向和访问记录处理器，不要求认证
type RedirectHandler struct {
	svc *service.LinkService
}

// NewRedirectHandler 创建公开处理器实例
func NewRedirectHandler(svc *service.LinkService) *RedirectHandler {
	return &RedirectHandler{svc: svc}
}

// HealthCheck 健康检查
func (h *RedirectHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// Resolve godoc
// @Summary 解析短 ID
// @Description 返回重定向所需的原始地址和 CTA 浮层配置，由前端完成跳转
// @Tags Redirect
// @Produce  json
// @Param   shortId  path  string  true  "短 ID"
// @Success 200 {object} service.PublicLink "成功响应"
// @Failure 404 {object} gin.H "链接不存在"
// @Router /r/{shortId} [get]
func (h *RedirectHandler) Resolve(c *gin.Context) {
	pl, err := h.svc.ResolvePublic(c.Request.Context(), c.Param("shortId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pl)
}

// RecordClick godoc
// @Summary 记录一次访问
// @Description 访客打开短链接时由前端上报
// @Tags Redirect
// @Produce  json
// @Param   shortId  path  string  true  "短 ID"
// @Success 200 {object} gin.H "成功响应"
// @Failure 404 {object} gin.H "链接不存在"
// @Router /r/{shortId}/click [post]
func (h *RedirectHandler) RecordClick(c *gin.Context) {
	h.recordVisit(c, false)
}

// RecordCtaClick godoc
// @Summary 记录一次 CTA 点击
// @Description 访客点击 CTA 浮层按钮时由前端上报
// @Tags Redirect
// @Produce  json
// @Param   shortId  path  string  true  "短 ID"
// @Success 200 {object} gin.H "成功响应"
// @Failure 404 {object} gin.H "链接不存在"
// @Router /r/{shortId}/cta-click [post]
func (h *RedirectHandler) RecordCtaClick(c *gin.Context) {
	h.recordVisit(c, true)
}

func (h *RedirectHandler) recordVisit(c *gin.Context, ctaClick bool) {
	err := h.svc.RecordVisit(
		c.Request.Context(),
		c.Param("shortId"),
		c.ClientIP(),
		c.Request.UserAgent(),
		ctaClick,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
