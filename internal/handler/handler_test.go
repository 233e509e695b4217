package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ctalink-platform/internal/middleware"
	"ctalink-platform/internal/model"
	"ctalink-platform/internal/repository"
	"ctalink-platform/internal/service"
	auth "ctalink-platform/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTest 为集成测试初始化一个干净的环境
// 不依赖 Redis，缓存客户端传 nil
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "无法连接到内存数据库")

	// 内存数据库随连接销毁，连接池限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&model.User{}, &model.Link{}, &model.CtaOverlay{}, &model.ClickEvent{})
	require.NoError(t, err, "数据库迁移失败")

	t.Cleanup(func() {
		sqlDB.Close()
	})

	logger, _ := zap.NewDevelopment()
	linkService := service.NewLinkService(
		repository.NewLinkRepository(db),
		repository.NewClickRepository(db),
		nil,
		0,
		time.Hour,
		logger.Sugar(),
	)

	tokenManager := auth.NewManager("test-secret", "test", 1)
	authMiddleware := middleware.AuthMiddleware(tokenManager)

	linkHandler := NewLinkHandler(linkService)
	redirectHandler := NewRedirectHandler(linkService)
	authHandler := NewAuthHandler(db, nil, tokenManager)

	router := gin.New()
	authGroup := router.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register", authHandler.Register)

	public := router.Group("/r")
	public.GET("/:shortId", redirectHandler.Resolve)
	public.POST("/:shortId/click", redirectHandler.RecordClick)
	public.POST("/:shortId/cta-click", redirectHandler.RecordCtaClick)

	router.GET("/me", authMiddleware, authHandler.GetCurrentUser)

	links := router.Group("/links")
	links.Use(authMiddleware)
	links.POST("", linkHandler.Create)
	links.GET("", linkHandler.List)
	links.GET("/:id", linkHandler.Get)
	links.PATCH("/:id", linkHandler.Update)
	links.DELETE("/:id", linkHandler.Delete)

	return router
}

// doJSON 发起一个带 JSON 体的请求，token 为空时不带认证头
func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "integration-test")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerUser 注册一个新用户并返回令牌
func registerUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "注册应返回 201: %s", w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

type linkResponse struct {
	ID          uint             `json:"id"`
	OriginalURL string           `json:"originalUrl"`
	ShortURL    string           `json:"shortUrl"`
	CtaOverlay  *CtaRequest      `json:"ctaOverlay"`
	Clicks      []map[string]any `json:"clicks"`
}

func TestLinkLifecycle_Integration(t *testing.T) {
	router := setupTest(t)
	token := registerUser(t, router, "owner@example.com")

	// === 创建链接（无 CTA） ===
	w := doJSON(router, http.MethodPost, "/links", token, gin.H{"originalUrl": "https://example.com/a"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created linkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Len(t, created.ShortURL, 11, "短 ID 应是 11 个字符")
	assert.Nil(t, created.CtaOverlay)
	require.NotNil(t, created.Clicks)
	assert.Empty(t, created.Clicks, "新建链接的访问记录应是空数组")

	// === 公开解析 ===
	w = doJSON(router, http.MethodGet, "/r/"+created.ShortURL, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resolved map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	assert.Equal(t, "https://example.com/a", resolved["originalUrl"])
	assert.Nil(t, resolved["cta"])

	// === 记录一次访问和一次 CTA 点击 ===
	w = doJSON(router, http.MethodPost, "/r/"+created.ShortURL+"/click", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodPost, "/r/"+created.ShortURL+"/cta-click", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var clickResp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clickResp))
	assert.Equal(t, true, clickResp["success"])

	// === 详情里应有恰好 2 条访问摘要，其中 1 条是 CTA 点击 ===
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/links/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail linkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Clicks, 2)
	assert.Equal(t, false, detail.Clicks[0]["ctaClick"])
	assert.Equal(t, true, detail.Clicks[1]["ctaClick"])

	// === 更新原始地址并加上 CTA ===
	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/links/%d", created.ID), token, gin.H{
		"originalUrl": "https://example.com/b",
		"cta": gin.H{
			"message":    "Join us",
			"buttonText": "Go",
			"buttonUrl":  "https://x.com",
			"position":   "CENTER",
			"color":      "#FF0000",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated linkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "https://example.com/b", updated.OriginalURL)
	require.NotNil(t, updated.CtaOverlay)
	assert.Equal(t, "Join us", updated.CtaOverlay.Message)

	// === cta 显式传 null 表示删除浮层 ===
	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/links/%d", created.ID), token,
		json.RawMessage(`{"cta": null}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/links/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Nil(t, detail.CtaOverlay, "删除后浮层应不存在")

	// === 删除链接 ===
	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/links/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/links/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/r/"+created.ShortURL, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "删除后短 ID 应不可解析")
}

func TestCreateWithCta_RoundTrip(t *testing.T) {
	router := setupTest(t)
	token := registerUser(t, router, "owner@example.com")

	cta := gin.H{
		"message":    "Join us",
		"buttonText": "Go",
		"buttonUrl":  "https://x.com",
		"position":   "CENTER",
		"color":      "#FF0000",
	}
	w := doJSON(router, http.MethodPost, "/links", token, gin.H{"originalUrl": "https://example.com/a", "cta": cta})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created linkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/links/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got linkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.CtaOverlay)
	assert.Equal(t, "Join us", got.CtaOverlay.Message)
	assert.Equal(t, "Go", got.CtaOverlay.ButtonText)
	assert.Equal(t, "https://x.com", got.CtaOverlay.ButtonURL)
	assert.Equal(t, "CENTER", got.CtaOverlay.Position)
	assert.Equal(t, "#FF0000", got.CtaOverlay.Color)

	// 公开解析应带上完整浮层配置
	w = doJSON(router, http.MethodGet, "/r/"+created.ShortURL, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resolved struct {
		OriginalURL string      `json:"originalUrl"`
		Cta         *CtaRequest `json:"cta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	require.NotNil(t, resolved.Cta)
	assert.Equal(t, "Join us", resolved.Cta.Message)
}

func TestOwnershipIsolation(t *testing.T) {
	router := setupTest(t)
	tokenA := registerUser(t, router, "a@example.com")
	tokenB := registerUser(t, router, "b@example.com")

	w := doJSON(router, http.MethodPost, "/links", tokenA, gin.H{"originalUrl": "https://example.com/a"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created linkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// 其他用户访问得到 404，而不是 403
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/links/%d", created.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/links/%d", created.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 列表互不可见
	w = doJSON(router, http.MethodGet, "/links", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []linkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)

	w = doJSON(router, http.MethodGet, "/links", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestAuthRequired(t *testing.T) {
	router := setupTest(t)

	w := doJSON(router, http.MethodGet, "/links", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/links", "not-a-token", gin.H{"originalUrl": "https://example.com/a"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreate_InvalidInput(t *testing.T) {
	router := setupTest(t)
	token := registerUser(t, router, "owner@example.com")

	w := doJSON(router, http.MethodPost, "/links", token, gin.H{"originalUrl": "not-a-url"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "originalUrl", resp["field"])

	w = doJSON(router, http.MethodPost, "/links", token, gin.H{
		"originalUrl": "https://example.com/a",
		"cta": gin.H{
			"message":    "Join us",
			"buttonText": "Go",
			"buttonUrl":  "https://x.com",
			"position":   "MIDDLE",
			"color":      "#FF0000",
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cta.position", resp["field"])
}

func TestResolve_UnknownShortID(t *testing.T) {
	router := setupTest(t)

	w := doJSON(router, http.MethodGet, "/r/doesnotexist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(router, http.MethodPost, "/r/doesnotexist/click", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginFlow(t *testing.T) {
	router := setupTest(t)
	registerUser(t, router, "owner@example.com")

	w := doJSON(router, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "owner@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "owner@example.com", resp.User.Email)

	// 登录后的令牌可以访问当前用户信息
	w = doJSON(router, http.MethodGet, "/me", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "owner@example.com", me.Email)

	// 错误密码
	w = doJSON(router, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "owner@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
