package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"ctalink-platform/internal/config"
	"ctalink-platform/internal/handler"
	"ctalink-platform/internal/middleware"
	"ctalink-platform/internal/model"
	"ctalink-platform/internal/repository"
	"ctalink-platform/internal/service"
	"ctalink-platform/pkg/database"
	auth "ctalink-platform/pkg/jwt"
	"ctalink-platform/pkg/logger"
	"ctalink-platform/pkg/redis"

	_ "ctalink-platform/docs"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title CTA 链接平台 API
// @version 1.0
// @description 带 CTA 浮层的短链接管理服务
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	logger.InitLogger()
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		sugaredLogger.Fatalf("配置加载失败: %v", err)
	}

	db, err := database.InitMySQL(cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	sugaredLogger.Info("✅ 数据库连接成功")

	err = db.AutoMigrate(&model.User{}, &model.Link{}, &model.CtaOverlay{}, &model.ClickEvent{})
	if err != nil {
		sugaredLogger.Fatalf("数据库迁移失败: %v", err)
	}
	sugaredLogger.Info("✅ 数据库迁移成功")

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = redis.NewRedisClient(&redis.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			sugaredLogger.Warnf("缓存连接失败: %v", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
				}
			}()
			sugaredLogger.Info("✅ 缓存连接成功")
		}
	}

	tokenManager := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.ExpirationHours)
	sugaredLogger.Info("✅ 认证管理器初始化成功")

	linkRepo := repository.NewLinkRepository(db)
	clickRepo := repository.NewClickRepository(db)
	linkService := service.NewLinkService(
		linkRepo,
		clickRepo,
		rdb,
		cfg.ShortID.Length,
		time.Duration(cfg.Cache.RedirectTTLHours)*time.Hour,
		sugaredLogger,
	)

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authMiddleware := middleware.AuthMiddleware(tokenManager)
	rateLimitMiddleware := middleware.RateLimit(rdb, &cfg.RateLimit)
	router.Use(rateLimitMiddleware)

	linkHandler := handler.NewLinkHandler(linkService)
	redirectHandler := handler.NewRedirectHandler(linkService)
	authHandler := handler.NewAuthHandler(db, rdb, tokenManager)

	registerRoutes(router, linkHandler, redirectHandler, authHandler, authMiddleware)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
	sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugaredLogger.Fatalf("服务启动失败: %v", err)
	}
}

func registerRoutes(
	router *gin.Engine,
	linkHandler *handler.LinkHandler,
	redirectHandler *handler.RedirectHandler,
	authHandler *handler.AuthHandler,
	authMiddleware gin.HandlerFunc,
) {
	router.GET("/health", redirectHandler.HealthCheck)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	// 公开的重定向接口，不要求认证
	public := router.Group("/r")
	{
		public.GET("/:shortId", redirectHandler.Resolve)
		public.POST("/:shortId/click", redirectHandler.RecordClick)
		public.POST("/:shortId/cta-click", redirectHandler.RecordCtaClick)
	}

	router.GET("/me", authMiddleware, authHandler.GetCurrentUser)

	links := router.Group("/links")
	links.Use(authMiddleware)
	{
		links.POST("", linkHandler.Create)
		links.GET("", linkHandler.List)
		links.GET("/:id", linkHandler.Get)
		links.PATCH("/:id", linkHandler.Update)
		links.DELETE("/:id", linkHandler.Delete)
	}
}
