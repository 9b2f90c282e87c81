package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dinner-suggestion-bot/internal/api/handlers/health"
	"dinner-suggestion-bot/internal/api/handlers/webhook"
	"dinner-suggestion-bot/internal/api/middleware"
	"dinner-suggestion-bot/internal/channel/line"
	"dinner-suggestion-bot/internal/channel/slack"
	"dinner-suggestion-bot/internal/core/ai/bedrock"
	"dinner-suggestion-bot/internal/core/ai/cache"
	"dinner-suggestion-bot/internal/core/pantry"
	"dinner-suggestion-bot/internal/core/suggest"
	"dinner-suggestion-bot/internal/infrastructure/config"
	"dinner-suggestion-bot/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 同步路徑的請求超時（延遲階段不受此限）
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，webhook 本體遠小於此
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由與服務依賴。
// 回傳的 cleanup 須在伺服器關閉時呼叫。
func SetupRouter(cfg *config.Config, cacheManager *cache.CacheManager, pantryStore *pantry.Store) (*gin.Engine, func(), error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 平台重送的 webhook 在視窗內去重
	router.Use(middleware.Deduplication(cfg))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("queue_workers", cfg.Queue.Workers),
		zap.String("model", cfg.Bedrock.ModelID),
	)

	// 初始化模型閘道
	gateway, err := bedrock.NewClient(cfg)
	if err != nil {
		common.LogError("Failed to initialize Bedrock client", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to initialize bedrock client: %w", err)
	}

	// 初始化菜單生成服務
	var completionCache suggest.CompletionCache
	if cacheManager != nil {
		completionCache = cacheManager
	}
	suggestService := suggest.NewService(gateway, completionCache)

	// 初始化頻道客戶端與處理器
	lineClient := line.NewClient(cfg)
	slackClient := slack.NewClient(cfg)

	lineHandler := webhook.NewLineHandler(lineClient, suggestService, cfg.Line.UseFlexMessage)
	slackHandler := webhook.NewSlackHandler(cfg, slackClient, suggestService, pantryStore)
	webhookHandler := webhook.NewHandler(lineHandler, slackHandler)

	// 啟動延遲階段的任務派發器
	dispatcher := slackHandler.Dispatcher()
	dispatcher.Start()

	// 同步路徑超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
		}
	})

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, dispatcher)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// 共用 webhook 入口（LINE 與 Slack 皆指向此端點）
	router.POST("/webhook", webhookHandler.Handle)

	cleanup := func() {
		dispatcher.Close()
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Bool("pantry_store_initialized", pantryStore != nil),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, cleanup, nil
}
