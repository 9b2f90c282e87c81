package health

import (
	"net/http"
	"runtime"
	"time"

	"dinner-suggestion-bot/internal/channel/slack"
	"dinner-suggestion-bot/internal/infrastructure/config"
	"dinner-suggestion-bot/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *slack.Status          `json:"queue,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	config     *config.Config
	dispatcher *slack.Dispatcher
}

// NewHandler 創建健康檢查處理器
func NewHandler(cfg *config.Config, dispatcher *slack.Dispatcher) *Handler {
	return &Handler{
		config:     cfg,
		dispatcher: dispatcher,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if h.dispatcher != nil {
		response.Queue = h.dispatcher.GetStatus()
	}

	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器
func (h *Handler) ReadinessCheck(c *gin.Context) {
	// 派發器隊列滿載時視為未就緒
	if h.dispatcher != nil {
		status := h.dispatcher.GetStatus()
		if status.QueueLength >= status.MaxQueueSize {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "queue full",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
