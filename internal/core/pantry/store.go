package pantry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"dinner-suggestion-bot/internal/infrastructure/config"
	"dinner-suggestion-bot/internal/pkg/common"
)

// Store 使用者食材清單的 Redis 儲存。
// get/merge/put 語義，最後寫入為準；併發下的少量覆蓋可容忍。
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore 創建食材儲存並驗證連線
func NewStore(cfg *config.Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Pantry.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	common.LogInfo("食材儲存已初始化",
		zap.String("addr", cfg.Pantry.RedisAddr),
		zap.Duration("存活時間", cfg.Pantry.TTL),
	)

	return &Store{
		client: client,
		ttl:    cfg.Pantry.TTL,
	}, nil
}

// pantryKey 生成使用者的儲存鍵
func pantryKey(userID string) string {
	return fmt.Sprintf("pantry:%s", userID)
}

// Get 取得使用者的食材清單；不存在時回傳空清單
func (s *Store) Get(ctx context.Context, userID string) ([]string, error) {
	data, err := s.client.Get(ctx, pantryKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}

	var ingredients []string
	if err := json.Unmarshal([]byte(data), &ingredients); err != nil {
		return nil, fmt.Errorf("failed to parse ingredients: %w", err)
	}
	return ingredients, nil
}

// Add 合併新增食材（去重，保留原有順序）
func (s *Store) Add(ctx context.Context, userID string, newItems []string) ([]string, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := mergeItems(current, newItems)

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	if err := s.client.Set(ctx, pantryKey(userID), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to save ingredients: %w", err)
	}

	common.LogInfo("食材已更新",
		zap.Int("新增數量", len(newItems)),
		zap.Int("目前數量", len(merged)),
	)
	return merged, nil
}

// Clear 清空使用者的食材清單
func (s *Store) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, pantryKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear ingredients: %w", err)
	}
	return nil
}

// Ping 檢查 Redis 連線
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉 Redis 連線
func (s *Store) Close() error {
	return s.client.Close()
}

// mergeItems 合併兩份清單並去重，先到者保留位置
func mergeItems(current, added []string) []string {
	seen := make(map[string]bool, len(current)+len(added))
	merged := make([]string, 0, len(current)+len(added))
	for _, item := range append(append([]string{}, current...), added...) {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		merged = append(merged, item)
	}
	return merged
}

// FormatList 將食材清單格式化為顯示文字
func FormatList(ingredients []string) string {
	if len(ingredients) == 0 {
		return "🆕 冷蔵庫は空っぽです。`/dinner add 食材名` で食材を追加しましょう！"
	}

	var b strings.Builder
	b.WriteString("❄️ 冷蔵庫の食材:\n")
	for i, ingredient := range ingredients {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, ingredient))
	}
	return strings.TrimRight(b.String(), "\n")
}
