package slack

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dinner-suggestion-bot/internal/infrastructure/config"
	"dinner-suggestion-bot/internal/pkg/common"
)

// Job 延遲階段的一次性任務。
// 每個任務恰好遞送一次結果（response_url 或 chat.postMessage），不重試。
type Job struct {
	Text        string
	ResponseURL string
	UserID      string
	ChannelID   string
}

// JobHandler 任務處理函數
type JobHandler func(ctx context.Context, job *Job)

// Status 隊列狀態
type Status struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Dispatcher 一次性任務派發器：有界隊列 + 固定數量 worker
type Dispatcher struct {
	config    *config.Config
	queue     chan *Job
	handler   JobHandler
	done      chan struct{}
	processed int64
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher 創建任務派發器（須呼叫 Start 啟動 worker）
func NewDispatcher(cfg *config.Config, handler JobHandler) *Dispatcher {
	return &Dispatcher{
		config:  cfg,
		queue:   make(chan *Job, cfg.Queue.MaxSize),
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Start 啟動 worker 協程
func (d *Dispatcher) Start() {
	for i := 0; i < d.config.Queue.Workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	common.LogInfo("任務派發器已啟動",
		zap.Int("workers", d.config.Queue.Workers),
		zap.Int("max_queue_size", d.config.Queue.MaxSize),
	)
}

// worker 逐一處理任務；任務之間無順序保證
func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for {
		select {
		case job, ok := <-d.queue:
			if !ok {
				return
			}
			// 延遲階段不受請求生命週期約束，使用獨立 context
			d.handler(context.Background(), job)
			atomic.AddInt64(&d.processed, 1)
		case <-d.done:
			return
		}
	}
}

// Enqueue 將任務加入隊列；隊列已滿立即失敗，不阻塞同步路徑
func (d *Dispatcher) Enqueue(job *Job) error {
	select {
	case <-d.done:
		return fmt.Errorf("dispatcher is closed")
	default:
	}

	select {
	case d.queue <- job:
		common.LogInfo("任務已入列",
			zap.Int("queue_length", len(d.queue)),
			zap.Int("max_queue_size", d.config.Queue.MaxSize),
		)
		return nil
	default:
		return common.ErrQueueFull
	}
}

// GetStatus 獲取隊列狀態
func (d *Dispatcher) GetStatus() *Status {
	return &Status{
		QueueLength:    len(d.queue),
		ProcessedCount: int(atomic.LoadInt64(&d.processed)),
		MaxQueueSize:   d.config.Queue.MaxSize,
		Workers:        d.config.Queue.Workers,
	}
}

// Close 關閉派發器並等待 worker 結束
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
		d.wg.Wait()
	})
}
