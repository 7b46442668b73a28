package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/queue"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

// Service 异步队列服务，同时负责价目表的定时重建
type Service struct {
	name      string
	server    *asynq.Server
	mux       *asynq.ServeMux
	consumer  *Consumer
	scheduler *cron.Cron
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	scheduler, err := newScheduler(consumer)
	if err != nil {
		return nil, err
	}
	return &Service{
		name:      "worker",
		server:    server,
		mux:       mux,
		consumer:  consumer,
		scheduler: scheduler,
	}, nil
}

// newScheduler 按 price.schedule 定时投递价目表重建任务；未启用价目表时返回 nil
func newScheduler(consumer *Consumer) (*cron.Cron, error) {
	if consumer.Container == nil || consumer.Config == nil {
		return nil, nil
	}
	priceCfg := consumer.Config.Price
	spec := strings.TrimSpace(priceCfg.Schedule)
	if !priceCfg.Enabled || spec == "" {
		return nil, nil
	}
	scheduler := cron.New(cron.WithSeconds())
	if _, err := scheduler.AddFunc(spec, func() {
		enqueuePriceRegenerate(consumer.QueueClient, "schedule")
	}); err != nil {
		return nil, err
	}
	return scheduler, nil
}

func enqueuePriceRegenerate(client *queue.Client, reason string) {
	if err := client.EnqueuePriceRegenerate(queue.PriceRegeneratePayload{Reason: reason}); err != nil {
		logger.Warnw("worker_enqueue_price_regenerate_failed", "reason", reason, "error", err)
	}
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.scheduler != nil {
		enqueuePriceRegenerate(s.consumer.QueueClient, "startup")
		s.scheduler.Start()
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	if s.scheduler != nil {
		select {
		case <-s.scheduler.Stop().Done():
		case <-ctx.Done():
		}
	}
	s.server.Shutdown()
	return nil
}
