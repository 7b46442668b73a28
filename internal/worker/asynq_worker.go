package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/provider"
	"github.com/stroyprombeton/internal/queue"
	"github.com/stroyprombeton/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPlaced, c.handleOrderPlaced)
	mux.HandleFunc(queue.TaskPriceRegenerate, c.handlePriceRegenerate)
	mux.HandleFunc(queue.TaskContactRequested, c.handleContactRequested)
}

// handleOrderPlaced 标记订单已通知；邮件投递不在本服务内
func (c *Consumer) handleOrderPlaced(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil || c.OrderService == nil {
		logger.Debugw("worker_order_placed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPlacedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_skip_invalid_payload", "order_no", payload.OrderNo)
		return nil
	}
	order, err := c.OrderService.MarkNotified(payload.OrderID)
	if errors.Is(err, service.ErrNotFound) {
		logger.Debugw("worker_order_placed_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if err != nil {
		logger.Warnw("worker_order_placed_mark_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	logger.Infow("worker_order_placed_notified",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"email", order.Email,
		"total_price", order.TotalPrice.String(),
	)
	return nil
}

// handleContactRequested 标记联系请求已通知
func (c *Consumer) handleContactRequested(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil || c.ContactService == nil {
		logger.Debugw("worker_contact_requested_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ContactRequestedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_contact_requested_unmarshal_failed", "error", err)
		return err
	}
	if payload.RequestID == 0 {
		logger.Debugw("worker_contact_requested_skip_invalid_payload", "kind", payload.Kind)
		return nil
	}
	request, err := c.ContactService.MarkNotified(payload.RequestID)
	if errors.Is(err, service.ErrNotFound) {
		logger.Debugw("worker_contact_requested_skip_not_found", "request_id", payload.RequestID)
		return nil
	}
	if err != nil {
		logger.Warnw("worker_contact_requested_mark_failed", "request_id", payload.RequestID, "error", err)
		return err
	}
	logger.Infow("worker_contact_requested_notified",
		"request_id", request.ID,
		"kind", request.Kind,
		"phone", request.Phone,
	)
	return nil
}

func (c *Consumer) handlePriceRegenerate(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil || c.PriceListService == nil {
		logger.Debugw("worker_price_regenerate_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PriceRegeneratePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_price_regenerate_unmarshal_failed", "error", err)
		return err
	}
	ctx = logger.WithContext(ctx, logger.SW("task", task.Type(), "reason", payload.Reason))
	list, err := c.PriceListService.Regenerate(ctx)
	if err != nil {
		logger.Warnw("worker_price_regenerate_failed", "reason", payload.Reason, "error", err)
		return err
	}
	logger.Infow("worker_price_regenerated", "reason", payload.Reason, "entries", len(list.Entries))
	return nil
}
