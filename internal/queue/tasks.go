package queue

import (
	"encoding/json"
	"strings"

	"github.com/stroyprombeton/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlaced 新订单通知任务
	TaskOrderPlaced = constants.TaskOrderPlaced
	// TaskPriceRegenerate 价目表重建任务
	TaskPriceRegenerate = constants.TaskPriceRegenerate
	// TaskContactRequested 回电与价目表申请通知任务
	TaskContactRequested = constants.TaskContactRequested
)

// OrderPlacedPayload 新订单任务载荷
type OrderPlacedPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
}

// PriceRegeneratePayload 价目表重建任务载荷
type PriceRegeneratePayload struct {
	Reason string `json:"reason"`
}

// ContactRequestedPayload 联系请求任务载荷
type ContactRequestedPayload struct {
	RequestID uint   `json:"request_id"`
	Kind      string `json:"kind"`
}

// NewOrderPlacedTask 创建新订单任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlaced, body), nil
}

// NewPriceRegenerateTask 创建价目表重建任务
func NewPriceRegenerateTask(payload PriceRegeneratePayload) (*asynq.Task, error) {
	if strings.TrimSpace(payload.Reason) == "" {
		payload.Reason = "manual"
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPriceRegenerate, body), nil
}

// NewContactRequestedTask 创建联系请求任务
func NewContactRequestedTask(payload ContactRequestedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactRequested, body), nil
}
