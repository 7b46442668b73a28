package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/queue"
	"github.com/stroyprombeton/internal/repository"

	"github.com/go-playground/validator/v10"
)

// PriceRequestActivities 价目表申请表单中可选的业务方向
var PriceRequestActivities = []string{
	"Подрядная строительная организация",
	"Производство строительных материалов",
	"Проектная организация",
	"Заказчик",
	"Оптовая торговля",
}

// BackcallInput 回电请求
type BackcallInput struct {
	Name     string `json:"name" validate:"max=100"`
	Phone    string `json:"phone" validate:"required,min=5,max=100"`
	PageURL  string `json:"url" validate:"max=1000"`
	ClientIP string `json:"-"`
}

// PriceRequestInput 价目表申请
type PriceRequestInput struct {
	Name     string `json:"name" validate:"max=100"`
	Phone    string `json:"phone" validate:"required,min=5,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Company  string `json:"company" validate:"required,max=100"`
	City     string `json:"city" validate:"required,max=100"`
	Activity string `json:"activity" validate:"required,activity"`
	Site     string `json:"site" validate:"omitempty,url,max=255"`
	ClientIP string `json:"-"`
}

// ContactService 客户联系表单服务：保存请求并投递通知任务
type ContactService struct {
	repo        repository.ContactRequestRepository
	queueClient *queue.Client
	validate    *validator.Validate
}

// NewContactService 创建联系表单服务
func NewContactService(repo repository.ContactRequestRepository, queueClient *queue.Client) *ContactService {
	v := newFormValidator()
	_ = v.RegisterValidation("activity", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, activity := range PriceRequestActivities {
			if value == activity {
				return true
			}
		}
		return false
	})
	return &ContactService{repo: repo, queueClient: queueClient, validate: v}
}

// Backcall 保存回电请求
func (s *ContactService) Backcall(input BackcallInput) (*models.ContactRequest, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.PageURL = strings.TrimSpace(input.PageURL)
	if err := validationErrorFrom(s.validate.Struct(input)); err != nil {
		return nil, err
	}
	return s.save(&models.ContactRequest{
		Kind:     models.ContactKindBackcall,
		Name:     input.Name,
		Phone:    input.Phone,
		PageURL:  input.PageURL,
		ClientIP: input.ClientIP,
	})
}

// RequestPrice 保存价目表申请
func (s *ContactService) RequestPrice(input PriceRequestInput) (*models.ContactRequest, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.TrimSpace(input.Email)
	input.Company = strings.TrimSpace(input.Company)
	input.City = strings.TrimSpace(input.City)
	input.Activity = strings.TrimSpace(input.Activity)
	input.Site = strings.TrimSpace(input.Site)
	if err := validationErrorFrom(s.validate.Struct(input)); err != nil {
		return nil, err
	}
	return s.save(&models.ContactRequest{
		Kind:     models.ContactKindPrice,
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Company:  input.Company,
		City:     input.City,
		Activity: input.Activity,
		Site:     input.Site,
		ClientIP: input.ClientIP,
	})
}

func (s *ContactService) save(request *models.ContactRequest) (*models.ContactRequest, error) {
	if err := s.repo.Create(request); err != nil {
		return nil, err
	}
	if err := s.queueClient.EnqueueContactRequested(queue.ContactRequestedPayload{
		RequestID: request.ID,
		Kind:      request.Kind,
	}); err != nil {
		logger.Warnw("contact_enqueue_requested_failed",
			"request_id", request.ID,
			"kind", request.Kind,
			"error", err,
		)
	}
	return request, nil
}

// MarkNotified 标记联系请求已通知，供异步任务调用
func (s *ContactService) MarkNotified(id uint) (*models.ContactRequest, error) {
	request, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, fmt.Errorf("contact request %d: %w", id, ErrNotFound)
	}
	if request.NotifiedAt != nil {
		return request, nil
	}
	now := time.Now()
	if err := s.repo.MarkNotified(id, now); err != nil {
		return nil, err
	}
	request.NotifiedAt = &now
	return request, nil
}
