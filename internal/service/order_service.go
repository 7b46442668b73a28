package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/queue"
	"github.com/stroyprombeton/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaceOrderInput 下单表单
type PlaceOrderInput struct {
	CartToken   string `json:"-"`
	Name        string `json:"name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone" validate:"required,min=5,max=64"`
	Company     string `json:"company" validate:"max=255"`
	Address     string `json:"address" validate:"max=1000"`
	Comment     string `json:"comment" validate:"max=5000"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
	ClientIP    string `json:"-"`
}

// OrderService 订单服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	cartRepo       repository.CartRepository
	cartService    *CartService
	captchaService *CaptchaService
	queueClient    *queue.Client
	validate       *validator.Validate
	numberPrefix   string
	maxPositions   int
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, cartService *CartService, captchaService *CaptchaService, queueClient *queue.Client, cfg config.OrderConfig) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		cartService:    cartService,
		captchaService: captchaService,
		queueClient:    queueClient,
		validate:       newFormValidator(),
		numberPrefix:   strings.TrimSpace(cfg.NumberPrefix),
		maxPositions:   positiveOr(cfg.MaxPositions, 200),
	}
}

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Place 根据购物车创建订单：校验表单与验证码，保存订单快照并清空购物车
func (s *OrderService) Place(input PlaceOrderInput) (*models.Order, error) {
	input = trimOrderInput(input)
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if err := s.captchaService.Verify(input.CaptchaID, input.CaptchaCode); err != nil {
		return nil, err
	}

	cart, err := s.cartService.Get(input.CartToken)
	if err != nil {
		return nil, err
	}
	if len(cart.Positions) == 0 {
		return nil, ErrCartEmpty
	}
	if len(cart.Positions) > s.maxPositions {
		return nil, ErrTooManyPositions
	}

	order := &models.Order{
		OrderNo:    s.generateOrderNo(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Company:    input.Company,
		Address:    input.Address,
		Comment:    input.Comment,
		Status:     models.OrderStatusNew,
		TotalPrice: cart.TotalPrice,
		ClientIP:   input.ClientIP,
	}
	positions := make([]models.OrderPosition, 0, len(cart.Positions))
	for _, position := range cart.Positions {
		positions = append(positions, models.OrderPosition{
			OptionID:    position.OptionID,
			Code:        position.Code,
			Mark:        position.Mark,
			ProductName: position.ProductName,
			CatalogName: position.CatalogName,
			Price:       position.Price,
			Quantity:    position.Quantity,
			Total:       position.Total,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order, positions); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByToken(cart.Token)
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderPlaced(queue.OrderPlacedPayload{
		OrderID: order.ID,
		OrderNo: order.OrderNo,
	}); err != nil {
		logger.Warnw("order_enqueue_placed_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
	return order, nil
}

// MarkNotified 标记订单已通知，供异步任务调用
func (s *OrderService) MarkNotified(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if order.NotifiedAt != nil {
		return order, nil
	}
	now := time.Now()
	if err := s.orderRepo.MarkNotified(orderID, now); err != nil {
		return nil, err
	}
	order.NotifiedAt = &now
	order.Status = models.OrderStatusNotified
	return order, nil
}

func (s *OrderService) validateInput(input PlaceOrderInput) error {
	if strings.TrimSpace(input.CartToken) == "" {
		return ErrCartTokenInvalid
	}
	return validationErrorFrom(s.validate.Struct(input))
}

// validationErrorFrom 将 validator 的字段错误转换为 ValidationError
func validationErrorFrom(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return &ValidationError{Fields: fields}
}

func (s *OrderService) generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s%s%s", s.numberPrefix, now, randPart)
}

func trimOrderInput(input PlaceOrderInput) PlaceOrderInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Company = strings.TrimSpace(input.Company)
	input.Address = strings.TrimSpace(input.Address)
	input.Comment = strings.TrimSpace(input.Comment)
	return input
}
