package service

import (
	"strings"
	"time"

	"github.com/stroyprombeton/internal/catalog"
	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/repository"

	"github.com/google/uuid"
)

// CartPosition 购物车中的一行
type CartPosition struct {
	OptionID    uint         `json:"option_id"`
	ProductID   uint         `json:"product_id"`
	Code        *int         `json:"code,omitempty"`
	Mark        string       `json:"mark"`
	ProductName string       `json:"product_name"`
	CatalogName string       `json:"catalog_name"`
	Price       models.Money `json:"price"`
	Quantity    int          `json:"quantity"`
	Total       models.Money `json:"total"`
}

// Cart 匿名购物车
type Cart struct {
	Token         string         `json:"token"`
	Positions     []CartPosition `json:"positions"`
	TotalQuantity int            `json:"total_quantity"`
	TotalPrice    models.Money   `json:"total_price"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo        repository.CartRepository
	optionRepo      repository.OptionRepository
	categoryService *CategoryService
	maxQuantity     int
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, optionRepo repository.OptionRepository, categoryService *CategoryService, cfg config.OrderConfig) *CartService {
	return &CartService{
		cartRepo:        cartRepo,
		optionRepo:      optionRepo,
		categoryService: categoryService,
		maxQuantity:     positiveOr(cfg.MaxQuantity, 10000),
	}
}

// NewCartToken 生成购物车令牌
func NewCartToken() string {
	return uuid.NewString()
}

// NormalizeCartToken 校验购物车令牌格式
func NormalizeCartToken(raw string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrCartTokenInvalid
	}
	return parsed.String(), nil
}

// Get 获取购物车，已下架的规格会被移出购物车
func (s *CartService) Get(token string) (*Cart, error) {
	token, err := NormalizeCartToken(token)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListByToken(token)
	if err != nil {
		return nil, err
	}
	cart := &Cart{Token: token, Positions: []CartPosition{}, TotalPrice: models.Money{}}
	if len(items) == 0 {
		return cart, nil
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.OptionID)
	}
	options, err := s.optionRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Option, len(options))
	for _, option := range options {
		byID[option.ID] = option
	}
	var tree *catalog.Tree
	if s.categoryService != nil {
		if tree, err = s.categoryService.LoadTree(); err != nil {
			return nil, err
		}
	}

	for _, item := range items {
		option, ok := byID[item.OptionID]
		if !ok {
			if err := s.cartRepo.DeleteByTokenAndOption(token, item.OptionID); err != nil {
				logger.Warnw("cart_prune_failed",
					"option_id", item.OptionID,
					"error", err,
				)
			}
			continue
		}
		position := newCartPosition(option, item.Quantity, tree)
		cart.Positions = append(cart.Positions, position)
		cart.TotalQuantity += position.Quantity
		cart.TotalPrice = cart.TotalPrice.Add(position.Total)
	}
	return cart, nil
}

// Add 加入购物车，已存在时累加数量
func (s *CartService) Add(token string, optionID uint, quantity int) (*Cart, error) {
	token, err := NormalizeCartToken(token)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if err := s.ensureAvailable(optionID); err != nil {
		return nil, err
	}
	existing, err := s.cartRepo.GetByTokenAndOption(token, optionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		quantity += existing.Quantity
	}
	if quantity > s.maxQuantity {
		return nil, ErrInvalidQuantity
	}
	if err := s.cartRepo.Upsert(&models.CartItem{CartToken: token, OptionID: optionID, Quantity: quantity, UpdatedAt: time.Now()}); err != nil {
		return nil, err
	}
	return s.Get(token)
}

// ChangeCount 修改数量，数量不大于 0 时移除
func (s *CartService) ChangeCount(token string, optionID uint, quantity int) (*Cart, error) {
	token, err := NormalizeCartToken(token)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return s.Remove(token, optionID)
	}
	if quantity > s.maxQuantity {
		return nil, ErrInvalidQuantity
	}
	if err := s.ensureAvailable(optionID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Upsert(&models.CartItem{CartToken: token, OptionID: optionID, Quantity: quantity, UpdatedAt: time.Now()}); err != nil {
		return nil, err
	}
	return s.Get(token)
}

// Remove 移除规格
func (s *CartService) Remove(token string, optionID uint) (*Cart, error) {
	token, err := NormalizeCartToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteByTokenAndOption(token, optionID); err != nil {
		return nil, err
	}
	return s.Get(token)
}

// Flush 清空购物车
func (s *CartService) Flush(token string) (*Cart, error) {
	token, err := NormalizeCartToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.ClearByToken(token); err != nil {
		return nil, err
	}
	return s.Get(token)
}

func (s *CartService) ensureAvailable(optionID uint) error {
	option, err := s.optionRepo.GetByID(optionID)
	if err != nil {
		return err
	}
	if option == nil {
		return ErrOptionNotAvailable
	}
	return nil
}

func newCartPosition(option models.Option, quantity int, tree *catalog.Tree) CartPosition {
	position := CartPosition{
		OptionID:  option.ID,
		ProductID: option.ProductID,
		Code:      option.Code,
		Mark:      option.Mark,
		Price:     option.Price,
		Quantity:  quantity,
		Total:     option.Price.MulQuantity(quantity),
	}
	if option.Product != nil {
		position.ProductName = option.Product.Name
		if tree != nil {
			if root, ok := tree.Root(option.Product.CategoryID); ok {
				position.CatalogName = root.Name
			}
		}
	}
	return position
}
