package service

import (
	"errors"
	"testing"

	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/repository"
	"github.com/stroyprombeton/internal/seed"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type cartFixture struct {
	services testServices
	first    *models.Option
	second   *models.Option
	hidden   *models.Option
}

func newCartFixture(t *testing.T) cartFixture {
	t.Helper()
	db := setupServiceDB(t)
	b := seed.NewBuilder(db)
	root := b.Category("Лотки", nil, true)
	child := b.Category("Лотки малые", root, true)
	tray := b.Product("Лоток малый", child, true)
	hiddenProduct := b.Product("Лоток снятый", child, false)
	first := b.Option(tray, "Л-1", "100.50")
	second := b.Option(tray, "Л-2", "200")
	hidden := b.Option(hiddenProduct, "Л-3", "300")
	if err := b.Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return cartFixture{services: newTestServices(db), first: first, second: second, hidden: hidden}
}

func TestCartAddAccumulatesAndTotals(t *testing.T) {
	f := newCartFixture(t)
	token := NewCartToken()

	if _, err := f.services.cart.Add(token, f.first.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := f.services.cart.Add(token, f.first.ID, 1); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	cart, err := f.services.cart.Add(token, f.second.ID, 1)
	if err != nil {
		t.Fatalf("add second option failed: %v", err)
	}
	if len(cart.Positions) != 2 {
		t.Fatalf("expected two positions, got %d", len(cart.Positions))
	}
	position := cart.Positions[0]
	if position.OptionID != f.first.ID || position.Quantity != 3 {
		t.Fatalf("expected accumulated quantity 3, got %+v", position)
	}
	if position.Total.String() != "301.50" {
		t.Fatalf("unexpected position total %s", position.Total.String())
	}
	if position.CatalogName != "Лотки" || position.ProductName != "Лоток малый" {
		t.Fatalf("unexpected catalog info %+v", position)
	}
	if cart.TotalQuantity != 4 || cart.TotalPrice.String() != "501.50" {
		t.Fatalf("unexpected totals %d %s", cart.TotalQuantity, cart.TotalPrice.String())
	}
}

func TestCartChangeRemoveFlush(t *testing.T) {
	f := newCartFixture(t)
	token := NewCartToken()
	if _, err := f.services.cart.Add(token, f.first.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := f.services.cart.Add(token, f.second.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart, err := f.services.cart.ChangeCount(token, f.first.ID, 5)
	if err != nil {
		t.Fatalf("change count failed: %v", err)
	}
	if cart.Positions[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Positions[0].Quantity)
	}

	cart, err = f.services.cart.ChangeCount(token, f.first.ID, 0)
	if err != nil {
		t.Fatalf("change count to zero failed: %v", err)
	}
	if len(cart.Positions) != 1 || cart.Positions[0].OptionID != f.second.ID {
		t.Fatalf("expected zero count to remove position, got %+v", cart.Positions)
	}

	cart, err = f.services.cart.Remove(token, f.second.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(cart.Positions) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Positions)
	}

	if _, err := f.services.cart.Add(token, f.first.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cart, err = f.services.cart.Flush(token)
	if err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if len(cart.Positions) != 0 || !cart.TotalPrice.IsZero() {
		t.Fatalf("expected flushed cart, got %+v", cart)
	}
}

func TestCartRejectsInvalidInput(t *testing.T) {
	f := newCartFixture(t)
	token := NewCartToken()

	if _, err := f.services.cart.Get("not-a-token"); !errors.Is(err, ErrCartTokenInvalid) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if _, err := f.services.cart.Add(token, f.first.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if _, err := f.services.cart.Add(token, f.first.ID, 1001); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected quantity cap, got %v", err)
	}
	if _, err := f.services.cart.Add(token, f.hidden.ID, 1); !errors.Is(err, ErrOptionNotAvailable) {
		t.Fatalf("expected inactive option rejected, got %v", err)
	}
	if _, err := f.services.cart.Add(token, 99999, 1); !errors.Is(err, ErrOptionNotAvailable) {
		t.Fatalf("expected missing option rejected, got %v", err)
	}
}

type failingPruneCartRepo struct {
	*repository.GormCartRepository
}

func (r failingPruneCartRepo) DeleteByTokenAndOption(string, uint) error {
	return errors.New("database is locked")
}

func TestCartGetLogsPruneFailure(t *testing.T) {
	f := newCartFixture(t)
	token := NewCartToken()
	cartRepo := repository.NewCartRepository(f.services.db)
	if _, err := f.services.cart.Add(token, f.first.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := cartRepo.Upsert(&models.CartItem{CartToken: token, OptionID: f.hidden.ID, Quantity: 1}); err != nil {
		t.Fatalf("insert unavailable item failed: %v", err)
	}

	core, logs := observer.New(zap.WarnLevel)
	prev := logger.L
	logger.L = zap.New(core)
	t.Cleanup(func() { logger.L = prev })

	carts := NewCartService(failingPruneCartRepo{cartRepo}, repository.NewOptionRepository(f.services.db), f.services.category, config.OrderConfig{MaxQuantity: 1000})
	cart, err := carts.Get(token)
	if err != nil {
		t.Fatalf("prune failure must not fail the cart: %v", err)
	}
	if len(cart.Positions) != 1 || cart.Positions[0].OptionID != f.first.ID {
		t.Fatalf("unavailable item should be hidden, got %+v", cart.Positions)
	}
	entries := logs.FilterMessage("cart_prune_failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one cart_prune_failed entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["option_id"]; got != uint64(f.hidden.ID) {
		t.Fatalf("unexpected option_id field %v", got)
	}
}
