package services

import (
	"errors"
	"fmt"

	"craftroots/internal/domain"
	"craftroots/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrCartEmpty = errors.New("cart empty")
	// ErrInvalidTransition reports a status change outside the declared
	// transition edges, or one raced out by a concurrent update.
	ErrInvalidTransition = errors.New("status transition not allowed")
)

type OrderService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
}

func NewOrderService(carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Orders: orders}
}

// Place turns the session's cart into a pending order, decrementing stock
// per line item. The cart is cleared on success.
func (s *OrderService) Place(sessionID, accountID string) (string, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", err
	}

	items, err := s.Carts.Items(cartID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrCartEmpty
	}

	// pre-check stock
	for _, it := range items {
		p, err := s.Prods.Get(it.ProductID)
		if err != nil {
			return "", err
		}
		if p.Stock < it.Qty {
			return "", fmt.Errorf("%w: %s (need %d, have %d)", repos.ErrInsufficientStock, it.ProductID, it.Qty, p.Stock)
		}
	}

	// decrement
	for _, it := range items {
		if err := s.Prods.DecrementStock(it.ProductID, it.Qty); err != nil {
			return "", err
		}
	}

	lines := make([]domain.OrderItem, 0, len(items))
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Qty)
		lines = append(lines, domain.OrderItem{ProductID: it.ProductID, Qty: it.Qty, Price: it.Price})
	}

	o := &domain.Order{ID: uuid.NewString(), AccountID: accountID, Total: total}
	if err := domain.ValidateOrder(o, lines); err != nil {
		return "", err
	}
	if err := s.Orders.Create(o, lines); err != nil {
		return "", err
	}
	_ = s.Carts.Clear(cartID)
	return o.ID, nil
}

// Transition moves an order along the declared status edges. Direct
// overwrites to arbitrary states are rejected.
func (s *OrderService) Transition(orderID string, to domain.OrderStatus) (domain.Order, error) {
	if !to.Valid() {
		return domain.Order{}, &domain.ValidationError{Field: "status", Reason: "unknown order status"}
	}
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !o.Status.CanTransitionTo(to) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	ok, err := s.Orders.UpdateStatus(orderID, o.Status, to)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		// a concurrent transition won the compare-and-swap
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	o.Status = to
	return o, nil
}

func (s *OrderService) Get(orderID string) (domain.Order, []repos.OrderItemRow, error) {
	return s.Orders.Get(orderID)
}

func (s *OrderService) History(accountID string) ([]domain.Order, error) {
	return s.Orders.ListByAccount(accountID)
}
