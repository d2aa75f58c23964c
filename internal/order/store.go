package order

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const StatusPaid = "PAID"

type Item struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Price int64  `json:"price"`
}

type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Items     []Item    `json:"items"`
	Total     int64     `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrCartChanged       = errors.New("cart changed during checkout")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBadAmount         = errors.New("bad amount")
)

// FundsError reports the shortfall of a checkout. It matches
// ErrInsufficientFunds with errors.Is.
type FundsError struct {
	Balance int64
	Total   int64
}

func (e *FundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance=%d total=%d", e.Balance, e.Total)
}

func (e *FundsError) Unwrap() error { return ErrInsufficientFunds }

type Store interface {
	Ping(ctx context.Context) error

	Balance(ctx context.Context, userID string) (int64, error)
	TopUp(ctx context.Context, userID string, amount int64) (int64, error)

	Cart(ctx context.Context, userID string) ([]Item, error)
	AddToCart(ctx context.Context, userID string, it Item) error
	RemoveFromCart(ctx context.Context, userID, code string) error

	// Checkout charges the wallet for the priced cart, empties the cart and
	// records o in one step. prices must cover every code in the cart.
	Checkout(ctx context.Context, o Order, prices map[string]Item) (Order, error)

	Orders(ctx context.Context, userID string) ([]Order, error)
	Get(ctx context.Context, id string) (Order, bool, error)
}
