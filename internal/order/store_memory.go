package order

import (
	"context"
	"math"
	"slices"
	"sync"
)

type account struct {
	balance int64
	cart    []Item
	orders  []string
}

type MemStore struct {
	mu           sync.Mutex
	startBalance int64
	accounts     map[string]*account
	orders       map[string]Order
}

func NewMemStore(startBalance int64) *MemStore {
	return &MemStore{
		startBalance: startBalance,
		accounts:     make(map[string]*account),
		orders:       make(map[string]Order),
	}
}

func (s *MemStore) Ping(context.Context) error { return nil }

// acct must be called with s.mu held.
func (s *MemStore) acct(userID string) *account {
	a, ok := s.accounts[userID]
	if !ok {
		a = &account{balance: s.startBalance}
		s.accounts[userID] = a
	}
	return a
}

func (s *MemStore) Balance(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acct(userID).balance, nil
}

func (s *MemStore) TopUp(_ context.Context, userID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.acct(userID)
	if amount <= 0 || a.balance > math.MaxInt64-amount {
		return a.balance, ErrBadAmount
	}
	a.balance += amount
	return a.balance, nil
}

func (s *MemStore) Cart(_ context.Context, userID string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.acct(userID).cart), nil
}

func (s *MemStore) AddToCart(_ context.Context, userID string, it Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.acct(userID)
	if slices.ContainsFunc(a.cart, func(c Item) bool { return c.Code == it.Code }) {
		return nil
	}
	a.cart = append(a.cart, it)
	return nil
}

func (s *MemStore) RemoveFromCart(_ context.Context, userID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.acct(userID)
	a.cart = slices.DeleteFunc(a.cart, func(c Item) bool { return c.Code == code })
	return nil
}

func (s *MemStore) Checkout(_ context.Context, o Order, prices map[string]Item) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.acct(o.UserID)
	if len(a.cart) == 0 {
		return Order{}, ErrCartEmpty
	}

	items := make([]Item, 0, len(a.cart))
	var total int64
	for _, c := range a.cart {
		it, ok := prices[c.Code]
		if !ok {
			return Order{}, ErrCartChanged
		}
		if it.Price < 0 || total > math.MaxInt64-it.Price {
			return Order{}, ErrBadAmount
		}
		total += it.Price
		items = append(items, it)
	}

	if a.balance < total {
		return Order{}, &FundsError{Balance: a.balance, Total: total}
	}

	a.balance -= total
	a.cart = nil

	o.Items = items
	o.Total = total
	o.Status = StatusPaid
	s.orders[o.ID] = o
	a.orders = append(a.orders, o.ID)
	return o, nil
}

func (s *MemStore) Orders(_ context.Context, userID string) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.acct(userID).orders
	out := make([]Order, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, s.orders[ids[i]])
	}
	return out, nil
}

func (s *MemStore) Get(_ context.Context, id string) (Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	return o, ok, nil
}
