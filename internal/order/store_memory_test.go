package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priced(items ...Item) map[string]Item {
	m := make(map[string]Item, len(items))
	for _, it := range items {
		m[it.Code] = it
	}
	return m
}

func TestMemStore_WalletIsLazy(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(5000)

	b, err := s.Balance(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), b)

	b, err = s.TopUp(ctx, "U1", 250)
	require.NoError(t, err)
	assert.Equal(t, int64(5250), b)

	_, err = s.TopUp(ctx, "U1", 0)
	assert.ErrorIs(t, err, ErrBadAmount)
	_, err = s.TopUp(ctx, "U1", -5)
	assert.ErrorIs(t, err, ErrBadAmount)
}

func TestMemStore_CartDedup(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(0)

	a := Item{Code: "BU001", Title: "a", Price: 100}
	require.NoError(t, s.AddToCart(ctx, "U1", a))
	require.NoError(t, s.AddToCart(ctx, "U1", a))

	cart, err := s.Cart(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, cart, 1)

	require.NoError(t, s.RemoveFromCart(ctx, "U1", "BU001"))
	require.NoError(t, s.RemoveFromCart(ctx, "U1", "BU001"))
	cart, err = s.Cart(ctx, "U1")
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestMemStore_Checkout(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(1000)

	_, err := s.Checkout(ctx, Order{ID: "o_0", UserID: "U1"}, nil)
	assert.ErrorIs(t, err, ErrCartEmpty)

	a := Item{Code: "BU001", Title: "a", Price: 400}
	b := Item{Code: "ST002", Title: "b", Price: 900}
	require.NoError(t, s.AddToCart(ctx, "U1", a))
	require.NoError(t, s.AddToCart(ctx, "U1", b))

	_, err = s.Checkout(ctx, Order{ID: "o_1", UserID: "U1"}, priced(a))
	assert.ErrorIs(t, err, ErrCartChanged)

	_, err = s.Checkout(ctx, Order{ID: "o_1", UserID: "U1"}, priced(a, b))
	var fe *FundsError
	require.True(t, errors.As(err, &fe))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(1000), fe.Balance)
	assert.Equal(t, int64(1300), fe.Total)

	cart, err := s.Cart(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, cart, 2, "failed checkout keeps the cart")

	_, err = s.TopUp(ctx, "U1", 500)
	require.NoError(t, err)

	// the repriced amount wins over the snapshot taken when adding
	a.Price = 300
	o, err := s.Checkout(ctx, Order{ID: "o_1", UserID: "U1", CreatedAt: time.Now()}, priced(a, b))
	require.NoError(t, err)
	assert.Equal(t, int64(1200), o.Total)
	assert.Equal(t, StatusPaid, o.Status)
	assert.Equal(t, []Item{a, b}, o.Items)

	bal, _ := s.Balance(ctx, "U1")
	assert.Equal(t, int64(300), bal)
	cart, _ = s.Cart(ctx, "U1")
	assert.Empty(t, cart)

	got, ok, err := s.Get(ctx, "o_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, o, got)
}

func TestMemStore_OrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(10_000)

	for _, id := range []string{"o_1", "o_2", "o_3"} {
		it := Item{Code: "C" + id, Price: 10}
		require.NoError(t, s.AddToCart(ctx, "U1", it))
		_, err := s.Checkout(ctx, Order{ID: id, UserID: "U1"}, priced(it))
		require.NoError(t, err)
	}

	orders, err := s.Orders(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "o_3", orders[0].ID)
	assert.Equal(t, "o_1", orders[2].ID)

	none, err := s.Orders(ctx, "U2")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemStore_ConcurrentCheckoutChargesOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(1000)
	it := Item{Code: "BU001", Price: 800}
	require.NoError(t, s.AddToCart(ctx, "U1", it))

	var wg sync.WaitGroup
	var mu sync.Mutex
	paid := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Checkout(ctx, Order{ID: "o_" + string(rune('a'+i)), UserID: "U1"}, priced(it)); err == nil {
				mu.Lock()
				paid++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, paid)
	bal, _ := s.Balance(ctx, "U1")
	assert.Equal(t, int64(200), bal)
}
