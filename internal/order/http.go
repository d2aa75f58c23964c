package order

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"SteamShop/pkg/kit"
)

const (
	readyTimeout = 1 * time.Second

	DefaultContactURL = "https://t.me/yoursupport"
)

type Server struct {
	Store   Store
	Catalog *CatalogClient
	Log     *zap.Logger

	// ContactURL is the external messaging page buyers are sent to when
	// they prefer to buy through a manager.
	ContactURL string
}

var (
	errBadCode         = errors.New("unknown listing code")
	errCatalogDown     = errors.New("catalog unavailable")
	errCatalogUpstream = errors.New("catalog error")
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", s.ready)

	r.Group(func(pr chi.Router) {
		pr.Use(kit.RequireUserHeaders)

		pr.Get("/wallet", s.balance)
		pr.Post("/wallet/topup", s.topUp)

		pr.Get("/cart", s.cart)
		pr.Post("/cart/items", s.addItem)
		pr.Delete("/cart/items/{code}", s.removeItem)

		pr.Post("/orders", s.checkout)
		pr.Get("/orders", s.list)
		pr.Get("/orders/{id}", s.get)

		pr.Get("/contact/{code}", s.contact)
	})

	return r
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.log().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type walletResp struct {
	Balance int64 `json:"balance"`
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	uid, _ := kit.UserIDFromContext(r.Context())

	b, err := s.Store.Balance(r.Context(), uid)
	if err != nil {
		s.storeError(w, r, err, "balance")
		return
	}
	kit.WriteJSON(w, http.StatusOK, walletResp{Balance: b})
}

type topUpReq struct {
	Amount int64 `json:"amount"`
}

func (s *Server) topUp(w http.ResponseWriter, r *http.Request) {
	uid, _ := kit.UserIDFromContext(r.Context())

	var req topUpReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.Amount <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "amount must be positive", nil)
		return
	}

	b, err := s.Store.TopUp(r.Context(), uid, req.Amount)
	if errors.Is(err, ErrBadAmount) {
		kit.WriteError(w, r, http.StatusBadRequest, "bad amount", nil)
		return
	}
	if err != nil {
		s.storeError(w, r, err, "topup")
		return
	}
	kit.WriteJSON(w, http.StatusOK, walletResp{Balance: b})
}

type cartResp struct {
	Items []Item `json:"items"`
	Total int64  `json:"total"`
}

func (s *Server) cart(w http.ResponseWriter, r *http.Request) {
	uid, _ := kit.UserIDFromContext(r.Context())

	items, err := s.Store.Cart(r.Context(), uid)
	if err != nil {
		s.storeError(w, r, err, "cart")
		return
	}

	resp := cartResp{Items: items}
	if resp.Items == nil {
		resp.Items = []Item{}
	}
	for _, it := range items {
		resp.Total += it.Price
	}
	kit.WriteJSON(w, http.StatusOK, resp)
}

type addItemReq struct {
	Code string `json:"code"`
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	uid, _ := kit.UserIDFromContext(r.Context())

	var req addItemReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	it, err := s.price(r.Context(), req.Code)
	if err != nil {
		s.writeCatalogError(w, r, err, req.Code)
		return
	}

	if err := s.Store.AddToCart(r.Context(), uid, it); err != nil {
		s.storeError(w, r, err, "add to cart")
		return
	}
	s.cart(w, r)
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	uid, _ := kit.UserIDFromContext(r.Context())
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))

	if err := s.Store.RemoveFromCart(r.Context(), uid, code); err != nil {
		s.storeError(w, r, err, "remove from cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	uid, _ := kit.UserIDFromContext(r.Context())

	cart, err := s.Store.Cart(r.Context(), uid)
	if err != nil {
		s.storeError(w, r, err, "cart")
		return
	}
	if len(cart) == 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
		return
	}

	prices := make(map[string]Item, len(cart))
	for _, c := range cart {
		it, err := s.price(r.Context(), c.Code)
		if err != nil {
			s.writeCatalogError(w, r, err, c.Code)
			return
		}
		prices[it.Code] = it
	}

	o, err := s.Store.Checkout(r.Context(), Order{
		ID:        "o_" + uuid.NewString(),
		UserID:    uid,
		CreatedAt: time.Now().UTC(),
	}, prices)

	var funds *FundsError
	switch {
	case err == nil:
	case errors.As(err, &funds):
		kit.WriteError(w, r, http.StatusPaymentRequired, "insufficient funds", map[string]any{
			"balance": funds.Balance,
			"total":   funds.Total,
		})
		return
	case errors.Is(err, ErrCartEmpty):
		kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
		return
	case errors.Is(err, ErrCartChanged):
		kit.WriteError(w, r, http.StatusConflict, "cart changed", nil)
		return
	case errors.Is(err, ErrBadAmount):
		kit.WriteError(w, r, http.StatusBadRequest, "total overflow", nil)
		return
	default:
		s.storeError(w, r, err, "checkout")
		return
	}

	s.log().Info("order paid", zap.String("order_id", o.ID), zap.String("user_id", uid), zap.Int64("total", o.Total))
	kit.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	uid, _ := kit.UserIDFromContext(r.Context())

	orders, err := s.Store.Orders(r.Context(), uid)
	if err != nil {
		s.storeError(w, r, err, "orders")
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"items": orders})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	uid, _ := kit.UserIDFromContext(r.Context())

	id := chi.URLParam(r, "id")
	o, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, r, err, "get order")
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if o.UserID != uid {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, o)
}

func (s *Server) contact(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	it, err := s.price(r.Context(), code)
	if err != nil {
		s.writeCatalogError(w, r, err, code)
		return
	}

	link, err := ContactLink(s.contactURL(), it.Code)
	if err != nil {
		s.log().Error("bad contact url", zap.Error(err), zap.String("contact_url", s.contactURL()))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]string{"url": link})
}

// ContactLink prefills the messaging page with a note naming the listing.
func ContactLink(base, code string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("text", "Здравствуйте! Хочу купить аккаунт "+code)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// price asks the catalog for the current title and price of a code.
func (s *Server) price(ctx context.Context, code string) (Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Item{}, errBadCode
	}

	l, err := s.Catalog.GetListing(ctx, code)
	switch {
	case err == nil:
		return Item{Code: l.Code, Title: l.Title, Price: int64(l.Price)}, nil
	case errors.Is(err, ErrCatalogNotFound):
		return Item{}, errBadCode
	case errors.Is(err, ErrCatalogUnavailable):
		return Item{}, errCatalogDown
	default:
		s.log().Warn("catalog error", zap.Error(err), zap.String("code", code))
		return Item{}, errCatalogUpstream
	}
}

func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error, code string) {
	switch err {
	case errBadCode:
		kit.WriteError(w, r, http.StatusBadRequest, "unknown listing code", map[string]any{"code": code})
	case errCatalogDown:
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog unavailable", nil)
	default:
		kit.WriteError(w, r, http.StatusBadGateway, "catalog error", nil)
	}
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
		return
	}
	s.log().Error("store failed", zap.Error(err), zap.String("op", op))
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func (s *Server) contactURL() string {
	if s.ContactURL == "" {
		return DefaultContactURL
	}
	return s.ContactURL
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
