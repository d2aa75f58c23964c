package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"SteamShop/pkg/kit"
)

const readyTimeout = 1 * time.Second

type Server struct {
	Store    Store
	Log      *zap.Logger
	Defaults Params
	Metrics  *QueryMetrics
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", s.ready)

	r.Get("/listings", s.list)
	r.Get("/listings/{ref}", s.get)
	r.Get("/filters", s.filters)

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

type listPage struct {
	Count    int       `json:"count"`
	Filtered bool      `json:"filtered"`
	Params   Params    `json:"params"`
	Items    []Listing `json:"items"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	p, err := ParseParams(r.URL.Query(), s.Defaults)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad query", map[string]any{"cause": err.Error()})
		return
	}

	listings, err := s.Store.List(r.Context())
	if err != nil {
		s.log().Error("list listings failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	items := Query(listings, p)
	s.Metrics.observe(p, len(items))

	kit.WriteJSON(w, http.StatusOK, listPage{
		Count:    len(items),
		Filtered: p.Filtered(s.Defaults),
		Params:   p,
		Items:    items,
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	var (
		l   Listing
		ok  bool
		err error
	)
	if id, convErr := strconv.Atoi(ref); convErr == nil {
		l, ok, err = s.Store.Get(r.Context(), id)
	} else {
		l, ok, err = s.Store.GetByCode(r.Context(), ref)
	}

	if err != nil {
		s.log().Error("get listing failed", zap.Error(err), zap.String("ref", ref))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"ref": ref})
		return
	}
	kit.WriteJSON(w, http.StatusOK, l)
}

type categoryFacet struct {
	Name    Category `json:"name"`
	Display string   `json:"display"`
	Count   int      `json:"count"`
}

type filtersResp struct {
	Categories   []categoryFacet `json:"categories"`
	Games        []string        `json:"games"`
	PricePresets []PricePreset   `json:"pricePresets"`
	SortKeys     []SortKey       `json:"sortKeys"`
	Scopes       []SearchScope   `json:"scopes"`
	Defaults     Params          `json:"defaults"`
}

func (s *Server) filters(w http.ResponseWriter, r *http.Request) {
	listings, err := s.Store.List(r.Context())
	if err != nil {
		s.log().Error("list listings failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	counts := CategoryCounts(listings)
	cats := make([]categoryFacet, 0, len(Categories))
	for _, c := range Categories {
		cats = append(cats, categoryFacet{Name: c, Display: DisplayName(c), Count: counts[c]})
	}

	kit.WriteJSON(w, http.StatusOK, filtersResp{
		Categories:   cats,
		Games:        GameTitles(listings),
		PricePresets: PricePresets(s.Defaults.PriceMax),
		SortKeys:     SortKeys,
		Scopes:       Scopes,
		Defaults:     s.Defaults,
	})
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

var errBadParam = errors.New("bad parameter")

// ParseParams reads query string filters on top of defaults. Absent or
// empty values keep the default. An inverted price range is accepted and
// simply matches nothing.
func ParseParams(q url.Values, defaults Params) (Params, error) {
	p := defaults

	if v, ok := lookup(q, "q"); ok {
		p.Search = v
	}
	if v, ok := lookup(q, "scope"); ok {
		sc, valid := ParseScope(v)
		if !valid {
			return Params{}, fmt.Errorf("%w: scope=%q", errBadParam, v)
		}
		p.Scope = sc
	}
	if v, ok := lookup(q, "category"); ok {
		if _, valid := ParseCategory(v); !valid && v != All {
			return Params{}, fmt.Errorf("%w: category=%q", errBadParam, v)
		}
		p.Category = v
	}
	if v, ok := lookup(q, "game"); ok {
		p.Game = v
	}
	if v, ok := lookup(q, "sort"); ok {
		k, valid := ParseSortKey(v)
		if !valid {
			return Params{}, fmt.Errorf("%w: sort=%q", errBadParam, v)
		}
		p.Sort = k
	}

	var err error
	if p.PriceMin, err = intParam(q, "price_min", p.PriceMin); err != nil {
		return Params{}, err
	}
	if p.PriceMax, err = intParam(q, "price_max", p.PriceMax); err != nil {
		return Params{}, err
	}
	return p, nil
}

func lookup(q url.Values, key string) (string, bool) {
	v := q.Get(key)
	if key != "q" {
		v = strings.TrimSpace(v)
	}
	return v, v != ""
}

func intParam(q url.Values, key string, def int) (int, error) {
	v, ok := lookup(q, key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errBadParam, key, v)
	}
	return n, nil
}
