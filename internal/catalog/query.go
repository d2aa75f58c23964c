package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// All disables the category and game filters.
const All = "all"

type SearchScope string

const (
	ScopeAll  SearchScope = "all"
	ScopeCode SearchScope = "code"
	ScopeGame SearchScope = "game"
)

var Scopes = []SearchScope{ScopeAll, ScopeCode, ScopeGame}

type SortKey string

const (
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortGamesDesc  SortKey = "games-desc"
	SortRatingDesc SortKey = "rating-desc"
)

var SortKeys = []SortKey{SortPriceAsc, SortPriceDesc, SortGamesDesc, SortRatingDesc}

func ParseScope(s string) (SearchScope, bool) {
	sc := SearchScope(s)
	return sc, slices.Contains(Scopes, sc)
}

func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(s)
	return k, slices.Contains(SortKeys, k)
}

// Params is the full set of user controlled filter and sort inputs.
type Params struct {
	Search   string      `json:"search"`
	Scope    SearchScope `json:"scope"`
	Category string      `json:"category"`
	Game     string      `json:"game"`
	PriceMin int         `json:"priceMin"`
	PriceMax int         `json:"priceMax"`
	Sort     SortKey     `json:"sort"`
}

func DefaultParams(priceCeiling int) Params {
	return Params{
		Scope:    ScopeAll,
		Category: All,
		Game:     All,
		PriceMin: 0,
		PriceMax: priceCeiling,
		Sort:     SortPriceAsc,
	}
}

// Filtered reports whether any filter differs from defaults. Scope and sort
// alone do not count: they change no membership.
func (p Params) Filtered(defaults Params) bool {
	return strings.TrimSpace(p.Search) != "" ||
		p.Game != defaults.Game ||
		p.Category != defaults.Category ||
		p.PriceMin != defaults.PriceMin ||
		p.PriceMax != defaults.PriceMax
}

// Query returns the listings that pass every active filter, ordered by
// p.Sort with ties kept in input order. The input slice is not modified.
func Query(listings []Listing, p Params) []Listing {
	m := newMatcher(p)

	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if m.match(l) {
			out = append(out, l)
		}
	}

	if cmpFn := comparator(p.Sort); cmpFn != nil {
		slices.SortStableFunc(out, cmpFn)
	}
	return out
}

type matcher struct {
	needle   string
	scope    SearchScope
	category string
	game     string
	low      int
	high     int
}

func newMatcher(p Params) matcher {
	return matcher{
		needle:   strings.ToLower(strings.TrimSpace(p.Search)),
		scope:    p.Scope,
		category: p.Category,
		game:     p.Game,
		low:      p.PriceMin,
		high:     p.PriceMax,
	}
}

func (m matcher) match(l Listing) bool {
	if l.Price < m.low || l.Price > m.high {
		return false
	}
	if m.category != "" && m.category != All && string(l.Category) != m.category {
		return false
	}
	if m.game != "" && m.game != All && !l.HasGame(m.game) {
		return false
	}
	return m.matchSearch(l)
}

func (m matcher) matchSearch(l Listing) bool {
	if m.needle == "" {
		return true
	}

	switch m.scope {
	case ScopeCode:
		return m.contains(l.Code)
	case ScopeGame:
		return m.anyGame(l.Games)
	default:
		return m.contains(l.Title) ||
			m.contains(l.Code) ||
			m.contains(l.Description) ||
			m.anyGame(l.Games)
	}
}

func (m matcher) contains(s string) bool {
	return strings.Contains(strings.ToLower(s), m.needle)
}

func (m matcher) anyGame(games []string) bool {
	for _, g := range games {
		if m.contains(g) {
			return true
		}
	}
	return false
}

func comparator(k SortKey) func(a, b Listing) int {
	switch k {
	case SortPriceAsc:
		return func(a, b Listing) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		return func(a, b Listing) int { return cmp.Compare(b.Price, a.Price) }
	case SortGamesDesc:
		return func(a, b Listing) int { return cmp.Compare(b.GamesCount, a.GamesCount) }
	case SortRatingDesc:
		return func(a, b Listing) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return nil
	}
}
