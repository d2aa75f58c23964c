package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureListings() []Listing {
	return []Listing{
		{
			ID: 1, Code: "BU001", Category: CategoryBudget, Price: 450, Rating: 4.5, GamesCount: 2,
			Title:       `Steam account "Стартовый" — 4 games`,
			Games:       []string{"CS:GO", "Dota 2"},
			Description: "2 игры • Уровень 7 • 120 часов наиграно",
		},
		{
			ID: 2, Code: "PR002", Category: CategoryPremium, Price: 2500, Rating: 4.9, GamesCount: 3,
			Title:       `Steam аккаунт "Премиум" — 3 игр`,
			Games:       []string{"Elden Ring", "Sekiro", "Dark Souls 3"},
			Description: "3 игры • Уровень 40 • 900 часов наиграно",
		},
		{
			ID: 3, Code: "ST003", Category: CategoryStandard, Price: 900, Rating: 4.5, GamesCount: 3,
			Title:       `Steam аккаунт "Стандарт" — 3 игр`,
			Games:       []string{"Dota 2", "Rust", "ARK"},
			Description: "3 игры • Уровень 20 • 300 часов наиграно",
		},
		{
			ID: 4, Code: "UL004", Category: CategoryUltimate, Price: 900, Rating: 5.0, GamesCount: 5,
			Title:       `Steam аккаунт "Ультимейт" — 5 игр`,
			Games:       []string{"GTA V", "Minecraft", "Portal 2", "Hades", "Celeste"},
			Description: "5 игр • Уровень 80 • 2000 часов наиграно",
		},
	}
}

func ids(ls []Listing) []int {
	out := make([]int, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func TestQuery_BudgetScenario(t *testing.T) {
	ls := fixtureListings()
	base := DefaultParams(DefaultPriceCeiling)

	p := base
	p.Scope, p.Search = ScopeCode, "BU001"
	assert.Equal(t, []int{1}, ids(Query(ls, p)))

	p = base
	p.Scope, p.Search = ScopeGame, "Dota"
	assert.Contains(t, ids(Query(ls, p)), 1)

	p = base
	p.PriceMin, p.PriceMax = 500, 1000
	assert.NotContains(t, ids(Query(ls, p)), 1)

	p = base
	p.Category = string(CategoryPremium)
	assert.Equal(t, []int{2}, ids(Query(ls, p)))
}

func TestQuery_SearchScopes(t *testing.T) {
	ls := fixtureListings()
	base := DefaultParams(DefaultPriceCeiling)

	cases := []struct {
		name  string
		scope SearchScope
		q     string
		want  []int
	}{
		{"code only matches codes", ScopeCode, "dota", []int{}},
		{"code case insensitive", ScopeCode, "st003", []int{3}},
		{"game partial", ScopeGame, "dota", []int{1, 3}},
		{"game ignores title", ScopeGame, "премиум", []int{}},
		{"all hits title", ScopeAll, "премиум", []int{2}},
		{"all hits description", ScopeAll, "уровень 80", []int{4}},
		{"all hits games", ScopeAll, "sekiro", []int{2}},
		{"unknown scope acts as all", SearchScope("weird"), "sekiro", []int{2}},
		{"whitespace query inactive", ScopeCode, "   ", []int{1, 3, 4, 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			p.Scope, p.Search = tc.scope, tc.q
			assert.Equal(t, tc.want, ids(Query(ls, p)))
		})
	}
}

func TestQuery_SpecificGameExact(t *testing.T) {
	ls := fixtureListings()
	p := DefaultParams(DefaultPriceCeiling)

	p.Game = "Dota 2"
	assert.Equal(t, []int{1, 3}, ids(Query(ls, p)))

	p.Game = "Dota"
	assert.Empty(t, Query(ls, p))
}

func TestQuery_InvertedPriceRangeIsEmpty(t *testing.T) {
	p := DefaultParams(DefaultPriceCeiling)
	p.PriceMin, p.PriceMax = 1000, 500

	assert.NotPanics(t, func() {
		assert.Empty(t, Query(fixtureListings(), p))
	})
}

func TestQuery_PriceBoundsInclusive(t *testing.T) {
	p := DefaultParams(DefaultPriceCeiling)
	p.PriceMin, p.PriceMax = 450, 900
	assert.Equal(t, []int{1, 3, 4}, ids(Query(fixtureListings(), p)))
}

func TestQuery_StableTies(t *testing.T) {
	ls := fixtureListings()
	p := DefaultParams(DefaultPriceCeiling)

	p.Sort = SortPriceAsc
	assert.Equal(t, []int{1, 3, 4, 2}, ids(Query(ls, p)))

	p.Sort = SortPriceDesc
	assert.Equal(t, []int{2, 3, 4, 1}, ids(Query(ls, p)))

	p.Sort = SortGamesDesc
	assert.Equal(t, []int{4, 2, 3, 1}, ids(Query(ls, p)))

	p.Sort = SortRatingDesc
	assert.Equal(t, []int{4, 2, 1, 3}, ids(Query(ls, p)))

	p.Sort = SortKey("unknown")
	assert.Equal(t, []int{1, 2, 3, 4}, ids(Query(ls, p)))
}

func TestQuery_DoesNotReorderInput(t *testing.T) {
	ls := fixtureListings()
	p := DefaultParams(DefaultPriceCeiling)
	p.Sort = SortPriceDesc

	_ = Query(ls, p)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(ls))
}

func TestQuery_Idempotent(t *testing.T) {
	ls := generateSeeded(t, 300, 11)
	p := DefaultParams(DefaultPriceCeiling)
	p.Search, p.Sort = "a", SortGamesDesc

	assert.Equal(t, Query(ls, p), Query(ls, p))
}

func TestQuery_NarrowingNeverGrows(t *testing.T) {
	ls := generateSeeded(t, 400, 12)
	base := DefaultParams(DefaultPriceCeiling)

	prev := len(Query(ls, base))
	for _, hi := range []int{9000, 5000, 3000, 1500, 800, 400, 0} {
		p := base
		p.PriceMax = hi
		n := len(Query(ls, p))
		assert.LessOrEqual(t, n, prev, "price max %d", hi)
		prev = n
	}

	wide := base
	wide.Search = "a"
	narrow := wide
	narrow.Search = "an"
	assert.LessOrEqual(t, len(Query(ls, narrow)), len(Query(ls, wide)))

	withCat := base
	withCat.Category = string(CategoryUltimate)
	assert.LessOrEqual(t, len(Query(ls, withCat)), len(Query(ls, base)))
}

func TestQuery_SortOrders(t *testing.T) {
	ls := generateSeeded(t, 300, 13)

	cases := []struct {
		key SortKey
		ok  func(a, b Listing) bool
	}{
		{SortPriceAsc, func(a, b Listing) bool { return a.Price <= b.Price }},
		{SortPriceDesc, func(a, b Listing) bool { return a.Price >= b.Price }},
		{SortGamesDesc, func(a, b Listing) bool { return a.GamesCount >= b.GamesCount }},
		{SortRatingDesc, func(a, b Listing) bool { return a.Rating >= b.Rating }},
	}

	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			p := DefaultParams(DefaultPriceCeiling)
			p.Sort = tc.key

			out := Query(ls, p)
			for i := 0; i+1 < len(out); i++ {
				require.True(t, tc.ok(out[i], out[i+1]), "position %d", i)
				if !tc.ok(out[i+1], out[i]) {
					continue
				}
				assert.Less(t, out[i].ID, out[i+1].ID, "tie at %d not in generation order", i)
			}
		})
	}
}

func TestQuery_DefaultsReturnEverything(t *testing.T) {
	ls := generateSeeded(t, 250, 14)
	out := Query(ls, DefaultParams(DefaultPriceCeiling))

	require.Len(t, out, len(ls))
	assert.ElementsMatch(t, ids(ls), ids(out))
	for i := 0; i+1 < len(out); i++ {
		assert.LessOrEqual(t, out[i].Price, out[i+1].Price)
	}
}

func TestQuery_FullCatalogByRating(t *testing.T) {
	ls := generateSeeded(t, 732, 15)

	p := DefaultParams(DefaultPriceCeiling)
	p.Sort = SortRatingDesc
	out := Query(ls, p)

	require.Len(t, out, 732)
	for i := 0; i+1 < len(out); i++ {
		assert.GreaterOrEqual(t, out[i].Rating, out[i+1].Rating)
	}
}

func TestParams_Filtered(t *testing.T) {
	def := DefaultParams(10000)
	assert.False(t, def.Filtered(def))

	p := def
	p.Sort, p.Scope = SortRatingDesc, ScopeCode
	assert.False(t, p.Filtered(def), "sort and scope are not filters")

	p = def
	p.Search = "  "
	assert.False(t, p.Filtered(def))

	for _, mutate := range []func(*Params){
		func(p *Params) { p.Search = "cs" },
		func(p *Params) { p.Game = "Rust" },
		func(p *Params) { p.Category = "budget" },
		func(p *Params) { p.PriceMin = 500 },
		func(p *Params) { p.PriceMax = 2000 },
	} {
		p := def
		mutate(&p)
		assert.True(t, p.Filtered(def))
	}
}

func TestFacets(t *testing.T) {
	ls := fixtureListings()

	games := GameTitles(ls)
	assert.Equal(t, "ARK", games[0])
	assert.Len(t, games, 12)
	assert.IsIncreasing(t, games)

	counts := CategoryCounts(ls)
	assert.Equal(t, 1, counts[CategoryBudget])
	assert.Equal(t, 1, counts[CategoryUltimate])
	assert.Len(t, counts, 4)

	presets := PricePresets(20000)
	assert.Equal(t, Range{0, 20000}, presets[0].Range)
	assert.Equal(t, Range{2000, 20000}, presets[len(presets)-1].Range)
}
