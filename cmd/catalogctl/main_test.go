package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SteamShop/internal/catalog"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_JSON(t *testing.T) {
	raw, err := run(t, "generate", "--size", "25", "--seed", "3")
	require.NoError(t, err)

	var got listingsOut
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, 25, got.Count)
	require.Len(t, got.Items, 25)
	assert.Equal(t, 1, got.Items[0].ID)

	again, err := run(t, "generate", "--size", "25", "--seed", "3")
	require.NoError(t, err)
	assert.Equal(t, raw, again)
}

func TestGenerate_EnvDefaults(t *testing.T) {
	t.Setenv("CATALOG_SIZE", "7")
	t.Setenv("CATALOG_SEED", "11")

	raw, err := run(t, "generate")
	require.NoError(t, err)

	var got listingsOut
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, 7, got.Count)

	flagged, err := run(t, "generate", "--size", "3")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(flagged), &got))
	assert.Equal(t, 3, got.Count, "flags override env")
}

func TestGenerate_Table(t *testing.T) {
	raw, err := run(t, "generate", "--size", "4", "--seed", "1", "--format", "table")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(raw), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	assert.Contains(t, raw, "4 of 4 listings")
}

func TestGenerate_Errors(t *testing.T) {
	_, err := run(t, "generate", "--size", "0")
	assert.ErrorIs(t, err, catalog.ErrInvalidConfig)

	_, err = run(t, "generate", "--format", "xml", "--size", "2")
	assert.Error(t, err)
}

func TestGenerate_CeilingBelowTemplatePrices(t *testing.T) {
	t.Setenv("CATALOG_PRICE_CEILING", "3000")

	_, err := run(t, "generate", "--size", "5")
	assert.ErrorIs(t, err, catalog.ErrInvalidConfig)
}

func TestQuery(t *testing.T) {
	raw, err := run(t, "query", "--size", "120", "--seed", "9",
		"--category", "premium", "--price-min", "2000", "--sort", "price-desc", "--limit", "3")
	require.NoError(t, err)

	var got listingsOut
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.LessOrEqual(t, len(got.Items), 3)
	for i, l := range got.Items {
		assert.Equal(t, catalog.CategoryPremium, l.Category)
		assert.GreaterOrEqual(t, l.Price, 2000)
		if i > 0 {
			assert.LessOrEqual(t, l.Price, got.Items[i-1].Price)
		}
	}
	assert.GreaterOrEqual(t, got.Count, len(got.Items))
}

func TestQuery_MatchesLibrary(t *testing.T) {
	cfg := catalog.DefaultConfig()
	cfg.Size = 60
	listings, err := catalog.Generate(cfg, catalog.NewSeededRand(21))
	require.NoError(t, err)

	p := catalog.DefaultParams(catalog.DefaultPriceCeiling)
	p.Search = "dota"
	p.Scope = catalog.ScopeGame
	p.Sort = catalog.SortRatingDesc
	want := catalog.Query(listings, p)

	raw, err := run(t, "query", "--size", "60", "--seed", "21", "--q", "dota", "--scope", "game", "--sort", "rating-desc")
	require.NoError(t, err)

	var got listingsOut
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Equal(t, len(want), got.Count)
	for i := range want {
		assert.Equal(t, want[i].ID, got.Items[i].ID)
	}
}

func TestQuery_BadParams(t *testing.T) {
	_, err := run(t, "query", "--size", "5", "--sort", "cheapest")
	assert.Error(t, err)

	_, err = run(t, "query", "--size", "5", "--scope", "title")
	assert.Error(t, err)
}

func TestTopGames(t *testing.T) {
	assert.Equal(t, "A, B", topGames([]string{"A", "B"}, 3))
	assert.Equal(t, "A, B, C +2", topGames([]string{"A", "B", "C", "D", "E"}, 3))
}
