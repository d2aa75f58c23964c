package main

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"SteamShop/internal/catalog"
)

func newQueryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter and sort a generated catalog",
		Example: `  catalogctl query --q "Dota 2" --scope game --sort rating-desc --format table
  catalogctl query --category premium --price-min 2000 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.String("q", "", "Search text")
	f.String("scope", string(catalog.ScopeAll), "Search scope: all, code, game")
	f.String("category", catalog.All, "Category: budget, standard, premium, ultimate, all")
	f.String("game", catalog.All, "Exact game title or all")
	f.Int("price-min", 0, "Lowest price, inclusive")
	f.Int("price-max", 0, "Highest price, inclusive (default: price ceiling)")
	f.String("sort", string(catalog.SortPriceAsc), "Sort: price-asc, price-desc, games-desc, rating-desc")
	f.Int("limit", 0, "Print at most this many listings, 0 for all")
	f.String("format", "json", "Output format: json, table")
	return cmd
}

// queryValues maps changed flags onto the same parameters the HTTP API takes.
func queryValues(cmd *cobra.Command) url.Values {
	q := url.Values{}
	f := cmd.Flags()

	for flag, key := range map[string]string{"q": "q", "scope": "scope", "category": "category", "game": "game", "sort": "sort"} {
		if f.Changed(flag) {
			v, _ := f.GetString(flag)
			q.Set(key, v)
		}
	}
	for flag, key := range map[string]string{"price-min": "price_min", "price-max": "price_max"} {
		if f.Changed(flag) {
			v, _ := f.GetInt(flag)
			q.Set(key, strconv.Itoa(v))
		}
	}
	return q
}

func runQuery(cmd *cobra.Command, opts *options) error {
	p, err := catalog.ParseParams(queryValues(cmd), catalog.DefaultParams(opts.priceCeiling))
	if err != nil {
		return err
	}

	listings, err := opts.generate()
	if err != nil {
		return err
	}

	items := catalog.Query(listings, p)
	total := len(items)
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && limit < total {
		items = items[:limit]
	}

	format, _ := cmd.Flags().GetString("format")
	return printListings(cmd.OutOrStdout(), format, items, total)
}
