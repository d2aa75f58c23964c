package catalogmcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"SteamShop/internal/catalog"
)

const defaultLimit = 20

type tools struct {
	listings []catalog.Listing
	store    *catalog.MemStore
	defaults catalog.Params
}

func (t *tools) register(s *server.MCPServer) {
	searchTool := mcp.NewTool("search_listings",
		mcp.WithDescription("Search and sort Steam account listings"),
		mcp.WithString("q", mcp.Description("Search text")),
		mcp.WithString("scope", mcp.Description("Where to search: all, code, game (default: all)")),
		mcp.WithString("category", mcp.Description("budget, standard, premium, ultimate or all")),
		mcp.WithString("game", mcp.Description("Exact game title or all")),
		mcp.WithNumber("price_min", mcp.Description("Lowest price, inclusive")),
		mcp.WithNumber("price_max", mcp.Description("Highest price, inclusive")),
		mcp.WithString("sort", mcp.Description("price-asc, price-desc, games-desc, rating-desc (default: price-asc)")),
		mcp.WithNumber("limit", mcp.Description("Listings to return (default: 20)")),
	)
	s.AddTool(searchTool, t.searchListings)

	getTool := mcp.NewTool("get_listing",
		mcp.WithDescription("Get one listing by numeric id or code such as PR012"),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description("Listing id or code"),
		),
	)
	s.AddTool(getTool, t.getListing)

	gamesTool := mcp.NewTool("list_games",
		mcp.WithDescription("List game titles, categories and price presets available for filtering"),
	)
	s.AddTool(gamesTool, t.listGames)
}

type searchResult struct {
	Count int               `json:"count"`
	Items []catalog.Listing `json:"items"`
}

func (t *tools) searchListings(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := url.Values{}
	for _, key := range []string{"q", "scope", "category", "game", "sort"} {
		if v := request.GetString(key, ""); v != "" {
			q.Set(key, v)
		}
	}
	for _, key := range []string{"price_min", "price_max"} {
		if v := request.GetInt(key, -1); v >= 0 {
			q.Set(key, strconv.Itoa(v))
		}
	}

	p, err := catalog.ParseParams(q, t.defaults)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	limit := request.GetInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}

	items := catalog.Query(t.listings, p)
	res := searchResult{Count: len(items), Items: items[:min(limit, len(items))]}
	return jsonResult(res)
}

func (t *tools) getListing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := strings.TrimSpace(request.GetString("ref", ""))
	if ref == "" {
		return mcp.NewToolResultError("ref is required"), nil
	}

	var (
		l   catalog.Listing
		ok  bool
		err error
	)
	if id, convErr := strconv.Atoi(ref); convErr == nil {
		l, ok, err = t.store.Get(ctx, id)
	} else {
		l, ok, err = t.store.GetByCode(ctx, ref)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup error: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("listing %q not found", ref)), nil
	}
	return jsonResult(l)
}

type categoryInfo struct {
	Name    catalog.Category `json:"name"`
	Display string           `json:"display"`
	Count   int              `json:"count"`
}

type gamesResult struct {
	Games        []string              `json:"games"`
	Categories   []categoryInfo        `json:"categories"`
	PricePresets []catalog.PricePreset `json:"pricePresets"`
}

func (t *tools) listGames(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts := catalog.CategoryCounts(t.listings)
	cats := make([]categoryInfo, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		cats = append(cats, categoryInfo{Name: c, Display: catalog.DisplayName(c), Count: counts[c]})
	}

	return jsonResult(gamesResult{
		Games:        catalog.GameTitles(t.listings),
		Categories:   cats,
		PricePresets: catalog.PricePresets(t.defaults.PriceMax),
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
