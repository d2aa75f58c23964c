package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"SteamShop/internal/catalog"
)

type listingsOut struct {
	Count int               `json:"count"`
	Items []catalog.Listing `json:"items"`
}

func printListings(w io.Writer, format string, items []catalog.Listing, total int) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listingsOut{Count: total, Items: items})
	case "table":
		return printTable(w, items, total)
	default:
		return fmt.Errorf("unknown format %q (want json or table)", format)
	}
}

func printTable(w io.Writer, items []catalog.Listing, total int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tCATEGORY\tPRICE\tRATING\tGAMES\tLEVEL\tREGION\tTOP GAMES")
	for _, l := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d₽\t%.1f\t%d\t%d\t%s\t%s\n",
			l.Code, l.Category, l.Price, l.Rating, l.GamesCount, l.Level, l.Region, topGames(l.Games, 3))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d listings\n", len(items), total)
	return err
}

func topGames(games []string, n int) string {
	if len(games) <= n {
		return strings.Join(games, ", ")
	}
	return strings.Join(games[:n], ", ") + fmt.Sprintf(" +%d", len(games)-n)
}
