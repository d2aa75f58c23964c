package catalog

import "slices"

type PricePreset struct {
	Label string `json:"label"`
	Range Range  `json:"range"`
}

// PricePresets mirrors the storefront's price dropdown. The first entry is
// the full span.
func PricePresets(ceiling int) []PricePreset {
	return []PricePreset{
		{Label: "Любая цена", Range: Range{0, ceiling}},
		{Label: "До 500₽", Range: Range{0, 500}},
		{Label: "500₽ - 1000₽", Range: Range{500, 1000}},
		{Label: "1000₽ - 2000₽", Range: Range{1000, 2000}},
		{Label: "От 2000₽", Range: Range{2000, ceiling}},
	}
}

// GameTitles returns every distinct game across listings, sorted.
func GameTitles(listings []Listing) []string {
	seen := make(map[string]struct{})
	for _, l := range listings {
		for _, g := range l.Games {
			seen[g] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}

func CategoryCounts(listings []Listing) map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		out[c] = 0
	}
	for _, l := range listings {
		out[l.Category]++
	}
	return out
}
