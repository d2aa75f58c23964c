package catalog

import "fmt"

type Category string

const (
	CategoryBudget   Category = "budget"
	CategoryStandard Category = "standard"
	CategoryPremium  Category = "premium"
	CategoryUltimate Category = "ultimate"
)

// Categories lists every category in display order. Generation picks
// templates uniformly from this order.
var Categories = []Category{CategoryBudget, CategoryStandard, CategoryPremium, CategoryUltimate}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// Template bounds every random attribute of a listing in one category.
type Template struct {
	Category        Category
	DisplayName     string
	GamesCount      Range
	Price           Range
	Level           Range
	Hours           Range
	PrivilegesCount Range
}

// Listing is one generated account offer. Listings are never modified after
// generation; share them by value and do not write to the slices.
type Listing struct {
	ID              int      `json:"id"`
	Code            string   `json:"code"`
	Title           string   `json:"title"`
	Games           []string `json:"games"`
	GamesCount      int      `json:"gamesCount"`
	Price           int      `json:"price"`
	Rating          float64  `json:"rating"`
	Reviews         int      `json:"reviews"`
	Privileges      []string `json:"privileges"`
	Region          string   `json:"region"`
	Email           string   `json:"email"`
	Hours           int      `json:"hours"`
	Level           int      `json:"level"`
	Category        Category `json:"category"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Image           string   `json:"image"`
}

func (l Listing) HasGame(title string) bool {
	for _, g := range l.Games {
		if g == title {
			return true
		}
	}
	return false
}

// DisplayName is the storefront label of a category.
func DisplayName(c Category) string {
	for _, t := range defaultTemplates {
		if t.Category == c {
			return t.DisplayName
		}
	}
	return string(c)
}
