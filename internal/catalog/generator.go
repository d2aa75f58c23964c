package catalog

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid catalog config")

const (
	ratingMin   = 4.2
	ratingSpan  = 0.8
	reviewsMin  = 20
	reviewsSpan = 200
)

// Rand is the randomness the generator draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewSeededRand returns a reproducible source: equal seeds give equal catalogs.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSystemRand returns a source seeded from the runtime, different per process.
func NewSystemRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// RandFor picks the source for a configured seed; zero means unseeded.
func RandFor(seed uint64) Rand {
	if seed == 0 {
		return NewSystemRand()
	}
	return NewSeededRand(seed)
}

type Config struct {
	Size       int
	Games      []string
	Privileges []string
	Regions    []string
	Templates  []Template
	Image      string

	// PriceCeiling is the default upper bound of price queries. When set,
	// every template price must fit under it. Zero skips the check.
	PriceCeiling int
}

func DefaultConfig() Config {
	return Config{
		Size:       DefaultSize,
		Games:      slices.Clone(defaultGames),
		Privileges: slices.Clone(defaultPrivileges),
		Regions:    slices.Clone(defaultRegions),
		Templates:  slices.Clone(defaultTemplates),
		Image:      defaultImage,

		PriceCeiling: DefaultPriceCeiling,
	}
}

// Validate checks that every template can be satisfied by the master lists.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, c.Size)
	}
	if err := checkDistinct("games", c.Games); err != nil {
		return err
	}
	if err := checkDistinct("privileges", c.Privileges); err != nil {
		return err
	}
	if len(c.Regions) == 0 {
		return fmt.Errorf("%w: regions list is empty", ErrInvalidConfig)
	}
	if len(c.Templates) == 0 {
		return fmt.Errorf("%w: no templates", ErrInvalidConfig)
	}

	seen := make(map[Category]struct{}, len(c.Templates))
	for _, t := range c.Templates {
		if _, ok := ParseCategory(string(t.Category)); !ok {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidConfig, t.Category)
		}
		if _, dup := seen[t.Category]; dup {
			return fmt.Errorf("%w: duplicate template for %q", ErrInvalidConfig, t.Category)
		}
		seen[t.Category] = struct{}{}

		if err := t.validate(len(c.Games), len(c.Privileges)); err != nil {
			return err
		}
		if c.PriceCeiling > 0 && t.Price.Max > c.PriceCeiling {
			return fmt.Errorf("%w: %s prices reach %d, above price ceiling %d",
				ErrInvalidConfig, t.Category, t.Price.Max, c.PriceCeiling)
		}
	}
	return nil
}

func (t Template) validate(games, privileges int) error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"gamesCount", t.GamesCount},
		{"price", t.Price},
		{"level", t.Level},
		{"hours", t.Hours},
		{"privilegesCount", t.PrivilegesCount},
	}
	for _, nr := range ranges {
		if nr.r.Min < 0 || nr.r.Min > nr.r.Max {
			return fmt.Errorf("%w: %s %s range %s", ErrInvalidConfig, t.Category, nr.name, nr.r)
		}
	}

	if t.GamesCount.Max > games {
		return fmt.Errorf("%w: %s needs up to %d games, master list has %d",
			ErrInvalidConfig, t.Category, t.GamesCount.Max, games)
	}
	if t.PrivilegesCount.Max > privileges {
		return fmt.Errorf("%w: %s needs up to %d privileges, master list has %d",
			ErrInvalidConfig, t.Category, t.PrivilegesCount.Max, privileges)
	}
	return nil
}

func checkDistinct(name string, items []string) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it]; dup {
			return fmt.Errorf("%w: duplicate %s entry %q", ErrInvalidConfig, name, it)
		}
		seen[it] = struct{}{}
	}
	return nil
}

type Generator struct {
	cfg Config
	rnd Rand
}

// NewGenerator validates cfg once; a Generator never produces a listing
// that violates its template.
func NewGenerator(cfg Config, rnd Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewSystemRand()
	}
	return &Generator{cfg: cfg, rnd: rnd}, nil
}

// Generate is the one-shot form used at service start.
func Generate(cfg Config, rnd Rand) ([]Listing, error) {
	g, err := NewGenerator(cfg, rnd)
	if err != nil {
		return nil, err
	}
	return g.Generate(), nil
}

func (g *Generator) Generate() []Listing {
	out := make([]Listing, g.cfg.Size)
	for i := range out {
		out[i] = g.listing(i)
	}
	return out
}

func (g *Generator) listing(i int) Listing {
	t := g.cfg.Templates[g.rnd.IntN(len(g.cfg.Templates))]

	gamesCount := g.between(t.GamesCount)
	games := sample(g.rnd, g.cfg.Games, gamesCount)
	price := g.between(t.Price)
	level := g.between(t.Level)
	hours := g.between(t.Hours)
	privileges := sample(g.rnd, g.cfg.Privileges, g.between(t.PrivilegesCount))
	region := g.cfg.Regions[g.rnd.IntN(len(g.cfg.Regions))]
	rating := math.Round((g.rnd.Float64()*ratingSpan+ratingMin)*10) / 10
	reviews := g.rnd.IntN(reviewsSpan) + reviewsMin

	return Listing{
		ID:              i + 1,
		Code:            listingCode(t.Category, i),
		Title:           fmt.Sprintf("Steam аккаунт %q — %d игр", t.DisplayName, gamesCount),
		Games:           games,
		GamesCount:      gamesCount,
		Price:           price,
		Rating:          rating,
		Reviews:         reviews,
		Privileges:      privileges,
		Region:          region,
		Email:           emailIncludedTxt,
		Hours:           hours,
		Level:           level,
		Category:        t.Category,
		Description:     fmt.Sprintf("%d %s • Уровень %d • %d часов наиграно", gamesCount, gamesNoun(gamesCount), level, hours),
		FullDescription: fullDescription(t.DisplayName, gamesCount),
		Image:           g.cfg.Image,
	}
}

func (g *Generator) between(r Range) int {
	return g.rnd.IntN(r.Max-r.Min+1) + r.Min
}

// sample draws k distinct elements of src with a partial Fisher-Yates
// shuffle over a copy. src is left untouched.
func sample(rnd Rand, src []string, k int) []string {
	pool := slices.Clone(src)
	for i := 0; i < k; i++ {
		j := i + rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}

func listingCode(c Category, i int) string {
	return fmt.Sprintf("%s%03d", strings.ToUpper(string(c)[:2]), i+1)
}

func gamesNoun(n int) string {
	switch {
	case n == 1:
		return "игра"
	case n < 5:
		return "игры"
	default:
		return "игр"
	}
}

func fullDescription(display string, gamesCount int) string {
	return fmt.Sprintf("Аккаунт Steam категории %q с %d платными играми. "+
		"После покупки вы получите полный доступ к аккаунту: логин, пароль, email и пароль от email. "+
		"Все игры активированы и готовы к запуску. Аккаунт проверен, без банов и ограничений.",
		display, gamesCount)
}
