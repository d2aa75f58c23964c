package catalog

import (
	"context"
	"slices"
	"strings"
)

type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Listing, error)
	Get(ctx context.Context, id int) (Listing, bool, error)
	GetByCode(ctx context.Context, code string) (Listing, bool, error)
}

// MemStore serves one generated catalog for the life of the process. It is
// written once in NewMemStore and only read afterwards, so it needs no lock.
type MemStore struct {
	listings []Listing
	byCode   map[string]int
}

func NewMemStore(listings []Listing) *MemStore {
	s := &MemStore{
		listings: slices.Clone(listings),
		byCode:   make(map[string]int, len(listings)),
	}
	for i, l := range s.listings {
		s.byCode[strings.ToUpper(l.Code)] = i
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

// List returns the catalog in generation order. The slice is a copy; the
// listings inside share their Games and Privileges backing arrays.
func (s *MemStore) List(ctx context.Context) ([]Listing, error) {
	return slices.Clone(s.listings), nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Listing, bool, error) {
	if id < 1 || id > len(s.listings) || s.listings[id-1].ID != id {
		return s.scanID(id)
	}
	return s.listings[id-1], true, nil
}

func (s *MemStore) scanID(id int) (Listing, bool, error) {
	for _, l := range s.listings {
		if l.ID == id {
			return l, true, nil
		}
	}
	return Listing{}, false, nil
}

func (s *MemStore) GetByCode(ctx context.Context, code string) (Listing, bool, error) {
	i, ok := s.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Listing{}, false, nil
	}
	return s.listings[i], true, nil
}
