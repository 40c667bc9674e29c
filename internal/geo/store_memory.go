package geo

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore holds the reference in memory. Tests seed it directly; local
// development seeds it from fixtures at startup.
type InMemoryStore struct {
	mu        sync.RWMutex
	provinces map[string]Province
	lgus      map[string]LGU
	barangays map[string]Barangay
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		provinces: make(map[string]Province),
		lgus:      make(map[string]LGU),
		barangays: make(map[string]Barangay),
	}
}

// Seed loads reference rows. Existing codes are overwritten.
func (s *InMemoryStore) Seed(provinces []Province, lgus []LGU, barangays []Barangay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range provinces {
		s.provinces[p.Code] = p
	}
	for _, l := range lgus {
		s.lgus[l.Code] = l
	}
	for _, b := range barangays {
		s.barangays[b.Code] = b
	}
}

func (s *InMemoryStore) ListProvinces(_ context.Context) ([]Province, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Province, 0, len(s.provinces))
	for _, p := range s.provinces {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *InMemoryStore) ListLGUs(_ context.Context, provinceCode string) ([]LGU, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LGU, 0)
	for _, l := range s.lgus {
		if l.ProvinceCode == provinceCode {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *InMemoryStore) ListBarangays(_ context.Context, lguCode string) ([]Barangay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Barangay, 0)
	for _, b := range s.barangays {
		if b.LGUCode == lguCode {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
