package citizen

import (
	"context"
	"sort"
	"sync"

	"cims/pkg/sentinel"
)

// InMemoryStore keeps citizens in a map guarded by a RWMutex. Used in unit
// tests and local development.
type InMemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	citizens map[int64]Citizen
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, citizens: make(map[int64]Citizen)}
}

func (s *InMemoryStore) Create(_ context.Context, c *Citizen) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextID
		s.nextID++
	} else if _, exists := s.citizens[c.ID]; exists {
		return sentinel.ErrConflict
	} else if c.ID >= s.nextID {
		s.nextID = c.ID + 1
	}
	s.citizens[c.ID] = *c
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, c *Citizen) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.citizens[c.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.citizens[c.ID] = *c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Citizen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.citizens[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemoryStore) List(_ context.Context, q Query) ([]Citizen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Citizen, 0, len(s.citizens))
	for _, c := range s.citizens {
		if q.Matches(c) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []Citizen{}, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *InMemoryStore) Count(_ context.Context, q Query) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.citizens {
		if q.Matches(c) {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.citizens[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.citizens, id)
	return nil
}
