package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"schoolapi/models"
)

// coordinateLimit is the largest magnitude a DECIMAL(10,6) column holds.
var coordinateLimit = decimal.RequireFromString("9999.999999")

// MemoryStore keeps schools in process. Coordinates are rounded the way the
// MySQL column rounds them.
type MemoryStore struct {
	mu      sync.RWMutex
	schools []models.School
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) InsertSchool(_ context.Context, in models.NewSchool) (int64, error) {
	lat := models.NewCoordinate(in.Latitude)
	lon := models.NewCoordinate(in.Longitude)
	if lat.Abs().GreaterThan(coordinateLimit) {
		return 0, fmt.Errorf("out of range value for column 'latitude'")
	}
	if lon.Abs().GreaterThan(coordinateLimit) {
		return 0, fmt.Errorf("out of range value for column 'longitude'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.schools = append(s.schools, models.School{
		ID:        id,
		Name:      in.Name,
		Address:   in.Address,
		Latitude:  lat,
		Longitude: lon,
	})
	return id, nil
}

func (s *MemoryStore) ListSchools(_ context.Context) ([]models.School, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.School, len(s.schools))
	copy(out, s.schools)
	return out, nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.schools)
}
