package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickemhq/pickem-api/internal/domain/week"
)

type WeekRepository struct {
	mu    sync.RWMutex
	weeks []week.Week
}

func NewWeekRepository(weeks []week.Week) *WeekRepository {
	out := make([]week.Week, len(weeks))
	copy(out, weeks)

	return &WeekRepository{weeks: out}
}

func (r *WeekRepository) ListOrdered(_ context.Context) ([]week.Week, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]week.Week, len(r.weeks))
	copy(out, r.weeks)
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartDate.Before(out[j].StartDate)
	})

	return out, nil
}
