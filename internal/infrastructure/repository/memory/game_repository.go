package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	games []game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	out := make([]game.Game, len(games))
	copy(out, games)

	return &GameRepository{games: out}
}

func (r *GameRepository) List(_ context.Context, week *int) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.games))
	for _, item := range r.games {
		if week != nil && item.WeekID != *week {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeekID != out[j].WeekID {
			return out[i].WeekID < out[j].WeekID
		}
		if !out[i].GameDate.Equal(out[j].GameDate) {
			return out[i].GameDate.Before(out[j].GameDate)
		}
		return out[i].Code < out[j].Code
	})

	return out, nil
}

func (r *GameRepository) MinGameDateByWeek(_ context.Context, week int) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var min time.Time
	found := false
	for _, item := range r.games {
		if item.WeekID != week {
			continue
		}
		if !found || item.GameDate.Before(min) {
			min = item.GameDate
			found = true
		}
	}

	return min, found, nil
}
