package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/gameresult"
)

type GameResultRepository struct {
	mu   sync.RWMutex
	byID map[int64]gameresult.Result
}

func NewGameResultRepository() *GameResultRepository {
	return &GameResultRepository{byID: make(map[int64]gameresult.Result)}
}

func (r *GameResultRepository) Upsert(_ context.Context, result gameresult.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result.UpdatedAt = time.Now().UTC()
	r.byID[result.GameID] = result

	return nil
}

func (r *GameResultRepository) ListByGameIDs(_ context.Context, gameIDs []int64) ([]gameresult.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameresult.Result, 0, len(gameIDs))
	seen := make(map[int64]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if result, ok := r.byID[id]; ok {
			out = append(out, result)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })

	return out, nil
}
