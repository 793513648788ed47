package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/pick"
	"github.com/pickemhq/pickem-api/internal/domain/user"
)

// PickRepository keeps picks in memory and resolves its joined views through
// the sibling repositories.
type PickRepository struct {
	mu     sync.RWMutex
	picks  []pick.Pick
	status map[statusKey]pick.WeekStatus

	users   *UserRepository
	games   *GameRepository
	results *GameResultRepository
}

type statusKey struct {
	userID int64
	week   int
}

func NewPickRepository(users *UserRepository, games *GameRepository, results *GameResultRepository) *PickRepository {
	return &PickRepository{
		status:  make(map[statusKey]pick.WeekStatus),
		users:   users,
		games:   games,
		results: results,
	}
}

func (r *PickRepository) SaveWeekPicks(ctx context.Context, userID int64, week int, picks []pick.Pick) error {
	games, err := r.games.List(ctx, &week)
	if err != nil {
		return err
	}
	known := make(map[int64]struct{}, len(games))
	for _, g := range games {
		known[g.Code] = struct{}{}
	}
	for _, p := range picks {
		if _, ok := known[p.GameID]; !ok {
			return fmt.Errorf("save picks game_id=%d: %w", p.GameID, pick.ErrUnknownGame)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range picks {
		p.UserID = userID
		p.Week = week
		p.IsCorrect = nil
		existing := -1
		for idx := range r.picks {
			if r.picks[idx].UserID == userID && r.picks[idx].Week == week && r.picks[idx].GameID == p.GameID {
				existing = idx
				break
			}
		}
		if existing >= 0 {
			r.picks[existing].PickedTeam = p.PickedTeam
			continue
		}
		r.picks = append(r.picks, p)
	}
	r.status[statusKey{userID, week}] = pick.WeekStatus{
		UserID:    userID,
		Week:      week,
		HasPicks:  true,
		UpdatedAt: time.Now().UTC(),
	}

	return nil
}

func (r *PickRepository) GetWeekStatus(_ context.Context, userID int64, week int) (pick.WeekStatus, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status, ok := r.status[statusKey{userID, week}]
	return status, ok, nil
}

func (r *PickRepository) SetWeekStatus(_ context.Context, userID int64, week int, hasPicks bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status[statusKey{userID, week}] = pick.WeekStatus{
		UserID:    userID,
		Week:      week,
		HasPicks:  hasPicks,
		UpdatedAt: time.Now().UTC(),
	}

	return nil
}

func (r *PickRepository) ListSaved(ctx context.Context, userID int64, week *int) ([]pick.SavedPick, error) {
	games, err := r.games.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	gamesByCode := make(map[int64]int, len(games))
	for idx, g := range games {
		gamesByCode[g.Code] = idx
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.SavedPick, 0)
	for _, p := range r.picks {
		if p.UserID != userID {
			continue
		}
		if week != nil && p.Week != *week {
			continue
		}
		saved := pick.SavedPick{
			UserID:     p.UserID,
			Week:       p.Week,
			GameID:     p.GameID,
			PickedTeam: p.PickedTeam,
			IsCorrect:  p.IsCorrect,
		}
		if idx, ok := gamesByCode[p.GameID]; ok {
			saved.HomeTeam = games[idx].HomeTeam
			saved.AwayTeam = games[idx].AwayTeam
			saved.GameDate = games[idx].GameDate
		}
		out = append(out, saved)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week > out[j].Week
		}
		if !out[i].GameDate.Equal(out[j].GameDate) {
			return out[i].GameDate.Before(out[j].GameDate)
		}
		return out[i].GameID < out[j].GameID
	})

	return out, nil
}

func (r *PickRepository) ListWeekDetail(ctx context.Context, week int) ([]pick.WeekDetail, error) {
	r.mu.RLock()
	picks := make([]pick.Pick, 0)
	for _, p := range r.picks {
		if p.Week == week {
			picks = append(picks, p)
		}
	}
	r.mu.RUnlock()

	gameIDs := make([]int64, 0, len(picks))
	for _, p := range picks {
		gameIDs = append(gameIDs, p.GameID)
	}
	results, err := r.results.ListByGameIDs(ctx, gameIDs)
	if err != nil {
		return nil, err
	}
	winners := make(map[int64]*string, len(results))
	for _, result := range results {
		winners[result.GameID] = result.WinnerTeam
	}

	out := make([]pick.WeekDetail, 0, len(picks))
	for _, p := range picks {
		detail := pick.WeekDetail{
			UserID:     p.UserID,
			Week:       p.Week,
			GameID:     p.GameID,
			PickedTeam: p.PickedTeam,
			IsCorrect:  p.IsCorrect,
			WinnerTeam: winners[p.GameID],
		}
		if owner, ok, err := r.users.GetByID(ctx, p.UserID); err == nil && ok {
			detail.Username = owner.Username
		}
		out = append(out, detail)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Username != out[j].Username {
			return out[i].Username < out[j].Username
		}
		return out[i].GameID < out[j].GameID
	})

	return out, nil
}

func (r *PickRepository) ListByGame(_ context.Context, gameID int64) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.picks {
		if p.GameID == gameID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}

func (r *PickRepository) SetCorrectness(_ context.Context, gameID int64, correctUserIDs, incorrectUserIDs []int64) error {
	correct := make(map[int64]struct{}, len(correctUserIDs))
	for _, id := range correctUserIDs {
		correct[id] = struct{}{}
	}
	incorrect := make(map[int64]struct{}, len(incorrectUserIDs))
	for _, id := range incorrectUserIDs {
		incorrect[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.picks {
		if r.picks[idx].GameID != gameID {
			continue
		}
		if _, ok := correct[r.picks[idx].UserID]; ok {
			value := true
			r.picks[idx].IsCorrect = &value
			continue
		}
		if _, ok := incorrect[r.picks[idx].UserID]; ok {
			value := false
			r.picks[idx].IsCorrect = &value
		}
	}

	return nil
}

func (r *PickRepository) GrandTotals(_ context.Context, throughWeek int) ([]user.GrandTotal, error) {
	r.users.mu.RLock()
	users := make([]user.User, 0, len(r.users.byID))
	for _, item := range r.users.byID {
		users = append(users, item)
	}
	r.users.mu.RUnlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[int64]int, len(users))
	for _, p := range r.picks {
		if p.Week > throughWeek || p.IsCorrect == nil || !*p.IsCorrect {
			continue
		}
		totals[p.UserID]++
	}

	out := make([]user.GrandTotal, 0, len(users))
	for _, item := range users {
		out = append(out, user.GrandTotal{
			UserID:   item.ID,
			Username: item.Username,
			Total:    totals[item.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Username < out[j].Username
	})

	return out, nil
}
