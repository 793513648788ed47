package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/game"
	"github.com/pickemhq/pickem-api/internal/domain/gameresult"
	"github.com/pickemhq/pickem-api/internal/domain/pick"
	"github.com/pickemhq/pickem-api/internal/domain/user"
	"github.com/pickemhq/pickem-api/internal/domain/week"
)

type stubUserRepository struct {
	byID   map[int64]user.User
	nextID int64
}

func newStubUserRepository(users ...user.User) *stubUserRepository {
	repo := &stubUserRepository{byID: make(map[int64]user.User), nextID: 1}
	for _, u := range users {
		repo.byID[u.ID] = u
		if u.ID >= repo.nextID {
			repo.nextID = u.ID + 1
		}
	}
	return repo
}

func (s *stubUserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	for _, u := range s.byID {
		if u.Username == username {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (s *stubUserRepository) GetByID(_ context.Context, id int64) (user.User, bool, error) {
	u, ok := s.byID[id]
	return u, ok, nil
}

func (s *stubUserRepository) Create(_ context.Context, username string) (user.User, error) {
	for _, u := range s.byID {
		if u.Username == username {
			return user.User{}, user.ErrDuplicateUsername
		}
	}
	created := user.User{ID: s.nextID, Username: username, CreatedAt: time.Now().UTC()}
	s.byID[created.ID] = created
	s.nextID++
	return created, nil
}

type stubWeekRepository struct {
	weeks []week.Week
}

func (s *stubWeekRepository) ListOrdered(_ context.Context) ([]week.Week, error) {
	out := make([]week.Week, len(s.weeks))
	copy(out, s.weeks)
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

type stubGameRepository struct {
	games []game.Game
}

func (s *stubGameRepository) List(_ context.Context, weekID *int) ([]game.Game, error) {
	out := make([]game.Game, 0, len(s.games))
	for _, g := range s.games {
		if weekID != nil && g.WeekID != *weekID {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *stubGameRepository) MinGameDateByWeek(_ context.Context, weekID int) (time.Time, bool, error) {
	var min time.Time
	found := false
	for _, g := range s.games {
		if g.WeekID != weekID {
			continue
		}
		if !found || g.GameDate.Before(min) {
			min = g.GameDate
			found = true
		}
	}
	return min, found, nil
}

type stubResultRepository struct {
	byID map[int64]gameresult.Result
}

func newStubResultRepository() *stubResultRepository {
	return &stubResultRepository{byID: make(map[int64]gameresult.Result)}
}

func (s *stubResultRepository) Upsert(_ context.Context, result gameresult.Result) error {
	s.byID[result.GameID] = result
	return nil
}

func (s *stubResultRepository) ListByGameIDs(_ context.Context, gameIDs []int64) ([]gameresult.Result, error) {
	out := make([]gameresult.Result, 0, len(gameIDs))
	for _, id := range gameIDs {
		if r, ok := s.byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubPickRepository struct {
	picks      []pick.Pick
	status     map[[2]int64]bool
	totals     []user.GrandTotal
	weekDetail map[int][]pick.WeekDetail
}

func newStubPickRepository() *stubPickRepository {
	return &stubPickRepository{
		status:     make(map[[2]int64]bool),
		weekDetail: make(map[int][]pick.WeekDetail),
	}
}

func (s *stubPickRepository) SaveWeekPicks(_ context.Context, userID int64, weekID int, picks []pick.Pick) error {
	for _, p := range picks {
		updated := false
		for idx := range s.picks {
			if s.picks[idx].UserID == userID && s.picks[idx].Week == weekID && s.picks[idx].GameID == p.GameID {
				s.picks[idx].PickedTeam = p.PickedTeam
				updated = true
				break
			}
		}
		if !updated {
			s.picks = append(s.picks, p)
		}
	}
	s.status[[2]int64{userID, int64(weekID)}] = true
	return nil
}

func (s *stubPickRepository) GetWeekStatus(_ context.Context, userID int64, weekID int) (pick.WeekStatus, bool, error) {
	has, ok := s.status[[2]int64{userID, int64(weekID)}]
	if !ok {
		return pick.WeekStatus{}, false, nil
	}
	return pick.WeekStatus{UserID: userID, Week: weekID, HasPicks: has}, true, nil
}

func (s *stubPickRepository) SetWeekStatus(_ context.Context, userID int64, weekID int, hasPicks bool) error {
	s.status[[2]int64{userID, int64(weekID)}] = hasPicks
	return nil
}

func (s *stubPickRepository) ListSaved(_ context.Context, userID int64, weekID *int) ([]pick.SavedPick, error) {
	out := make([]pick.SavedPick, 0, len(s.picks))
	for _, p := range s.picks {
		if p.UserID != userID {
			continue
		}
		if weekID != nil && p.Week != *weekID {
			continue
		}
		out = append(out, pick.SavedPick{
			UserID:     p.UserID,
			Week:       p.Week,
			GameID:     p.GameID,
			PickedTeam: p.PickedTeam,
			IsCorrect:  p.IsCorrect,
		})
	}
	return out, nil
}

func (s *stubPickRepository) ListWeekDetail(_ context.Context, weekID int) ([]pick.WeekDetail, error) {
	out := make([]pick.WeekDetail, len(s.weekDetail[weekID]))
	copy(out, s.weekDetail[weekID])
	return out, nil
}

func (s *stubPickRepository) ListByGame(_ context.Context, gameID int64) ([]pick.Pick, error) {
	out := make([]pick.Pick, 0, len(s.picks))
	for _, p := range s.picks {
		if p.GameID == gameID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPickRepository) SetCorrectness(_ context.Context, gameID int64, correctUserIDs, incorrectUserIDs []int64) error {
	correct := make(map[int64]struct{}, len(correctUserIDs))
	for _, id := range correctUserIDs {
		correct[id] = struct{}{}
	}
	incorrect := make(map[int64]struct{}, len(incorrectUserIDs))
	for _, id := range incorrectUserIDs {
		incorrect[id] = struct{}{}
	}
	for idx := range s.picks {
		if s.picks[idx].GameID != gameID {
			continue
		}
		if _, ok := correct[s.picks[idx].UserID]; ok {
			v := true
			s.picks[idx].IsCorrect = &v
		} else if _, ok := incorrect[s.picks[idx].UserID]; ok {
			v := false
			s.picks[idx].IsCorrect = &v
		}
	}
	return nil
}

func (s *stubPickRepository) GrandTotals(_ context.Context, _ int) ([]user.GrandTotal, error) {
	out := make([]user.GrandTotal, len(s.totals))
	copy(out, s.totals)
	return out, nil
}
