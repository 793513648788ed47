package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/game"
	"github.com/pickemhq/pickem-api/internal/domain/pick"
	"github.com/pickemhq/pickem-api/internal/domain/user"
)

type PickInput struct {
	GameID     int64
	PickedTeam string
}

type PickService struct {
	userRepo user.Repository
	gameRepo game.Repository
	pickRepo pick.Repository
	maxWeeks int
	now      func() time.Time
}

func NewPickService(userRepo user.Repository, gameRepo game.Repository, pickRepo pick.Repository, maxWeeks int) *PickService {
	if maxWeeks < 1 {
		maxWeeks = 18
	}
	return &PickService{
		userRepo: userRepo,
		gameRepo: gameRepo,
		pickRepo: pickRepo,
		maxWeeks: maxWeeks,
		now:      time.Now,
	}
}

// SavePicks upserts the submitted picks for a week, last write wins per
// game; picks not in the batch keep their previous team. Picks close at
// kickoff of the week's earliest game; after that the whole week rejects
// writes.
func (s *PickService) SavePicks(ctx context.Context, userID int64, weekID int, picks []PickInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SavePicks")
	defer span.End()

	if err := s.validateUserWeek(ctx, userID, weekID); err != nil {
		return err
	}
	if len(picks) == 0 {
		return fmt.Errorf("%w: picks are required", ErrInvalidInput)
	}

	if err := s.ensureWeekOpen(ctx, weekID); err != nil {
		return err
	}

	weekGames, err := s.gameRepo.List(ctx, &weekID)
	if err != nil {
		return fmt.Errorf("list week games: %w", err)
	}
	gamesByID := make(map[int64]game.Game, len(weekGames))
	for _, g := range weekGames {
		gamesByID[g.Code] = g
	}

	cleaned := make([]pick.Pick, 0, len(picks))
	seen := make(map[int64]struct{}, len(picks))
	for _, item := range picks {
		if item.GameID <= 0 {
			return fmt.Errorf("%w: game id must be greater than zero", ErrInvalidInput)
		}
		if _, dup := seen[item.GameID]; dup {
			return fmt.Errorf("%w: duplicate pick for game %d", ErrInvalidInput, item.GameID)
		}
		seen[item.GameID] = struct{}{}

		g, ok := gamesByID[item.GameID]
		if !ok {
			return fmt.Errorf("%w: game %d is not part of week %d", ErrInvalidInput, item.GameID, weekID)
		}

		team := strings.TrimSpace(item.PickedTeam)
		if team == "" {
			return fmt.Errorf("%w: picked team is required for game %d", ErrInvalidInput, item.GameID)
		}
		normalized := pick.NormalizeTeam(team)
		if normalized != pick.NormalizeTeam(g.HomeTeam) && normalized != pick.NormalizeTeam(g.AwayTeam) {
			return fmt.Errorf("%w: team %q is not playing in game %d", ErrInvalidInput, team, item.GameID)
		}

		cleaned = append(cleaned, pick.Pick{
			UserID:     userID,
			Week:       weekID,
			GameID:     item.GameID,
			PickedTeam: team,
		})
	}

	if err := s.pickRepo.SaveWeekPicks(ctx, userID, weekID, cleaned); err != nil {
		return fmt.Errorf("save week picks: %w", err)
	}
	return nil
}

func (s *PickService) HasPicks(ctx context.Context, userID int64, weekID int) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.HasPicks")
	defer span.End()

	if err := s.validateUserWeek(ctx, userID, weekID); err != nil {
		return false, err
	}

	status, exists, err := s.pickRepo.GetWeekStatus(ctx, userID, weekID)
	if err != nil {
		return false, fmt.Errorf("get week picks status: %w", err)
	}
	if !exists {
		return false, nil
	}
	return status.HasPicks, nil
}

func (s *PickService) SetPicksStatus(ctx context.Context, userID int64, weekID int, hasPicks bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SetPicksStatus")
	defer span.End()

	if err := s.validateUserWeek(ctx, userID, weekID); err != nil {
		return err
	}

	if err := s.pickRepo.SetWeekStatus(ctx, userID, weekID, hasPicks); err != nil {
		return fmt.Errorf("set week picks status: %w", err)
	}
	return nil
}

// ListSaved returns the user's stored picks joined with game metadata,
// optionally filtered to one week.
func (s *PickService) ListSaved(ctx context.Context, userID int64, weekID *int) ([]pick.SavedPick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListSaved")
	defer span.End()

	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be greater than zero", ErrInvalidInput)
	}
	if weekID != nil && (*weekID < 1 || *weekID > s.maxWeeks) {
		return nil, fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, s.maxWeeks)
	}

	if _, exists, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: user=%d", ErrNotFound, userID)
	}

	saved, err := s.pickRepo.ListSaved(ctx, userID, weekID)
	if err != nil {
		return nil, fmt.Errorf("list saved picks: %w", err)
	}
	return saved, nil
}

func (s *PickService) validateUserWeek(ctx context.Context, userID int64, weekID int) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user id must be greater than zero", ErrInvalidInput)
	}
	if weekID < 1 || weekID > s.maxWeeks {
		return fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, s.maxWeeks)
	}

	if _, exists, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("get user by id: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: user=%d", ErrNotFound, userID)
	}
	return nil
}

func (s *PickService) ensureWeekOpen(ctx context.Context, weekID int) error {
	lockAt, ok, err := s.gameRepo.MinGameDateByWeek(ctx, weekID)
	if err != nil {
		return fmt.Errorf("get week lock time: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: week %d has no scheduled games", ErrInvalidInput, weekID)
	}
	if !s.now().UTC().Before(lockAt.UTC()) {
		return fmt.Errorf("%w: week %d locked at %s", ErrLocked, weekID, lockAt.UTC().Format(time.RFC3339))
	}
	return nil
}
