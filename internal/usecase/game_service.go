package usecase

import (
	"context"
	"fmt"

	"github.com/pickemhq/pickem-api/internal/domain/game"
	"github.com/pickemhq/pickem-api/internal/domain/gameresult"
)

type GameService struct {
	gameRepo   game.Repository
	resultRepo gameresult.Repository
	maxWeeks   int
}

func NewGameService(gameRepo game.Repository, resultRepo gameresult.Repository, maxWeeks int) *GameService {
	if maxWeeks < 1 {
		maxWeeks = 18
	}
	return &GameService{
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		maxWeeks:   maxWeeks,
	}
}

// ListGames returns the schedule, optionally filtered to one week.
func (s *GameService) ListGames(ctx context.Context, weekID *int) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListGames")
	defer span.End()

	if weekID != nil {
		if err := s.validateWeek(*weekID); err != nil {
			return nil, err
		}
	}

	games, err := s.gameRepo.List(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	return games, nil
}

// Results returns stored results for the requested game ids. Unknown ids are
// silently dropped from the response.
func (s *GameService) Results(ctx context.Context, gameIDs []int64) ([]gameresult.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Results")
	defer span.End()

	if len(gameIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one game id is required", ErrInvalidInput)
	}
	for _, id := range gameIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: game id must be greater than zero", ErrInvalidInput)
		}
	}

	results, err := s.resultRepo.ListByGameIDs(ctx, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("list game results: %w", err)
	}

	return results, nil
}

func (s *GameService) validateWeek(weekID int) error {
	if weekID < 1 || weekID > s.maxWeeks {
		return fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, s.maxWeeks)
	}
	return nil
}
