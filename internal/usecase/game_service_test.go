package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/game"
	"github.com/pickemhq/pickem-api/internal/domain/gameresult"
)

func TestGameService_ListGames(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2025, 9, 4, 14, 0, 0, 0, time.UTC)
	games := &stubGameRepository{games: []game.Game{
		{Code: 101, WeekID: 1, HomeTeam: "Chiefs", AwayTeam: "Ravens", GameDate: kickoff},
		{Code: 201, WeekID: 2, HomeTeam: "Bills", AwayTeam: "Dolphins", GameDate: kickoff.AddDate(0, 0, 7)},
	}}
	service := NewGameService(games, newStubResultRepository(), 18)

	all, err := service.ListGames(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListGames error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 games, got %d", len(all))
	}

	weekOne := 1
	filtered, err := service.ListGames(context.Background(), &weekOne)
	if err != nil {
		t.Fatalf("ListGames filtered error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Code != 101 {
		t.Fatalf("unexpected filtered games: %+v", filtered)
	}

	badWeek := 19
	if _, err := service.ListGames(context.Background(), &badWeek); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for week 19, got %v", err)
	}
}

func TestGameService_Results(t *testing.T) {
	t.Parallel()

	results := newStubResultRepository()
	home := 27
	away := 20
	winner := "Chiefs"
	results.byID[101] = gameresult.Result{GameID: 101, Week: 1, HomeTeam: "Chiefs", AwayTeam: "Ravens", HomeScore: &home, AwayScore: &away, WinnerTeam: &winner}

	service := NewGameService(&stubGameRepository{}, results, 18)

	got, err := service.Results(context.Background(), []int64{101, 999})
	if err != nil {
		t.Fatalf("Results error: %v", err)
	}
	if len(got) != 1 || got[0].GameID != 101 {
		t.Fatalf("expected unknown ids to be dropped, got %+v", got)
	}

	if _, err := service.Results(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty ids, got %v", err)
	}
	if _, err := service.Results(context.Background(), []int64{0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-positive id, got %v", err)
	}
}
