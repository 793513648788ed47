package memory

import (
	"context"
	"testing"

	"github.com/pickemhq/pickem-api/internal/domain/pick"
)

func newPickFixture(t *testing.T) (*PickRepository, *UserRepository) {
	t.Helper()

	users := NewUserRepository()
	games := NewGameRepository(SeedGames())
	results := NewGameResultRepository()

	return NewPickRepository(users, games, results), users
}

func TestPickRepository_SaveWeekPicksUpserts(t *testing.T) {
	t.Parallel()

	repo, users := newPickFixture(t)
	ctx := context.Background()
	owner, err := users.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	first := []pick.Pick{
		{GameID: 13001, PickedTeam: "Philadelphia Eagles"},
		{GameID: 13002, PickedTeam: "Kansas City Chiefs"},
	}
	if err := repo.SaveWeekPicks(ctx, owner.ID, 1, first); err != nil {
		t.Fatalf("save picks: %v", err)
	}

	// A partial resave updates only the submitted game.
	second := []pick.Pick{{GameID: 13001, PickedTeam: "Dallas Cowboys"}}
	if err := repo.SaveWeekPicks(ctx, owner.ID, 1, second); err != nil {
		t.Fatalf("resave picks: %v", err)
	}

	saved, err := repo.ListSaved(ctx, owner.ID, nil)
	if err != nil {
		t.Fatalf("list saved: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected the pick outside the batch to survive, got %d picks", len(saved))
	}
	if saved[0].GameID != 13001 || saved[0].PickedTeam != "Dallas Cowboys" {
		t.Fatalf("expected resubmitted pick to win: %+v", saved[0])
	}
	if saved[0].HomeTeam != "Philadelphia Eagles" || saved[0].AwayTeam != "Dallas Cowboys" {
		t.Fatalf("expected game metadata on saved pick, got %+v", saved[0])
	}
	if saved[1].GameID != 13002 || saved[1].PickedTeam != "Kansas City Chiefs" {
		t.Fatalf("expected untouched pick to keep its team: %+v", saved[1])
	}

	status, ok, err := repo.GetWeekStatus(ctx, owner.ID, 1)
	if err != nil || !ok {
		t.Fatalf("get week status: ok=%t err=%v", ok, err)
	}
	if !status.HasPicks {
		t.Fatalf("expected has_picks flag after save")
	}
}

func TestPickRepository_SaveWeekPicksUnknownGame(t *testing.T) {
	t.Parallel()

	repo, users := newPickFixture(t)
	ctx := context.Background()
	owner, err := users.Create(ctx, "bob")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	err = repo.SaveWeekPicks(ctx, owner.ID, 1, []pick.Pick{{GameID: 99999, PickedTeam: "Nobody"}})
	if err == nil {
		t.Fatalf("expected error for unknown game")
	}
}

func TestPickRepository_GrandTotalsMonotonicAcrossWeeks(t *testing.T) {
	t.Parallel()

	repo, users := newPickFixture(t)
	ctx := context.Background()
	alice, err := users.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := repo.SaveWeekPicks(ctx, alice.ID, 1, []pick.Pick{{GameID: 13001, PickedTeam: "Philadelphia Eagles"}}); err != nil {
		t.Fatalf("save week 1 pick: %v", err)
	}
	if err := repo.SaveWeekPicks(ctx, alice.ID, 2, []pick.Pick{{GameID: 13004, PickedTeam: "Buffalo Bills"}}); err != nil {
		t.Fatalf("save week 2 pick: %v", err)
	}
	if err := repo.SetCorrectness(ctx, 13001, []int64{alice.ID}, nil); err != nil {
		t.Fatalf("set correctness week 1: %v", err)
	}
	if err := repo.SetCorrectness(ctx, 13004, []int64{alice.ID}, nil); err != nil {
		t.Fatalf("set correctness week 2: %v", err)
	}

	var previous int
	for week := 1; week <= 3; week++ {
		totals, err := repo.GrandTotals(ctx, week)
		if err != nil {
			t.Fatalf("grand totals through week %d: %v", week, err)
		}
		if len(totals) != 1 {
			t.Fatalf("expected one user row, got %d", len(totals))
		}
		if totals[0].Total < previous {
			t.Fatalf("total shrank from %d to %d at week %d", previous, totals[0].Total, week)
		}
		previous = totals[0].Total
	}

	totals, err := repo.GrandTotals(ctx, 2)
	if err != nil {
		t.Fatalf("grand totals through week 2: %v", err)
	}
	if totals[0].Total != 2 {
		t.Fatalf("expected week 2 total to include the week 1 pick, got %d", totals[0].Total)
	}
}

func TestPickRepository_GrandTotalsOrdering(t *testing.T) {
	t.Parallel()

	repo, users := newPickFixture(t)
	ctx := context.Background()

	alice, _ := users.Create(ctx, "alice")
	bob, _ := users.Create(ctx, "bob")
	if _, err := users.Create(ctx, "carol"); err != nil {
		t.Fatalf("create carol: %v", err)
	}

	if err := repo.SaveWeekPicks(ctx, alice.ID, 1, []pick.Pick{
		{GameID: 13001, PickedTeam: "Philadelphia Eagles"},
		{GameID: 13002, PickedTeam: "Kansas City Chiefs"},
	}); err != nil {
		t.Fatalf("save alice picks: %v", err)
	}
	if err := repo.SaveWeekPicks(ctx, bob.ID, 1, []pick.Pick{
		{GameID: 13001, PickedTeam: "Dallas Cowboys"},
	}); err != nil {
		t.Fatalf("save bob picks: %v", err)
	}

	if err := repo.SetCorrectness(ctx, 13001, []int64{alice.ID}, []int64{bob.ID}); err != nil {
		t.Fatalf("set correctness: %v", err)
	}
	if err := repo.SetCorrectness(ctx, 13002, []int64{alice.ID}, nil); err != nil {
		t.Fatalf("set correctness: %v", err)
	}

	totals, err := repo.GrandTotals(ctx, 1)
	if err != nil {
		t.Fatalf("grand totals: %v", err)
	}
	if len(totals) != 3 {
		t.Fatalf("expected a row per user, got %d", len(totals))
	}
	if totals[0].Username != "alice" || totals[0].Total != 2 {
		t.Fatalf("unexpected leader: %+v", totals[0])
	}
	if totals[1].Username != "bob" || totals[1].Total != 0 {
		t.Fatalf("unexpected second row: %+v", totals[1])
	}
	if totals[2].Username != "carol" || totals[2].Total != 0 {
		t.Fatalf("expected zero-pick user present: %+v", totals[2])
	}
}
