package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/pick"
	"github.com/pickemhq/pickem-api/internal/domain/user"
	"github.com/pickemhq/pickem-api/internal/domain/week"
)

type LeaderboardService struct {
	weekRepo week.Repository
	pickRepo pick.Repository
	maxWeeks int
	now      func() time.Time
}

func NewLeaderboardService(weekRepo week.Repository, pickRepo pick.Repository, maxWeeks int) *LeaderboardService {
	if maxWeeks < 1 {
		maxWeeks = 18
	}
	return &LeaderboardService{
		weekRepo: weekRepo,
		pickRepo: pickRepo,
		maxWeeks: maxWeeks,
		now:      time.Now,
	}
}

// CurrentWeek returns the latest week whose start date has passed. Before the
// season starts it returns the first scheduled week; with no weeks loaded it
// returns nil.
func (s *LeaderboardService) CurrentWeek(ctx context.Context) (*int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.CurrentWeek")
	defer span.End()

	weeks, err := s.weekRepo.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	if len(weeks) == 0 {
		return nil, nil
	}

	now := s.now().UTC()
	current := weeks[0].ID
	for _, w := range weeks {
		if w.StartDate.UTC().After(now) {
			break
		}
		current = w.ID
	}
	return &current, nil
}

// GrandTotals ranks all users by their count of correct picks over weeks up
// to and including throughWeek. A nil throughWeek means "through the current
// week".
func (s *LeaderboardService) GrandTotals(ctx context.Context, throughWeek *int) ([]user.GrandTotal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GrandTotals")
	defer span.End()

	var week int
	switch {
	case throughWeek != nil:
		if *throughWeek < 1 || *throughWeek > s.maxWeeks {
			return nil, fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, s.maxWeeks)
		}
		week = *throughWeek
	default:
		currentWeek, err := s.CurrentWeek(ctx)
		if err != nil {
			return nil, err
		}
		if currentWeek != nil {
			week = *currentWeek
		}
	}

	totals, err := s.pickRepo.GrandTotals(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("grand totals: %w", err)
	}
	return totals, nil
}

// WeekDetail returns every user's picks for a week joined with usernames and
// result winners, for the week recap view.
func (s *LeaderboardService) WeekDetail(ctx context.Context, weekID int) ([]pick.WeekDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.WeekDetail")
	defer span.End()

	if weekID < 1 || weekID > s.maxWeeks {
		return nil, fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, s.maxWeeks)
	}

	detail, err := s.pickRepo.ListWeekDetail(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list week detail: %w", err)
	}
	return detail, nil
}
