package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/gameresult"
	"github.com/pickemhq/pickem-api/internal/domain/pick"
	"github.com/pickemhq/pickem-api/internal/platform/logging"
	"github.com/pickemhq/pickem-api/internal/platform/resilience"
)

// ExternalGame is a provider-shaped game row before it is mapped onto the
// stored result model. Scores stay nil until the provider reports them.
type ExternalGame struct {
	ExternalID int64
	Week       int
	HomeTeam   string
	AwayTeam   string
	HomeScore  *int
	AwayScore  *int
	KickoffAt  time.Time
}

type ResultsProvider interface {
	FetchGamesByWeek(ctx context.Context, season, week int) ([]ExternalGame, error)
}

type SyncSummary struct {
	Season        int  `json:"season"`
	WeeksSynced   int  `json:"weeksSynced"`
	WeeksFailed   int  `json:"weeksFailed"`
	GamesUpserted int  `json:"gamesUpserted"`
	PicksScored   int  `json:"picksScored"`
	Shared        bool `json:"shared"`
}

type ResultSyncService struct {
	provider   ResultsProvider
	resultRepo gameresult.Repository
	pickRepo   pick.Repository
	season     int
	weeks      int
	logger     *logging.Logger
	group      resilience.SingleFlight
	now        func() time.Time
}

func NewResultSyncService(
	provider ResultsProvider,
	resultRepo gameresult.Repository,
	pickRepo pick.Repository,
	season int,
	weeks int,
	logger *logging.Logger,
) *ResultSyncService {
	if weeks < 1 {
		weeks = 18
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultSyncService{
		provider:   provider,
		resultRepo: resultRepo,
		pickRepo:   pickRepo,
		season:     season,
		weeks:      weeks,
		logger:     logger,
		now:        time.Now,
	}
}

// SyncSeason walks every week of the season, upserts the provider's results
// and scores the affected picks. Overlapping calls collapse into one run;
// followers get the leader's summary with Shared=true.
func (s *ResultSyncService) SyncSeason(ctx context.Context) (SyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultSyncService.SyncSeason")
	defer span.End()

	if s.provider == nil {
		return SyncSummary{}, fmt.Errorf("%w: results provider is not configured", ErrDependencyUnavailable)
	}

	// The run is detached from the trigger's cancellation: a manual caller
	// disconnecting must not abort a run that scheduled followers share.
	runCtx := context.WithoutCancel(ctx)
	value, err, shared := s.group.Do("results-sync", func() (any, error) {
		summary, err := s.syncSeason(runCtx)
		return summary, err
	})
	if err != nil {
		return SyncSummary{}, err
	}

	summary, ok := value.(SyncSummary)
	if !ok {
		return SyncSummary{}, fmt.Errorf("unexpected sync result type %T", value)
	}
	summary.Shared = shared
	return summary, nil
}

func (s *ResultSyncService) syncSeason(ctx context.Context) (SyncSummary, error) {
	summary := SyncSummary{Season: s.season}

	for weekID := 1; weekID <= s.weeks; weekID++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		games, err := s.provider.FetchGamesByWeek(ctx, s.season, weekID)
		if err != nil {
			summary.WeeksFailed++
			s.logger.WarnContext(ctx, "results fetch failed for week",
				"season", s.season,
				"week", weekID,
				"error", err,
			)
			continue
		}

		for _, external := range games {
			upserted, scored, err := s.applyGame(ctx, weekID, external)
			if err != nil {
				s.logger.WarnContext(ctx, "results apply failed for game",
					"season", s.season,
					"week", weekID,
					"game_id", external.ExternalID,
					"error", err,
				)
				continue
			}
			if upserted {
				summary.GamesUpserted++
			}
			summary.PicksScored += scored
		}
		summary.WeeksSynced++
	}

	if summary.WeeksSynced == 0 {
		return summary, fmt.Errorf("%w: results provider failed for all %d weeks", ErrDependencyUnavailable, s.weeks)
	}

	s.logger.InfoContext(ctx, "results sync finished",
		"season", summary.Season,
		"weeks_synced", summary.WeeksSynced,
		"weeks_failed", summary.WeeksFailed,
		"games_upserted", summary.GamesUpserted,
		"picks_scored", summary.PicksScored,
	)
	return summary, nil
}

func (s *ResultSyncService) applyGame(ctx context.Context, weekID int, external ExternalGame) (bool, int, error) {
	if external.ExternalID <= 0 {
		return false, 0, fmt.Errorf("%w: external game id is missing", ErrInvalidInput)
	}

	result := gameresult.Result{
		GameID:    external.ExternalID,
		Week:      weekID,
		HomeTeam:  external.HomeTeam,
		AwayTeam:  external.AwayTeam,
		HomeScore: external.HomeScore,
		AwayScore: external.AwayScore,
		GameDate:  external.KickoffAt,
		UpdatedAt: s.now().UTC(),
	}
	result.WinnerTeam = gameresult.Winner(result.HomeTeam, result.AwayTeam, result.HomeScore, result.AwayScore)

	if err := s.resultRepo.Upsert(ctx, result); err != nil {
		return false, 0, fmt.Errorf("upsert game result: %w", err)
	}

	scored, err := s.scoreGame(ctx, result)
	if err != nil {
		return true, 0, err
	}
	return true, scored, nil
}

// scoreGame marks picks correct or incorrect once both scores are known.
// Ties carry no winner, so every pick on a tied game stays unscored.
func (s *ResultSyncService) scoreGame(ctx context.Context, result gameresult.Result) (int, error) {
	if result.HomeScore == nil || result.AwayScore == nil || result.WinnerTeam == nil {
		return 0, nil
	}

	picks, err := s.pickRepo.ListByGame(ctx, result.GameID)
	if err != nil {
		return 0, fmt.Errorf("list picks by game: %w", err)
	}
	if len(picks) == 0 {
		return 0, nil
	}

	winner := pick.NormalizeTeam(*result.WinnerTeam)
	correct := make([]int64, 0, len(picks))
	incorrect := make([]int64, 0, len(picks))
	for _, p := range picks {
		if pick.NormalizeTeam(p.PickedTeam) == winner {
			correct = append(correct, p.UserID)
		} else {
			incorrect = append(incorrect, p.UserID)
		}
	}

	if err := s.pickRepo.SetCorrectness(ctx, result.GameID, correct, incorrect); err != nil {
		return 0, fmt.Errorf("set pick correctness: %w", err)
	}
	return len(picks), nil
}
