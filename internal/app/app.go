package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/pickemhq/pickem-api/external/apisports"
	"github.com/pickemhq/pickem-api/internal/config"
	"github.com/pickemhq/pickem-api/internal/domain/game"
	"github.com/pickemhq/pickem-api/internal/domain/gameresult"
	"github.com/pickemhq/pickem-api/internal/domain/pick"
	"github.com/pickemhq/pickem-api/internal/domain/user"
	"github.com/pickemhq/pickem-api/internal/domain/week"
	"github.com/pickemhq/pickem-api/internal/infrastructure/jobqueue"
	"github.com/pickemhq/pickem-api/internal/infrastructure/repository/memory"
	"github.com/pickemhq/pickem-api/internal/infrastructure/repository/postgres"
	"github.com/pickemhq/pickem-api/internal/interfaces/httpapi"
	"github.com/pickemhq/pickem-api/internal/platform/logging"
	"github.com/pickemhq/pickem-api/internal/platform/resilience"
	"github.com/pickemhq/pickem-api/internal/usecase"
)

// App bundles the wired HTTP server and the background sync scheduler so
// main can run both and shut them down together.
type App struct {
	HTTPServer *http.Server
	Scheduler  *usecase.SyncScheduler

	db *sqlx.DB
}

type repositories struct {
	users   user.Repository
	weeks   week.Repository
	games   game.Repository
	results gameresult.Repository
	picks   pick.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		repos repositories
		db    *sqlx.DB
	)
	if cfg.MemoryMode() {
		logger.Info("running with in-memory repositories", "reason", "DB_URL is empty")
		repos = newMemoryRepositories()
	} else {
		var err error
		db, err = openDatabase(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		repos = newPostgresRepositories(db)
	}

	userSvc := usecase.NewUserService(repos.users)
	gameSvc := usecase.NewGameService(repos.games, repos.results, cfg.ResultsSyncWeeks)
	pickSvc := usecase.NewPickService(repos.users, repos.games, repos.picks, cfg.ResultsSyncWeeks)
	leaderboardSvc := usecase.NewLeaderboardService(repos.weeks, repos.picks, cfg.ResultsSyncWeeks)

	var provider usecase.ResultsProvider
	if cfg.APISportsEnabled {
		provider = apisports.NewClient(apisports.ClientConfig{
			BaseURL:    cfg.APISportsBaseURL,
			Token:      cfg.APISportsToken,
			Timeout:    cfg.APISportsTimeout,
			MaxRetries: cfg.APISportsMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.APISportsCircuitEnabled,
				FailureThreshold: cfg.APISportsCircuitFailureCount,
				OpenTimeout:      cfg.APISportsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.APISportsCircuitHalfOpenMaxReq,
			},
		})
	}

	syncSvc := usecase.NewResultSyncService(
		provider,
		repos.results,
		repos.picks,
		cfg.ResultsSyncSeason,
		cfg.ResultsSyncWeeks,
		logger,
	)

	queue := usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	var scheduler *usecase.SyncScheduler
	if cfg.ResultsSyncEnabled {
		scheduler = usecase.NewSyncScheduler(syncSvc, queue, cfg.QStashEnabled, cfg.ResultsSyncInterval, logger)
	}

	handler := httpapi.NewHandler(userSvc, gameSvc, pickSvc, leaderboardSvc, syncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	if cfg.HTTPAddr == "" {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		HTTPServer: server,
		Scheduler:  scheduler,
		db:         db,
	}, nil
}

// Close releases resources held outside the HTTP server, currently the
// database pool. Safe to call in memory mode.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func newMemoryRepositories() repositories {
	userRepo := memory.NewUserRepository()
	gameRepo := memory.NewGameRepository(memory.SeedGames())
	resultRepo := memory.NewGameResultRepository()

	return repositories{
		users:   userRepo,
		weeks:   memory.NewWeekRepository(memory.SeedWeeks()),
		games:   gameRepo,
		results: resultRepo,
		picks:   memory.NewPickRepository(userRepo, gameRepo, resultRepo),
	}
}

func newPostgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		users:   postgres.NewUserRepository(db),
		weeks:   postgres.NewWeekRepository(db),
		games:   postgres.NewGameRepository(db),
		results: postgres.NewGameResultRepository(db),
		picks:   postgres.NewPickRepository(db),
	}
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
