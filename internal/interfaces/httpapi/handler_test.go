package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/pickemhq/pickem-api/internal/domain/game"
	"github.com/pickemhq/pickem-api/internal/domain/week"
	"github.com/pickemhq/pickem-api/internal/infrastructure/repository/memory"
	"github.com/pickemhq/pickem-api/internal/platform/logging"
	"github.com/pickemhq/pickem-api/internal/usecase"
)

// fakeResultsProvider answers week 1 with one finished game and empty slices
// for the rest of the season.
type fakeResultsProvider struct{}

func (fakeResultsProvider) FetchGamesByWeek(_ context.Context, _, weekID int) ([]usecase.ExternalGame, error) {
	if weekID != 1 {
		return nil, nil
	}
	home, away := 31, 17
	return []usecase.ExternalGame{
		{
			ExternalID: 101,
			Week:       1,
			HomeTeam:   "Philadelphia Eagles",
			AwayTeam:   "Dallas Cowboys",
			HomeScore:  &home,
			AwayScore:  &away,
			KickoffAt:  time.Date(3000, time.September, 5, 0, 20, 0, 0, time.UTC),
		},
	}, nil
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	// Far-future schedule keeps every week open for pick submissions.
	weeks := []week.Week{
		{ID: 1, StartDate: time.Date(3000, time.September, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 2, StartDate: time.Date(3000, time.September, 9, 0, 0, 0, 0, time.UTC)},
	}
	games := []game.Game{
		{Code: 101, WeekID: 1, HomeTeam: "Philadelphia Eagles", AwayTeam: "Dallas Cowboys", GameDate: time.Date(3000, time.September, 5, 0, 20, 0, 0, time.UTC)},
		{Code: 102, WeekID: 1, HomeTeam: "Kansas City Chiefs", AwayTeam: "Baltimore Ravens", GameDate: time.Date(3000, time.September, 7, 17, 0, 0, 0, time.UTC)},
		{Code: 201, WeekID: 2, HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins", GameDate: time.Date(3000, time.September, 12, 0, 15, 0, 0, time.UTC)},
	}

	userRepo := memory.NewUserRepository()
	weekRepo := memory.NewWeekRepository(weeks)
	gameRepo := memory.NewGameRepository(games)
	resultRepo := memory.NewGameResultRepository()
	pickRepo := memory.NewPickRepository(userRepo, gameRepo, resultRepo)

	logger := logging.NewNop()
	handler := NewHandler(
		usecase.NewUserService(userRepo),
		usecase.NewGameService(gameRepo, resultRepo, 18),
		usecase.NewPickService(userRepo, gameRepo, pickRepo, 18),
		usecase.NewLeaderboardService(weekRepo, pickRepo, 18),
		usecase.NewResultSyncService(fakeResultsProvider{}, resultRepo, pickRepo, 3000, 2, logger),
		logger,
	)

	return NewRouter(handler, logger, nil, "job-secret")
}

func doJSON(t *testing.T, server http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()

	if err := sonic.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
}

func TestUserEndpoints(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/login", `{"username":"alice"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d body=%s", rec.Code, rec.Body.String())
	}
	var notFound map[string]any
	decodeBody(t, rec, &notFound)
	if canCreate, _ := notFound["canCreate"].(bool); !canCreate {
		t.Fatalf("expected canCreate=true in login miss, got %v", notFound)
	}

	rec = doJSON(t, server, http.MethodPost, "/create-user", `{"username":"alice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	decodeBody(t, rec, &created)
	if created["username"] != "alice" {
		t.Fatalf("unexpected create response: %v", created)
	}

	rec = doJSON(t, server, http.MethodPost, "/create-user", `{"username":"alice"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodPost, "/login", `{"username":"alice"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after create, got %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodGet, "/validate-user/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for existing user, got %d", rec.Code)
	}
	rec = doJSON(t, server, http.MethodGet, "/validate-user/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user id, got %d", rec.Code)
	}
	rec = doJSON(t, server, http.MethodGet, "/validate-user/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer user id, got %d", rec.Code)
	}
}

func TestGamesEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/games", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var all []map[string]any
	decodeBody(t, rec, &all)
	if len(all) != 3 {
		t.Fatalf("expected 3 games, got %d", len(all))
	}

	rec = doJSON(t, server, http.MethodGet, "/games?week=1", "")
	var weekOne []map[string]any
	decodeBody(t, rec, &weekOne)
	if len(weekOne) != 2 {
		t.Fatalf("expected 2 games in week 1, got %d", len(weekOne))
	}

	rec = doJSON(t, server, http.MethodGet, "/games?week=99", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range week, got %d", rec.Code)
	}
}

func TestPickFlow(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/create-user", `{"username":"bob"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user failed: %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodGet, "/picks-status?userId=1&week=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var status map[string]bool
	decodeBody(t, rec, &status)
	if status["hasPicks"] {
		t.Fatalf("expected hasPicks=false before saving")
	}

	rec = doJSON(t, server, http.MethodPost, "/save-picks",
		`{"userId":1,"week":1,"picks":{"101":"Philadelphia Eagles","102":"Baltimore Ravens"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 saving picks, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server, http.MethodGet, "/picks-status?userId=1&week=1", "")
	decodeBody(t, rec, &status)
	if !status["hasPicks"] {
		t.Fatalf("expected hasPicks=true after saving")
	}

	rec = doJSON(t, server, http.MethodGet, "/user-saved-picks?userId=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var saved []map[string]any
	decodeBody(t, rec, &saved)
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved picks, got %d", len(saved))
	}
	if saved[0]["homeTeam"] == "" {
		t.Fatalf("expected game metadata on saved picks, got %v", saved[0])
	}

	// Resubmitting one game leaves the other pick in place.
	rec = doJSON(t, server, http.MethodPost, "/save-picks",
		`{"userId":1,"week":1,"picks":{"101":"Dallas Cowboys"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 resaving pick, got %d body=%s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, server, http.MethodGet, "/user-saved-picks?userId=1", "")
	decodeBody(t, rec, &saved)
	if len(saved) != 2 {
		t.Fatalf("expected partial resave to keep 2 picks, got %d", len(saved))
	}
	teams := map[int64]string{}
	for _, p := range saved {
		teams[int64(p["gameId"].(float64))] = p["pickedTeam"].(string)
	}
	if teams[101] != "Dallas Cowboys" || teams[102] != "Baltimore Ravens" {
		t.Fatalf("unexpected picks after partial resave: %v", teams)
	}

	rec = doJSON(t, server, http.MethodPost, "/save-picks",
		`{"userId":1,"week":1,"picks":{"201":"Buffalo Bills"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for game outside week, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server, http.MethodPost, "/save-picks",
		`{"userId":1,"week":5,"picks":{"101":"Philadelphia Eagles"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for week without games, got %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodPost, "/picks-status", `{"userId":1,"week":2,"hasPicks":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 setting status, got %d", rec.Code)
	}
	var ok map[string]bool
	decodeBody(t, rec, &ok)
	if !ok["ok"] {
		t.Fatalf("expected ok=true, got %v", ok)
	}
}

func TestResultSyncAndLeaderboard(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	doJSON(t, server, http.MethodPost, "/create-user", `{"username":"alice"}`)
	doJSON(t, server, http.MethodPost, "/create-user", `{"username":"bob"}`)

	rec := doJSON(t, server, http.MethodPost, "/save-picks",
		`{"userId":1,"week":1,"picks":{"101":"philadelphia eagles"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save alice picks failed: %d body=%s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, server, http.MethodPost, "/save-picks",
		`{"userId":2,"week":1,"picks":{"101":"Dallas Cowboys"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save bob picks failed: %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodPost, "/update-games", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from update-games, got %d body=%s", rec.Code, rec.Body.String())
	}
	var updated map[string]any
	decodeBody(t, rec, &updated)
	if okFlag, _ := updated["ok"].(bool); !okFlag {
		t.Fatalf("expected ok=true, got %v", updated)
	}

	rec = doJSON(t, server, http.MethodGet, "/game-results?gameIds=101,999", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var results []map[string]any
	decodeBody(t, rec, &results)
	if len(results) != 1 {
		t.Fatalf("expected only the known game id, got %d rows", len(results))
	}
	if winner, _ := results[0]["winnerTeam"].(string); winner != "Philadelphia Eagles" {
		t.Fatalf("unexpected winner: %v", results[0]["winnerTeam"])
	}

	rec = doJSON(t, server, http.MethodGet, "/user-grand-total?week=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var totals []map[string]any
	decodeBody(t, rec, &totals)
	if len(totals) != 2 {
		t.Fatalf("expected one row per user, got %d", len(totals))
	}
	if totals[0]["user"] != "alice" || totals[0]["total"] != float64(1) {
		t.Fatalf("expected alice leading with 1 correct pick, got %v", totals[0])
	}
	if totals[1]["user"] != "bob" || totals[1]["total"] != float64(0) {
		t.Fatalf("expected bob with zero, got %v", totals[1])
	}

	rec = doJSON(t, server, http.MethodGet, "/user-saved-picks-week?week=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var detail []map[string]any
	decodeBody(t, rec, &detail)
	if len(detail) != 2 {
		t.Fatalf("expected 2 detail rows, got %d", len(detail))
	}
	if detail[0]["user"] != "alice" {
		t.Fatalf("expected rows ordered by username, got %v", detail[0])
	}
}

func TestCurrentWeekEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/current-week", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	// All weeks are in the future, so the first week is the current one.
	if got, _ := body["currentWeek"].(float64); got != 1 {
		t.Fatalf("expected currentWeek=1, got %v", body["currentWeek"])
	}
}

func TestInternalSyncRoute(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/internal/jobs/sync-results", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/internal/jobs/sync-results", strings.NewReader(""))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d body=%s", recorder.Code, recorder.Body.String())
	}

	var summary map[string]any
	decodeBody(t, recorder, &summary)
	if got, _ := summary["weeksSynced"].(float64); got != 2 {
		t.Fatalf("expected weeksSynced=2, got %v", summary["weeksSynced"])
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
