package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pickemhq/pickem-api/internal/usecase"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	week, err := optionalWeekQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.gameService.ListGames(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(ctx, g))
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListGameResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameResults")
	defer span.End()

	raw := strings.TrimSpace(r.URL.Query().Get("gameIds"))
	if raw == "" {
		writeError(ctx, w, fmt.Errorf("%w: gameIds query parameter is required", usecase.ErrInvalidInput))
		return
	}

	gameIDs := make([]int64, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: gameIds must be comma-separated integers", usecase.ErrInvalidInput))
			return
		}
		gameIDs = append(gameIDs, id)
	}

	results, err := h.gameService.Results(ctx, gameIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "list game results failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameResultDTO, 0, len(results))
	for _, result := range results {
		items = append(items, gameResultToDTO(ctx, result))
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

// optionalWeekQuery parses the week query parameter; nil when absent.
func optionalWeekQuery(_ context.Context, r *http.Request) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return nil, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: week must be an integer", usecase.ErrInvalidInput)
	}
	return &week, nil
}

// requiredWeekQuery parses a mandatory week query parameter.
func requiredWeekQuery(ctx context.Context, r *http.Request) (int, error) {
	week, err := optionalWeekQuery(ctx, r)
	if err != nil {
		return 0, err
	}
	if week == nil {
		return 0, fmt.Errorf("%w: week query parameter is required", usecase.ErrInvalidInput)
	}
	return *week, nil
}

func requiredUserIDQuery(_ context.Context, r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("userId"))
	if raw == "" {
		return 0, fmt.Errorf("%w: userId query parameter is required", usecase.ErrInvalidInput)
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: userId must be an integer", usecase.ErrInvalidInput)
	}
	return userID, nil
}
