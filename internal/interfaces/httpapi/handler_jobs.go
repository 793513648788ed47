package httpapi

import (
	"fmt"
	"net/http"

	"github.com/pickemhq/pickem-api/internal/usecase"
)

type updateGamesResponse struct {
	OK      bool                `json:"ok"`
	Message string              `json:"message"`
	Summary usecase.SyncSummary `json:"summary"`
}

// UpdateGames triggers a full result sync for the configured season. The
// recurring schedule and this endpoint share the same singleflight guard,
// so a manual trigger during a scheduled run attaches to it.
func (h *Handler) UpdateGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGames")
	defer span.End()

	summary, err := h.resultSyncService.SyncSeason(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "manual result sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, updateGamesResponse{
		OK:      true,
		Message: fmt.Sprintf("synced %d weeks, %d games, %d picks scored", summary.WeeksSynced, summary.GamesUpserted, summary.PicksScored),
		Summary: summary,
	})
}

func (h *Handler) RunSyncResultsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncResultsJob")
	defer span.End()

	summary, err := h.resultSyncService.SyncSeason(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "scheduled result sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "scheduled result sync finished",
		"season", summary.Season,
		"weeks_synced", summary.WeeksSynced,
		"weeks_failed", summary.WeeksFailed,
		"games_upserted", summary.GamesUpserted,
		"picks_scored", summary.PicksScored,
		"shared", summary.Shared,
	)

	writeJSON(ctx, w, http.StatusOK, summary)
}
