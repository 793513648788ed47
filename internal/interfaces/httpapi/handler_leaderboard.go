package httpapi

import (
	"net/http"
)

func (h *Handler) ListWeekPicksDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekPicksDetail")
	defer span.End()

	week, err := requiredWeekQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.leaderboardService.WeekDetail(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week picks detail failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]weekDetailDTO, 0, len(detail))
	for _, item := range detail {
		items = append(items, weekDetailToDTO(ctx, item))
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListGrandTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGrandTotals")
	defer span.End()

	week, err := optionalWeekQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	totals, err := h.leaderboardService.GrandTotals(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list grand totals failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]grandTotalDTO, 0, len(totals))
	for _, total := range totals {
		items = append(items, grandTotalDTO{Username: total.Username, Total: total.Total})
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

func (h *Handler) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CurrentWeek")
	defer span.End()

	current, err := h.leaderboardService.CurrentWeek(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "current week resolution failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]*int{"currentWeek": current})
}
