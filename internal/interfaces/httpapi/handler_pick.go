package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pickemhq/pickem-api/internal/usecase"
)

type savePicksRequest struct {
	UserID int64             `json:"userId" validate:"required,gt=0"`
	Week   int               `json:"week" validate:"required,gt=0"`
	Picks  map[string]string `json:"picks" validate:"required,min=1"`
}

type setPicksStatusRequest struct {
	UserID   int64 `json:"userId" validate:"required,gt=0"`
	Week     int   `json:"week" validate:"required,gt=0"`
	HasPicks bool  `json:"hasPicks"`
}

func (h *Handler) SavePicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SavePicks")
	defer span.End()

	var req savePicksRequest
	if err := h.decodeBody(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	picks := make([]usecase.PickInput, 0, len(req.Picks))
	for rawGameID, team := range req.Picks {
		gameID, err := strconv.ParseInt(rawGameID, 10, 64)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: pick keys must be game ids, got %q", usecase.ErrInvalidInput, rawGameID))
			return
		}
		picks = append(picks, usecase.PickInput{GameID: gameID, PickedTeam: team})
	}

	if err := h.pickService.SavePicks(ctx, req.UserID, req.Week, picks); err != nil {
		h.logger.WarnContext(ctx, "save picks failed", "user_id", req.UserID, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{"message": "picks saved"})
}

func (h *Handler) GetPicksStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPicksStatus")
	defer span.End()

	userID, err := requiredUserIDQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := requiredWeekQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	hasPicks, err := h.pickService.HasPicks(ctx, userID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get picks status failed", "user_id", userID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]bool{"hasPicks": hasPicks})
}

func (h *Handler) SetPicksStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPicksStatus")
	defer span.End()

	var req setPicksStatusRequest
	if err := h.decodeBody(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.pickService.SetPicksStatus(ctx, req.UserID, req.Week, req.HasPicks); err != nil {
		h.logger.WarnContext(ctx, "set picks status failed", "user_id", req.UserID, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) ListUserSavedPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserSavedPicks")
	defer span.End()

	userID, err := requiredUserIDQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := optionalWeekQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.pickService.ListSaved(ctx, userID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list saved picks failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]savedPickDTO, 0, len(saved))
	for _, item := range saved {
		items = append(items, savedPickToDTO(ctx, item))
	}

	writeJSON(ctx, w, http.StatusOK, items)
}
