package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pickemhq/pickem-api/internal/usecase"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,max=50"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeBody(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	found, err := h.userService.Login(ctx, req.Username)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			writeJSON(ctx, w, http.StatusNotFound, loginNotFoundBody{
				Error:     "user not found",
				CanCreate: true,
			})
			return
		}
		h.logger.WarnContext(ctx, "login failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, userToDTO(ctx, found))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateUser")
	defer span.End()

	var req createUserRequest
	if err := h.decodeBody(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.userService.Create(ctx, req.Username)
	if err != nil {
		h.logger.WarnContext(ctx, "create user failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, userToDTO(ctx, created))
}

func (h *Handler) ValidateUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateUser")
	defer span.End()

	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: user id must be an integer", usecase.ErrInvalidInput))
		return
	}

	found, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, userToDTO(ctx, found))
}
