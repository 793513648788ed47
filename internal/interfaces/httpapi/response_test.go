package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/pickemhq/pickem-api/internal/usecase"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("%w: bad token", usecase.ErrUnauthorized), http.StatusUnauthorized},
		{"locked", fmt.Errorf("%w: week 1", usecase.ErrLocked), http.StatusForbidden},
		{"not found", fmt.Errorf("%w: user", usecase.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: username", usecase.ErrConflict), http.StatusConflict},
		{"dependency unavailable", fmt.Errorf("%w: provider", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}

			var body map[string]any
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			if msg, _ := body["error"].(string); msg == "" {
				t.Fatalf("expected error message in body, got %v", body)
			}
		})
	}
}

func TestWriteError_InternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("select users: connection refused to 10.0.0.5"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["error"].(string); got != "internal server error" {
		t.Fatalf("expected generic message, got %q", got)
	}
}
