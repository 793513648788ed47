package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /login", handler.Login)
	mux.HandleFunc("POST /create-user", handler.CreateUser)
	mux.HandleFunc("GET /validate-user/{userID}", handler.ValidateUser)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /games", handler.ListGames)
	mux.HandleFunc("GET /game-results", handler.ListGameResults)
	mux.HandleFunc("POST /update-games", handler.UpdateGames)
}

func registerPickRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /save-picks", handler.SavePicks)
	mux.HandleFunc("GET /picks-status", handler.GetPicksStatus)
	mux.HandleFunc("POST /picks-status", handler.SetPicksStatus)
	mux.HandleFunc("GET /user-saved-picks", handler.ListUserSavedPicks)
}

func registerLeaderboardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /user-saved-picks-week", handler.ListWeekPicksDetail)
	mux.HandleFunc("GET /user-grand-total", handler.ListGrandTotals)
	mux.HandleFunc("GET /current-week", handler.CurrentWeek)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /internal/jobs/sync-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncResultsJob)))
}
