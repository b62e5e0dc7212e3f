package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/statistics", handler.ListMatchStatistics)
	mux.HandleFunc("GET /v1/matches/shots", handler.ListShots)
	mux.HandleFunc("GET /v1/matches/h2h", handler.ListPastMatches)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/teams/squads", handler.ListSquads)
	mux.HandleFunc("GET /v1/teams/statistics", handler.ListTeamStatistics)
	mux.HandleFunc("GET /v1/teams/top-players", handler.ListTopPlayers)
}
