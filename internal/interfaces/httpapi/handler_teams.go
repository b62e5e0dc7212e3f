package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fcdata/internal/usecase"
)

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	req, err := h.parseSeasonRequest(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dataset, err := h.dataService.Standings(ctx, usecase.StandingsRequest{Season: req.season(), Options: h.fetchOptions(req.Options)})
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "tournament_id", req.TournamentID, "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetToDTO(ctx, dataset))
}

func (h *Handler) ListSquads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSquads")
	defer span.End()

	req, err := h.parseSeasonRequest(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dataset, err := h.dataService.SeasonSquads(ctx, usecase.SeasonRequest{Season: req.season(), Options: h.fetchOptions(req.Options)})
	if err != nil {
		h.logger.WarnContext(ctx, "list squads failed", "tournament_id", req.TournamentID, "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetToDTO(ctx, dataset))
}

func (h *Handler) ListTeamStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamStatistics")
	defer span.End()

	req, err := h.parseSeasonRequest(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dataset, err := h.dataService.SeasonTeamStatistics(ctx, usecase.SeasonRequest{Season: req.season(), Options: h.fetchOptions(req.Options)})
	if err != nil {
		h.logger.WarnContext(ctx, "list team statistics failed", "tournament_id", req.TournamentID, "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetToDTO(ctx, dataset))
}

func (h *Handler) ListTopPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopPlayers")
	defer span.End()

	req, err := h.parseSeasonRequest(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dataset, err := h.dataService.SeasonPlayerStatistics(ctx, usecase.SeasonRequest{Season: req.season(), Options: h.fetchOptions(req.Options)})
	if err != nil {
		h.logger.WarnContext(ctx, "list top players failed", "tournament_id", req.TournamentID, "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetToDTO(ctx, dataset))
}
