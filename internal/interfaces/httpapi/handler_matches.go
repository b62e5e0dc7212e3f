package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fcdata/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	req, err := h.parseRoundRequest(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	round, err := req.round()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dataset, err := h.dataService.Matches(ctx, usecase.MatchesRequest{
		Round:         round,
		IncludeScores: req.IncludeScores,
		Options:       h.fetchOptions(req.Options),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "tournament_id", round.TournamentID, "season_id", round.SeasonID, "week", round.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetToDTO(ctx, dataset))
}

func (h *Handler) ListMatchStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchStatistics")
	defer span.End()

	req, err := h.parseRoundRequest(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	round, err := req.round()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dataset, err := h.dataService.RoundMatchStatistics(ctx, usecase.RoundRequest{Round: round, Options: h.fetchOptions(req.Options)})
	if err != nil {
		h.logger.WarnContext(ctx, "list match statistics failed", "tournament_id", round.TournamentID, "week", round.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetToDTO(ctx, dataset))
}

func (h *Handler) ListShots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListShots")
	defer span.End()

	req, err := h.parseRoundRequest(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	round, err := req.round()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dataset, err := h.dataService.RoundShots(ctx, usecase.RoundRequest{Round: round, Options: h.fetchOptions(req.Options)})
	if err != nil {
		h.logger.WarnContext(ctx, "list shots failed", "tournament_id", round.TournamentID, "week", round.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetToDTO(ctx, dataset))
}

func (h *Handler) ListPastMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPastMatches")
	defer span.End()

	req, err := h.parseRoundRequest(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	round, err := req.round()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dataset, err := h.dataService.PastMatches(ctx, usecase.PastMatchesRequest{Round: round, Options: h.fetchOptions(req.Options)})
	if err != nil {
		h.logger.WarnContext(ctx, "list past matches failed", "tournament_id", round.TournamentID, "week", round.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetToDTO(ctx, dataset))
}
