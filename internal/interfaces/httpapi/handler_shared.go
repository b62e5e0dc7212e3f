package httpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

type fetchOptionsRequest struct {
	Source      string        `validate:"omitempty,oneof=sofascore sofavpn"`
	Timeout     time.Duration `validate:"gte=0"`
	ExportJSON  *bool
	ExportExcel *bool
}

type seasonRequest struct {
	TournamentID int64 `validate:"required,gt=0"`
	SeasonID     int64 `validate:"required,gt=0"`
	Options      fetchOptionsRequest
}

type roundRequest struct {
	TournamentID  int64  `validate:"required,gt=0"`
	SeasonID      int64  `validate:"required,gt=0"`
	Week          int    `validate:"required,gt=0"`
	Type          string `validate:"omitempty,oneof=default uefa"`
	Stage         string
	IncludeScores bool
	Options       fetchOptionsRequest
}

type datasetDTO struct {
	Kind     usecase.DataKind `json:"kind"`
	Count    int              `json:"count"`
	Columns  []string         `json:"columns"`
	Rows     *tabular.Table   `json:"rows"`
	Exported []string         `json:"exported,omitempty"`
}

func datasetToDTO[T tabular.Rower](ctx context.Context, dataset usecase.Dataset[T]) datasetDTO {
	_, span := startSpan(ctx, "httpapi.datasetToDTO")
	defer span.End()

	table := dataset.Table
	if table == nil {
		table = tabular.NewTable()
	}
	return datasetDTO{
		Kind:     dataset.Kind,
		Count:    dataset.Len(),
		Columns:  table.Columns(),
		Rows:     table,
		Exported: dataset.Exported,
	}
}

func (h *Handler) parseSeasonRequest(ctx context.Context, query url.Values) (seasonRequest, error) {
	var req seasonRequest
	var err error
	if req.TournamentID, err = queryInt64(query, "tournament_id"); err != nil {
		return req, err
	}
	if req.SeasonID, err = queryInt64(query, "season_id"); err != nil {
		return req, err
	}
	if req.Options, err = parseFetchOptions(query); err != nil {
		return req, err
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *Handler) parseRoundRequest(ctx context.Context, query url.Values) (roundRequest, error) {
	var req roundRequest
	var err error
	if req.TournamentID, err = queryInt64(query, "tournament_id"); err != nil {
		return req, err
	}
	if req.SeasonID, err = queryInt64(query, "season_id"); err != nil {
		return req, err
	}
	week, err := queryInt64(query, "week")
	if err != nil {
		return req, err
	}
	req.Week = int(week)
	req.Type = strings.ToLower(strings.TrimSpace(query.Get("type")))
	req.Stage = strings.ToLower(strings.TrimSpace(query.Get("stage")))
	if req.IncludeScores, err = queryBool(query, "include_scores"); err != nil {
		return req, err
	}
	if req.Options, err = parseFetchOptions(query); err != nil {
		return req, err
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return req, err
	}
	return req, nil
}

func parseFetchOptions(query url.Values) (fetchOptionsRequest, error) {
	out := fetchOptionsRequest{
		Source: strings.ToLower(strings.TrimSpace(query.Get("source"))),
	}
	if raw := strings.TrimSpace(query.Get("timeout")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return out, fmt.Errorf("%w: invalid timeout %q", usecase.ErrInvalidInput, raw)
		}
		out.Timeout = timeout
	}
	var err error
	if out.ExportJSON, err = queryOptionalBool(query, "export_json"); err != nil {
		return out, err
	}
	if out.ExportExcel, err = queryOptionalBool(query, "export_excel"); err != nil {
		return out, err
	}
	return out, nil
}

func (h *Handler) fetchOptions(req fetchOptionsRequest) usecase.FetchOptions {
	opts := usecase.FetchOptions{
		Source:  h.defaults.Source,
		Timeout: h.defaults.Timeout,
		Export:  h.defaults.Export,
	}
	if req.Source != "" {
		opts.Source = tournament.Source(req.Source)
	}
	if req.Timeout > 0 {
		opts.Timeout = req.Timeout
	}
	if req.ExportJSON != nil {
		opts.Export.JSON = *req.ExportJSON
	}
	if req.ExportExcel != nil {
		opts.Export.Excel = *req.ExportExcel
	}
	return opts
}

func (r seasonRequest) season() tournament.SeasonQuery {
	return tournament.SeasonQuery{TournamentID: r.TournamentID, SeasonID: r.SeasonID}
}

func (r roundRequest) round() (tournament.RoundQuery, error) {
	kind, err := tournament.ParseType(r.Type)
	if err != nil {
		return tournament.RoundQuery{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	stage, err := tournament.ParseStage(r.Stage)
	if err != nil {
		return tournament.RoundQuery{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return tournament.RoundQuery{
		TournamentID: r.TournamentID,
		SeasonID:     r.SeasonID,
		Week:         r.Week,
		Type:         kind,
		Stage:        stage,
	}, nil
}

func queryInt64(query url.Values, key string) (int64, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, key, raw)
	}
	return value, nil
}

func queryBool(query url.Values, key string) (bool, error) {
	value, err := queryOptionalBool(query, key)
	if err != nil || value == nil {
		return false, err
	}
	return *value, nil
}

func queryOptionalBool(query url.Values, key string) (*bool, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, key, raw)
	}
	return &value, nil
}
