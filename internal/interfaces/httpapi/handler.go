package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fcdata/internal/domain/fixture"
	"github.com/riskibarqy/fcdata/internal/domain/matchstat"
	"github.com/riskibarqy/fcdata/internal/domain/playerstats"
	"github.com/riskibarqy/fcdata/internal/domain/shot"
	"github.com/riskibarqy/fcdata/internal/domain/squad"
	"github.com/riskibarqy/fcdata/internal/domain/standing"
	"github.com/riskibarqy/fcdata/internal/domain/teamstats"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/platform/logging"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

// DataService is the part of usecase.DataService the API serves.
type DataService interface {
	Matches(ctx context.Context, req usecase.MatchesRequest) (usecase.Dataset[fixture.Match], error)
	PastMatches(ctx context.Context, req usecase.PastMatchesRequest) (usecase.Dataset[fixture.Match], error)
	RoundMatchStatistics(ctx context.Context, req usecase.RoundRequest) (usecase.Dataset[matchstat.Item], error)
	RoundShots(ctx context.Context, req usecase.RoundRequest) (usecase.Dataset[shot.Shot], error)
	Standings(ctx context.Context, req usecase.StandingsRequest) (usecase.Dataset[standing.Row], error)
	SeasonSquads(ctx context.Context, req usecase.SeasonRequest) (usecase.Dataset[squad.Member], error)
	SeasonTeamStatistics(ctx context.Context, req usecase.SeasonRequest) (usecase.Dataset[teamstats.Stat], error)
	SeasonPlayerStatistics(ctx context.Context, req usecase.SeasonRequest) (usecase.Dataset[playerstats.Stat], error)
}

var _ DataService = (*usecase.DataService)(nil)

// Defaults fill fetch options a request leaves out.
type Defaults struct {
	Source  tournament.Source
	Timeout time.Duration
	Export  usecase.ExportFormats
}

type Handler struct {
	dataService DataService
	defaults    Defaults
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(dataService DataService, defaults Defaults, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if defaults.Source == "" {
		defaults.Source = tournament.SourceSofascore
	}
	if defaults.Timeout <= 0 {
		defaults.Timeout = usecase.DefaultElementLoadTimeout
	}

	return &Handler{
		dataService: dataService,
		defaults:    defaults,
		logger:      logger,
		validator:   validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
