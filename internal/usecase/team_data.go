package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fcdata/internal/domain/playerstats"
	"github.com/riskibarqy/fcdata/internal/domain/squad"
	"github.com/riskibarqy/fcdata/internal/domain/standing"
	"github.com/riskibarqy/fcdata/internal/domain/teamstats"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
	"go.opentelemetry.io/otel/attribute"
)

type StandingsRequest struct {
	Season  tournament.SeasonQuery
	Options FetchOptions
}

// TeamRequest drives the per-team loops. Only standings rows in the Total
// category are used, so a full Standings result can be passed as is.
type TeamRequest struct {
	Standings []standing.Row
	Options   FetchOptions
}

type TeamSeasonRequest struct {
	Season    tournament.SeasonQuery
	Standings []standing.Row
	Options   FetchOptions
}

// Standings fetches the total, home and away tables. A failed category
// aborts the call.
func (s *DataService) Standings(ctx context.Context, req StandingsRequest) (Dataset[standing.Row], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.Standings",
		attribute.Int64("tournament_id", req.Season.TournamentID),
		attribute.Int64("season_id", req.Season.SeasonID),
	)
	defer span.End()

	opts, err := req.Options.normalize()
	if err != nil {
		return Dataset[standing.Row]{Kind: KindStandings}, err
	}
	if err := req.Season.Validate(); err != nil {
		return Dataset[standing.Row]{Kind: KindStandings}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	builder := tabular.NewBuilder[standing.Row]()
	err = s.withSession(ctx, opts, func(ctx context.Context, fetcher Fetcher) error {
		for _, category := range standing.Categories() {
			rows, err := s.provider.Standings(ctx, fetcher, opts.Source, req.Season, category)
			if err != nil {
				return fmt.Errorf("fetch standings for category %s: %w", category, err)
			}
			builder.AddAll(rows)
		}
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return Dataset[standing.Row]{Kind: KindStandings}, err
	}

	return finish(ctx, s, KindStandings, builder, teamExportName(builder.Items(), func(r standing.Row) standing.TeamRef { return r.TeamRef }), opts)
}

// Squads fetches the roster of every team in the Total standings. A team
// that fails is logged and skipped.
func (s *DataService) Squads(ctx context.Context, req TeamRequest) (Dataset[squad.Member], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.Squads")
	defer span.End()

	opts, teams, err := prepareTeamLoop(req.Standings, req.Options)
	if err != nil {
		return Dataset[squad.Member]{Kind: KindSquads}, err
	}

	builder := tabular.NewBuilder[squad.Member](tabular.WithDeduplication())
	err = s.withSession(ctx, opts, func(ctx context.Context, fetcher Fetcher) error {
		return s.eachTeam(ctx, "squad", teams, func(team standing.TeamRef) error {
			members, err := s.provider.Squad(ctx, fetcher, opts.Source, team)
			if err != nil {
				return err
			}
			builder.AddAll(members)
			return nil
		})
	})
	if err != nil {
		recordSpanError(span, err)
		return Dataset[squad.Member]{Kind: KindSquads}, err
	}

	return finish(ctx, s, KindSquads, builder, teamExportName(builder.Items(), func(m squad.Member) standing.TeamRef { return m.TeamRef }), opts)
}

// TeamStatistics fetches overall season statistics for every team in the
// Total standings. A team that fails is logged and skipped.
func (s *DataService) TeamStatistics(ctx context.Context, req TeamSeasonRequest) (Dataset[teamstats.Stat], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.TeamStatistics",
		attribute.Int64("tournament_id", req.Season.TournamentID),
		attribute.Int64("season_id", req.Season.SeasonID),
	)
	defer span.End()

	opts, teams, err := prepareTeamLoop(req.Standings, req.Options)
	if err != nil {
		return Dataset[teamstats.Stat]{Kind: KindTeamStats}, err
	}
	if err := req.Season.Validate(); err != nil {
		return Dataset[teamstats.Stat]{Kind: KindTeamStats}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	builder := tabular.NewBuilder[teamstats.Stat](tabular.WithDeduplication())
	err = s.withSession(ctx, opts, func(ctx context.Context, fetcher Fetcher) error {
		return s.eachTeam(ctx, "team statistics", teams, func(team standing.TeamRef) error {
			stats, err := s.provider.TeamStatistics(ctx, fetcher, opts.Source, req.Season, team)
			if err != nil {
				return err
			}
			builder.AddAll(stats)
			return nil
		})
	})
	if err != nil {
		recordSpanError(span, err)
		return Dataset[teamstats.Stat]{Kind: KindTeamStats}, err
	}

	return finish(ctx, s, KindTeamStats, builder, teamExportName(builder.Items(), func(st teamstats.Stat) standing.TeamRef { return st.TeamRef }), opts)
}

// PlayerStatistics fetches top-player season statistics for every team in
// the Total standings. A team that fails is logged and skipped.
func (s *DataService) PlayerStatistics(ctx context.Context, req TeamSeasonRequest) (Dataset[playerstats.Stat], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.PlayerStatistics",
		attribute.Int64("tournament_id", req.Season.TournamentID),
		attribute.Int64("season_id", req.Season.SeasonID),
	)
	defer span.End()

	opts, teams, err := prepareTeamLoop(req.Standings, req.Options)
	if err != nil {
		return Dataset[playerstats.Stat]{Kind: KindPlayerStats}, err
	}
	if err := req.Season.Validate(); err != nil {
		return Dataset[playerstats.Stat]{Kind: KindPlayerStats}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	builder := tabular.NewBuilder[playerstats.Stat](tabular.WithDeduplication())
	err = s.withSession(ctx, opts, func(ctx context.Context, fetcher Fetcher) error {
		return s.eachTeam(ctx, "player statistics", teams, func(team standing.TeamRef) error {
			stats, err := s.provider.TopPlayers(ctx, fetcher, opts.Source, req.Season, team)
			if err != nil {
				return err
			}
			builder.AddAll(stats)
			return nil
		})
	})
	if err != nil {
		recordSpanError(span, err)
		return Dataset[playerstats.Stat]{Kind: KindPlayerStats}, err
	}

	return finish(ctx, s, KindPlayerStats, builder, teamExportName(builder.Items(), func(st playerstats.Stat) standing.TeamRef { return st.TeamRef }), opts)
}

// eachTeam runs fn for every team, logging and skipping failures. It stops
// only when ctx is done.
func (s *DataService) eachTeam(ctx context.Context, what string, teams []standing.TeamRef, fn func(team standing.TeamRef) error) error {
	failed := 0
	for _, team := range teams {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(team); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			failed++
			s.logger.WarnContext(ctx, "fetch "+what+" failed; skipping team",
				"team_id", team.TeamID.Text(),
				"team_name", team.TeamName.Text(),
				"error", err,
			)
		}
	}
	if failed > 0 {
		s.logger.InfoContext(ctx, what+" loop finished with skipped teams", "skipped", failed, "teams", len(teams))
	}
	return nil
}

func prepareTeamLoop(rows []standing.Row, options FetchOptions) (FetchOptions, []standing.TeamRef, error) {
	opts, err := options.normalize()
	if err != nil {
		return FetchOptions{}, nil, err
	}
	if len(rows) == 0 {
		return FetchOptions{}, nil, fmt.Errorf("%w: standings must be provided and cannot be empty", ErrInvalidInput)
	}
	return opts, standing.Teams(rows, standing.CategoryTotal), nil
}

func teamExportName[T any](items []T, team func(T) standing.TeamRef) ExportName {
	if len(items) == 0 {
		return ExportName{}
	}
	ref := team(items[0])
	return ExportName{
		Country:    ref.Country.Text(),
		Tournament: ref.Tournament.Text(),
	}
}
