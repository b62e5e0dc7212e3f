package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/riskibarqy/fcdata/internal/domain/fixture"
	"github.com/riskibarqy/fcdata/internal/domain/matchstat"
	"github.com/riskibarqy/fcdata/internal/domain/shot"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
	"go.opentelemetry.io/otel/attribute"
)

type MatchesRequest struct {
	Round tournament.RoundQuery
	// IncludeScores adds the ten score breakdown columns to each row.
	IncludeScores bool
	Options       FetchOptions
}

// MatchDetailRequest drives the per-match loops. Matches usually comes from
// a previous Matches call.
type MatchDetailRequest struct {
	Matches []fixture.Match
	Options FetchOptions
}

type PastMatchesRequest struct {
	Round   tournament.RoundQuery
	Options FetchOptions
}

// Matches lists the fixtures of one round.
func (s *DataService) Matches(ctx context.Context, req MatchesRequest) (Dataset[fixture.Match], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.Matches",
		attribute.Int64("tournament_id", req.Round.TournamentID),
		attribute.Int64("season_id", req.Round.SeasonID),
		attribute.Int("week", req.Round.Week),
	)
	defer span.End()

	opts, err := s.prepareRound(req.Round, req.Options)
	if err != nil {
		return Dataset[fixture.Match]{Kind: KindMatches}, err
	}

	builder := tabular.NewBuilder[fixture.Match]()
	err = s.withSession(ctx, opts, func(ctx context.Context, fetcher Fetcher) error {
		matches, err := s.provider.RoundMatches(ctx, fetcher, opts.Source, req.Round)
		if err != nil {
			return fmt.Errorf("fetch round matches: %w", err)
		}
		for _, match := range matches {
			if !req.IncludeScores {
				match = match.WithoutScores()
			}
			builder.Add(match)
		}
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return Dataset[fixture.Match]{Kind: KindMatches}, err
	}

	var name ExportName
	if items := builder.Items(); len(items) > 0 {
		first := items[0]
		name = ExportName{
			Country:    first.Country.Text(),
			Tournament: first.Tournament.Text(),
			Season:     first.Season.Text(),
			Week:       first.Week.Text(),
		}
	}
	return finish(ctx, s, KindMatches, builder, name, opts)
}

// MatchStatistics fetches period statistics for every match. Any failed
// match aborts the call.
func (s *DataService) MatchStatistics(ctx context.Context, req MatchDetailRequest) (Dataset[matchstat.Item], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.MatchStatistics", attribute.Int("matches", len(req.Matches)))
	defer span.End()

	opts, err := prepareMatchLoop(req)
	if err != nil {
		return Dataset[matchstat.Item]{Kind: KindMatchStats}, err
	}

	builder := tabular.NewBuilder[matchstat.Item]()
	err = s.withSession(ctx, opts, func(ctx context.Context, fetcher Fetcher) error {
		for _, match := range req.Matches {
			items, err := s.provider.MatchStatistics(ctx, fetcher, opts.Source, match)
			if err != nil {
				return fmt.Errorf("fetch match statistics for game %s: %w", match.GameID.Text(), err)
			}
			builder.AddAll(items)
		}
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return Dataset[matchstat.Item]{Kind: KindMatchStats}, err
	}

	return finish(ctx, s, KindMatchStats, builder, identityExportName(builder.Items(), func(i matchstat.Item) fixture.Identity { return i.Identity }), opts)
}

// Shots fetches the shotmap of every match. Any failed match aborts the call.
func (s *DataService) Shots(ctx context.Context, req MatchDetailRequest) (Dataset[shot.Shot], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.Shots", attribute.Int("matches", len(req.Matches)))
	defer span.End()

	opts, err := prepareMatchLoop(req)
	if err != nil {
		return Dataset[shot.Shot]{Kind: KindShots}, err
	}

	builder := tabular.NewBuilder[shot.Shot]()
	err = s.withSession(ctx, opts, func(ctx context.Context, fetcher Fetcher) error {
		for _, match := range req.Matches {
			shots, err := s.provider.MatchShots(ctx, fetcher, opts.Source, match)
			if err != nil {
				return fmt.Errorf("fetch shotmap for game %s: %w", match.GameID.Text(), err)
			}
			builder.AddAll(shots)
		}
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return Dataset[shot.Shot]{Kind: KindShots}, err
	}

	return finish(ctx, s, KindShots, builder, identityExportName(builder.Items(), func(i shot.Shot) fixture.Identity { return i.Identity }), opts)
}

// PastMatches resolves the round's fixtures and collects the head-to-head
// history of each one. An empty or eventless history is skipped; a
// transport failure aborts the call.
func (s *DataService) PastMatches(ctx context.Context, req PastMatchesRequest) (Dataset[fixture.Match], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.PastMatches",
		attribute.Int64("tournament_id", req.Round.TournamentID),
		attribute.Int64("season_id", req.Round.SeasonID),
		attribute.Int("week", req.Round.Week),
	)
	defer span.End()

	opts, err := s.prepareRound(req.Round, req.Options)
	if err != nil {
		return Dataset[fixture.Match]{Kind: KindPastMatches}, err
	}

	var name ExportName
	builder := tabular.NewBuilder[fixture.Match]()
	err = s.withSession(ctx, opts, func(ctx context.Context, fetcher Fetcher) error {
		round, err := s.provider.RoundMatches(ctx, fetcher, opts.Source, req.Round)
		if err != nil {
			return fmt.Errorf("fetch round matches: %w", err)
		}
		if len(round) > 0 {
			name = ExportName{
				Country:    round[0].Country.Text(),
				Tournament: round[0].Tournament.Text(),
				Season:     round[0].Season.Text(),
				Week:       strconv.Itoa(req.Round.Week),
			}
		}

		for _, match := range round {
			if match.CustomID == "" {
				s.logger.WarnContext(ctx, "match has no custom id; skipping head-to-head", "game_id", match.GameID.Text())
				continue
			}
			history, err := s.provider.HeadToHead(ctx, fetcher, opts.Source, match)
			switch {
			case err == nil:
				builder.AddAll(history)
			case errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrInvalidShape):
				s.logger.WarnContext(ctx, "head-to-head response unusable; skipping match",
					"game_id", match.GameID.Text(),
					"custom_id", match.CustomID,
					"error", err,
				)
			default:
				return fmt.Errorf("fetch head-to-head for %s: %w", match.CustomID, err)
			}
		}
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return Dataset[fixture.Match]{Kind: KindPastMatches}, err
	}

	return finish(ctx, s, KindPastMatches, builder, name, opts)
}

func (s *DataService) prepareRound(round tournament.RoundQuery, options FetchOptions) (FetchOptions, error) {
	opts, err := options.normalize()
	if err != nil {
		return FetchOptions{}, err
	}
	if err := round.Validate(); err != nil {
		return FetchOptions{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.provider.RoundURL(opts.Source, round); err != nil {
		return FetchOptions{}, err
	}
	return opts, nil
}

func prepareMatchLoop(req MatchDetailRequest) (FetchOptions, error) {
	opts, err := req.Options.normalize()
	if err != nil {
		return FetchOptions{}, err
	}
	if len(req.Matches) == 0 {
		return FetchOptions{}, fmt.Errorf("%w: matches must be provided and cannot be empty", ErrInvalidInput)
	}
	for _, match := range req.Matches {
		if match.GameID.Text() == "" {
			return FetchOptions{}, fmt.Errorf("%w: match without game_id", ErrInvalidInput)
		}
	}
	return opts, nil
}

func identityExportName[T any](items []T, identity func(T) fixture.Identity) ExportName {
	if len(items) == 0 {
		return ExportName{}
	}
	id := identity(items[0])
	return ExportName{
		Country:    id.Country.Text(),
		Tournament: id.Tournament.Text(),
		Season:     id.Season.Text(),
		Week:       id.Week.Text(),
	}
}
