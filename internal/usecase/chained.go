package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fcdata/internal/domain/matchstat"
	"github.com/riskibarqy/fcdata/internal/domain/playerstats"
	"github.com/riskibarqy/fcdata/internal/domain/shot"
	"github.com/riskibarqy/fcdata/internal/domain/squad"
	"github.com/riskibarqy/fcdata/internal/domain/teamstats"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
)

// The helpers below run the prerequisite listing first and feed its records
// into the dependent call. Only the final dataset is exported.

type RoundRequest struct {
	Round   tournament.RoundQuery
	Options FetchOptions
}

type SeasonRequest struct {
	Season  tournament.SeasonQuery
	Options FetchOptions
}

func (s *DataService) RoundMatchStatistics(ctx context.Context, req RoundRequest) (Dataset[matchstat.Item], error) {
	matches, err := s.Matches(ctx, MatchesRequest{Round: req.Round, Options: req.Options.asIntermediate()})
	if err != nil {
		return Dataset[matchstat.Item]{Kind: KindMatchStats}, fmt.Errorf("resolve round matches: %w", err)
	}
	return s.MatchStatistics(ctx, MatchDetailRequest{Matches: matches.Items, Options: req.Options})
}

func (s *DataService) RoundShots(ctx context.Context, req RoundRequest) (Dataset[shot.Shot], error) {
	matches, err := s.Matches(ctx, MatchesRequest{Round: req.Round, Options: req.Options.asIntermediate()})
	if err != nil {
		return Dataset[shot.Shot]{Kind: KindShots}, fmt.Errorf("resolve round matches: %w", err)
	}
	return s.Shots(ctx, MatchDetailRequest{Matches: matches.Items, Options: req.Options})
}

func (s *DataService) SeasonSquads(ctx context.Context, req SeasonRequest) (Dataset[squad.Member], error) {
	standings, err := s.Standings(ctx, StandingsRequest{Season: req.Season, Options: req.Options.asIntermediate()})
	if err != nil {
		return Dataset[squad.Member]{Kind: KindSquads}, fmt.Errorf("resolve standings: %w", err)
	}
	return s.Squads(ctx, TeamRequest{Standings: standings.Items, Options: req.Options})
}

func (s *DataService) SeasonTeamStatistics(ctx context.Context, req SeasonRequest) (Dataset[teamstats.Stat], error) {
	standings, err := s.Standings(ctx, StandingsRequest{Season: req.Season, Options: req.Options.asIntermediate()})
	if err != nil {
		return Dataset[teamstats.Stat]{Kind: KindTeamStats}, fmt.Errorf("resolve standings: %w", err)
	}
	return s.TeamStatistics(ctx, TeamSeasonRequest{Season: req.Season, Standings: standings.Items, Options: req.Options})
}

func (s *DataService) SeasonPlayerStatistics(ctx context.Context, req SeasonRequest) (Dataset[playerstats.Stat], error) {
	standings, err := s.Standings(ctx, StandingsRequest{Season: req.Season, Options: req.Options.asIntermediate()})
	if err != nil {
		return Dataset[playerstats.Stat]{Kind: KindPlayerStats}, fmt.Errorf("resolve standings: %w", err)
	}
	return s.PlayerStatistics(ctx, TeamSeasonRequest{Season: req.Season, Standings: standings.Items, Options: req.Options})
}
