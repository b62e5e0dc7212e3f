package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

type seasonFlags struct {
	tournamentID int64
	seasonID     int64
}

func (f *seasonFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.tournamentID, "tournament", 0, "unique tournament id")
	cmd.Flags().Int64Var(&f.seasonID, "season", 0, "season id")
	_ = cmd.MarkFlagRequired("tournament")
	_ = cmd.MarkFlagRequired("season")
}

func (f *seasonFlags) query() tournament.SeasonQuery {
	return tournament.SeasonQuery{TournamentID: f.tournamentID, SeasonID: f.seasonID}
}

type roundFlags struct {
	seasonFlags
	week          int
	kind          string
	stage         string
	includeScores bool
}

func (f *roundFlags) bind(cmd *cobra.Command) {
	f.seasonFlags.bind(cmd)
	cmd.Flags().IntVar(&f.week, "week", 0, "round number")
	cmd.Flags().StringVar(&f.kind, "type", "default", "tournament type: default or uefa")
	cmd.Flags().StringVar(&f.stage, "stage", "", "uefa stage, e.g. group_stage_week or round_of_16")
	_ = cmd.MarkFlagRequired("week")
}

func (f *roundFlags) query() (tournament.RoundQuery, error) {
	kind, err := tournament.ParseType(f.kind)
	if err != nil {
		return tournament.RoundQuery{}, err
	}
	stage, err := tournament.ParseStage(f.stage)
	if err != nil {
		return tournament.RoundQuery{}, err
	}
	return tournament.RoundQuery{
		TournamentID: f.tournamentID,
		SeasonID:     f.seasonID,
		Week:         f.week,
		Type:         kind,
		Stage:        stage,
	}, nil
}

func matchesCmd(flags *globalFlags) *cobra.Command {
	round := &roundFlags{}
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List the fixtures of one round",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := round.query()
			if err != nil {
				return err
			}
			return run(cmd, flags, func(ctx context.Context, svc *usecase.DataService, opts usecase.FetchOptions) error {
				dataset, err := svc.Matches(ctx, usecase.MatchesRequest{Round: query, IncludeScores: round.includeScores, Options: opts})
				if err != nil {
					return fmt.Errorf("matches: %w", err)
				}
				report(cmd, dataset)
				return nil
			})
		},
	}
	round.bind(cmd)
	cmd.Flags().BoolVar(&round.includeScores, "include-scores", false, "add score breakdown columns")
	return cmd
}

func matchStatsCmd(flags *globalFlags) *cobra.Command {
	round := &roundFlags{}
	cmd := &cobra.Command{
		Use:   "match-stats",
		Short: "Fetch period statistics for every match of a round",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := round.query()
			if err != nil {
				return err
			}
			return run(cmd, flags, func(ctx context.Context, svc *usecase.DataService, opts usecase.FetchOptions) error {
				dataset, err := svc.RoundMatchStatistics(ctx, usecase.RoundRequest{Round: query, Options: opts})
				if err != nil {
					return fmt.Errorf("match statistics: %w", err)
				}
				report(cmd, dataset)
				return nil
			})
		},
	}
	round.bind(cmd)
	return cmd
}

func shotsCmd(flags *globalFlags) *cobra.Command {
	round := &roundFlags{}
	cmd := &cobra.Command{
		Use:   "shots",
		Short: "Fetch the shotmap of every match of a round",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := round.query()
			if err != nil {
				return err
			}
			return run(cmd, flags, func(ctx context.Context, svc *usecase.DataService, opts usecase.FetchOptions) error {
				dataset, err := svc.RoundShots(ctx, usecase.RoundRequest{Round: query, Options: opts})
				if err != nil {
					return fmt.Errorf("shots: %w", err)
				}
				report(cmd, dataset)
				return nil
			})
		},
	}
	round.bind(cmd)
	return cmd
}

func pastMatchesCmd(flags *globalFlags) *cobra.Command {
	round := &roundFlags{}
	cmd := &cobra.Command{
		Use:   "past-matches",
		Short: "Collect head-to-head history for the fixtures of a round",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := round.query()
			if err != nil {
				return err
			}
			return run(cmd, flags, func(ctx context.Context, svc *usecase.DataService, opts usecase.FetchOptions) error {
				dataset, err := svc.PastMatches(ctx, usecase.PastMatchesRequest{Round: query, Options: opts})
				if err != nil {
					return fmt.Errorf("past matches: %w", err)
				}
				report(cmd, dataset)
				return nil
			})
		},
	}
	round.bind(cmd)
	return cmd
}

func standingsCmd(flags *globalFlags) *cobra.Command {
	season := &seasonFlags{}
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Fetch the total, home and away tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, svc *usecase.DataService, opts usecase.FetchOptions) error {
				dataset, err := svc.Standings(ctx, usecase.StandingsRequest{Season: season.query(), Options: opts})
				if err != nil {
					return fmt.Errorf("standings: %w", err)
				}
				report(cmd, dataset)
				return nil
			})
		},
	}
	season.bind(cmd)
	return cmd
}

func squadsCmd(flags *globalFlags) *cobra.Command {
	season := &seasonFlags{}
	cmd := &cobra.Command{
		Use:   "squads",
		Short: "Fetch the roster of every team in the standings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, svc *usecase.DataService, opts usecase.FetchOptions) error {
				dataset, err := svc.SeasonSquads(ctx, usecase.SeasonRequest{Season: season.query(), Options: opts})
				if err != nil {
					return fmt.Errorf("squads: %w", err)
				}
				report(cmd, dataset)
				return nil
			})
		},
	}
	season.bind(cmd)
	return cmd
}

func teamStatsCmd(flags *globalFlags) *cobra.Command {
	season := &seasonFlags{}
	cmd := &cobra.Command{
		Use:   "team-stats",
		Short: "Fetch overall season statistics for every team",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, svc *usecase.DataService, opts usecase.FetchOptions) error {
				dataset, err := svc.SeasonTeamStatistics(ctx, usecase.SeasonRequest{Season: season.query(), Options: opts})
				if err != nil {
					return fmt.Errorf("team statistics: %w", err)
				}
				report(cmd, dataset)
				return nil
			})
		},
	}
	season.bind(cmd)
	return cmd
}

func playerStatsCmd(flags *globalFlags) *cobra.Command {
	season := &seasonFlags{}
	cmd := &cobra.Command{
		Use:   "player-stats",
		Short: "Fetch top-player season statistics for every team",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, svc *usecase.DataService, opts usecase.FetchOptions) error {
				dataset, err := svc.SeasonPlayerStatistics(ctx, usecase.SeasonRequest{Season: season.query(), Options: opts})
				if err != nil {
					return fmt.Errorf("player statistics: %w", err)
				}
				report(cmd, dataset)
				return nil
			})
		},
	}
	season.bind(cmd)
	return cmd
}
