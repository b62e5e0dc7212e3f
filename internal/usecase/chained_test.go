package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fcdata/internal/domain/fixture"
	"github.com/riskibarqy/fcdata/internal/domain/matchstat"
	"github.com/riskibarqy/fcdata/internal/domain/squad"
	"github.com/riskibarqy/fcdata/internal/domain/standing"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
)

func TestDataService_RoundMatchStatistics_ExportsOnlyFinalDataset(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		roundMatches: func(tournament.RoundQuery) ([]fixture.Match, error) {
			return []fixture.Match{sampleMatch(1, "aB"), sampleMatch(2, "cD")}, nil
		},
		statistics: func(match fixture.Match) ([]matchstat.Item, error) {
			return []matchstat.Item{{Identity: match.Identity, Period: jv.Str("ALL"), StatName: jv.Str("Ball possession")}}, nil
		},
	}
	exporter := &stubExporter{}
	publisher := &stubPublisher{}
	service, opener := newTestService(provider, WithExporter(exporter), WithPublisher(publisher))

	got, err := service.RoundMatchStatistics(t.Context(), RoundRequest{
		Round:   validRound(),
		Options: FetchOptions{Export: ExportFormats{JSON: true}},
	})
	if err != nil {
		t.Fatalf("round match statistics: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("unexpected row count: got=%d want=2", got.Len())
	}
	if exporter.name.Kind != KindMatchStats {
		t.Fatalf("expected only the statistics dataset to be exported, got %s", exporter.name.Kind)
	}
	if len(publisher.kinds) != 1 || publisher.kinds[0] != KindMatchStats {
		t.Fatalf("expected one publish for statistics, got %v", publisher.kinds)
	}
	if opener.opened != 2 {
		t.Fatalf("expected one session per call, got %d", opener.opened)
	}
}

func TestDataService_RoundShots_PropagatesListingFailure(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		roundMatches: func(tournament.RoundQuery) ([]fixture.Match, error) {
			return nil, nil
		},
	}
	service, _ := newTestService(provider)

	got, err := service.RoundShots(t.Context(), RoundRequest{Round: validRound()})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if got.Kind != KindShots {
		t.Fatalf("unexpected kind: %s", got.Kind)
	}
}

func TestDataService_SeasonSquads_UsesTotalStandings(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		standings: func(category standing.Category) ([]standing.Row, error) {
			rows := sampleStandings(3)
			out := rows[:0]
			for _, row := range rows {
				if row.Category == standing.CategoryTotal {
					row.Category = category
					out = append(out, row)
				}
			}
			return out, nil
		},
		squad: func(team standing.TeamRef) ([]squad.Member, error) {
			return []squad.Member{{TeamRef: team, PlayerName: jv.Str("Player of " + team.TeamName.Text())}}, nil
		},
	}
	service, _ := newTestService(provider)

	got, err := service.SeasonSquads(t.Context(), SeasonRequest{Season: tournament.SeasonQuery{TournamentID: 17, SeasonID: 61627}})
	if err != nil {
		t.Fatalf("season squads: %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("expected one member per team, got %d", got.Len())
	}
}
