package export

import (
	"testing"

	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   usecase.ExportName
		ext  string
		want string
	}{
		{
			name: "season and week",
			in: usecase.ExportName{
				Source:     tournament.SourceSofascore,
				Country:    "England",
				Tournament: "Premier League",
				Season:     "24/25",
				Week:       "7",
				Kind:       usecase.KindMatches,
			},
			ext:  "json",
			want: "sofascore_england_premier_league_2425_7_match_data.json",
		},
		{
			name: "no season or week",
			in: usecase.ExportName{
				Source:     tournament.SourceSofavpn,
				Country:    "Türkiye",
				Tournament: "Trendyol Süper Lig",
				Kind:       usecase.KindStandings,
			},
			ext:  ".xlsx",
			want: "sofavpn_türkiye_trendyol_süper_lig_standings_data.xlsx",
		},
		{
			name: "week without season",
			in: usecase.ExportName{
				Source:     tournament.SourceSofascore,
				Country:    "Spain",
				Tournament: "LaLiga",
				Week:       "3",
				Kind:       usecase.KindSquads,
			},
			ext:  "json",
			want: "sofascore_spain_laliga_squad_data.json",
		},
		{
			name: "path separators stay inside the export dir",
			in: usecase.ExportName{
				Source:     tournament.SourceSofascore,
				Country:    "Bosnia/Herzegovina",
				Tournament: `Premijer Liga\Playoff`,
				Season:     "24/25",
				Kind:       usecase.KindTeamStats,
			},
			ext:  "json",
			want: "sofascore_bosnia_herzegovina_premijer_liga_playoff_2425_team_stats_data.json",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FileName(tc.in, tc.ext); got != tc.want {
				t.Fatalf("unexpected file name: got=%s want=%s", got, tc.want)
			}
		})
	}
}
