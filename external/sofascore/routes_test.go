package sofascore

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fcdata/internal/domain/standing"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

func TestRoundURL_DefaultListing(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	got, err := client.RoundURL(tournament.SourceSofascore, tournament.RoundQuery{TournamentID: 17, SeasonID: 61627, Week: 12})
	if err != nil {
		t.Fatalf("round url: %v", err)
	}
	want := "https://api.sofascore.com/api/v1/unique-tournament/17/season/61627/events/round/12"
	if got != want {
		t.Fatalf("unexpected url: got=%s want=%s", got, want)
	}
}

func TestRoundURL_UEFAStages(t *testing.T) {
	t.Parallel()

	const base = "https://api.sofavpn.com/api/v1/unique-tournament/7/season/61644/events/round/3"
	cases := map[tournament.Stage]string{
		tournament.StagePreliminarySemifinal: base + "/slug/semifinals/prefix/Preliminary",
		tournament.StagePreliminaryFinal:     base + "/slug/final/prefix/Preliminary",
		tournament.StageQualificationRound:   base + "/slug/qualification-round-3",
		tournament.StageQualificationPlayoff: base + "/slug/playoff-round/prefix/Qualification",
		tournament.StageGroupStageWeek:       base,
		tournament.StagePlayoffRound:         base + "/slug/playoff-round",
		tournament.StageRoundOf16:            base + "/slug/round-of-16",
		tournament.StageQuarterfinals:        base + "/slug/quarterfinals",
		tournament.StageSemifinals:           base + "/slug/semifinals",
		tournament.StageMatchForThirdPlace:   base + "/slug/match-for-3rd-place",
		tournament.StageFinal:                base + "/slug/final",
	}
	if len(cases) != len(tournament.Stages()) {
		t.Fatalf("stage table out of date: got=%d want=%d", len(cases), len(tournament.Stages()))
	}

	client := NewClient(ClientConfig{})
	for stage, want := range cases {
		got, err := client.RoundURL(tournament.SourceSofavpn, tournament.RoundQuery{
			TournamentID: 7,
			SeasonID:     61644,
			Week:         3,
			Type:         tournament.TypeUEFA,
			Stage:        stage,
		})
		if err != nil {
			t.Fatalf("round url for %s: %v", stage, err)
		}
		if got != want {
			t.Fatalf("unexpected url for %s: got=%s want=%s", stage, got, want)
		}
	}
}

func TestRoundURL_RejectsUnknownStage(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	_, err := client.RoundURL(tournament.SourceSofascore, tournament.RoundQuery{
		TournamentID: 7,
		SeasonID:     61644,
		Week:         1,
		Type:         tournament.TypeUEFA,
		Stage:        "group_of_death",
	})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRoundURL_RejectsUnknownSource(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	_, err := client.RoundURL("espn", tournament.RoundQuery{TournamentID: 17, SeasonID: 61627, Week: 1})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClient_HostOverrides(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{APIBaseURL: "http://127.0.0.1:9000/", WebBaseURL: "http://127.0.0.1:9001"})
	team := standing.TeamRef{TeamID: jv.Int(42)}
	season := tournament.SeasonQuery{TournamentID: 17, SeasonID: 61627}

	squad, err := client.squadURL(tournament.SourceSofascore, team)
	if err != nil {
		t.Fatalf("squad url: %v", err)
	}
	if squad != "http://127.0.0.1:9000/api/v1/team/42/players" {
		t.Fatalf("unexpected squad url: %s", squad)
	}

	top, err := client.teamSeasonURL(tournament.SourceSofavpn, season, team, "top-players/overall")
	if err != nil {
		t.Fatalf("top players url: %v", err)
	}
	if top != "http://127.0.0.1:9001/api/v1/team/42/unique-tournament/17/season/61627/top-players/overall" {
		t.Fatalf("unexpected top players url: %s", top)
	}
}

func TestClient_WebHostEndpoints(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})

	h2h, err := client.headToHeadURL(tournament.SourceSofascore, "xdbsZdb")
	if err != nil {
		t.Fatalf("h2h url: %v", err)
	}
	if h2h != "https://www.sofascore.com/api/v1/event/xdbsZdb/h2h/events" {
		t.Fatalf("unexpected h2h url: %s", h2h)
	}

	stats, err := client.teamSeasonURL(tournament.SourceSofascore, tournament.SeasonQuery{TournamentID: 17, SeasonID: 61627}, standing.TeamRef{TeamID: jv.Int(42)}, "statistics/overall")
	if err != nil {
		t.Fatalf("team stats url: %v", err)
	}
	if stats != "https://www.sofascore.com/api/v1/team/42/unique-tournament/17/season/61627/statistics/overall" {
		t.Fatalf("unexpected team stats url: %s", stats)
	}

	standings, err := client.standingsURL(tournament.SourceSofascore, tournament.SeasonQuery{TournamentID: 17, SeasonID: 61627}, standing.CategoryAway)
	if err != nil {
		t.Fatalf("standings url: %v", err)
	}
	if standings != "https://api.sofascore.com/api/v1/unique-tournament/17/season/61627/standings/away" {
		t.Fatalf("unexpected standings url: %s", standings)
	}
}
