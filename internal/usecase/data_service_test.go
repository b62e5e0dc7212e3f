package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fcdata/internal/domain/fixture"
	"github.com/riskibarqy/fcdata/internal/domain/matchstat"
	"github.com/riskibarqy/fcdata/internal/domain/playerstats"
	"github.com/riskibarqy/fcdata/internal/domain/rawdata"
	"github.com/riskibarqy/fcdata/internal/domain/shot"
	"github.com/riskibarqy/fcdata/internal/domain/squad"
	"github.com/riskibarqy/fcdata/internal/domain/standing"
	"github.com/riskibarqy/fcdata/internal/domain/teamstats"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	rawdatamock "github.com/riskibarqy/fcdata/internal/mocks/domain/rawdata"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/logging"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
	"github.com/stretchr/testify/mock"
)

const roundURL = "https://api.sofascore.com/api/v1/unique-tournament/17/season/61627/events/round/1"

type stubSession struct {
	mu      sync.Mutex
	body    []byte
	fetched []string
	closed  int
}

func (s *stubSession) Fetch(_ context.Context, url string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched = append(s.fetched, url)
	return s.body, nil
}

func (s *stubSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

type stubOpener struct {
	session *stubSession
	err     error
	opened  int
	options SessionOptions
}

func (o *stubOpener) Open(_ context.Context, opts SessionOptions) (Session, error) {
	o.opened++
	o.options = opts
	if o.err != nil {
		return nil, o.err
	}
	return o.session, nil
}

// stubProvider fetches one locator per call so the session sees traffic,
// then returns whatever the test scripted.
type stubProvider struct {
	roundMatches func(query tournament.RoundQuery) ([]fixture.Match, error)
	statistics   func(match fixture.Match) ([]matchstat.Item, error)
	shots        func(match fixture.Match) ([]shot.Shot, error)
	headToHead   func(match fixture.Match) ([]fixture.Match, error)
	standings    func(category standing.Category) ([]standing.Row, error)
	squad        func(team standing.TeamRef) ([]squad.Member, error)
	teamStats    func(team standing.TeamRef) ([]teamstats.Stat, error)
	topPlayers   func(team standing.TeamRef) ([]playerstats.Stat, error)
}

func (p *stubProvider) RoundURL(_ tournament.Source, query tournament.RoundQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return roundURL, nil
}

func (p *stubProvider) RoundMatches(ctx context.Context, fetcher Fetcher, _ tournament.Source, query tournament.RoundQuery) ([]fixture.Match, error) {
	if _, err := fetcher.Fetch(ctx, roundURL); err != nil {
		return nil, err
	}
	return p.roundMatches(query)
}

func (p *stubProvider) MatchStatistics(ctx context.Context, fetcher Fetcher, _ tournament.Source, match fixture.Match) ([]matchstat.Item, error) {
	if _, err := fetcher.Fetch(ctx, "https://api.sofascore.com/api/v1/event/"+match.GameID.Text()+"/statistics"); err != nil {
		return nil, err
	}
	return p.statistics(match)
}

func (p *stubProvider) MatchShots(ctx context.Context, fetcher Fetcher, _ tournament.Source, match fixture.Match) ([]shot.Shot, error) {
	if _, err := fetcher.Fetch(ctx, "https://api.sofascore.com/api/v1/event/"+match.GameID.Text()+"/shotmap"); err != nil {
		return nil, err
	}
	return p.shots(match)
}

func (p *stubProvider) HeadToHead(ctx context.Context, fetcher Fetcher, _ tournament.Source, match fixture.Match) ([]fixture.Match, error) {
	if _, err := fetcher.Fetch(ctx, "https://www.sofascore.com/api/v1/event/"+match.CustomID+"/h2h/events"); err != nil {
		return nil, err
	}
	return p.headToHead(match)
}

func (p *stubProvider) Standings(ctx context.Context, fetcher Fetcher, _ tournament.Source, _ tournament.SeasonQuery, category standing.Category) ([]standing.Row, error) {
	if _, err := fetcher.Fetch(ctx, "https://api.sofascore.com/api/v1/unique-tournament/17/season/61627/standings/"+string(category)); err != nil {
		return nil, err
	}
	return p.standings(category)
}

func (p *stubProvider) Squad(ctx context.Context, fetcher Fetcher, _ tournament.Source, team standing.TeamRef) ([]squad.Member, error) {
	if _, err := fetcher.Fetch(ctx, "https://api.sofascore.com/api/v1/team/"+team.TeamID.Text()+"/players"); err != nil {
		return nil, err
	}
	return p.squad(team)
}

func (p *stubProvider) TeamStatistics(ctx context.Context, fetcher Fetcher, _ tournament.Source, _ tournament.SeasonQuery, team standing.TeamRef) ([]teamstats.Stat, error) {
	if _, err := fetcher.Fetch(ctx, "https://www.sofascore.com/api/v1/team/"+team.TeamID.Text()+"/unique-tournament/17/season/61627/statistics/overall"); err != nil {
		return nil, err
	}
	return p.teamStats(team)
}

func (p *stubProvider) TopPlayers(ctx context.Context, fetcher Fetcher, _ tournament.Source, _ tournament.SeasonQuery, team standing.TeamRef) ([]playerstats.Stat, error) {
	if _, err := fetcher.Fetch(ctx, "https://www.sofascore.com/api/v1/team/"+team.TeamID.Text()+"/unique-tournament/17/season/61627/top-players/overall"); err != nil {
		return nil, err
	}
	return p.topPlayers(team)
}

type stubExporter struct {
	name    ExportName
	formats ExportFormats
	rows    int
	err     error
}

func (e *stubExporter) Export(_ context.Context, table *tabular.Table, name ExportName, formats ExportFormats) ([]string, error) {
	e.name = name
	e.formats = formats
	e.rows = table.Len()
	if e.err != nil {
		return nil, e.err
	}
	return []string{"out/" + string(name.Kind) + ".json"}, nil
}

type stubPublisher struct {
	kinds []DataKind
}

func (p *stubPublisher) Publish(_ context.Context, kind DataKind, _ *tabular.Table) error {
	p.kinds = append(p.kinds, kind)
	return nil
}

func newTestService(provider SportDataProvider, opts ...DataServiceOption) (*DataService, *stubOpener) {
	opener := &stubOpener{session: &stubSession{body: []byte(`{}`)}}
	return NewDataService(provider, opener, logging.NewNop(), opts...), opener
}

func sampleMatch(id int64, customID string) fixture.Match {
	return fixture.Match{
		Identity: fixture.Identity{
			Country:    jv.Str("England"),
			Tournament: jv.Str("Premier League"),
			Season:     jv.Str("24/25"),
			Week:       jv.Int(1),
			GameID:     jv.Int(id),
		},
		HomeTeam:   jv.Str("Arsenal"),
		HomeTeamID: jv.Int(42),
		AwayTeam:   jv.Str("Chelsea"),
		AwayTeamID: jv.Int(38),
		Status:     jv.Str("Ended"),
		CustomID:   customID,
		Scores: &fixture.Scoreline{
			Home: fixture.Score{Current: jv.Int(2)},
			Away: fixture.Score{Current: jv.Int(1)},
		},
	}
}

func sampleStandings(teams int) []standing.Row {
	rows := make([]standing.Row, 0, teams*2)
	for _, category := range []standing.Category{standing.CategoryTotal, standing.CategoryHome} {
		for i := 1; i <= teams; i++ {
			rows = append(rows, standing.Row{
				TeamRef: standing.TeamRef{
					Country:    jv.Str("England"),
					Tournament: jv.Str("Premier League"),
					TeamName:   jv.Str(fmt.Sprintf("Team %d", i)),
					TeamID:     jv.Int(int64(i)),
				},
				Position: jv.Int(int64(i)),
				Category: category,
			})
		}
	}
	return rows
}

func validRound() tournament.RoundQuery {
	return tournament.RoundQuery{TournamentID: 17, SeasonID: 61627, Week: 1}
}

func TestDataService_Matches_DropsScoresUnlessRequested(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		roundMatches: func(tournament.RoundQuery) ([]fixture.Match, error) {
			return []fixture.Match{sampleMatch(1, "aB"), sampleMatch(2, "cD")}, nil
		},
	}
	service, opener := newTestService(provider)

	got, err := service.Matches(t.Context(), MatchesRequest{Round: validRound()})
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("unexpected match count: got=%d want=2", got.Len())
	}
	if cols := len(got.Table.Columns()); cols != 13 {
		t.Fatalf("unexpected column count: got=%d want=13", cols)
	}
	if opener.session.closed != 1 {
		t.Fatalf("expected session to be closed once, got %d", opener.session.closed)
	}
	if opener.options.Timeout != DefaultElementLoadTimeout {
		t.Fatalf("expected default timeout, got %s", opener.options.Timeout)
	}

	withScores, err := service.Matches(t.Context(), MatchesRequest{Round: validRound(), IncludeScores: true})
	if err != nil {
		t.Fatalf("matches with scores: %v", err)
	}
	if cols := len(withScores.Table.Columns()); cols != 23 {
		t.Fatalf("unexpected column count with scores: got=%d want=23", cols)
	}
}

func TestDataService_Matches_RejectsInvalidInputBeforeOpeningSession(t *testing.T) {
	t.Parallel()

	cases := map[string]MatchesRequest{
		"missing week":    {Round: tournament.RoundQuery{TournamentID: 17, SeasonID: 61627}},
		"stage no type":   {Round: tournament.RoundQuery{TournamentID: 17, SeasonID: 61627, Week: 1, Stage: tournament.StageFinal}},
		"uefa no stage":   {Round: tournament.RoundQuery{TournamentID: 7, SeasonID: 61644, Week: 1, Type: tournament.TypeUEFA}},
		"unknown source":  {Round: validRound(), Options: FetchOptions{Source: "espn"}},
		"negative budget": {Round: validRound(), Options: FetchOptions{Timeout: -time.Second}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			service, opener := newTestService(&stubProvider{})
			_, err := service.Matches(t.Context(), req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if opener.opened != 0 {
				t.Fatalf("expected no session to be opened, got %d", opener.opened)
			}
		})
	}
}

func TestDataService_Matches_EmptyRoundIsNoData(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		roundMatches: func(tournament.RoundQuery) ([]fixture.Match, error) {
			return nil, fmt.Errorf("%w: events list is empty", ErrNoData)
		},
	}
	service, opener := newTestService(provider)

	_, err := service.Matches(t.Context(), MatchesRequest{Round: validRound()})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if opener.session.closed != 1 {
		t.Fatalf("expected session to be closed after failure, got %d", opener.session.closed)
	}
}

func TestDataService_Matches_OpenSessionFailure(t *testing.T) {
	t.Parallel()

	opener := &stubOpener{err: fmt.Errorf("%w: browser not found", ErrTransport)}
	service := NewDataService(&stubProvider{}, opener, logging.NewNop())

	_, err := service.Matches(t.Context(), MatchesRequest{Round: validRound()})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestDataService_MatchStatistics_AbortsOnFirstFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	provider := &stubProvider{
		statistics: func(match fixture.Match) ([]matchstat.Item, error) {
			calls++
			if match.GameID.Text() == "2" {
				return nil, ErrTimeout
			}
			return []matchstat.Item{{Identity: match.Identity, Period: jv.Str("ALL"), StatName: jv.Str("Ball possession")}}, nil
		},
	}
	service, opener := newTestService(provider)

	matches := []fixture.Match{sampleMatch(1, "a"), sampleMatch(2, "b"), sampleMatch(3, "c")}
	_, err := service.MatchStatistics(t.Context(), MatchDetailRequest{Matches: matches})
	if !errors.Is(err, ErrTimeout) || !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTimeout wrapped in ErrTransport, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected loop to stop at the failing match, got %d calls", calls)
	}
	if opener.session.closed != 1 {
		t.Fatalf("expected session to be closed, got %d", opener.session.closed)
	}
}

func TestDataService_MatchDetail_RequiresMatches(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(&stubProvider{})
	if _, err := service.Shots(t.Context(), MatchDetailRequest{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty matches, got %v", err)
	}

	noID := sampleMatch(1, "a")
	noID.GameID = jv.Missing()
	if _, err := service.MatchStatistics(t.Context(), MatchDetailRequest{Matches: []fixture.Match{noID}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for match without game id, got %v", err)
	}
}

func TestDataService_Shots_ExportsUsingFirstRecordIdentity(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		shots: func(match fixture.Match) ([]shot.Shot, error) {
			return []shot.Shot{
				{Identity: match.Identity, PlayerName: jv.Str("Saka"), XG: jv.Num(0.12)},
				{Identity: match.Identity, PlayerName: jv.Str("Palmer"), XG: jv.Num(0.4)},
			}, nil
		},
	}
	exporter := &stubExporter{}
	publisher := &stubPublisher{}
	service, _ := newTestService(provider, WithExporter(exporter), WithPublisher(publisher))

	got, err := service.Shots(t.Context(), MatchDetailRequest{
		Matches: []fixture.Match{sampleMatch(1, "a")},
		Options: FetchOptions{Source: tournament.SourceSofavpn, Export: ExportFormats{JSON: true}},
	})
	if err != nil {
		t.Fatalf("shots: %v", err)
	}
	if got.Len() != 2 || exporter.rows != 2 {
		t.Fatalf("unexpected row counts: dataset=%d exported=%d", got.Len(), exporter.rows)
	}
	want := ExportName{
		Source:     tournament.SourceSofavpn,
		Country:    "England",
		Tournament: "Premier League",
		Season:     "24/25",
		Week:       "1",
		Kind:       KindShots,
	}
	if exporter.name != want {
		t.Fatalf("unexpected export name: got=%+v want=%+v", exporter.name, want)
	}
	if len(got.Exported) != 1 {
		t.Fatalf("expected exported paths on dataset, got %v", got.Exported)
	}
	if len(publisher.kinds) != 1 || publisher.kinds[0] != KindShots {
		t.Fatalf("unexpected published kinds: %v", publisher.kinds)
	}
}

func TestDataService_ExportFailureKeepsDataset(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		roundMatches: func(tournament.RoundQuery) ([]fixture.Match, error) {
			return []fixture.Match{sampleMatch(1, "a")}, nil
		},
	}
	exporter := &stubExporter{err: errors.New("disk full")}
	service, _ := newTestService(provider, WithExporter(exporter))

	got, err := service.Matches(t.Context(), MatchesRequest{
		Round:   validRound(),
		Options: FetchOptions{Export: ExportFormats{Excel: true}},
	})
	if !errors.Is(err, ErrExport) {
		t.Fatalf("expected ErrExport, got %v", err)
	}
	if got.Len() != 1 {
		t.Fatalf("expected dataset to be returned with the error, got %d rows", got.Len())
	}
}

func TestDataService_PastMatches_SkipsUnusableHistory(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		roundMatches: func(tournament.RoundQuery) ([]fixture.Match, error) {
			return []fixture.Match{
				sampleMatch(1, "aaa"),
				sampleMatch(2, ""),
				sampleMatch(3, "ccc"),
				sampleMatch(4, "ddd"),
			}, nil
		},
		headToHead: func(match fixture.Match) ([]fixture.Match, error) {
			switch match.CustomID {
			case "aaa":
				return []fixture.Match{sampleMatch(101, "aaa"), sampleMatch(102, "aaa")}, nil
			case "ccc":
				return nil, ErrEmptyResponse
			default:
				return nil, fmt.Errorf("%w: events is not a list", ErrInvalidShape)
			}
		},
	}
	service, opener := newTestService(provider)

	got, err := service.PastMatches(t.Context(), PastMatchesRequest{Round: validRound()})
	if err != nil {
		t.Fatalf("past matches: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("unexpected history count: got=%d want=2", got.Len())
	}
	// one round listing plus three head-to-head lookups
	if fetched := len(opener.session.fetched); fetched != 4 {
		t.Fatalf("unexpected fetch count: got=%d want=4", fetched)
	}
}

func TestDataService_PastMatches_AbortsOnTransportFailure(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		roundMatches: func(tournament.RoundQuery) ([]fixture.Match, error) {
			return []fixture.Match{sampleMatch(1, "aaa"), sampleMatch(2, "bbb")}, nil
		},
		headToHead: func(match fixture.Match) ([]fixture.Match, error) {
			if match.CustomID == "aaa" {
				return []fixture.Match{sampleMatch(101, "aaa")}, nil
			}
			return nil, ErrTimeout
		},
	}
	service, _ := newTestService(provider)

	_, err := service.PastMatches(t.Context(), PastMatchesRequest{Round: validRound()})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestDataService_Standings_FetchesEveryCategory(t *testing.T) {
	t.Parallel()

	var seen []standing.Category
	provider := &stubProvider{
		standings: func(category standing.Category) ([]standing.Row, error) {
			seen = append(seen, category)
			rows := sampleStandings(2)[:2]
			for i := range rows {
				rows[i].Category = category
			}
			return rows, nil
		},
	}
	exporter := &stubExporter{}
	service, _ := newTestService(provider, WithExporter(exporter))

	got, err := service.Standings(t.Context(), StandingsRequest{
		Season:  tournament.SeasonQuery{TournamentID: 17, SeasonID: 61627},
		Options: FetchOptions{Export: ExportFormats{JSON: true}},
	})
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if got.Len() != 6 {
		t.Fatalf("unexpected row count: got=%d want=6", got.Len())
	}
	if len(seen) != 3 || seen[0] != standing.CategoryTotal || seen[2] != standing.CategoryAway {
		t.Fatalf("unexpected category order: %v", seen)
	}
	if exporter.name.Season != "" || exporter.name.Week != "" {
		t.Fatalf("standings export should omit season and week, got %+v", exporter.name)
	}
}

func TestDataService_Standings_AbortsOnCategoryFailure(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		standings: func(category standing.Category) ([]standing.Row, error) {
			if category == standing.CategoryHome {
				return nil, ErrMalformedResponse
			}
			return sampleStandings(1)[:1], nil
		},
	}
	service, _ := newTestService(provider)

	_, err := service.Standings(t.Context(), StandingsRequest{Season: tournament.SeasonQuery{TournamentID: 17, SeasonID: 61627}})
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestDataService_Squads_SkipsFailedTeam(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		squad: func(team standing.TeamRef) ([]squad.Member, error) {
			if team.TeamID.Text() == "3" {
				return nil, ErrTimeout
			}
			return []squad.Member{{TeamRef: team, PlayerName: jv.Str("Player " + team.TeamID.Text()), PlayerID: team.TeamID}}, nil
		},
	}
	service, opener := newTestService(provider)

	got, err := service.Squads(t.Context(), TeamRequest{Standings: sampleStandings(5)})
	if err != nil {
		t.Fatalf("squads: %v", err)
	}
	if got.Len() != 4 {
		t.Fatalf("unexpected member count: got=%d want=4", got.Len())
	}
	// only the Total rows drive the loop
	if fetched := len(opener.session.fetched); fetched != 5 {
		t.Fatalf("unexpected fetch count: got=%d want=5", fetched)
	}
}

func TestDataService_Squads_StopsWhenCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	calls := 0
	provider := &stubProvider{
		squad: func(team standing.TeamRef) ([]squad.Member, error) {
			calls++
			cancel()
			return nil, context.Canceled
		},
	}
	service, _ := newTestService(provider)

	_, err := service.Squads(ctx, TeamRequest{Standings: sampleStandings(3)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected loop to stop after cancellation, got %d calls", calls)
	}
}

func TestDataService_Squads_RequiresStandings(t *testing.T) {
	t.Parallel()

	service, opener := newTestService(&stubProvider{})
	_, err := service.Squads(t.Context(), TeamRequest{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if opener.opened != 0 {
		t.Fatalf("expected no session to be opened, got %d", opener.opened)
	}
}

func TestDataService_TeamStatistics_Deduplicates(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamStats: func(team standing.TeamRef) ([]teamstats.Stat, error) {
			stat := teamstats.Stat{TeamRef: team, Name: "goalsScored", Value: jv.Int(30)}
			return []teamstats.Stat{stat, stat}, nil
		},
	}
	service, _ := newTestService(provider)

	got, err := service.TeamStatistics(t.Context(), TeamSeasonRequest{
		Season:    tournament.SeasonQuery{TournamentID: 17, SeasonID: 61627},
		Standings: sampleStandings(2),
	})
	if err != nil {
		t.Fatalf("team statistics: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("unexpected stat count: got=%d want=2", got.Len())
	}
}

func TestDataService_TeamStatistics_SkipsFailedTeam(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamStats: func(team standing.TeamRef) ([]teamstats.Stat, error) {
			if team.TeamID.Text() == "2" {
				return nil, ErrTimeout
			}
			return []teamstats.Stat{{TeamRef: team, Name: "goalsScored", Value: team.TeamID}}, nil
		},
	}
	service, opener := newTestService(provider)

	got, err := service.TeamStatistics(t.Context(), TeamSeasonRequest{
		Season:    tournament.SeasonQuery{TournamentID: 17, SeasonID: 61627},
		Standings: sampleStandings(5),
	})
	if err != nil {
		t.Fatalf("team statistics: %v", err)
	}
	if got.Len() != 4 {
		t.Fatalf("unexpected stat count: got=%d want=4", got.Len())
	}
	for _, stat := range got.Items {
		if stat.TeamID.Text() == "2" {
			t.Fatalf("expected failed team to be skipped, got %+v", stat)
		}
	}
	if fetched := len(opener.session.fetched); fetched != 5 {
		t.Fatalf("unexpected fetch count: got=%d want=5", fetched)
	}
}

func TestDataService_PlayerStatistics_SkipsFailedTeam(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		topPlayers: func(team standing.TeamRef) ([]playerstats.Stat, error) {
			if team.TeamID.Text() == "1" {
				return nil, ErrInvalidShape
			}
			return []playerstats.Stat{{
				TeamRef:    team,
				PlayerName: jv.Str("Player " + team.TeamID.Text()),
				PlayerID:   team.TeamID,
				Name:       "rating",
				Value:      jv.Num(7.1),
			}}, nil
		},
	}
	service, opener := newTestService(provider)

	got, err := service.PlayerStatistics(t.Context(), TeamSeasonRequest{
		Season:    tournament.SeasonQuery{TournamentID: 17, SeasonID: 61627},
		Standings: sampleStandings(3),
	})
	if err != nil {
		t.Fatalf("player statistics: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("unexpected stat count: got=%d want=2", got.Len())
	}
	if fetched := len(opener.session.fetched); fetched != 3 {
		t.Fatalf("unexpected fetch count: got=%d want=3", fetched)
	}
}

func TestDataService_PlayerStatistics_AllTeamsFailIsNoData(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		topPlayers: func(standing.TeamRef) ([]playerstats.Stat, error) {
			return nil, ErrEmptyResponse
		},
	}
	service, _ := newTestService(provider)

	_, err := service.PlayerStatistics(t.Context(), TeamSeasonRequest{
		Season:    tournament.SeasonQuery{TournamentID: 17, SeasonID: 61627},
		Standings: sampleStandings(3),
	})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestDataService_ArchivesFetchedPayloads(t *testing.T) {
	t.Parallel()

	fetchedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := rawdatamock.NewRepository(t)
	repo.
		On("UpsertMany", mock.Anything, mock.MatchedBy(func(items []rawdata.Payload) bool {
			return len(items) == 1 &&
				items[0].Source == "sofascore" &&
				items[0].EntityType == "unique-tournament.season.events.round" &&
				items[0].PayloadJSON == `{}` &&
				items[0].FetchedAt.Equal(fetchedAt)
		})).
		Return(nil).
		Once()

	provider := &stubProvider{
		roundMatches: func(tournament.RoundQuery) ([]fixture.Match, error) {
			return []fixture.Match{sampleMatch(1, "a")}, nil
		},
	}
	service, _ := newTestService(provider, WithArchive(repo), WithClock(func() time.Time { return fetchedAt }))

	if _, err := service.Matches(t.Context(), MatchesRequest{Round: validRound()}); err != nil {
		t.Fatalf("matches: %v", err)
	}
}

func TestDataService_ArchiveFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	repo.On("UpsertMany", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	provider := &stubProvider{
		roundMatches: func(tournament.RoundQuery) ([]fixture.Match, error) {
			return []fixture.Match{sampleMatch(1, "a")}, nil
		},
	}
	service, _ := newTestService(provider, WithArchive(repo))

	if _, err := service.Matches(t.Context(), MatchesRequest{Round: validRound()}); err != nil {
		t.Fatalf("expected archive failure to be logged only, got %v", err)
	}
}

func TestRecordingFetcher_SkipsNonJSONBodies(t *testing.T) {
	t.Parallel()

	fetchedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	html := &stubSession{body: []byte("<html>blocked</html>")}
	recorder := &recordingFetcher{inner: html, source: tournament.SourceSofascore, enabled: true, now: func() time.Time { return fetchedAt }}

	body, err := recorder.Fetch(t.Context(), "https://api.sofascore.com/api/v1/team/1/players")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != "<html>blocked</html>" {
		t.Fatalf("expected body to be passed through, got %q", body)
	}
	if len(recorder.payloads) != 0 {
		t.Fatalf("expected html body to stay out of the archive, got %d payloads", len(recorder.payloads))
	}

	recorder.inner = &stubSession{body: []byte(`{"players":[]}`)}
	if _, err := recorder.Fetch(t.Context(), "https://api.sofascore.com/api/v1/team/2/players"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(recorder.payloads) != 1 || recorder.payloads[0].EntityType != "team.players" {
		t.Fatalf("expected one team.players payload, got %+v", recorder.payloads)
	}
}

func TestDataService_ArchiveSkipsNonJSONBodies(t *testing.T) {
	t.Parallel()

	repo := rawdatamock.NewRepository(t)
	provider := &stubProvider{
		roundMatches: func(tournament.RoundQuery) ([]fixture.Match, error) {
			return []fixture.Match{sampleMatch(1, "a")}, nil
		},
	}
	service, opener := newTestService(provider, WithArchive(repo))
	opener.session.body = []byte("<!doctype html><title>Access denied</title>")

	if _, err := service.Matches(t.Context(), MatchesRequest{Round: validRound()}); err != nil {
		t.Fatalf("matches: %v", err)
	}
	repo.AssertNotCalled(t, "UpsertMany", mock.Anything, mock.Anything)
}

func TestPayloadEntity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		url        string
		entityType string
		entityKey  string
	}{
		{
			url:        "https://api.sofascore.com/api/v1/event/12436870/shotmap",
			entityType: "event.shotmap",
			entityKey:  "/api/v1/event/12436870/shotmap",
		},
		{
			url:        "https://www.sofavpn.com/api/v1/event/xdbsZdb/h2h/events",
			entityType: "event.h2h.events",
			entityKey:  "/api/v1/event/xdbsZdb/h2h/events",
		},
		{
			url:        "https://api.sofascore.com/api/v1/unique-tournament/17/season/61627/standings/total",
			entityType: "unique-tournament.season.standings.total",
			entityKey:  "/api/v1/unique-tournament/17/season/61627/standings/total",
		},
		{
			url:        "https://www.sofascore.com/api/v1/team/42/unique-tournament/17/season/61627/top-players/overall",
			entityType: "team.unique-tournament.season.top-players.overall",
			entityKey:  "/api/v1/team/42/unique-tournament/17/season/61627/top-players/overall",
		},
		{
			url:        "https://api.sofascore.com/",
			entityType: "api_response",
			entityKey:  "/",
		},
	}
	for _, tc := range cases {
		entityType, entityKey := payloadEntity(tc.url)
		if entityType != tc.entityType || entityKey != tc.entityKey {
			t.Fatalf("payloadEntity(%q) = (%q, %q), want (%q, %q)", tc.url, entityType, entityKey, tc.entityType, tc.entityKey)
		}
	}
}
