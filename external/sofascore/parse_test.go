package sofascore

import (
	"testing"

	"github.com/riskibarqy/fcdata/internal/domain/fixture"
	"github.com/riskibarqy/fcdata/internal/domain/playerstats"
	"github.com/riskibarqy/fcdata/internal/domain/standing"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

var identity = fixture.Identity{
	Country:    jv.Str("Spain"),
	Tournament: jv.Str("LaLiga"),
	Season:     jv.Str("24/25"),
	Week:       jv.Int(10),
	GameID:     jv.Int(12437786),
}

var team = standing.TeamRef{
	Country:    jv.Str("Spain"),
	Tournament: jv.Str("LaLiga"),
	TeamName:   jv.Str("Barcelona"),
	TeamID:     jv.Int(2817),
}

func mustParse(t *testing.T, body string) jv.Value {
	t.Helper()
	doc, err := jv.Parse([]byte(body))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestParseStatistics(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"statistics": [
			{"period": "ALL", "groups": [
				{"groupName": "Match overview", "statisticsItems": [
					{"name": "Ball possession", "home": "68%", "away": "32%"},
					{"name": "Expected goals", "home": "2.85", "away": "0.42"}
				]},
				{"groupName": "Shots", "statisticsItems": [
					{"name": "Total shots", "home": "23", "away": "6"}
				]}
			]},
			{"period": "1ST", "groups": [
				{"groupName": "Match overview", "statisticsItems": [
					{"name": "Ball possession", "home": "70%"}
				]}
			]}
		]
	}`)

	items, err := parseStatistics(identity, doc)
	if err != nil {
		t.Fatalf("parse statistics: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("unexpected item count: got=%d want=4", len(items))
	}
	last := items[3]
	if last.Period.Text() != "1ST" || last.GroupName.Text() != "Match overview" || last.HomeValue.Text() != "70%" {
		t.Fatalf("unexpected item: %+v", last)
	}
	if !last.AwayValue.IsNull() {
		t.Fatalf("expected absent away value to be null, got %v", last.AwayValue)
	}
	if items[0].GameID.Text() != "12437786" {
		t.Fatalf("expected match identity on item, got %s", items[0].GameID.Text())
	}
}

func TestParseStatistics_MissingKeyYieldsNothing(t *testing.T) {
	t.Parallel()

	items, err := parseStatistics(identity, mustParse(t, `{"error": {"code": 404, "message": "Not Found"}}`))
	if err != nil {
		t.Fatalf("parse statistics: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestParseShots(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"shotmap": [
			{
				"player": {"name": "Robert Lewandowski", "id": 41789, "position": "F"},
				"isHome": true,
				"shotType": "goal",
				"situation": "assisted",
				"bodyPart": "right-foot",
				"goalMouthLocation": "low-left",
				"xg": 0.54,
				"xgot": 0.81,
				"playerCoordinates": {"x": 8.5, "y": 52.1, "z": 0},
				"goalMouthCoordinates": {"x": 0, "y": 53.2, "z": 4.1},
				"draw": {"start": {"x": 52.1, "y": 8.5}, "end": {"x": 53.2, "y": 0}, "goal": {"x": 53.2, "y": 95.9}},
				"time": 45,
				"timeSeconds": 2751,
				"addedTime": 3
			},
			{
				"player": {"name": "Raphinha", "id": 831005},
				"isHome": true,
				"shotType": "block",
				"blockCoordinates": {"x": 14.2, "y": 40.1, "z": 0},
				"time": 12,
				"addedTime": null
			},
			{
				"player": {"name": "Pedri"},
				"time": 90,
				"addedTime": "4"
			}
		]
	}`)

	shots, err := parseShots(identity, doc)
	if err != nil {
		t.Fatalf("parse shots: %v", err)
	}
	if len(shots) != 3 {
		t.Fatalf("unexpected shot count: got=%d want=3", len(shots))
	}

	first := shots[0]
	if first.AddedTime != 3 || first.XG.Text() != "0.54" || first.DrawGoal.Y.Text() != "95.9" {
		t.Fatalf("unexpected first shot: %+v", first)
	}
	if !first.Block.X.IsNull() {
		t.Fatalf("expected null block coordinates on a goal, got %v", first.Block.X)
	}

	second := shots[1]
	if second.AddedTime != 0 {
		t.Fatalf("expected null added time to become 0, got %d", second.AddedTime)
	}
	if !second.PlayerCoordinates.X.IsNull() || !second.PlayerPosition.IsNull() {
		t.Fatalf("expected absent fields to be null, got %+v", second)
	}

	if shots[2].AddedTime != 4 {
		t.Fatalf("expected numeric string added time to parse, got %d", shots[2].AddedTime)
	}

	row := first.Row()
	if len(row) != 35 {
		t.Fatalf("unexpected shot column count: %d", len(row))
	}
	if row.Get("added_time").Text() != "3" {
		t.Fatalf("unexpected added_time cell: %v", row.Get("added_time"))
	}
}

func TestParseShots_AddedTimeDefaultsToZero(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"shotmap": [
			{"player": {"name": "Ferran Torres", "id": 862007}, "shotType": "miss", "time": 67},
			{"player": {"name": "Lamine Yamal", "id": 1402912}, "shotType": "save", "time": 90, "addedTime": "two"},
			{"player": {"name": "Dani Olmo", "id": 286033}, "shotType": "post", "time": 90, "addedTime": 1e30}
		]
	}`)

	shots, err := parseShots(identity, doc)
	if err != nil {
		t.Fatalf("parse shots: %v", err)
	}
	if len(shots) != 3 {
		t.Fatalf("unexpected shot count: got=%d want=3", len(shots))
	}
	for i, s := range shots {
		if s.AddedTime != 0 {
			t.Fatalf("shot %d: expected added time 0, got %d", i, s.AddedTime)
		}
		if cell := s.Row().Get("added_time"); cell.Text() != "0" {
			t.Fatalf("shot %d: unexpected added_time cell: %v", i, cell)
		}
	}
}

func TestParseSquad(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"players": [
			{"player": {
				"name": "Lamine Yamal", "id": 1402912, "position": "F", "height": 180,
				"preferredFoot": "Left", "dateOfBirthTimestamp": 1184112000,
				"contractUntilTimestamp": 1782777600, "country": {"name": "Spain"},
				"proposedMarketValueRaw": {"value": 180000000, "currency": "EUR"}
			}},
			{"player": {"name": "Inaki Pena", "id": 832411}}
		]
	}`)

	members, err := parseSquad(team, doc)
	if err != nil {
		t.Fatalf("parse squad: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("unexpected member count: got=%d want=2", len(members))
	}
	if members[0].PlayerCountry.Text() != "Spain" || members[0].MarketCurrency.Text() != "EUR" || members[0].BirthTimestamp.Text() != "1184112000" {
		t.Fatalf("unexpected member: %+v", members[0])
	}
	if !members[1].MarketValue.IsNull() || !members[1].PlayerCountry.IsNull() {
		t.Fatalf("expected absent nested fields to be null, got %+v", members[1])
	}
	if members[1].TeamName.Text() != "Barcelona" {
		t.Fatalf("expected team identity on member, got %s", members[1].TeamName.Text())
	}
}

func TestParseTeamStatistics_SkipsReservedKeys(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"statistics": {
			"goalsScored": 40,
			"team_name": "shadow",
			"averageBallPossession": 67.4,
			"country": "shadow",
			"id": 9931
		}
	}`)

	stats, err := parseTeamStatistics(team, doc)
	if err != nil {
		t.Fatalf("parse team statistics: %v", err)
	}
	names := make([]string, 0, len(stats))
	for _, stat := range stats {
		names = append(names, stat.Name)
	}
	want := []string{"averageBallPossession", "goalsScored", "id"}
	if len(names) != len(want) {
		t.Fatalf("unexpected stats: got=%v want=%v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("unexpected stats: got=%v want=%v", names, want)
		}
	}
	if stats[0].TeamName.Text() != "Barcelona" {
		t.Fatalf("expected identity from standings, got %s", stats[0].TeamName.Text())
	}
}

func TestParseTeamStatistics_RejectsNonObject(t *testing.T) {
	t.Parallel()

	if _, err := parseTeamStatistics(team, mustParse(t, `{"statistics": [1, 2]}`)); err == nil {
		t.Fatal("expected shape error for list statistics")
	}
	stats, err := parseTeamStatistics(team, mustParse(t, `{}`))
	if err != nil || len(stats) != 0 {
		t.Fatalf("expected no stats and no error for missing key, got %d %v", len(stats), err)
	}
}

func TestParseTopPlayers_DeduplicatesAcrossCategories(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"topPlayers": {
			"rating": [
				{"player": {"name": "Raphinha", "id": 831005, "position": "F"}, "statistics": {"rating": 7.9, "id": 1, "type": "overall", "appearances": 17}}
			],
			"goals": [
				{"player": {"name": "Raphinha", "id": 831005, "position": "F"}, "statistics": {"goals": 12, "id": 1, "type": "overall", "appearances": 17}}
			]
		}
	}`)

	stats, err := parseTopPlayers(team, doc)
	if err != nil {
		t.Fatalf("parse top players: %v", err)
	}
	if len(stats) != 4 {
		t.Fatalf("unexpected raw stat count: got=%d want=4", len(stats))
	}
	for _, stat := range stats {
		if stat.Name == "id" || stat.Name == "type" {
			t.Fatalf("bookkeeping key leaked: %s", stat.Name)
		}
	}

	builder := tabular.NewBuilder[playerstats.Stat](tabular.WithDeduplication())
	if added := builder.AddAll(stats); added != 3 {
		t.Fatalf("expected repeated appearances row to be dropped, kept %d", added)
	}
}
