package fixture

import (
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

// Identity is the set of match fields carried into per-match records
// such as statistics and shots.
type Identity struct {
	Country    jv.Value
	Tournament jv.Value
	Season     jv.Value
	Week       jv.Value
	GameID     jv.Value
}

func (i Identity) Cells() tabular.Row {
	return tabular.Row{
		{Column: "country", Value: i.Country},
		{Column: "tournament", Value: i.Tournament},
		{Column: "season", Value: i.Season},
		{Column: "week", Value: i.Week},
		{Column: "game_id", Value: i.GameID},
	}
}

// Score is one side's score breakdown.
type Score struct {
	Current    jv.Value
	Display    jv.Value
	Period1    jv.Value
	Period2    jv.Value
	NormalTime jv.Value
}

// Scoreline holds both sides' score breakdowns.
type Scoreline struct {
	Home Score
	Away Score
}

// Match is one scheduled or played fixture. CustomID is the upstream key
// used for head-to-head lookups and is not part of the row.
type Match struct {
	Identity
	HomeTeam       jv.Value
	HomeTeamID     jv.Value
	AwayTeam       jv.Value
	AwayTeamID     jv.Value
	InjuryTime1    jv.Value
	InjuryTime2    jv.Value
	StartTimestamp jv.Value
	Status         jv.Value
	CustomID       string

	// Scores is set when the score columns are wanted in the row.
	Scores *Scoreline
}

func (m Match) Row() tabular.Row {
	row := m.Identity.Cells()
	row = append(row,
		tabular.Cell{Column: "home_team", Value: m.HomeTeam},
		tabular.Cell{Column: "home_team_id", Value: m.HomeTeamID},
		tabular.Cell{Column: "away_team", Value: m.AwayTeam},
		tabular.Cell{Column: "away_team_id", Value: m.AwayTeamID},
		tabular.Cell{Column: "injury_time_1", Value: m.InjuryTime1},
		tabular.Cell{Column: "injury_time_2", Value: m.InjuryTime2},
		tabular.Cell{Column: "start_timestamp", Value: m.StartTimestamp},
		tabular.Cell{Column: "status", Value: m.Status},
	)
	if m.Scores == nil {
		return row
	}
	return append(row,
		tabular.Cell{Column: "home_score_current", Value: m.Scores.Home.Current},
		tabular.Cell{Column: "home_score_display", Value: m.Scores.Home.Display},
		tabular.Cell{Column: "home_score_period1", Value: m.Scores.Home.Period1},
		tabular.Cell{Column: "home_score_period2", Value: m.Scores.Home.Period2},
		tabular.Cell{Column: "home_score_normaltime", Value: m.Scores.Home.NormalTime},
		tabular.Cell{Column: "away_score_current", Value: m.Scores.Away.Current},
		tabular.Cell{Column: "away_score_display", Value: m.Scores.Away.Display},
		tabular.Cell{Column: "away_score_period1", Value: m.Scores.Away.Period1},
		tabular.Cell{Column: "away_score_period2", Value: m.Scores.Away.Period2},
		tabular.Cell{Column: "away_score_normaltime", Value: m.Scores.Away.NormalTime},
	)
}

// WithoutScores returns a copy of m that flattens to the 13 base columns.
func (m Match) WithoutScores() Match {
	m.Scores = nil
	return m
}
