package matchstat

import (
	"github.com/riskibarqy/fcdata/internal/domain/fixture"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

// Item is one statistic for one match, period and group.
type Item struct {
	fixture.Identity
	Period    jv.Value
	GroupName jv.Value
	StatName  jv.Value
	HomeValue jv.Value
	AwayValue jv.Value
}

func (i Item) Row() tabular.Row {
	return append(i.Identity.Cells(),
		tabular.Cell{Column: "period", Value: i.Period},
		tabular.Cell{Column: "group_name", Value: i.GroupName},
		tabular.Cell{Column: "stat_name", Value: i.StatName},
		tabular.Cell{Column: "home_team_stat", Value: i.HomeValue},
		tabular.Cell{Column: "away_team_stat", Value: i.AwayValue},
	)
}
