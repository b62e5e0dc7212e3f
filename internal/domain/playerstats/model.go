package playerstats

import (
	"github.com/riskibarqy/fcdata/internal/domain/standing"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

// Stat is one season statistic for one of a team's top players.
type Stat struct {
	standing.TeamRef
	PlayerName jv.Value
	PlayerID   jv.Value
	Position   jv.Value
	Name       string
	Value      jv.Value
}

func (s Stat) Row() tabular.Row {
	return append(s.TeamRef.Cells(),
		tabular.Cell{Column: "player_name", Value: s.PlayerName},
		tabular.Cell{Column: "player_id", Value: s.PlayerID},
		tabular.Cell{Column: "position", Value: s.Position},
		tabular.Cell{Column: "stat_name", Value: jv.Str(s.Name)},
		tabular.Cell{Column: "stat_value", Value: s.Value},
	)
}

// SkippedKeys are bookkeeping keys inside a player's statistics object.
var SkippedKeys = map[string]struct{}{
	"id":   {},
	"type": {},
}
