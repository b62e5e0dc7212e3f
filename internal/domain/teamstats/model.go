package teamstats

import (
	"github.com/riskibarqy/fcdata/internal/domain/standing"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

// Stat is one season statistic for a team. Value may be a number, a
// string, a bool or null depending on the statistic.
type Stat struct {
	standing.TeamRef
	Name  string
	Value jv.Value
}

func (s Stat) Row() tabular.Row {
	return append(s.TeamRef.Cells(),
		tabular.Cell{Column: "stat", Value: jv.Str(s.Name)},
		tabular.Cell{Column: "value", Value: s.Value},
	)
}

// ReservedKeys are statistics keys that collide with identity columns and
// are never emitted as stats.
var ReservedKeys = map[string]struct{}{
	"country":    {},
	"tournament": {},
	"team_name":  {},
	"team_id":    {},
}
