package squad

import (
	"github.com/riskibarqy/fcdata/internal/domain/standing"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

// Member is one player on a team roster.
type Member struct {
	standing.TeamRef
	PlayerName     jv.Value
	PlayerID       jv.Value
	BirthTimestamp jv.Value
	Height         jv.Value
	PlayerCountry  jv.Value
	Position       jv.Value
	PreferredFoot  jv.Value
	ContractUntil  jv.Value
	MarketValue    jv.Value
	MarketCurrency jv.Value
}

func (m Member) Row() tabular.Row {
	return append(m.TeamRef.Cells(),
		tabular.Cell{Column: "player_name", Value: m.PlayerName},
		tabular.Cell{Column: "player_id", Value: m.PlayerID},
		tabular.Cell{Column: "birth_timestamp", Value: m.BirthTimestamp},
		tabular.Cell{Column: "height", Value: m.Height},
		tabular.Cell{Column: "player_country", Value: m.PlayerCountry},
		tabular.Cell{Column: "position", Value: m.Position},
		tabular.Cell{Column: "preferred_foot", Value: m.PreferredFoot},
		tabular.Cell{Column: "contract_until", Value: m.ContractUntil},
		tabular.Cell{Column: "market_value", Value: m.MarketValue},
		tabular.Cell{Column: "market_currency", Value: m.MarketCurrency},
	)
}
