package sofascore

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fcdata/internal/domain/playerstats"
	"github.com/riskibarqy/fcdata/internal/domain/squad"
	"github.com/riskibarqy/fcdata/internal/domain/standing"
	"github.com/riskibarqy/fcdata/internal/domain/teamstats"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

func (c *Client) Squad(ctx context.Context, fetcher usecase.Fetcher, source tournament.Source, team standing.TeamRef) ([]squad.Member, error) {
	url, err := c.squadURL(source, team)
	if err != nil {
		return nil, err
	}
	doc, err := c.fetchDocument(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}
	return parseSquad(team, doc)
}

func (c *Client) TeamStatistics(ctx context.Context, fetcher usecase.Fetcher, source tournament.Source, query tournament.SeasonQuery, team standing.TeamRef) ([]teamstats.Stat, error) {
	url, err := c.teamSeasonURL(source, query, team, "statistics/overall")
	if err != nil {
		return nil, err
	}
	doc, err := c.fetchDocument(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}
	return parseTeamStatistics(team, doc)
}

func (c *Client) TopPlayers(ctx context.Context, fetcher usecase.Fetcher, source tournament.Source, query tournament.SeasonQuery, team standing.TeamRef) ([]playerstats.Stat, error) {
	url, err := c.teamSeasonURL(source, query, team, "top-players/overall")
	if err != nil {
		return nil, err
	}
	doc, err := c.fetchDocument(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}
	return parseTopPlayers(team, doc)
}

func parseSquad(team standing.TeamRef, doc jv.Value) ([]squad.Member, error) {
	entries, err := listAt(doc, "players")
	if err != nil {
		return nil, err
	}

	out := make([]squad.Member, 0, len(entries))
	for _, entry := range entries {
		player := entry.Get("player")
		out = append(out, squad.Member{
			TeamRef:        team,
			PlayerName:     player.Get("name"),
			PlayerID:       player.Get("id"),
			BirthTimestamp: player.Get("dateOfBirthTimestamp"),
			Height:         player.Get("height"),
			PlayerCountry:  player.Get("country", "name"),
			Position:       player.Get("position"),
			PreferredFoot:  player.Get("preferredFoot"),
			ContractUntil:  player.Get("contractUntilTimestamp"),
			MarketValue:    player.Get("proposedMarketValueRaw", "value"),
			MarketCurrency: player.Get("proposedMarketValueRaw", "currency"),
		})
	}
	return out, nil
}

// objectAt returns doc[key] when it is an object. A missing key yields
// an empty Value that iterates as nothing.
func objectAt(doc jv.Value, key string) (jv.Value, error) {
	value := doc.Get(key)
	if value.IsMissing() || value.IsObject() {
		return value, nil
	}
	return jv.Value{}, fmt.Errorf("%w: %q is %s, not an object", usecase.ErrInvalidShape, key, value.Kind())
}

// parseTeamStatistics emits one stat per key of the statistics object,
// skipping keys that would shadow the identity columns.
func parseTeamStatistics(team standing.TeamRef, doc jv.Value) ([]teamstats.Stat, error) {
	stats, err := objectAt(doc, "statistics")
	if err != nil {
		return nil, err
	}

	out := make([]teamstats.Stat, 0, stats.Len())
	stats.Each(func(key string, value jv.Value) {
		if _, reserved := teamstats.ReservedKeys[key]; reserved {
			return
		}
		out = append(out, teamstats.Stat{TeamRef: team, Name: key, Value: value})
	})
	return out, nil
}

// parseTopPlayers walks topPlayers{category: [{player, statistics}]} and
// emits one stat per player statistic. The same player usually appears
// under several categories; callers deduplicate.
func parseTopPlayers(team standing.TeamRef, doc jv.Value) ([]playerstats.Stat, error) {
	categories, err := objectAt(doc, "topPlayers")
	if err != nil {
		return nil, err
	}

	var out []playerstats.Stat
	categories.Each(func(_ string, entries jv.Value) {
		for _, entry := range entries.Items() {
			player := entry.Get("player")
			entry.Get("statistics").Each(func(key string, value jv.Value) {
				if _, skipped := playerstats.SkippedKeys[key]; skipped {
					return
				}
				out = append(out, playerstats.Stat{
					TeamRef:    team,
					PlayerName: player.Get("name"),
					PlayerID:   player.Get("id"),
					Position:   player.Get("position"),
					Name:       key,
					Value:      value,
				})
			})
		}
	})
	return out, nil
}
