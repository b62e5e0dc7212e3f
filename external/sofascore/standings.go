package sofascore

import (
	"context"

	"github.com/riskibarqy/fcdata/internal/domain/standing"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

// Standings fetches one category of the league table.
func (c *Client) Standings(ctx context.Context, fetcher usecase.Fetcher, source tournament.Source, query tournament.SeasonQuery, category standing.Category) ([]standing.Row, error) {
	url, err := c.standingsURL(source, query, category)
	if err != nil {
		return nil, err
	}
	doc, err := c.fetchDocument(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}
	return parseStandings(doc, category)
}

// parseStandings flattens standings[].rows[]. Country and tournament come
// from the enclosing table, not the row.
func parseStandings(doc jv.Value, category standing.Category) ([]standing.Row, error) {
	tables, err := listAt(doc, "standings")
	if err != nil {
		return nil, err
	}

	var out []standing.Row
	for _, table := range tables {
		country := table.Get("tournament", "category", "name")
		name := table.Get("tournament", "name")
		for _, row := range table.Get("rows").Items() {
			out = append(out, standing.Row{
				TeamRef: standing.TeamRef{
					Country:    country,
					Tournament: name,
					TeamName:   row.Get("team", "name"),
					TeamID:     row.Get("team", "id"),
				},
				Position:      row.Get("position"),
				Matches:       row.Get("matches"),
				Wins:          row.Get("wins"),
				Draws:         row.Get("draws"),
				Losses:        row.Get("losses"),
				ScoresFor:     row.Get("scoresFor"),
				ScoresAgainst: row.Get("scoresAgainst"),
				Points:        row.Get("points"),
				Category:      category,
			})
		}
	}
	return out, nil
}
