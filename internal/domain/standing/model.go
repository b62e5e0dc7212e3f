package standing

import (
	"fmt"
	"strings"

	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

// Category is one of the three parallel standings tables.
type Category string

const (
	CategoryTotal Category = "total"
	CategoryHome  Category = "home"
	CategoryAway  Category = "away"
)

// Categories returns the categories in the order they are fetched.
func Categories() []Category {
	return []Category{CategoryTotal, CategoryHome, CategoryAway}
}

func ParseCategory(raw string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryTotal:
		return CategoryTotal, nil
	case CategoryHome:
		return CategoryHome, nil
	case CategoryAway:
		return CategoryAway, nil
	default:
		return "", fmt.Errorf("invalid standings category %q", raw)
	}
}

// Label is the capitalized form stored on rows: Total, Home or Away.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// TeamRef identifies a team within a tournament; it is what squad and
// season-stat lookups are keyed on.
type TeamRef struct {
	Country    jv.Value
	Tournament jv.Value
	TeamName   jv.Value
	TeamID     jv.Value
}

func (t TeamRef) Cells() tabular.Row {
	return tabular.Row{
		{Column: "country", Value: t.Country},
		{Column: "tournament", Value: t.Tournament},
		{Column: "team_name", Value: t.TeamName},
		{Column: "team_id", Value: t.TeamID},
	}
}

// Row is one team's line in one standings category.
type Row struct {
	TeamRef
	Position      jv.Value
	Matches       jv.Value
	Wins          jv.Value
	Draws         jv.Value
	Losses        jv.Value
	ScoresFor     jv.Value
	ScoresAgainst jv.Value
	Points        jv.Value
	Category      Category
}

func (r Row) Row() tabular.Row {
	return append(r.TeamRef.Cells(),
		tabular.Cell{Column: "position", Value: r.Position},
		tabular.Cell{Column: "matches", Value: r.Matches},
		tabular.Cell{Column: "wins", Value: r.Wins},
		tabular.Cell{Column: "draws", Value: r.Draws},
		tabular.Cell{Column: "losses", Value: r.Losses},
		tabular.Cell{Column: "scores_for", Value: r.ScoresFor},
		tabular.Cell{Column: "scores_against", Value: r.ScoresAgainst},
		tabular.Cell{Column: "points", Value: r.Points},
		tabular.Cell{Column: "category", Value: jv.Str(r.Category.Label())},
	)
}

// Teams returns the team references of rows in category, in table order.
func Teams(rows []Row, category Category) []TeamRef {
	out := make([]TeamRef, 0, len(rows))
	for _, row := range rows {
		if row.Category != category {
			continue
		}
		out = append(out, row.TeamRef)
	}
	return out
}
