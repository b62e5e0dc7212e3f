package sofascore

import (
	"context"

	"github.com/riskibarqy/fcdata/internal/domain/fixture"
	"github.com/riskibarqy/fcdata/internal/domain/matchstat"
	"github.com/riskibarqy/fcdata/internal/domain/shot"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

func (c *Client) MatchStatistics(ctx context.Context, fetcher usecase.Fetcher, source tournament.Source, match fixture.Match) ([]matchstat.Item, error) {
	url, err := c.eventURL(source, match.GameID, "statistics")
	if err != nil {
		return nil, err
	}
	doc, err := c.fetchDocument(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}
	return parseStatistics(match.Identity, doc)
}

func (c *Client) MatchShots(ctx context.Context, fetcher usecase.Fetcher, source tournament.Source, match fixture.Match) ([]shot.Shot, error) {
	url, err := c.eventURL(source, match.GameID, "shotmap")
	if err != nil {
		return nil, err
	}
	doc, err := c.fetchDocument(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}
	return parseShots(match.Identity, doc)
}

// parseStatistics walks statistics -> groups -> statisticsItems. A match
// without statistics yields no items.
func parseStatistics(identity fixture.Identity, doc jv.Value) ([]matchstat.Item, error) {
	periods, err := listAt(doc, "statistics")
	if err != nil {
		return nil, err
	}

	var out []matchstat.Item
	for _, period := range periods {
		for _, group := range period.Get("groups").Items() {
			for _, item := range group.Get("statisticsItems").Items() {
				out = append(out, matchstat.Item{
					Identity:  identity,
					Period:    period.Get("period"),
					GroupName: group.Get("groupName"),
					StatName:  item.Get("name"),
					HomeValue: item.Get("home"),
					AwayValue: item.Get("away"),
				})
			}
		}
	}
	return out, nil
}

func parseShots(identity fixture.Identity, doc jv.Value) ([]shot.Shot, error) {
	entries, err := listAt(doc, "shotmap")
	if err != nil {
		return nil, err
	}

	out := make([]shot.Shot, 0, len(entries))
	for _, entry := range entries {
		out = append(out, shot.Shot{
			Identity:          identity,
			PlayerName:        entry.Get("player", "name"),
			PlayerID:          entry.Get("player", "id"),
			PlayerPosition:    entry.Get("player", "position"),
			IsHome:            entry.Get("isHome"),
			IncidentType:      entry.Get("incidentType"),
			ShotType:          entry.Get("shotType"),
			BodyPart:          entry.Get("bodyPart"),
			GoalType:          entry.Get("goalType"),
			Situation:         entry.Get("situation"),
			GoalMouthLocation: entry.Get("goalMouthLocation"),
			XG:                entry.Get("xg"),
			XGOT:              entry.Get("xgot"),
			PlayerCoordinates: point3(entry.Get("playerCoordinates")),
			GoalMouth:         point3(entry.Get("goalMouthCoordinates")),
			DrawStart:         point2(entry.Get("draw", "start")),
			DrawEnd:           point2(entry.Get("draw", "end")),
			DrawGoal:          point2(entry.Get("draw", "goal")),
			Block:             point3(entry.Get("blockCoordinates")),
			Time:              entry.Get("time"),
			TimeSeconds:       entry.Get("timeSeconds"),
			AddedTime:         addedTime(entry.Get("addedTime")),
		})
	}
	return out, nil
}

func point3(v jv.Value) shot.Point3 {
	return shot.Point3{X: v.Get("x"), Y: v.Get("y"), Z: v.Get("z")}
}

func point2(v jv.Value) shot.Point2 {
	return shot.Point2{X: v.Get("x"), Y: v.Get("y")}
}

// addedTime coerces stoppage minutes to an integer; anything absent or
// non-numeric counts as 0.
func addedTime(v jv.Value) int64 {
	n, ok := v.Int64()
	if !ok {
		return 0
	}
	return n
}
