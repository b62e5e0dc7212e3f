package sofascore

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fcdata/internal/domain/fixture"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

// RoundMatches lists the fixtures of one round. Every match carries its
// score breakdown; callers drop it when they only want the base columns.
func (c *Client) RoundMatches(ctx context.Context, fetcher usecase.Fetcher, source tournament.Source, query tournament.RoundQuery) ([]fixture.Match, error) {
	url, err := c.RoundURL(source, query)
	if err != nil {
		return nil, err
	}
	doc, err := c.fetchDocument(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}

	events, err := eventList(doc)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: no matches for tournament %d season %d week %d",
			usecase.ErrNoData, query.TournamentID, query.SeasonID, query.Week)
	}
	return parseEvents(events), nil
}

// HeadToHead returns previous meetings of the two sides of match. An empty
// history is not an error.
func (c *Client) HeadToHead(ctx context.Context, fetcher usecase.Fetcher, source tournament.Source, match fixture.Match) ([]fixture.Match, error) {
	url, err := c.headToHeadURL(source, match.CustomID)
	if err != nil {
		return nil, err
	}
	doc, err := c.fetchDocument(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}

	events, err := eventList(doc)
	if err != nil {
		return nil, err
	}
	return parseEvents(events), nil
}

func eventList(doc jv.Value) ([]jv.Value, error) {
	events := doc.Get("events")
	if !events.IsArray() {
		return nil, fmt.Errorf("%w: 'events' key is missing or not a list", usecase.ErrInvalidShape)
	}
	return events.Items(), nil
}

func parseEvents(events []jv.Value) []fixture.Match {
	out := make([]fixture.Match, 0, len(events))
	for _, event := range events {
		out = append(out, matchFromEvent(event))
	}
	return out
}

// matchFromEvent flattens one event object. Absent fields become "".
func matchFromEvent(event jv.Value) fixture.Match {
	customID, _ := event.Get("customId").Str()
	return fixture.Match{
		Identity: fixture.Identity{
			Country:    event.Get("tournament", "category", "name").OrEmpty(),
			Tournament: event.Get("tournament", "name").OrEmpty(),
			Season:     event.Get("season", "year").OrEmpty(),
			Week:       event.Get("roundInfo", "round").OrEmpty(),
			GameID:     event.Get("id").OrEmpty(),
		},
		HomeTeam:       event.Get("homeTeam", "name").OrEmpty(),
		HomeTeamID:     event.Get("homeTeam", "id").OrEmpty(),
		AwayTeam:       event.Get("awayTeam", "name").OrEmpty(),
		AwayTeamID:     event.Get("awayTeam", "id").OrEmpty(),
		InjuryTime1:    event.Get("time", "injuryTime1").OrEmpty(),
		InjuryTime2:    event.Get("time", "injuryTime2").OrEmpty(),
		StartTimestamp: event.Get("startTimestamp").OrEmpty(),
		Status:         event.Get("status", "description").OrEmpty(),
		CustomID:       customID,
		Scores: &fixture.Scoreline{
			Home: scoreFrom(event.Get("homeScore")),
			Away: scoreFrom(event.Get("awayScore")),
		},
	}
}

func scoreFrom(score jv.Value) fixture.Score {
	return fixture.Score{
		Current:    score.Get("current").OrEmpty(),
		Display:    score.Get("display").OrEmpty(),
		Period1:    score.Get("period1").OrEmpty(),
		Period2:    score.Get("period2").OrEmpty(),
		NormalTime: score.Get("normaltime").OrEmpty(),
	}
}
