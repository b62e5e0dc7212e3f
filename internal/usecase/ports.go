package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fcdata/internal/domain/fixture"
	"github.com/riskibarqy/fcdata/internal/domain/matchstat"
	"github.com/riskibarqy/fcdata/internal/domain/playerstats"
	"github.com/riskibarqy/fcdata/internal/domain/shot"
	"github.com/riskibarqy/fcdata/internal/domain/squad"
	"github.com/riskibarqy/fcdata/internal/domain/standing"
	"github.com/riskibarqy/fcdata/internal/domain/teamstats"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

// Fetcher returns the raw JSON body served at url. Implementations report
// ErrEmptyResponse for a blank body and ErrTransport (or ErrTimeout) when
// the page could not be loaded.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Session is a Fetcher bound to an acquired resource such as a browser.
type Session interface {
	Fetcher
	Close() error
}

type SessionOptions struct {
	// Timeout bounds how long a single fetch waits for content.
	Timeout time.Duration
}

type SessionOpener interface {
	Open(ctx context.Context, opts SessionOptions) (Session, error)
}

// SportDataProvider resolves upstream locators and normalizes responses.
type SportDataProvider interface {
	RoundURL(source tournament.Source, query tournament.RoundQuery) (string, error)
	RoundMatches(ctx context.Context, fetcher Fetcher, source tournament.Source, query tournament.RoundQuery) ([]fixture.Match, error)
	MatchStatistics(ctx context.Context, fetcher Fetcher, source tournament.Source, match fixture.Match) ([]matchstat.Item, error)
	MatchShots(ctx context.Context, fetcher Fetcher, source tournament.Source, match fixture.Match) ([]shot.Shot, error)
	HeadToHead(ctx context.Context, fetcher Fetcher, source tournament.Source, match fixture.Match) ([]fixture.Match, error)
	Standings(ctx context.Context, fetcher Fetcher, source tournament.Source, query tournament.SeasonQuery, category standing.Category) ([]standing.Row, error)
	Squad(ctx context.Context, fetcher Fetcher, source tournament.Source, team standing.TeamRef) ([]squad.Member, error)
	TeamStatistics(ctx context.Context, fetcher Fetcher, source tournament.Source, query tournament.SeasonQuery, team standing.TeamRef) ([]teamstats.Stat, error)
	TopPlayers(ctx context.Context, fetcher Fetcher, source tournament.Source, query tournament.SeasonQuery, team standing.TeamRef) ([]playerstats.Stat, error)
}

// Exporter persists a finished table to files and returns their paths.
type Exporter interface {
	Export(ctx context.Context, table *tabular.Table, name ExportName, formats ExportFormats) ([]string, error)
}

// DatasetPublisher pushes a finished table to a downstream consumer.
type DatasetPublisher interface {
	Publish(ctx context.Context, kind DataKind, table *tabular.Table) error
}
