package usecase

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

// DataKind names a dataset. The value is also the file name suffix used
// when the dataset is exported.
type DataKind string

const (
	KindMatches     DataKind = "match_data"
	KindMatchStats  DataKind = "match_stats_data"
	KindShots       DataKind = "shots_data"
	KindPastMatches DataKind = "past_matches_data"
	KindStandings   DataKind = "standings_data"
	KindSquads      DataKind = "squad_data"
	KindTeamStats   DataKind = "team_stats_data"
	KindPlayerStats DataKind = "player_stats_data"
)

const DefaultElementLoadTimeout = 10 * time.Second

type ExportFormats struct {
	JSON  bool
	Excel bool
}

func (f ExportFormats) Any() bool {
	return f.JSON || f.Excel
}

// ExportName carries the metadata an export file name is derived from.
// Empty Season or Week are left out of the name.
type ExportName struct {
	Source     tournament.Source
	Country    string
	Tournament string
	Season     string
	Week       string
	Kind       DataKind
}

// FetchOptions are the per-call knobs shared by every operation.
type FetchOptions struct {
	Source  tournament.Source
	Timeout time.Duration
	Export  ExportFormats

	// intermediate datasets feed a follow-up call and are neither exported
	// nor published.
	intermediate bool
}

func (o FetchOptions) asIntermediate() FetchOptions {
	o.Export = ExportFormats{}
	o.intermediate = true
	return o
}

func (o FetchOptions) normalize() (FetchOptions, error) {
	if o.Source == "" {
		o.Source = tournament.SourceSofascore
	}
	if !o.Source.Valid() {
		return FetchOptions{}, fmt.Errorf("%w: invalid data source %q", ErrInvalidInput, o.Source)
	}
	if o.Timeout < 0 {
		return FetchOptions{}, fmt.Errorf("%w: element load timeout must be > 0", ErrInvalidInput)
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultElementLoadTimeout
	}
	return o, nil
}

// Dataset is the result of one operation: the typed records, the table
// they flatten into and any files written for it.
type Dataset[T tabular.Rower] struct {
	Kind     DataKind
	Items    []T
	Table    *tabular.Table
	Exported []string
}

func (d Dataset[T]) Len() int {
	return len(d.Items)
}
