package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fcdata/internal/domain/rawdata"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/platform/logging"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

// DataService runs one fetch, normalize and aggregate pass per call. Every
// call opens its own fetch session and closes it before returning.
type DataService struct {
	provider  SportDataProvider
	sessions  SessionOpener
	exporter  Exporter
	archive   rawdata.Repository
	publisher DatasetPublisher
	logger    *logging.Logger
	now       func() time.Time
}

// DataServiceOption wires an optional sink into the service.
type DataServiceOption func(*DataService)

func WithExporter(exporter Exporter) DataServiceOption {
	return func(s *DataService) {
		s.exporter = exporter
	}
}

// WithArchive stores every successfully fetched body in repo.
func WithArchive(repo rawdata.Repository) DataServiceOption {
	return func(s *DataService) {
		s.archive = repo
	}
}

func WithPublisher(publisher DatasetPublisher) DataServiceOption {
	return func(s *DataService) {
		s.publisher = publisher
	}
}

func WithClock(now func() time.Time) DataServiceOption {
	return func(s *DataService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewDataService(provider SportDataProvider, sessions SessionOpener, logger *logging.Logger, opts ...DataServiceOption) *DataService {
	if logger == nil {
		logger = logging.Default()
	}
	svc := &DataService{
		provider: provider,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *DataService) withSession(ctx context.Context, opts FetchOptions, fn func(ctx context.Context, fetcher Fetcher) error) error {
	session, err := s.sessions.Open(ctx, SessionOptions{Timeout: opts.Timeout})
	if err != nil {
		return fmt.Errorf("open fetch session: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			s.logger.WarnContext(ctx, "close fetch session failed", "error", closeErr)
		}
	}()

	recorder := &recordingFetcher{
		inner:   session,
		source:  opts.Source,
		enabled: s.archive != nil,
		now:     s.now,
	}
	runErr := fn(ctx, recorder)
	s.archivePayloads(ctx, recorder.payloads)
	return runErr
}

func (s *DataService) archivePayloads(ctx context.Context, payloads []rawdata.Payload) {
	if s.archive == nil || len(payloads) == 0 {
		return
	}
	if err := s.archive.UpsertMany(ctx, payloads); err != nil {
		s.logger.WarnContext(ctx, "archive raw payloads failed", "count", len(payloads), "error", err)
		return
	}
	s.logger.DebugContext(ctx, "archived raw payloads", "count", len(payloads))
}

// deliver exports and publishes a finished dataset. Publishing failures are
// logged; export failures are returned wrapped in ErrExport.
func (s *DataService) deliver(ctx context.Context, table *tabular.Table, name ExportName, opts FetchOptions) ([]string, error) {
	if opts.intermediate {
		return nil, nil
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, name.Kind, table); err != nil {
			s.logger.WarnContext(ctx, "publish dataset failed", "kind", name.Kind, "error", err)
		}
	}

	if !opts.Export.Any() {
		return nil, nil
	}
	if s.exporter == nil {
		return nil, fmt.Errorf("%w: exporter is not configured", ErrExport)
	}

	paths, err := s.exporter.Export(ctx, table, name, opts.Export)
	if err != nil {
		return paths, fmt.Errorf("%w: %s: %w", ErrExport, name.Kind, err)
	}
	for _, path := range paths {
		s.logger.InfoContext(ctx, "dataset exported", "kind", name.Kind, "path", path)
	}
	return paths, nil
}

func finish[T tabular.Rower](ctx context.Context, s *DataService, kind DataKind, builder *tabular.Builder[T], name ExportName, opts FetchOptions) (Dataset[T], error) {
	dataset := Dataset[T]{
		Kind:  kind,
		Items: builder.Items(),
		Table: builder.Table(),
	}
	if builder.Len() == 0 {
		return dataset, fmt.Errorf("%w: %s", ErrNoData, kind)
	}

	s.logger.InfoContext(ctx, "dataset ready",
		"kind", kind,
		"rows", builder.Len(),
		"source", opts.Source,
	)

	name.Kind = kind
	name.Source = opts.Source
	paths, err := s.deliver(ctx, dataset.Table, name, opts)
	dataset.Exported = paths
	if err != nil {
		return dataset, err
	}
	return dataset, nil
}

// recordingFetcher keeps a copy of every JSON body it returns so the call
// can archive them once it is done. Bodies that are not valid JSON are
// returned but never archived; the archive column is JSONB.
type recordingFetcher struct {
	inner    Fetcher
	source   tournament.Source
	enabled  bool
	now      func() time.Time
	payloads []rawdata.Payload
}

func (f *recordingFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := f.inner.Fetch(ctx, rawURL)
	if err != nil || !f.enabled || !sonic.Valid(body) {
		return body, err
	}
	entityType, entityKey := payloadEntity(rawURL)
	f.payloads = append(f.payloads, rawdata.NewPayload(string(f.source), entityType, entityKey, body, f.now()))
	return body, nil
}

// idSegments are path segments that are followed by an identifier.
var idSegments = map[string]struct{}{
	"event":             {},
	"team":              {},
	"unique-tournament": {},
	"season":            {},
	"round":             {},
}

// payloadEntity derives an entity type from the path with identifiers
// removed and uses the full path as the key, e.g. /api/v1/event/42/shotmap
// becomes ("event.shotmap", "/api/v1/event/42/shotmap").
func payloadEntity(rawURL string) (string, string) {
	path := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Path != "" {
		path = parsed.Path
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	parts := make([]string, 0, len(segments))
	previous := ""
	for i, segment := range segments {
		skip := segment == "" || (i < 2 && (segment == "api" || segment == "v1"))
		if _, ok := idSegments[previous]; ok {
			skip = true
		}
		previous = segment
		if skip {
			continue
		}
		parts = append(parts, segment)
	}
	if len(parts) == 0 {
		return "api_response", path
	}
	return strings.Join(parts, "."), path
}
