package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/fcdata/external/browser"
	"github.com/riskibarqy/fcdata/external/httpfetch"
	"github.com/riskibarqy/fcdata/external/sofascore"
	"github.com/riskibarqy/fcdata/internal/config"
	"github.com/riskibarqy/fcdata/internal/infrastructure/export"
	"github.com/riskibarqy/fcdata/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fcdata/internal/interfaces/httpapi"
	"github.com/riskibarqy/fcdata/internal/platform/logging"
	"github.com/riskibarqy/fcdata/internal/platform/resilience"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

// Runtime holds the data service and the resources it was built on.
type Runtime struct {
	Service *usecase.DataService
	closers []func() error
}

// Close releases every optional sink in reverse order of creation.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

func NewRuntime(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	provider := sofascore.NewClient(sofascore.ClientConfig{
		APIBaseURL: cfg.SofascoreAPIURL,
		WebBaseURL: cfg.SofascoreWebURL,
		Logger:     logger,
	})

	runtime := &Runtime{}
	opts := []usecase.DataServiceOption{
		usecase.WithExporter(export.NewFileExporter(export.Config{Dir: cfg.ExportDir, Logger: logger})),
	}

	if cfg.ArchiveEnabled {
		db, err := postgres.Open(ctx, postgres.Config{
			URL:                         cfg.DBURL,
			DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
		})
		if err != nil {
			return nil, fmt.Errorf("open archive database: %w", err)
		}
		runtime.closers = append(runtime.closers, db.Close)
		opts = append(opts, usecase.WithArchive(postgres.NewRawDataRepository(db)))
		logger.Info("raw payload archive enabled")
	}

	if cfg.StreamEnabled {
		client, err := export.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			_ = runtime.Close()
			return nil, fmt.Errorf("connect stream redis: %w", err)
		}
		publisher := export.NewStreamPublisher(client, export.StreamConfig{
			Prefix: cfg.StreamPrefix,
			MaxLen: cfg.StreamMaxLen,
		})
		runtime.closers = append(runtime.closers, publisher.Close)
		opts = append(opts, usecase.WithPublisher(publisher))
		logger.Info("dataset stream enabled", "prefix", cfg.StreamPrefix)
	}

	opener := newSessionOpener(cfg, logger)
	if closer, ok := opener.(interface{ Close() error }); ok {
		runtime.closers = append(runtime.closers, closer.Close)
	}
	runtime.Service = usecase.NewDataService(provider, opener, logger, opts...)
	return runtime, nil
}

func newSessionOpener(cfg config.Config, logger *logging.Logger) usecase.SessionOpener {
	if cfg.FetchMode == config.FetchModeHTTP {
		return httpfetch.NewOpener(httpfetch.Config{
			UserAgent: cfg.BrowserUserAgent,
			Breaker: resilience.BreakerConfig{
				Enabled:          cfg.UpstreamBreakerEnabled,
				FailureThreshold: cfg.UpstreamBreakerFailures,
				OpenTimeout:      cfg.UpstreamBreakerOpenTimeout,
			},
			Logger: logger,
		})
	}
	return browser.NewOpener(browser.Config{
		ExecPath:  cfg.BrowserExecPath,
		UserAgent: cfg.BrowserUserAgent,
		Logger:    logger,
	})
}

// DefaultFetchOptions turns the configured defaults into per-call options.
func DefaultFetchOptions(cfg config.Config) usecase.FetchOptions {
	return usecase.FetchOptions{
		Source:  cfg.DataSource,
		Timeout: cfg.ElementLoadTimeout,
		Export: usecase.ExportFormats{
			JSON:  cfg.ExportJSON,
			Excel: cfg.ExportExcel,
		},
	}
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, *Runtime, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	runtime, err := NewRuntime(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	defaults := DefaultFetchOptions(cfg)
	handler := httpapi.NewHandler(runtime.Service, httpapi.Defaults{
		Source:  defaults.Source,
		Timeout: defaults.Timeout,
		Export:  defaults.Export,
	}, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, runtime, nil
}
