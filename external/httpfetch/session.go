package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/fcdata/internal/platform/logging"
	"github.com/riskibarqy/fcdata/internal/platform/resilience"
	"github.com/riskibarqy/fcdata/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	maxBodySize      = 16 << 20
)

type Config struct {
	UserAgent string
	// Breaker guards the upstream across sessions. Timeouts, transport
	// errors and 5xx responses count as failures.
	Breaker resilience.BreakerConfig
	Logger  *logging.Logger
}

// Opener hands out sessions backed by one shared fasthttp client. It reads
// the JSON endpoints directly, without a browser.
type Opener struct {
	client    *fasthttp.Client
	userAgent string
	breaker   *resilience.Breaker
	logger    *logging.Logger
}

var _ usecase.SessionOpener = (*Opener)(nil)

func NewOpener(cfg Config) *Opener {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Opener{
		client: &fasthttp.Client{
			Name:                     userAgent,
			MaxResponseBodySize:      maxBodySize,
			NoDefaultUserAgentHeader: true,
		},
		userAgent: userAgent,
		breaker:   resilience.NewBreaker(cfg.Breaker),
		logger:    logger,
	}
}

func (o *Opener) Open(_ context.Context, opts usecase.SessionOptions) (usecase.Session, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = usecase.DefaultElementLoadTimeout
	}
	return &Session{opener: o, timeout: timeout}, nil
}

type Session struct {
	opener  *Opener
	timeout time.Duration
	closed  atomic.Bool
}

func (s *Session) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.closed.Load() {
		return nil, fmt.Errorf("%w: get %s: session closed", usecase.ErrTransport, url)
	}
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	var body []byte
	err := s.opener.breaker.Do(func() error {
		var err error
		body, err = s.get(ctx, url, timeout)
		return err
	}, countsAgainstUpstream)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil, fmt.Errorf("%w: get %s: %w", usecase.ErrTransport, url, err)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(string(body)) == "" {
		return nil, fmt.Errorf("%w: %s", usecase.ErrEmptyResponse, url)
	}
	return body, nil
}

func (s *Session) get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(s.opener.userAgent)
	req.Header.Set("Accept", "application/json")

	if err := s.opener.client.DoTimeout(req, resp, timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s after %s", usecase.ErrTimeout, url, timeout)
		}
		return nil, fmt.Errorf("%w: get %s: %v", usecase.ErrTransport, url, err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		s.opener.logger.WarnContext(ctx, "upstream returned non-2xx", "url", url, "status", status)
		return nil, &statusError{url: url, status: status}
	}
	return append([]byte(nil), resp.Body()...), nil
}

// Close ends this session only. The shared client stays open for other
// sessions until the Opener is closed.
func (s *Session) Close() error {
	s.closed.Store(true)
	return nil
}

// Close drops the idle connections of the shared client.
func (o *Opener) Close() error {
	o.client.CloseIdleConnections()
	return nil
}

type statusError struct {
	url    string
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: get %s: status %d", usecase.ErrTransport, e.url, e.status)
}

func (e *statusError) Unwrap() error {
	return usecase.ErrTransport
}

func countsAgainstUpstream(err error) bool {
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.status >= fasthttp.StatusInternalServerError
	}
	return errors.Is(err, usecase.ErrTransport) || errors.Is(err, usecase.ErrTimeout)
}
