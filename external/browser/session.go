package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/riskibarqy/fcdata/internal/platform/logging"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

type Config struct {
	// ExecPath points at a Chrome or Chromium binary. Empty lets chromedp
	// search the usual locations.
	ExecPath  string
	UserAgent string
	Logger    *logging.Logger
}

// Opener starts one headless browser per session.
type Opener struct {
	execPath  string
	userAgent string
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
		userAgent = DefaultUserAgent
	}
	return &Opener{
		execPath:  strings.TrimSpace(cfg.ExecPath),
		userAgent: userAgent,
		logger:    logger,
	}
}

func (o *Opener) Open(ctx context.Context, opts usecase.SessionOptions) (usecase.Session, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = usecase.DefaultElementLoadTimeout
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(o.userAgent),
	)
	if o.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(o.execPath))
	}

	// The browser outlives individual fetches but not the session, so it
	// hangs off a context that only Close cancels.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: start browser: %v", usecase.ErrTransport, err)
	}

	o.logger.DebugContext(ctx, "browser session started", "timeout", timeout.String())
	return &Session{
		browserCtx: browserCtx,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
		timeout: timeout,
		logger:  o.logger,
	}, nil
}

// Session drives a single browser tab. Fetches are serialized.
type Session struct {
	mu         sync.Mutex
	browserCtx context.Context
	cancel     context.CancelFunc
	timeout    time.Duration
	logger     *logging.Logger
	closed     bool
}

// Fetch navigates to url and returns the text the browser renders for it.
// JSON endpoints are shown inside a <pre> element.
func (s *Session) Fetch(ctx context.Context, url string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("%w: browser session is closed", usecase.ErrTransport)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, cancel := context.WithTimeout(s.browserCtx, s.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("pre", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(tabCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %s", usecase.ErrTimeout, url, s.timeout)
		}
		return nil, fmt.Errorf("%w: load %s: %v", usecase.ErrTransport, url, err)
	}

	body, err := ExtractBody(html)
	if err != nil {
		return nil, err
	}
	if body == "" {
		return nil, fmt.Errorf("%w: %s", usecase.ErrEmptyResponse, url)
	}
	s.logger.DebugContext(ctx, "browser fetch done", "url", url, "bytes", len(body))
	return []byte(body), nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	return nil
}

// ExtractBody returns the trimmed text of the first <pre> element, falling
// back to the whole body when the page has none.
func ExtractBody(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("%w: parse page: %v", usecase.ErrDecode, err)
	}
	if pre := doc.Find("pre").First(); pre.Length() > 0 {
		return strings.TrimSpace(pre.Text()), nil
	}
	return strings.TrimSpace(doc.Find("body").Text()), nil
}
