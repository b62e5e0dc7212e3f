package sofascore

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/logging"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

// Hosts is the pair of origins one data source is served from. Round,
// event and squad endpoints live on API; team season stats, top players
// and head-to-head live on Web.
type Hosts struct {
	API string
	Web string
}

var defaultHosts = map[tournament.Source]Hosts{
	tournament.SourceSofascore: {
		API: "https://api.sofascore.com",
		Web: "https://www.sofascore.com",
	},
	tournament.SourceSofavpn: {
		API: "https://api.sofavpn.com",
		Web: "https://www.sofavpn.com",
	},
}

type ClientConfig struct {
	// APIBaseURL and WebBaseURL replace the built-in hosts of every source
	// when set. Used for mirrors and tests.
	APIBaseURL string
	WebBaseURL string
	Logger     *logging.Logger
}

// Client builds locators for the sofascore family of hosts and normalizes
// what they return. It does no I/O of its own; every call goes through the
// Fetcher it is handed.
type Client struct {
	apiOverride string
	webOverride string
	logger      *logging.Logger
}

var _ usecase.SportDataProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		apiOverride: strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/"),
		webOverride: strings.TrimRight(strings.TrimSpace(cfg.WebBaseURL), "/"),
		logger:      logger,
	}
}

func (c *Client) hosts(source tournament.Source) (Hosts, error) {
	hosts, ok := defaultHosts[source]
	if !ok {
		return Hosts{}, fmt.Errorf("%w: invalid data source %q", usecase.ErrInvalidInput, source)
	}
	if c.apiOverride != "" {
		hosts.API = c.apiOverride
	}
	if c.webOverride != "" {
		hosts.Web = c.webOverride
	}
	return hosts, nil
}

// fetchDocument loads url and decodes it into a JSON tree.
func (c *Client) fetchDocument(ctx context.Context, fetcher usecase.Fetcher, url string) (jv.Value, error) {
	body, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return jv.Value{}, crerr.Wrapf(err, "fetch %s", url)
	}
	return decodeDocument(url, body)
}

func decodeDocument(url string, body []byte) (jv.Value, error) {
	if strings.TrimSpace(string(body)) == "" {
		return jv.Value{}, fmt.Errorf("%w: %s", usecase.ErrEmptyResponse, url)
	}
	doc, err := jv.Parse(body)
	if err != nil {
		return jv.Value{}, fmt.Errorf("%w: %s: %v", usecase.ErrMalformedResponse, url, err)
	}
	return doc, nil
}

// listAt returns doc[key] when it is an array. A missing key yields an
// empty list; any other kind is a shape error.
func listAt(doc jv.Value, key string) ([]jv.Value, error) {
	value := doc.Get(key)
	switch {
	case value.IsMissing():
		return nil, nil
	case value.IsArray():
		return value.Items(), nil
	default:
		return nil, fmt.Errorf("%w: %q is %s, not a list", usecase.ErrInvalidShape, key, value.Kind())
	}
}
