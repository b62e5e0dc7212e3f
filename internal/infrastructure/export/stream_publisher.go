package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

const defaultStreamPrefix = "fcdata"

type StreamConfig struct {
	Prefix string
	// MaxLen caps each stream approximately; zero leaves it unbounded.
	MaxLen int64
}

// StreamPublisher appends one entry per row to the Redis stream
// {prefix}.{kind}.
type StreamPublisher struct {
	client *redis.Client
	prefix string
	maxLen int64
	now    func() time.Time
}

var _ usecase.DatasetPublisher = (*StreamPublisher)(nil)

func NewStreamPublisher(client *redis.Client, cfg StreamConfig) *StreamPublisher {
	prefix := strings.Trim(strings.TrimSpace(cfg.Prefix), ".")
	if prefix == "" {
		prefix = defaultStreamPrefix
	}
	return &StreamPublisher{
		client: client,
		prefix: prefix,
		maxLen: cfg.MaxLen,
		now:    time.Now,
	}
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (p *StreamPublisher) Stream(kind usecase.DataKind) string {
	return p.prefix + "." + string(kind)
}

func (p *StreamPublisher) Publish(ctx context.Context, kind usecase.DataKind, table *tabular.Table) error {
	if table == nil || table.Len() == 0 {
		return nil
	}

	args, err := p.entries(kind, table)
	if err != nil {
		return err
	}

	pipe := p.client.Pipeline()
	for _, arg := range args {
		pipe.XAdd(ctx, arg)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("xadd %s: %w", p.Stream(kind), err)
	}
	return nil
}

func (p *StreamPublisher) entries(kind usecase.DataKind, table *tabular.Table) ([]*redis.XAddArgs, error) {
	stream := p.Stream(kind)
	timestamp := p.now().Unix()

	args := make([]*redis.XAddArgs, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		data, err := table.Row(i).MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode row %d: %w", i, err)
		}
		arg := &redis.XAddArgs{
			Stream: stream,
			Values: map[string]any{
				"kind":      string(kind),
				"data":      string(data),
				"timestamp": timestamp,
			},
		}
		if p.maxLen > 0 {
			arg.MaxLen = p.maxLen
			arg.Approx = true
		}
		args = append(args, arg)
	}
	return args, nil
}

func (p *StreamPublisher) Close() error {
	return p.client.Close()
}
