package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fcdata/internal/domain/rawdata"
	qb "github.com/riskibarqy/fcdata/internal/platform/querybuilder"
)

const rawPayloadBatchSize = 200

const rawPayloadUpsertSuffix = `ON CONFLICT (source, entity_type, entity_key)
DO UPDATE SET
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at,
    updated_at = NOW()
WHERE raw_data_payloads.payload_hash IS DISTINCT FROM EXCLUDED.payload_hash`

type RawDataRepository struct {
	db *sqlx.DB
}

var _ rawdata.Repository = (*RawDataRepository)(nil)

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

// UpsertMany stores payloads keyed by (source, entity_type, entity_key).
// A payload whose hash is unchanged leaves the stored row untouched.
func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	rows := rawPayloadRows(items)
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(rows); start += rawPayloadBatchSize {
		end := min(start+rawPayloadBatchSize, len(rows))
		query, args, err := qb.InsertModels("raw_data_payloads", rows[start:end], rawPayloadUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert raw payload query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert raw payloads batch=%d-%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert raw payloads tx: %w", err)
	}
	return nil
}

type rawDataPayloadRow struct {
	Source      string    `db:"source"`
	EntityType  string    `db:"entity_type"`
	EntityKey   string    `db:"entity_key"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}

// rawPayloadRows keeps the last payload per conflict key. Postgres refuses
// to update the same row twice within one INSERT.
func rawPayloadRows(items []rawdata.Payload) []rawDataPayloadRow {
	index := make(map[[3]string]int, len(items))
	rows := make([]rawDataPayloadRow, 0, len(items))
	for _, item := range items {
		row := rawDataPayloadRow{
			Source:      item.Source,
			EntityType:  item.EntityType,
			EntityKey:   item.EntityKey,
			Payload:     item.PayloadJSON,
			PayloadHash: item.PayloadHash,
			FetchedAt:   item.FetchedAt,
		}
		key := [3]string{item.Source, item.EntityType, item.EntityKey}
		if i, ok := index[key]; ok {
			rows[i] = row
			continue
		}
		index[key] = len(rows)
		rows = append(rows, row)
	}
	return rows
}
