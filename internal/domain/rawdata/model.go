package rawdata

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Payload is one raw upstream response body kept for replay and audit.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	PayloadJSON string
	PayloadHash string
	FetchedAt   time.Time
}

// NewPayload builds a payload and fills its content hash.
func NewPayload(source, entityType, entityKey string, body []byte, fetchedAt time.Time) Payload {
	sum := sha256.Sum256(body)
	return Payload{
		Source:      source,
		EntityType:  entityType,
		EntityKey:   entityKey,
		PayloadJSON: string(body),
		PayloadHash: hex.EncodeToString(sum[:]),
		FetchedAt:   fetchedAt.UTC(),
	}
}
