package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is a slice of extracted document text with its embedding,
// used for retrieval when the full corpus is too large for a single prompt.
type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	SessionId  uuid.UUID
	ChunkIndex int
	ChunkText  string
	Embedding  []float32
	CreatedAt  time.Time
}
