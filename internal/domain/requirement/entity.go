package requirement

import (
	"time"

	"github.com/google/uuid"
)

// Requirement is a hiring requirement snapshot. Filter criteria live in the
// raw Metadata object, which historically accumulated aliased key names; the
// criteria extractor is the only component that reads it.
type Requirement struct {
	ID          uuid.UUID
	Title       string
	Description string
	Metadata    map[string]any
	CreatedAt   time.Time
}
