package core

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator allocates note ids.
type IDGenerator interface {
	NewID(now time.Time) string
}

// ULIDGenerator combines the millisecond clock with monotonic random entropy.
// Collisions are negligible within a session; uniqueness is not checked.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
}

// NewULIDGenerator creates a generator backed by crypto/rand.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewID implements IDGenerator.
func (g *ULIDGenerator) NewID(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(now), g.entropy)
	if err != nil {
		// Clock outside the ULID range or monotonic entropy exhausted.
		return ulid.Make().String()
	}
	return id.String()
}
