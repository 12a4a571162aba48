// Package ids centralises identifier allocation so subsystems receive
// their generators explicitly instead of relying on ambient state.
package ids

import (
	"fmt"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator allocates entity identifiers.
type Generator interface {
	NewID() string
}

// UUIDGenerator allocates random UUIDv4 identifiers for entities.
type UUIDGenerator struct{}

// NewID returns a new UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// ULIDGenerator allocates monotonic, lexicographically sortable
// identifiers, suitable for audit entries and event ids.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator seeds a monotonic ULID source.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0),
	}
}

// NewID returns a new ULID string.
func (g *ULIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// Sequence hands out gapless formatted numbers, e.g. invoice numbers.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int64
}

// NewSequence creates a sequence starting at 1 with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

// Next returns the next formatted number, e.g. "INV-000001".
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.next
	s.next++
	return fmt.Sprintf("%s-%06d", s.prefix, n)
}
