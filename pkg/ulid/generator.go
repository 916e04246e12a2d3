package ulid

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"
)

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the time source. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithEntropy sets the randomness source. Reads are serialized by the
// Generator, so r need not be safe for concurrent use.
// Default: a ChaCha8 stream seeded from crypto/rand, owned by the Generator.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.entropy = r
		}
	}
}

// Generator produces new ULIDs from a clock and a randomness source.
// It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy io.Reader
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if g.entropy == nil {
		g.entropy = newChaCha8()
	}
	return g
}

func newChaCha8() *rand.ChaCha8 {
	var seed [32]byte
	// crypto/rand.Read does not fail on supported platforms.
	_, _ = crand.Read(seed[:])
	return rand.NewChaCha8(seed)
}

// New returns a ULID stamped with the current clock reading and 80 fresh
// random bits. A clock reading before the epoch or beyond MaxTime fails with
// ErrRange rather than wrapping, which would break ordering.
func (g *Generator) New() (ULID, error) {
	var e [EntropySize]byte

	g.mu.Lock()
	defer g.mu.Unlock()

	ms, err := Timestamp(g.now())
	if err != nil {
		return ULID{}, err
	}
	if _, err := io.ReadFull(g.entropy, e[:]); err != nil {
		return ULID{}, fmt.Errorf("ulid: read entropy: %w", err)
	}
	return fromEntropy(ms, e[:]), nil
}

var defaultGenerator = sync.OnceValue(func() *Generator { return NewGenerator() })

// DefaultGenerator returns the process-wide Generator used by Make and
// Generate.
func DefaultGenerator() *Generator { return defaultGenerator() }

// Generate returns a new ULID from the default Generator.
func Generate() (ULID, error) { return defaultGenerator().New() }

// Make returns a new ULID from the default Generator and panics on error.
// The default clock and entropy source only fail once the clock passes the
// year 10889.
func Make() ULID {
	u, err := Generate()
	if err != nil {
		panic(err)
	}
	return u
}
