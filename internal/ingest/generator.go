package ingest

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
)

// Generator fabricates the field values a source does not expose: dates,
// times, prices and id suffixes. All draws come from one seedable source so
// tests can fix the output. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a Generator. A nil rng is seeded from the clock and
// a nil now uses time.Now.
func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(now().UnixNano()))
	}
	return &Generator{rng: rng, now: now}
}

// Now returns the generator's current time
func (g *Generator) Now() time.Time {
	return g.now()
}

// Intn returns a uniform draw in [0, n)
func (g *Generator) Intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

// Float64 returns a uniform draw in [0, 1)
func (g *Generator) Float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

// Pick returns one of options chosen uniformly
func (g *Generator) Pick(options []string) string {
	return options[g.Intn(len(options))]
}

// DateWithin returns the ISO date of a uniform instant in the next days days
func (g *Generator) DateWithin(days int) string {
	offset := time.Duration(g.Float64() * float64(time.Duration(days)*24*time.Hour))
	return event.FormatDate(g.now().Add(offset))
}

// Price draws once: with probability paidChance the event is paid and priced
// uniformly in [lo, hi]; otherwise it is free at 0.
func (g *Generator) Price(paidChance float64, lo, hi int) (int, bool) {
	if g.Float64() >= paidChance {
		return 0, true
	}
	return lo + g.Intn(hi-lo+1), false
}

// Suffix returns a 9 character lowercase hex token drawn from the generator
func (g *Generator) Suffix() string {
	g.mu.Lock()
	id, err := uuid.NewRandomFromReader(g.rng)
	g.mu.Unlock()
	if err != nil {
		// math/rand never fails to read
		id = uuid.New()
	}
	return strings.ReplaceAll(id.String(), "-", "")[:9]
}

// ID builds "<source>_<unix ms>_<suffix>"
func (g *Generator) ID(source string) string {
	return fmt.Sprintf("%s_%d_%s", source, g.now().UnixMilli(), g.Suffix())
}

// Timestamp is the current time in the scraped_at layout
func (g *Generator) Timestamp() string {
	return event.FormatTimestamp(g.now())
}
