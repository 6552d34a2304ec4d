package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/ordsearch"
)

// ErrDisagree is returned when the two variants answer a query differently.
var ErrDisagree = errors.New("bench: variants disagree")

// Variant runs one timed query against a payload and returns the elapsed
// time and the answer (0 when there is none).
type Variant func(p Payload) (time.Duration, uint32)

// FindA times FindGTE on the payload's A collection.
func FindA(p Payload) (time.Duration, uint32) {
	return timeFind(p.A, p.Query)
}

// FindB times FindGTE on the payload's B collection.
func FindB(p Payload) (time.Duration, uint32) {
	return timeFind(p.B, p.Query)
}

func timeFind(c *ordsearch.Collection[uint32], q uint32) (time.Duration, uint32) {
	start := time.Now()
	v, _ := c.FindGTE(q)
	return time.Since(start), v
}

// Sample is the paired timing of both variants on one payload.
type Sample struct {
	A time.Duration
	B time.Duration
}

// Measure draws iterations payloads from g and times a and b on each. The
// variant that runs first alternates between iterations.
func Measure(g *Generator, a, b Variant, iterations int) ([]Sample, error) {
	samples := make([]Sample, 0, max(iterations, 0))

	for i := range iterations {
		p, err := g.Next()
		if err != nil {
			return nil, err
		}

		var s Sample
		var ra, rb uint32
		if i%2 == 0 {
			s.A, ra = a(p)
			s.B, rb = b(p)
		} else {
			s.B, rb = b(p)
			s.A, ra = a(p)
		}

		if ra != rb {
			return nil, fmt.Errorf("%w: query %d: %d != %d", ErrDisagree, p.Query, ra, rb)
		}

		samples = append(samples, s)
	}

	return samples, nil
}
