// Package rid implements the KRP patient-identifier registry: generation of
// permanent RIDs and temporary DRIDs, promotion of DRIDs, and the /krp
// lookup endpoints.
package rid

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ezkzr/kzr-mock-server/internal/platform/metrics"
)

// DefaultMaxAttempts bounds the rejection-sampling loop of both generators.
const DefaultMaxAttempts = 10000

// ErrExhausted is returned when the retry budget runs out without a valid
// unused identifier.
var ErrExhausted = errors.New("identifier space exhausted")

// Generator produces RID and DRID identifiers. The random source and the
// attempt ceiling are injectable so tests can force collisions and
// exhaustion deterministically.
type Generator struct {
	int63n      func(n int64) int64
	maxAttempts int
}

func NewGenerator(maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{int63n: rand.Int63n, maxAttempts: maxAttempts}
}

// WithSource replaces the random source. Test hook.
func (g *Generator) WithSource(int63n func(n int64) int64) *Generator {
	g.int63n = int63n
	return g
}

// Rid draws a candidate in [1e9, 1e10), rounds it up to the next multiple
// of 13 and bumps by another 13 when the result is divisible by 11. The
// bump keeps divisibility by 13 and shifts the residue mod 11 by 2, so a
// single bump always escapes 11. All constraints are still re-checked
// before the candidate is accepted: ten digits, leading non-zero,
// divisible by 13, not by 11, not already used.
func (g *Generator) Rid(used func(string) bool) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		n := 1_000_000_000 + g.int63n(9_000_000_000)
		if rem := n % 13; rem != 0 {
			n += 13 - rem
		}
		if n%11 == 0 {
			n += 13
		}
		if n > 9_999_999_999 || n%13 != 0 || n%11 == 0 {
			metrics.RecordGeneratorRetry()
			continue
		}
		rid := fmt.Sprintf("%d", n)
		if used(rid) {
			metrics.RecordGeneratorRetry()
			continue
		}
		metrics.RecordIdentifierGenerated("rid")
		return rid, nil
	}
	return "", ErrExhausted
}

// Drid draws "D" plus nine digits in [100000000, 999999999], retrying on
// collision with the existing identifier set.
func (g *Generator) Drid(used func(string) bool) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		nine := 100_000_000 + g.int63n(900_000_000)
		drid := fmt.Sprintf("D%d", nine)
		if used(drid) {
			metrics.RecordGeneratorRetry()
			continue
		}
		metrics.RecordIdentifierGenerated("drid")
		return drid, nil
	}
	return "", ErrExhausted
}
