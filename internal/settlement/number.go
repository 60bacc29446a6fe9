package settlement

import (
	"fmt"
	"math/rand"
	"time"
)

// NumberGenerator produces statement numbers of the form STM-YYYYMMDD-NNNNN.
// The date is the UTC calendar date of the clock; the suffix is uniform in [0, 99999].
// Numbers are not guaranteed unique; persist them with a unique constraint if that matters.
type NumberGenerator struct {
	now  func() time.Time
	intn func(n int) int
}

func NewNumberGenerator(now func() time.Time, intn func(n int) int) *NumberGenerator {
	if now == nil {
		now = time.Now
	}
	if intn == nil {
		intn = rand.Intn
	}
	return &NumberGenerator{now: now, intn: intn}
}

func (g *NumberGenerator) Next() string {
	return fmt.Sprintf("STM-%s-%05d", g.now().UTC().Format("20060102"), g.intn(100000))
}

var defaultNumbers = NewNumberGenerator(nil, nil)

// GenerateStatementNumber uses the wall clock and a process-wide random source.
func GenerateStatementNumber() string {
	return defaultNumbers.Next()
}
