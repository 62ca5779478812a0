package probe

import (
	"fmt"
	"strings"
)

// Outcome is the pair of observations one round produced. R1 is what worker
// 1 loaded from cell Y; R2 is what worker 2 loaded from cell X.
type Outcome struct {
	R1 int64
	R2 int64
}

// Anomalous reports whether neither load saw the peer's store, the outcome
// every sequentially consistent interleaving forbids.
func (o Outcome) Anomalous() bool { return o.R1 == 0 && o.R2 == 0 }

// Valid reports whether both observations are in {0, 1}. Anything else
// means the harness itself is broken, not the hardware.
func (o Outcome) Valid() bool {
	return (o.R1 == 0 || o.R1 == 1) && (o.R2 == 0 || o.R2 == 1)
}

func (o Outcome) String() string { return fmt.Sprintf("(%d,%d)", o.R1, o.R2) }

// Outcomes lists the four possible outcomes in reporting order.
var Outcomes = [4]Outcome{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// Tally counts rounds by outcome.
type Tally map[Outcome]int

// Add records one round's outcome.
func (t Tally) Add(o Outcome) { t[o]++ }

// Total returns the number of rounds recorded.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// String lists the four outcomes with their counts, in Outcomes order.
func (t Tally) String() string {
	var b strings.Builder
	for i, o := range Outcomes {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", o, t[o])
	}
	return b.String()
}
