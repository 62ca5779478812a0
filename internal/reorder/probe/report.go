package probe

import "fmt"

// StopReason says why a run ended.
type StopReason int

const (
	// StopThreshold: the anomaly count reached Config.Threshold.
	StopThreshold StopReason = iota

	// StopRoundLimit: Config.MaxRounds rounds completed.
	StopRoundLimit

	// StopInterrupted: the stop channel closed.
	StopInterrupted
)

// String returns a short human-readable phrase for the reason.
func (r StopReason) String() string {
	switch r {
	case StopThreshold:
		return "threshold reached"
	case StopRoundLimit:
		return "round limit reached"
	case StopInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Result is what one completed run produced.
type Result struct {
	// Rounds is the number of rounds executed.
	Rounds int

	// Anomalies is the number of rounds whose outcome was (0,0).
	Anomalies int

	// Reason says why the run stopped.
	Reason StopReason

	// Tally breaks all rounds down by outcome.
	Tally Tally

	// Gaps holds the distance in rounds between consecutive anomalies; the
	// first entry is the round index of the first anomaly. Empty when no
	// anomaly occurred.
	Gaps []int
}

// reportLine formats the per-anomaly output line: the cumulative anomaly
// count and the round that produced it.
func reportLine(anomalies, round int) string {
	return fmt.Sprintf("%d reorders detected after %d rounds", anomalies, round)
}

// statusLine formats the periodic progress line emitted every
// Config.StatusEvery rounds.
func statusLine(rounds, anomalies int) string {
	return fmt.Sprintf("status: %d rounds, %d reorders", rounds, anomalies)
}
