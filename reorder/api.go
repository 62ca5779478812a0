// Package reorder provides the public API for the reordering probe.
//
// See doc.go for detailed documentation and examples.
package reorder

import (
	"io"

	"github.com/kolkov/memreorder/internal/reorder/fence"
	"github.com/kolkov/memreorder/internal/reorder/probe"
)

// FenceMode selects the ordering constraint each worker issues between its
// store and the load that follows it.
type FenceMode int

const (
	// FenceNone leaves the store-load pair unconstrained.
	FenceNone FenceMode = FenceMode(fence.None)

	// FenceCompiler pins the compile-time order only; the processor may
	// still reorder.
	FenceCompiler FenceMode = FenceMode(fence.Compiler)

	// FenceCPU issues a full hardware fence.
	FenceCPU FenceMode = FenceMode(fence.CPU)
)

// String returns the flag-facing name of the mode: "none", "compiler" or
// "cpu".
func (m FenceMode) String() string { return fence.Mode(m).String() }

// ParseFenceMode maps a flag value to a FenceMode. It accepts the three
// names String returns.
func ParseFenceMode(s string) (FenceMode, error) {
	mode, err := fence.ParseMode(s)
	return FenceMode(mode), err
}

// StopReason says why a run ended.
type StopReason int

const (
	// StoppedAtThreshold: the anomaly count reached Config.Threshold.
	StoppedAtThreshold StopReason = StopReason(probe.StopThreshold)

	// StoppedAtRoundLimit: Config.MaxRounds rounds completed.
	StoppedAtRoundLimit StopReason = StopReason(probe.StopRoundLimit)

	// Interrupted: the stop channel closed.
	Interrupted StopReason = StopReason(probe.StopInterrupted)
)

// String returns a short human-readable phrase for the reason.
func (r StopReason) String() string { return probe.StopReason(r).String() }

// Config parameterizes one experiment.
type Config struct {
	// Fence is the ordering constraint under test. The zero value is
	// FenceNone.
	Fence FenceMode

	// Threshold ends the run once this many anomalies have accumulated.
	// The comparison is >=, so a threshold of 0 ends the run after the
	// first round whatever its outcome. DefaultConfig sets 10.
	Threshold int

	// MaxRounds bounds the run; 0 means unbounded.
	MaxRounds int

	// SpinBound is the modulus of the workers' randomized pre-store delay;
	// 0 or 1 disables the delay. DefaultConfig sets 8.
	SpinBound uint64

	// Seed derives the workers' delay generator seeds (Seed+1 and Seed+2),
	// so a run's delay schedule can be replayed.
	Seed uint64

	// StatusEvery emits a progress line every StatusEvery rounds; 0 emits
	// none.
	StatusEvery int

	// Log receives report and status lines. nil means os.Stdout.
	Log io.Writer
}

// DefaultConfig returns the configuration the memreorder command uses when
// no flags are given: no fence, threshold 10, unbounded rounds, delay
// modulus 8.
func DefaultConfig() Config {
	c := probe.DefaultConfig()
	return Config{
		Fence:     FenceMode(c.Fence),
		Threshold: c.Threshold,
		SpinBound: c.SpinBound,
	}
}

// Outcome is the pair of observations one round produced. R1 is what worker
// 1 loaded from cell Y; R2 is what worker 2 loaded from cell X.
type Outcome struct {
	R1 int64
	R2 int64
}

// Anomalous reports whether neither load saw the peer's store, the outcome
// every sequentially consistent interleaving forbids.
func (o Outcome) Anomalous() bool { return probe.Outcome(o).Anomalous() }

// String formats the outcome as "(r1,r2)".
func (o Outcome) String() string { return probe.Outcome(o).String() }

// Result is what one completed run produced.
type Result struct {
	// Rounds is the number of rounds executed.
	Rounds int

	// Anomalies is the number of rounds whose outcome was (0,0).
	Anomalies int

	// Reason says why the run stopped.
	Reason StopReason

	// Counts breaks all rounds down by outcome.
	Counts map[Outcome]int

	// Gaps holds the distance in rounds between consecutive anomalies; the
	// first entry is the round index of the first anomaly.
	Gaps []int
}

// Run executes one experiment and blocks until it stops. Each call builds a
// fresh probe, so successive calls are independent runs. With an unbounded
// config (no threshold ever met, MaxRounds 0) Run blocks forever; use
// RunWithStop to keep an exit path.
func Run(cfg Config) (Result, error) {
	return RunWithStop(cfg, nil)
}

// RunWithStop is Run with an external stop signal: closing stop ends the
// run at the next round boundary. A nil stop never fires.
func RunWithStop(cfg Config, stop <-chan struct{}) (Result, error) {
	p, err := probe.New(probe.Config{
		Fence:       fence.Mode(cfg.Fence),
		Threshold:   cfg.Threshold,
		MaxRounds:   cfg.MaxRounds,
		SpinBound:   cfg.SpinBound,
		Seed:        cfg.Seed,
		StatusEvery: cfg.StatusEvery,
		Log:         cfg.Log,
	})
	if err != nil {
		return Result{}, err
	}
	res, err := p.Run(stop)
	if err != nil {
		return Result{}, err
	}
	return newResult(res), nil
}

// Summary distills a Result into the numbers worth reading after a run.
type Summary struct {
	Rounds    int
	Anomalies int
	Reason    StopReason

	// Rate is anomalies per round over the whole run.
	Rate float64

	// Gap statistics over Result.Gaps. All zero when no anomaly occurred.
	MeanGap   float64
	StdDevGap float64
	MedianGap float64

	// PerRound is the estimated per-round anomaly probability under a
	// geometric interarrival model; unlike Rate it excludes any
	// anomaly-free tail after the last anomaly.
	PerRound float64

	Counts map[Outcome]int
}

// Summarize computes the post-run statistics for res.
func Summarize(res Result) Summary {
	s := probe.Summarize(probe.Result{
		Rounds:    res.Rounds,
		Anomalies: res.Anomalies,
		Reason:    probe.StopReason(res.Reason),
		Tally:     newTally(res.Counts),
		Gaps:      res.Gaps,
	})
	return Summary{
		Rounds:    s.Rounds,
		Anomalies: s.Anomalies,
		Reason:    StopReason(s.Reason),
		Rate:      s.Rate,
		MeanGap:   s.MeanGap,
		StdDevGap: s.StdDevGap,
		MedianGap: s.MedianGap,
		PerRound:  s.PerRound,
		Counts:    res.Counts,
	}
}

// Format writes the summary as a short human-readable block.
func (s Summary) Format(w io.Writer) { s.internal().Format(w) }

// String returns Format's output.
func (s Summary) String() string { return s.internal().String() }

func (s Summary) internal() probe.Summary {
	return probe.Summary{
		Rounds:    s.Rounds,
		Anomalies: s.Anomalies,
		Reason:    probe.StopReason(s.Reason),
		Rate:      s.Rate,
		MeanGap:   s.MeanGap,
		StdDevGap: s.StdDevGap,
		MedianGap: s.MedianGap,
		PerRound:  s.PerRound,
		Tally:     newTally(s.Counts),
	}
}

func newResult(res probe.Result) Result {
	counts := make(map[Outcome]int, len(res.Tally))
	for o, n := range res.Tally {
		counts[Outcome(o)] = n
	}
	return Result{
		Rounds:    res.Rounds,
		Anomalies: res.Anomalies,
		Reason:    StopReason(res.Reason),
		Counts:    counts,
		Gaps:      res.Gaps,
	}
}

func newTally(counts map[Outcome]int) probe.Tally {
	t := make(probe.Tally, len(counts))
	for o, n := range counts {
		t[probe.Outcome(o)] = n
	}
	return t
}
