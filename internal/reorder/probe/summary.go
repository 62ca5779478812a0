package probe

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

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

	// PerRound is the maximum-likelihood per-round anomaly probability
	// under a geometric interarrival model: anomalies over the rounds
	// spent waiting for them. Unlike Rate it excludes any anomaly-free
	// tail after the last anomaly.
	PerRound float64

	Tally Tally
}

// Summarize computes the post-run statistics for res.
func Summarize(res Result) Summary {
	s := Summary{
		Rounds:    res.Rounds,
		Anomalies: res.Anomalies,
		Reason:    res.Reason,
		Tally:     res.Tally,
	}
	if res.Rounds > 0 {
		s.Rate = float64(res.Anomalies) / float64(res.Rounds)
	}
	if len(res.Gaps) == 0 {
		return s
	}

	xs := make([]float64, len(res.Gaps))
	sum := 0
	for i, g := range res.Gaps {
		xs[i] = float64(g)
		sum += g
	}
	sample := stats.Sample{Xs: xs}
	s.MeanGap = sample.Mean()
	s.StdDevGap = sample.StdDev()
	s.MedianGap = sample.Quantile(0.5)
	s.PerRound = float64(len(res.Gaps)) / float64(sum)
	return s
}

// Format writes the summary as a short human-readable block.
func (s Summary) Format(w io.Writer) {
	fmt.Fprintf(w, "rounds:    %d\n", s.Rounds)
	fmt.Fprintf(w, "reorders:  %d (rate %.3g per round)\n", s.Anomalies, s.Rate)
	fmt.Fprintf(w, "outcomes:  %s\n", s.Tally)
	fmt.Fprintf(w, "stopped:   %s\n", s.Reason)
	if s.Anomalies == 0 {
		fmt.Fprintf(w, "gaps:      no reorders observed\n")
		return
	}
	fmt.Fprintf(w, "gap mean:  %.1f rounds (stddev %.1f, median %.1f)\n", s.MeanGap, s.StdDevGap, s.MedianGap)
	fmt.Fprintf(w, "est prob:  %.3g per round\n", s.PerRound)
}

// String returns Format's output.
func (s Summary) String() string {
	var b strings.Builder
	s.Format(&b)
	return b.String()
}
