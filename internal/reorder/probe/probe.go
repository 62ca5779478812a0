package probe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/kolkov/memreorder/internal/reorder/cell"
	"github.com/kolkov/memreorder/internal/reorder/fence"
	"github.com/kolkov/memreorder/internal/reorder/spin"
)

// Defaults used by DefaultConfig. A zero Config is also valid but stops
// after its first round, since a threshold of 0 is already satisfied.
const (
	DefaultThreshold = 10
	DefaultSpinBound = 8
)

// ErrAlreadyRun is returned by Run on a probe that has run before. A probe
// is one experiment; construct a new one to rerun.
var ErrAlreadyRun = errors.New("probe: already run")

// Config parameterizes one probe.
type Config struct {
	// Fence is the ordering constraint each worker issues between its
	// store and its load.
	Fence fence.Mode

	// Threshold ends the run once this many anomalies have accumulated.
	// The comparison is >=, so a threshold of 0 ends the run after the
	// first round whatever its outcome.
	Threshold int

	// MaxRounds bounds the run; 0 means unbounded.
	MaxRounds int

	// SpinBound is the modulus of the workers' randomized pre-store delay.
	// 0 or 1 disables the delay.
	SpinBound uint64

	// Seed derives the workers' generator seeds: worker 1 uses Seed+1,
	// worker 2 uses Seed+2.
	Seed uint64

	// StatusEvery emits a progress line every StatusEvery rounds; 0 emits
	// none.
	StatusEvery int

	// Log receives report and status lines. nil means os.Stdout.
	Log io.Writer
}

// DefaultConfig returns the configuration the CLI uses when no flags are
// given: no fence, threshold 10, unbounded rounds, delay modulus 8.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, SpinBound: DefaultSpinBound}
}

// Probe owns one experiment: the cells, the observation slots, the
// rendezvous channels, and the two workers. Construct with New; Run executes
// at most once.
type Probe struct {
	cfg Config

	cells cell.Pair
	slots [2]cell.Slot

	// start has one buffered channel per worker so the orchestrator's two
	// releases never block and carry no ordering between the workers.
	start [2]chan struct{}

	// done is shared by both workers; the orchestrator receives twice per
	// round.
	done chan struct{}

	ran atomic.Bool
}

// New validates cfg and builds a probe. The workers are not started until
// Run.
func New(cfg Config) (*Probe, error) {
	if cfg.Threshold < 0 {
		return nil, fmt.Errorf("probe: threshold %d is negative", cfg.Threshold)
	}
	if cfg.MaxRounds < 0 {
		return nil, fmt.Errorf("probe: round limit %d is negative", cfg.MaxRounds)
	}
	if !fence.Known(cfg.Fence) {
		return nil, fmt.Errorf("probe: unknown fence mode %d", int(cfg.Fence))
	}
	if cfg.Log == nil {
		cfg.Log = os.Stdout
	}

	p := &Probe{cfg: cfg, done: make(chan struct{}, 2)}
	p.start[0] = make(chan struct{}, 1)
	p.start[1] = make(chan struct{}, 1)
	return p, nil
}

// Run drives rounds until the anomaly threshold is met, the round limit is
// reached, or stop is closed. stop is inspected only between rounds, so
// cancellation never perturbs a transaction in flight; a nil stop never
// fires. The second and later calls return ErrAlreadyRun.
func (p *Probe) Run(stop <-chan struct{}) (Result, error) {
	if !p.ran.CompareAndSwap(false, true) {
		return Result{}, ErrAlreadyRun
	}

	if procs := runtime.GOMAXPROCS(0); procs < 2 {
		fmt.Fprintf(p.cfg.Log, "warning: GOMAXPROCS=%d, the workers cannot run in parallel and a clean result proves nothing\n", procs)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go p.worker(0, &p.cells.X, &p.cells.Y, &wg)
	go p.worker(1, &p.cells.Y, &p.cells.X, &wg)

	res := Result{Reason: StopInterrupted, Tally: make(Tally)}
	lastAnomaly := 0

loop:
	for round := 1; ; round++ {
		select {
		case <-stop:
			break loop
		default:
		}

		p.cells.Reset()
		p.start[0] <- struct{}{}
		p.start[1] <- struct{}{}
		<-p.done
		<-p.done

		o := Outcome{R1: p.slots[0].Get(), R2: p.slots[1].Get()}
		res.Tally.Add(o)
		res.Rounds = round

		if o.Anomalous() {
			res.Anomalies++
			res.Gaps = append(res.Gaps, round-lastAnomaly)
			lastAnomaly = round
			fmt.Fprintln(p.cfg.Log, reportLine(res.Anomalies, round))
		}
		if res.Anomalies >= p.cfg.Threshold {
			res.Reason = StopThreshold
			break
		}
		if p.cfg.MaxRounds > 0 && round == p.cfg.MaxRounds {
			res.Reason = StopRoundLimit
			break
		}
		if p.cfg.StatusEvery > 0 && round%p.cfg.StatusEvery == 0 {
			fmt.Fprintln(p.cfg.Log, statusLine(round, res.Anomalies))
		}
	}

	close(p.start[0])
	close(p.start[1])
	wg.Wait()
	return res, nil
}

// worker runs one side of the transaction until its start channel closes.
// id is 0 or 1; seeds and reports use the 1-based identity.
func (p *Probe) worker(id int, own, peer *cell.Cell, wg *sync.WaitGroup) {
	defer wg.Done()

	// Pin to an OS thread so the two workers occupy two processors for the
	// whole run rather than migrating mid-transaction.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	rng := spin.New(p.cfg.Seed + uint64(id) + 1)
	mode := p.cfg.Fence
	bound := p.cfg.SpinBound
	slot := &p.slots[id]

	for range p.start[id] {
		rng.Delay(bound)

		own.Store(1)
		fence.Apply(mode)
		slot.Set(peer.Load())

		p.done <- struct{}{}
	}
}
