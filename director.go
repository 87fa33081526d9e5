package davit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/teranos/davit/fault"
)

// DirectorConfig configures how the Director plays scenarios.
type DirectorConfig struct {
	// TimeScale multiplies every step offset. 1.0 plays scenarios at
	// the procedure's wall-clock timing; tests run compressed.
	TimeScale float64
	// CaptureStatus records a crane status snapshot after every step.
	CaptureStatus bool
}

// DefaultDirectorConfig returns the configuration used by the console:
// real-time playback with status capture enabled.
func DefaultDirectorConfig() DirectorConfig {
	return DirectorConfig{
		TimeScale:     1.0,
		CaptureStatus: true,
	}
}

// StepRecord documents one executed scenario step.
type StepRecord struct {
	Name   string
	Offset time.Duration // Scaled offset the step was scheduled at
	At     time.Time
	Status Status // Crane state after the step, when capture is enabled
}

// Result contains the outcome of one scenario run.
type Result struct {
	Scenario  string
	Steps     []StepRecord // Steps that actually executed, in order
	Refused   bool         // The up-front safety gate declined the run
	Cancelled bool         // A newer run or an explicit cancel stopped it
	Completed bool         // Every step executed
	Duration  time.Duration
}

// Run is a handle to an in-flight or finished scenario playback.
type Run struct {
	scenario Scenario
	cancel   context.CancelFunc
	done     chan struct{}

	mu     sync.Mutex
	result *Result
}

// Cancel stops this run. Steps already executed stay executed; the
// crane is left in whatever state the last step produced.
func (r *Run) Cancel() {
	r.cancel()
}

// Done returns a channel closed when the run has finished.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run has finished and returns its result.
func (r *Run) Wait() *Result {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Director plays scenarios against a crane, one at a time.
//
// This replaces the fire-and-forget timer chains of the reference
// procedure: every run executes on its own goroutine under a
// cancellable context, and starting a new scenario cancels any
// in-flight one instead of silently interleaving log lines from both.
type Director struct {
	crane  *Crane
	config DirectorConfig
	faults *fault.Handler

	mu      sync.Mutex
	current *Run
}

// NewDirector creates a director for the given crane.
func NewDirector(crane *Crane, config DirectorConfig) *Director {
	if config.TimeScale <= 0 {
		config.TimeScale = 1.0
	}
	return &Director{
		crane:  crane,
		config: config,
		faults: fault.NewHandler("director", fault.DefaultPolicy()),
	}
}

// Faults returns the director's fault handler.
func (d *Director) Faults() *fault.Handler {
	return d.faults
}

// Running reports whether a scenario is currently in flight.
func (d *Director) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil {
		return false
	}
	select {
	case <-d.current.done:
		return false
	default:
		return true
	}
}

// Run starts playing a scenario and returns a handle to the run.
// Any in-flight run is cancelled first.
func (d *Director) Run(scenario Scenario) *Run {
	ctx, cancel := context.WithCancel(context.Background())
	run := &Run{
		scenario: scenario,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	d.mu.Lock()
	if d.current != nil {
		d.current.cancel()
	}
	d.current = run
	d.mu.Unlock()

	go d.play(ctx, run)
	return run
}

// Cancel stops the in-flight run, if any.
func (d *Director) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current != nil {
		d.current.cancel()
	}
}

func (d *Director) play(ctx context.Context, run *Run) {
	start := time.Now()
	result := &Result{Scenario: run.scenario.Name}

	defer func() {
		result.Duration = time.Since(start)
		run.mu.Lock()
		run.result = result
		run.mu.Unlock()
		close(run.done)
	}()

	// One safety gate up front; an overloaded crane refuses the whole
	// scenario rather than failing partway through.
	if !d.crane.CheckSafe(run.scenario.Name) {
		result.Refused = true
		d.faults.Record(fault.New("scenario",
			fmt.Sprintf("scenario %q refused by safety check", run.scenario.Name),
			fault.Context{"scenario": run.scenario.Name}))
		return
	}

	for _, step := range run.scenario.Steps {
		offset := d.scale(step.Offset)
		wait := offset - time.Since(start)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}

		// Re-check after waiting: when a cancel and the timer become
		// ready together, the select may have taken the timer branch.
		// No step of a cancelled run may execute.
		if ctx.Err() != nil {
			result.Cancelled = true
			d.recordCancelled(run.scenario.Name, step.Name)
			return
		}

		step.Do(d.crane)

		record := StepRecord{
			Name:   step.Name,
			Offset: offset,
			At:     time.Now(),
		}
		if d.config.CaptureStatus {
			record.Status = d.crane.Status()
		}
		result.Steps = append(result.Steps, record)
	}

	result.Completed = true
}

func (d *Director) recordCancelled(scenario, step string) {
	d.faults.Record(fault.NewNotice("scenario",
		fmt.Sprintf("scenario %q cancelled before step %q", scenario, step),
		fault.Context{"scenario": scenario, "next_step": step}))
}

func (d *Director) scale(offset time.Duration) time.Duration {
	if d.config.TimeScale == 1.0 {
		return offset
	}
	return time.Duration(float64(offset) * d.config.TimeScale)
}
