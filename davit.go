// Package davit simulates the operating procedure of a ship's deck crane.
//
// The simulator holds a single crane state (safe working load, hook load,
// motion flag, operating mode), validates the overload precondition before
// every motion command, and narrates everything it does into a bounded
// logbook. Two canned scenarios sequence a full hoist cycle and a cargo
// transfer as timed step timelines driven by a cancellable Director.
//
// Basic usage:
//
//	logbook := davit.NewLogbook(davit.DefaultLogbookCapacity)
//	crane := davit.NewCrane(davit.Config{Logbook: logbook})
//
//	crane.Dispatch("hoist")
//	crane.Dispatch("slew-port")
//	crane.Stop("")
//
// For scripted sequences:
//
//	director := davit.NewDirector(crane, davit.DefaultDirectorConfig())
//	result := director.Run(davit.HoistCycle()).Wait()
//
// The interactive console lives in the tui subpackage.
package davit

import (
	"fmt"
	"sync"

	"github.com/teranos/davit/fault"
)

// Mode is the crane's last-requested action category. It is a label for
// log and display purposes; no transition graph is enforced between
// modes, matching the reference procedure.
type Mode int

const (
	ModeIdle Mode = iota
	ModeHoist
	ModeLower
	ModeLuff
	ModeSlew
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeHoist:
		return "hoist"
	case ModeLower:
		return "lower"
	case ModeLuff:
		return "luff"
	case ModeSlew:
		return "slew"
	default:
		return "unknown"
	}
}

// Default load figures for a mid-size deck crane, in kilograms.
const (
	DefaultSWL      = 25000
	DefaultHookLoad = 12000
)

// DefaultStopReason is logged when Stop is called without a reason.
const DefaultStopReason = "All crane motion stopped"

// Config sets up a crane for a working session.
type Config struct {
	// SWL is the safe working load in kg. Zero selects DefaultSWL.
	SWL int
	// HookLoad is the load on the hook in kg. Zero selects DefaultHookLoad.
	// The hook load is fixed for the session; motion commands never
	// change it.
	HookLoad int
	// Logbook receives the narrative of the session. Required.
	Logbook *Logbook
	// Faults collects structured advisories. Nil creates a handler
	// with the default policy.
	Faults *fault.Handler
}

// Status is a point-in-time copy of the crane state, safe to hand to
// views and reports without holding the crane's lock.
type Status struct {
	SWL      int
	HookLoad int
	Moving   bool
	Mode     Mode
}

// Overloaded reports whether the hook load exceeds the safe working load.
func (s Status) Overloaded() bool {
	return s.HookLoad > s.SWL
}

// Crane is the simulator state for one working session.
//
// The crane is owned by the application root and passed by reference to
// whatever drives it (console key handlers, the scenario director,
// tests). All methods are safe for concurrent use; the director mutates
// the crane from its own goroutine while the console reads it.
type Crane struct {
	mu       sync.Mutex
	swl      int
	hookLoad int
	moving   bool
	mode     Mode

	log    *Logbook
	faults *fault.Handler
}

// NewCrane creates a crane in idle mode with nothing in motion.
func NewCrane(cfg Config) *Crane {
	if cfg.SWL == 0 {
		cfg.SWL = DefaultSWL
	}
	if cfg.HookLoad == 0 {
		cfg.HookLoad = DefaultHookLoad
	}
	if cfg.Faults == nil {
		cfg.Faults = fault.NewHandler("crane", fault.DefaultPolicy())
	}

	return &Crane{
		swl:      cfg.SWL,
		hookLoad: cfg.HookLoad,
		mode:     ModeIdle,
		log:      cfg.Logbook,
		faults:   cfg.Faults,
	}
}

// Status returns a copy of the current crane state.
func (c *Crane) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		SWL:      c.swl,
		HookLoad: c.hookLoad,
		Moving:   c.moving,
		Mode:     c.mode,
	}
}

// Logbook returns the logbook this crane narrates into.
func (c *Crane) Logbook() *Logbook {
	return c.log
}

// Faults returns the crane's fault handler.
func (c *Crane) Faults() *fault.Handler {
	return c.faults
}

// Note records an informational line in the logbook without touching
// crane state. Scenarios use it for narration between motion steps.
func (c *Crane) Note(text string) {
	c.log.Info(text)
}

// CheckSafe validates the single precondition the procedure enforces:
// the hook load must not exceed the safe working load. On overload the
// requested action is refused, a warning is logged and a refusal fault
// recorded; no corrective mutation occurs. When the crane is already in
// motion a transition note is logged but the action is allowed.
//
// The action name is used only for logging.
func (c *Crane) CheckSafe(action string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkSafeLocked(action)
}

func (c *Crane) checkSafeLocked(action string) bool {
	if c.hookLoad > c.swl {
		c.log.Warn(fmt.Sprintf("OVERLOAD: hook load %d kg exceeds SWL %d kg, %s refused", c.hookLoad, c.swl, action))
		c.faults.Record(fault.New("overload",
			fmt.Sprintf("hook load exceeds SWL, %s refused", action),
			fault.Context{"hook_load_kg": c.hookLoad, "swl_kg": c.swl, "action": action}))
		return false
	}

	if c.moving {
		c.log.Info(fmt.Sprintf("Crane in motion (%s), transitioning to %s", c.mode, action))
		c.faults.Record(fault.NewNotice("command",
			fmt.Sprintf("transition to %s while in motion", action),
			fault.Context{"from_mode": c.mode.String(), "action": action}))
	}

	return true
}

// Move attempts a motion in the given mode. If the safety check refuses
// the action, Move is a no-op. Otherwise the crane is marked moving, the
// mode is set to the action's category, and detail is logged verbatim.
func (c *Crane) Move(mode Mode, action, detail string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.checkSafeLocked(action) {
		return
	}

	c.moving = true
	c.mode = mode
	c.log.Info(detail)
}

// Stop halts all crane motion and returns the crane to idle. Calling
// Stop when the crane is already idle and not moving produces no
// logbook line. An empty reason logs DefaultStopReason.
func (c *Crane) Stop(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeIdle && !c.moving {
		return
	}

	if reason == "" {
		reason = DefaultStopReason
	}

	c.moving = false
	c.mode = ModeIdle
	c.log.Info(reason)
}

// EmergencyStop halts all motion unconditionally and records an alarm.
// Unlike Stop it always produces a logbook line, so the entry survives
// even when the crane was already idle.
func (c *Crane) EmergencyStop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.moving = false
	c.mode = ModeIdle
	c.log.Warn("EMERGENCY STOP: all crane motion halted")
	c.faults.Record(fault.NewAlarm("estop", "emergency stop engaged", nil))
}

// Command tags accepted by Dispatch, one per console control.
const (
	CmdHoist         = "hoist"
	CmdLower         = "lower"
	CmdLuffIn        = "luff-in"
	CmdLuffOut       = "luff-out"
	CmdSlewPort      = "slew-port"
	CmdSlewStarboard = "slew-starboard"
	CmdStop          = "stop"
)

// Dispatch routes a console command tag to the matching crane operation.
// Luff-in and luff-out share ModeLuff, port and starboard slews share
// ModeSlew; only the logged detail differs. Unrecognised tags produce an
// advisory notice and leave the crane untouched.
func (c *Crane) Dispatch(command string) {
	switch command {
	case CmdHoist:
		c.Move(ModeHoist, "hoist", "Hoisting: raising the load")
	case CmdLower:
		c.Move(ModeLower, "lower", "Lowering: paying out the hoist wire")
	case CmdLuffIn:
		c.Move(ModeLuff, "luff", "Luffing in: boom up, radius decreasing")
	case CmdLuffOut:
		c.Move(ModeLuff, "luff", "Luffing out: boom down, radius increasing")
	case CmdSlewPort:
		c.Move(ModeSlew, "slew", "Slewing to port")
	case CmdSlewStarboard:
		c.Move(ModeSlew, "slew", "Slewing to starboard")
	case CmdStop:
		c.Stop("")
	default:
		c.log.Info(fmt.Sprintf("Unknown command %q ignored", command))
		c.faults.Record(fault.NewNotice("command",
			fmt.Sprintf("unknown command %q", command),
			fault.Context{"command": command}))
	}
}
