// Package fault provides advisory and fault handling for crane simulation.
//
// The simulator never terminates on a fault: every condition the crane
// detects (an overload, an unrecognised command, an emergency stop) is
// recorded as a Fault and surfaced through the logbook, matching how a
// real operating panel raises advisories without halting the watch.
package fault

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Fault represents a condition the simulator detected during operation.
//
// Faults categorise the conditions a crane console can raise without
// aborting the session:
//   - "overload": hook load exceeds the safe working load
//   - "command": an unrecognised or misrouted operator command
//   - "scenario": a scripted sequence was refused or cancelled
//   - "estop": the emergency stop was engaged
type Fault struct {
	Kind      string    // Condition category for systematic handling
	Message   string    // Human-readable description
	Context   Context   // Additional state captured at detection time
	Timestamp time.Time // When the condition was detected
	Severity  Severity  // How serious this condition is
}

// Context captures simulator state at the moment a fault was raised.
type Context map[string]interface{}

// Severity indicates how serious a fault is and how it should be handled.
type Severity int

const (
	// Notice indicates an informational condition requiring no action.
	// Examples: mode change while in motion, unrecognised command ignored
	Notice Severity = iota

	// Refusal indicates a requested action was declined and not executed.
	// Examples: overload detected, scenario gate check failed
	Refusal

	// Alarm indicates the operator forced the crane to a safe state.
	// Example: emergency stop engaged
	Alarm
)

func (s Severity) String() string {
	switch s {
	case Notice:
		return "notice"
	case Refusal:
		return "refusal"
	case Alarm:
		return "alarm"
	default:
		return "unknown"
	}
}

// New creates a fault with Refusal severity and the current timestamp.
func New(kind, message string, context Context) *Fault {
	return &Fault{
		Kind:      kind,
		Message:   message,
		Context:   context,
		Timestamp: time.Now(),
		Severity:  Refusal,
	}
}

// NewNotice creates a fault with Notice severity.
func NewNotice(kind, message string, context Context) *Fault {
	f := New(kind, message, context)
	f.Severity = Notice
	return f
}

// NewAlarm creates a fault with Alarm severity.
func NewAlarm(kind, message string, context Context) *Fault {
	f := New(kind, message, context)
	f.Severity = Alarm
	return f
}

// WithSeverity sets the severity level for this fault.
func (f *Fault) WithSeverity(severity Severity) *Fault {
	f.Severity = severity
	return f
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("[%s:%s] %s", f.Kind, f.Severity, f.Message)
}

// IsAdvisory returns true if the fault requires no operator action.
func (f *Fault) IsAdvisory() bool {
	return f.Severity == Notice
}

// GetContext returns a specific context value if it exists.
func (f *Fault) GetContext(key string) (interface{}, bool) {
	if f.Context == nil {
		return nil, false
	}
	val, exists := f.Context[key]
	return val, exists
}

// DetailedString returns a comprehensive fault description with context.
func (f *Fault) DetailedString() string {
	var details strings.Builder

	details.WriteString(fmt.Sprintf("[%s:%s] %s", f.Kind, f.Severity, f.Message))
	details.WriteString(fmt.Sprintf("\n  Time: %s", f.Timestamp.Format("15:04:05.000")))

	if len(f.Context) > 0 {
		details.WriteString("\n  Context:")
		for key, value := range f.Context {
			details.WriteString(fmt.Sprintf("\n    %s: %v", key, value))
		}
	}

	return details.String()
}

// Handler collects faults raised by one simulator component.
//
// The crane, the scenario director and the command dispatcher each own a
// handler, so a session report can show which part of the procedure
// raised which advisories. Handlers are safe for concurrent use; the
// scenario director records faults from its own goroutine.
type Handler struct {
	mu        sync.Mutex
	component string   // Component name (e.g. "crane", "director", "console")
	faults    []*Fault // Refusals and alarms in chronological order
	notices   []*Fault // Informational conditions in chronological order
	policy    *Policy
}

// Policy defines how accumulated faults affect the session.
type Policy struct {
	// HaltOnAlarm reports the session as not continuable after an alarm.
	HaltOnAlarm bool

	// MaxNotices caps accumulated notices before the handler reports
	// the session as not continuable. Zero means no cap.
	MaxNotices int
}

// DefaultPolicy returns the policy matching the reference procedure:
// alarms end the working session, notices never do.
func DefaultPolicy() *Policy {
	return &Policy{
		HaltOnAlarm: true,
		MaxNotices:  0,
	}
}

// NewHandler creates a fault handler for a specific component.
func NewHandler(component string, policy *Policy) *Handler {
	if policy == nil {
		policy = DefaultPolicy()
	}

	return &Handler{
		component: component,
		faults:    make([]*Fault, 0),
		notices:   make([]*Fault, 0),
		policy:    policy,
	}
}

// Record adds a fault to the handler's collection.
func (h *Handler) Record(f *Fault) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if f.Severity == Notice {
		h.notices = append(h.notices, f)
	} else {
		h.faults = append(h.faults, f)
	}
}

// ShouldContinue reports whether the working session may continue
// under the handler's policy.
func (h *Handler) ShouldContinue() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.policy.HaltOnAlarm {
		for _, f := range h.faults {
			if f.Severity == Alarm {
				return false
			}
		}
	}

	if h.policy.MaxNotices > 0 && len(h.notices) > h.policy.MaxNotices {
		return false
	}

	return true
}

// HasFaults returns true if any refusals or alarms have been recorded.
func (h *Handler) HasFaults() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.faults) > 0
}

// HasNotices returns true if any notices have been recorded.
func (h *Handler) HasNotices() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.notices) > 0
}

// Faults returns all recorded refusals and alarms.
func (h *Handler) Faults() []*Fault {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Fault, len(h.faults))
	copy(out, h.faults)
	return out
}

// Notices returns all recorded notices.
func (h *Handler) Notices() []*Fault {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Fault, len(h.notices))
	copy(out, h.notices)
	return out
}

// Summary provides a concise overview of all recorded conditions.
func (h *Handler) Summary() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.faults) == 0 && len(h.notices) == 0 {
		return fmt.Sprintf("[%s] no faults during session", h.component)
	}

	return fmt.Sprintf("[%s] %d faults, %d notices",
		h.component, len(h.faults), len(h.notices))
}

// DetailedReport provides a comprehensive report of all conditions.
func (h *Handler) DetailedReport() string {
	summary := h.Summary()

	h.mu.Lock()
	defer h.mu.Unlock()

	var report strings.Builder
	report.WriteString(fmt.Sprintf("=== %s fault report ===\n", h.component))
	report.WriteString(summary + "\n")

	if len(h.faults) > 0 {
		report.WriteString("\nFaults:\n")
		for i, f := range h.faults {
			report.WriteString(fmt.Sprintf("%d. %s\n", i+1, f.DetailedString()))
		}
	}

	if len(h.notices) > 0 {
		report.WriteString("\nNotices:\n")
		for i, f := range h.notices {
			report.WriteString(fmt.Sprintf("%d. %s\n", i+1, f.DetailedString()))
		}
	}

	return report.String()
}
