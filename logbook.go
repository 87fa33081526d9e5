package davit

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultLogbookCapacity bounds how many entries a logbook retains
// before evicting the oldest. A long watch keeps scrolling; memory
// does not grow with it.
const DefaultLogbookCapacity = 512

// Level classifies a logbook entry.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "unknown"
	}
}

// Entry is one timestamped line of the session narrative.
type Entry struct {
	At    time.Time
	Level Level
	Text  string
}

// Logbook is a bounded, newest-first record of everything the crane
// did during a session. It replaces the unbounded prepend buffer of the
// reference procedure with a fixed-capacity ring; once full, recording
// a new entry evicts the oldest.
//
// Safe for concurrent use: the scenario director appends from its own
// goroutine while the console renders.
type Logbook struct {
	mu      sync.Mutex
	entries []Entry // ring storage
	head    int     // index of the oldest entry
	count   int

	now     func() time.Time
	journal *zap.SugaredLogger
}

// NewLogbook creates a logbook retaining at most capacity entries.
// Non-positive capacity selects DefaultLogbookCapacity.
func NewLogbook(capacity int) *Logbook {
	if capacity <= 0 {
		capacity = DefaultLogbookCapacity
	}
	return &Logbook{
		entries: make([]Entry, capacity),
		now:     time.Now,
	}
}

// WithClock replaces the wall clock, for deterministic timestamps in
// tests. Returns the logbook for chaining.
func (l *Logbook) WithClock(now func() time.Time) *Logbook {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
	return l
}

// WithJournal tees every entry to a structured journal. The journal
// writes to a file, never the terminal; the console owns the TTY.
func (l *Logbook) WithJournal(journal *zap.SugaredLogger) *Logbook {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.journal = journal
	return l
}

// Info records an informational entry.
func (l *Logbook) Info(text string) {
	l.record(LevelInfo, text)
}

// Warn records a warning entry.
func (l *Logbook) Warn(text string) {
	l.record(LevelWarn, text)
}

func (l *Logbook) record(level Level, text string) {
	l.mu.Lock()
	e := Entry{At: l.now(), Level: level, Text: text}

	if l.count < len(l.entries) {
		l.entries[(l.head+l.count)%len(l.entries)] = e
		l.count++
	} else {
		// Full: overwrite the oldest slot and advance the head.
		l.entries[l.head] = e
		l.head = (l.head + 1) % len(l.entries)
	}
	journal := l.journal
	l.mu.Unlock()

	if journal != nil {
		switch level {
		case LevelWarn:
			journal.Warnw(text, "source", "logbook")
		default:
			journal.Infow(text, "source", "logbook")
		}
	}
}

// Len returns the number of retained entries.
func (l *Logbook) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Capacity returns the maximum number of retained entries.
func (l *Logbook) Capacity() int {
	return len(l.entries)
}

// Entries returns the retained entries newest first.
func (l *Logbook) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, l.count)
	for i := l.count - 1; i >= 0; i-- {
		out = append(out, l.entries[(l.head+i)%len(l.entries)])
	}
	return out
}

// Render formats the retained entries newest first, one timestamped
// line per entry, the way the console's log panel displays them.
func (l *Logbook) Render() string {
	var b strings.Builder
	for _, e := range l.Entries() {
		b.WriteString(e.At.Format("15:04:05"))
		b.WriteString("  ")
		if e.Level == LevelWarn {
			b.WriteString("! ")
		}
		b.WriteString(e.Text)
		b.WriteString("\n")
	}
	return b.String()
}
