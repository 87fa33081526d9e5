package davit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCrane(t *testing.T, cfg Config) (*Crane, *Logbook) {
	t.Helper()
	logbook := NewLogbook(64)
	cfg.Logbook = logbook
	return NewCrane(cfg), logbook
}

// oldestFirst reverses the logbook's newest-first order so tests can
// assert on the sequence entries were produced in.
func oldestFirst(logbook *Logbook) []string {
	entries := logbook.Entries()
	texts := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		texts = append(texts, entries[i].Text)
	}
	return texts
}

func TestNewCraneDefaults(t *testing.T) {
	crane, _ := newTestCrane(t, Config{})

	status := crane.Status()
	assert.Equal(t, DefaultSWL, status.SWL)
	assert.Equal(t, DefaultHookLoad, status.HookLoad)
	assert.Equal(t, ModeIdle, status.Mode)
	assert.False(t, status.Moving)
	assert.False(t, status.Overloaded())
}

func TestMoveSetsModeAndMotion(t *testing.T) {
	crane, logbook := newTestCrane(t, Config{})

	crane.Move(ModeHoist, "hoist", "Hoisting: raising the load")

	status := crane.Status()
	assert.Equal(t, ModeHoist, status.Mode)
	assert.True(t, status.Moving)

	entries := logbook.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Hoisting: raising the load", entries[0].Text)
}

func TestOverloadRefusesEveryMotionCommand(t *testing.T) {
	crane, logbook := newTestCrane(t, Config{SWL: 25000, HookLoad: 30000})

	commands := []string{
		CmdHoist, CmdLower, CmdLuffIn, CmdLuffOut, CmdSlewPort, CmdSlewStarboard,
	}

	for _, command := range commands {
		before := logbook.Len()
		crane.Dispatch(command)

		status := crane.Status()
		assert.Equal(t, ModeIdle, status.Mode, "mode must not change for %s", command)
		assert.False(t, status.Moving, "moving must not change for %s", command)

		entries := logbook.Entries()
		require.Equal(t, before+1, logbook.Len(), "exactly one warning per refused %s", command)
		assert.Equal(t, LevelWarn, entries[0].Level)
		assert.Contains(t, entries[0].Text, "OVERLOAD")
	}

	assert.True(t, crane.Faults().HasFaults())
	assert.Len(t, crane.Faults().Faults(), len(commands))
}

func TestStopWhenIdleEmitsNothing(t *testing.T) {
	crane, logbook := newTestCrane(t, Config{})

	crane.Stop("should not appear")

	assert.Equal(t, 0, logbook.Len())
	assert.Equal(t, ModeIdle, crane.Status().Mode)
}

func TestStopUsesDefaultReason(t *testing.T) {
	crane, logbook := newTestCrane(t, Config{})

	crane.Dispatch(CmdHoist)
	crane.Stop("")

	status := crane.Status()
	assert.Equal(t, ModeIdle, status.Mode)
	assert.False(t, status.Moving)

	entries := logbook.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, DefaultStopReason, entries[0].Text)
}

func TestLuffVariantsShareMode(t *testing.T) {
	crane, logbook := newTestCrane(t, Config{})

	crane.Dispatch(CmdLuffIn)
	assert.Equal(t, ModeLuff, crane.Status().Mode)

	crane.Dispatch(CmdLuffOut)
	assert.Equal(t, ModeLuff, crane.Status().Mode)

	texts := oldestFirst(logbook)
	assert.Contains(t, texts[0], "Luffing in")
	// Second luff raises the in-motion transition note before the move.
	assert.Contains(t, texts[len(texts)-1], "Luffing out")
}

func TestSlewVariantsShareMode(t *testing.T) {
	crane, _ := newTestCrane(t, Config{})

	crane.Dispatch(CmdSlewPort)
	assert.Equal(t, ModeSlew, crane.Status().Mode)

	crane.Dispatch(CmdSlewStarboard)
	assert.Equal(t, ModeSlew, crane.Status().Mode)
}

func TestCheckSafeNotesTransitionWhileMoving(t *testing.T) {
	crane, logbook := newTestCrane(t, Config{})

	crane.Dispatch(CmdHoist)
	assert.True(t, crane.CheckSafe("slew"))

	entries := logbook.Entries()
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Text, "in motion")
	assert.True(t, crane.Faults().HasNotices())
}

func TestDispatchUnknownCommand(t *testing.T) {
	crane, logbook := newTestCrane(t, Config{})

	crane.Dispatch("jettison")

	status := crane.Status()
	assert.Equal(t, ModeIdle, status.Mode)
	assert.False(t, status.Moving)

	entries := logbook.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Text, `Unknown command "jettison"`)
	assert.True(t, crane.Faults().HasNotices())
	assert.False(t, crane.Faults().HasFaults())
}

func TestEmergencyStopAlwaysLogs(t *testing.T) {
	crane, logbook := newTestCrane(t, Config{})

	// Unlike Stop, the emergency stop leaves an entry even when idle.
	crane.EmergencyStop()

	entries := logbook.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, LevelWarn, entries[0].Level)
	assert.Contains(t, entries[0].Text, "EMERGENCY STOP")
	assert.False(t, crane.Faults().ShouldContinue())
}

func TestModeStrings(t *testing.T) {
	assert.Equal(t, "idle", ModeIdle.String())
	assert.Equal(t, "hoist", ModeHoist.String())
	assert.Equal(t, "lower", ModeLower.String())
	assert.Equal(t, "luff", ModeLuff.String())
	assert.Equal(t, "slew", ModeSlew.String())
}
