package davit

import (
	"fmt"
	"sync"
)

// The pre-lift checks, in the order the procedure card lists them.
// These are advisory only; the simulator does not compute radius, wind
// or rigging state.
var defaultChecklistItems = [5]string{
	"Confirm hook load is within SWL and the load chart",
	"Verify boom angle and working radius against rated capacity",
	"Check slew path and swing radius are clear of personnel",
	"Inspect rigging, slings and the hook safety latch",
	"Confirm wind and sea state are within operating limits",
}

// ChecklistItem is one advisory check and whether it has been run.
type ChecklistItem struct {
	Text    string
	Checked bool
}

// Checklist holds the pre-lift advisory checks. Run marks every item
// checked and narrates each into the logbook; Reset restores the fixed
// items in their original order, discarding any marks.
type Checklist struct {
	mu    sync.Mutex
	items []ChecklistItem
	log   *Logbook
}

// NewChecklist creates the pre-lift checklist bound to a logbook.
func NewChecklist(log *Logbook) *Checklist {
	c := &Checklist{log: log}
	c.restore()
	return c
}

func (c *Checklist) restore() {
	c.items = make([]ChecklistItem, len(defaultChecklistItems))
	for i, text := range defaultChecklistItems {
		c.items[i] = ChecklistItem{Text: text}
	}
}

// Run marks every item checked, logging one line per item in order.
func (c *Checklist) Run() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		c.items[i].Checked = true
		c.log.Info(fmt.Sprintf("Checklist %d/%d: %s", i+1, len(c.items), c.items[i].Text))
	}
	c.log.Info("Pre-lift checklist complete")
}

// Reset restores the five fixed advisory items in their original order,
// discarding any prior marks.
func (c *Checklist) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.restore()
	c.log.Info("Pre-lift checklist reset")
}

// Items returns a snapshot of the checklist.
func (c *Checklist) Items() []ChecklistItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ChecklistItem, len(c.items))
	copy(out, c.items)
	return out
}

// Complete reports whether every item has been checked.
func (c *Checklist) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if !item.Checked {
			return false
		}
	}
	return true
}
