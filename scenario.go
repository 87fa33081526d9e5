package davit

import "time"

// Step is one timed action on a scenario's timeline. Offsets are
// measured from the start of the run, not from the previous step.
type Step struct {
	Offset time.Duration
	Name   string
	Do     func(*Crane)
}

// Scenario is a named, fixed linear timeline of crane actions. There is
// no branching and no mid-sequence recovery; a scenario either plays to
// its end, is refused by the up-front safety gate, or is cancelled.
type Scenario struct {
	Name  string
	Steps []Step
}

// HoistCycle narrates a single hoist cycle: lift the load clear, slew
// it over the landing area, luff out to the final radius, land and
// stop. Ends with the crane idle and nothing in motion.
func HoistCycle() Scenario {
	return Scenario{
		Name: "hoist cycle",
		Steps: []Step{
			{Offset: 0, Name: "cycle-start", Do: func(c *Crane) {
				c.Note("Hoist cycle commenced: lift, slew, land")
			}},
			{Offset: 0, Name: "hoist", Do: func(c *Crane) {
				c.Move(ModeHoist, "hoist", "Hoisting load clear of the deck")
			}},
			{Offset: 600 * time.Millisecond, Name: "slew", Do: func(c *Crane) {
				c.Move(ModeSlew, "slew", "Slewing load over the landing area")
			}},
			{Offset: 1200 * time.Millisecond, Name: "luff", Do: func(c *Crane) {
				c.Move(ModeLuff, "luff", "Luffing out to the landing radius")
			}},
			{Offset: 1800 * time.Millisecond, Name: "stop", Do: func(c *Crane) {
				c.Stop("Load landed, hoist cycle complete")
			}},
		},
	}
}

// Transfer narrates a cargo transfer from the quay into the hold: five
// sequential entries ending in a stop, with the mode progressing
// hoist, slew, luff, lower, idle.
func Transfer() Scenario {
	return Scenario{
		Name: "cargo transfer",
		Steps: []Step{
			{Offset: 0, Name: "hoist", Do: func(c *Crane) {
				c.Move(ModeHoist, "hoist", "Lifting cargo from the quay")
			}},
			{Offset: 500 * time.Millisecond, Name: "slew", Do: func(c *Crane) {
				c.Move(ModeSlew, "slew", "Slewing cargo across to the hold")
			}},
			{Offset: 1000 * time.Millisecond, Name: "luff", Do: func(c *Crane) {
				c.Move(ModeLuff, "luff", "Luffing in over the hatch")
			}},
			{Offset: 1500 * time.Millisecond, Name: "lower", Do: func(c *Crane) {
				c.Move(ModeLower, "lower", "Lowering cargo into the hold")
			}},
			{Offset: 2000 * time.Millisecond, Name: "stop", Do: func(c *Crane) {
				c.Stop("Cargo transfer complete, all motion stopped")
			}},
		},
	}
}
