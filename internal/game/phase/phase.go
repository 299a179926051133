// Package phase implements the eight-phase run state machine and the
// per-phase systems it drives. Exactly one system is active per frame;
// transitions are guard-based and fire only when the active system
// reports completion.
package phase

import (
	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// Phase names one of the run's eight states.
type Phase string

// The eight run phases.
const (
	PhaseExplore  Phase = "explore"
	PhaseFight    Phase = "fight"
	PhaseChoose   Phase = "choose"
	PhasePowerUp  Phase = "power_up"
	PhasePushLuck Phase = "push_luck"
	PhaseEscalate Phase = "escalate"
	PhaseCashOut  Phase = "cash_out"
	PhaseReset    Phase = "reset"
)

// System is one phase's per-frame driver. Enter is called once on
// every transition into the phase; Update runs once per frame while
// the phase is active; Done reports that the machine should evaluate
// the transition guards.
type System interface {
	Enter(s *world.State)
	Update(s *world.State, dt float64, in intent.Frame)
	Done() bool
}

// Renderer is the presentation boundary. The machine calls it with a
// deep state snapshot on every phase transition; it must never retain
// or mutate live state.
type Renderer interface {
	Render(p Phase, snap world.Snapshot)
}
