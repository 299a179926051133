package phase

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/escalation"
	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// EscalateSystem applies one escalation step and completes.
type EscalateSystem struct {
	controller *escalation.Controller
	logger     *zap.Logger
	done       bool
}

// NewEscalateSystem creates the escalate system.
//
// Precondition: controller and logger must be non-nil.
func NewEscalateSystem(controller *escalation.Controller, logger *zap.Logger) *EscalateSystem {
	return &EscalateSystem{controller: controller, logger: logger}
}

// Enter runs the escalation step. A floor-generation failure is
// logged and the run continues on the current floor.
func (e *EscalateSystem) Enter(s *world.State) {
	e.done = true
	if _, err := e.controller.Advance(s); err != nil {
		e.logger.Error("escalation failed", zap.Error(err))
	}
}

// Update is a no-op; the work happens on entry.
func (e *EscalateSystem) Update(s *world.State, dt float64, in intent.Frame) {}

// Done always reports true once entered.
func (e *EscalateSystem) Done() bool { return e.done }
