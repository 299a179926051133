package phase

import (
	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/reward"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// PowerUpSystem applies the committed option's effect to the player.
// It consumes the selection on entry and completes in the same frame.
type PowerUpSystem struct {
	applier *reward.Applier
	done    bool
}

// NewPowerUpSystem creates the power-up system.
//
// Precondition: applier must be non-nil.
func NewPowerUpSystem(applier *reward.Applier) *PowerUpSystem {
	return &PowerUpSystem{applier: applier}
}

// Enter applies and consumes the selected option. No selection (the
// choose phase was skipped) is a quiet no-op.
//
// Postcondition: SelectedOption is nil.
func (p *PowerUpSystem) Enter(s *world.State) {
	p.done = true
	if s.SelectedOption == nil {
		return
	}
	opt := *s.SelectedOption
	s.SelectedOption = nil
	p.applier.Apply(s.Player, opt.Name, opt.Effect)
}

// Update is a no-op; the work happens on entry.
func (p *PowerUpSystem) Update(s *world.State, dt float64, in intent.Frame) {}

// Done always reports true once entered.
func (p *PowerUpSystem) Done() bool { return p.done }
