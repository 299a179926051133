package phase

import (
	"github.com/hollowdelve/hollowdelve/internal/game/combat"
	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// FightSystem runs one combat encounter through the combat resolver.
type FightSystem struct {
	resolver *combat.Resolver
}

// NewFightSystem creates the fight system.
//
// Precondition: resolver must be non-nil.
func NewFightSystem(resolver *combat.Resolver) *FightSystem {
	return &FightSystem{resolver: resolver}
}

// Enter begins an encounter against the current room's enemies.
func (f *FightSystem) Enter(s *world.State) {
	f.resolver.Begin(s)
}

// Update advances the encounter one frame.
func (f *FightSystem) Update(s *world.State, dt float64, in intent.Frame) {
	f.resolver.Update(s, dt, in)
}

// Done reports whether the encounter has resolved.
func (f *FightSystem) Done() bool { return f.resolver.Done() }

// Won reports whether the resolved encounter was a victory.
//
// Precondition: Done() is true.
func (f *FightSystem) Won() bool { return f.resolver.PlayerWon() }
