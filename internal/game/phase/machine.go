package phase

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/risk"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// Systems bundles the eight phase systems the machine drives.
type Systems struct {
	Explore  *ExploreSystem
	Fight    *FightSystem
	Choose   *ChooseSystem
	PowerUp  *PowerUpSystem
	PushLuck *PushLuckSystem
	Escalate *EscalateSystem
	CashOut  *CashOutSystem
	Reset    *ResetSystem
}

// Machine drives the run: one phase system is active per frame, and
// transitions fire only when that system completes. The run clock
// accumulates while unpaused; pause freezes everything but the toggle.
type Machine struct {
	systems  Systems
	risk     *risk.Generator
	renderer Renderer
	logger   *zap.Logger

	current Phase
}

// NewMachine creates the machine.
//
// Precondition: every system, riskGen, renderer, and logger must be
// non-nil.
func NewMachine(systems Systems, riskGen *risk.Generator, renderer Renderer, logger *zap.Logger) *Machine {
	return &Machine{
		systems:  systems,
		risk:     riskGen,
		renderer: renderer,
		logger:   logger,
		current:  PhaseExplore,
	}
}

// Current returns the active phase.
func (m *Machine) Current() Phase { return m.current }

// Begin enters the explore phase and renders the opening frame.
//
// Precondition: call exactly once, before the first Update.
func (m *Machine) Begin(s *world.State) {
	m.current = PhaseExplore
	m.systems.Explore.Enter(s)
	m.renderer.Render(m.current, s.Snapshot())
}

// Update advances the run by one frame.
func (m *Machine) Update(s *world.State, dt float64, in intent.Frame) {
	if in.PauseToggle {
		s.Paused = !s.Paused
		m.logger.Info("pause toggled", zap.Bool("paused", s.Paused))
	}
	if s.Paused {
		return
	}

	s.Stats.RunTime += dt

	sys := m.system(m.current)
	sys.Update(s, dt, in)
	if !sys.Done() {
		return
	}

	next := m.next(s)
	m.transition(s, next)
}

func (m *Machine) system(p Phase) System {
	switch p {
	case PhaseExplore:
		return m.systems.Explore
	case PhaseFight:
		return m.systems.Fight
	case PhaseChoose:
		return m.systems.Choose
	case PhasePowerUp:
		return m.systems.PowerUp
	case PhasePushLuck:
		return m.systems.PushLuck
	case PhaseEscalate:
		return m.systems.Escalate
	case PhaseCashOut:
		return m.systems.CashOut
	case PhaseReset:
		return m.systems.Reset
	}
	// Unreachable: current is only ever set to the constants above.
	return m.systems.Explore
}

// next evaluates the transition guards for the completed phase.
func (m *Machine) next(s *world.State) Phase {
	switch m.current {
	case PhaseExplore:
		return m.systems.Explore.Next()

	case PhaseFight:
		if m.systems.Fight.Won() {
			return PhaseChoose
		}
		return PhaseReset

	case PhaseChoose:
		return PhasePowerUp

	case PhasePowerUp:
		if s.HasPendingOffers() {
			return PhaseChoose
		}
		// One roll per power-up cycle; an empty roll returns the run
		// to exploration. Escalation is only ever reached through an
		// accepted opportunity.
		opps := m.risk.Roll(s)
		if len(opps) > 0 {
			m.systems.PushLuck.Stage(opps)
			return PhasePushLuck
		}
		return PhaseExplore

	case PhasePushLuck:
		if m.systems.PushLuck.Accepted() {
			return PhaseEscalate
		}
		return PhaseExplore

	case PhaseEscalate, PhaseCashOut, PhaseReset:
		return PhaseExplore
	}
	return PhaseExplore
}

func (m *Machine) transition(s *world.State, next Phase) {
	prev := m.current
	m.current = next
	m.system(next).Enter(s)

	m.logger.Info("phase transition",
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
		zap.Int("floor", s.Floor),
	)
	m.renderer.Render(next, s.Snapshot())
}
