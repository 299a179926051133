package phase

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/risk"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// PushLuckSystem presents the first rolled opportunity and consumes a
// single terminal accept-or-decline decision. The rest of the roll is
// computed but never offered.
type PushLuckSystem struct {
	gen    *risk.Generator
	logger *zap.Logger

	opps     []entity.Opportunity
	accepted bool
	done     bool
}

// NewPushLuckSystem creates the push-your-luck system.
//
// Precondition: gen and logger must be non-nil.
func NewPushLuckSystem(gen *risk.Generator, logger *zap.Logger) *PushLuckSystem {
	return &PushLuckSystem{gen: gen, logger: logger}
}

// Stage installs the opportunity roll to present. The machine stages
// before transitioning in; staging an empty roll makes the phase
// complete immediately on entry.
func (p *PushLuckSystem) Stage(opps []entity.Opportunity) {
	p.opps = opps
}

// Current returns the opportunity awaiting a decision.
//
// Precondition: the staged roll is non-empty.
func (p *PushLuckSystem) Current() entity.Opportunity {
	return p.opps[0]
}

// Accepted reports whether the presented opportunity was taken.
//
// Precondition: Done() is true.
func (p *PushLuckSystem) Accepted() bool { return p.accepted }

// Enter presents the staged opportunity.
func (p *PushLuckSystem) Enter(s *world.State) {
	p.accepted = false
	p.done = len(p.opps) == 0
	if p.done {
		return
	}
	p.logger.Info("opportunity presented",
		zap.String("name", p.Current().Name),
		zap.String("risk", p.Current().Risk),
		zap.String("reward", p.Current().Reward),
	)
}

// Done reports whether the decision has been made.
func (p *PushLuckSystem) Done() bool { return p.done }

// Update waits for the accept or decline intent. The decision is
// terminal: one per phase entry.
func (p *PushLuckSystem) Update(s *world.State, dt float64, in intent.Frame) {
	if p.done {
		return
	}

	switch {
	case in.AcceptRisk:
		p.gen.Accept(s, p.Current())
		p.accepted = true
	case in.DeclineRisk:
		p.logger.Info("opportunity declined",
			zap.String("name", p.Current().Name),
		)
	default:
		return
	}
	p.done = true
}
