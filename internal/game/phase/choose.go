package phase

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// ChooseSystem presents the oldest pending offer and commits exactly
// one of its options. Choices are mandatory; cancel is ignored.
type ChooseSystem struct {
	logger *zap.Logger

	offer    entity.Offer
	selected int
	done     bool
}

// NewChooseSystem creates the choose system.
//
// Precondition: logger must be non-nil.
func NewChooseSystem(logger *zap.Logger) *ChooseSystem {
	return &ChooseSystem{logger: logger}
}

// Enter dequeues the oldest pending offer. An empty queue completes
// the phase immediately with nothing selected.
func (c *ChooseSystem) Enter(s *world.State) {
	c.done = false
	c.selected = 0

	offer, ok := s.PopOffer()
	if !ok {
		c.done = true
		return
	}
	c.offer = offer

	c.logger.Info("choice presented",
		zap.String("kind", offer.Kind),
		zap.Int("options", len(offer.Options)),
	)
}

// Done reports whether an option has been committed.
func (c *ChooseSystem) Done() bool { return c.done }

// Selected returns the index of the highlighted option.
func (c *ChooseSystem) Selected() int { return c.selected }

// Offer returns the offer being presented.
func (c *ChooseSystem) Offer() entity.Offer { return c.offer }

// Update moves the selection cursor and commits on confirm. A numeric
// intent (1-based) selects and commits in one frame.
func (c *ChooseSystem) Update(s *world.State, dt float64, in intent.Frame) {
	if c.done {
		return
	}

	if in.SelectDelta != 0 {
		c.selected = clamp(c.selected+in.SelectDelta, 0, len(c.offer.Options)-1)
	}

	if in.Numeric >= 1 && in.Numeric <= len(c.offer.Options) {
		c.selected = in.Numeric - 1
		c.commit(s)
		return
	}
	if in.Confirm {
		c.commit(s)
	}
}

func (c *ChooseSystem) commit(s *world.State) {
	opt := c.offer.Options[c.selected]
	s.SelectedOption = &opt
	c.done = true
	c.logger.Info("option chosen",
		zap.String("name", opt.Name),
	)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
