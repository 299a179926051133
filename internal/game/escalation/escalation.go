// Package escalation advances the run's difficulty: floor progression
// with biome shifts and price inflation once a floor is cleared, or
// minor per-enemy escalation while it is not.
package escalation

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// minorModifierChance is the per-enemy chance of gaining a modifier
// during a minor escalation pass.
const minorModifierChance = 0.1

// priceInflationPerFloor is the shop price increase per floor past the
// first.
const priceInflationPerFloor = 0.15

// Controller applies one escalation step per cycle.
type Controller struct {
	src    rng.Source
	logger *zap.Logger
}

// NewController creates an escalation controller.
//
// Precondition: src and logger must be non-nil.
func NewController(src rng.Source, logger *zap.Logger) *Controller {
	return &Controller{src: src, logger: logger}
}

// Advance runs one escalation step. When every non-shop room is
// cleared the run moves to the next floor: the floor counter rises,
// the biome shifts every third floor past the first, a new floor is
// generated, and shop prices inflate. Otherwise the remaining enemies
// face a minor escalation pass.
//
// Postcondition: returns true iff the floor advanced.
func (c *Controller) Advance(s *world.State) (bool, error) {
	if !c.floorCleared(s) {
		c.minorEscalation(s)
		return false, nil
	}

	s.Floor++
	if s.Floor > 1 && s.Floor%3 == 1 {
		prev := s.Biome
		s.Biome = s.Biome.Next()
		c.logger.Info("biome shifted",
			zap.String("from", string(prev)),
			zap.String("to", string(s.Biome)),
		)
	}

	if err := s.GenerateFloor(); err != nil {
		return false, err
	}
	s.PriceModifier = 1.0 + float64(s.Floor-1)*priceInflationPerFloor

	c.logger.Info("floor advanced",
		zap.Int("floor", s.Floor),
		zap.String("biome", string(s.Biome)),
		zap.Float64("price_modifier", s.PriceModifier),
	)
	return true, nil
}

// floorCleared reports whether every non-shop room has been cleared.
// Shop rooms never hold enemies and do not gate progression.
func (c *Controller) floorCleared(s *world.State) bool {
	for _, room := range s.Rooms {
		if room.Type == entity.RoomShop {
			continue
		}
		if !room.Cleared {
			return false
		}
	}
	return true
}

// minorModifiers are the tags a minor escalation pass can hand out.
var minorModifiers = []string{
	entity.ModifierFast,
	entity.ModifierTough,
	entity.ModifierRegenerating,
}

// minorEscalation gives each remaining enemy a 10% chance of gaining
// one modifier. An enemy already carrying the rolled modifier is left
// unchanged, so repeated passes never stack the same buff.
func (c *Controller) minorEscalation(s *world.State) {
	applied := 0
	for _, room := range s.Rooms {
		for _, e := range room.Enemies {
			if !rng.Chance(c.src, minorModifierChance) {
				continue
			}
			tag := rng.Pick(c.src, minorModifiers)
			if e.HasModifier(tag) {
				continue
			}
			c.applyModifier(e, tag)
			applied++
		}
	}
	c.logger.Debug("minor escalation pass",
		zap.Int("modifiers_applied", applied),
	)
}

func (c *Controller) applyModifier(e *entity.Enemy, tag string) {
	switch tag {
	case entity.ModifierFast:
		e.Speed *= 1.3
	case entity.ModifierTough:
		e.HP = int(float64(e.HP) * 1.2)
		e.MaxHP = int(float64(e.MaxHP) * 1.2)
	case entity.ModifierRegenerating:
		// Tag only, no stat change.
	}
	e.AddModifier(tag)
}
