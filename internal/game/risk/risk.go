// Package risk generates and resolves the optional high-risk
// opportunities offered between the power-up and escalation phases.
package risk

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// legendaryRelics are the relics a blood ritual can grant.
var legendaryRelics = []string{
	"Phoenix Feather",
	"Berserker's Rage",
	"Time Warp",
	"Vampire Fangs",
}

// Generator rolls opportunity sets and applies accepted bargains.
type Generator struct {
	src    rng.Source
	logger *zap.Logger
}

// NewGenerator creates an opportunity generator.
//
// Precondition: src and logger must be non-nil.
func NewGenerator(src rng.Source, logger *zap.Logger) *Generator {
	return &Generator{src: src, logger: logger}
}

// Roll draws this cycle's opportunity set. Each entry rolls
// independently; the blood ritual is only offered while the player has
// health to spare. An empty result means the push-your-luck phase is
// skipped entirely.
func (g *Generator) Roll(s *world.State) []entity.Opportunity {
	var opps []entity.Opportunity

	if rng.Chance(g.src, 0.3) {
		opps = append(opps, entity.Opportunity{
			Name:        "Elite Challenge",
			Type:        entity.OpportunityElite,
			Description: "Empower a lurking enemy in exchange for its spoils.",
			Risk:        "an enemy on this floor becomes elite",
			Reward:      "elite enemies drop double gold",
		})
	}
	if rng.Chance(g.src, 0.2) {
		opps = append(opps, entity.Opportunity{
			Name:        "Dark Bargain",
			Type:        entity.OpportunityCurse,
			Description: "Trade a sliver of your soul for raw power.",
			Risk:        "gain the Reduced Healing curse",
			Reward:      "+10 damage",
		})
	}
	if rng.Chance(g.src, 0.25) {
		opps = append(opps, entity.Opportunity{
			Name:        "Timed Trial",
			Type:        entity.OpportunityTimed,
			Description: "A cache of gold for the swift.",
			Risk:        "none, if you are quick",
			Reward:      "150 gold",
		})
	}
	if s.Player.HP > 50 {
		opps = append(opps, entity.Opportunity{
			Name:        "Blood Ritual",
			Type:        entity.OpportunityHealth,
			Description: "Offer your blood to the delve.",
			Risk:        "lose 30 HP",
			Reward:      "a legendary relic",
		})
	}

	g.logger.Debug("risk opportunities rolled",
		zap.Int("count", len(opps)),
	)
	return opps
}

// Accept applies the bargain's cost and benefit to the run.
//
// Postcondition: the opportunity's effect is fully applied; declining
// is handled by the caller and never reaches here.
func (g *Generator) Accept(s *world.State, opp entity.Opportunity) {
	switch opp.Type {
	case entity.OpportunityElite:
		g.promoteFirstCandidate(s)
	case entity.OpportunityCurse:
		s.Player.Curses = append(s.Player.Curses, "Reduced Healing")
		s.Player.Damage += 10
	case entity.OpportunityTimed:
		s.Player.Gold += 150
	case entity.OpportunityHealth:
		s.Player.ApplyDamage(30)
		relic := rng.Pick(g.src, legendaryRelics)
		s.Player.Relics = append(s.Player.Relics, relic)
	}

	g.logger.Info("opportunity accepted",
		zap.String("name", opp.Name),
		zap.String("type", string(opp.Type)),
	)
}

// promoteFirstCandidate elevates the first enemy of the first
// uncleared standard room that still holds enemies. Quiet no-op when
// the floor has no candidate left.
func (g *Generator) promoteFirstCandidate(s *world.State) {
	for _, room := range s.Rooms {
		if room.Type != entity.RoomStandard || room.Cleared || len(room.Enemies) == 0 {
			continue
		}
		e := room.Enemies[0]
		e.PromoteElite()
		g.logger.Info("enemy promoted to elite",
			zap.String("type", string(e.Type)),
			zap.Int("hp", e.HP),
		)
		return
	}
	g.logger.Debug("no enemy left to promote")
}
