// Package reward defines the fixed offer catalogs and applies chosen
// effects to the player during the power-up phase.
package reward

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
)

// CombatOffer returns the fixed 3-option reward offered after every
// combat victory.
func CombatOffer() entity.Offer {
	return entity.Offer{
		Kind: entity.OfferCombatReward,
		Options: []entity.Option{
			{Name: "Damage Up", Effect: entity.Effect{Kind: entity.EffectDamage, Amount: 3}},
			{Name: "Health Up", Effect: entity.Effect{Kind: entity.EffectMaxHP, Amount: 20}},
			{Name: "Speed Up", Effect: entity.Effect{Kind: entity.EffectSpeed, Scalar: 0.5}},
		},
	}
}

// TreasureOffer returns the fixed 3-option offer queued on first
// discovery of a treasure room.
func TreasureOffer() entity.Offer {
	return entity.Offer{
		Kind: entity.OfferTreasure,
		Options: []entity.Option{
			{Name: "Gold Cache", Effect: entity.Effect{Kind: entity.EffectGold, Amount: 100}},
			{Name: "Health Potion", Effect: entity.Effect{Kind: entity.EffectHeal, Amount: 50}},
			{Name: "Mystery Box", Effect: entity.Effect{Kind: entity.EffectRandom}},
		},
	}
}

// Applier applies effects to the player, resolving random redirects
// through the shared random stream.
type Applier struct {
	src    rng.Source
	logger *zap.Logger
}

// NewApplier creates an effect applier.
//
// Precondition: src and logger must be non-nil.
func NewApplier(src rng.Source, logger *zap.Logger) *Applier {
	return &Applier{src: src, logger: logger}
}

// randomKinds are the effect kinds a random redirect can resolve to.
var randomKinds = []entity.EffectKind{
	entity.EffectDamage,
	entity.EffectMaxHP,
	entity.EffectSpeed,
	entity.EffectGold,
}

// Apply applies eff to p. name labels the source option for logging.
// Unrecognized kinds are surfaced as a warning and change nothing;
// degenerate applications (healing at full HP, removing a curse when
// none exists) are no-ops, never errors.
func (a *Applier) Apply(p *entity.Player, name string, eff entity.Effect) {
	switch eff.Kind {
	case entity.EffectDamage:
		p.Damage += eff.Amount
		a.logger.Info("damage increased",
			zap.String("source", name),
			zap.Int("amount", eff.Amount),
			zap.Int("damage", p.Damage),
		)
	case entity.EffectMaxHP:
		p.MaxHP += eff.Amount
		p.HP += eff.Amount
		a.logger.Info("max hp increased",
			zap.String("source", name),
			zap.Int("amount", eff.Amount),
			zap.Int("max_hp", p.MaxHP),
		)
	case entity.EffectSpeed:
		p.Speed += eff.Scalar
		a.logger.Info("speed increased",
			zap.String("source", name),
			zap.Float64("amount", eff.Scalar),
			zap.Float64("speed", p.Speed),
		)
	case entity.EffectArmor:
		p.Armor += eff.Amount
		a.logger.Info("armor increased",
			zap.String("source", name),
			zap.Int("amount", eff.Amount),
			zap.Int("armor", p.Armor),
		)
	case entity.EffectCritChance:
		p.CritChance += eff.Scalar
		a.logger.Info("crit chance increased",
			zap.String("source", name),
			zap.Float64("amount", eff.Scalar),
			zap.Float64("crit_chance", p.CritChance),
		)
	case entity.EffectHeal:
		healed := p.Heal(eff.Amount)
		a.logger.Info("healed",
			zap.String("source", name),
			zap.Int("amount", healed),
			zap.Int("hp", p.HP),
		)
	case entity.EffectGold:
		p.Gold += eff.Amount
		a.logger.Info("gold gained",
			zap.String("source", name),
			zap.Int("amount", eff.Amount),
			zap.Int("gold", p.Gold),
		)
	case entity.EffectAbility:
		p.Abilities = append(p.Abilities, eff.Grant)
		a.logger.Info("ability gained",
			zap.String("source", name),
			zap.String("ability", eff.Grant),
		)
	case entity.EffectRelic:
		p.Relics = append(p.Relics, eff.Grant)
		a.logger.Info("relic gained",
			zap.String("source", name),
			zap.String("relic", eff.Grant),
		)
	case entity.EffectRemoveCurse:
		if len(p.Curses) == 0 {
			a.logger.Info("no curses to remove", zap.String("source", name))
			return
		}
		removed := p.Curses[len(p.Curses)-1]
		p.Curses = p.Curses[:len(p.Curses)-1]
		a.logger.Info("curse removed",
			zap.String("source", name),
			zap.String("curse", removed),
		)
	case entity.EffectKeys:
		p.Keys += eff.Amount
		a.logger.Info("keys gained",
			zap.String("source", name),
			zap.Int("amount", eff.Amount),
			zap.Int("keys", p.Keys),
		)
	case entity.EffectRandom:
		kind := rng.Pick(a.src, randomKinds)
		amount := rng.IntBetween(a.src, 5, 20)
		redirect := entity.Effect{Kind: kind, Amount: amount}
		if kind == entity.EffectSpeed {
			redirect = entity.Effect{Kind: kind, Scalar: float64(amount)}
		}
		a.Apply(p, "Random Bonus", redirect)
	default:
		a.logger.Warn("unrecognized effect kind ignored",
			zap.String("source", name),
			zap.String("kind", string(eff.Kind)),
		)
	}
}
