package shop

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/reward"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// Result reports the outcome of a purchase attempt.
type Result int

// Purchase outcomes.
const (
	Purchased Result = iota
	CannotAfford
	OutOfRange
)

// Keeper stocks the shop and resolves purchases. Stock is never
// cleared between floors; a shop only restocks once sold out.
type Keeper struct {
	catalog []entity.ShopItem
	src     rng.Source
	applier *reward.Applier
	logger  *zap.Logger
}

// NewKeeper creates a shop keeper over the given catalog.
//
// Precondition: catalog is non-empty and validated; src, applier, and
// logger must be non-nil.
func NewKeeper(catalog []entity.ShopItem, src rng.Source, applier *reward.Applier, logger *zap.Logger) *Keeper {
	return &Keeper{catalog: catalog, src: src, applier: applier, logger: logger}
}

// Stock fills the shop with 4 to 6 catalog items sampled without
// replacement, priced at the current floor's modifier (truncated).
// No-op while unsold stock remains.
func (k *Keeper) Stock(s *world.State) {
	if len(s.ShopItems) > 0 {
		return
	}

	count := rng.IntBetween(k.src, 4, 6)
	if count > len(k.catalog) {
		count = len(k.catalog)
	}

	pool := append([]entity.ShopItem(nil), k.catalog...)
	stock := make([]entity.ShopItem, 0, count)
	for i := 0; i < count; i++ {
		j := k.src.Intn(len(pool))
		item := pool[j]
		item.Cost = int(float64(item.Cost) * s.PriceModifier)
		stock = append(stock, item)
		pool = append(pool[:j], pool[j+1:]...)
	}
	s.ShopItems = stock

	k.logger.Info("shop stocked",
		zap.Int("items", len(stock)),
		zap.Float64("price_modifier", s.PriceModifier),
	)
}

// Purchase attempts to buy the shop item at index. On success the gold
// is deducted, the item's effect applied, and the item removed from
// stock. A rejected purchase changes nothing.
func (k *Keeper) Purchase(s *world.State, index int) Result {
	if index < 0 || index >= len(s.ShopItems) {
		return OutOfRange
	}

	item := s.ShopItems[index]
	if s.Player.Gold < item.Cost {
		k.logger.Info("purchase rejected",
			zap.String("item", item.Name),
			zap.Int("cost", item.Cost),
			zap.Int("gold", s.Player.Gold),
		)
		return CannotAfford
	}

	s.Player.Gold -= item.Cost
	k.applyItem(s.Player, item)
	s.ShopItems = append(s.ShopItems[:index], s.ShopItems[index+1:]...)

	k.logger.Info("item purchased",
		zap.String("item", item.Name),
		zap.Int("cost", item.Cost),
		zap.Int("gold_remaining", s.Player.Gold),
	)
	return Purchased
}

// mysteryOutcomes is the shop's own mystery-box table, distinct from
// the reward phase's random redirect.
var mysteryOutcomes = []entity.Effect{
	{Kind: entity.EffectHeal, Amount: 30},
	{Kind: entity.EffectDamage, Amount: 3},
	{Kind: entity.EffectArmor, Amount: 3},
	{Kind: entity.EffectGold, Amount: 50},
}

func (k *Keeper) applyItem(p *entity.Player, item entity.ShopItem) {
	if item.Effect.Kind == entity.EffectRandom {
		k.applier.Apply(p, item.Name, rng.Pick(k.src, mysteryOutcomes))
		return
	}
	k.applier.Apply(p, item.Name, item.Effect)
}
