package entity

import "fmt"

// EffectKind discriminates the Effect tagged union.
type EffectKind string

// All recognized effect kinds. Integer-valued kinds use Amount,
// float-valued kinds use Scalar, and grant kinds use Grant.
const (
	EffectDamage      EffectKind = "damage"
	EffectMaxHP       EffectKind = "max_hp"
	EffectSpeed       EffectKind = "speed"
	EffectArmor       EffectKind = "armor"
	EffectCritChance  EffectKind = "crit_chance"
	EffectHeal        EffectKind = "heal"
	EffectGold        EffectKind = "gold"
	EffectAbility     EffectKind = "ability"
	EffectRelic       EffectKind = "relic"
	EffectRemoveCurse EffectKind = "remove_curse"
	EffectKeys        EffectKind = "keys"
	EffectRandom      EffectKind = "random"
)

var knownEffectKinds = map[EffectKind]bool{
	EffectDamage:      true,
	EffectMaxHP:       true,
	EffectSpeed:       true,
	EffectArmor:       true,
	EffectCritChance:  true,
	EffectHeal:        true,
	EffectGold:        true,
	EffectAbility:     true,
	EffectRelic:       true,
	EffectRemoveCurse: true,
	EffectKeys:        true,
	EffectRandom:      true,
}

// Effect is a single applicable modification to the player. It is a
// closed tagged union: appliers dispatch on Kind and ignore the
// fields the kind does not use.
type Effect struct {
	Kind EffectKind `yaml:"kind"`
	// Amount carries integer magnitudes (damage, max_hp, armor,
	// heal, gold, keys).
	Amount int `yaml:"amount,omitempty"`
	// Scalar carries fractional magnitudes (speed, crit_chance).
	Scalar float64 `yaml:"scalar,omitempty"`
	// Grant carries the granted name for ability and relic kinds.
	Grant string `yaml:"grant,omitempty"`
}

// Known reports whether the effect's kind is recognized.
func (e Effect) Known() bool { return knownEffectKinds[e.Kind] }

// Validate checks that the effect is well-formed for content loading.
//
// Postcondition: Returns nil iff the kind is recognized and the field
// its kind requires is populated.
func (e Effect) Validate() error {
	if !e.Known() {
		return fmt.Errorf("effect: unknown kind %q", e.Kind)
	}
	switch e.Kind {
	case EffectSpeed, EffectCritChance:
		if e.Scalar == 0 {
			return fmt.Errorf("effect %q: scalar must be non-zero", e.Kind)
		}
	case EffectAbility, EffectRelic:
		if e.Grant == "" {
			return fmt.Errorf("effect %q: grant must not be empty", e.Kind)
		}
	case EffectDamage, EffectMaxHP, EffectArmor, EffectHeal, EffectGold, EffectKeys:
		if e.Amount == 0 {
			return fmt.Errorf("effect %q: amount must be non-zero", e.Kind)
		}
	}
	return nil
}

// Option is one selectable entry in an offer.
type Option struct {
	Name   string `yaml:"name"`
	Effect Effect `yaml:"effect"`
}

// Offer kinds as queued by the systems that generate them.
const (
	OfferCombatReward = "combat_reward"
	OfferTreasure     = "treasure"
)

// Offer is a pending choice: a short list of options, exactly one of
// which the player picks during the choose phase.
type Offer struct {
	Kind    string
	Options []Option
}

// Item is a pickup lying in a room.
type Item struct {
	Name   string `yaml:"name"`
	Effect Effect `yaml:"effect"`
}

// ShopItem is a purchasable catalog entry. Cost is in gold, already
// scaled by the price modifier once stocked.
type ShopItem struct {
	Name   string `yaml:"name"`
	Cost   int    `yaml:"cost"`
	Effect Effect `yaml:"effect"`
}

// Validate checks a catalog entry for content loading.
func (s ShopItem) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("shop item: name must not be empty")
	}
	if s.Cost < 0 {
		return fmt.Errorf("shop item %q: cost must be >= 0, got %d", s.Name, s.Cost)
	}
	if err := s.Effect.Validate(); err != nil {
		return fmt.Errorf("shop item %q: %w", s.Name, err)
	}
	return nil
}

// OpportunityType discriminates the risk/reward opportunity kinds.
type OpportunityType string

// The four opportunity types.
const (
	OpportunityElite  OpportunityType = "elite"
	OpportunityCurse  OpportunityType = "curse"
	OpportunityTimed  OpportunityType = "timed"
	OpportunityHealth OpportunityType = "health"
)

// Opportunity is one optional high-risk offer presented during the
// push-your-luck phase.
type Opportunity struct {
	Name        string
	Type        OpportunityType
	Description string
	Risk        string
	Reward      string
}
