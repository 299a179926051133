package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
)

func newTestPlayer() *entity.Player {
	return entity.NewPlayer(entity.PlayerParams{
		BaseHP: 100, BaseDamage: 10, Speed: 4.0,
		MaxStamina: 100, Gold: 50, Keys: 1,
	})
}

func TestCombatOffer_HasExactlyThreeOptions(t *testing.T) {
	offer := CombatOffer()
	assert.Equal(t, entity.OfferCombatReward, offer.Kind)
	require.Len(t, offer.Options, 3)
	assert.Equal(t, entity.EffectDamage, offer.Options[0].Effect.Kind)
	assert.Equal(t, 3, offer.Options[0].Effect.Amount)
	assert.Equal(t, entity.EffectMaxHP, offer.Options[1].Effect.Kind)
	assert.Equal(t, 20, offer.Options[1].Effect.Amount)
	assert.Equal(t, entity.EffectSpeed, offer.Options[2].Effect.Kind)
	assert.Equal(t, 0.5, offer.Options[2].Effect.Scalar)
}

func TestTreasureOffer_HasExactlyThreeOptions(t *testing.T) {
	offer := TreasureOffer()
	assert.Equal(t, entity.OfferTreasure, offer.Kind)
	require.Len(t, offer.Options, 3)
	for _, opt := range offer.Options {
		assert.NoError(t, opt.Effect.Validate())
	}
}

func TestApply_StatEffects(t *testing.T) {
	a := NewApplier(rng.NewSeededSource(1), zap.NewNop())

	cases := []struct {
		name   string
		effect entity.Effect
		check  func(*testing.T, *entity.Player)
	}{
		{"damage", entity.Effect{Kind: entity.EffectDamage, Amount: 3},
			func(t *testing.T, p *entity.Player) { assert.Equal(t, 13, p.Damage) }},
		{"armor", entity.Effect{Kind: entity.EffectArmor, Amount: 5},
			func(t *testing.T, p *entity.Player) { assert.Equal(t, 5, p.Armor) }},
		{"speed", entity.Effect{Kind: entity.EffectSpeed, Scalar: 0.5},
			func(t *testing.T, p *entity.Player) { assert.Equal(t, 4.5, p.Speed) }},
		{"crit", entity.Effect{Kind: entity.EffectCritChance, Scalar: 0.1},
			func(t *testing.T, p *entity.Player) { assert.InDelta(t, 0.2, p.CritChance, 1e-9) }},
		{"gold", entity.Effect{Kind: entity.EffectGold, Amount: 100},
			func(t *testing.T, p *entity.Player) { assert.Equal(t, 150, p.Gold) }},
		{"keys", entity.Effect{Kind: entity.EffectKeys, Amount: 2},
			func(t *testing.T, p *entity.Player) { assert.Equal(t, 3, p.Keys) }},
		{"ability", entity.Effect{Kind: entity.EffectAbility, Grant: "Whirlwind"},
			func(t *testing.T, p *entity.Player) { assert.Equal(t, []string{"Whirlwind"}, p.Abilities) }},
		{"relic", entity.Effect{Kind: entity.EffectRelic, Grant: "Phoenix Feather"},
			func(t *testing.T, p *entity.Player) { assert.Equal(t, []string{"Phoenix Feather"}, p.Relics) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPlayer()
			a.Apply(p, tc.name, tc.effect)
			tc.check(t, p)
		})
	}
}

// Max HP increases also heal by the same amount.
func TestApply_MaxHPAlsoHeals(t *testing.T) {
	a := NewApplier(rng.NewSeededSource(1), zap.NewNop())
	p := newTestPlayer()
	p.HP = 40

	a.Apply(p, "Health Up", entity.Effect{Kind: entity.EffectMaxHP, Amount: 20})
	assert.Equal(t, 120, p.MaxHP)
	assert.Equal(t, 60, p.HP)
}

func TestApply_HealCapsAtMaxHP(t *testing.T) {
	a := NewApplier(rng.NewSeededSource(1), zap.NewNop())
	p := newTestPlayer()
	p.HP = 80

	a.Apply(p, "Health Potion", entity.Effect{Kind: entity.EffectHeal, Amount: 50})
	assert.Equal(t, 100, p.HP)
}

func TestApply_RemoveCurse(t *testing.T) {
	a := NewApplier(rng.NewSeededSource(1), zap.NewNop())
	p := newTestPlayer()
	p.Curses = []string{"Reduced Healing", "Frailty"}

	a.Apply(p, "Remove Curse", entity.Effect{Kind: entity.EffectRemoveCurse})
	assert.Equal(t, []string{"Reduced Healing"}, p.Curses, "removes the most recent curse")

	a.Apply(p, "Remove Curse", entity.Effect{Kind: entity.EffectRemoveCurse})
	assert.Empty(t, p.Curses)

	// Removing with no curses is a quiet no-op.
	a.Apply(p, "Remove Curse", entity.Effect{Kind: entity.EffectRemoveCurse})
	assert.Empty(t, p.Curses)
}

func TestApply_RandomRedirectsToRealEffect(t *testing.T) {
	a := NewApplier(rng.NewSeededSource(5), zap.NewNop())
	for i := 0; i < 50; i++ {
		p := newTestPlayer()
		a.Apply(p, "Mystery Box", entity.Effect{Kind: entity.EffectRandom})

		changed := p.Damage != 10 || p.MaxHP != 100 || p.Speed != 4.0 || p.Gold != 50
		assert.True(t, changed, "random redirect %d applied nothing", i)
	}
}

func TestApply_UnknownKindWarnsAndChangesNothing(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	a := NewApplier(rng.NewSeededSource(1), zap.New(core))
	p := newTestPlayer()
	before := *p

	a.Apply(p, "Glitch", entity.Effect{Kind: "teleport", Amount: 5})

	assert.Equal(t, before.Damage, p.Damage)
	assert.Equal(t, before.HP, p.HP)
	assert.Equal(t, before.Gold, p.Gold)

	require.Equal(t, 1, logs.Len(), "expected exactly one warning")
	entry := logs.All()[0]
	assert.Equal(t, "unrecognized effect kind ignored", entry.Message)
}
