// Package bestiary defines enemy archetypes, biome spawn pools, and
// floor-scaled enemy spawning. Archetypes ship as built-in defaults and
// may be overridden from YAML content files.
package bestiary

import (
	"fmt"
	"math"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
)

// Archetype is the base stat block for one enemy type, before any
// floor scaling or elite promotion.
type Archetype struct {
	ID     entity.ArchetypeID `yaml:"id"`
	HP     int                `yaml:"hp"`
	Damage int                `yaml:"damage"`
	Speed  float64            `yaml:"speed"`
}

// Validate checks that the archetype satisfies basic invariants.
//
// Postcondition: Returns nil iff ID is non-empty, HP >= 1,
// Damage >= 0, and Speed > 0.
func (a Archetype) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("archetype: id must not be empty")
	}
	if a.HP < 1 {
		return fmt.Errorf("archetype %q: hp must be >= 1, got %d", a.ID, a.HP)
	}
	if a.Damage < 0 {
		return fmt.Errorf("archetype %q: damage must be >= 0, got %d", a.ID, a.Damage)
	}
	if a.Speed <= 0 {
		return fmt.Errorf("archetype %q: speed must be > 0, got %v", a.ID, a.Speed)
	}
	return nil
}

// defaultArchetypes are the built-in stat blocks for the seven
// enumerated enemy types.
var defaultArchetypes = []Archetype{
	{ID: entity.ArchetypeGrunt, HP: 20, Damage: 5, Speed: 3.0},
	{ID: entity.ArchetypeRanger, HP: 15, Damage: 8, Speed: 2.5},
	{ID: entity.ArchetypeTank, HP: 40, Damage: 3, Speed: 1.5},
	{ID: entity.ArchetypeSwarm, HP: 5, Damage: 2, Speed: 5.0},
	{ID: entity.ArchetypeLurker, HP: 25, Damage: 10, Speed: 4.0},
	{ID: entity.ArchetypeSpitter, HP: 18, Damage: 6, Speed: 2.0},
	{ID: entity.ArchetypeBrute, HP: 50, Damage: 12, Speed: 1.0},
}

// Bestiary holds the archetype table and answers biome spawn pools.
type Bestiary struct {
	archetypes map[entity.ArchetypeID]Archetype
}

// Default returns a bestiary populated with the built-in archetypes.
func Default() *Bestiary {
	b := &Bestiary{archetypes: make(map[entity.ArchetypeID]Archetype, len(defaultArchetypes))}
	for _, a := range defaultArchetypes {
		b.archetypes[a.ID] = a
	}
	return b
}

// Archetype looks up the stat block for id.
func (b *Bestiary) Archetype(id entity.ArchetypeID) (Archetype, bool) {
	a, ok := b.archetypes[id]
	return a, ok
}

// PoolFor returns the archetype IDs eligible to spawn in biome.
// Only the dungeon and caverns carry dedicated pools; every other
// biome falls back to the generic four-type pool.
//
// Postcondition: the returned pool is non-empty.
func (b *Bestiary) PoolFor(biome entity.Biome) []entity.ArchetypeID {
	switch biome {
	case entity.BiomeDungeon:
		return []entity.ArchetypeID{entity.ArchetypeGrunt, entity.ArchetypeRanger, entity.ArchetypeTank}
	case entity.BiomeCaverns:
		return []entity.ArchetypeID{entity.ArchetypeLurker, entity.ArchetypeSpitter, entity.ArchetypeBrute}
	default:
		return []entity.ArchetypeID{entity.ArchetypeGrunt, entity.ArchetypeRanger, entity.ArchetypeTank, entity.ArchetypeSwarm}
	}
}

// ScaleParams carries the per-floor geometric growth factors.
type ScaleParams struct {
	HPScale     float64
	DamageScale float64
}

// Spawn creates a live enemy of archetype id scaled for floor.
// Stats grow geometrically per floor, then the enemy rolls an elite
// promotion with probability 0.1 x floor. The probability is an
// uncapped Bernoulli trial: at floor 10 and beyond promotion is
// certain.
//
// Precondition: floor >= 1.
// Postcondition: the enemy's HP equals its MaxHP.
func (b *Bestiary) Spawn(id entity.ArchetypeID, floor int, scale ScaleParams, src rng.Source) (*entity.Enemy, error) {
	arch, ok := b.archetypes[id]
	if !ok {
		return nil, fmt.Errorf("bestiary: unknown archetype %q", id)
	}

	hpScale := math.Pow(scale.HPScale, float64(floor-1))
	damageScale := math.Pow(scale.DamageScale, float64(floor-1))

	hp := int(float64(arch.HP) * hpScale)
	damage := int(float64(arch.Damage) * damageScale)

	e := entity.NewEnemy(id, hp, damage, arch.Speed)
	if rng.Chance(src, 0.1*float64(floor)) {
		e.PromoteElite()
	}
	return e, nil
}
