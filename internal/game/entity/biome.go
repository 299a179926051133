// Package entity provides the core game entities: the player, enemies,
// rooms, and the value types (effects, offers, opportunities) that flow
// between the phase systems.
package entity

// Biome is a themed floor-progression tier altering enemy pools.
type Biome string

// The five biomes, in progression order.
const (
	BiomeDungeon Biome = "dungeon"
	BiomeCaverns Biome = "caverns"
	BiomeFactory Biome = "factory"
	BiomeTemple  Biome = "temple"
	BiomeVoid    Biome = "void"
)

// BiomeProgression is the fixed order runs walk through, one step
// every third floor past the first.
var BiomeProgression = []Biome{
	BiomeDungeon,
	BiomeCaverns,
	BiomeFactory,
	BiomeTemple,
	BiomeVoid,
}

// Next returns the biome following b in the progression, clamped at
// the last biome. Unknown biomes return themselves.
func (b Biome) Next() Biome {
	for i, p := range BiomeProgression {
		if p == b {
			if i+1 < len(BiomeProgression) {
				return BiomeProgression[i+1]
			}
			return b
		}
	}
	return b
}

// String returns the biome name.
func (b Biome) String() string { return string(b) }
