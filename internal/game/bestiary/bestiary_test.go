package bestiary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
)

// fixedSource returns queued floats for Chance rolls and a fixed int
// for everything else, letting tests pin the outcome of Bernoulli
// trials.
type fixedSource struct {
	floats []float64
	fi     int
}

func (f *fixedSource) Intn(n int) int { return 0 }

func (f *fixedSource) Float64() float64 {
	if f.fi >= len(f.floats) {
		return 0.99
	}
	v := f.floats[f.fi]
	f.fi++
	return v
}

var defaultScale = ScaleParams{HPScale: 1.15, DamageScale: 1.10}

func TestDefault_HasAllSevenArchetypes(t *testing.T) {
	b := Default()
	for _, id := range []entity.ArchetypeID{
		entity.ArchetypeGrunt, entity.ArchetypeRanger, entity.ArchetypeTank,
		entity.ArchetypeSwarm, entity.ArchetypeLurker, entity.ArchetypeSpitter,
		entity.ArchetypeBrute,
	} {
		a, ok := b.Archetype(id)
		require.True(t, ok, "missing archetype %q", id)
		assert.NoError(t, a.Validate())
	}
}

func TestPoolFor_BiomePools(t *testing.T) {
	b := Default()

	assert.Equal(t,
		[]entity.ArchetypeID{entity.ArchetypeGrunt, entity.ArchetypeRanger, entity.ArchetypeTank},
		b.PoolFor(entity.BiomeDungeon))
	assert.Equal(t,
		[]entity.ArchetypeID{entity.ArchetypeLurker, entity.ArchetypeSpitter, entity.ArchetypeBrute},
		b.PoolFor(entity.BiomeCaverns))

	// Factory, temple, and void share the generic fallback pool.
	generic := []entity.ArchetypeID{entity.ArchetypeGrunt, entity.ArchetypeRanger, entity.ArchetypeTank, entity.ArchetypeSwarm}
	assert.Equal(t, generic, b.PoolFor(entity.BiomeFactory))
	assert.Equal(t, generic, b.PoolFor(entity.BiomeTemple))
	assert.Equal(t, generic, b.PoolFor(entity.BiomeVoid))
}

func TestPropertyPoolsNonEmptyForAllBiomes(t *testing.T) {
	b := Default()
	rapid.Check(t, func(t *rapid.T) {
		idx := rapid.IntRange(0, len(entity.BiomeProgression)-1).Draw(t, "biome_idx")
		pool := b.PoolFor(entity.BiomeProgression[idx])
		require.NotEmpty(t, pool)
		for _, id := range pool {
			_, ok := b.Archetype(id)
			assert.True(t, ok, "pool references unknown archetype %q", id)
		}
	})
}

func TestSpawn_Floor1UsesBaseStats(t *testing.T) {
	b := Default()
	src := &fixedSource{floats: []float64{0.99}} // no elite
	e, err := b.Spawn(entity.ArchetypeGrunt, 1, defaultScale, src)
	require.NoError(t, err)
	assert.Equal(t, 20, e.HP)
	assert.Equal(t, 20, e.MaxHP)
	assert.Equal(t, 5, e.Damage)
	assert.Equal(t, 3.0, e.Speed)
	assert.False(t, e.Elite)
}

func TestSpawn_GeometricScaling(t *testing.T) {
	b := Default()
	src := &fixedSource{floats: []float64{0.99, 0.99}}

	// Floor 3: hp = int(20 * 1.15^2) = 26, damage = int(5 * 1.10^2) = 6.
	e, err := b.Spawn(entity.ArchetypeGrunt, 3, defaultScale, src)
	require.NoError(t, err)
	assert.Equal(t, 26, e.HP)
	assert.Equal(t, 6, e.Damage)
}

func TestSpawn_ElitePromotion(t *testing.T) {
	b := Default()

	// Floor 1 with a 0.05 roll: under the 0.1 threshold, elite.
	e, err := b.Spawn(entity.ArchetypeGrunt, 1, defaultScale, &fixedSource{floats: []float64{0.05}})
	require.NoError(t, err)
	assert.True(t, e.Elite)
	assert.Equal(t, 40, e.HP)
	assert.Equal(t, 7, e.Damage)
	assert.True(t, e.HasModifier(entity.ModifierElite))
}

// At floor 10 the promotion probability reaches 1.0 and must behave as
// a certain Bernoulli trial, not an error.
func TestSpawn_EliteCertainAtFloor10(t *testing.T) {
	b := Default()
	src := rng.NewSeededSource(1)
	for i := 0; i < 25; i++ {
		e, err := b.Spawn(entity.ArchetypeSwarm, 10, defaultScale, src)
		require.NoError(t, err)
		assert.True(t, e.Elite, "spawn %d at floor 10 must be elite", i)
	}
}

func TestSpawn_UnknownArchetype(t *testing.T) {
	b := Default()
	_, err := b.Spawn("ghost", 1, defaultScale, rng.NewSeededSource(1))
	assert.Error(t, err)
}

func TestArchetype_Validate(t *testing.T) {
	assert.NoError(t, Archetype{ID: "grunt", HP: 20, Damage: 5, Speed: 3}.Validate())
	assert.Error(t, Archetype{HP: 20, Damage: 5, Speed: 3}.Validate())
	assert.Error(t, Archetype{ID: "x", HP: 0, Damage: 5, Speed: 3}.Validate())
	assert.Error(t, Archetype{ID: "x", HP: 20, Damage: -1, Speed: 3}.Validate())
	assert.Error(t, Archetype{ID: "x", HP: 20, Damage: 5, Speed: 0}.Validate())
}

func TestLoadDir_OverridesBuiltins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grunt.yaml"),
		[]byte("id: grunt\nhp: 99\ndamage: 9\nspeed: 2.0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wisp.yaml"),
		[]byte("id: wisp\nhp: 8\ndamage: 4\nspeed: 6.0\n"), 0o644))
	// Non-YAML files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o644))

	b, err := LoadDir(dir)
	require.NoError(t, err)

	grunt, ok := b.Archetype(entity.ArchetypeGrunt)
	require.True(t, ok)
	assert.Equal(t, 99, grunt.HP)

	wisp, ok := b.Archetype("wisp")
	require.True(t, ok)
	assert.Equal(t, 8, wisp.HP)

	// Untouched built-ins survive the overlay.
	tank, ok := b.Archetype(entity.ArchetypeTank)
	require.True(t, ok)
	assert.Equal(t, 40, tank.HP)
}

func TestLoadDir_RejectsInvalidArchetype(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"),
		[]byte("id: bad\nhp: 0\ndamage: 1\nspeed: 1.0\n"), 0o644))

	_, err := LoadDir(dir)
	assert.ErrorContains(t, err, "hp must be >= 1")
}
