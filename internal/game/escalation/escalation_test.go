package escalation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/hollowdelve/hollowdelve/internal/config"
	"github.com/hollowdelve/hollowdelve/internal/game/bestiary"
	"github.com/hollowdelve/hollowdelve/internal/game/dungeon"
	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

func newTestState(t require.TestingT, seed int64) *world.State {
	cfg := config.Default().Gameplay
	gen, err := dungeon.NewGenerator(dungeon.Params{
		MinRoomSize:          cfg.MinRoomSize,
		MaxRoomSize:          cfg.MaxRoomSize,
		RoomsPerFloor:        cfg.RoomsPerFloor,
		EnemyDensityIncrease: cfg.EnemyDensityIncrease,
		HPScalePerFloor:      cfg.HPScalePerFloor,
		DamageScalePerFloor:  cfg.DamageScalePerFloor,
	}, bestiary.Default())
	require.NoError(t, err)

	s, err := world.NewState(cfg, gen, rng.NewSeededSource(seed))
	require.NoError(t, err)
	return s
}

func clearAll(s *world.State) {
	for _, room := range s.Rooms {
		if room.Type != entity.RoomShop {
			room.Cleared = true
		}
	}
}

func TestAdvance_ClearedFloorProgresses(t *testing.T) {
	s := newTestState(t, 1)
	clearAll(s)

	c := NewController(rng.NewSeededSource(1), zap.NewNop())
	advanced, err := c.Advance(s)
	require.NoError(t, err)
	assert.True(t, advanced)

	assert.Equal(t, 2, s.Floor)
	assert.Equal(t, entity.BiomeDungeon, s.Biome, "biome holds until floor 4")
	assert.InDelta(t, 1.15, s.PriceModifier, 1e-9)

	// A fresh floor: player re-homed to the new start room.
	assert.Equal(t, 0, s.CurrentRoomIndex)
	assert.Equal(t, entity.RoomStart, s.CurrentRoom().Type)
	assert.True(t, s.CurrentRoom().Discovered)
	for _, room := range s.Rooms[1:] {
		assert.False(t, room.Cleared, "new floor starts uncleared")
	}
}

// The biome shifts on floors 4, 7, 10, ... (every third past the first).
func TestAdvance_BiomeShiftSchedule(t *testing.T) {
	s := newTestState(t, 2)
	c := NewController(rng.NewSeededSource(2), zap.NewNop())

	wantBiome := map[int]entity.Biome{
		2: entity.BiomeDungeon,
		3: entity.BiomeDungeon,
		4: entity.BiomeCaverns,
		5: entity.BiomeCaverns,
		6: entity.BiomeCaverns,
		7: entity.BiomeFactory,
	}

	for floor := 2; floor <= 7; floor++ {
		clearAll(s)
		advanced, err := c.Advance(s)
		require.NoError(t, err)
		require.True(t, advanced)
		assert.Equal(t, floor, s.Floor)
		assert.Equal(t, wantBiome[floor], s.Biome, "floor %d", floor)
	}
}

func TestAdvance_PriceModifierFormula(t *testing.T) {
	s := newTestState(t, 3)
	c := NewController(rng.NewSeededSource(3), zap.NewNop())

	for floor := 2; floor <= 10; floor++ {
		clearAll(s)
		_, err := c.Advance(s)
		require.NoError(t, err)
		assert.InDelta(t, 1.0+float64(floor-1)*0.15, s.PriceModifier, 1e-9)
	}
}

func TestAdvance_UnclearedFloorStays(t *testing.T) {
	s := newTestState(t, 4)

	c := NewController(rng.NewSeededSource(4), zap.NewNop())
	advanced, err := c.Advance(s)
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, 1, s.Floor)
	assert.Equal(t, 1.0, s.PriceModifier)
}

func TestAdvance_ShopRoomsDoNotGateProgression(t *testing.T) {
	s := newTestState(t, 5)
	clearAll(s)
	s.Rooms = append(s.Rooms, &entity.Room{Type: entity.RoomShop})

	c := NewController(rng.NewSeededSource(5), zap.NewNop())
	advanced, err := c.Advance(s)
	require.NoError(t, err)
	assert.True(t, advanced, "an uncleared shop must not block the floor")
}

// alwaysSource forces every chance roll to hit and every pick to land
// on a fixed element.
type alwaysSource struct{ pick int }

func (s *alwaysSource) Intn(n int) int   { return s.pick % n }
func (s *alwaysSource) Float64() float64 { return 0 }

func TestMinorEscalation_AppliesModifiers(t *testing.T) {
	s := newTestState(t, 6)

	c := NewController(&alwaysSource{pick: 0}, zap.NewNop()) // always Fast
	var enemy *entity.Enemy
	for _, room := range s.Rooms {
		if len(room.Enemies) > 0 {
			enemy = room.Enemies[0]
			break
		}
	}
	require.NotNil(t, enemy)
	baseSpeed := enemy.Speed

	advanced, err := c.Advance(s)
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.True(t, enemy.HasModifier(entity.ModifierFast))
	assert.InDelta(t, baseSpeed*1.3, enemy.Speed, 1e-9)

	// A second pass rolls Fast again and must not stack it.
	_, err = c.Advance(s)
	require.NoError(t, err)
	assert.InDelta(t, baseSpeed*1.3, enemy.Speed, 1e-9, "modifier stacked on repeat pass")
}

func TestMinorEscalation_ToughScalesHP(t *testing.T) {
	s := newTestState(t, 7)

	c := NewController(&alwaysSource{pick: 1}, zap.NewNop()) // always Tough
	var enemy *entity.Enemy
	for _, room := range s.Rooms {
		if len(room.Enemies) > 0 {
			enemy = room.Enemies[0]
			break
		}
	}
	require.NotNil(t, enemy)
	baseHP := enemy.HP

	_, err := c.Advance(s)
	require.NoError(t, err)
	assert.True(t, enemy.HasModifier(entity.ModifierTough))
	assert.Equal(t, int(float64(baseHP)*1.2), enemy.HP)
	assert.Equal(t, enemy.HP, enemy.MaxHP)
}

// Repeated minor passes never produce duplicate modifier tags and
// never touch the floor counter.
func TestPropertyMinorEscalationInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		s := newTestState(t, seed)
		c := NewController(rng.NewSeededSource(seed), zap.NewNop())

		passes := rapid.IntRange(1, 10).Draw(t, "passes")
		for i := 0; i < passes; i++ {
			advanced, err := c.Advance(s)
			require.NoError(t, err)
			require.False(t, advanced, "start room is never cleared here")
		}

		require.Equal(t, 1, s.Floor)
		for _, room := range s.Rooms {
			for _, e := range room.Enemies {
				seen := make(map[string]bool)
				for _, m := range e.Modifiers {
					require.False(t, seen[m], "duplicate modifier %q", m)
					seen[m] = true
				}
			}
		}
	})
}
