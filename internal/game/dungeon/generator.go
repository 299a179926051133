// Package dungeon generates floors: room placement on a fixed grid,
// type assignment, chain-plus-shortcut connectivity, and enemy
// population from the bestiary.
package dungeon

import (
	"fmt"

	"github.com/hollowdelve/hollowdelve/internal/game/bestiary"
	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
)

// gridCols is the number of columns in the room placement grid.
const gridCols = 5

// roomMargin is the spacing added to the maximum room size between
// grid cells, guaranteeing rooms never overlap.
const roomMargin = 2

// Params holds the generation tunables.
type Params struct {
	MinRoomSize          int
	MaxRoomSize          int
	RoomsPerFloor        int
	EnemyDensityIncrease float64
	HPScalePerFloor      float64
	DamageScalePerFloor  float64
}

// Generator builds floors from a bestiary and an injected random
// stream. The output is deterministic given the stream.
type Generator struct {
	params Params
	beasts *bestiary.Bestiary
}

// NewGenerator creates a floor generator.
//
// Precondition: beasts must be non-nil; params must satisfy
// MinRoomSize <= MaxRoomSize and RoomsPerFloor >= 2 (every floor
// needs a start and a boss room).
func NewGenerator(params Params, beasts *bestiary.Bestiary) (*Generator, error) {
	if beasts == nil {
		return nil, fmt.Errorf("dungeon: bestiary must not be nil")
	}
	if params.MinRoomSize > params.MaxRoomSize {
		return nil, fmt.Errorf("dungeon: min room size %d exceeds max %d", params.MinRoomSize, params.MaxRoomSize)
	}
	if params.RoomsPerFloor < 2 {
		return nil, fmt.Errorf("dungeon: rooms per floor must be >= 2, got %d", params.RoomsPerFloor)
	}
	return &Generator{params: params, beasts: beasts}, nil
}

// Generate builds the ordered room list for floor in biome.
//
// Postcondition: exactly one start room (index 0) and one boss room
// (last index); every room is reachable from the start via the base
// connection chain; start and shop rooms hold no enemies. The start
// room begins cleared so it never gates floor completion.
func (g *Generator) Generate(floor int, biome entity.Biome, src rng.Source) ([]*entity.Room, error) {
	rooms := make([]*entity.Room, 0, g.params.RoomsPerFloor)
	for i := 0; i < g.params.RoomsPerFloor; i++ {
		room, err := g.createRoom(i, floor, biome, src)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	rooms[0].Cleared = true
	g.connect(rooms, src)
	return rooms, nil
}

func (g *Generator) createRoom(index, floor int, biome entity.Biome, src rng.Source) (*entity.Room, error) {
	width := rng.IntBetween(src, g.params.MinRoomSize, g.params.MaxRoomSize)
	height := rng.IntBetween(src, g.params.MinRoomSize, g.params.MaxRoomSize)

	col := index % gridCols
	row := index / gridCols
	cell := g.params.MaxRoomSize + roomMargin

	room := &entity.Room{
		X:      col * cell,
		Y:      row * cell,
		Width:  width,
		Height: height,
		Type:   g.roomType(index, src),
	}

	if room.Type != entity.RoomStart && room.Type != entity.RoomShop {
		if err := g.populate(room, floor, biome, src); err != nil {
			return nil, err
		}
	}
	if room.Type == entity.RoomStandard && rng.Chance(src, 0.2) {
		room.Items = append(room.Items, rng.Pick(src, floorItems))
	}
	return room, nil
}

// floorItems are the pickups a standard room may hold.
var floorItems = []entity.Item{
	{Name: "Gold Pouch", Effect: entity.Effect{Kind: entity.EffectGold, Amount: 25}},
	{Name: "Bandage", Effect: entity.Effect{Kind: entity.EffectHeal, Amount: 20}},
	{Name: "Whetstone", Effect: entity.Effect{Kind: entity.EffectDamage, Amount: 1}},
}

// roomType assigns the room's role: first room is the start, last is
// the boss, and the rest roll 10% shop, then 20% treasure, falling
// back to standard.
func (g *Generator) roomType(index int, src rng.Source) entity.RoomType {
	switch {
	case index == 0:
		return entity.RoomStart
	case index == g.params.RoomsPerFloor-1:
		return entity.RoomBoss
	case rng.Chance(src, 0.1):
		return entity.RoomShop
	case rng.Chance(src, 0.2):
		return entity.RoomTreasure
	default:
		return entity.RoomStandard
	}
}

func (g *Generator) populate(room *entity.Room, floor int, biome entity.Biome, src rng.Source) error {
	base := 3
	if room.Type == entity.RoomStandard {
		base = 2
	}
	count := base + int(float64(floor)*g.params.EnemyDensityIncrease)

	pool := g.beasts.PoolFor(biome)
	scale := bestiary.ScaleParams{
		HPScale:     g.params.HPScalePerFloor,
		DamageScale: g.params.DamageScalePerFloor,
	}

	for i := 0; i < count; i++ {
		typ := rng.Pick(src, pool)
		enemy, err := g.beasts.Spawn(typ, floor, scale, src)
		if err != nil {
			return fmt.Errorf("populating room: %w", err)
		}
		enemy.X = float64(room.X + rng.IntBetween(src, 1, room.Width-1))
		enemy.Y = float64(room.Y + rng.IntBetween(src, 1, room.Height-1))
		room.Enemies = append(room.Enemies, enemy)
	}
	return nil
}

// connect wires the base chain room[i] <-> room[i+1], then attempts
// roomsPerFloor/3 extra shortcut edges. Attempts that pick the same
// room twice or an existing edge are skipped, not retried, so the
// shortcut count is at most the attempt count.
func (g *Generator) connect(rooms []*entity.Room, src rng.Source) {
	for i := 0; i < len(rooms)-1; i++ {
		rooms[i].Connect(i + 1)
		rooms[i+1].Connect(i)
	}

	for attempt := 0; attempt < g.params.RoomsPerFloor/3; attempt++ {
		a := src.Intn(len(rooms))
		b := src.Intn(len(rooms))
		if a == b || rooms[a].ConnectedTo(b) {
			continue
		}
		rooms[a].Connect(b)
		rooms[b].Connect(a)
	}
}
