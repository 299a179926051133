package world

import "github.com/hollowdelve/hollowdelve/internal/game/entity"

// RoomView is a read-only room summary for the render boundary.
type RoomView struct {
	Index       int
	Type        entity.RoomType
	X           int
	Y           int
	Width       int
	Height      int
	Discovered  bool
	Cleared     bool
	Connections []int
	EnemyCount  int
	ItemCount   int
}

// Snapshot is a deep, read-only copy of the render-relevant state.
// Renderers and scripted drivers consume snapshots; they never touch
// live state.
type Snapshot struct {
	Player        entity.Player
	Floor         int
	Biome         entity.Biome
	RoomIndex     int
	Rooms         []RoomView
	Enemies       []entity.Enemy
	ShopItems     []entity.ShopItem
	PendingOffers int
	PriceModifier float64
	Paused        bool
	InCombat      bool
	Stats         Stats
}

// Snapshot builds a point-in-time copy of the state. Enemy copies
// carry the transient telegraph and cooldown timers so the renderer
// can draw attack wind-ups.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Player:        s.Player.Clone(),
		Floor:         s.Floor,
		Biome:         s.Biome,
		RoomIndex:     s.CurrentRoomIndex,
		ShopItems:     append([]entity.ShopItem(nil), s.ShopItems...),
		PendingOffers: len(s.PendingOffers),
		PriceModifier: s.PriceModifier,
		Paused:        s.Paused,
		InCombat:      s.InCombat,
		Stats:         s.Stats,
	}

	snap.Rooms = make([]RoomView, len(s.Rooms))
	for i, r := range s.Rooms {
		snap.Rooms[i] = RoomView{
			Index:       i,
			Type:        r.Type,
			X:           r.X,
			Y:           r.Y,
			Width:       r.Width,
			Height:      r.Height,
			Discovered:  r.Discovered,
			Cleared:     r.Cleared,
			Connections: append([]int(nil), r.Connections...),
			EnemyCount:  len(r.Enemies),
			ItemCount:   len(r.Items),
		}
	}

	snap.Enemies = make([]entity.Enemy, len(s.CurrentRoom().Enemies))
	for i, e := range s.CurrentRoom().Enemies {
		snap.Enemies[i] = e.Clone()
	}
	return snap
}
