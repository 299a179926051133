package entity

// RoomType tags the role a room plays on its floor.
type RoomType string

// The room types assigned at generation time.
const (
	RoomStart    RoomType = "start"
	RoomStandard RoomType = "standard"
	RoomTreasure RoomType = "treasure"
	RoomShop     RoomType = "shop"
	RoomBoss     RoomType = "boss"
)

// Room is one room of the current floor. Rooms exclusively own their
// enemies; the combat view aliases the same instances by identity.
//
// Invariant: Connections holds indices into the floor's room list,
// without duplicates and never the room's own index.
type Room struct {
	X      int
	Y      int
	Width  int
	Height int

	Type       RoomType
	Discovered bool
	Cleared    bool

	Connections []int
	Enemies     []*Enemy
	Items       []Item
}

// Contains reports whether the continuous position (x, y) lies inside
// the room's bounds.
func (r *Room) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X+r.Width) &&
		y >= float64(r.Y) && y < float64(r.Y+r.Height)
}

// Center returns the room's center in tile units.
func (r *Room) Center() (float64, float64) {
	return float64(r.X + r.Width/2), float64(r.Y + r.Height/2)
}

// Connect records an undirected edge to the room at index other.
// Duplicate edges are skipped.
func (r *Room) Connect(other int) {
	for _, c := range r.Connections {
		if c == other {
			return
		}
	}
	r.Connections = append(r.Connections, other)
}

// ConnectedTo reports whether the room has an edge to index other.
func (r *Room) ConnectedTo(other int) bool {
	for _, c := range r.Connections {
		if c == other {
			return true
		}
	}
	return false
}

// RemoveEnemy deletes the enemy with the given ID from the room,
// preserving the order of the remaining enemies. Returns true if an
// enemy was removed.
func (r *Room) RemoveEnemy(id string) bool {
	for i, e := range r.Enemies {
		if e.ID == id {
			r.Enemies = append(r.Enemies[:i], r.Enemies[i+1:]...)
			return true
		}
	}
	return false
}
