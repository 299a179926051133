package phase

import (
	"math"

	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/reward"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// ExploreSystem moves the player across the floor, reveals fog,
// detects room entry, and hands off to the phase its findings demand:
// a fight, a pending choice, or the shop.
type ExploreSystem struct {
	applier *reward.Applier
	logger  *zap.Logger

	done bool
	next Phase
}

// NewExploreSystem creates the exploration system.
//
// Precondition: applier and logger must be non-nil.
func NewExploreSystem(applier *reward.Applier, logger *zap.Logger) *ExploreSystem {
	return &ExploreSystem{applier: applier, logger: logger}
}

// Next returns the phase exploration handed off to.
//
// Precondition: Done() is true.
func (e *ExploreSystem) Next() Phase { return e.next }

// Enter re-arms the system and reveals fog at the player's position.
// A choice already waiting (queued by a previous phase) hands off
// immediately.
func (e *ExploreSystem) Enter(s *world.State) {
	e.done = false
	e.next = PhaseExplore
	s.RevealFog()

	if s.HasPendingOffers() {
		e.finish(PhaseChoose)
	}
}

// Done reports whether exploration has handed off.
func (e *ExploreSystem) Done() bool { return e.done }

// Update advances one exploration frame: movement within the current
// room, fog reveal, room-entry resolution, and interaction with shops
// and floor items.
func (e *ExploreSystem) Update(s *world.State, dt float64, in intent.Frame) {
	if e.done {
		return
	}

	if in.Moving() {
		e.movePlayer(s, dt, in)
	}

	e.resolveRoomEntry(s)
	if e.done {
		return
	}

	if in.Interact {
		e.interact(s)
	}
}

// movePlayer resolves the movement intent against the current room's
// bounds and enemy-occupancy collision; there is no geometry between
// rooms.
func (e *ExploreSystem) movePlayer(s *world.State, dt float64, in intent.Frame) {
	dx, dy := normalize(in.MoveX, in.MoveY)
	step := s.Player.Speed * dt
	nx := s.Player.X + dx*step
	ny := s.Player.Y + dy*step

	room := s.CurrentRoom()
	if !room.Contains(nx, ny) {
		return
	}
	for _, en := range room.Enemies {
		if math.Abs(nx-en.X) < 0.5 && math.Abs(ny-en.Y) < 0.5 {
			return
		}
	}
	s.Player.X = nx
	s.Player.Y = ny
	s.RevealFog()
}

// resolveRoomEntry homes the player into whatever room now contains
// them, marking first discoveries and reacting to the room's contents.
func (e *ExploreSystem) resolveRoomEntry(s *world.State) {
	idx, ok := s.RoomAt(s.Player.X, s.Player.Y)
	if !ok {
		return
	}
	room := s.Rooms[idx]
	s.CurrentRoomIndex = idx

	first := !room.Discovered
	if first {
		room.Discovered = true
		s.Stats.RoomsExplored++
		e.logger.Info("room discovered",
			zap.Int("room", idx),
			zap.String("type", string(room.Type)),
		)
	}

	// The treasure offer fires once, on first discovery. Guardians, if
	// any, still have to be fought first; an empty treasure room is
	// cleared outright.
	if room.Type == entity.RoomTreasure && first {
		if len(room.Enemies) == 0 {
			room.Cleared = true
		}
		s.QueueOffer(reward.TreasureOffer())
	}

	if len(room.Enemies) > 0 {
		e.finish(PhaseFight)
		return
	}
	if s.HasPendingOffers() {
		e.finish(PhaseChoose)
	}
}

// interact handles the interact intent: entering the shop, or picking
// up the nearest floor item.
func (e *ExploreSystem) interact(s *world.State) {
	if s.ShopAvailable() {
		e.finish(PhaseCashOut)
		return
	}

	room := s.CurrentRoom()
	if len(room.Items) == 0 {
		return
	}
	item := room.Items[0]
	room.Items = room.Items[1:]
	s.Stats.ItemsCollected++
	e.applier.Apply(s.Player, item.Name, item.Effect)
	e.logger.Info("item picked up",
		zap.String("item", item.Name),
	)
}

func (e *ExploreSystem) finish(next Phase) {
	e.done = true
	e.next = next
}

// normalize returns the unit vector of (x, y), or zeros for a zero
// vector. Kept local so exploration has no dependency on the combat
// resolver.
func normalize(x, y float64) (float64, float64) {
	length := math.Sqrt(x*x + y*y)
	if length == 0 {
		return 0, 0
	}
	return x / length, y / length
}
