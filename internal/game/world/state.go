// Package world holds the mutable run state shared by every phase
// system: the player, the current floor's rooms, fog of war, the
// pending-choice queue, economy state, and run statistics.
package world

import (
	"fmt"
	"math"

	"github.com/hollowdelve/hollowdelve/internal/config"
	"github.com/hollowdelve/hollowdelve/internal/game/dungeon"
	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
)

// Coord is a discrete fog-of-war tile coordinate.
type Coord struct {
	X int
	Y int
}

// Stats holds the run's cumulative counters. All fields are
// monotonically non-decreasing within a run.
type Stats struct {
	RunTime        float64
	EnemiesKilled  int
	RoomsExplored  int
	ItemsCollected int
	DamageDealt    int
	DamageTaken    int
}

// State is the single world aggregate. Exactly one phase system is
// active per frame and only that system mutates State; the combat
// enemy view aliases the current room's enemies by identity.
type State struct {
	Player *entity.Player

	// Rooms is the current floor's ordered room list, replaced
	// wholesale on floor advance.
	Rooms            []*entity.Room
	CurrentRoomIndex int
	Floor            int
	Biome            entity.Biome

	// Fog is the set of revealed tile coordinates. It persists
	// across floor advances and clears only on reset.
	Fog map[Coord]bool

	// Enemies is the combat view: the active room's enemies, shared
	// by identity with the room's own list during a fight.
	Enemies  []*entity.Enemy
	InCombat bool

	// PendingOffers is the FIFO queue of choices awaiting the choose
	// phase. SelectedOption is the committed pick awaiting power-up.
	PendingOffers  []entity.Offer
	SelectedOption *entity.Option

	ShopItems     []entity.ShopItem
	PriceModifier float64

	Paused bool
	Stats  Stats

	cfg config.GameplayConfig
	gen *dungeon.Generator
	src rng.Source
}

// NewState creates the run state and generates the first floor.
//
// Precondition: gen and src must be non-nil; cfg must be validated.
// Postcondition: Floor == 1, Biome is the first biome, the player
// stands at the start room's center, and the start room is discovered.
func NewState(cfg config.GameplayConfig, gen *dungeon.Generator, src rng.Source) (*State, error) {
	s := &State{
		cfg: cfg,
		gen: gen,
		src: src,
	}
	s.initRun()
	if err := s.GenerateFloor(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) initRun() {
	s.Player = entity.NewPlayer(entity.PlayerParams{
		BaseHP:     s.cfg.PlayerBaseHP,
		BaseDamage: s.cfg.PlayerBaseDamage,
		Speed:      s.cfg.PlayerSpeed,
		MaxStamina: s.cfg.StaminaMax,
		Gold:       s.cfg.StartingGold,
		Souls:      s.cfg.StartingSouls,
		Keys:       s.cfg.StartingKeys,
	})
	s.Rooms = nil
	s.CurrentRoomIndex = 0
	s.Floor = 1
	s.Biome = entity.BiomeProgression[0]
	s.Fog = make(map[Coord]bool)
	s.Enemies = nil
	s.InCombat = false
	s.PendingOffers = nil
	s.SelectedOption = nil
	s.ShopItems = nil
	s.PriceModifier = 1.0
	s.Paused = false
	s.Stats = Stats{}
}

// GenerateFloor replaces the room list with a freshly generated floor
// for the current floor number and biome, and places the player in
// the start room.
//
// Postcondition: CurrentRoomIndex == 0; the start room is discovered.
func (s *State) GenerateFloor() error {
	rooms, err := s.gen.Generate(s.Floor, s.Biome, s.src)
	if err != nil {
		return fmt.Errorf("generating floor %d: %w", s.Floor, err)
	}
	s.Rooms = rooms
	s.CurrentRoomIndex = 0

	start := rooms[0]
	cx, cy := start.Center()
	s.Player.X = cx
	s.Player.Y = cy
	start.Discovered = true
	return nil
}

// Reset restores every field to its initial-construction values and
// generates a new first floor, beginning a fresh run.
func (s *State) Reset() error {
	s.initRun()
	return s.GenerateFloor()
}

// CurrentRoom returns the room the player is homed in.
//
// Precondition: the floor has been generated.
func (s *State) CurrentRoom() *entity.Room {
	return s.Rooms[s.CurrentRoomIndex]
}

// RoomAt returns the index of the room containing the continuous
// position (x, y), or false if no room contains it.
func (s *State) RoomAt(x, y float64) (int, bool) {
	for i, r := range s.Rooms {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// EnemiesNearby reports whether the current room holds any enemies.
func (s *State) EnemiesNearby() bool {
	return len(s.CurrentRoom().Enemies) > 0
}

// HasPendingOffers reports whether a choice is waiting to be made.
func (s *State) HasPendingOffers() bool {
	return len(s.PendingOffers) > 0
}

// ShopAvailable reports whether the current room is an uncleared shop.
func (s *State) ShopAvailable() bool {
	room := s.CurrentRoom()
	return room.Type == entity.RoomShop && !room.Cleared
}

// QueueOffer appends an offer to the pending-choice FIFO.
func (s *State) QueueOffer(offer entity.Offer) {
	s.PendingOffers = append(s.PendingOffers, offer)
}

// PopOffer dequeues the oldest pending offer. Returns false when the
// queue is empty.
func (s *State) PopOffer() (entity.Offer, bool) {
	if len(s.PendingOffers) == 0 {
		return entity.Offer{}, false
	}
	offer := s.PendingOffers[0]
	s.PendingOffers = s.PendingOffers[1:]
	return offer, true
}

// RevealFog marks every tile within the configured vision range of
// the player as discovered (Euclidean radius).
func (s *State) RevealFog() {
	px := int(s.Player.X)
	py := int(s.Player.Y)
	r := s.cfg.VisionRange

	for x := px - r; x <= px+r; x++ {
		for y := py - r; y <= py+r; y++ {
			dx := float64(x - px)
			dy := float64(y - py)
			if math.Sqrt(dx*dx+dy*dy) <= float64(r) {
				s.Fog[Coord{X: x, Y: y}] = true
			}
		}
	}
}

// RunSummary is the end-of-run report computed on reset entry.
type RunSummary struct {
	FloorReached   int
	EnemiesKilled  int
	RoomsExplored  int
	ItemsCollected int
	DamageDealt    int
	DamageTaken    int
	Gold           int
	RelicsFound    int
	AbilitiesFound int
	SoulsEarned    int
	RunTime        float64
}

// Summary computes the run summary, including souls earned:
// floor x 10 plus one per kill, with +50 and +100 milestone bonuses
// at floors 5 and 10. Souls are a meta-progression readout only;
// nothing is persisted.
func (s *State) Summary() RunSummary {
	souls := s.Floor*10 + s.Stats.EnemiesKilled
	if s.Floor >= 5 {
		souls += 50
	}
	if s.Floor >= 10 {
		souls += 100
	}
	return RunSummary{
		FloorReached:   s.Floor,
		EnemiesKilled:  s.Stats.EnemiesKilled,
		RoomsExplored:  s.Stats.RoomsExplored,
		ItemsCollected: s.Stats.ItemsCollected,
		DamageDealt:    s.Stats.DamageDealt,
		DamageTaken:    s.Stats.DamageTaken,
		Gold:           s.Player.Gold,
		RelicsFound:    len(s.Player.Relics),
		AbilitiesFound: len(s.Player.Abilities),
		SoulsEarned:    souls,
		RunTime:        s.Stats.RunTime,
	}
}
