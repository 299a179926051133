package entity

import "github.com/google/uuid"

// ArchetypeID names one of the fixed enemy archetypes.
type ArchetypeID string

// The enumerated enemy archetypes.
const (
	ArchetypeGrunt   ArchetypeID = "grunt"
	ArchetypeRanger  ArchetypeID = "ranger"
	ArchetypeTank    ArchetypeID = "tank"
	ArchetypeSwarm   ArchetypeID = "swarm"
	ArchetypeLurker  ArchetypeID = "lurker"
	ArchetypeSpitter ArchetypeID = "spitter"
	ArchetypeBrute   ArchetypeID = "brute"
)

// Modifier tags an enemy can carry.
const (
	ModifierElite        = "Elite"
	ModifierFast         = "Fast"
	ModifierTough        = "Tough"
	ModifierRegenerating = "Regenerating"
)

// Enemy is a live hostile occupying a room. Combat timers live inline
// on the instance so that removal can never desynchronize a parallel
// timer collection.
//
// Invariant: HP is non-increasing during combat; the enemy is removed
// from its room in the same frame HP first reaches <= 0.
type Enemy struct {
	// ID uniquely identifies this instance; removal is keyed on it.
	ID string

	X float64
	Y float64

	HP     int
	MaxHP  int
	Damage int
	Speed  float64

	Type      ArchetypeID
	Elite     bool
	Modifiers []string

	// TelegraphLeft is the remaining wind-up before the current
	// attack lands; 0 means no attack is telegraphed.
	TelegraphLeft float64
	// AttackCooldown is the time until the enemy may begin another
	// telegraph.
	AttackCooldown float64
}

// NewEnemy creates an enemy of the given archetype with final (already
// scaled) stats.
//
// Postcondition: HP == MaxHP == hp; the instance has a unique ID.
func NewEnemy(typ ArchetypeID, hp, damage int, speed float64) *Enemy {
	return &Enemy{
		ID:     uuid.New().String(),
		HP:     hp,
		MaxHP:  hp,
		Damage: damage,
		Speed:  speed,
		Type:   typ,
	}
}

// Alive reports whether the enemy has hit points remaining.
func (e *Enemy) Alive() bool { return e.HP > 0 }

// HasModifier reports whether the enemy already carries tag.
func (e *Enemy) HasModifier(tag string) bool {
	for _, m := range e.Modifiers {
		if m == tag {
			return true
		}
	}
	return false
}

// AddModifier appends tag if not already present.
func (e *Enemy) AddModifier(tag string) {
	if !e.HasModifier(tag) {
		e.Modifiers = append(e.Modifiers, tag)
	}
}

// PromoteElite applies the elite stat boost: double HP, 1.5x damage,
// and the Elite tag. Promoting an already elite enemy is a no-op.
//
// Postcondition: Elite is true and the enemy carries ModifierElite.
func (e *Enemy) PromoteElite() {
	if e.Elite {
		return
	}
	e.Elite = true
	e.HP *= 2
	e.MaxHP *= 2
	e.Damage = int(float64(e.Damage) * 1.5)
	e.AddModifier(ModifierElite)
}

// Clone returns a deep copy of the enemy for the render boundary.
func (e *Enemy) Clone() Enemy {
	c := *e
	c.Modifiers = append([]string(nil), e.Modifiers...)
	return c
}
