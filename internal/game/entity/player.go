package entity

// PlayerParams holds the construction-time base stats for a player,
// taken from gameplay configuration.
type PlayerParams struct {
	BaseHP     int
	BaseDamage int
	Speed      float64
	MaxStamina int
	Gold       int
	Souls      int
	Keys       int
}

// Player is the run's player character. Exactly one instance exists
// per run; it is fully replaced on reset.
//
// Invariant: 0 <= HP <= MaxHP and DodgeCooldown >= 0 after every
// mutation through the methods below.
type Player struct {
	X float64
	Y float64

	HP         int
	MaxHP      int
	Stamina    int
	MaxStamina int
	Damage     int
	Speed      float64

	// DodgeCooldown is the time in seconds until the next dodge may
	// start. DodgeLeft is the remaining i-frame window of an active
	// dodge; Dodging is true while that window is open.
	DodgeCooldown float64
	DodgeLeft     float64
	Dodging       bool

	Gold  int
	Souls int
	Keys  int

	CritChance  float64
	CritDamage  float64
	Armor       int
	DodgeChance float64

	Abilities []string
	Relics    []string
	Curses    []string
}

// NewPlayer creates a fresh player from base stats.
//
// Postcondition: HP == MaxHP == p.BaseHP; combat stats hold their
// starting values (10% crit for 1.5x, no armor, 10% dodge).
func NewPlayer(p PlayerParams) *Player {
	return &Player{
		HP:          p.BaseHP,
		MaxHP:       p.BaseHP,
		Stamina:     p.MaxStamina,
		MaxStamina:  p.MaxStamina,
		Damage:      p.BaseDamage,
		Speed:       p.Speed,
		Gold:        p.Gold,
		Souls:       p.Souls,
		Keys:        p.Keys,
		CritChance:  0.1,
		CritDamage:  1.5,
		DodgeChance: 0.1,
	}
}

// ApplyDamage reduces HP by amount, flooring at 0, and returns the
// damage actually taken.
//
// Precondition: amount >= 0.
// Postcondition: HP >= 0; return value == old HP - new HP.
func (p *Player) ApplyDamage(amount int) int {
	if amount > p.HP {
		amount = p.HP
	}
	p.HP -= amount
	return amount
}

// Heal raises HP by amount, capped at MaxHP, and returns the amount
// actually restored.
//
// Precondition: amount >= 0.
// Postcondition: HP <= MaxHP.
func (p *Player) Heal(amount int) int {
	if amount > p.MaxHP-p.HP {
		amount = p.MaxHP - p.HP
	}
	p.HP += amount
	return amount
}

// Alive reports whether the player has hit points remaining.
func (p *Player) Alive() bool { return p.HP > 0 }

// Clone returns a deep copy of the player, safe to hand to the render
// boundary.
func (p *Player) Clone() Player {
	c := *p
	c.Abilities = append([]string(nil), p.Abilities...)
	c.Relics = append([]string(nil), p.Relics...)
	c.Curses = append([]string(nil), p.Curses...)
	return c
}
