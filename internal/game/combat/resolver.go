// Package combat implements per-frame combat resolution: player
// movement, dodging, and attacks; enemy pursuit, telegraphed strikes,
// and death handling; victory and defeat detection with reward
// issuance.
package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/reward"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// seekDistance is the range inside which an enemy stops pursuing and
// starts attacking.
const seekDistance = 1.5

// blockRadius is the half-extent of the box around an enemy that
// blocks player movement.
const blockRadius = 0.5

// Params holds the combat tunables.
type Params struct {
	AttackRange           float64
	TelegraphSeconds      float64
	AttackCooldownSeconds float64
	DodgeCooldown         float64
	DodgeDuration         float64
}

// Resolver runs one combat encounter per Begin call. It mutates the
// shared world state each Update until the encounter resolves.
type Resolver struct {
	params Params
	src    rng.Source
	logger *zap.Logger

	done    bool
	victory bool
}

// NewResolver creates a combat resolver.
//
// Precondition: src and logger must be non-nil.
func NewResolver(params Params, src rng.Source, logger *zap.Logger) *Resolver {
	return &Resolver{params: params, src: src, logger: logger}
}

// Begin starts an encounter against the current room's enemies. The
// combat view shares the room's enemy instances by identity, so
// damage applied through the view lands on the room's enemies.
//
// Postcondition: every enemy's attack cooldown is staggered uniformly
// in [1.0, 2.0) seconds and its telegraph is clear.
func (r *Resolver) Begin(s *world.State) {
	r.done = false
	r.victory = false

	room := s.CurrentRoom()
	s.Enemies = append([]*entity.Enemy(nil), room.Enemies...)
	s.InCombat = true

	for _, e := range s.Enemies {
		e.AttackCooldown = 1.0 + r.src.Float64()
		e.TelegraphLeft = 0
	}

	r.logger.Info("combat started",
		zap.Int("enemies", len(s.Enemies)),
		zap.Int("floor", s.Floor),
	)
}

// Done reports whether the encounter has resolved.
func (r *Resolver) Done() bool { return r.done }

// PlayerWon reports whether the resolved encounter was a victory.
//
// Precondition: Done() is true.
func (r *Resolver) PlayerWon() bool { return r.victory }

// Update advances the encounter by dt seconds, consuming the frame's
// player intents. No-op once the encounter has resolved.
func (r *Resolver) Update(s *world.State, dt float64, in intent.Frame) {
	if r.done {
		return
	}

	r.updateDodge(s.Player, dt, in.Dodge)
	r.movePlayer(s, dt, in)

	if in.Attack {
		r.playerAttack(s)
	}

	r.updateEnemies(s, dt)
	if r.done {
		// Player died mid-frame; defeat already recorded.
		return
	}

	r.checkVictory(s)
}

// updateDodge decays the dodge cooldown and the active i-frame
// window, and starts a new dodge on request once off cooldown.
func (r *Resolver) updateDodge(p *entity.Player, dt float64, dodge bool) {
	if p.DodgeCooldown > 0 {
		p.DodgeCooldown -= dt
		if p.DodgeCooldown < 0 {
			p.DodgeCooldown = 0
		}
	}
	if p.Dodging {
		p.DodgeLeft -= dt
		if p.DodgeLeft <= 0 {
			p.DodgeLeft = 0
			p.Dodging = false
		}
	}
	if dodge && p.DodgeCooldown <= 0 {
		p.Dodging = true
		p.DodgeLeft = r.params.DodgeDuration
		p.DodgeCooldown = r.params.DodgeCooldown
		r.logger.Debug("player dodged")
	}
}

// movePlayer resolves the movement intent against the room bounds and
// enemy-occupancy collision.
func (r *Resolver) movePlayer(s *world.State, dt float64, in intent.Frame) {
	if !in.Moving() {
		return
	}
	dx, dy := normalize(in.MoveX, in.MoveY)
	step := s.Player.Speed * dt
	nx := s.Player.X + dx*step
	ny := s.Player.Y + dy*step

	room := s.CurrentRoom()
	if !room.Contains(nx, ny) {
		return
	}
	for _, e := range s.Enemies {
		if math.Abs(nx-e.X) < blockRadius && math.Abs(ny-e.Y) < blockRadius {
			return
		}
	}
	s.Player.X = nx
	s.Player.Y = ny
}

// playerAttack resolves one discrete attack: the nearest enemy within
// attack range takes damage, with a crit roll. Ties on distance go to
// the first enemy encountered in view order.
func (r *Resolver) playerAttack(s *world.State) {
	if len(s.Enemies) == 0 {
		return
	}

	var target *entity.Enemy
	minDist := math.Inf(1)
	for _, e := range s.Enemies {
		d := distance(e.X, e.Y, s.Player.X, s.Player.Y)
		if d < minDist && d < r.params.AttackRange {
			minDist = d
			target = e
		}
	}
	if target == nil {
		return
	}

	damage := s.Player.Damage
	crit := rng.Chance(r.src, s.Player.CritChance)
	if crit {
		damage = int(float64(damage) * s.Player.CritDamage)
	}

	target.HP -= damage
	s.Stats.DamageDealt += damage
	r.logger.Debug("player attack landed",
		zap.String("target", string(target.Type)),
		zap.Int("damage", damage),
		zap.Bool("crit", crit),
		zap.Int("target_hp", target.HP),
	)
}

// updateEnemies advances every enemy: dead enemies are removed in the
// same frame their HP reached zero, live ones pursue the player or
// work through their telegraph-and-strike cycle.
func (r *Resolver) updateEnemies(s *world.State, dt float64) {
	px, py := s.Player.X, s.Player.Y

	var dead []string
	for _, e := range s.Enemies {
		if !e.Alive() {
			dead = append(dead, e.ID)
			s.Stats.EnemiesKilled++
			r.logger.Info("enemy defeated",
				zap.String("type", string(e.Type)),
				zap.Bool("elite", e.Elite),
			)
			continue
		}

		if e.AttackCooldown > 0 {
			e.AttackCooldown -= dt
		}

		dist := distance(e.X, e.Y, px, py)
		switch {
		case dist > seekDistance:
			dx, dy := normalize(px-e.X, py-e.Y)
			e.X += dx * e.Speed * dt
			e.Y += dy * e.Speed * dt
		case e.AttackCooldown <= 0:
			if e.TelegraphLeft == 0 {
				e.TelegraphLeft = r.params.TelegraphSeconds
				r.logger.Debug("enemy telegraphing",
					zap.String("type", string(e.Type)),
				)
			}
			e.TelegraphLeft -= dt
			if e.TelegraphLeft <= 0 {
				r.enemyStrike(s, e)
				e.AttackCooldown = r.params.AttackCooldownSeconds
				e.TelegraphLeft = 0
				if r.done {
					return
				}
			}
		}
	}

	// Removal is keyed by identity so the room's owned list and the
	// combat view stay consistent within this frame.
	for _, id := range dead {
		r.removeEnemy(s, id)
	}
}

// enemyStrike lands a telegraphed attack: full negation while the
// player's i-frames are open, otherwise armor-reduced damage with a
// floor of 1. Player death resolves the encounter immediately.
func (r *Resolver) enemyStrike(s *world.State, e *entity.Enemy) {
	if s.Player.Dodging {
		r.logger.Debug("attack dodged",
			zap.String("type", string(e.Type)),
		)
		return
	}

	damage := e.Damage - s.Player.Armor
	if damage < 1 {
		damage = 1
	}
	s.Player.ApplyDamage(damage)
	s.Stats.DamageTaken += damage
	r.logger.Debug("enemy attack landed",
		zap.String("type", string(e.Type)),
		zap.Int("damage", damage),
		zap.Int("player_hp", s.Player.HP),
	)

	if !s.Player.Alive() {
		r.done = true
		r.victory = false
		s.InCombat = false
		r.logger.Info("player defeated",
			zap.Int("floor", s.Floor),
		)
	}
}

func (r *Resolver) removeEnemy(s *world.State, id string) {
	for i, e := range s.Enemies {
		if e.ID == id {
			s.Enemies = append(s.Enemies[:i], s.Enemies[i+1:]...)
			break
		}
	}
	s.CurrentRoom().RemoveEnemy(id)
}

// checkVictory resolves the encounter the instant the enemy view is
// empty: the room is cleared, a floor-scaled gold reward is granted,
// and the 3-option combat reward offer is queued.
func (r *Resolver) checkVictory(s *world.State) {
	if len(s.Enemies) > 0 {
		return
	}

	r.done = true
	r.victory = true
	s.InCombat = false

	room := s.CurrentRoom()
	room.Cleared = true

	gold := rng.IntBetween(r.src, 20, 50) * s.Floor
	s.Player.Gold += gold
	s.QueueOffer(reward.CombatOffer())

	r.logger.Info("combat victory",
		zap.Int("gold_reward", gold),
		zap.Int("floor", s.Floor),
	)
}

func distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// normalize returns the unit vector of (x, y), or zeros for a zero
// vector.
func normalize(x, y float64) (float64, float64) {
	length := math.Sqrt(x*x + y*y)
	if length == 0 {
		return 0, 0
	}
	return x / length, y / length
}
