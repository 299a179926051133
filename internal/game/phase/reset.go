package phase

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// ResetSystem reports the finished run and waits for a restart.
type ResetSystem struct {
	logger *zap.Logger
	done   bool
}

// NewResetSystem creates the reset system.
//
// Precondition: logger must be non-nil.
func NewResetSystem(logger *zap.Logger) *ResetSystem {
	return &ResetSystem{logger: logger}
}

// Enter logs the run summary, including souls earned.
func (r *ResetSystem) Enter(s *world.State) {
	r.done = false

	sum := s.Summary()
	r.logger.Info("run over",
		zap.Int("floor_reached", sum.FloorReached),
		zap.Int("enemies_killed", sum.EnemiesKilled),
		zap.Int("rooms_explored", sum.RoomsExplored),
		zap.Int("items_collected", sum.ItemsCollected),
		zap.Int("damage_dealt", sum.DamageDealt),
		zap.Int("damage_taken", sum.DamageTaken),
		zap.Int("gold", sum.Gold),
		zap.Int("relics_found", sum.RelicsFound),
		zap.Int("abilities_found", sum.AbilitiesFound),
		zap.Int("souls_earned", sum.SoulsEarned),
		zap.Float64("run_time_seconds", sum.RunTime),
	)
}

// Done reports whether a new run has begun.
func (r *ResetSystem) Done() bool { return r.done }

// Update waits for the restart intent, then resets the world to a
// fresh run.
func (r *ResetSystem) Update(s *world.State, dt float64, in intent.Frame) {
	if r.done || !in.Restart {
		return
	}
	if err := s.Reset(); err != nil {
		r.logger.Error("reset failed", zap.Error(err))
		return
	}
	r.done = true
	r.logger.Info("new run started")
}
