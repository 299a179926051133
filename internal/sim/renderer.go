package sim

import (
	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/phase"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// LogRenderer is the headless presentation layer: it writes one
// structured line per phase transition.
type LogRenderer struct {
	logger *zap.Logger
}

// NewLogRenderer creates a log renderer.
//
// Precondition: logger must be non-nil.
func NewLogRenderer(logger *zap.Logger) *LogRenderer {
	return &LogRenderer{logger: logger}
}

// Render logs the snapshot's headline state.
func (r *LogRenderer) Render(p phase.Phase, snap world.Snapshot) {
	discovered := 0
	cleared := 0
	for _, room := range snap.Rooms {
		if room.Discovered {
			discovered++
		}
		if room.Cleared {
			cleared++
		}
	}

	r.logger.Info("frame",
		zap.String("phase", string(p)),
		zap.Int("floor", snap.Floor),
		zap.String("biome", string(snap.Biome)),
		zap.Int("hp", snap.Player.HP),
		zap.Int("max_hp", snap.Player.MaxHP),
		zap.Int("gold", snap.Player.Gold),
		zap.Int("room", snap.RoomIndex),
		zap.Int("rooms_discovered", discovered),
		zap.Int("rooms_cleared", cleared),
		zap.Int("enemies_here", len(snap.Enemies)),
		zap.Int("pending_offers", snap.PendingOffers),
		zap.Bool("paused", snap.Paused),
	)
}
