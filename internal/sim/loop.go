// Package sim runs the game headless: a fixed-timestep loop feeding
// scripted intents into the phase machine, exposed as a lifecycle
// service.
package sim

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/phase"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// Loop is the fixed-timestep game loop. It implements the lifecycle
// Service interface; Start blocks until the frame cap is reached, the
// driver quits, or Stop is called.
type Loop struct {
	machine *phase.Machine
	state   *world.State
	driver  Driver
	logger  *zap.Logger

	tickRate  int
	maxFrames int

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewLoop creates the game loop.
//
// Precondition: machine, state, driver, and logger must be non-nil;
// tickRate >= 1. maxFrames == 0 means unbounded.
func NewLoop(machine *phase.Machine, state *world.State, driver Driver, tickRate, maxFrames int, logger *zap.Logger) *Loop {
	return &Loop{
		machine:   machine,
		state:     state,
		driver:    driver,
		logger:    logger,
		tickRate:  tickRate,
		maxFrames: maxFrames,
		stopCh:    make(chan struct{}),
	}
}

// Start runs the loop. Each tick draws one intent frame from the
// driver and advances the machine by a fixed dt.
func (l *Loop) Start() error {
	dt := 1.0 / float64(l.tickRate)
	interval := time.Duration(float64(time.Second) * dt)

	l.machine.Begin(l.state)
	l.logger.Info("game loop started",
		zap.Int("tick_rate", l.tickRate),
		zap.Int("max_frames", l.maxFrames),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	frames := 0
	for {
		select {
		case <-l.stopCh:
			l.logger.Info("game loop stopped",
				zap.Int("frames", frames),
			)
			return nil
		case <-ticker.C:
		}

		in := l.driver.Next(l.machine.Current(), l.state.Snapshot())
		if in.Quit {
			l.logger.Info("driver quit",
				zap.Int("frames", frames),
			)
			return nil
		}

		l.nudgeExploration()
		l.machine.Update(l.state, dt, in)

		frames++
		if l.maxFrames > 0 && frames >= l.maxFrames {
			l.logger.Info("frame cap reached",
				zap.Int("frames", frames),
			)
			return nil
		}
	}
}

// Stop ends the loop. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// nudgeExploration teleports the player toward the next unresolved
// room. The floor plan has no corridors between rooms, so the headless
// harness handles travel itself: whenever exploration is idle in a
// settled room, the player is placed at the center of the first
// connected room still needing attention, falling back to any such
// room on the floor.
func (l *Loop) nudgeExploration() {
	if l.machine.Current() != phase.PhaseExplore || l.state.Paused {
		return
	}
	s := l.state
	room := s.CurrentRoom()
	if len(room.Enemies) > 0 || s.HasPendingOffers() {
		return
	}

	if target := l.nextTarget(); target != nil {
		cx, cy := target.Center()
		s.Player.X = cx
		s.Player.Y = cy
	}
}

// nextTarget picks the first connected room that is undiscovered or
// still holds a fight, then falls back to a floor-wide scan. Shops are
// only targeted for discovery; the scripted driver decides whether to
// go in.
func (l *Loop) nextTarget() *entity.Room {
	s := l.state
	unresolved := func(r *entity.Room) bool {
		if !r.Discovered {
			return true
		}
		return !r.Cleared && r.Type != entity.RoomShop
	}

	for _, idx := range s.CurrentRoom().Connections {
		if r := s.Rooms[idx]; unresolved(r) {
			return r
		}
	}
	for _, r := range s.Rooms {
		if unresolved(r) {
			return r
		}
	}
	return nil
}
