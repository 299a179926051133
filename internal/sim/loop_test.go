package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hollowdelve/hollowdelve/internal/config"
	"github.com/hollowdelve/hollowdelve/internal/game/bestiary"
	"github.com/hollowdelve/hollowdelve/internal/game/combat"
	"github.com/hollowdelve/hollowdelve/internal/game/dungeon"
	"github.com/hollowdelve/hollowdelve/internal/game/entity"
	"github.com/hollowdelve/hollowdelve/internal/game/escalation"
	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/phase"
	"github.com/hollowdelve/hollowdelve/internal/game/reward"
	"github.com/hollowdelve/hollowdelve/internal/game/risk"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
	"github.com/hollowdelve/hollowdelve/internal/game/shop"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

func newTestGame(t require.TestingT, seed int64) (*phase.Machine, *world.State) {
	cfg := config.Default()
	gp := cfg.Gameplay

	gen, err := dungeon.NewGenerator(dungeon.Params{
		MinRoomSize:          gp.MinRoomSize,
		MaxRoomSize:          gp.MaxRoomSize,
		RoomsPerFloor:        gp.RoomsPerFloor,
		EnemyDensityIncrease: gp.EnemyDensityIncrease,
		HPScalePerFloor:      gp.HPScalePerFloor,
		DamageScalePerFloor:  gp.DamageScalePerFloor,
	}, bestiary.Default())
	require.NoError(t, err)

	src := rng.NewSeededSource(seed)
	s, err := world.NewState(gp, gen, src)
	require.NoError(t, err)

	logger := zap.NewNop()
	applier := reward.NewApplier(src, logger)
	resolver := combat.NewResolver(combat.Params{
		AttackRange:           gp.AttackRange,
		TelegraphSeconds:      gp.TelegraphSeconds,
		AttackCooldownSeconds: gp.AttackCooldownSeconds,
		DodgeCooldown:         gp.DodgeCooldown,
		DodgeDuration:         gp.DodgeDuration,
	}, src, logger)
	riskGen := risk.NewGenerator(src, logger)

	m := phase.NewMachine(phase.Systems{
		Explore:  phase.NewExploreSystem(applier, logger),
		Fight:    phase.NewFightSystem(resolver),
		Choose:   phase.NewChooseSystem(logger),
		PowerUp:  phase.NewPowerUpSystem(applier),
		PushLuck: phase.NewPushLuckSystem(riskGen, logger),
		Escalate: phase.NewEscalateSystem(escalation.NewController(src, logger), logger),
		CashOut:  phase.NewCashOutSystem(shop.NewKeeper(shop.DefaultCatalog(), src, applier, logger), logger),
		Reset:    phase.NewResetSystem(logger),
	}, riskGen, NewLogRenderer(logger), logger)

	return m, s
}

// A scripted run makes measurable progress within the frame cap and
// the loop returns cleanly when it is hit.
func TestLoop_RunsToFrameCap(t *testing.T) {
	m, s := newTestGame(t, 1)
	loop := NewLoop(m, s, NewScriptedDriver(), 1000, 600, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- loop.Start() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("loop did not hit its frame cap")
	}

	assert.Greater(t, s.Stats.RunTime, 0.0)
	assert.GreaterOrEqual(t, s.Stats.RoomsExplored, 1, "the nudge should reach at least one room")
}

func TestLoop_StopUnblocksStart(t *testing.T) {
	m, s := newTestGame(t, 2)
	loop := NewLoop(m, s, NewScriptedDriver(), 1000, 0, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- loop.Start() }()

	time.Sleep(50 * time.Millisecond)
	loop.Stop()
	loop.Stop() // idempotent

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not unblock Start")
	}
}

// quitDriver quits on its first frame.
type quitDriver struct{}

func (quitDriver) Next(p phase.Phase, snap world.Snapshot) intent.Frame {
	return intent.Frame{Quit: true}
}

func TestLoop_DriverQuitEndsRun(t *testing.T) {
	m, s := newTestGame(t, 3)
	loop := NewLoop(m, s, quitDriver{}, 1000, 0, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- loop.Start() }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("quit intent did not end the loop")
	}
}

func TestScriptedDriver_PhasePolicies(t *testing.T) {
	d := NewScriptedDriver()
	snap := world.Snapshot{}

	assert.Equal(t, intent.Frame{Numeric: 1}, d.Next(phase.PhaseChoose, snap))
	assert.Equal(t, intent.Frame{Restart: true}, d.Next(phase.PhaseReset, snap))

	snap.Player.HP = 80
	assert.Equal(t, intent.Frame{AcceptRisk: true}, d.Next(phase.PhasePushLuck, snap))
	snap.Player.HP = 40
	assert.Equal(t, intent.Frame{DeclineRisk: true}, d.Next(phase.PhasePushLuck, snap))

	snap.Player.Gold = 100
	snap.ShopItems = []entity.ShopItem{{Name: "Health Potion", Cost: 30}}
	assert.Equal(t, intent.Frame{Numeric: 1}, d.Next(phase.PhaseCashOut, snap))
	snap.Player.Gold = 10
	assert.Equal(t, intent.Frame{Cancel: true}, d.Next(phase.PhaseCashOut, snap))
	snap.ShopItems = nil
	assert.Equal(t, intent.Frame{Cancel: true}, d.Next(phase.PhaseCashOut, snap))
}

func TestScriptedDriver_FightClosesAndDodges(t *testing.T) {
	d := NewScriptedDriver()
	snap := world.Snapshot{}
	snap.Player.X = 0
	snap.Player.Y = 0
	snap.Enemies = []entity.Enemy{
		{X: 5, Y: 0, HP: 10},
		{X: 2, Y: 0, HP: 10, TelegraphLeft: 0.3},
	}

	in := d.Next(phase.PhaseFight, snap)
	assert.True(t, in.Attack)
	assert.True(t, in.Dodge, "telegraph triggers a dodge")
	assert.Greater(t, in.MoveX, 0.0, "moves toward the nearest enemy")

	// In melee range the driver holds position.
	snap.Enemies = []entity.Enemy{{X: 0.5, Y: 0, HP: 10}}
	in = d.Next(phase.PhaseFight, snap)
	assert.True(t, in.Attack)
	assert.False(t, in.Moving())
}

func TestLogRenderer_EmitsOneLinePerRender(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewLogRenderer(zap.New(core))

	_, s := newTestGame(t, 4)
	r.Render(phase.PhaseExplore, s.Snapshot())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "frame", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "explore", fields["phase"])
	assert.Equal(t, int64(1), fields["floor"])
}
