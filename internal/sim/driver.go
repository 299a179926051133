package sim

import (
	"math"

	"github.com/hollowdelve/hollowdelve/internal/game/intent"
	"github.com/hollowdelve/hollowdelve/internal/game/phase"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
)

// Driver produces one intent frame per tick from a read-only snapshot.
type Driver interface {
	Next(p phase.Phase, snap world.Snapshot) intent.Frame
}

// interactEvery is the explore-phase cadence of interact presses; it
// picks up items and enters shops the player is standing in.
const interactEvery = 30

// ScriptedDriver is a deterministic headless player: it closes with
// enemies and attacks, dodges telegraphs, takes the first option of
// every choice, gambles only on a healthy run, and shops greedily.
type ScriptedDriver struct {
	frame int
}

// NewScriptedDriver creates the scripted driver.
func NewScriptedDriver() *ScriptedDriver {
	return &ScriptedDriver{}
}

// Next returns the frame's intents for the given phase.
func (d *ScriptedDriver) Next(p phase.Phase, snap world.Snapshot) intent.Frame {
	d.frame++

	switch p {
	case phase.PhaseExplore:
		var in intent.Frame
		if d.frame%interactEvery == 0 {
			in.Interact = true
		}
		return in

	case phase.PhaseFight:
		return d.fightFrame(snap)

	case phase.PhaseChoose:
		return intent.Frame{Numeric: 1}

	case phase.PhasePushLuck:
		if snap.Player.HP > 60 {
			return intent.Frame{AcceptRisk: true}
		}
		return intent.Frame{DeclineRisk: true}

	case phase.PhaseCashOut:
		if len(snap.ShopItems) > 0 && snap.Player.Gold >= snap.ShopItems[0].Cost {
			return intent.Frame{Numeric: 1}
		}
		return intent.Frame{Cancel: true}

	case phase.PhaseReset:
		return intent.Frame{Restart: true}
	}

	// Power-up and escalate resolve on entry and take no input.
	return intent.Frame{}
}

// fightFrame closes with the nearest enemy, attacks constantly, and
// dodges the moment any enemy telegraphs.
func (d *ScriptedDriver) fightFrame(snap world.Snapshot) intent.Frame {
	in := intent.Frame{Attack: true}

	var nearest *struct{ x, y float64 }
	minDist := math.Inf(1)
	for _, e := range snap.Enemies {
		dx := e.X - snap.Player.X
		dy := e.Y - snap.Player.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < minDist {
			minDist = dist
			nearest = &struct{ x, y float64 }{dx, dy}
		}
		if e.TelegraphLeft > 0 {
			in.Dodge = true
		}
	}
	if nearest != nil && minDist > 1.0 {
		in.MoveX = nearest.x
		in.MoveY = nearest.y
	}
	return in
}
