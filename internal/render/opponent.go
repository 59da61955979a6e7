package render

import (
	"math/rand"

	"github.com/photonforge/arena/internal/sim"
)

// scriptedOpponent is a deterministic sparring partner for the viewer.
// It trains on a fixed cadence from a rotating roster, attack-moves
// everything at the enemy base, and fires abilities when units arrive.
type scriptedOpponent struct {
	owner      int
	rng        *rand.Rand
	trainTimer float64
	roster     []sim.UnitKind
	next       int
}

const (
	opponentTrainEvery = 6.0 // seconds between training attempts
	opponentCastRange  = 14.0
)

func newScriptedOpponent(owner int, seed int64) *scriptedOpponent {
	return &scriptedOpponent{
		owner: owner,
		rng:   rand.New(rand.NewSource(seed + 1)), // #nosec G404 -- game only
		roster: []sim.UnitKind{
			sim.KindMarine, sim.KindMarine, sim.KindBrawler,
			sim.KindMedic, sim.KindWasp, sim.KindWarden, sim.KindMortar,
		},
	}
}

func (o *scriptedOpponent) act(s *sim.State) {
	if s.Result.Over {
		return
	}
	enemy := s.Bases[1-o.owner]

	o.trainTimer -= simDT
	if o.trainTimer <= 0 {
		o.trainTimer = opponentTrainEvery
		kind := o.roster[o.next%len(o.roster)]
		if s.SpawnUnit(o.owner, kind, s.RallyPoint(o.owner)) {
			o.next++
		}
	}

	for _, u := range s.UnitsOf(o.owner) {
		if u.Queue.Len() == 0 {
			// Scatter targets a little so the army does not stack on
			// one point in front of the base.
			jx := (o.rng.Float64() - 0.5) * 6
			jy := (o.rng.Float64() - 0.5) * 6
			target := sim.Vec2{X: enemy.Pos.X + jx, Y: enemy.Pos.Y + jy}
			s.EnqueueUnitCommand(u.ID, sim.MoveCommand(target))
		}
		if u.Ability.Phase == sim.AbilityReady && u.Ability.Cooldown <= 0 &&
			u.Pos.Dist(enemy.Pos) < opponentCastRange {
			dir := enemy.Pos.Sub(u.Pos)
			s.EnqueueUnitCommand(u.ID, sim.AbilityCommand(enemy.Pos, dir))
		}
	}
}
