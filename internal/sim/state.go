package sim

import (
	"math"
	"math/rand"
)

// startingPhotons is the opening resource pool for each player.
const startingPhotons = 200.0

// State is the whole simulation: arena, entities, economy, statistics, and
// the per-tick effect log. All randomness flows through the single seeded
// rng, so two states built with the same seed and fed the same commands
// evolve identically.
type State struct {
	ArenaWidth  float64
	ArenaHeight float64
	Obstacles   []Obstacle

	Units   []*Unit
	Bases   [2]*Base
	Players [2]*Player

	Stats   MatchStats
	Effects []Effect // cleared at the start of every Update

	Elapsed   float64
	TimeLimit float64 // seconds; 0 disables the limit
	Result    MatchResult

	rng         *rand.Rand
	nextID      int
	surrendered [2]bool
}

// NewState builds a match on the given layout. Base positions are derived
// from the layout's obstacle field; a layout without room for two bases is
// rejected.
func NewState(layout ArenaLayout, seed int64, timeLimit float64) (*State, error) {
	positions := ValidBasePositions(layout.Obstacles, layout.Width, layout.Height)
	if len(positions) < 2 {
		return nil, ErrNoBasePositions
	}
	return newStateAt(layout, seed, timeLimit, positions[0], positions[1]), nil
}

// newStateAt places bases explicitly. The test harness uses it to build
// tightly controlled scenarios.
func newStateAt(layout ArenaLayout, seed int64, timeLimit float64, p0, p1 Vec2) *State {
	s := &State{
		ArenaWidth:  layout.Width,
		ArenaHeight: layout.Height,
		Obstacles:   append([]Obstacle(nil), layout.Obstacles...),
		Stats:       newMatchStats(),
		TimeLimit:   timeLimit,
		rng:         rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
	}
	for i := 0; i < 2; i++ {
		s.Players[i] = newPlayer(i)
		s.Players[i].Photons = startingPhotons
	}
	s.Bases[0] = newBase(s.allocID(), 0, p0)
	s.Bases[1] = newBase(s.allocID(), 1, p1)
	return s
}

func (s *State) allocID() int {
	s.nextID++
	return s.nextID
}

// Update advances the match by dt seconds. dt of zero (or less) changes
// nothing; a finished match never advances.
func (s *State) Update(dt float64) {
	if dt <= 0 {
		return
	}
	s.Effects = s.Effects[:0]
	if s.Result.Over {
		return
	}

	// 1. INCOME
	s.accrueIncome(dt)

	// 2. COMMANDS & MOVEMENT
	s.progressCommands(dt)

	// 3. COMBAT
	s.resolveCombat(dt)

	// 4. BASES
	s.updateBases(dt)
	s.removeDead() // laser kills leave no corpse behind either

	// 5. VICTORY
	s.Elapsed += dt
	s.checkVictory()
}

// SpawnUnit trains one unit for the player. The unit appears at the
// base position with a single queued move order toward a dispersed,
// validated point near the desired rally position, so trainees walk out
// of the base under normal movement rules instead of teleporting.
// Unaffordable or out-of-match requests are silent no-ops.
func (s *State) SpawnUnit(owner int, kind UnitKind, rally Vec2) bool {
	if s.Result.Over || owner < 0 || owner > 1 {
		return false
	}
	st := kind.Stats()
	if st.MaxHP <= 0 {
		return false
	}
	p := s.Players[owner]
	base := s.Bases[owner]
	if !base.Alive() || !p.CanAfford(st.Cost) {
		return false
	}

	target := s.rallyPosition(rally, st.Radius)
	p.spend(st.Cost)
	s.Stats.Players[owner].PhotonsSpent += st.Cost
	s.Stats.Players[owner].UnitsTrained++

	u := newUnit(s.allocID(), kind, owner, base.Pos)
	u.Queue.Enqueue(MoveCommand(target))
	s.Units = append(s.Units, u)
	s.emit(Effect{Kind: EffectSpawn, Owner: owner, UnitID: u.ID, Pos: base.Pos, To: target})
	return true
}

// RallyPoint is the default rally position for a player: just in front
// of their base, toward the arena centre. Callers with no better idea
// pass it to SpawnUnit.
func (s *State) RallyPoint(owner int) Vec2 {
	b := s.Bases[owner]
	centre := Vec2{X: s.ArenaWidth / 2, Y: s.ArenaHeight / 2}
	dir := centre.Sub(b.Pos).Normalize()
	if dir.LenSq() == 0 {
		dir = Vec2{X: 1}
	}
	return b.Pos.Add(dir.Scale(BaseRadius + 2))
}

// rallyPosition disperses rally targets in a disk around the desired
// point so consecutive trainees do not stack on one spot. Each candidate
// is re-validated against bounds and obstacles; if the whole disk is
// blocked the target walks toward the arena centre until a clear spot
// appears.
func (s *State) rallyPosition(desired Vec2, radius float64) Vec2 {
	for try := 0; try < 12; try++ {
		ang := s.rng.Float64() * 2 * math.Pi
		r := spawnSpreadRadius * math.Sqrt(s.rng.Float64())
		cand := desired.Add(Vec2{X: math.Cos(ang), Y: math.Sin(ang)}.Scale(r))
		if inBounds(cand, radius, s.ArenaWidth, s.ArenaHeight) &&
			!Collides(cand, radius, s.Obstacles) {
			return cand
		}
	}
	centre := Vec2{X: s.ArenaWidth / 2, Y: s.ArenaHeight / 2}
	dir := centre.Sub(desired).Normalize()
	if dir.LenSq() == 0 {
		dir = Vec2{X: 1}
	}
	for step := 1; step <= 8; step++ {
		cand := desired.Add(dir.Scale(float64(step)))
		if inBounds(cand, radius, s.ArenaWidth, s.ArenaHeight) &&
			!Collides(cand, radius, s.Obstacles) {
			return cand
		}
	}
	return desired
}

// EnqueueUnitCommand appends an order to a unit's queue. Returns false if
// the unit does not exist or its queue is full.
func (s *State) EnqueueUnitCommand(id int, node CommandNode) bool {
	u := s.UnitByID(id)
	if u == nil {
		return false
	}
	return u.Queue.Enqueue(node)
}

// EnqueueBaseCommand appends an order to a base's queue.
func (s *State) EnqueueBaseCommand(owner int, node CommandNode) bool {
	if owner < 0 || owner > 1 {
		return false
	}
	b := s.Bases[owner]
	if b == nil || !b.Alive() {
		return false
	}
	return b.Queue.Enqueue(node)
}

// UnitByID finds a living unit, or nil.
func (s *State) UnitByID(id int) *Unit {
	for _, u := range s.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UnitsOf returns the living units owned by one player.
func (s *State) UnitsOf(owner int) []*Unit {
	var out []*Unit
	for _, u := range s.Units {
		if u.Owner == owner && u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// updateBases runs the base phase: command consumption, relocation
// movement, and laser cooldown.
func (s *State) updateBases(dt float64) {
	for _, b := range s.Bases {
		if b == nil || !b.Alive() {
			continue
		}
		if b.LaserCooldown > 0 {
			b.LaserCooldown -= dt
			if b.LaserCooldown < 0 {
				b.LaserCooldown = 0
			}
		}

		if head, ok := b.Queue.Head(); ok {
			switch head.Kind {
			case CommandMove:
				t := head.Position
				b.MoveTarget = &t
				b.Queue.Pop()
			case CommandAbility:
				b.Queue.Pop()
				s.fireBaseLaser(b, head)
			}
		}

		if b.MoveTarget == nil {
			continue
		}
		to := b.MoveTarget.Sub(b.Pos)
		if to.Len() <= baseArrive {
			b.MoveTarget = nil
			continue
		}
		next := b.Pos.Add(to.Normalize().Scale(baseSpeed * dt))
		if inBounds(next, BaseRadius, s.ArenaWidth, s.ArenaHeight) &&
			!Collides(next, BaseRadius, s.Obstacles) {
			b.Pos = next
		} else {
			b.MoveTarget = nil // blocked: park where we are
		}
	}
}
