package sim

import "fmt"

// The simulation is frame-rate independent, but the headless harness runs
// it at a fixed 60 Hz so tick counts in tests translate to wall time.
const (
	TickRate = 60.0
	TickDT   = 1.0 / TickRate
)

// TestMatch is a headless match harness used exclusively by tests and the
// batch runner. It drives State.Update directly with no renderer and
// records structured events to a MatchLog.
type TestMatch struct {
	State *State
	Log   *MatchLog
	Tick  int

	// construction-time knobs, consumed by NewTestMatch
	layout    ArenaLayout
	seed      int64
	timeLimit float64
	verbose   bool
	basePos   [2]Vec2

	prevOver bool
}

// matchOptionKind controls the pass in which an option is applied.
type matchOptionKind int

const (
	matchOptInfra  matchOptionKind = iota // arena, seed, limits, verbose; applied first
	matchOptEntity                        // units, resources, base tweaks; applied once the state exists
	matchOptOrder                         // initial command queues; applied after entities exist
)

// MatchOption is a builder function applied to a TestMatch during construction.
type MatchOption struct {
	kind matchOptionKind
	fn   func(*TestMatch)
}

// WithArenaSize sets the arena dimensions in meters.
func WithArenaSize(w, h float64) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.layout.Width = w
		tm.layout.Height = h
	}}
}

// WithLayout replaces the whole arena layout, obstacles included.
func WithLayout(layout ArenaLayout) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.layout = layout
	}}
}

// WithObstacle adds one obstacle to the arena.
func WithObstacle(o Obstacle) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.layout.Obstacles = append(tm.layout.Obstacles, o)
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.seed = seed
	}}
}

// WithTimeLimit sets the match time limit in seconds. Zero disables it.
func WithTimeLimit(seconds float64) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.timeLimit = seconds
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.verbose = v
	}}
}

// WithBasePositions places the two bases explicitly.
func WithBasePositions(p0, p1 Vec2) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.basePos = [2]Vec2{p0, p1}
	}}
}

// WithUnit places a unit directly, bypassing the training cost. Units are
// appended in option order, so tests may index State.Units positionally.
func WithUnit(owner int, kind UnitKind, x, y float64) MatchOption {
	return MatchOption{matchOptEntity, func(tm *TestMatch) {
		s := tm.State
		u := newUnit(s.allocID(), kind, owner, Vec2{X: x, Y: y})
		s.Units = append(s.Units, u)
	}}
}

// WithPhotons overrides a player's opening resource pool.
func WithPhotons(owner int, amount float64) MatchOption {
	return MatchOption{matchOptEntity, func(tm *TestMatch) {
		tm.State.Players[owner].Photons = amount
	}}
}

// WithBaseHP overrides a base's starting health.
func WithBaseHP(owner int, hp float64) MatchOption {
	return MatchOption{matchOptEntity, func(tm *TestMatch) {
		tm.State.Bases[owner].HP = hp
	}}
}

// WithMoveOrder enqueues an initial move order on the nth placed unit.
func WithMoveOrder(unitIndex int, x, y float64) MatchOption {
	return MatchOption{matchOptOrder, func(tm *TestMatch) {
		tm.State.Units[unitIndex].Queue.Enqueue(MoveCommand(Vec2{X: x, Y: y}))
	}}
}

// WithAbilityOrder enqueues an initial ability order on the nth placed unit.
func WithAbilityOrder(unitIndex int, origin, direction Vec2) MatchOption {
	return MatchOption{matchOptOrder, func(tm *TestMatch) {
		tm.State.Units[unitIndex].Queue.Enqueue(AbilityCommand(origin, direction))
	}}
}

// NewTestMatch constructs a TestMatch from the given options in three
// ordered passes:
//  1. Infrastructure (arena, seed, time limit, verbose)
//  2. Entities (units, resources, base health)
//  3. Orders (initial command queues)
func NewTestMatch(opts ...MatchOption) *TestMatch {
	tm := &TestMatch{
		layout:  ArenaLayout{Name: "test-arena", Width: 160, Height: 90},
		seed:    1,
		basePos: [2]Vec2{{X: 10, Y: 45}, {X: 150, Y: 45}},
	}
	for _, o := range opts {
		if o.kind == matchOptInfra {
			o.fn(tm)
		}
	}
	tm.State = newStateAt(tm.layout, tm.seed, tm.timeLimit, tm.basePos[0], tm.basePos[1])
	tm.Log = NewMatchLog(tm.verbose)
	for _, o := range opts {
		if o.kind == matchOptEntity {
			o.fn(tm)
		}
	}
	for _, o := range opts {
		if o.kind == matchOptOrder {
			o.fn(tm)
		}
	}
	return tm
}

// RunTicks advances the match n ticks at the fixed rate, logging events.
func (tm *TestMatch) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tm.Tick++
		tm.State.Update(TickDT)
		tm.logTick()
	}
}

// RunSeconds advances the match by whole ticks covering the given duration.
func (tm *TestMatch) RunSeconds(seconds float64) {
	tm.RunTicks(int(seconds * TickRate))
}

// RunUntil advances the match up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (tm *TestMatch) RunUntil(predicate func(*TestMatch) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tm.Tick++
		tm.State.Update(TickDT)
		tm.logTick()
		if predicate(tm) {
			return tm.Tick
		}
	}
	return -1
}

// logTick translates the tick's effect log into match-log entries and, in
// verbose mode, records per-unit positions and player resources.
func (tm *TestMatch) logTick() {
	s := tm.State
	tick := tm.Tick

	for _, e := range s.Effects {
		subject := "--"
		if e.UnitID >= 0 {
			subject = fmt.Sprintf("u%d", e.UnitID)
		}
		owner := fmt.Sprintf("p%d", e.Owner)
		switch e.Kind {
		case EffectSpawn:
			tm.Log.Add(tick, subject, owner, "economy", "spawn",
				fmt.Sprintf("at (%.1f,%.1f)", e.Pos.X, e.Pos.Y), 0)
		case EffectDeath:
			tm.Log.Add(tick, subject, owner, "combat", "death",
				fmt.Sprintf("at (%.1f,%.1f)", e.Pos.X, e.Pos.Y), 0)
		case EffectPromotion:
			tm.Log.Add(tick, subject, owner, "stats", "promotion",
				fmt.Sprintf("multiplier %.3f", e.Value), e.Value)
		case EffectHitSpark:
			tm.Log.AddVerbose(tick, subject, owner, "combat", "hit",
				fmt.Sprintf("%.1f dmg", e.Value), e.Value)
		case EffectAbilityCast:
			tm.Log.Add(tick, subject, owner, "ability", "cast",
				e.Ability.String(), 0)
		case EffectTelegraph:
			tm.Log.Add(tick, subject, owner, "ability", "telegraph",
				fmt.Sprintf("%s in %.1fs", e.Ability, e.Value), e.Value)
		case EffectAbilityHit:
			tm.Log.Add(tick, subject, owner, "ability", "hit",
				fmt.Sprintf("%s %.1f dmg", e.Ability, e.Value), e.Value)
		case EffectHeal:
			tm.Log.AddVerbose(tick, subject, owner, "ability", "heal",
				fmt.Sprintf("%.1f hp", e.Value), e.Value)
		case EffectShield:
			tm.Log.Add(tick, subject, owner, "ability", "shield",
				fmt.Sprintf("%.1fs", e.Value), e.Value)
		case EffectLaser:
			tm.Log.Add(tick, subject, owner, "base", "laser",
				fmt.Sprintf("to (%.1f,%.1f)", e.To.X, e.To.Y), 0)
		}
	}

	if s.Result.Over && !tm.prevOver {
		winner := "draw"
		if s.Result.Winner >= 0 {
			winner = fmt.Sprintf("p%d", s.Result.Winner)
		}
		tm.Log.Add(tick, "--", "--", "match", "over",
			fmt.Sprintf("%s wins: %s", winner, s.Result.Reason), 0)
	}
	tm.prevOver = s.Result.Over

	for _, u := range s.Units {
		subject := fmt.Sprintf("u%d", u.ID)
		owner := fmt.Sprintf("p%d", u.Owner)
		tm.Log.AddVerbose(tick, subject, owner, "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", u.Pos.X, u.Pos.Y), 0)
		tm.Log.AddVerbose(tick, subject, owner, "stats", "hp",
			fmt.Sprintf("%.1f", u.HP), u.HP)
	}
	for i, p := range s.Players {
		tm.Log.AddVerbose(tick, "--", fmt.Sprintf("p%d", i), "economy", "photons",
			fmt.Sprintf("%.1f", p.Photons), p.Photons)
	}
}

// MatchSnapshot captures a lightweight state summary.
type MatchSnapshot struct {
	Tick    int
	Units   []UnitSnapshot
	Photons [2]float64
	BaseHP  [2]float64
}

// UnitSnapshot is a lightweight copy of a unit's state at a tick.
type UnitSnapshot struct {
	ID         int
	Kind       UnitKind
	Owner      int
	X, Y       float64
	HP         float64
	Multiplier float64
}

// Snapshot returns the current state of all living units and both players.
func (tm *TestMatch) Snapshot() MatchSnapshot {
	snap := MatchSnapshot{Tick: tm.Tick}
	for _, u := range tm.State.Units {
		snap.Units = append(snap.Units, UnitSnapshot{
			ID:         u.ID,
			Kind:       u.Kind,
			Owner:      u.Owner,
			X:          u.Pos.X,
			Y:          u.Pos.Y,
			HP:         u.HP,
			Multiplier: u.DamageMultiplier,
		})
	}
	for i := 0; i < 2; i++ {
		snap.Photons[i] = tm.State.Players[i].Photons
		snap.BaseHP[i] = tm.State.Bases[i].HP
	}
	return snap
}
