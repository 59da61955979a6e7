package sim

import "math"

// Movement and flocking constants. Forces are accelerations in m/s²-ish
// units applied as steering nudges; the goal term dominates by an order of
// magnitude so flocking only shapes the path, never chooses it.
const (
	sepRadius   = 2.2 // separation neighbourhood
	cohRadius   = 6.0 // cohesion neighbourhood
	alignRadius = 4.0 // alignment neighbourhood

	separationForce  = 3.0
	cohesionForce    = 0.6
	alignmentForce   = 0.8
	flockingMaxForce = 4.0

	// Temporal smoothing of the summed flocking force: keep 70% of the
	// previous tick's force, blend in 30% of the new one. This is the
	// anti-oscillation device; without it groups visibly shake.
	forceKeep = 0.70
	forceNew  = 0.30

	goalWeight = 10.0 // final direction = goal*goalWeight + smoothed force
	minSepDist = 0.05 // floor under the separation falloff divisor

	arriveRadius = 0.4 // a move node completes within this distance

	probeStepRad = 22.5 * math.Pi / 180 // alternate-heading increment
	probeCount   = 6                    // probes out to ±135°

	accelRate       = 8.0  // m/s² toward the target velocity
	decelRate       = 10.0 // m/s² when coming to rest
	resistDecelRate = 16.0 // stronger braking while a collision is resisted

	stuckMoveEps     = 0.2  // goal progress below this counts as stuck
	stuckJitterAfter = 1.25 // seconds stuck before the jitter wiggle starts
	stuckCancelAfter = 2.5  // seconds stuck before the command is dropped
	jitterSpin       = 9.0  // rad/s rotation of the wiggle direction

	// The wiggle traces a circle of radius jitterRadius. It must stay
	// under stuckMoveEps so the wiggle alone can never register as goal
	// progress and hold off the cancellation timer.
	jitterRadius = 0.08

	spawnSpreadRadius = 1.5 // rally dispersal disk for freshly trained units

	particleLifetime = 0.4
	maxUnitParticles = 6
)

// Lateral slide offsets tried after every probe heading is blocked:
// three step fractions × four angles around the blocked heading.
var (
	slideFractions = [3]float64{0.75, 0.5, 0.25}
	slideAngles    = [4]float64{math.Pi / 2, -math.Pi / 2, 5 * math.Pi / 6, -5 * math.Pi / 6}
)

// progressCommands runs the per-unit command/movement phase: the queue
// head is executed (movement steering or an ability cast), flocking is
// layered onto goal-seeking, and stuck recovery is applied.
func (s *State) progressCommands(dt float64) {
	for _, u := range s.Units {
		if !u.Alive() {
			continue
		}
		head, ok := u.Queue.Head()
		if !ok {
			s.idleDrift(u, dt)
			s.updateParticles(u, dt)
			continue
		}
		switch head.Kind {
		case CommandMove:
			s.steerUnit(u, head.Position, dt)
		case CommandAbility:
			u.Queue.Pop()
			s.beginAbilityCast(u, head)
			s.idleDrift(u, dt)
		}
		s.updateParticles(u, dt)
	}
}

// steerUnit advances one unit toward the active move target.
func (s *State) steerUnit(u *Unit, target Vec2, dt float64) {
	toGoal := target.Sub(u.Pos)
	if toGoal.Len() <= arriveRadius {
		u.Queue.Pop()
		u.velocity = approach(u.velocity, Vec2{}, decelRate*dt)
		u.resetStuck()
		return
	}

	goal := toGoal.Normalize()
	force := s.flockingForce(u)
	u.smoothedForce = u.smoothedForce.Scale(forceKeep).Add(force.Scale(forceNew))

	dir := goal.Scale(goalWeight).Add(u.smoothedForce).Normalize()
	if dir.LenSq() < 1e-12 {
		dir = goal
	}

	st := u.Kind.Stats()
	desired := dir.Scale(st.Speed)
	rate := accelRate
	if u.resisting {
		rate = resistDecelRate
	}
	u.velocity = approach(u.velocity, desired, rate*dt)

	step := u.velocity.Scale(dt)
	if step.Len() > toGoal.Len() {
		step = toGoal // never overshoot the goal in one tick
	}
	moved, resisted := s.resolveStep(u, step)
	u.resisting = resisted
	if moved.LenSq() > 0 {
		u.Pos = u.Pos.Add(moved)
		if promos := u.creditDistance(moved.Len()); promos > 0 {
			s.emit(Effect{Kind: EffectPromotion, Owner: u.Owner, UnitID: u.ID,
				Pos: u.Pos, Value: u.DamageMultiplier})
		}
	}
	s.trackStuck(u, target, dt)
}

// idleDrift resolves overlap for units with no active move order.
// Separation still applies (with the same temporal smoothing) so that
// overlapping idle units settle apart instead of jittering in place;
// cohesion and alignment do not, so idle units hold position otherwise.
func (s *State) idleDrift(u *Unit, dt float64) {
	u.velocity = approach(u.velocity, Vec2{}, decelRate*dt)
	force := s.separationOn(u)
	u.smoothedForce = u.smoothedForce.Scale(forceKeep).Add(force.Scale(forceNew))
	step := u.smoothedForce.Scale(dt)
	if step.LenSq() < 1e-12 {
		u.resetStuck()
		return
	}
	next := u.Pos.Add(step)
	if s.positionClear(u, next, true) {
		u.Pos = next
	}
	u.resetStuck()
}

// separationOn accumulates the away-force from every living friendly
// within sepRadius, weighted by a smooth cubic falloff (1 − d/R)³. The
// falloff is continuous down to zero at R: a hard dead-zone traps
// exactly-two-unit clusters in a force-cancelling jitter loop.
func (s *State) separationOn(u *Unit) Vec2 {
	var f Vec2
	for _, v := range s.Units {
		if v == u || v.Owner != u.Owner || !v.Alive() {
			continue
		}
		d := u.Pos.Dist(v.Pos)
		if d >= sepRadius {
			continue
		}
		away := u.Pos.Sub(v.Pos)
		if away.LenSq() < 1e-12 {
			// Coincident positions: push along a deterministic axis.
			away = Vec2{1, 0}
			if u.ID < v.ID {
				away = Vec2{-1, 0}
			}
		}
		if d < minSepDist {
			d = minSepDist
		}
		w := 1 - d/sepRadius
		f = f.Add(away.Normalize().Scale(w * w * w * separationForce))
	}
	return f
}

// flockingForce sums separation, cohesion, and alignment for a moving
// unit. Cohesion/alignment neighbourhoods are restricted to *moving*
// friendlies; enemies never flock together.
func (s *State) flockingForce(u *Unit) Vec2 {
	f := s.separationOn(u)

	var cohSum Vec2
	cohN := 0
	var alignSum Vec2
	alignN := 0
	for _, v := range s.Units {
		if v == u || v.Owner != u.Owner || !v.Alive() || !v.moving() {
			continue
		}
		d := u.Pos.Dist(v.Pos)
		if d < cohRadius {
			cohSum = cohSum.Add(v.Pos)
			cohN++
		}
		if d < alignRadius {
			dir := v.velocity.Normalize()
			if dir.LenSq() > 0 {
				alignSum = alignSum.Add(dir)
				alignN++
			}
		}
	}

	if cohN > 0 {
		centre := cohSum.Scale(1 / float64(cohN))
		to := centre.Sub(u.Pos)
		if dist := to.Len(); dist > 1e-6 {
			// Farther groups pull less.
			w := 1 - clamp01(dist/cohRadius)
			f = f.Add(to.Normalize().Scale(w * cohesionForce))
		}
	}

	if alignN > 0 && u.velocity.LenSq() > 1e-9 {
		avg := alignSum.Scale(1 / float64(alignN)).Normalize()
		if avg.LenSq() > 0 {
			diff := math.Abs(angleDiff(u.velocity.Angle(), avg.Angle()))
			f = f.Add(avg.Scale(alignmentForce * diff / math.Pi))
		}
	}

	return f.ClampLen(flockingMaxForce)
}

// positionClear reports whether the unit may occupy p: inside bounds,
// clear of obstacles (flyers ignore ground obstacles), and not inside an
// unyielding friendly. Moving friendlies yield via separation instead of
// blocking; enemies never block movement.
func (s *State) positionClear(u *Unit, p Vec2, ignoreUnits bool) bool {
	st := u.Kind.Stats()
	if !inBounds(p, st.Radius, s.ArenaWidth, s.ArenaHeight) {
		return false
	}
	if !st.Flying && Collides(p, st.Radius, s.Obstacles) {
		return false
	}
	if ignoreUnits {
		return true
	}
	for _, v := range s.Units {
		if v == u || v.Owner != u.Owner || !v.Alive() || v.moving() {
			continue
		}
		if p.Dist(v.Pos) < st.Radius+v.Kind.Stats().Radius {
			return false
		}
	}
	return true
}

// resolveStep attempts the straight-line step; on a blocking collision it
// probes alternate headings at ±22.5° increments out to ±135°, then up to
// twelve lateral slide offsets around the blocked heading. Returns the
// displacement actually taken and whether a collision was resisted.
func (s *State) resolveStep(u *Unit, step Vec2) (Vec2, bool) {
	if step.LenSq() < 1e-12 {
		return Vec2{}, false
	}
	if s.positionClear(u, u.Pos.Add(step), false) {
		return step, false
	}
	for i := 1; i <= probeCount; i++ {
		a := float64(i) * probeStepRad
		for _, sign := range [2]float64{1, -1} {
			cand := step.Rotate(sign * a)
			if s.positionClear(u, u.Pos.Add(cand), false) {
				return cand, true
			}
		}
	}
	l := step.Len()
	base := step.Normalize()
	for _, frac := range slideFractions {
		for _, a := range slideAngles {
			cand := base.Rotate(a).Scale(l * frac)
			if s.positionClear(u, u.Pos.Add(cand), false) {
				return cand, true
			}
		}
	}
	return Vec2{}, true
}

// trackStuck watches progress toward the active goal. The closest
// distance ever achieved is the reference; only closing on the goal by
// stuckMoveEps resets the clock, so a unit ping-ponging around a pocket
// wider than the epsilon still runs out of time. A unit pinned for
// stuckJitterAfter begins a circular wiggle; one pinned past
// stuckCancelAfter drops its current command rather than looping.
func (s *State) trackStuck(u *Unit, target Vec2, dt float64) {
	d := u.Pos.Dist(target)
	if target != u.stuckGoal || math.IsInf(u.stuckBest, 1) {
		u.stuckGoal = target
		u.stuckBest = d
		u.stuckTimer = 0
		u.jitterPhase = 0
		return
	}
	if d < u.stuckBest-stuckMoveEps {
		u.stuckBest = d
		u.stuckTimer = 0
		u.jitterPhase = 0
		return
	}
	u.stuckTimer += dt
	if u.stuckTimer >= stuckCancelAfter {
		u.Queue.Pop()
		u.resetStuck()
		return
	}
	if u.stuckTimer >= stuckJitterAfter {
		u.jitterPhase += jitterSpin * dt
		dir := Vec2{math.Cos(u.jitterPhase), math.Sin(u.jitterPhase)}
		next := u.Pos.Add(dir.Scale(jitterRadius * jitterSpin * dt))
		if s.positionClear(u, next, false) {
			u.Pos = next
		}
	}
}

func (u *Unit) resetStuck() {
	u.stuckBest = math.Inf(1)
	u.stuckTimer = 0
	u.jitterPhase = 0
	u.resisting = false
}

// updateParticles ages the unit's cosmetic trail. Particles never feed
// back into simulation decisions.
func (s *State) updateParticles(u *Unit, dt float64) {
	kept := u.Particles[:0]
	for _, p := range u.Particles {
		p.Age += dt
		if p.Age < p.Lifetime {
			p.Pos = p.Pos.Add(p.Vel.Scale(dt))
			kept = append(kept, p)
		}
	}
	u.Particles = kept

	st := u.Kind.Stats()
	if len(u.Particles) < maxUnitParticles && u.velocity.Len() > st.Speed*0.5 {
		u.Particles = append(u.Particles, FieldParticle{
			Pos:      u.Pos,
			Vel:      u.velocity.Scale(-0.2),
			Lifetime: particleLifetime,
		})
	}
}
