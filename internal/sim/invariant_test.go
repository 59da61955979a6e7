package sim

import "testing"

// --- Invariant helpers ---

// checkHPBounded verifies no unit carries negative or above-max health.
func checkHPBounded(t *testing.T, tm *TestMatch) {
	t.Helper()
	for _, u := range tm.State.Units {
		if u.HP < 0 {
			t.Errorf("unit %d (%s) has negative HP %.3f", u.ID, u.Kind, u.HP)
		}
		if max := u.Kind.Stats().MaxHP; u.HP > max {
			t.Errorf("unit %d (%s) has HP %.3f above max %.0f", u.ID, u.Kind, u.HP, max)
		}
	}
}

// checkNoCorpses verifies dead units never linger in the collection
// across tick boundaries.
func checkNoCorpses(t *testing.T, tm *TestMatch) {
	t.Helper()
	for _, u := range tm.State.Units {
		if !u.Alive() {
			t.Errorf("dead unit %d (%s) still in the unit list", u.ID, u.Kind)
		}
	}
}

// checkUnitsInBounds verifies every unit stays inside the arena.
func checkUnitsInBounds(t *testing.T, tm *TestMatch) {
	t.Helper()
	for _, u := range tm.State.Units {
		r := u.Kind.Stats().Radius
		if u.Pos.X < r-1e-9 || u.Pos.X > tm.State.ArenaWidth-r+1e-9 ||
			u.Pos.Y < r-1e-9 || u.Pos.Y > tm.State.ArenaHeight-r+1e-9 {
			t.Errorf("unit %d (%s) out of bounds at %v", u.ID, u.Kind, u.Pos)
		}
	}
}

// checkGroundUnitsClearObstacles verifies no grounded unit sits inside an
// obstacle. Flyers are exempt.
func checkGroundUnitsClearObstacles(t *testing.T, tm *TestMatch) {
	t.Helper()
	for _, u := range tm.State.Units {
		st := u.Kind.Stats()
		if st.Flying {
			continue
		}
		if Collides(u.Pos, st.Radius, tm.State.Obstacles) {
			t.Errorf("unit %d (%s) inside an obstacle at %v", u.ID, u.Kind, u.Pos)
		}
	}
}

// checkMultipliersMonotone verifies promotion multipliers never fall
// below their floor of 1.
func checkMultipliersMonotone(t *testing.T, tm *TestMatch) {
	t.Helper()
	for _, u := range tm.State.Units {
		if u.DamageMultiplier < 1 {
			t.Errorf("unit %d (%s) has multiplier %.4f below 1", u.ID, u.Kind, u.DamageMultiplier)
		}
	}
}

// checkQueuesBounded verifies no command queue grew past its cap.
func checkQueuesBounded(t *testing.T, tm *TestMatch) {
	t.Helper()
	for _, u := range tm.State.Units {
		if u.Queue.Len() > maxQueueLen {
			t.Errorf("unit %d queue length %d exceeds cap", u.ID, u.Queue.Len())
		}
	}
	for _, b := range tm.State.Bases {
		if b.Queue.Len() > maxQueueLen {
			t.Errorf("base %d queue length %d exceeds cap", b.Owner, b.Queue.Len())
		}
	}
}

func checkAllInvariants(t *testing.T, tm *TestMatch) {
	t.Helper()
	checkHPBounded(t, tm)
	checkNoCorpses(t, tm)
	checkUnitsInBounds(t, tm)
	checkGroundUnitsClearObstacles(t, tm)
	checkMultipliersMonotone(t, tm)
	checkQueuesBounded(t, tm)
}
