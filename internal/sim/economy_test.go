package sim

import (
	"math"
	"testing"
)

func TestIncome_StepsEveryTenSeconds(t *testing.T) {
	tm := NewTestMatch()

	tm.RunSeconds(5)
	if got := tm.State.Players[0].IncomeRate; got != 1 {
		t.Fatalf("income rate at 5s = %.0f, want 1", got)
	}
	tm.RunSeconds(10)
	if got := tm.State.Players[0].IncomeRate; got != 2 {
		t.Fatalf("income rate at 15s = %.0f, want 2", got)
	}
	tm.RunSeconds(10)
	if got := tm.State.Players[0].IncomeRate; got != 3 {
		t.Fatalf("income rate at 25s = %.0f, want 3", got)
	}
}

func TestIncome_AppliedContinuously(t *testing.T) {
	tm := NewTestMatch()
	tm.RunSeconds(1)

	// One second at rate 1 on top of the opening pool, in dt-sized slices.
	want := startingPhotons + 1.0
	got := tm.State.Players[0].Photons
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("photons after 1s = %f, want ≈%f", got, want)
	}
	if tm.State.Players[1].Photons != got {
		t.Fatal("both players should accrue identical income")
	}
}

func TestPromotion_TenMetersExactlyOneStep(t *testing.T) {
	tm := NewTestMatch(WithUnit(0, KindMarine, 40, 45))
	u := tm.State.Units[0]

	promos := u.creditDistance(10.0)
	if promos != 1 {
		t.Fatalf("10m with an empty queue earned %d promotions, want 1", promos)
	}
	if u.DamageMultiplier != 1.1 {
		t.Fatalf("multiplier = %v, want exactly 1.1", u.DamageMultiplier)
	}
	if math.Abs(u.distanceCredit) > 1e-9 {
		t.Fatalf("credit remainder = %f, want 0", u.distanceCredit)
	}
}

func TestPromotion_QueuedMoveBonus(t *testing.T) {
	tm := NewTestMatch(WithUnit(0, KindMarine, 40, 45))
	u := tm.State.Units[0]
	u.Queue.Enqueue(MoveCommand(Vec2{50, 45})) // head, not counted
	u.Queue.Enqueue(MoveCommand(Vec2{60, 45}))
	u.Queue.Enqueue(MoveCommand(Vec2{70, 45}))

	// Two pending moves behind the head: 5m of travel banks 5 × 1.2 = 6m.
	u.creditDistance(5.0)
	if math.Abs(u.distanceCredit-6.0) > 1e-9 {
		t.Fatalf("credit with 2 pending moves = %f, want 6", u.distanceCredit)
	}
}

func TestPromotion_MultiplierCompounds(t *testing.T) {
	tm := NewTestMatch(WithUnit(0, KindMarine, 40, 45))
	u := tm.State.Units[0]

	u.creditDistance(10.0)
	u.creditDistance(10.0)
	if math.Abs(u.DamageMultiplier-1.1*1.1) > 1e-12 {
		t.Fatalf("multiplier after two strides = %v, want 1.21", u.DamageMultiplier)
	}
	// A single long leg earns multiple promotions at once.
	promos := u.creditDistance(25.0)
	if promos != 2 {
		t.Fatalf("25m leg earned %d promotions, want 2", promos)
	}
}

func TestPromotion_NeverDecreases(t *testing.T) {
	tm := NewTestMatch(WithUnit(0, KindMarine, 40, 45))
	u := tm.State.Units[0]

	prev := u.DamageMultiplier
	for i := 0; i < 50; i++ {
		u.creditDistance(3.7)
		if u.DamageMultiplier < prev {
			t.Fatalf("multiplier decreased: %v → %v", prev, u.DamageMultiplier)
		}
		prev = u.DamageMultiplier
	}
}

func TestPromotion_EarnedThroughMovement(t *testing.T) {
	tm := NewTestMatch(
		WithUnit(0, KindMarine, 40, 45),
		WithMoveOrder(0, 52, 45),
		WithVerbose(true),
	)
	tick := tm.RunUntil(func(tm *TestMatch) bool {
		return tm.State.Units[0].Queue.Len() == 0
	}, 600)
	if tick < 0 {
		t.Fatalf("unit never arrived; log:\n%s", tm.Log.Format())
	}

	u := tm.State.Units[0]
	if u.DistanceTraveled < 11 || u.DistanceTraveled > 12.5 {
		t.Fatalf("distance traveled = %f, want ≈11.6", u.DistanceTraveled)
	}
	if u.DamageMultiplier != 1.1 {
		t.Fatalf("multiplier after one stride = %v, want 1.1", u.DamageMultiplier)
	}
	if tm.Log.CountCategory("stats", "promotion") != 1 {
		t.Fatalf("expected one promotion log entry; log:\n%s", tm.Log.Format())
	}
}

func TestSpend_RequiresAffordability(t *testing.T) {
	p := newPlayer(0)
	p.Photons = 40
	if p.CanAfford(50) {
		t.Fatal("40 photons should not afford a 50-photon unit")
	}
	p.spend(40)
	if p.Photons != 0 {
		t.Fatalf("photons after spending everything = %f", p.Photons)
	}
}
