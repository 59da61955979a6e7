package sim

import (
	"math"
	"testing"
)

func TestAbility_TelegraphThenReady(t *testing.T) {
	tm := NewTestMatch(
		WithUnit(0, KindBrawler, 40, 45),
		WithAbilityOrder(0, Vec2{40, 45}, Vec2{1, 0}),
	)
	tm.RunTicks(1)

	u := tm.State.Units[0]
	if u.Ability.Phase != AbilityTelegraphing {
		t.Fatalf("phase after cast = %s, want telegraphing", u.Ability.Phase)
	}
	if u.Queue.Len() != 0 {
		t.Fatal("ability node should be consumed at cast")
	}

	// Telegraph is 0.8s; one second later the dash has resolved.
	tm.RunSeconds(1)
	if u.Ability.Phase != AbilityReady {
		t.Fatalf("phase after telegraph = %s, want ready", u.Ability.Phase)
	}
	if math.Abs(u.Pos.X-48) > 0.5 || math.Abs(u.Pos.Y-45) > 0.5 {
		t.Fatalf("dash landed at %v, want ≈(48,45)", u.Pos)
	}
	if u.Ability.Cooldown <= 0 {
		t.Fatal("cooldown should still be running after the dash")
	}
}

func TestAbility_CooldownConsumesNodeAsNoOp(t *testing.T) {
	tm := NewTestMatch(
		WithUnit(0, KindBrawler, 40, 45),
		WithAbilityOrder(0, Vec2{40, 45}, Vec2{1, 0}),
	)
	u := tm.State.Units[0]
	tm.RunSeconds(2) // cast resolved, cooldown (10s) still hot

	// A second ability order may be queued freely; execution eats it
	// without casting because the cooldown gates casting, not queueing.
	if !tm.State.EnqueueUnitCommand(u.ID, AbilityCommand(u.Pos, Vec2{1, 0})) {
		t.Fatal("queueing during cooldown must be allowed")
	}
	tm.RunTicks(2)
	if u.Queue.Len() != 0 {
		t.Fatal("cooldown-gated node should be consumed as a no-op")
	}
	if got := tm.Log.CountCategory("ability", "cast"); got != 1 {
		t.Fatalf("cast count = %d, want 1 (second node was a no-op)", got)
	}
}

func TestAbility_BurstFireChannelsFiveHits(t *testing.T) {
	tm := NewTestMatch(
		WithUnit(0, KindMarine, 30, 45),
		WithUnit(1, KindBrawler, 35, 45),
		WithAbilityOrder(0, Vec2{35, 45}, Vec2{1, 0}),
	)
	tm.RunSeconds(1) // channel is 5 hits at 0.12s

	if got := tm.Log.CountCategory("ability", "hit"); got != 5 {
		t.Fatalf("burst fire landed %d hits, want 5; log:\n%s", got, tm.Log.Format())
	}
	brawler := tm.State.Units[1]
	burst := 5 * armorMitigated(6, 60)
	if brawler.HP > 220-burst {
		t.Fatalf("brawler HP = %f, want at most %f", brawler.HP, 220-burst)
	}
}

func TestAbility_HealPulseRestoresNearby(t *testing.T) {
	tm := NewTestMatch(
		WithUnit(0, KindMedic, 30, 45),
		WithUnit(0, KindMarine, 33, 45),
		WithAbilityOrder(0, Vec2{30, 45}, Vec2{1, 0}),
	)
	tm.State.Units[1].HP = 50
	tm.RunTicks(1)

	marine := tm.State.Units[1]
	// 30 from the pulse plus one tick of passive aura.
	want := 50 + 30 + healerAuraRate*TickDT
	if math.Abs(marine.HP-want) > 1e-9 {
		t.Fatalf("marine HP after heal pulse = %f, want %f", marine.HP, want)
	}
}

func TestAbility_ShieldDomeCoversAllies(t *testing.T) {
	tm := NewTestMatch(
		WithUnit(0, KindWarden, 30, 45),
		WithUnit(0, KindMarine, 33, 45),
		WithUnit(0, KindMarine, 60, 45), // outside the 6m dome
		WithAbilityOrder(0, Vec2{30, 45}, Vec2{1, 0}),
	)
	tm.RunTicks(1)

	if tm.State.Units[1].ShieldTimer <= 2.5 {
		t.Fatalf("in-dome marine shield = %f, want ≈3s", tm.State.Units[1].ShieldTimer)
	}
	if tm.State.Units[0].ShieldTimer <= 2.5 {
		t.Fatal("caster should shield itself")
	}
	if tm.State.Units[2].ShieldTimer != 0 {
		t.Fatal("marine outside the dome radius must not be shielded")
	}
}

func TestAbility_CloakHidesCaster(t *testing.T) {
	tm := NewTestMatch(
		WithUnit(0, KindShade, 30, 45),
		WithAbilityOrder(0, Vec2{30, 45}, Vec2{1, 0}),
	)
	tm.RunTicks(1)

	shade := tm.State.Units[0]
	if !shade.Cloaked() {
		t.Fatal("shade should be cloaked after casting")
	}
	tm.RunSeconds(4.5)
	if shade.Cloaked() {
		t.Fatalf("cloak should have expired, timer = %f", shade.CloakTimer)
	}
}

func TestAbility_BombardmentWaitsForTelegraph(t *testing.T) {
	// Target sits beyond the mortar's 16m auto-attack range but inside
	// the 24m bombardment range, so only the ability can touch it.
	tm := NewTestMatch(
		WithUnit(0, KindMortar, 30, 45),
		WithUnit(1, KindWarden, 50, 45),
		WithAbilityOrder(0, Vec2{50, 45}, Vec2{1, 0}),
	)
	warden := tm.State.Units[1]

	tm.RunSeconds(1)
	if warden.HP != 160 {
		t.Fatalf("warden hit during the 2s telegraph, HP = %f", warden.HP)
	}
	if tm.Log.CountCategory("ability", "telegraph") != 1 {
		t.Fatal("telegraph warning not logged")
	}

	tm.RunSeconds(1.5)
	want := 160 - armorMitigated(60, 80)
	if math.Abs(warden.HP-want) > 1e-9 {
		t.Fatalf("warden HP after bombardment = %f, want %f", warden.HP, want)
	}
}

func TestAbility_RangeClampsTargetPoint(t *testing.T) {
	// Commanding a bombardment far past its range strikes at the clamped
	// point, not the commanded one.
	tm := NewTestMatch(
		WithUnit(0, KindMortar, 30, 45),
		WithAbilityOrder(0, Vec2{100, 45}, Vec2{1, 0}),
	)
	tm.RunTicks(1)

	u := tm.State.Units[0]
	if math.Abs(u.Ability.Origin.X-54) > 1e-9 {
		t.Fatalf("strike point clamped to %v, want (54,45)", u.Ability.Origin)
	}
}

func TestBaseLaser_HitsFirstOnRay(t *testing.T) {
	tm := NewTestMatch(
		WithUnit(1, KindMarine, 20, 45),
	)
	tm.State.EnqueueBaseCommand(0, AbilityCommand(Vec2{10, 45}, Vec2{1, 0}))
	tm.RunTicks(1)

	if len(tm.State.Units) != 0 {
		t.Fatal("120-damage laser should kill and remove the 100-HP marine")
	}
	if !tm.Log.HasEntry("base", "laser", "") {
		t.Fatalf("laser not logged; log:\n%s", tm.Log.Format())
	}
	if tm.State.Bases[0].LaserCooldown <= 0 {
		t.Fatal("laser cooldown should be running")
	}
}

func TestBaseLaser_HitsCloakedAndFlying(t *testing.T) {
	tm := NewTestMatch(
		WithUnit(1, KindWasp, 20, 45),
	)
	tm.State.EnqueueBaseCommand(0, AbilityCommand(Vec2{10, 45}, Vec2{1, 0}))
	tm.RunTicks(1)

	// 70-HP wasp, 120 laser damage: the one weapon flyers cannot dodge.
	if len(tm.State.Units) != 0 {
		t.Fatal("laser should hit flying units")
	}
}

func TestBaseLaser_CooldownGates(t *testing.T) {
	tm := NewTestMatch(
		WithUnit(1, KindWarden, 20, 45),
	)
	tm.State.EnqueueBaseCommand(0, AbilityCommand(Vec2{10, 45}, Vec2{1, 0}))
	tm.RunTicks(1)
	hpAfterFirst := tm.State.Units[0].HP

	// Second shot during the 10s cooldown is consumed without firing.
	tm.State.EnqueueBaseCommand(0, AbilityCommand(Vec2{10, 45}, Vec2{1, 0}))
	tm.RunTicks(1)
	if tm.State.Units[0].HP != hpAfterFirst {
		t.Fatal("laser fired during cooldown")
	}
	if tm.State.Bases[0].Queue.Len() != 0 {
		t.Fatal("cooldown-gated node should still be consumed")
	}
}

func TestBaseRelocation_MoveOrder(t *testing.T) {
	tm := NewTestMatch()
	tm.State.EnqueueBaseCommand(0, MoveCommand(Vec2{20, 45}))
	tm.RunSeconds(8) // 10m at 1.5 m/s

	b := tm.State.Bases[0]
	if d := b.Pos.Dist(Vec2{20, 45}); d > baseArrive+0.2 {
		t.Fatalf("base stopped %.2fm from its relocation target", d)
	}
	if b.MoveTarget != nil {
		t.Fatal("arrived base should clear its move target")
	}
}
