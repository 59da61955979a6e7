package sim

import "math"

// UnitKind enumerates the trainable unit roster.
type UnitKind int

const (
	KindMarine UnitKind = iota
	KindBrawler
	KindMedic
	KindWarden
	KindMortar
	KindWasp
	KindShade
	unitKindCount
)

func (k UnitKind) String() string {
	switch k {
	case KindMarine:
		return "marine"
	case KindBrawler:
		return "brawler"
	case KindMedic:
		return "medic"
	case KindWarden:
		return "warden"
	case KindMortar:
		return "mortar"
	case KindWasp:
		return "wasp"
	case KindShade:
		return "shade"
	default:
		return "unknown"
	}
}

// AllKinds returns every trainable kind, in enum order.
func AllKinds() []UnitKind {
	out := make([]UnitKind, 0, unitKindCount)
	for k := UnitKind(0); k < unitKindCount; k++ {
		out = append(out, k)
	}
	return out
}

// AttackType distinguishes the melee/ranged asymmetry: ranged damage is
// mitigated by armor, melee damage ignores armor entirely.
type AttackType int

const (
	AttackNone AttackType = iota
	AttackMelee
	AttackRanged
)

func (a AttackType) String() string {
	switch a {
	case AttackNone:
		return "none"
	case AttackMelee:
		return "melee"
	case AttackRanged:
		return "ranged"
	default:
		return "unknown"
	}
}

// AbilityKind enumerates the one special ability each unit kind carries.
type AbilityKind int

const (
	AbilityBurstFire AbilityKind = iota
	AbilityLineJump
	AbilityHealPulse
	AbilityShieldDome
	AbilityBombardment
	AbilityMissileBarrage
	AbilityCloak
)

func (a AbilityKind) String() string {
	switch a {
	case AbilityBurstFire:
		return "burst_fire"
	case AbilityLineJump:
		return "line_jump"
	case AbilityHealPulse:
		return "heal_pulse"
	case AbilityShieldDome:
		return "shield_dome"
	case AbilityBombardment:
		return "bombardment"
	case AbilityMissileBarrage:
		return "missile_barrage"
	case AbilityCloak:
		return "cloak"
	default:
		return "unknown"
	}
}

// UnitStats is the immutable per-kind template. Distances are meters,
// rates are per second, damage is hit points.
type UnitStats struct {
	Cost   float64 // photons to train
	MaxHP  float64
	Speed  float64 // m/s
	Radius float64

	AttackType   AttackType
	AttackDamage float64
	AttackRate   float64 // attacks per second
	AttackRange  float64
	SplashRadius float64 // >0 means area damage; small units take double from it
	Armor        float64

	Flying bool // untargetable by auto-attacks; ignores ground obstacles
	Small  bool // takes double damage from splash sources
	Healer bool

	Ability          AbilityKind
	AbilityCooldown  float64
	TelegraphTime    float64 // telegraphed shapes only
	ChannelHits      int     // channeled shapes only
	ChannelInterval  float64
	AbilityDamage    float64 // damage (or heal amount) per effect
	AbilityRange     float64
	AbilityRadius    float64 // area of effect, or dash corridor half-width
	AbilityDuration  float64 // shield/cloak lifetime
}

var unitStatsTable = [unitKindCount]UnitStats{
	KindMarine: {
		Cost: 50, MaxHP: 100, Speed: 4.0, Radius: 0.5,
		AttackType: AttackRanged, AttackDamage: 10, AttackRate: 1.5, AttackRange: 12, Armor: 20,
		Ability: AbilityBurstFire, AbilityCooldown: 8,
		ChannelHits: 5, ChannelInterval: 0.12, AbilityDamage: 6, AbilityRange: 12,
	},
	KindBrawler: {
		Cost: 70, MaxHP: 220, Speed: 4.5, Radius: 0.6,
		AttackType: AttackMelee, AttackDamage: 24, AttackRate: 1.0, AttackRange: 1.6, Armor: 60,
		Ability: AbilityLineJump, AbilityCooldown: 10, TelegraphTime: 0.8,
		AbilityDamage: 30, AbilityRange: 8, AbilityRadius: 1.2,
	},
	KindMedic: {
		Cost: 60, MaxHP: 80, Speed: 4.2, Radius: 0.45,
		AttackType: AttackNone, Armor: 10, Small: true, Healer: true,
		Ability: AbilityHealPulse, AbilityCooldown: 6,
		AbilityDamage: 30, AbilityRadius: 5,
	},
	KindWarden: {
		Cost: 90, MaxHP: 160, Speed: 3.6, Radius: 0.6,
		AttackType: AttackRanged, AttackDamage: 12, AttackRate: 0.8, AttackRange: 10, Armor: 80,
		Ability: AbilityShieldDome, AbilityCooldown: 14,
		AbilityRadius: 6, AbilityDuration: 3,
	},
	KindMortar: {
		Cost: 100, MaxHP: 90, Speed: 3.0, Radius: 0.5,
		AttackType: AttackRanged, AttackDamage: 16, AttackRate: 0.5, AttackRange: 16,
		SplashRadius: 2.5, Armor: 20, Small: true,
		Ability: AbilityBombardment, AbilityCooldown: 16, TelegraphTime: 2.0,
		AbilityDamage: 60, AbilityRange: 24, AbilityRadius: 3,
	},
	KindWasp: {
		Cost: 80, MaxHP: 70, Speed: 6.0, Radius: 0.45,
		AttackType: AttackRanged, AttackDamage: 7, AttackRate: 2.0, AttackRange: 8, Armor: 0,
		Flying: true,
		Ability: AbilityMissileBarrage, AbilityCooldown: 12,
		ChannelHits: 4, ChannelInterval: 0.25, AbilityDamage: 12, AbilityRange: 10,
	},
	KindShade: {
		Cost: 85, MaxHP: 110, Speed: 5.2, Radius: 0.5,
		AttackType: AttackMelee, AttackDamage: 20, AttackRate: 1.2, AttackRange: 1.5, Armor: 30,
		Small: true,
		Ability: AbilityCloak, AbilityCooldown: 12, AbilityDuration: 4,
	},
}

// Stats returns the template for this kind.
func (k UnitKind) Stats() UnitStats {
	if k < 0 || k >= unitKindCount {
		return UnitStats{}
	}
	return unitStatsTable[k]
}

// AbilityPhase is the execution state of a unit's one special ability.
type AbilityPhase int

const (
	AbilityReady AbilityPhase = iota
	AbilityTelegraphing
	AbilityExecuting
)

func (p AbilityPhase) String() string {
	switch p {
	case AbilityReady:
		return "ready"
	case AbilityTelegraphing:
		return "telegraphing"
	case AbilityExecuting:
		return "executing"
	default:
		return "unknown"
	}
}

// AbilityState is the consolidated per-unit ability state machine:
// Ready → (cast) Telegraphing → Executing → Ready, with Cooldown gating
// the next cast rather than the queueing of one.
type AbilityState struct {
	Phase     AbilityPhase
	Cooldown  float64 // seconds until the ability may fire again
	Timer     float64 // countdown within the current phase
	HitsLeft  int     // remaining sub-hits for channeled shapes
	Origin    Vec2    // captured at cast
	Direction Vec2
}

// FieldParticle is a cosmetic trail element attached to a unit. It never
// affects simulation decisions but is part of the unit's lifecycle so the
// renderer can drain it.
type FieldParticle struct {
	Pos      Vec2
	Vel      Vec2
	Age      float64
	Lifetime float64
}

// Unit is a mobile entity owned by the simulation's unit collection.
type Unit struct {
	ID    int
	Kind  UnitKind
	Owner int
	Pos   Vec2
	HP    float64

	Queue            CommandQueue
	DamageMultiplier float64 // ≥1, compounding via promotion
	DistanceTraveled float64
	distanceCredit   float64 // carry toward the next promotion stride

	Ability     AbilityState
	ShieldTimer float64 // >0 while protected by a shield dome
	CloakTimer  float64 // >0 while cloaked (untargetable by auto-attacks)

	Particles []FieldParticle

	// Movement transients.
	velocity      Vec2
	smoothedForce Vec2    // temporally blended flocking force
	stuckGoal     Vec2    // target the stuck tracker is primed against
	stuckBest     float64 // closest distance to stuckGoal achieved so far
	stuckTimer    float64
	jitterPhase   float64
	resisting     bool // a collision is actively being resisted
	attackTimer   float64
}

// newUnit builds a unit at full health with an empty queue.
func newUnit(id int, kind UnitKind, owner int, pos Vec2) *Unit {
	return &Unit{
		ID:               id,
		Kind:             kind,
		Owner:            owner,
		Pos:              pos,
		HP:               kind.Stats().MaxHP,
		DamageMultiplier: 1,
		stuckBest:        math.Inf(1),
	}
}

// Alive reports whether the unit is still in play this tick.
func (u *Unit) Alive() bool { return u.HP > 0 }

// Cloaked reports whether the unit is currently hidden from auto-attacks.
func (u *Unit) Cloaked() bool { return u.CloakTimer > 0 }

// moving reports whether the unit is actively executing a move order.
// Flocking neighbours are restricted to moving friendlies.
func (u *Unit) moving() bool {
	head, ok := u.Queue.Head()
	return ok && head.Kind == CommandMove
}

// Velocity exposes the current velocity for read-only consumers.
func (u *Unit) Velocity() Vec2 { return u.velocity }
