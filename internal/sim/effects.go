package sim

// EffectKind tags one entry in the per-tick effect log. Combat and ability
// resolution emit these records instead of calling presentation code; the
// renderer reads the log after each Update.
type EffectKind int

const (
	EffectHitSpark EffectKind = iota
	EffectAbilityCast
	EffectTelegraph
	EffectAbilityHit
	EffectHeal
	EffectShield
	EffectLaser
	EffectDeath
	EffectPromotion
	EffectSpawn
)

func (k EffectKind) String() string {
	switch k {
	case EffectHitSpark:
		return "hit_spark"
	case EffectAbilityCast:
		return "ability_cast"
	case EffectTelegraph:
		return "telegraph"
	case EffectAbilityHit:
		return "ability_hit"
	case EffectHeal:
		return "heal"
	case EffectShield:
		return "shield"
	case EffectLaser:
		return "laser"
	case EffectDeath:
		return "death"
	case EffectPromotion:
		return "promotion"
	case EffectSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// Effect is one structured "effect requested" record.
type Effect struct {
	Kind    EffectKind
	Owner   int  // acting player
	UnitID  int  // subject unit, -1 for base/area effects
	Pos     Vec2 // effect location
	To      Vec2 // secondary point (laser endpoint, jump destination)
	Ability AbilityKind
	Value   float64 // damage dealt, heal amount, telegraph delay
}

func (s *State) emit(e Effect) {
	s.Effects = append(s.Effects, e)
}
