package sim

import "math"

// beginAbilityCast consumes an ability command node. If the ability is not
// ready (mid-telegraph, mid-channel, or cooling down) the node was still
// consumed: queued ability orders are fire-and-forget, never retried.
func (s *State) beginAbilityCast(u *Unit, node CommandNode) {
	a := &u.Ability
	if a.Phase != AbilityReady || a.Cooldown > 0 {
		return
	}
	st := u.Kind.Stats()

	a.Origin = node.Origin
	a.Direction = node.Direction.Normalize()
	if a.Direction.LenSq() == 0 {
		a.Direction = Vec2{X: 1}
	}
	// Point-targeted casts clamp the commanded point to ability range.
	if st.AbilityRange > 0 {
		to := a.Origin.Sub(u.Pos)
		if to.Len() > st.AbilityRange {
			a.Origin = u.Pos.Add(to.Normalize().Scale(st.AbilityRange))
		}
	}
	a.Cooldown = st.AbilityCooldown
	s.emit(Effect{Kind: EffectAbilityCast, Owner: u.Owner, UnitID: u.ID,
		Pos: u.Pos, Ability: st.Ability})

	switch {
	case st.TelegraphTime > 0:
		a.Phase = AbilityTelegraphing
		a.Timer = st.TelegraphTime
		s.emit(Effect{Kind: EffectTelegraph, Owner: u.Owner, UnitID: u.ID,
			Pos: a.Origin, Ability: st.Ability, Value: st.TelegraphTime})
	case st.ChannelHits > 0:
		a.Phase = AbilityExecuting
		a.HitsLeft = st.ChannelHits
		a.Timer = 0 // first channel hit lands on the next combat phase
	default:
		s.resolveInstant(u)
	}
}

// advanceAbility ticks the per-unit ability state machine: cooldown always
// counts down; a telegraph fires when its timer expires; a channel emits
// hits on its interval until exhausted.
func (s *State) advanceAbility(u *Unit, dt float64) {
	a := &u.Ability
	if a.Cooldown > 0 {
		a.Cooldown -= dt
		if a.Cooldown < 0 {
			a.Cooldown = 0
		}
	}
	switch a.Phase {
	case AbilityReady:
	case AbilityTelegraphing:
		a.Timer -= dt
		if a.Timer <= 0 {
			s.resolveTelegraphed(u)
			a.Phase = AbilityReady
			a.Timer = 0
		}
	case AbilityExecuting:
		a.Timer -= dt
		for a.Timer <= 0 && a.HitsLeft > 0 && u.Alive() {
			s.resolveChannelHit(u)
			a.HitsLeft--
			a.Timer += u.Kind.Stats().ChannelInterval
		}
		if a.HitsLeft <= 0 {
			a.Phase = AbilityReady
			a.Timer = 0
		}
	}
}

// resolveInstant handles the abilities with no telegraph and no channel:
// they take effect entirely at cast time.
func (s *State) resolveInstant(u *Unit) {
	st := u.Kind.Stats()
	switch st.Ability {
	case AbilityHealPulse:
		for _, v := range s.Units {
			if v.Owner != u.Owner || !v.Alive() {
				continue
			}
			if u.Pos.Dist(v.Pos) > st.AbilityRadius {
				continue
			}
			if healed := s.healUnit(v, st.AbilityDamage); healed > 0 {
				s.emit(Effect{Kind: EffectHeal, Owner: u.Owner, UnitID: v.ID,
					Pos: v.Pos, Ability: st.Ability, Value: healed})
			}
		}
	case AbilityShieldDome:
		for _, v := range s.Units {
			if v.Owner != u.Owner || !v.Alive() {
				continue
			}
			if u.Pos.Dist(v.Pos) > st.AbilityRadius {
				continue
			}
			if v.ShieldTimer < st.AbilityDuration {
				v.ShieldTimer = st.AbilityDuration
			}
			s.emit(Effect{Kind: EffectShield, Owner: u.Owner, UnitID: v.ID,
				Pos: v.Pos, Ability: st.Ability, Value: st.AbilityDuration})
		}
	case AbilityCloak:
		u.CloakTimer = st.AbilityDuration
	}
}

// resolveTelegraphed fires the abilities that warn before they land.
func (s *State) resolveTelegraphed(u *Unit) {
	st := u.Kind.Stats()
	switch st.Ability {
	case AbilityBombardment:
		at := u.Ability.Origin
		dmg := st.AbilityDamage * u.DamageMultiplier
		s.splashAround(u.Owner, nil, at, st.AbilityRadius, dmg, AttackRanged)
		s.emit(Effect{Kind: EffectAbilityHit, Owner: u.Owner, UnitID: u.ID,
			Pos: at, Ability: st.Ability, Value: dmg})
	case AbilityLineJump:
		s.resolveLineJump(u)
	}
}

// resolveLineJump dashes the brawler along its aim direction, damaging
// every enemy within the dash corridor. Melee damage: armor is ignored.
func (s *State) resolveLineJump(u *Unit) {
	st := u.Kind.Stats()
	from := u.Pos
	dest := from.Add(u.Ability.Direction.Scale(st.AbilityRange))
	// Back off along the dash line until the landing spot is clear.
	for f := 1.0; f >= 0.25; f -= 0.25 {
		cand := from.Lerp(dest, f)
		if s.positionClear(u, cand, false) {
			dest = cand
			break
		}
		if f <= 0.25 {
			dest = from
		}
	}
	dmg := st.AbilityDamage * u.DamageMultiplier
	for _, v := range s.Units {
		if v.Owner == u.Owner || !v.Alive() {
			continue
		}
		if v.Kind.Stats().Flying {
			continue
		}
		if distToSegment(v.Pos, from, dest) > st.AbilityRadius {
			continue
		}
		s.hitUnit(u.Owner, v, dmg, AttackMelee)
	}
	u.Pos = dest
	u.resetStuck()
	s.emit(Effect{Kind: EffectAbilityHit, Owner: u.Owner, UnitID: u.ID,
		Pos: from, To: dest, Ability: st.Ability, Value: dmg})
}

// resolveChannelHit lands one sub-hit of a channeled ability. Burst fire
// hammers the nearest targetable enemy; the missile barrage picks a random
// targetable enemy per missile from the seeded stream.
func (s *State) resolveChannelHit(u *Unit) {
	st := u.Kind.Stats()
	var candidates []*Unit
	for _, v := range s.Units {
		if v.Owner == u.Owner || !v.Alive() || v.Cloaked() {
			continue
		}
		// Channeled fire tracks flyers; only auto-attacks cannot.
		if u.Pos.Dist(v.Pos) <= st.AbilityRange {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return
	}

	var target *Unit
	switch st.Ability {
	case AbilityMissileBarrage:
		target = candidates[s.rng.Intn(len(candidates))]
	default:
		target = candidates[0]
		bestD := u.Pos.Dist(target.Pos)
		for _, v := range candidates[1:] {
			if d := u.Pos.Dist(v.Pos); d < bestD {
				target = v
				bestD = d
			}
		}
	}

	dmg := st.AbilityDamage * u.DamageMultiplier
	s.hitUnit(u.Owner, target, dmg, AttackRanged)
	s.emit(Effect{Kind: EffectAbilityHit, Owner: u.Owner, UnitID: target.ID,
		Pos: target.Pos, Ability: st.Ability, Value: dmg})
}

// distToSegment is the distance from p to the segment a→b.
func distToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.LenSq()
	if l2 == 0 {
		return p.Dist(a)
	}
	t := clamp01(p.Sub(a).Dot(ab) / l2)
	return p.Dist(a.Add(ab.Scale(t)))
}

// fireBaseLaser resolves a base's ability command: a ray along the aim
// direction that damages the first thing it crosses. The laser is the one
// weapon that hits flying and cloaked units.
func (s *State) fireBaseLaser(b *Base, node CommandNode) {
	if b.LaserCooldown > 0 {
		return
	}
	dir := node.Direction.Normalize()
	if dir.LenSq() == 0 {
		return
	}
	b.LaserCooldown = LaserCooldown

	end := b.Pos.Add(dir.Scale(LaserRange))
	var hitUnit *Unit
	hitD := math.Inf(1)
	for _, v := range s.Units {
		if v.Owner == b.Owner || !v.Alive() {
			continue
		}
		d := distToSegment(v.Pos, b.Pos, end)
		if d > v.Kind.Stats().Radius+0.3 {
			continue
		}
		along := b.Pos.Dist(v.Pos)
		if along < hitD {
			hitUnit = v
			hitD = along
		}
	}

	enemy := s.Bases[1-b.Owner]
	hitsBase := enemy != nil && enemy.Alive() &&
		distToSegment(enemy.Pos, b.Pos, end) <= BaseRadius

	switch {
	case hitUnit != nil && (!hitsBase || hitD < b.Pos.Dist(enemy.Pos)):
		s.applyDamage(b.Owner, hitUnit, laserUnitDamage)
		end = hitUnit.Pos
	case hitsBase:
		s.hitBase(b.Owner, enemy, laserBaseDamage)
		end = enemy.Pos
	}
	s.emit(Effect{Kind: EffectLaser, Owner: b.Owner, UnitID: -1,
		Pos: b.Pos, To: end})
}
