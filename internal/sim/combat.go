package sim

// Combat tuning.
const (
	shieldMitigation = 0.35 // fraction of damage that passes a shield dome
	splashSmallMult  = 2.0  // small units take double area damage
	splashFraction   = 0.5  // area damage as a fraction of the direct hit

	healerAuraRate   = 2.0 // passive hp/s restored by healers
	healerAuraRadius = 4.0
)

// armorMitigated applies the diminishing-returns armor curve. Only ranged
// damage is mitigated; melee ignores armor entirely.
func armorMitigated(dmg, armor float64) float64 {
	return dmg * (1 - armor/(armor+100))
}

// resolveCombat is the combat phase of a tick: status timers, the ability
// state machine, auto-attacks, healer auras, and finally same-tick removal
// of anything that died.
func (s *State) resolveCombat(dt float64) {
	for _, u := range s.Units {
		if !u.Alive() {
			continue
		}
		if u.ShieldTimer > 0 {
			u.ShieldTimer -= dt
		}
		if u.CloakTimer > 0 {
			u.CloakTimer -= dt
		}
		s.advanceAbility(u, dt)
	}
	for _, u := range s.Units {
		if !u.Alive() {
			continue
		}
		st := u.Kind.Stats()
		if st.Healer {
			s.healerAura(u, dt)
		}
		s.autoAttack(u, dt)
	}
	s.removeDead()
}

// autoAttack fires at the nearest targetable enemy unit, or at the enemy
// base when no unit is in range. Flying and cloaked units are never valid
// auto-attack targets.
func (s *State) autoAttack(u *Unit, dt float64) {
	st := u.Kind.Stats()
	if u.attackTimer > 0 {
		u.attackTimer -= dt
	}
	if st.AttackType == AttackNone || u.attackTimer > 0 {
		return
	}

	if target := s.nearestTargetable(u, st.AttackRange); target != nil {
		dmg := st.AttackDamage * u.DamageMultiplier
		s.hitUnit(u.Owner, target, dmg, st.AttackType)
		s.emit(Effect{Kind: EffectHitSpark, Owner: u.Owner, UnitID: target.ID,
			Pos: target.Pos, Value: dmg})
		if st.SplashRadius > 0 {
			s.splashAround(u.Owner, target, target.Pos, st.SplashRadius,
				dmg*splashFraction, st.AttackType)
		}
		u.attackTimer = 1 / st.AttackRate
		return
	}

	if b := s.enemyBaseInRange(u.Owner, u.Pos, st.AttackRange); b != nil {
		dmg := st.AttackDamage * u.DamageMultiplier
		s.hitBase(u.Owner, b, dmg)
		s.emit(Effect{Kind: EffectHitSpark, Owner: u.Owner, UnitID: -1,
			Pos: b.Pos, Value: dmg})
		u.attackTimer = 1 / st.AttackRate
	}
}

// nearestTargetable returns the closest living enemy unit within range that
// auto-attacks may hit: grounded and not cloaked.
func (s *State) nearestTargetable(u *Unit, rng float64) *Unit {
	var best *Unit
	bestD := rng
	for _, v := range s.Units {
		if v.Owner == u.Owner || !v.Alive() {
			continue
		}
		vs := v.Kind.Stats()
		if vs.Flying || v.Cloaked() {
			continue
		}
		d := u.Pos.Dist(v.Pos)
		if d <= bestD {
			best = v
			bestD = d
		}
	}
	return best
}

// enemyBaseInRange returns the opposing base if its edge is within range.
func (s *State) enemyBaseInRange(owner int, from Vec2, rng float64) *Base {
	b := s.Bases[1-owner]
	if b == nil || !b.Alive() {
		return nil
	}
	if from.Dist(b.Pos) <= rng+BaseRadius {
		return b
	}
	return nil
}

// hitUnit applies one direct hit: armor mitigation for ranged damage,
// shield mitigation when domed, then the shared damage bookkeeping.
func (s *State) hitUnit(attacker int, tgt *Unit, dmg float64, atype AttackType) {
	if atype == AttackRanged {
		dmg = armorMitigated(dmg, tgt.Kind.Stats().Armor)
	}
	if tgt.ShieldTimer > 0 {
		dmg *= shieldMitigation
	}
	s.applyDamage(attacker, tgt, dmg)
}

// splashAround damages every grounded enemy near the impact point except
// the direct-hit target. Small units take double area damage.
func (s *State) splashAround(attacker int, except *Unit, at Vec2, radius, dmg float64, atype AttackType) {
	for _, v := range s.Units {
		if v == except || v.Owner == attacker || !v.Alive() {
			continue
		}
		vs := v.Kind.Stats()
		if vs.Flying {
			continue
		}
		if at.Dist(v.Pos) > radius {
			continue
		}
		part := dmg
		if vs.Small {
			part *= splashSmallMult
		}
		s.hitUnit(attacker, v, part, atype)
	}
}

// applyDamage is the single mutation point for unit hit points going down.
// Death clears the queue and emits the death effect; the corpse is swept
// from the unit list at the end of the combat phase, within the same tick.
func (s *State) applyDamage(attacker int, tgt *Unit, dmg float64) {
	if dmg <= 0 || !tgt.Alive() {
		return
	}
	if dmg > tgt.HP {
		dmg = tgt.HP
	}
	tgt.HP -= dmg
	s.Stats.Players[attacker].DamageDealt += dmg
	if tgt.HP <= 0 {
		tgt.HP = 0
		tgt.Queue.Clear()
		s.Stats.Players[attacker].UnitsKilled++
		s.emit(Effect{Kind: EffectDeath, Owner: tgt.Owner, UnitID: tgt.ID, Pos: tgt.Pos})
	}
}

// hitBase damages a base. Bases have no armor and no shields.
func (s *State) hitBase(attacker int, b *Base, dmg float64) {
	if dmg <= 0 || !b.Alive() {
		return
	}
	if dmg > b.HP {
		dmg = b.HP
	}
	b.HP -= dmg
	s.Stats.Players[attacker].DamageDealt += dmg
}

// healUnit restores hit points, capped at the kind's maximum.
func (s *State) healUnit(tgt *Unit, amount float64) float64 {
	if !tgt.Alive() || amount <= 0 {
		return 0
	}
	max := tgt.Kind.Stats().MaxHP
	healed := amount
	if tgt.HP+healed > max {
		healed = max - tgt.HP
	}
	tgt.HP += healed
	return healed
}

// healerAura trickles health to the most wounded friendly nearby.
func (s *State) healerAura(u *Unit, dt float64) {
	var worst *Unit
	worstFrac := 1.0
	for _, v := range s.Units {
		if v == u || v.Owner != u.Owner || !v.Alive() {
			continue
		}
		if u.Pos.Dist(v.Pos) > healerAuraRadius {
			continue
		}
		frac := v.HP / v.Kind.Stats().MaxHP
		if frac < worstFrac {
			worst = v
			worstFrac = frac
		}
	}
	if worst != nil {
		s.healUnit(worst, healerAuraRate*dt)
	}
}

// removeDead sweeps dead units out of the collection. Dead units must be
// gone before the base and victory phases of the same tick run.
func (s *State) removeDead() {
	kept := s.Units[:0]
	for _, u := range s.Units {
		if u.Alive() {
			kept = append(kept, u)
		}
	}
	for i := len(kept); i < len(s.Units); i++ {
		s.Units[i] = nil
	}
	s.Units = kept
}
