package defense

// activeRules lists the active defenses. Each costs initiative except the spell
// resistances, which only exist as active options against spells.
var activeRules = []Rule{
	{
		// Spells, melee weapons and ranged weapons can be dodged.
		Key:     Dodge,
		Label:   LabelDodge,
		Cost:    ActiveInitiativeCost,
		Applies: func(w Item, _ Actor) bool { return w.IsSpell() || w.IsMeleeWeapon() || w.IsRangedWeapon() },
		Value: func(_ Item, a Actor) (int, string) {
			return activeSkill(a, SkillDodge), ""
		},
	},
	{
		// Melee and ranged attacks can be blocked while a shield is equipped.
		Key:   Block,
		Label: LabelBlock,
		Cost:  ActiveInitiativeCost,
		Applies: func(w Item, a Actor) bool {
			if !w.IsMeleeWeapon() && !w.IsRangedWeapon() {
				return false
			}
			_, ok := bestShield(a)
			return ok
		},
		Value: func(_ Item, a Actor) (int, string) {
			s, _ := bestShield(a)
			return s.Block(), ""
		},
	},
	{
		// Melee attacks can be parried, with or without a melee weapon in hand.
		Key:     Parry,
		Label:   LabelParry,
		Cost:    ActiveInitiativeCost,
		Applies: func(w Item, _ Actor) bool { return w.IsMeleeWeapon() },
		Value: func(w Item, a Actor) (int, string) {
			pw := parryWeapon(w, a)
			if pw == nil {
				return 0, ""
			}
			return pw.Reach(), pw.Ref()
		},
	},
	{
		// Suspected defect: physical and mental both read perseverance. The
		// passive split (body+agility, willpower+charisma) hints they should
		// differ; kept until the rule is confirmed.
		Key:     Physical,
		Label:   LabelPhysicalResist,
		Cost:    PassiveInitiativeCost,
		Applies: func(w Item, _ Actor) bool { return w.IsSpell() },
		Value: func(_ Item, a Actor) (int, string) {
			return skill(a, SkillPerseverance), ""
		},
	},
	{
		Key:     Mental,
		Label:   LabelMentalResist,
		Cost:    PassiveInitiativeCost,
		Applies: func(w Item, _ Actor) bool { return w.IsSpell() },
		Value: func(_ Item, a Actor) (int, string) {
			return skill(a, SkillPerseverance), ""
		},
	},
}

// bestShield returns the equipped shield with the highest block rating. The
// first shield wins ties.
func bestShield(a Actor) (Item, bool) {
	var best Item
	for _, it := range a.EquippedShields() {
		if it == nil || !it.IsShield() {
			continue
		}
		if best == nil || it.Block() > best.Block() {
			best = it
		}
	}
	return best, best != nil
}

// parryWeapon picks the defending melee weapon used to parry.
//
// Suspected defect: each candidate is accepted when the attacking weapon's
// reach beats the current pick's reach, so the attacker's reach is the
// comparison seed instead of the candidate's own. Kept as is until the rule is
// confirmed; an attacker with reach 0 never selects a parry weapon.
func parryWeapon(attack Item, a Actor) Item {
	var pick Item
	for _, it := range a.EquippedWeapons() {
		if it == nil || !it.IsMeleeWeapon() {
			continue
		}
		cur := 0
		if pick != nil {
			cur = pick.Reach()
		}
		if attack.Reach() > cur {
			pick = it
		}
	}
	return pick
}
