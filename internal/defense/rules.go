package defense

// Rule is one row of a defense table: when Applies holds, Key is filled with
// Label, the value and weapon ref returned by Value, and Cost.
type Rule struct {
	Key     Key
	Label   Label
	Cost    int
	Applies func(weapon Item, actor Actor) bool
	Value   func(weapon Item, actor Actor) (value int, weaponRef string)
}

// Evaluate runs every rule in order and collects the ones that apply.
// A nil weapon or actor yields an empty set.
func Evaluate(rules []Rule, weapon Item, actor Actor) Set {
	out := Set{}
	if weapon == nil || actor == nil {
		return out
	}
	for _, r := range rules {
		if r.Applies != nil && !r.Applies(weapon, actor) {
			continue
		}
		v, ref := r.Value(weapon, actor)
		if v < 0 {
			v = 0
		}
		out[r.Key] = Option{
			Label:          r.Label,
			Value:          v,
			InitiativeCost: r.Cost,
			WeaponRef:      ref,
		}
	}
	return out
}

// Config carries rule switches. The zero value is the current rule set.
type Config struct {
	// FullDefense is reserved for the Full Defense toggle: spending
	// FullDefenseInitiativeCost once to use every active defense for free
	// until the end of the round, offered under LabelFullDefense. It is
	// accepted but has no effect yet, and when it lands it must only widen
	// availability, never change option shapes.
	FullDefense bool
}

// ActiveDefenses returns the active defenses available against weapon.
func ActiveDefenses(weapon Item, actor Actor) Set {
	return Config{}.ActiveDefenses(weapon, actor)
}

// PassiveDefenses returns the passive defenses of actor.
func PassiveDefenses(weapon Item, actor Actor) Set {
	return Config{}.PassiveDefenses(weapon, actor)
}

// ActiveDefenses returns the active defenses available against weapon under c.
func (c Config) ActiveDefenses(weapon Item, actor Actor) Set {
	return Evaluate(activeRules, weapon, actor)
}

// PassiveDefenses returns the passive defenses of actor under c. weapon is
// accepted for symmetry; every passive defense is surfaced for every attack
// and filtering is left to the caller.
func (c Config) PassiveDefenses(weapon Item, actor Actor) Set {
	if actor == nil {
		return Set{}
	}
	if weapon == nil {
		weapon = noWeapon{}
	}
	return Evaluate(passiveRules, weapon, actor)
}

// noWeapon lets the passive table run when the attack item is unknown.
type noWeapon struct{}

func (noWeapon) IsSpell() bool        { return false }
func (noWeapon) IsMeleeWeapon() bool  { return false }
func (noWeapon) IsRangedWeapon() bool { return false }
func (noWeapon) IsShield() bool       { return false }
func (noWeapon) Block() int           { return 0 }
func (noWeapon) Reach() int           { return 0 }
func (noWeapon) Ref() string          { return "" }
