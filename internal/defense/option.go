// Package defense derives which defenses a combatant may use against an
// incoming attack, with the strength and initiative cost of each.
package defense

import "sort"

// Key identifies a kind of defense inside a Set.
type Key string

const (
	Dodge    Key = "dodge"
	Block    Key = "block"
	Parry    Key = "parry"
	Physical Key = "physical"
	Mental   Key = "mental"
)

// Label is an opaque display key. It is attached to options but never rendered here.
type Label string

const (
	LabelDodge          Label = "DEFENSE.Dodge"
	LabelBlock          Label = "DEFENSE.Block"
	LabelParry          Label = "DEFENSE.Parry"
	LabelPhysicalResist Label = "DEFENSE.PhysicalResist"
	LabelMentalResist   Label = "DEFENSE.MentalResist"
	LabelFullDefense    Label = "DEFENSE.FullDefense"
	LabelAttackDodged   Label = "TEST_RESULTS.AttackDodged"
	LabelAttackHits     Label = "TEST_RESULTS.AttackHits"
)

// Initiative costs. Costs are never positive.
const (
	PassiveInitiativeCost     = 0
	ActiveInitiativeCost      = -5
	FullDefenseInitiativeCost = -10 // reserved, see Config.FullDefense
)

// Option is one candidate defense.
type Option struct {
	Label          Label  `json:"label"`
	Value          int    `json:"value"`
	InitiativeCost int    `json:"initMod"`
	WeaponRef      string `json:"weapon,omitempty"`
	// Disabled marks an option that is present but currently unusable.
	// No rule sets it yet; consumers must still honor it.
	Disabled bool `json:"disabled,omitempty"`
}

// Usable reports whether the option may be chosen.
func (o Option) Usable() bool {
	return !o.Disabled
}

// Set maps a defense kind to its single option. Active and passive sets share
// this shape but are never merged.
type Set map[Key]Option

// Get returns the option stored under k.
func (s Set) Get(k Key) (Option, bool) {
	o, ok := s[k]
	return o, ok
}

// Has reports whether k is present.
func (s Set) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Keys returns the keys in lexical order so callers get stable output.
func (s Set) Keys() []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
