package defense

// Item is the read-only view of a piece of equipment or a spell. The attacking
// weapon and the defender's gear are both seen through it.
type Item interface {
	IsSpell() bool
	IsMeleeWeapon() bool
	IsRangedWeapon() bool
	IsShield() bool
	// Block is the shield block rating; zero for anything that is not a shield.
	Block() int
	// Reach is the melee reach; zero for anything without one.
	Reach() int
	// Ref identifies the item for display attribution.
	Ref() string
}

// Actor is the read-only view of a defending combatant.
type Actor interface {
	// ActiveSkill returns the rating of an active skill, ok is false if the actor lacks it.
	ActiveSkill(key string) (int, bool)
	// Skill looks a skill up across every skill group.
	Skill(key string) (int, bool)
	// Attribute returns the attribute value, zero when unknown.
	Attribute(key string) int
	EquippedShields() []Item
	EquippedWeapons() []Item
}

// Skill and attribute keys read by the rule tables.
const (
	SkillDodge        = "dodge"
	SkillPerseverance = "perseverance"

	AttributeReaction  = "reaction"
	AttributeIntuition = "intuition"
	AttributeBody      = "body"
	AttributeAgility   = "agility"
	AttributeWillpower = "willpower"
	AttributeCharisma  = "charisma"
)

func activeSkill(a Actor, key string) int {
	v, ok := a.ActiveSkill(key)
	if !ok {
		return 0
	}
	return v
}

func skill(a Actor, key string) int {
	v, ok := a.Skill(key)
	if !ok {
		return 0
	}
	return v
}
