package defense

type fakeItem struct {
	ref    string
	spell  bool
	melee  bool
	ranged bool
	shield bool
	block  int
	reach  int
}

func (f fakeItem) IsSpell() bool        { return f.spell }
func (f fakeItem) IsMeleeWeapon() bool  { return f.melee }
func (f fakeItem) IsRangedWeapon() bool { return f.ranged }
func (f fakeItem) IsShield() bool       { return f.shield }
func (f fakeItem) Block() int           { return f.block }
func (f fakeItem) Reach() int           { return f.reach }
func (f fakeItem) Ref() string          { return f.ref }

type fakeActor struct {
	active     map[string]int
	skills     map[string]int
	attributes map[string]int
	shields    []Item
	weapons    []Item
}

func (f fakeActor) ActiveSkill(key string) (int, bool) {
	v, ok := f.active[key]
	return v, ok
}

func (f fakeActor) Skill(key string) (int, bool) {
	if v, ok := f.skills[key]; ok {
		return v, true
	}
	return f.ActiveSkill(key)
}

func (f fakeActor) Attribute(key string) int { return f.attributes[key] }
func (f fakeActor) EquippedShields() []Item  { return f.shields }
func (f fakeActor) EquippedWeapons() []Item  { return f.weapons }

func melee(ref string, reach int) fakeItem  { return fakeItem{ref: ref, melee: true, reach: reach} }
func shield(ref string, block int) fakeItem { return fakeItem{ref: ref, shield: true, block: block} }

var (
	meleeAttack  = fakeItem{ref: "attack-blade", melee: true, reach: 1}
	rangedAttack = fakeItem{ref: "attack-pistol", ranged: true}
	spellAttack  = fakeItem{ref: "attack-manabolt", spell: true}
	plainAttack  = fakeItem{ref: "attack-nothing"}
)
