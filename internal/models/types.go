package models

import "github.com/pefman/duel-defense/internal/defense"

// ========================= Domain Models =========================
// Actor and item records as they arrive from clients. They satisfy the
// read-only views in package defense and are never mutated by rule code.

type ItemType string

const (
	ItemWeapon ItemType = "weapon"
	ItemSpell  ItemType = "spell"
	ItemShield ItemType = "shield"
	ItemArmor  ItemType = "armor"
)

type WeaponCategory string

const (
	WeaponMelee  WeaponCategory = "melee"
	WeaponRanged WeaponCategory = "range"
	WeaponThrown WeaponCategory = "thrown"
)

type ShieldCategory string

const (
	ShieldNone    ShieldCategory = ""
	ShieldBuckler ShieldCategory = "buckler"
	ShieldMedium  ShieldCategory = "medium"
	ShieldHeavy   ShieldCategory = "heavy"
	ShieldTower   ShieldCategory = "tower"
)

type WeaponData struct {
	Category WeaponCategory `json:"category"`
	Reach    int            `json:"reach,omitempty"`
}

type ShieldData struct {
	Category ShieldCategory `json:"category,omitempty"`
	Block    int            `json:"block"`
}

type Item struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     ItemType    `json:"type"`
	Equipped bool        `json:"equipped,omitempty"`
	Weapon   *WeaponData `json:"weapon,omitempty"`
	Shield   *ShieldData `json:"shield,omitempty"`
}

func (i Item) IsSpell() bool { return i.Type == ItemSpell }

func (i Item) IsMeleeWeapon() bool {
	return i.Type == ItemWeapon && i.Weapon != nil && i.Weapon.Category == WeaponMelee
}

func (i Item) IsRangedWeapon() bool {
	return i.Type == ItemWeapon && i.Weapon != nil && i.Weapon.Category == WeaponRanged
}

func (i Item) IsShield() bool { return i.Type == ItemShield }

func (i Item) Block() int {
	if i.Shield == nil {
		return 0
	}
	return i.Shield.Block
}

func (i Item) Reach() int {
	if i.Weapon == nil {
		return 0
	}
	return i.Weapon.Reach
}

// Ref prefers the id and falls back to the name.
func (i Item) Ref() string {
	if i.ID != "" {
		return i.ID
	}
	return i.Name
}

type Actor struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Attributes      map[string]int `json:"attributes"`
	Skills          map[string]int `json:"skills,omitempty"`           // active skills
	KnowledgeSkills map[string]int `json:"knowledge_skills,omitempty"` // everything else
	Items           []Item         `json:"items,omitempty"`
}

func (a *Actor) Identifier() string { return a.ID }

func (a *Actor) ActiveSkill(key string) (int, bool) {
	v, ok := a.Skills[key]
	return v, ok
}

func (a *Actor) Skill(key string) (int, bool) {
	if v, ok := a.Skills[key]; ok {
		return v, true
	}
	v, ok := a.KnowledgeSkills[key]
	return v, ok
}

func (a *Actor) Attribute(key string) int { return a.Attributes[key] }

func (a *Actor) EquippedShields() []defense.Item {
	return a.equipped(Item.IsShield)
}

func (a *Actor) EquippedWeapons() []defense.Item {
	return a.equipped(func(i Item) bool { return i.Type == ItemWeapon })
}

func (a *Actor) equipped(keep func(Item) bool) []defense.Item {
	var out []defense.Item
	for _, it := range a.Items {
		if it.Equipped && keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// FindItem looks an item up by id, then by name.
func (a *Actor) FindItem(ref string) (Item, bool) {
	for _, it := range a.Items {
		if it.ID == ref {
			return it, true
		}
	}
	for _, it := range a.Items {
		if it.Name == ref {
			return it, true
		}
	}
	return Item{}, false
}

var (
	_ defense.Item  = Item{}
	_ defense.Actor = (*Actor)(nil)
)
