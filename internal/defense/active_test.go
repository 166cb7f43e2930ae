package defense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestActiveDefensesMeleeWithoutGear(t *testing.T) {
	actor := fakeActor{active: map[string]int{SkillDodge: 4}}

	got := ActiveDefenses(meleeAttack, actor)

	assert.Equal(t, []Key{Dodge, Parry}, got.Keys())
	assert.Equal(t, Option{Label: LabelDodge, Value: 4, InitiativeCost: -5}, got[Dodge])
	assert.Equal(t, 0, got[Parry].Value)
	assert.Equal(t, "", got[Parry].WeaponRef)
	assert.False(t, got.Has(Block))
}

func TestActiveDefensesSpell(t *testing.T) {
	actor := fakeActor{
		active: map[string]int{SkillDodge: 2},
		skills: map[string]int{SkillPerseverance: 3},
	}

	got := ActiveDefenses(spellAttack, actor)

	assert.Equal(t, []Key{Dodge, Mental, Physical}, got.Keys())
	assert.Equal(t, got[Physical].Value, got[Mental].Value)
	assert.Equal(t, 3, got[Physical].Value)
	assert.Equal(t, 0, got[Physical].InitiativeCost)
	assert.Equal(t, 0, got[Mental].InitiativeCost)
	assert.Equal(t, LabelPhysicalResist, got[Physical].Label)
	assert.Equal(t, LabelMentalResist, got[Mental].Label)
}

func TestActiveDefensesRangedPicksHighestShield(t *testing.T) {
	actor := fakeActor{shields: []Item{shield("buckler", 2), shield("tower", 5)}}

	got := ActiveDefenses(rangedAttack, actor)

	assert.Equal(t, []Key{Block, Dodge}, got.Keys())
	assert.Equal(t, Option{Label: LabelBlock, Value: 5, InitiativeCost: -5}, got[Block])
}

func TestActiveDefensesZeroRatedShieldStillBlocks(t *testing.T) {
	for _, attack := range []Item{meleeAttack, rangedAttack} {
		actor := fakeActor{shields: []Item{shield("cardboard", 0)}}

		got := ActiveDefenses(attack, actor)

		require.True(t, got.Has(Block), attack.Ref())
		assert.Equal(t, Option{Label: LabelBlock, Value: 0, InitiativeCost: -5}, got[Block])
	}
}

func TestActiveDefensesMeleeFullKit(t *testing.T) {
	attack := melee("attacker-staff", 3)
	actor := fakeActor{
		active:  map[string]int{SkillDodge: 5},
		weapons: []Item{melee("katana", 2)},
		shields: []Item{shield("riot-shield", 4)},
	}

	got := ActiveDefenses(attack, actor)

	assert.Equal(t, Set{
		Dodge: {Label: LabelDodge, Value: 5, InitiativeCost: -5},
		Block: {Label: LabelBlock, Value: 4, InitiativeCost: -5},
		Parry: {Label: LabelParry, Value: 2, InitiativeCost: -5, WeaponRef: "katana"},
	}, got)
}

func TestActiveDefensesWithoutAttackType(t *testing.T) {
	actor := fakeActor{
		active:  map[string]int{SkillDodge: 5},
		shields: []Item{shield("riot-shield", 4)},
	}
	assert.Empty(t, ActiveDefenses(plainAttack, actor))
}

func TestActiveDefensesNilInputs(t *testing.T) {
	assert.Empty(t, ActiveDefenses(nil, fakeActor{}))
	assert.Empty(t, ActiveDefenses(meleeAttack, nil))
}

func TestActiveDefensesFullDefenseReserved(t *testing.T) {
	actor := fakeActor{
		active:  map[string]int{SkillDodge: 3},
		shields: []Item{shield("buckler", 1)},
	}
	assert.Equal(t,
		ActiveDefenses(meleeAttack, actor),
		Config{FullDefense: true}.ActiveDefenses(meleeAttack, actor))
}

func TestBestShield(t *testing.T) {
	tests := []struct {
		name    string
		shields []Item
		want    string
		ok      bool
	}{
		{"none", nil, "", false},
		{"single", []Item{shield("a", 3)}, "a", true},
		{"highest wins", []Item{shield("a", 1), shield("b", 6), shield("c", 2)}, "b", true},
		{"first wins ties", []Item{shield("a", 4), shield("b", 4)}, "a", true},
		{"zero rated shield still counts", []Item{shield("a", 0)}, "a", true},
		{"non shields ignored", []Item{melee("sword", 1), shield("a", 2)}, "a", true},
		{"only non shields", []Item{melee("sword", 1)}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bestShield(fakeActor{shields: tt.shields})
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got.Ref())
			}
		})
	}
}

func TestParryWeaponSelection(t *testing.T) {
	tests := []struct {
		name        string
		attackReach int
		weapons     []Item
		wantRef     string
		wantReach   int
	}{
		{"no weapons", 3, nil, "", 0},
		{"single weapon", 3, []Item{melee("knife", 2)}, "knife", 2},
		{"attacker reach zero never selects", 0, []Item{melee("knife", 2)}, "", 0},
		{"longer defender weapon kept", 3, []Item{melee("spear", 4), melee("knife", 1)}, "spear", 4},
		// Candidates are accepted against the attacker's reach, so a later,
		// shorter weapon replaces an earlier one.
		{"later shorter weapon replaces", 3, []Item{melee("sword", 2), melee("knife", 1)}, "knife", 1},
		{"ranged weapons ignored", 3, []Item{fakeItem{ref: "pistol", ranged: true}}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attack := melee("attack", tt.attackReach)
			got := ActiveDefenses(attack, fakeActor{weapons: tt.weapons})
			require.True(t, got.Has(Parry))
			assert.Equal(t, tt.wantRef, got[Parry].WeaponRef)
			assert.Equal(t, tt.wantReach, got[Parry].Value)
		})
	}
}

func TestActiveRulesIndependently(t *testing.T) {
	actor := fakeActor{
		active:  map[string]int{SkillDodge: 2},
		skills:  map[string]int{SkillPerseverance: 1},
		shields: []Item{shield("buckler", 3)},
		weapons: []Item{melee("club", 1)},
	}
	tests := []struct {
		key     Key
		attacks map[string]bool // attack name -> rule applies
	}{
		{Dodge, map[string]bool{"melee": true, "ranged": true, "spell": true, "plain": false}},
		{Block, map[string]bool{"melee": true, "ranged": true, "spell": false, "plain": false}},
		{Parry, map[string]bool{"melee": true, "ranged": false, "spell": false, "plain": false}},
		{Physical, map[string]bool{"melee": false, "ranged": false, "spell": true, "plain": false}},
		{Mental, map[string]bool{"melee": false, "ranged": false, "spell": true, "plain": false}},
	}
	attacks := map[string]Item{"melee": meleeAttack, "ranged": rangedAttack, "spell": spellAttack, "plain": plainAttack}

	for _, tt := range tests {
		var rule Rule
		for _, r := range activeRules {
			if r.Key == tt.key {
				rule = r
			}
		}
		require.Equal(t, tt.key, rule.Key)
		for name, want := range tt.attacks {
			t.Run(string(tt.key)+"/"+name, func(t *testing.T) {
				got := Evaluate([]Rule{rule}, attacks[name], actor)
				assert.Equal(t, want, got.Has(tt.key))
			})
		}
	}
}

func genItem(t *rapid.T, label string) fakeItem {
	return fakeItem{
		ref:    rapid.StringMatching(`[a-z]{1,6}`).Draw(t, label+"_ref"),
		spell:  rapid.Bool().Draw(t, label+"_spell"),
		melee:  rapid.Bool().Draw(t, label+"_melee"),
		ranged: rapid.Bool().Draw(t, label+"_ranged"),
		shield: rapid.Bool().Draw(t, label+"_shield"),
		block:  rapid.IntRange(0, 8).Draw(t, label+"_block"),
		reach:  rapid.IntRange(0, 4).Draw(t, label+"_reach"),
	}
}

func genActor(t *rapid.T) fakeActor {
	a := fakeActor{
		active:     map[string]int{},
		skills:     map[string]int{},
		attributes: map[string]int{},
	}
	if rapid.Bool().Draw(t, "has_dodge") {
		a.active[SkillDodge] = rapid.IntRange(0, 12).Draw(t, "dodge")
	}
	if rapid.Bool().Draw(t, "has_perseverance") {
		a.skills[SkillPerseverance] = rapid.IntRange(0, 12).Draw(t, "perseverance")
	}
	for _, k := range []string{AttributeReaction, AttributeIntuition, AttributeBody, AttributeAgility, AttributeWillpower, AttributeCharisma} {
		a.attributes[k] = rapid.IntRange(1, 9).Draw(t, k)
	}
	for i, n := 0, rapid.IntRange(0, 3).Draw(t, "shields"); i < n; i++ {
		a.shields = append(a.shields, genItem(t, "shield"))
	}
	for i, n := 0, rapid.IntRange(0, 3).Draw(t, "weapons"); i < n; i++ {
		a.weapons = append(a.weapons, genItem(t, "weapon"))
	}
	return a
}

func TestActiveDefensesProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		weapon := genItem(rt, "attack")
		actor := genActor(rt)

		first := ActiveDefenses(weapon, actor)
		second := ActiveDefenses(weapon, actor)
		assert.Equal(rt, first, second)

		for k, o := range first {
			assert.GreaterOrEqual(rt, o.Value, 0, "key %s", k)
			assert.LessOrEqual(rt, o.InitiativeCost, 0, "key %s", k)
		}
		if weapon.spell {
			assert.Equal(rt, first[Physical].Value, first[Mental].Value)
		}
		if !weapon.melee && !weapon.ranged {
			assert.False(rt, first.Has(Block))
		}
	})
}
