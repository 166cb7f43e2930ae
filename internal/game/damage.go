package game

type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageStun     DamageType = "stun"
	DamageMatrix   DamageType = "matrix"
)

type Element string

const (
	ElementNone        Element = ""
	ElementFire        Element = "fire"
	ElementCold        Element = "cold"
	ElementAcid        Element = "acid"
	ElementElectricity Element = "electricity"
	ElementRadiation   Element = "radiation"
)

// ModPart is one named contribution to a modified value.
type ModPart struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ModifiedValue is a base value plus the parts that changed it.
type ModifiedValue struct {
	Base  int       `json:"base"`
	Value int       `json:"value"`
	Mod   []ModPart `json:"mod,omitempty"`
}

// AddMod appends a part and adds it onto the current Value. Value is not
// rebuilt from Base, so a value decoded without its parts is kept.
func (v *ModifiedValue) AddMod(name string, value int) {
	v.Mod = append(v.Mod, ModPart{Name: name, Value: value})
	v.Value += value
}

func (v ModifiedValue) clone() ModifiedValue {
	out := v
	if v.Mod != nil {
		out.Mod = make([]ModPart, len(v.Mod))
		copy(out.Mod, v.Mod)
	}
	return out
}

type DamageTypeValue struct {
	Base  DamageType `json:"base"`
	Value DamageType `json:"value"`
}

type ElementValue struct {
	Base  Element `json:"base"`
	Value Element `json:"value"`
}

// DamageSource records who and what caused the damage.
type DamageSource struct {
	ActorID  string `json:"actorId"`
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
}

// Damage is the structured damage value of an attack.
type Damage struct {
	ModifiedValue
	Type      DamageTypeValue `json:"type"`
	Element   ElementValue    `json:"element"`
	AP        ModifiedValue   `json:"ap"`
	Attribute string          `json:"attribute,omitempty"`
	Source    *DamageSource   `json:"source,omitempty"`
}

// DefaultDamage is the zero damage used when no attack is bound.
func DefaultDamage() Damage {
	return Damage{
		Type: DamageTypeValue{Base: DamagePhysical, Value: DamagePhysical},
	}
}

// Clone returns a deep copy; the result shares no slices or pointers with d.
func (d Damage) Clone() Damage {
	out := d
	out.ModifiedValue = d.ModifiedValue.clone()
	out.AP = d.AP.clone()
	if d.Source != nil {
		src := *d.Source
		out.Source = &src
	}
	return out
}
