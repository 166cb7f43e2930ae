package defense

// passiveRules always apply; attack-type filtering is the caller's choice.
var passiveRules = []Rule{
	{
		Key:   Dodge,
		Label: LabelDodge,
		Cost:  PassiveInitiativeCost,
		Value: attributeSum(AttributeReaction, AttributeIntuition),
	},
	{
		Key:   Physical,
		Label: LabelPhysicalResist,
		Cost:  PassiveInitiativeCost,
		Value: attributeSum(AttributeBody, AttributeAgility),
	},
	{
		Key:   Mental,
		Label: LabelMentalResist,
		Cost:  PassiveInitiativeCost,
		Value: attributeSum(AttributeWillpower, AttributeCharisma),
	},
}

func attributeSum(keys ...string) func(Item, Actor) (int, string) {
	return func(_ Item, a Actor) (int, string) {
		total := 0
		for _, k := range keys {
			total += a.Attribute(k)
		}
		return total, ""
	}
}
