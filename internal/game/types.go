package game

import "github.com/pefman/duel-defense/internal/defense"

// Category tags a test for filtering by the surrounding pipeline.
type Category string

const (
	CategoryAttack  Category = "attack"
	CategoryDefense Category = "defense"
)

// AttackResult is the attacker's resolved side of a contested test.
type AttackResult struct {
	ActorID string       `json:"actorId"`
	Item    defense.Item `json:"-"` // attacking weapon or spell; nil when unknown
	Damage  Damage       `json:"damage"`
	Hits    int          `json:"hits"`
}

// Outcome is the final resolved state of a defense test. It is the only part
// of a test that outlives it.
type Outcome struct {
	TestID               string        `json:"testId"`
	DefenderID           string        `json:"defenderId,omitempty"`
	AttackerID           string        `json:"attackerId,omitempty"`
	Success              bool          `json:"success"`
	Label                defense.Label `json:"label"`
	AttackerHits         int           `json:"attackerHits"`
	DefenderHits         int           `json:"defenderHits"`
	NetHits              int           `json:"netHits"`
	ActiveDefense        defense.Key   `json:"activeDefense,omitempty"`
	PassiveDefense       defense.Key   `json:"passiveDefense,omitempty"`
	IncomingDamage       Damage        `json:"incomingDamage"`
	ModifiedDamage       Damage        `json:"modifiedDamage"`
	HasChangedInitiative bool          `json:"hasChangedInitiative"`
	InitiativeModifier   int           `json:"initiativeModifier"`
	Categories           []Category    `json:"categories"`
}
