package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pefman/duel-defense/internal/defense"
	"github.com/pefman/duel-defense/internal/game"
	"github.com/pefman/duel-defense/internal/models"
)

const maxBodyBytes = 1 << 20

type catalogRequest struct {
	Weapon *models.Item  `json:"weapon"`
	Actor  *models.Actor `json:"actor"`
}

type attackPayload struct {
	ActorID string       `json:"actor_id"`
	Item    *models.Item `json:"item"`
	Damage  *game.Damage `json:"damage"`
	Hits    int          `json:"hits"`
}

type prepareRequest struct {
	ID       string         `json:"id,omitempty"`
	Defender *models.Actor  `json:"defender"`
	Attack   *attackPayload `json:"attack"`
}

type batchRequest struct {
	Tests []prepareRequest `json:"tests"`
}

type resolveRequest struct {
	prepareRequest
	ActiveDefense  defense.Key `json:"active_defense,omitempty"`
	PassiveDefense defense.Key `json:"passive_defense,omitempty"`
	Hits           int         `json:"hits"`
}

// testView is what clients see of a prepared test.
type testView struct {
	ID                   string           `json:"id"`
	Categories           []game.Category  `json:"categories"`
	SuccessLabel         defense.Label    `json:"successLabel"`
	FailureLabel         defense.Label    `json:"failureLabel"`
	HasChangedInitiative bool             `json:"hasChangedInitiative"`
	InitiativeModifier   int              `json:"initiativeModifier"`
	Data                 game.DefenseData `json:"data"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// Nil pointers must become nil interfaces, not interfaces holding nil.
func itemOf(p *models.Item) defense.Item {
	if p == nil {
		return nil
	}
	return *p
}

func actorOf(p *models.Actor) defense.Actor {
	if p == nil {
		return nil
	}
	return p
}

func (a *attackPayload) result() *game.AttackResult {
	if a == nil {
		return nil
	}
	damage := game.DefaultDamage()
	if a.Damage != nil {
		damage = *a.Damage
	}
	if damage.Source == nil && a.Item != nil {
		damage.Source = &game.DamageSource{ActorID: a.ActorID, ItemID: a.Item.ID, ItemName: a.Item.Name}
	}
	return &game.AttackResult{
		ActorID: a.ActorID,
		Item:    itemOf(a.Item),
		Damage:  damage,
		Hits:    a.Hits,
	}
}

func (s *server) newTest(req prepareRequest) *game.DefenseTest {
	return game.NewDefenseTest(
		actorOf(req.Defender),
		req.Attack.result(),
		game.WithID(req.ID),
		game.WithRules(s.rules),
		game.WithLogger(s.log),
	)
}

func viewOf(t *game.DefenseTest) testView {
	return testView{
		ID:                   t.ID,
		Categories:           t.Categories(),
		SuccessLabel:         t.SuccessLabel(),
		FailureLabel:         t.FailureLabel(),
		HasChangedInitiative: t.HasChangedInitiative(),
		InitiativeModifier:   t.InitiativeModifier(),
		Data:                 t.Data,
	}
}
