package main

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pefman/duel-defense/internal/defense"
	"github.com/pefman/duel-defense/internal/game"
	"github.com/pefman/duel-defense/internal/metrics"
	"github.com/pefman/duel-defense/internal/models"
	"github.com/pefman/duel-defense/internal/stats"
)

// ========================= Matchmaking & Rooms =========================

var (
	errNoActor       = errors.New("choose an actor first")
	errMatched       = errors.New("already in a room")
	errNoRoom        = errors.New("not in a room")
	errNotYourTurn   = errors.New("not your turn")
	errPending       = errors.New("waiting for the defender")
	errNothingToSave = errors.New("no attack to defend against")
)

type wsMsg struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// conn is the part of *websocket.Conn the room uses.
type conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

type Player struct {
	ID    string
	Name  string
	Conn  conn
	Actor *models.Actor

	writeMu sync.Mutex
}

type Room struct {
	ID     string
	P1, P2 *Player
	Turn   string // player allowed to attack
	Mu     sync.Mutex

	// Pending defense step: set by the attacker, cleared once the defender resolves it.
	Pending    *game.DefenseTest
	PendingFor string
}

func (r *Room) opponent(p *Player) *Player {
	if r.P1 == p {
		return r.P2
	}
	return r.P1
}

type hub struct {
	log   *zap.Logger
	rules defense.Config

	mu      sync.Mutex
	waiting *Player
	rooms   map[string]*Room
	players map[string]string // player id -> room id
}

func newHub(log *zap.Logger, rules defense.Config) *hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &hub{
		log:     log,
		rules:   rules,
		rooms:   map[string]*Room{},
		players: map[string]string{},
	}
}

func sendTo(p *Player, m wsMsg) {
	if p == nil || p.Conn == nil {
		return
	}
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_ = p.Conn.WriteJSON(m)
}

func (r *Room) broadcast(m wsMsg) { sendTo(r.P1, m); sendTo(r.P2, m) }

func (r *Room) broadcastState() {
	state := map[string]any{
		"room": r.ID,
		"turn": r.Turn,
		"p1":   summarizePlayer(r.P1),
		"p2":   summarizePlayer(r.P2),
	}
	if r.Pending != nil {
		state["pending"] = map[string]string{"test": r.Pending.ID, "defender": r.PendingFor}
	}
	r.broadcast(wsMsg{Type: "state", Data: state})
}

func summarizePlayer(p *Player) map[string]any {
	out := map[string]any{"id": p.ID, "name": p.Name}
	if p.Actor != nil {
		out["actor"] = p.Actor.Name
	}
	return out
}

func (h *hub) roomOf(playerID string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[h.players[playerID]]
}

// choose sets the actor a player brings into the duel. Allowed until matched.
func (h *hub) choose(p *Player, a *models.Actor) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.players[p.ID]; ok {
		return errMatched
	}
	if a.ID == "" {
		a.ID = p.ID
	}
	p.Actor = a
	sendTo(p, wsMsg{Type: "log", Data: fmt.Sprintf("Selected %s", a.Name)})
	return nil
}

// queue pairs p with the waiting player, or makes p the waiting player.
func (h *hub) queue(p *Player) error {
	h.mu.Lock()
	if p.Actor == nil {
		h.mu.Unlock()
		return errNoActor
	}
	if _, ok := h.players[p.ID]; ok {
		h.mu.Unlock()
		return errMatched
	}
	if h.waiting == nil || h.waiting == p {
		h.waiting = p
		h.mu.Unlock()
		sendTo(p, wsMsg{Type: "status", Data: "Waiting for an opponent..."})
		return nil
	}
	first := h.waiting
	h.waiting = nil
	r := &Room{ID: "room_" + uuid.NewString(), P1: first, P2: p, Turn: first.ID}
	h.rooms[r.ID] = r
	h.players[first.ID] = r.ID
	h.players[p.ID] = r.ID
	h.mu.Unlock()

	h.log.Info("room created", zap.String("room", r.ID), zap.String("p1", first.ID), zap.String("p2", p.ID))
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.broadcast(wsMsg{Type: "status", Data: map[string]any{"room": r.ID, "message": "Match found. " + first.Name + " attacks first."}})
	r.broadcastState()
	return nil
}

// leave drops p from matchmaking and closes its room, if any.
func (h *hub) leave(p *Player) {
	h.mu.Lock()
	if h.waiting == p {
		h.waiting = nil
	}
	id, ok := h.players[p.ID]
	r := h.rooms[id]
	if ok {
		delete(h.rooms, id)
		delete(h.players, r.P1.ID)
		delete(h.players, r.P2.ID)
	}
	h.mu.Unlock()

	if r != nil {
		h.log.Info("room closed", zap.String("room", r.ID), zap.String("left", p.ID))
		sendTo(r.opponent(p), wsMsg{Type: "opponent_left", Data: map[string]string{"room": r.ID}})
	}
}

type attackIn struct {
	Weapon  string       `json:"weapon"` // item id or name
	Damage  int          `json:"damage"`
	AP      int          `json:"ap"`
	Element game.Element `json:"element,omitempty"`
	Hits    int          `json:"hits"`
}

// attack opens a defense test for the opponent and offers them its options.
func (h *hub) attack(p *Player, in attackIn) error {
	r := h.roomOf(p.ID)
	if r == nil {
		return errNoRoom
	}
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Pending != nil {
		return errPending
	}
	if r.Turn != p.ID {
		return errNotYourTurn
	}
	item, ok := p.Actor.FindItem(in.Weapon)
	if !ok {
		return fmt.Errorf("unknown weapon %q", in.Weapon)
	}

	dmg := game.DefaultDamage()
	dmg.Base, dmg.Value = in.Damage, in.Damage
	dmg.AP = game.ModifiedValue{Base: in.AP, Value: in.AP}
	dmg.Element = game.ElementValue{Base: in.Element, Value: in.Element}
	dmg.Source = &game.DamageSource{ActorID: p.Actor.ID, ItemID: item.ID, ItemName: item.Name}

	def := r.opponent(p)
	t := game.NewDefenseTest(def.Actor,
		&game.AttackResult{ActorID: p.Actor.ID, Item: item, Damage: dmg, Hits: in.Hits},
		game.WithRules(h.rules),
		game.WithLogger(h.log.With(zap.String("room", r.ID))),
	)
	if err := t.Prepare(); err != nil {
		return err
	}
	metrics.Prepared("game", len(t.Data.ActiveDefenses))
	r.Pending, r.PendingFor = t, def.ID

	sendTo(def, wsMsg{Type: "defense_options", Data: map[string]any{
		"test":     t.ID,
		"weapon":   item.Name,
		"hits":     in.Hits,
		"incoming": t.Data.IncomingDamage,
		"active":   t.Data.ActiveDefenses,
		"passive":  t.Data.PassiveDefenses,
	}})
	r.broadcast(wsMsg{Type: "log", Data: fmt.Sprintf("%s attacks with %s (%d hits)", p.Name, item.Name, in.Hits)})
	r.broadcastState()
	return nil
}

type defendIn struct {
	Active  defense.Key `json:"active,omitempty"`
	Passive defense.Key `json:"passive,omitempty"`
	Hits    int         `json:"hits"`
}

// defend applies the defender's choices, resolves the pending test and hands
// the turn to the defender.
func (h *hub) defend(p *Player, in defendIn) (game.Outcome, error) {
	r := h.roomOf(p.ID)
	if r == nil {
		return game.Outcome{}, errNoRoom
	}
	r.Mu.Lock()
	defer r.Mu.Unlock()
	t := r.Pending
	if t == nil || r.PendingFor != p.ID {
		return game.Outcome{}, errNothingToSave
	}
	// Passive first: it leaves the test untouched on error, so the defender can retry.
	if in.Passive != "" {
		if err := t.UsePassiveDefense(in.Passive); err != nil {
			return game.Outcome{}, err
		}
	}
	if in.Active != "" && t.Data.ActiveDefense != in.Active {
		if err := t.UseActiveDefense(in.Active); err != nil {
			return game.Outcome{}, err
		}
	}
	out, err := t.Resolve(in.Hits)
	if err != nil {
		return game.Outcome{}, err
	}
	r.Pending, r.PendingFor = nil, ""
	r.Turn = p.ID

	metrics.Resolved(out.Success, out.ModifiedDamage.Value)
	rec := stats.Record{
		TestID:         out.TestID,
		Defender:       out.DefenderID,
		Attacker:       out.AttackerID,
		Success:        out.Success,
		IncomingDamage: out.IncomingDamage.Value,
		ModifiedDamage: out.ModifiedDamage.Value,
	}
	if it := t.AttackItem(); it != nil {
		rec.Weapon = it.Ref()
	}
	stats.SaveOutcome(rec)

	r.broadcast(wsMsg{Type: "resolved", Data: out})
	r.broadcastState()
	return out, nil
}

type roomView struct {
	ID      string   `json:"id"`
	Players []string `json:"players"`
	Turn    string   `json:"turn"`
	Pending string   `json:"pending,omitempty"`
}

func (h *hub) snapshot() []roomView {
	h.mu.Lock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.Unlock()

	out := make([]roomView, 0, len(rooms))
	for _, r := range rooms {
		r.Mu.Lock()
		v := roomView{ID: r.ID, Players: []string{r.P1.ID, r.P2.ID}, Turn: r.Turn}
		if r.Pending != nil {
			v.Pending = r.Pending.ID
		}
		r.Mu.Unlock()
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
