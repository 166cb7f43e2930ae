package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pefman/duel-defense/internal/config"
	"github.com/pefman/duel-defense/internal/defense"
	"github.com/pefman/duel-defense/internal/logging"
	"github.com/pefman/duel-defense/internal/models"
	"github.com/pefman/duel-defense/internal/stats"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	h := newHub(logger, defense.Config{FullDefense: cfg.Rules.FullDefense})
	addr := ":" + cfg.Server.GamePort
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("duel game listening", zap.String("addr", addr), zap.String("version", buildVersion))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (h *hub) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.handleWS)
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"version": buildVersion, "time": buildTime})
	}).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/daily", handleLeaderboardDaily).Methods(http.MethodGet)
	r.HandleFunc("/debug/rooms", h.handleDebugRooms).Methods(http.MethodGet)
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func handleLeaderboardDaily(w http.ResponseWriter, r *http.Request) {
	rec, ok := stats.GetHeaviestHitToday()
	if !ok {
		writeJSON(w, map[string]any{})
		return
	}
	writeJSON(w, rec)
}

func (h *hub) handleDebugRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.snapshot())
}

func (h *hub) handleWS(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Runner"
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	p := &Player{ID: "p_" + uuid.NewString(), Name: name, Conn: c}
	h.log.Info("ws connect", zap.String("player", p.ID), zap.String("name", name), zap.String("from", r.RemoteAddr))
	sendTo(p, wsMsg{Type: "you", Data: map[string]string{"id": p.ID}})
	go h.wsReader(p)
}

type clientIn struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (h *hub) wsReader(p *Player) {
	defer func() {
		_ = p.Conn.Close()
		h.leave(p)
		h.log.Info("ws closed", zap.String("player", p.ID))
	}()
	for {
		var in clientIn
		if err := p.Conn.ReadJSON(&in); err != nil {
			h.log.Debug("ws read", zap.String("player", p.ID), zap.Error(err))
			return
		}
		h.dispatch(p, in)
	}
}

func (h *hub) dispatch(p *Player, in clientIn) {
	h.log.Debug("ws recv", zap.String("player", p.ID), zap.String("type", in.Type))
	var err error
	switch in.Type {
	case "choose":
		var a models.Actor
		if err = json.Unmarshal(in.Data, &a); err == nil {
			err = h.choose(p, &a)
		}
	case "queue":
		err = h.queue(p)
	case "attack":
		var body attackIn
		if err = json.Unmarshal(in.Data, &body); err == nil {
			err = h.attack(p, body)
		}
	case "defend":
		var body defendIn
		if err = json.Unmarshal(in.Data, &body); err == nil {
			_, err = h.defend(p, body)
		}
	default:
		err = errors.New("unknown message type " + in.Type)
	}
	if err != nil {
		sendTo(p, wsMsg{Type: "error", Data: err.Error()})
	}
}
