package main

import (
	"fmt"
	"net/http"
	"runtime"

	"go.uber.org/zap"

	"github.com/pefman/duel-defense/internal/defense"
	"github.com/pefman/duel-defense/internal/game"
	"github.com/pefman/duel-defense/internal/metrics"
	"github.com/pefman/duel-defense/internal/stats"
)

// POST /api/defense/active
func (s *server) handleActive(w http.ResponseWriter, r *http.Request) {
	var req catalogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, nonNil(s.rules.ActiveDefenses(itemOf(req.Weapon), actorOf(req.Actor))))
}

// POST /api/defense/passive
func (s *server) handlePassive(w http.ResponseWriter, r *http.Request) {
	var req catalogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, nonNil(s.rules.PassiveDefenses(itemOf(req.Weapon), actorOf(req.Actor))))
}

// POST /api/defense/prepare
func (s *server) handlePrepare(w http.ResponseWriter, r *http.Request) {
	var req prepareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t := s.newTest(req)
	if err := t.Prepare(); err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	metrics.Prepared("api", len(t.Data.ActiveDefenses))
	writeJSON(w, viewOf(t))
}

// POST /api/defense/prepare/batch
func (s *server) handlePrepareBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Tests) > s.batchLimit {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("batch of %d exceeds limit %d", len(req.Tests), s.batchLimit))
		return
	}
	tests := make([]*game.DefenseTest, len(req.Tests))
	for i, tr := range req.Tests {
		tests[i] = s.newTest(tr)
	}
	if err := game.PrepareAll(r.Context(), tests, runtime.GOMAXPROCS(0)); err != nil {
		s.log.Warn("batch prepare failed", zap.Error(err))
		writeError(w, errorStatus(err), err.Error())
		return
	}
	views := make([]testView, len(tests))
	for i, t := range tests {
		metrics.Prepared("api_batch", len(t.Data.ActiveDefenses))
		views[i] = viewOf(t)
	}
	writeJSON(w, views)
}

// POST /api/defense/resolve
// Prepares, applies the chosen defenses and resolves in one call. The
// outcome is recorded in the stats ledger.
func (s *server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t := s.newTest(req.prepareRequest)
	if err := t.Prepare(); err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	if req.ActiveDefense != "" {
		if err := t.UseActiveDefense(req.ActiveDefense); err != nil {
			writeError(w, errorStatus(err), err.Error())
			return
		}
	}
	if req.PassiveDefense != "" {
		if err := t.UsePassiveDefense(req.PassiveDefense); err != nil {
			writeError(w, errorStatus(err), err.Error())
			return
		}
	}
	out, err := t.Resolve(req.Hits)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	metrics.Resolved(out.Success, out.ModifiedDamage.Value)
	rec := stats.Record{
		TestID:         out.TestID,
		Defender:       out.DefenderID,
		Attacker:       out.AttackerID,
		Success:        out.Success,
		IncomingDamage: out.IncomingDamage.Value,
		ModifiedDamage: out.ModifiedDamage.Value,
	}
	if req.Attack != nil && req.Attack.Item != nil {
		rec.Weapon = req.Attack.Item.Ref()
	}
	stats.SaveOutcome(rec)
	writeJSON(w, out)
}

// nonNil keeps empty sets encoding as {} rather than null.
func nonNil(s defense.Set) defense.Set {
	if s == nil {
		return defense.Set{}
	}
	return s
}
