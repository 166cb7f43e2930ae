package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pefman/duel-defense/internal/stats"
)

// GET /api/stats/{defender}
func GetDefenderStatsHandler(w http.ResponseWriter, r *http.Request) {
	defender := mux.Vars(r)["defender"]
	s, ok := stats.GetDefenderStats(defender)
	if !ok {
		writeError(w, http.StatusNotFound, "no resolved tests for "+defender)
		return
	}
	writeJSON(w, s)
}

// GET /api/stats/heaviest/today
func GetHeaviestHitTodayHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := stats.GetHeaviestHitToday()
	if !ok {
		writeJSON(w, map[string]any{})
		return
	}
	writeJSON(w, rec)
}
