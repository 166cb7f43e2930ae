package stats

import (
	"sync"
	"time"
)

// Record is one resolved defense test as kept by the ledger.
type Record struct {
	TestID         string    `json:"testId"`
	Defender       string    `json:"defender"`
	Attacker       string    `json:"attacker,omitempty"`
	Weapon         string    `json:"weapon,omitempty"`
	Success        bool      `json:"success"`
	IncomingDamage int       `json:"incomingDamage"`
	ModifiedDamage int       `json:"modifiedDamage"`
	At             time.Time `json:"at"`
}

// DefenderStats summarises every resolved test for one defender.
type DefenderStats struct {
	Defender    string  `json:"defender"`
	Dodged      int     `json:"dodged"`
	Hit         int     `json:"hit"`
	DamageSum   int     `json:"damageTaken"`
	HeaviestHit *Record `json:"heaviestHit,omitempty"`
	Last        *Record `json:"last,omitempty"`
}

// In-memory ledger; only final outcomes are kept.
var (
	statsMu       sync.Mutex
	defenderStats = make(map[string]*DefenderStats)

	// Heaviest hit taken per day (UTC, YYYY-MM-DD)
	dailyMax = make(map[string]Record)

	now = time.Now
)

// SaveOutcome adds rec to the defender's summary and to today's global record.
func SaveOutcome(rec Record) {
	if rec.Defender == "" {
		return
	}
	if rec.At.IsZero() {
		rec.At = now().UTC()
	}
	statsMu.Lock()
	defer statsMu.Unlock()

	s := defenderStats[rec.Defender]
	if s == nil {
		s = &DefenderStats{Defender: rec.Defender}
		defenderStats[rec.Defender] = s
	}
	if rec.Success {
		s.Dodged++
	} else {
		s.Hit++
		s.DamageSum += rec.ModifiedDamage
		if s.HeaviestHit == nil || heavier(rec, *s.HeaviestHit) {
			r := rec
			s.HeaviestHit = &r
		}
		saveDailyMaxLocked(rec)
	}
	last := rec
	s.Last = &last
}

// heavier prefers more modified damage, then more incoming damage.
func heavier(a, b Record) bool {
	if a.ModifiedDamage != b.ModifiedDamage {
		return a.ModifiedDamage > b.ModifiedDamage
	}
	return a.IncomingDamage > b.IncomingDamage
}

func saveDailyMaxLocked(rec Record) {
	dateKey := rec.At.UTC().Format("2006-01-02")
	cur, ok := dailyMax[dateKey]
	if !ok || heavier(rec, cur) {
		dailyMax[dateKey] = rec
	}
}

// GetDefenderStats returns a copy of the defender's summary.
func GetDefenderStats(defender string) (DefenderStats, bool) {
	statsMu.Lock()
	defer statsMu.Unlock()
	s, ok := defenderStats[defender]
	if !ok {
		return DefenderStats{Defender: defender}, false
	}
	out := *s
	if s.HeaviestHit != nil {
		r := *s.HeaviestHit
		out.HeaviestHit = &r
	}
	if s.Last != nil {
		r := *s.Last
		out.Last = &r
	}
	return out, true
}

// GetHeaviestHitToday returns today's heaviest hit across all defenders.
func GetHeaviestHitToday() (Record, bool) {
	dateKey := now().UTC().Format("2006-01-02")
	statsMu.Lock()
	defer statsMu.Unlock()
	r, ok := dailyMax[dateKey]
	return r, ok
}
