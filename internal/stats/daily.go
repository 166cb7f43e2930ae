package stats

// ResetDaily drops the per-day heaviest hit records. Defender summaries stay.
func ResetDaily() {
	statsMu.Lock()
	defer statsMu.Unlock()
	clear(dailyMax)
}

// Reset empties the whole ledger.
func Reset() {
	statsMu.Lock()
	defer statsMu.Unlock()
	clear(dailyMax)
	clear(defenderStats)
}
