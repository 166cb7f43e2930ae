package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestSaveOutcome(t *testing.T) {
	Reset()
	fixedNow(t, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))

	SaveOutcome(Record{TestID: "1", Defender: "troll", Success: true, IncomingDamage: 6, ModifiedDamage: 6})
	SaveOutcome(Record{TestID: "2", Defender: "troll", IncomingDamage: 6, ModifiedDamage: 9})
	SaveOutcome(Record{TestID: "3", Defender: "troll", IncomingDamage: 4, ModifiedDamage: 5})

	s, ok := GetDefenderStats("troll")
	require.True(t, ok)
	assert.Equal(t, 1, s.Dodged)
	assert.Equal(t, 2, s.Hit)
	assert.Equal(t, 14, s.DamageSum)
	require.NotNil(t, s.HeaviestHit)
	assert.Equal(t, "2", s.HeaviestHit.TestID)
	require.NotNil(t, s.Last)
	assert.Equal(t, "3", s.Last.TestID)
	assert.Equal(t, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC), s.Last.At)
}

func TestSaveOutcomeIgnoresAnonymousDefender(t *testing.T) {
	Reset()
	SaveOutcome(Record{TestID: "1"})
	_, ok := GetDefenderStats("")
	assert.False(t, ok)
}

func TestGetDefenderStatsReturnsCopy(t *testing.T) {
	Reset()
	SaveOutcome(Record{TestID: "1", Defender: "elf", ModifiedDamage: 3})

	s, _ := GetDefenderStats("elf")
	s.HeaviestHit.ModifiedDamage = 100
	s.Hit = 50

	again, _ := GetDefenderStats("elf")
	assert.Equal(t, 3, again.HeaviestHit.ModifiedDamage)
	assert.Equal(t, 1, again.Hit)
}

func TestHeaviestHitToday(t *testing.T) {
	Reset()
	day := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	fixedNow(t, day)

	_, ok := GetHeaviestHitToday()
	assert.False(t, ok)

	SaveOutcome(Record{TestID: "yesterday", Defender: "a", ModifiedDamage: 20, At: day.Add(-24 * time.Hour)})
	SaveOutcome(Record{TestID: "small", Defender: "a", ModifiedDamage: 4})
	SaveOutcome(Record{TestID: "tie-less-incoming", Defender: "b", IncomingDamage: 2, ModifiedDamage: 7})
	SaveOutcome(Record{TestID: "big", Defender: "b", IncomingDamage: 5, ModifiedDamage: 7})
	SaveOutcome(Record{TestID: "dodged", Defender: "c", Success: true, ModifiedDamage: 30})

	r, ok := GetHeaviestHitToday()
	require.True(t, ok)
	assert.Equal(t, "big", r.TestID)

	ResetDaily()
	_, ok = GetHeaviestHitToday()
	assert.False(t, ok)
	_, ok = GetDefenderStats("b")
	assert.True(t, ok, "ResetDaily keeps defender summaries")
}

func TestSaveOutcomeConcurrent(t *testing.T) {
	Reset()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			SaveOutcome(Record{Defender: "mob", Success: i%2 == 0, ModifiedDamage: i})
		}(i)
	}
	wg.Wait()

	s, ok := GetDefenderStats("mob")
	require.True(t, ok)
	assert.Equal(t, 25, s.Dodged)
	assert.Equal(t, 25, s.Hit)
}
