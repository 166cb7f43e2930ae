package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	testsPrepared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "defense_tests_prepared_total",
			Help: "Total number of defense tests prepared, partitioned by source.",
		},
		[]string{"source"},
	)

	testsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "defense_tests_resolved_total",
			Help: "Total number of defense tests resolved, partitioned by result.",
		},
		[]string{"result"},
	)

	activeOptions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "defense_active_options",
		Help:    "Number of active defenses offered per prepared test.",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})

	damageTaken = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "defense_modified_damage",
		Help:    "Modified damage value after resolution.",
		Buckets: prometheus.LinearBuckets(0, 2, 10),
	})
)

// Prepared records one prepared test offering n active defenses.
func Prepared(source string, n int) {
	testsPrepared.WithLabelValues(source).Inc()
	activeOptions.Observe(float64(n))
}

// Resolved records one resolved test.
func Resolved(success bool, modifiedDamage int) {
	result := "hit"
	if success {
		result = "dodged"
	}
	testsResolved.WithLabelValues(result).Inc()
	damageTaken.Observe(float64(modifiedDamage))
}
