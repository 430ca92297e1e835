package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	LatticeLabel = "lattice"
	Outcome      = "outcome"
	Succeeded    = "succeeded"
	Failed       = "failed"
)

var (
	compileSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "latticefold_compile_duration_seconds",
			Help:       "The duration of a compilation attempt",
			Objectives: map[float64]float64{0.95: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{LatticeLabel, Outcome},
	)

	monomialCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "latticefold_objective_monomials",
			Help: "Number of monomials in the most recently compiled quadratic objective",
		},
		[]string{LatticeLabel},
	)

	ancillaryCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "latticefold_ancillaries_total",
			Help: "monotonic count of ancillary variables introduced by degree reduction",
		},
		[]string{LatticeLabel},
	)

	incompleteSimplificationCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "latticefold_simplification_incomplete_total",
			Help: "monotonic count of terms lowered without a canonical form because the node budget was exhausted",
		},
		[]string{LatticeLabel},
	)
)

// RegisterCompiler registers the compiler collectors with the default
// registry.
func RegisterCompiler() {
	prometheus.MustRegister(compileSummary)
	prometheus.MustRegister(monomialCount)
	prometheus.MustRegister(ancillaryCount)
	prometheus.MustRegister(incompleteSimplificationCount)
}

func RegisterCompileSuccess(lattice string, duration time.Duration) {
	compileSummary.WithLabelValues(lattice, Succeeded).Observe(duration.Seconds())
}

func RegisterCompileFailure(lattice string, duration time.Duration) {
	compileSummary.WithLabelValues(lattice, Failed).Observe(duration.Seconds())
}

func EmitObjective(lattice string, monomials, ancillaries int) {
	monomialCount.WithLabelValues(lattice).Set(float64(monomials))
	ancillaryCount.WithLabelValues(lattice).Add(float64(ancillaries))
}

func EmitIncompleteSimplification(lattice string) {
	incompleteSimplificationCount.WithLabelValues(lattice).Inc()
}

func MonomialGauge(lattice string) prometheus.Gauge {
	return monomialCount.WithLabelValues(lattice)
}

func AncillaryCounter(lattice string) prometheus.Counter {
	return ancillaryCount.WithLabelValues(lattice)
}

func IncompleteSimplificationCounter(lattice string) prometheus.Counter {
	return incompleteSimplificationCount.WithLabelValues(lattice)
}
