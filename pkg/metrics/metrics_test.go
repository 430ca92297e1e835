package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/latticefold/latticefold/pkg/metrics"
)

func TestEmitObjective(t *testing.T) {
	metrics.EmitObjective("cubic", 12, 3)
	metrics.EmitObjective("cubic", 7, 2)

	assert.Equal(t, 7.0, testutil.ToFloat64(metrics.MonomialGauge("cubic")))
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.AncillaryCounter("cubic")))
}

func TestEmitConcurrently(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 100; i++ {
		go func() {
			metrics.EmitIncompleteSimplification("fcc")
			metrics.RegisterCompileSuccess("fcc", time.Millisecond)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 100; i++ {
		<-done
	}
	assert.Equal(t, 100.0, testutil.ToFloat64(metrics.IncompleteSimplificationCounter("fcc")))
}
