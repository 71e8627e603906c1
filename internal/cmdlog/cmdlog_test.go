package cmdlog

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"altlens/internal/metrics"
)

func TestRunCountsCommandsAndErrors(t *testing.T) {
	runs := testutil.ToFloat64(metrics.CommandRuns.WithLabelValues("probe"))
	fails := testutil.ToFloat64(metrics.CommandErrors.WithLabelValues("probe"))

	assert.NoError(t, Run("probe", func() error { return nil }))
	boom := errors.New("boom")
	assert.ErrorIs(t, Run("probe", func() error { return boom }), boom)

	assert.Equal(t, runs+2, testutil.ToFloat64(metrics.CommandRuns.WithLabelValues("probe")))
	assert.Equal(t, fails+1, testutil.ToFloat64(metrics.CommandErrors.WithLabelValues("probe")))
}
