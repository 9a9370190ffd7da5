package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"specdocs-backend/internal/services"
)

func TestTimeBasedEstimator_Range(t *testing.T) {
	estimator := services.NewTimeBasedEstimator(30 * time.Second)
	now := time.Now()

	for _, elapsed := range []time.Duration{
		0, time.Second, 7 * time.Second, 15 * time.Second,
		29 * time.Second, 30 * time.Second, time.Minute,
	} {
		pct, stage := estimator.Estimate(now.Add(-elapsed), now)
		assert.GreaterOrEqual(t, pct, 20, "elapsed %v", elapsed)
		assert.Less(t, pct, 90, "elapsed %v", elapsed)
		assert.Contains(t, []string{"parsing", "analyzing", "generating", "finalizing"}, stage)
	}
}

func TestTimeBasedEstimator_MonotonicOverElapsedTime(t *testing.T) {
	estimator := services.NewTimeBasedEstimator(30 * time.Second)
	now := time.Now()

	prev := -1
	for elapsed := time.Duration(0); elapsed <= 30*time.Second; elapsed += time.Second {
		pct, _ := estimator.Estimate(now.Add(-elapsed), now)
		assert.GreaterOrEqual(t, pct, prev)
		prev = pct
	}
}

func TestTimeBasedEstimator_StageProgression(t *testing.T) {
	estimator := services.NewTimeBasedEstimator(40 * time.Second)
	now := time.Now()

	cases := []struct {
		elapsed time.Duration
		stage   string
	}{
		{2 * time.Second, "parsing"},
		{12 * time.Second, "analyzing"},
		{22 * time.Second, "generating"},
		{32 * time.Second, "finalizing"},
		{2 * time.Minute, "finalizing"},
	}
	for _, tc := range cases {
		_, stage := estimator.Estimate(now.Add(-tc.elapsed), now)
		assert.Equal(t, tc.stage, stage, "elapsed %v", tc.elapsed)
	}
}

func TestTimeBasedEstimator_FutureStartClamps(t *testing.T) {
	estimator := services.NewTimeBasedEstimator(30 * time.Second)
	now := time.Now()

	pct, stage := estimator.Estimate(now.Add(5*time.Second), now)
	assert.Equal(t, 20, pct)
	assert.Equal(t, "parsing", stage)
}
