package trial_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authzkit/pkg/plans"
	"github.com/dmitrymomot/authzkit/pkg/trial"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := trial.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.AttemptLimit)
		assert.Equal(t, 24*time.Hour, cfg.AttemptWindow)
		assert.Equal(t, 30, cfg.TrialDays)
		assert.Equal(t, plans.TierPro, cfg.TrialTier)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("TRIAL_ATTEMPT_LIMIT", "5")
		t.Setenv("TRIAL_ATTEMPT_WINDOW", "1h")
		t.Setenv("TRIAL_DAYS", "14")
		t.Setenv("TRIAL_TIER", "agency")

		cfg, err := trial.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 5, cfg.AttemptLimit)
		assert.Equal(t, time.Hour, cfg.AttemptWindow)
		assert.Equal(t, 14, cfg.TrialDays)
		assert.Equal(t, plans.TierAgency, cfg.TrialTier)
	})

	t.Run("rejects unknown tier", func(t *testing.T) {
		t.Setenv("TRIAL_TIER", "platinum")

		_, err := trial.LoadConfig()
		assert.ErrorIs(t, err, trial.ErrInvalidConfig)
	})

	t.Run("rejects non-positive values", func(t *testing.T) {
		t.Setenv("TRIAL_DAYS", "0")

		_, err := trial.LoadConfig()
		assert.ErrorIs(t, err, trial.ErrInvalidConfig)
	})
}
