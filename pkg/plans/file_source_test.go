package plans_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authzkit/pkg/plans"
)

const testPlansYAML = `plans:
  basic:
    name: Basic
    public: true
    limits:
      leads: 100
      properties: 10
      seats: 2
      campaigns: 1
  pro:
    name: Pro
    trial_days: 30
    public: true
    limits:
      leads: 1000
      properties: 100
      seats: 10
      campaigns: 10
  agency:
    name: Agency
    public: true
    limits:
      leads: 10000
      properties: 1000
      seats: 25
      campaigns: 50
  enterprise:
    name: Enterprise
    limits:
      leads: -1
      properties: -1
      seats: -1
      campaigns: -1
`

func writePlansFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plans.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_Load(t *testing.T) {
	t.Parallel()

	path := writePlansFile(t, testPlansYAML)

	catalog, err := plans.NewCatalog(context.Background(), plans.NewFileSource(path))
	require.NoError(t, err)

	pro, err := catalog.Get(plans.TierPro)
	require.NoError(t, err)
	assert.Equal(t, "Pro", pro.Name)
	assert.Equal(t, 30, pro.TrialDays)
	assert.Equal(t, int64(1000), pro.Limits[plans.ResourceLeads])

	enterprise, err := catalog.Get(plans.TierEnterprise)
	require.NoError(t, err)
	assert.Equal(t, plans.Unlimited, enterprise.Limits[plans.ResourceSeats])
	// Tier is filled in from the map key when omitted in the file.
	assert.Equal(t, plans.TierEnterprise, enterprise.Tier)
}

func TestFileSource_Load_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		src := plans.NewFileSource(filepath.Join(t.TempDir(), "nope.yml"))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plans.ErrFailedToLoadPlans)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writePlansFile(t, "plans: [not a map")
		_, err := plans.NewFileSource(path).Load(context.Background())
		assert.ErrorIs(t, err, plans.ErrFailedToLoadPlans)
	})
}
