package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMonthlyRates(t *testing.T) {
	months := []string{"2026-04", "2026-05", "2026-06", "2026-07"}

	rates := DefaultMonthlyRates(months)
	require.Len(t, rates, len(months))

	for idx, rate := range rates {
		assert.Equal(t, months[idx], rate.Date)
		assert.GreaterOrEqual(t, rate.GrowthRate, 0.05)
		assert.GreaterOrEqual(t, rate.ChurnRate, 0.015)
	}
}

func TestDefaultProjects(t *testing.T) {
	months := []string{"2026-04", "2026-05", "2026-06"}

	projects := DefaultProjects(months)
	require.Len(t, projects, 5)

	seen := map[string]bool{}
	for _, project := range projects {
		assert.False(t, seen[project.ID], "id duplicado: %s", project.ID)
		seen[project.ID] = true

		assert.NotEmpty(t, project.Name)
		assert.Greater(t, project.StartingSubscribers, 0)
		assert.Greater(t, project.Pricing.Base, 0.0)

		// Todo projeto de referência carrega a taxa de processamento própria
		require.NotNil(t, project.Metrics.Fees)
		assert.Greater(t, *project.Metrics.Fees, 0.0)

		require.Len(t, project.MonthlyDefaults, len(months))
		for _, rate := range project.MonthlyDefaults {
			assert.GreaterOrEqual(t, rate.GrowthRate, 0.03)
			assert.LessOrEqual(t, rate.GrowthRate, 0.45)
			assert.GreaterOrEqual(t, rate.ChurnRate, 0.01)
		}
	}

	assert.True(t, seen["flower"])
	assert.True(t, seen["wellness-kit"])
	assert.True(t, seen["education-pack"])
}

func TestDefaultGlobalSettings(t *testing.T) {
	first := DefaultGlobalSettings()
	second := DefaultGlobalSettings()

	// Cada chamada devolve uma cópia independente
	first.VATRate = 0.99
	assert.Equal(t, 0.05, second.VATRate)

	assert.Equal(t, DefaultForecastStart, second.StartDate)
	assert.Equal(t, DefaultForecastEnd, second.EndDate)
	assert.Equal(t, 375000.0, second.CorporateTaxThreshold)
}
