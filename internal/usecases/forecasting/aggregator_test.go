package forecasting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
)

func floatPtr(value float64) *float64 {
	return &value
}

func TestMonthlySharedExpenseTotal(t *testing.T) {
	base := domain.SharedExpenses{
		GeneralAndAdministrative:    100,
		TechnologyAndDevelopment:    200,
		FulfillmentAndService:       300,
		DepreciationAndAmortization: 400,
	}

	overrides := domain.SharedExpenseSchedule{
		"2026-02": {GeneralAndAdministrative: floatPtr(150)},
	}

	t.Run("Mês sem override usa a base inteira", func(t *testing.T) {
		assert.Equal(t, 1000.0, monthlySharedExpenseTotal("2026-01", base, overrides))
	})

	t.Run("Override substitui só a categoria presente", func(t *testing.T) {
		assert.Equal(t, 1050.0, monthlySharedExpenseTotal("2026-02", base, overrides))
	})
}

func TestFinalizeAggregatePoint(t *testing.T) {
	t.Run("Razões recalculadas sobre os totais combinados", func(t *testing.T) {
		point := &domain.MetricPoint{
			MRR:              10000,
			ActiveCustomers:  200,
			ChurnedCustomers: 10,
			NewMRR:           500,
			ChurnMRR:         250,
		}

		finalizeAggregatePoint(point)

		assert.Equal(t, 50.0, point.ARPU)
		assert.Equal(t, 120000.0, point.ARR)
		assert.Equal(t, 0.0476, point.UserChurnRate) // 10 / 210
		assert.Equal(t, 1050.42, point.LTV)          // 50 / 0.0476
		assert.Equal(t, 2.0, point.QuickRatio)
	})

	t.Run("Churn zero usa o piso do denominador no LTV agregado", func(t *testing.T) {
		point := &domain.MetricPoint{
			MRR:             10000,
			ActiveCustomers: 200,
		}

		finalizeAggregatePoint(point)

		assert.Equal(t, 500000.0, point.LTV) // 50 / 0.0001
		assert.Equal(t, 5.0, point.QuickRatio)
	})
}

func simulationResultFor(id string, series ...*domain.MetricPoint) projectSimulationResult {
	return projectSimulationResult{
		project: domain.ProjectRef{ID: id, Name: id},
		series:  series,
	}
}

func TestBuildCombinedTimeseries(t *testing.T) {
	t.Run("Totais somam só os projetos selecionados", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-02-01")

		selectedProject := simulationResultFor("box-a",
			&domain.MetricPoint{
				Date: "2026-01", MRR: 50000, GrossRevenue: 50000, ActiveCustomers: 1000,
				ChurnedCustomers: 50, NewCustomers: 100, NewMRR: 5000, ChurnMRR: 2500,
				TotalExpenses: 1000,
			},
			&domain.MetricPoint{
				Date: "2026-02", MRR: 52500, GrossRevenue: 52500, ActiveCustomers: 1050,
				ChurnedCustomers: 53, NewCustomers: 105, NewMRR: 5250, ChurnMRR: 2500,
				TotalExpenses: 1000,
			},
		)
		ignoredProject := simulationResultFor("box-b",
			&domain.MetricPoint{Date: "2026-01", MRR: 99999, GrossRevenue: 99999},
			&domain.MetricPoint{Date: "2026-02", MRR: 99999, GrossRevenue: 99999},
		)

		settings := domain.GlobalSettings{
			CorporateTaxThreshold: 1e9,
			SharedExpenses:        domain.SharedExpenses{GeneralAndAdministrative: 2000},
		}

		timeseries := buildCombinedTimeseries(
			months,
			[]projectSimulationResult{selectedProject, ignoredProject},
			map[string]bool{"box-a": true},
			settings,
		)
		require.Len(t, timeseries, 2)

		first := timeseries[0]
		assert.Equal(t, "2026-01", first.Date)
		assert.Equal(t, 50000.0, first.Totals.MRR)
		assert.Equal(t, 2000.0, first.Totals.SharedExpenses)
		assert.Equal(t, 3000.0, first.Totals.TotalExpenses)
		assert.Equal(t, 47000.0, first.Totals.NetRevenue)
		assert.Equal(t, 0.0, first.Totals.CorporateIncomeTax)

		// O projeto fora da seleção continua visível na quebra por projeto
		assert.Contains(t, first.Projects, "box-b")
		assert.Equal(t, 99999.0, first.Projects["box-b"].MRR)

		// Primeiro mês sem anterior fica com taxas zeradas
		assert.Equal(t, 0.0, first.Totals.MRRGrowthRate)
		assert.Equal(t, 0.0, first.Totals.RevenueChurnRate)

		// Segundo mês recalcula contra o MRR combinado do mês anterior
		second := timeseries[1]
		assert.Equal(t, 0.05, second.Totals.MRRGrowthRate)
		assert.Equal(t, 0.05, second.Totals.RevenueChurnRate)
	})

	t.Run("Imposto corporativo dispara no acumulado e zera na virada do ano", func(t *testing.T) {
		months := testMonths(t, "2026-11-01", "2027-01-01")

		project := simulationResultFor("box-a",
			&domain.MetricPoint{Date: "2026-11", GrossRevenue: 60000, MRR: 60000},
			&domain.MetricPoint{Date: "2026-12", GrossRevenue: 60000, MRR: 60000},
			&domain.MetricPoint{Date: "2027-01", GrossRevenue: 60000, MRR: 60000},
		)

		settings := domain.GlobalSettings{
			CorporateTaxThreshold: 100000,
			CorporateTaxRate:      0.1,
		}

		timeseries := buildCombinedTimeseries(
			months,
			[]projectSimulationResult{project},
			map[string]bool{"box-a": true},
			settings,
		)
		require.Len(t, timeseries, 3)

		// Novembro ainda abaixo do teto de isenção
		assert.Equal(t, 0.0, timeseries[0].Totals.CorporateIncomeTax)
		assert.Equal(t, 60000.0, timeseries[0].Totals.NetRevenue)

		// Dezembro ultrapassa o acumulado do ano
		assert.Equal(t, 6000.0, timeseries[1].Totals.CorporateIncomeTax)
		assert.Equal(t, 54000.0, timeseries[1].Totals.NetRevenue)

		// Janeiro começa um ano calendário novo
		assert.Equal(t, 0.0, timeseries[2].Totals.CorporateIncomeTax)
	})

	t.Run("Seleção vazia produz totais zerados", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-01-01")

		project := simulationResultFor("box-a",
			&domain.MetricPoint{Date: "2026-01", GrossRevenue: 60000, MRR: 60000},
		)

		timeseries := buildCombinedTimeseries(
			months,
			[]projectSimulationResult{project},
			map[string]bool{},
			domain.GlobalSettings{CorporateTaxThreshold: 1e9},
		)
		require.Len(t, timeseries, 1)

		assert.Equal(t, 0.0, timeseries[0].Totals.MRR)
		assert.Equal(t, 0, timeseries[0].Totals.ActiveCustomers)
		assert.Contains(t, timeseries[0].Projects, "box-a")
	})
}
