package forecasting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
)

func TestServiceSimulate(t *testing.T) {
	service := NewService()

	t.Run("Requisição vazia simula o catálogo embutido no horizonte default", func(t *testing.T) {
		response, err := service.Simulate(&domain.SimulationRequest{}, nil)
		require.NoError(t, err)

		assert.Len(t, response.Metadata.Months, 33)
		assert.Equal(t, "2026-04", response.Metadata.Months[0])
		assert.Equal(t, "2028-12", response.Metadata.Months[32])

		require.Len(t, response.Metadata.Projects, 5)
		assert.Equal(t, "flower", response.Metadata.Projects[0].ID)
		assert.Equal(t, "education-pack", response.Metadata.Projects[4].ID)

		assert.Len(t, response.Timeseries, 33)
		assert.Len(t, response.Cohorts, 5)

		assert.Greater(t, response.Summary.TotalMRR, 0.0)
		assert.Greater(t, response.Summary.TotalCustomers, 0)
	})

	t.Run("Requisição nil equivale à requisição vazia", func(t *testing.T) {
		fromNil, err := service.Simulate(nil, nil)
		require.NoError(t, err)

		fromEmpty, err := service.Simulate(&domain.SimulationRequest{}, nil)
		require.NoError(t, err)

		assert.Equal(t, fromEmpty, fromNil)
	})

	t.Run("Simulações idênticas produzem respostas idênticas", func(t *testing.T) {
		request := &domain.SimulationRequest{
			SelectedProjectIDs: []string{"flower", "coffee-club"},
		}

		first, err := service.Simulate(request, nil)
		require.NoError(t, err)

		second, err := service.Simulate(request, nil)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Catálogo persistido substitui o embutido", func(t *testing.T) {
		months, err := MonthRange(domain.DefaultForecastStart, domain.DefaultForecastEnd)
		require.NoError(t, err)

		catalog := []domain.ProjectDefinition{
			{
				ID:                  "snack-box",
				Name:                "Snack Box",
				StartingSubscribers: 300,
				Pricing:             domain.ProjectPricing{Base: 25},
				MonthlyDefaults:     domain.DefaultMonthlyRates(monthKeys(months)),
			},
		}

		response, err := service.Simulate(&domain.SimulationRequest{}, catalog)
		require.NoError(t, err)

		require.Len(t, response.Metadata.Projects, 1)
		assert.Equal(t, "snack-box", response.Metadata.Projects[0].ID)
	})

	t.Run("Seleção parcial não esconde projetos da quebra por projeto", func(t *testing.T) {
		request := &domain.SimulationRequest{
			SelectedProjectIDs: []string{"flower"},
		}

		response, err := service.Simulate(request, nil)
		require.NoError(t, err)

		assert.Len(t, response.Metadata.Projects, 5)

		first := response.Timeseries[0]
		require.Contains(t, first.Projects, "flower")
		require.Contains(t, first.Projects, "dog-box")

		// Os totais refletem só o projeto selecionado
		assert.Equal(t, first.Projects["flower"].MRR, first.Totals.MRR)
		assert.Equal(t, first.Projects["flower"].ActiveCustomers, first.Totals.ActiveCustomers)
	})

	t.Run("Override mensal da requisição chega ao motor", func(t *testing.T) {
		zero := 0.0
		request := &domain.SimulationRequest{
			Projects: []domain.ProjectInput{
				{
					ID: "flower",
					MonthlyOverrides: []domain.MonthlyOverride{
						{Date: "2026-04", Growth: &zero, Churn: &zero},
					},
				},
			},
		}

		response, err := service.Simulate(request, nil)
		require.NoError(t, err)

		first := response.Timeseries[0].Projects["flower"]
		assert.Equal(t, 0, first.NewCustomers)
		assert.Equal(t, 0, first.ChurnedCustomers)
		assert.Equal(t, 820, first.ActiveCustomers)
	})

	t.Run("Horizonte invertido retorna erro de intervalo", func(t *testing.T) {
		start := "2027-01-01"
		end := "2026-01-01"
		request := &domain.SimulationRequest{
			GlobalSettings: &domain.GlobalSettingsInput{
				StartDate: &start,
				EndDate:   &end,
			},
		}

		response, err := service.Simulate(request, nil)
		assert.Nil(t, response)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestServiceDefaultPayload(t *testing.T) {
	service := NewService()

	t.Run("Catálogo vazio devolve o blueprint embutido", func(t *testing.T) {
		blueprint, err := service.DefaultPayload(nil)
		require.NoError(t, err)

		require.Len(t, blueprint.Projects, 5)
		assert.Equal(t, "flower", blueprint.Projects[0].ID)
		assert.Len(t, blueprint.Projects[0].MonthlyData, 33)
		assert.Equal(t, domain.DefaultGlobalSettings(), blueprint.GlobalSettings)
	})

	t.Run("Catálogo persistido aparece no blueprint", func(t *testing.T) {
		catalog := []domain.ProjectDefinition{
			{ID: "snack-box", Name: "Snack Box", Pricing: domain.ProjectPricing{Base: 25}},
		}

		blueprint, err := service.DefaultPayload(catalog)
		require.NoError(t, err)

		require.Len(t, blueprint.Projects, 1)
		assert.Equal(t, "Snack Box", blueprint.Projects[0].Name)
	})
}

func TestResolveGlobalSettings(t *testing.T) {
	t.Run("Requisição sem settings devolve os defaults", func(t *testing.T) {
		assert.Equal(t, domain.DefaultGlobalSettings(), resolveGlobalSettings(nil))
		assert.Equal(t, domain.DefaultGlobalSettings(), resolveGlobalSettings(&domain.SimulationRequest{}))
	})

	t.Run("Campos presentes sobrescrevem individualmente", func(t *testing.T) {
		vat := 0.0
		threshold := 500000.0
		settings := resolveGlobalSettings(&domain.SimulationRequest{
			GlobalSettings: &domain.GlobalSettingsInput{
				VATRate:               &vat,
				CorporateTaxThreshold: &threshold,
			},
		})

		assert.Equal(t, 0.0, settings.VATRate)
		assert.Equal(t, 500000.0, settings.CorporateTaxThreshold)
		// Os demais campos continuam com os defaults
		assert.Equal(t, 0.029, settings.TransactionFeeRate)
		assert.Equal(t, domain.DefaultForecastStart, settings.StartDate)
	})

	t.Run("SharedExpenses mescla categoria a categoria", func(t *testing.T) {
		settings := resolveGlobalSettings(&domain.SimulationRequest{
			GlobalSettings: &domain.GlobalSettingsInput{
				SharedExpenses: &domain.SharedExpensesOverride{
					TechnologyAndDevelopment: floatPtr(12000),
				},
			},
		})

		assert.Equal(t, 12000.0, settings.SharedExpenses.TechnologyAndDevelopment)
		assert.Equal(t, 0.0, settings.SharedExpenses.GeneralAndAdministrative)
	})

	t.Run("Cronograma de overrides mescla por chave de mês", func(t *testing.T) {
		settings := resolveGlobalSettings(&domain.SimulationRequest{
			GlobalSettings: &domain.GlobalSettingsInput{
				SharedExpenseOverrides: domain.SharedExpenseSchedule{
					"2026-06": {FulfillmentAndService: floatPtr(4000)},
				},
			},
		})

		require.Contains(t, settings.SharedExpenseOverrides, "2026-06")
		assert.Equal(t, 4000.0, *settings.SharedExpenseOverrides["2026-06"].FulfillmentAndService)
	})
}
