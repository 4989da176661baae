package forecasting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
)

func testMonths(t *testing.T, start, end string) []MonthDescriptor {
	t.Helper()
	months, err := MonthRange(start, end)
	require.NoError(t, err)
	return months
}

func flatRates(months []MonthDescriptor, growth, churn float64) []domain.MonthlyRate {
	rates := make([]domain.MonthlyRate, len(months))
	for idx, month := range months {
		rates[idx] = domain.MonthlyRate{
			Date:       month.Key,
			GrowthRate: growth,
			ChurnRate:  churn,
		}
	}
	return rates
}

func testProject(months []MonthDescriptor, subscribers int, price, growth, churn float64) resolvedProject {
	return resolvedProject{
		ProjectDefinition: domain.ProjectDefinition{
			ID:                  "box-test",
			Name:                "Box Test",
			StartingSubscribers: subscribers,
			Pricing:             domain.ProjectPricing{Base: price},
			MonthlyDefaults:     flatRates(months, growth, churn),
		},
	}
}

func TestSimulateProject(t *testing.T) {
	t.Run("Três meses com taxas constantes e settings zerados", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-03-01")
		project := testProject(months, 1000, 50, 0.10, 0.05)

		result := simulateProject(project, domain.GlobalSettings{}, months)
		require.Len(t, result.series, 3)

		first := result.series[0]
		assert.Equal(t, "2026-01", first.Date)
		assert.Equal(t, 100, first.NewCustomers)
		assert.Equal(t, 50, first.ChurnedCustomers)
		assert.Equal(t, 0, first.ReactivatedCustomers)
		assert.Equal(t, 1050, first.ActiveCustomers)
		assert.Equal(t, 52500.0, first.GrossRevenue)
		assert.Equal(t, 52500.0, first.MRR)
		assert.Equal(t, 0.0, first.VAT)
		assert.Equal(t, 52500.0, first.NetRevenue)
		assert.Equal(t, 50.0, first.ARPU)
		assert.Equal(t, 630000.0, first.ARR)
		assert.Equal(t, 1000.0, first.LTV)
		// MRR anterior implícito: 1000 assinantes x preço base
		assert.Equal(t, 0.05, first.MRRGrowthRate)
		assert.Equal(t, 0.05, first.RevenueChurnRate)
		assert.Equal(t, 2.0, first.QuickRatio)
		assert.Equal(t, 0.05, first.UserChurnRate)

		second := result.series[1]
		assert.Equal(t, 105, second.NewCustomers)
		assert.Equal(t, 53, second.ChurnedCustomers)
		assert.Equal(t, 1102, second.ActiveCustomers)
		assert.Equal(t, 55100.0, second.MRR)
		assert.Equal(t, 0.0495, second.MRRGrowthRate)
		assert.Equal(t, 0.0505, second.RevenueChurnRate)
		assert.Equal(t, 1.98, second.QuickRatio)

		third := result.series[2]
		assert.Equal(t, 110, third.NewCustomers)
		assert.Equal(t, 55, third.ChurnedCustomers)
		assert.Equal(t, 1157, third.ActiveCustomers)
		assert.Equal(t, 57850.0, third.GrossRevenue)
	})

	t.Run("Reativação drena o reservatório de churn", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-02-01")
		project := testProject(months, 1000, 50, 0.10, 0.05)
		settings := domain.GlobalSettings{ReactivationRate: 1.0}

		result := simulateProject(project, settings, months)

		first := result.series[0]
		assert.Equal(t, 50, first.ChurnedCustomers)
		assert.Equal(t, 50, first.ReactivatedCustomers)
		assert.Equal(t, 1100, first.ActiveCustomers)

		// Reservatório esvaziado: o mês seguinte só reativa o churn dele mesmo
		second := result.series[1]
		assert.Equal(t, second.ChurnedCustomers, second.ReactivatedCustomers)
	})

	t.Run("Janela promocional cobre os primeiros meses do horizonte", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-02-01")
		project := testProject(months, 1000, 50, 0.10, 0.05)
		project.Pricing.PromoDiscount = 0.2
		project.Pricing.PromoMonths = 1
		settings := domain.GlobalSettings{CouponRedemptionRate: 0.5}

		result := simulateProject(project, settings, months)

		// Mês 1 com preço efetivo de 40 e cupons resgatados
		first := result.series[0]
		assert.Equal(t, 42000.0, first.GrossRevenue)
		assert.Equal(t, 50, first.CouponsRedeemed)

		// Mês 2 volta ao preço cheio e sem cupom
		second := result.series[1]
		assert.Equal(t, 55100.0, second.GrossRevenue)
		assert.Equal(t, 0, second.CouponsRedeemed)
	})

	t.Run("Taxas fora do intervalo são cortadas", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-01-01")
		project := testProject(months, 1000, 50, 2.0, -0.5)

		result := simulateProject(project, domain.GlobalSettings{}, months)

		first := result.series[0]
		assert.Equal(t, 800, first.NewCustomers)
		assert.Equal(t, 0, first.ChurnedCustomers)
		assert.Equal(t, 0.8, 800.0/1000.0)
	})

	t.Run("Churn zero usa o piso do denominador no LTV", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-01-01")
		project := testProject(months, 1000, 50, 0, 0)

		result := simulateProject(project, domain.GlobalSettings{}, months)

		first := result.series[0]
		assert.Equal(t, 50.0, first.ARPU)
		assert.Equal(t, 500000.0, first.LTV)
	})

	t.Run("VAT é destacado da receita bruta", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-01-01")
		project := testProject(months, 1000, 50, 0.10, 0.05)
		settings := domain.GlobalSettings{VATRate: 0.05}

		result := simulateProject(project, settings, months)

		first := result.series[0]
		assert.Equal(t, 52500.0, first.GrossRevenue)
		assert.Equal(t, 50000.0, first.MRR)
		assert.Equal(t, 2500.0, first.VAT)
	})

	t.Run("Taxa de processamento do projeto tem precedência sobre a global", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-01-01")
		settings := domain.GlobalSettings{TransactionFeeRate: 0.029}

		withOwnFee := testProject(months, 1000, 50, 0.10, 0.05)
		withOwnFee.Metrics.Fees = floatPtr(0.02)
		result := simulateProject(withOwnFee, settings, months)
		assert.Equal(t, 1050.0, result.series[0].Fees) // 52500 * 0.02

		withGlobalFee := testProject(months, 1000, 50, 0.10, 0.05)
		result = simulateProject(withGlobalFee, settings, months)
		assert.Equal(t, 1522.5, result.series[0].Fees) // 52500 * 0.029
	})

	t.Run("Taxa zero explícita do projeto não cai na taxa global", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-01-01")
		settings := domain.GlobalSettings{TransactionFeeRate: 0.029}

		withZeroFee := testProject(months, 1000, 50, 0.10, 0.05)
		withZeroFee.Metrics.Fees = floatPtr(0)
		result := simulateProject(withZeroFee, settings, months)
		assert.Equal(t, 0.0, result.series[0].Fees)
		assert.Equal(t, 52500.0, result.series[0].NetRevenue)
	})

	t.Run("Upgrades e downgrades movem o MRR de expansão e contração", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-01-01")
		project := testProject(months, 1000, 50, 0, 0)
		settings := domain.GlobalSettings{PlanUpgradeRate: 0.02, PlanDowngradeRate: 0.01}

		result := simulateProject(project, settings, months)

		first := result.series[0]
		assert.Equal(t, 20, first.Upgrades)
		assert.Equal(t, 10, first.Downgrades)
		assert.Equal(t, 1000.0, first.ExpansionMRR)  // 20 x 50
		assert.Equal(t, 300.0, first.ContractionMRR) // 10 x 50 x 0.6
		assert.Equal(t, 50700.0, first.GrossRevenue) // 50000 + 1000 - 300
	})
}

func TestSimulateProjectCohorts(t *testing.T) {
	t.Run("Coorte nasce com retenção 1 e decai nos meses seguintes", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-03-01")
		project := testProject(months, 1000, 50, 0.10, 0.05)

		result := simulateProject(project, domain.GlobalSettings{}, months)
		require.Len(t, result.cohorts.Rows, 3)

		first := result.cohorts.Rows[0]
		assert.Equal(t, "2026-01", first.CohortStart)
		assert.Equal(t, []float64{1, 0.95, 0.9025}, first.Retention)

		second := result.cohorts.Rows[1]
		assert.Equal(t, "2026-02", second.CohortStart)
		assert.Equal(t, []float64{1, 0.95}, second.Retention)

		third := result.cohorts.Rows[2]
		assert.Equal(t, []float64{1}, third.Retention)
	})

	t.Run("Mês sem clientes novos não abre coorte", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-02-01")
		project := testProject(months, 1000, 50, 0, 0.05)

		result := simulateProject(project, domain.GlobalSettings{}, months)

		assert.Empty(t, result.cohorts.Rows)
	})

	t.Run("Retenção nunca fica negativa", func(t *testing.T) {
		months := testMonths(t, "2026-01-01", "2026-04-01")
		project := testProject(months, 1000, 50, 0.10, 0.9)

		result := simulateProject(project, domain.GlobalSettings{}, months)
		require.NotEmpty(t, result.cohorts.Rows)

		for _, row := range result.cohorts.Rows {
			for _, retention := range row.Retention {
				assert.GreaterOrEqual(t, retention, 0.0)
				assert.LessOrEqual(t, retention, 1.0)
			}
		}
	})
}

func TestBuildMonthlyRates(t *testing.T) {
	months := testMonths(t, "2026-01-01", "2026-03-01")

	growth := 0.3
	project := testProject(months, 100, 10, 0.10, 0.05)
	project.monthlyOverrides = []domain.MonthlyOverride{
		{Date: "2026-02", Growth: &growth},
		{Date: "2030-01", Growth: &growth}, // fora do horizonte
	}

	rates := buildMonthlyRates(project, months)
	require.Len(t, rates, 3)

	// Override cobre só o campo presente; o churn do mês segue o default
	assert.Equal(t, 0.10, rates[0].GrowthRate)
	assert.Equal(t, 0.3, rates[1].GrowthRate)
	assert.Equal(t, 0.05, rates[1].ChurnRate)
	assert.Equal(t, 0.10, rates[2].GrowthRate)
}

func TestBuildMonthlyRatesFallback(t *testing.T) {
	months := testMonths(t, "2026-01-01", "2026-03-01")

	// Projeto com tabela default mais curta que o horizonte
	project := resolvedProject{
		ProjectDefinition: domain.ProjectDefinition{
			ID:                  "short",
			StartingSubscribers: 100,
			Pricing:             domain.ProjectPricing{Base: 10},
			MonthlyDefaults:     flatRates(months[:1], 0.2, 0.03),
		},
	}

	rates := buildMonthlyRates(project, months)
	require.Len(t, rates, 3)

	assert.Equal(t, 0.2, rates[0].GrowthRate)
	assert.Equal(t, fallbackGrowthRate, rates[1].GrowthRate)
	assert.Equal(t, fallbackChurnRate, rates[2].ChurnRate)
}

func TestResolveProjectConfig(t *testing.T) {
	base := domain.ProjectDefinition{
		ID:                  "box",
		Name:                "Box",
		StartingSubscribers: 500,
		Pricing:             domain.ProjectPricing{Base: 30, PromoDiscount: 0.1, PromoMonths: 2},
		Metrics:             domain.ProjectMetrics{Cogs: 0.4, Fees: floatPtr(0.029)},
	}

	t.Run("Input nil mantém a definição do catálogo", func(t *testing.T) {
		resolved := resolveProjectConfig(base, nil)
		assert.Equal(t, base, resolved.ProjectDefinition)
	})

	t.Run("Campos presentes têm precedência individual", func(t *testing.T) {
		subscribers := 800
		price := 35.0
		cogs := 0.35

		resolved := resolveProjectConfig(base, &domain.ProjectInput{
			ID:                  "box",
			StartingSubscribers: &subscribers,
			Pricing:             &domain.ProjectPricingInput{Base: &price},
			Metrics:             &domain.ProjectMetricsInput{Cogs: &cogs},
		})

		assert.Equal(t, 800, resolved.StartingSubscribers)
		assert.Equal(t, 35.0, resolved.Pricing.Base)
		assert.Equal(t, 0.1, resolved.Pricing.PromoDiscount) // não sobrescrito
		assert.Equal(t, 0.35, resolved.Metrics.Cogs)
		require.NotNil(t, resolved.Metrics.Fees)
		assert.Equal(t, 0.029, *resolved.Metrics.Fees)
	})

	t.Run("Override de taxa zero é preservado como zero", func(t *testing.T) {
		resolved := resolveProjectConfig(base, &domain.ProjectInput{
			ID:      "box",
			Metrics: &domain.ProjectMetricsInput{Fees: floatPtr(0)},
		})

		require.NotNil(t, resolved.Metrics.Fees)
		assert.Equal(t, 0.0, *resolved.Metrics.Fees)
	})
}
