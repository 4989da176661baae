package forecasting

import (
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
)

// Constantes aplicadas quando nem o default do projeto nem um override
// cobrem um mês do horizonte
const (
	fallbackGrowthRate = 0.15
	fallbackChurnRate  = 0.04
)

// resolvedProject é uma definição de catálogo com os overrides escalares da
// requisição já aplicados, mais a lista de overrides mensais ainda por
// mesclar. Construído a cada simulação, nunca persistido.
type resolvedProject struct {
	domain.ProjectDefinition
	monthlyOverrides []domain.MonthlyOverride
}

// resolveProjectConfig aplica os overrides de um ProjectInput sobre a
// definição base. Campos nil mantêm o valor do catálogo.
func resolveProjectConfig(base domain.ProjectDefinition, input *domain.ProjectInput) resolvedProject {
	resolved := resolvedProject{ProjectDefinition: base}

	if input == nil {
		return resolved
	}

	if input.Name != nil {
		resolved.Name = *input.Name
	}
	if input.Description != nil {
		resolved.Description = *input.Description
	}
	if input.StartingSubscribers != nil {
		resolved.StartingSubscribers = *input.StartingSubscribers
	}

	if input.Pricing != nil {
		if input.Pricing.Base != nil {
			resolved.Pricing.Base = *input.Pricing.Base
		}
		if input.Pricing.PromoDiscount != nil {
			resolved.Pricing.PromoDiscount = *input.Pricing.PromoDiscount
		}
		if input.Pricing.PromoMonths != nil {
			resolved.Pricing.PromoMonths = *input.Pricing.PromoMonths
		}
	}

	if input.Metrics != nil {
		if input.Metrics.Cogs != nil {
			resolved.Metrics.Cogs = *input.Metrics.Cogs
		}
		if input.Metrics.Fees != nil {
			fee := *input.Metrics.Fees
			resolved.Metrics.Fees = &fee
		}
	}

	resolved.monthlyOverrides = input.MonthlyOverrides

	return resolved
}

// buildMonthlyRates resolve uma MonthlyRate por mês do horizonte. Para cada
// mês, campos de override presentes têm precedência individual sobre o
// default do projeto; overrides com chave fora do horizonte são ignorados
// silenciosamente.
func buildMonthlyRates(project resolvedProject, months []MonthDescriptor) []domain.MonthlyRate {
	overridesByMonth := make(map[string]domain.MonthlyOverride, len(project.monthlyOverrides))
	for _, entry := range project.monthlyOverrides {
		overridesByMonth[NormalizeMonthKey(entry.Date)] = entry
	}

	rates := make([]domain.MonthlyRate, len(months))
	for idx, month := range months {
		var defaultRate *domain.MonthlyRate
		if idx < len(project.MonthlyDefaults) {
			defaultRate = &project.MonthlyDefaults[idx]
		}

		rate := domain.MonthlyRate{
			Date:       month.Key,
			GrowthRate: fallbackGrowthRate,
			ChurnRate:  fallbackChurnRate,
		}

		if defaultRate != nil {
			rate.GrowthRate = defaultRate.GrowthRate
			rate.ChurnRate = defaultRate.ChurnRate
			rate.SalesMarketingExpense = defaultRate.SalesMarketingExpense
		}

		if override, ok := overridesByMonth[month.Key]; ok {
			if override.Growth != nil {
				rate.GrowthRate = *override.Growth
			}
			if override.Churn != nil {
				rate.ChurnRate = *override.Churn
			}
			if override.SalesMarketingExpense != nil {
				rate.SalesMarketingExpense = *override.SalesMarketingExpense
			}
		}

		rates[idx] = rate
	}

	return rates
}
