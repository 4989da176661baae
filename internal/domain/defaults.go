package domain

import (
	"math"

	"github.com/vfg2006/subscription-forecast-api/pkg/utils"
)

// Horizonte default do forecast (inclusivo, granularidade mensal)
const (
	DefaultForecastStart = "2026-04-01"
	DefaultForecastEnd   = "2028-12-01"
)

// DefaultGlobalSettings retorna as constantes default do forecast. Cada
// chamada devolve uma cópia nova; a requisição mescla seus overrides por cima.
func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{
		StartDate:             DefaultForecastStart,
		EndDate:               DefaultForecastEnd,
		TransactionFeeRate:    0.029,
		FailedChargeRate:      0.01,
		RefundRate:            0.005,
		ReactivationRate:      0.02,
		PlanUpgradeRate:       0.015,
		PlanDowngradeRate:     0.008,
		CouponRedemptionRate:  0.3,
		VATRate:               0.05,
		CorporateTaxRate:      0.05,
		CorporateTaxThreshold: 375000,
		SharedExpenses: SharedExpenses{
			GeneralAndAdministrative:    0,
			TechnologyAndDevelopment:    0,
			FulfillmentAndService:       0,
			DepreciationAndAmortization: 0,
		},
	}
}

// buildSequence gera uma sequência com deriva linear e modulação senoidal,
// usada para dar sazonalidade às tabelas de taxas default
func buildSequence(length int, start, drift, amplitude float64) []float64 {
	sequence := make([]float64, length)
	for idx := range sequence {
		seasonal := math.Sin(float64(idx)/2.5) * amplitude
		sequence[idx] = utils.RoundWithFourDecimalPlace(start + drift*float64(idx) + seasonal)
	}
	return sequence
}

// DefaultMonthlyRates devolve a tabela default de taxas mensais alinhada com
// a sequência de meses do horizonte
func DefaultMonthlyRates(months []string) []MonthlyRate {
	growthSequence := buildSequence(len(months), 0.22, -0.0022, 0.015)
	churnSequence := buildSequence(len(months), 0.07, 0.0004, 0.01)

	rates := make([]MonthlyRate, len(months))
	for idx, month := range months {
		rates[idx] = MonthlyRate{
			Date:                  month,
			GrowthRate:            math.Max(0.05, growthSequence[idx]),
			ChurnRate:             math.Max(0.015, churnSequence[idx]),
			SalesMarketingExpense: 0,
		}
	}
	return rates
}

// scaleMonthlyRates deriva a tabela de um projeto a partir da tabela default,
// multiplicando o crescimento e deslocando o churn
func scaleMonthlyRates(months []string, growthMultiplier, churnDelta float64) []MonthlyRate {
	base := DefaultMonthlyRates(months)
	scaled := make([]MonthlyRate, len(base))
	for idx, rate := range base {
		scaled[idx] = MonthlyRate{
			Date:                  rate.Date,
			GrowthRate:            utils.RoundWithFourDecimalPlace(math.Max(0.03, math.Min(0.45, rate.GrowthRate*growthMultiplier))),
			ChurnRate:             utils.RoundWithFourDecimalPlace(math.Max(0.01, rate.ChurnRate+churnDelta)),
			SalesMarketingExpense: rate.SalesMarketingExpense,
		}
	}
	return scaled
}

// ratio devolve um ponteiro para uma razão literal das tabelas default
func ratio(value float64) *float64 {
	return &value
}

// DefaultProjects retorna o catálogo de referência embutido, usado quando o
// armazenamento de projetos ainda não foi populado
func DefaultProjects(months []string) []ProjectDefinition {
	return []ProjectDefinition{
		{
			ID:                  "flower",
			Name:                "Flower Subscription",
			Description:         "Weekly designer bouquets delivered fresh.",
			StartingSubscribers: 820,
			Pricing:             ProjectPricing{Base: 49, PromoDiscount: 0.4, PromoMonths: 3},
			Metrics:             ProjectMetrics{Cogs: 0.48, Fees: ratio(0.029)},
			MonthlyDefaults:     scaleMonthlyRates(months, 1.05, -0.01),
		},
		{
			ID:                  "dog-box",
			Name:                "Dog Treat Box",
			Description:         "Healthy treats and toys for dogs.",
			StartingSubscribers: 1250,
			Pricing:             ProjectPricing{Base: 39, PromoDiscount: 0.35, PromoMonths: 2},
			Metrics:             ProjectMetrics{Cogs: 0.44, Fees: ratio(0.029)},
			MonthlyDefaults:     scaleMonthlyRates(months, 0.95, -0.005),
		},
		{
			ID:                  "coffee-club",
			Name:                "Coffee Club",
			Description:         "Single-origin beans roasted weekly.",
			StartingSubscribers: 2100,
			Pricing:             ProjectPricing{Base: 29, PromoDiscount: 0.25, PromoMonths: 1},
			Metrics:             ProjectMetrics{Cogs: 0.38, Fees: ratio(0.029)},
			MonthlyDefaults:     scaleMonthlyRates(months, 0.9, 0.0),
		},
		{
			ID:                  "wellness-kit",
			Name:                "Wellness Kit",
			Description:         "Supplements and wellness essentials.",
			StartingSubscribers: 640,
			Pricing:             ProjectPricing{Base: 59, PromoDiscount: 0.3, PromoMonths: 3},
			Metrics:             ProjectMetrics{Cogs: 0.5, Fees: ratio(0.03)},
			MonthlyDefaults:     scaleMonthlyRates(months, 1.1, -0.012),
		},
		{
			ID:                  "education-pack",
			Name:                "Education Pack",
			Description:         "STEM projects for kids delivered monthly.",
			StartingSubscribers: 980,
			Pricing:             ProjectPricing{Base: 44, PromoDiscount: 0.28, PromoMonths: 2},
			Metrics:             ProjectMetrics{Cogs: 0.46, Fees: ratio(0.029)},
			MonthlyDefaults:     scaleMonthlyRates(months, 1, -0.004),
		},
	}
}
