package forecasting

import (
	"math"

	"github.com/vfg2006/subscription-forecast-api/internal/domain"
	"github.com/vfg2006/subscription-forecast-api/pkg/utils"
)

// combinedLTVChurnMultiplier é o fallback de LTV no nível agregado. O valor
// difere de propósito do multiplicador usado por projeto (24): cada nível tem
// sua própria calibração.
const combinedLTVChurnMultiplier = 18

// aggregatePoints soma campo a campo os pontos dos projetos selecionados em
// um mês. Apenas os campos aditivos são somados; as razões derivadas são
// recalculadas depois sobre os totais.
func aggregatePoints(points []*domain.MetricPoint) *domain.MetricPoint {
	totals := &domain.MetricPoint{}

	for _, point := range points {
		totals.ActiveCustomers += point.ActiveCustomers
		totals.NewCustomers += point.NewCustomers
		totals.ChurnedCustomers += point.ChurnedCustomers
		totals.ReactivatedCustomers += point.ReactivatedCustomers
		totals.GrossRevenue += point.GrossRevenue
		totals.MRR += point.MRR
		totals.NetRevenue += point.NetRevenue
		totals.Fees += point.Fees
		totals.Cogs += point.Cogs
		totals.Upgrades += point.Upgrades
		totals.Downgrades += point.Downgrades
		totals.OtherRevenue += point.OtherRevenue
		totals.CouponsRedeemed += point.CouponsRedeemed
		totals.FailedCharges += point.FailedCharges
		totals.Refunds += point.Refunds
		totals.ExpansionMRR += point.ExpansionMRR
		totals.ContractionMRR += point.ContractionMRR
		totals.ChurnMRR += point.ChurnMRR
		totals.NewMRR += point.NewMRR
		totals.ActiveSubscriptions += point.ActiveSubscriptions
		totals.SalesMarketingExpense += point.SalesMarketingExpense
		totals.SharedExpenses += point.SharedExpenses
		totals.TotalExpenses += point.TotalExpenses
		totals.VAT += point.VAT
		totals.CorporateIncomeTax += point.CorporateIncomeTax
		totals.Profit += point.Profit
	}

	return totals
}

// mergeSharedExpenses aplica um override parcial de despesas compartilhadas
// sobre a base, categoria a categoria
func mergeSharedExpenses(base domain.SharedExpenses, override *domain.SharedExpensesOverride) domain.SharedExpenses {
	if override == nil {
		return base
	}

	merged := base
	if override.GeneralAndAdministrative != nil {
		merged.GeneralAndAdministrative = *override.GeneralAndAdministrative
	}
	if override.TechnologyAndDevelopment != nil {
		merged.TechnologyAndDevelopment = *override.TechnologyAndDevelopment
	}
	if override.FulfillmentAndService != nil {
		merged.FulfillmentAndService = *override.FulfillmentAndService
	}
	if override.DepreciationAndAmortization != nil {
		merged.DepreciationAndAmortization = *override.DepreciationAndAmortization
	}
	return merged
}

// monthlySharedExpenseTotal resolve o total de despesas compartilhadas de um
// mês: o cronograma de overrides tem precedência por categoria sobre a base
func monthlySharedExpenseTotal(monthKey string, base domain.SharedExpenses, overrides domain.SharedExpenseSchedule) float64 {
	effective := base
	if monthOverride, ok := overrides[monthKey]; ok {
		effective = mergeSharedExpenses(base, &monthOverride)
	}

	total := effective.GeneralAndAdministrative +
		effective.TechnologyAndDevelopment +
		effective.FulfillmentAndService +
		effective.DepreciationAndAmortization

	return utils.RoundWithTwoDecimalPlace(total)
}

// finalizeAggregatePoint recalcula as razões derivadas sobre os totais
// combinados do mês
func finalizeAggregatePoint(point *domain.MetricPoint) {
	point.ARPU = utils.RoundWithTwoDecimalPlace(utils.SafeDivide(point.MRR, float64(point.ActiveCustomers), 0))
	point.ARR = utils.RoundWithTwoDecimalPlace(point.MRR * 12)
	point.UserChurnRate = utils.RoundWithFourDecimalPlace(
		utils.SafeDivide(float64(point.ChurnedCustomers), float64(point.ActiveCustomers+point.ChurnedCustomers), 0),
	)
	point.LTV = utils.RoundWithTwoDecimalPlace(
		utils.SafeDivide(point.ARPU, math.Max(point.UserChurnRate, ltvChurnFloor), point.ARPU*combinedLTVChurnMultiplier),
	)
	point.QuickRatio = utils.RoundWithTwoDecimalPlace(
		utils.SafeDivide(point.NewMRR+point.ExpansionMRR, point.ChurnMRR+point.ContractionMRR, 5),
	)
}

// buildCombinedTimeseries monta a série combinada mês a mês: soma dos
// projetos selecionados, despesas compartilhadas do mês e imposto corporativo
// disparado pela receita bruta acumulada no ano calendário
func buildCombinedTimeseries(
	months []MonthDescriptor,
	results []projectSimulationResult,
	selected map[string]bool,
	settings domain.GlobalSettings,
) []domain.TimeseriesPoint {
	// Receita bruta acumulada por ano calendário; cada ano conta do zero
	yearlyRevenue := make(map[int]float64)

	timeseries := make([]domain.TimeseriesPoint, 0, len(months))

	for index, month := range months {
		projects := make(map[string]*domain.MetricPoint, len(results))
		selectedPoints := make([]*domain.MetricPoint, 0, len(results))

		for _, result := range results {
			point := result.series[index]
			projects[result.project.ID] = point
			if selected[result.project.ID] {
				selectedPoints = append(selectedPoints, point)
			}
		}

		totals := aggregatePoints(selectedPoints)
		totals.Date = month.Key

		sharedExpenseTotal := monthlySharedExpenseTotal(month.Key, settings.SharedExpenses, settings.SharedExpenseOverrides)
		totals.SharedExpenses = sharedExpenseTotal
		totals.TotalExpenses += sharedExpenseTotal

		year := month.Date.Year()
		cumulativeRevenue := yearlyRevenue[year] + totals.GrossRevenue
		yearlyRevenue[year] = cumulativeRevenue

		// Atingido o teto de isenção do ano, o imposto vale deste mês até o
		// fim do ano calendário
		taxableBase := math.Max(0, totals.GrossRevenue-totals.TotalExpenses-totals.VAT)
		corporateIncomeTax := 0.0
		if cumulativeRevenue >= settings.CorporateTaxThreshold {
			corporateIncomeTax = utils.RoundWithTwoDecimalPlace(taxableBase * settings.CorporateTaxRate)
		}
		totals.CorporateIncomeTax = corporateIncomeTax

		totalExpenseWithTax := totals.TotalExpenses + totals.VAT + corporateIncomeTax
		totals.NetRevenue = utils.RoundWithTwoDecimalPlace(totals.GrossRevenue - totalExpenseWithTax)
		totals.Profit = totals.NetRevenue

		finalizeAggregatePoint(totals)

		timeseries = append(timeseries, domain.TimeseriesPoint{
			Date:     month.Key,
			Totals:   totals,
			Projects: projects,
		})
	}

	recomputeTrailingRates(timeseries)

	return timeseries
}

// recomputeTrailingRates refaz as taxas mês a mês da série combinada usando o
// MRR combinado do mês anterior, e não a soma das taxas por projeto. O
// primeiro mês não tem anterior e fica fixo em zero.
func recomputeTrailingRates(timeseries []domain.TimeseriesPoint) {
	for index := range timeseries {
		totals := timeseries[index].Totals
		if index == 0 {
			totals.MRRGrowthRate = 0
			totals.RevenueChurnRate = 0
			continue
		}

		previous := timeseries[index-1].Totals
		totals.MRRGrowthRate = utils.RoundWithFourDecimalPlace(
			utils.SafeDivide(totals.MRR-previous.MRR, previous.MRR, 0),
		)
		totals.RevenueChurnRate = utils.RoundWithFourDecimalPlace(
			utils.SafeDivide(totals.ChurnMRR+totals.ContractionMRR, previous.MRR, 0),
		)
	}
}
