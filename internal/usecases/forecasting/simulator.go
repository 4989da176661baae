package forecasting

import (
	"math"

	"github.com/vfg2006/subscription-forecast-api/internal/domain"
	"github.com/vfg2006/subscription-forecast-api/pkg/utils"
)

// Limites aplicados às taxas de entrada. Valores fora do intervalo são
// cortados, nunca rejeitados.
const (
	maxGrowthRate = 0.8
	maxChurnRate  = 0.9
)

// contractionDamping assume downgrades parciais: a perda de receita de um
// downgrade vale 60% de um assento cheio
const contractionDamping = 0.6

// ltvChurnFloor é o piso do denominador no cálculo de LTV
const ltvChurnFloor = 0.0001

// cohortState acompanha uma coorte aberta durante o loop de meses
type cohortState struct {
	key        string
	monthIndex int
	history    []float64
}

// projectSimulationResult é a saída da simulação de um único projeto
type projectSimulationResult struct {
	project domain.ProjectRef
	series  []*domain.MetricPoint
	cohorts domain.CohortMatrix
}

// simulateProject percorre o horizonte mês a mês carregando quatro estados:
// assinantes ativos, MRR do mês anterior, o reservatório de churn ainda não
// reativado e as coortes abertas. Valores monetários são arredondados a 2
// casas e razões a 4 no momento do cálculo, e os meses seguintes consomem os
// valores já arredondados.
func simulateProject(
	project resolvedProject,
	settings domain.GlobalSettings,
	months []MonthDescriptor,
) projectSimulationResult {
	monthlyRates := buildMonthlyRates(project, months)

	activeCustomers := project.StartingSubscribers
	previousMRR := float64(project.StartingSubscribers) * project.Pricing.Base
	churnReservoir := 0

	series := make([]*domain.MetricPoint, 0, len(months))
	cohorts := make([]*cohortState, 0, len(months))

	for index, rate := range monthlyRates {
		month := months[index]

		normalizedGrowth := utils.Clamp(rate.GrowthRate, 0, maxGrowthRate)
		normalizedChurn := utils.Clamp(rate.ChurnRate, 0, maxChurnRate)

		newCustomers := int(math.Round(float64(activeCustomers) * normalizedGrowth))
		churnedCustomers := int(math.Round(float64(activeCustomers) * normalizedChurn))

		// O reservatório de churn carrega de um mês para o outro; só sai
		// quem reativa
		churnReservoir += churnedCustomers
		reactivatedCustomers := int(math.Round(float64(churnReservoir) * settings.ReactivationRate))
		if reactivatedCustomers > churnReservoir {
			reactivatedCustomers = churnReservoir
		}
		churnReservoir -= reactivatedCustomers

		// A promoção cobre os primeiros N meses do horizonte inteiro, não de
		// cada coorte
		effectivePrice := project.Pricing.Base
		inPromoWindow := index < project.Pricing.PromoMonths
		if inPromoWindow {
			effectivePrice = project.Pricing.Base * (1 - project.Pricing.PromoDiscount)
		}

		upgrades := int(math.Round(float64(activeCustomers) * settings.PlanUpgradeRate))
		downgrades := int(math.Round(float64(activeCustomers) * settings.PlanDowngradeRate))

		churnMRR := float64(churnedCustomers) * effectivePrice
		newMRR := float64(newCustomers) * effectivePrice
		expansionMRR := float64(upgrades) * effectivePrice
		contractionMRR := float64(downgrades) * effectivePrice * contractionDamping

		nextActive := activeCustomers + newCustomers + reactivatedCustomers - churnedCustomers
		if nextActive < 0 {
			nextActive = 0
		}

		grossRevenue := utils.RoundWithTwoDecimalPlace(float64(nextActive)*effectivePrice + expansionMRR - contractionMRR)
		netRevenueBeforeVAT := utils.RoundWithTwoDecimalPlace(grossRevenue / (1 + settings.VATRate))
		vat := utils.RoundWithTwoDecimalPlace(grossRevenue - netRevenueBeforeVAT)

		// A taxa do projeto, quando definida, tem precedência sobre a global.
		// Zero explícito vale zero; só a ausência cai na taxa global.
		feeRate := settings.TransactionFeeRate
		if project.Metrics.Fees != nil {
			feeRate = *project.Metrics.Fees
		}

		fees := utils.RoundWithTwoDecimalPlace(grossRevenue * feeRate)
		failedCharges := utils.RoundWithTwoDecimalPlace(grossRevenue * settings.FailedChargeRate)
		refunds := utils.RoundWithTwoDecimalPlace(grossRevenue * settings.RefundRate)
		cogs := utils.RoundWithTwoDecimalPlace(netRevenueBeforeVAT * project.Metrics.Cogs)
		salesMarketingExpense := utils.RoundWithTwoDecimalPlace(rate.SalesMarketingExpense)
		variableExpenses := fees + failedCharges + refunds + cogs + salesMarketingExpense
		netRevenue := utils.RoundWithTwoDecimalPlace(grossRevenue - variableExpenses - vat)

		mrr := utils.RoundWithTwoDecimalPlace(netRevenueBeforeVAT)
		arpu := utils.RoundWithTwoDecimalPlace(utils.SafeDivide(mrr, float64(nextActive), 0))
		arr := utils.RoundWithTwoDecimalPlace(mrr * 12)
		ltv := utils.RoundWithTwoDecimalPlace(utils.SafeDivide(arpu, math.Max(normalizedChurn, ltvChurnFloor), arpu*24))
		mrrGrowthRate := utils.RoundWithFourDecimalPlace(utils.SafeDivide(mrr-previousMRR, previousMRR, 0))
		revenueChurnRate := utils.RoundWithFourDecimalPlace(utils.SafeDivide(churnMRR+contractionMRR, previousMRR, 0))
		quickRatio := utils.RoundWithTwoDecimalPlace(utils.SafeDivide(newMRR+expansionMRR, churnMRR+contractionMRR, 5))

		couponsRedeemed := 0
		if inPromoWindow {
			couponsRedeemed = int(math.Round(float64(newCustomers) * settings.CouponRedemptionRate))
		}

		series = append(series, &domain.MetricPoint{
			Date:                  month.Key,
			ActiveCustomers:       nextActive,
			NewCustomers:          newCustomers,
			ChurnedCustomers:      churnedCustomers,
			ReactivatedCustomers:  reactivatedCustomers,
			GrossRevenue:          grossRevenue,
			MRR:                   mrr,
			NetRevenue:            netRevenue,
			Fees:                  fees,
			Cogs:                  cogs,
			ARPU:                  arpu,
			ARR:                   arr,
			LTV:                   ltv,
			MRRGrowthRate:         mrrGrowthRate,
			UserChurnRate:         normalizedChurn,
			RevenueChurnRate:      revenueChurnRate,
			QuickRatio:            quickRatio,
			Upgrades:              upgrades,
			Downgrades:            downgrades,
			CouponsRedeemed:       couponsRedeemed,
			FailedCharges:         failedCharges,
			Refunds:               refunds,
			ExpansionMRR:          expansionMRR,
			ContractionMRR:        contractionMRR,
			ChurnMRR:              churnMRR,
			NewMRR:                newMRR,
			ActiveSubscriptions:   nextActive,
			SalesMarketingExpense: salesMarketingExpense,
			TotalExpenses:         variableExpenses,
			VAT:                   vat,
			Profit:                netRevenue,
		})

		// Avança a retenção de toda coorte aberta, exceto a que nasce neste mês
		for _, cohort := range cohorts {
			if cohort.monthIndex == index {
				continue
			}
			previousRetention := 1.0
			if len(cohort.history) > 0 {
				previousRetention = cohort.history[len(cohort.history)-1]
			}
			nextRetention := utils.RoundWithFourDecimalPlace(math.Max(0, previousRetention*(1-normalizedChurn)))
			cohort.history = append(cohort.history, nextRetention)
		}

		if newCustomers > 0 {
			cohorts = append(cohorts, &cohortState{
				key:        month.Key,
				monthIndex: index,
				history:    []float64{1},
			})
		}

		previousMRR = mrr
		activeCustomers = nextActive
	}

	rows := make([]domain.CohortRow, len(cohorts))
	for idx, cohort := range cohorts {
		rows[idx] = domain.CohortRow{
			CohortStart: cohort.key,
			Retention:   cohort.history,
		}
	}

	return projectSimulationResult{
		project: domain.ProjectRef{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
		},
		series: series,
		cohorts: domain.CohortMatrix{
			ProjectID: project.ID,
			Rows:      rows,
		},
	}
}
