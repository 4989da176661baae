package forecasting

import (
	"math"

	"github.com/vfg2006/subscription-forecast-api/internal/domain"
	"github.com/vfg2006/subscription-forecast-api/pkg/utils"
)

// buildSummary extrai as métricas de destaque do último mês da série combinada
func buildSummary(timeseries []domain.TimeseriesPoint) domain.DashboardSummary {
	if len(timeseries) == 0 {
		return domain.DashboardSummary{}
	}

	latest := timeseries[len(timeseries)-1].Totals

	return domain.DashboardSummary{
		TotalMRR:           utils.RoundWithTwoDecimalPlace(latest.MRR),
		GrossRevenue:       utils.RoundWithTwoDecimalPlace(latest.GrossRevenue),
		NetRevenue:         utils.RoundWithTwoDecimalPlace(latest.NetRevenue),
		TotalExpenses:      utils.RoundWithTwoDecimalPlace(latest.TotalExpenses),
		VAT:                utils.RoundWithTwoDecimalPlace(latest.VAT),
		CorporateIncomeTax: utils.RoundWithTwoDecimalPlace(latest.CorporateIncomeTax),
		Profit:             utils.RoundWithTwoDecimalPlace(latest.Profit),
		TotalCustomers:     int(math.Round(float64(latest.ActiveCustomers))),
		ARR:                utils.RoundWithTwoDecimalPlace(latest.ARR),
		LTV:                utils.RoundWithTwoDecimalPlace(latest.LTV),
		QuickRatio:         utils.RoundWithTwoDecimalPlace(latest.QuickRatio),
		MRRGrowthRate:      latest.MRRGrowthRate,
		UserChurnRate:      latest.UserChurnRate,
		RevenueChurnRate:   latest.RevenueChurnRate,
	}
}
