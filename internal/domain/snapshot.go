package domain

import "time"

// ForecastSnapshot é o resumo da simulação baseline persistido pelo
// agendador, para que o dashboard carregue as métricas de destaque sem pagar
// por uma simulação completa
type ForecastSnapshot struct {
	ID           int64            `json:"id"`
	TakenAt      time.Time        `json:"takenAt"`
	MonthCount   int              `json:"monthCount"`
	ProjectCount int              `json:"projectCount"`
	Summary      DashboardSummary `json:"summary"`
	CreatedAt    time.Time        `json:"createdAt"`
}
