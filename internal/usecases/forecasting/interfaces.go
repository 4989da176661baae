package forecasting

import (
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
)

// Simulator define o contrato do motor de forecast. O motor é uma função
// pura: entradas idênticas produzem saídas idênticas, e nenhum estado
// sobrevive entre chamadas.
type Simulator interface {
	// Simulate executa a projeção completa: resolve settings e projetos,
	// simula cada projeto sobre o horizonte e agrega os selecionados
	Simulate(request *domain.SimulationRequest, catalog []domain.ProjectDefinition) (*domain.SimulationResponse, error)

	// DefaultPayload devolve o blueprint que o frontend edita antes de
	// disparar simulações
	DefaultPayload(catalog []domain.ProjectDefinition) (*domain.ForecastBlueprint, error)
}
