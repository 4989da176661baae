package forecasting

import (
	"github.com/pkg/errors"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
)

// Service implementa o Simulator
type Service struct{}

// NewService cria uma nova instância do motor de forecast
func NewService() Simulator {
	return &Service{}
}

// Simulate executa uma projeção completa. O único erro possível vem de um
// horizonte inválido (data final antes da inicial); todos os demais valores
// de entrada são cortados ou substituídos por fallbacks, nunca rejeitados.
func (s *Service) Simulate(
	request *domain.SimulationRequest,
	catalog []domain.ProjectDefinition,
) (*domain.SimulationResponse, error) {
	settings := resolveGlobalSettings(request)

	months, err := MonthRange(settings.StartDate, settings.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, "horizonte do forecast inválido")
	}

	baseProjects := catalog
	if len(baseProjects) == 0 {
		baseProjects = domain.DefaultProjects(monthKeys(months))
	}

	overridesByID := make(map[string]*domain.ProjectInput)
	if request != nil {
		for idx := range request.Projects {
			input := &request.Projects[idx]
			overridesByID[input.ID] = input
		}
	}

	resolvedProjects := make([]resolvedProject, len(baseProjects))
	for idx, project := range baseProjects {
		resolvedProjects[idx] = resolveProjectConfig(project, overridesByID[project.ID])
	}

	// Sem seleção explícita, todos os projetos entram no agregado
	selected := make(map[string]bool, len(resolvedProjects))
	if request != nil && len(request.SelectedProjectIDs) > 0 {
		for _, id := range request.SelectedProjectIDs {
			selected[id] = true
		}
	} else {
		for _, project := range resolvedProjects {
			selected[project.ID] = true
		}
	}

	results := make([]projectSimulationResult, len(resolvedProjects))
	for idx, project := range resolvedProjects {
		results[idx] = simulateProject(project, settings, months)
	}

	timeseries := buildCombinedTimeseries(months, results, selected, settings)

	cohorts := make([]domain.CohortMatrix, len(results))
	projectRefs := make([]domain.ProjectRef, len(results))
	for idx, result := range results {
		cohorts[idx] = result.cohorts
		projectRefs[idx] = result.project
	}

	return &domain.SimulationResponse{
		Summary:    buildSummary(timeseries),
		Timeseries: timeseries,
		Cohorts:    cohorts,
		Metadata: domain.ForecastMetadata{
			Months:         monthKeys(months),
			Projects:       projectRefs,
			GlobalDefaults: settings,
		},
	}, nil
}

// DefaultPayload monta o blueprint default a partir do catálogo (ou do
// catálogo de referência embutido quando vazio)
func (s *Service) DefaultPayload(catalog []domain.ProjectDefinition) (*domain.ForecastBlueprint, error) {
	settings := domain.DefaultGlobalSettings()

	months, err := MonthRange(settings.StartDate, settings.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, "horizonte default inválido")
	}

	projects := catalog
	if len(projects) == 0 {
		projects = domain.DefaultProjects(monthKeys(months))
	}

	blueprintProjects := make([]domain.BlueprintProject, len(projects))
	for idx, project := range projects {
		blueprintProjects[idx] = domain.BlueprintProject{
			ID:                  project.ID,
			Name:                project.Name,
			Description:         project.Description,
			StartingSubscribers: project.StartingSubscribers,
			Pricing:             project.Pricing,
			Metrics:             project.Metrics,
			MonthlyData:         project.MonthlyDefaults,
		}
	}

	return &domain.ForecastBlueprint{
		Projects:       blueprintProjects,
		GlobalSettings: settings,
	}, nil
}

// resolveGlobalSettings mescla o override parcial da requisição sobre os
// defaults, campo a campo. SharedExpenses mescla categoria a categoria e
// SharedExpenseOverrides mescla por chave de mês.
func resolveGlobalSettings(request *domain.SimulationRequest) domain.GlobalSettings {
	settings := domain.DefaultGlobalSettings()

	if request == nil || request.GlobalSettings == nil {
		return settings
	}

	input := request.GlobalSettings

	if input.StartDate != nil {
		settings.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		settings.EndDate = *input.EndDate
	}
	if input.TransactionFeeRate != nil {
		settings.TransactionFeeRate = *input.TransactionFeeRate
	}
	if input.FailedChargeRate != nil {
		settings.FailedChargeRate = *input.FailedChargeRate
	}
	if input.RefundRate != nil {
		settings.RefundRate = *input.RefundRate
	}
	if input.ReactivationRate != nil {
		settings.ReactivationRate = *input.ReactivationRate
	}
	if input.PlanUpgradeRate != nil {
		settings.PlanUpgradeRate = *input.PlanUpgradeRate
	}
	if input.PlanDowngradeRate != nil {
		settings.PlanDowngradeRate = *input.PlanDowngradeRate
	}
	if input.CouponRedemptionRate != nil {
		settings.CouponRedemptionRate = *input.CouponRedemptionRate
	}
	if input.VATRate != nil {
		settings.VATRate = *input.VATRate
	}
	if input.CorporateTaxRate != nil {
		settings.CorporateTaxRate = *input.CorporateTaxRate
	}
	if input.CorporateTaxThreshold != nil {
		settings.CorporateTaxThreshold = *input.CorporateTaxThreshold
	}

	settings.SharedExpenses = mergeSharedExpenses(settings.SharedExpenses, input.SharedExpenses)

	if len(input.SharedExpenseOverrides) > 0 {
		merged := make(domain.SharedExpenseSchedule, len(input.SharedExpenseOverrides))
		for month, override := range settings.SharedExpenseOverrides {
			merged[month] = override
		}
		for month, override := range input.SharedExpenseOverrides {
			merged[month] = override
		}
		settings.SharedExpenseOverrides = merged
	}

	return settings
}
