package scenario

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/subscription-forecast-api/infrastructure/repository"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
)

// ScenarioService persiste os conjuntos de ajustes nomeados que o front aplica
// sobre o baseline antes de chamar a simulação.
type ScenarioService interface {
	List() ([]*domain.Scenario, error)

	// Get retorna nil quando o cenário não existe
	Get(id string) (*domain.Scenario, error)

	Create(input *domain.ScenarioInput) (*domain.Scenario, error)

	// Update retorna nil quando o cenário não existe
	Update(id string, input *domain.ScenarioInput) (*domain.Scenario, error)
}

type Service struct {
	scenarioRepo repository.ScenarioRepository
}

func NewService(scenarioRepo repository.ScenarioRepository) ScenarioService {
	return &Service{
		scenarioRepo: scenarioRepo,
	}
}

func (s *Service) List() ([]*domain.Scenario, error) {
	scenarios, err := s.scenarioRepo.List()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar cenários")
	}
	return scenarios, nil
}

func (s *Service) Get(id string) (*domain.Scenario, error) {
	scenario, err := s.scenarioRepo.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar cenário")
	}
	return scenario, nil
}

func (s *Service) Create(input *domain.ScenarioInput) (*domain.Scenario, error) {
	now := time.Now().UTC()

	scenario := buildScenario(uuid.NewString(), input)
	scenario.CreatedAt = now
	scenario.UpdatedAt = now

	if err := s.scenarioRepo.Create(scenario); err != nil {
		return nil, errors.Wrap(err, "erro ao criar cenário")
	}

	logrus.WithFields(logrus.Fields{
		"scenario_id":   scenario.ID,
		"scenario_name": scenario.Name,
	}).Info("Cenário criado")

	return scenario, nil
}

func (s *Service) Update(id string, input *domain.ScenarioInput) (*domain.Scenario, error) {
	existing, err := s.scenarioRepo.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar cenário")
	}

	if existing == nil {
		return nil, nil
	}

	scenario := buildScenario(id, input)
	scenario.CreatedAt = existing.CreatedAt
	scenario.UpdatedAt = time.Now().UTC()

	updated, err := s.scenarioRepo.Update(scenario)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao atualizar cenário")
	}

	if !updated {
		return nil, nil
	}

	return scenario, nil
}

// buildScenario copia o input para o registro persistido, trocando mapas e
// slices nulos por vazios para que o payload sempre serialize como {} e []
func buildScenario(id string, input *domain.ScenarioInput) *domain.Scenario {
	scenario := &domain.Scenario{
		ID:                 id,
		Name:               input.Name,
		Notes:              input.Notes,
		Overrides:          input.Overrides,
		ProjectSettings:    input.ProjectSettings,
		SelectedProjectIDs: input.SelectedProjectIDs,
		GlobalSettings:     input.GlobalSettings,
	}

	if scenario.Overrides == nil {
		scenario.Overrides = map[string]domain.MonthlyOverrideState{}
	}
	if scenario.ProjectSettings == nil {
		scenario.ProjectSettings = domain.ProjectSettingsState{}
	}
	if scenario.SelectedProjectIDs == nil {
		scenario.SelectedProjectIDs = []string{}
	}

	return scenario
}
