package catalog

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/subscription-forecast-api/infrastructure/repository"
	"github.com/vfg2006/subscription-forecast-api/internal/config"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
	"github.com/vfg2006/subscription-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/subscription-forecast-api/pkg/utils"
)

// CatalogService gerencia o catálogo de projetos consumido pelo motor de
// forecast. O motor nunca chama este serviço; apenas recebe a saída de List.
type CatalogService interface {
	// List retorna os projetos com as tabelas mensais normalizadas contra o
	// horizonte configurado
	List() ([]domain.ProjectDefinition, error)

	// Create cria um projeto vazio com tabela de taxas default
	Create(name string) (*domain.ProjectDefinition, error)

	// Delete remove um projeto do catálogo
	Delete(id string) (bool, error)

	// EnsureSeeded popula o catálogo de referência quando o banco está vazio
	EnsureSeeded() error
}

type Service struct {
	projectRepo repository.ProjectRepository
	cfg         *config.Config
}

func NewService(projectRepo repository.ProjectRepository, cfg *config.Config) CatalogService {
	return &Service{
		projectRepo: projectRepo,
		cfg:         cfg,
	}
}

func (s *Service) List() ([]domain.ProjectDefinition, error) {
	months, err := s.horizonMonths()
	if err != nil {
		return nil, err
	}

	stored, err := s.projectRepo.List()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar projetos")
	}

	projects := make([]domain.ProjectDefinition, len(stored))
	for idx, project := range stored {
		normalized := *project
		normalized.MonthlyDefaults = normalizeMonthlyDefaults(project.MonthlyDefaults, months)
		projects[idx] = normalized
	}

	return projects, nil
}

func (s *Service) Create(name string) (*domain.ProjectDefinition, error) {
	months, err := s.horizonMonths()
	if err != nil {
		return nil, err
	}

	candidateID := slugify(name)

	existing, err := s.projectRepo.GetByID(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao verificar id de projeto")
	}

	// Colisão de slug ganha um sufixo curto aleatório
	if existing != nil {
		suffix, err := utils.GenerateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar sufixo de id")
		}
		candidateID = candidateID + "-" + strings.ToLower(suffix)
	}

	// Projeto novo nasce sem custos: cogs e fees explícitos em zero, para a
	// taxa global de transação não ser aplicada por cima
	zeroFee := 0.0
	project := &domain.ProjectDefinition{
		ID:              candidateID,
		Name:            name,
		Metrics:         domain.ProjectMetrics{Cogs: 0, Fees: &zeroFee},
		MonthlyDefaults: domain.DefaultMonthlyRates(months),
	}

	if err := s.projectRepo.Save(project); err != nil {
		return nil, errors.Wrap(err, "erro ao salvar projeto")
	}

	logrus.WithFields(logrus.Fields{
		"project_id":   project.ID,
		"project_name": project.Name,
	}).Info("Projeto criado no catálogo")

	return project, nil
}

func (s *Service) Delete(id string) (bool, error) {
	deleted, err := s.projectRepo.Delete(id)
	if err != nil {
		return false, errors.Wrap(err, "erro ao remover projeto")
	}
	return deleted, nil
}

func (s *Service) EnsureSeeded() error {
	count, err := s.projectRepo.Count()
	if err != nil {
		return errors.Wrap(err, "erro ao contar projetos")
	}

	if count > 0 {
		return nil
	}

	months, err := s.horizonMonths()
	if err != nil {
		return err
	}

	defaults := domain.DefaultProjects(months)
	for idx := range defaults {
		if err := s.projectRepo.Save(&defaults[idx]); err != nil {
			return errors.Wrapf(err, "erro ao semear projeto %s", defaults[idx].ID)
		}
	}

	logrus.WithField("projects", len(defaults)).Info("Catálogo de referência semeado")

	return nil
}

func (s *Service) horizonMonths() ([]string, error) {
	months, err := forecasting.MonthRange(s.cfg.Forecast.StartDate, s.cfg.Forecast.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, "horizonte configurado inválido")
	}

	keys := make([]string, len(months))
	for idx, month := range months {
		keys[idx] = month.Key
	}
	return keys, nil
}

// normalizeMonthlyDefaults garante exatamente uma MonthlyRate por mês do
// horizonte: meses armazenados casam por chave, meses ausentes caem na tabela
// default (ou na última entrada dela)
func normalizeMonthlyDefaults(source []domain.MonthlyRate, months []string) []domain.MonthlyRate {
	byKey := make(map[string]domain.MonthlyRate, len(source))
	for _, entry := range source {
		if entry.Date != "" {
			byKey[entry.Date] = entry
		}
	}

	defaultRates := domain.DefaultMonthlyRates(months)

	normalized := make([]domain.MonthlyRate, len(months))
	for idx, month := range months {
		if existing, ok := byKey[month]; ok {
			normalized[idx] = existing
			continue
		}

		fallback := defaultRates[len(defaultRates)-1]
		if idx < len(defaultRates) {
			fallback = defaultRates[idx]
		}

		normalized[idx] = domain.MonthlyRate{
			Date:                  month,
			GrowthRate:            fallback.GrowthRate,
			ChurnRate:             fallback.ChurnRate,
			SalesMarketingExpense: fallback.SalesMarketingExpense,
		}
	}

	return normalized
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(value string) string {
	slug := strings.ToLower(strings.TrimSpace(value))
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "project"
	}
	return slug
}
