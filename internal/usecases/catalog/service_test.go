package catalog

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/subscription-forecast-api/infrastructure/repository/mocks"
	"github.com/vfg2006/subscription-forecast-api/internal/config"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Forecast: config.Forecast{
			StartDate: "2026-04-01",
			EndDate:   "2026-06-01",
		},
	}
}

func TestCatalogService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProjectRepo := mocks.NewMockProjectRepository(ctrl)

	service := &Service{
		projectRepo: mockProjectRepo,
		cfg:         testConfig(),
	}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, projects []domain.ProjectDefinition, err error)
	}{
		{
			name: "Tabela mensal incompleta é completada até o horizonte",
			setup: func() {
				mockProjectRepo.EXPECT().
					List().
					Return([]*domain.ProjectDefinition{
						{
							ID:   "box-a",
							Name: "Box A",
							MonthlyDefaults: []domain.MonthlyRate{
								{Date: "2026-04", GrowthRate: 0.5, ChurnRate: 0.02},
							},
						},
					}, nil)
			},
			validate: func(t *testing.T, projects []domain.ProjectDefinition, err error) {
				require.NoError(t, err)
				require.Len(t, projects, 1)
				require.Len(t, projects[0].MonthlyDefaults, 3)

				// O mês armazenado é preservado; os ausentes vêm da tabela default
				assert.Equal(t, 0.5, projects[0].MonthlyDefaults[0].GrowthRate)
				assert.Equal(t, "2026-05", projects[0].MonthlyDefaults[1].Date)
				assert.Greater(t, projects[0].MonthlyDefaults[1].GrowthRate, 0.0)
				assert.Equal(t, "2026-06", projects[0].MonthlyDefaults[2].Date)
			},
		},
		{
			name: "Erro do repositório é propagado",
			setup: func() {
				mockProjectRepo.EXPECT().
					List().
					Return(nil, errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, projects []domain.ProjectDefinition, err error) {
				assert.Error(t, err)
				assert.Nil(t, projects)
			},
		},
		{
			name: "Catálogo vazio retorna lista vazia sem erro",
			setup: func() {
				mockProjectRepo.EXPECT().
					List().
					Return([]*domain.ProjectDefinition{}, nil)
			},
			validate: func(t *testing.T, projects []domain.ProjectDefinition, err error) {
				require.NoError(t, err)
				assert.Empty(t, projects)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			projects, err := service.List()

			tt.validate(t, projects, err)
		})
	}
}

func TestCatalogService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProjectRepo := mocks.NewMockProjectRepository(ctrl)

	service := &Service{
		projectRepo: mockProjectRepo,
		cfg:         testConfig(),
	}

	tests := []struct {
		name        string
		projectName string
		setup       func()
		validate    func(t *testing.T, project *domain.ProjectDefinition, err error)
	}{
		{
			name:        "Nome vira slug e a tabela default cobre o horizonte",
			projectName: "Café da Manhã Box!",
			setup: func() {
				mockProjectRepo.EXPECT().
					GetByID("caf-da-manh-box").
					Return(nil, nil)

				mockProjectRepo.EXPECT().
					Save(gomock.Any()).
					Return(nil)
			},
			validate: func(t *testing.T, project *domain.ProjectDefinition, err error) {
				require.NoError(t, err)
				assert.Equal(t, "caf-da-manh-box", project.ID)
				assert.Equal(t, "Café da Manhã Box!", project.Name)
				assert.Len(t, project.MonthlyDefaults, 3)

				// Projeto novo nasce com fees zero explícito, não ausente
				require.NotNil(t, project.Metrics.Fees)
				assert.Equal(t, 0.0, *project.Metrics.Fees)
				assert.Equal(t, 0.0, project.Metrics.Cogs)
			},
		},
		{
			name:        "Colisão de slug recebe sufixo aleatório",
			projectName: "Box A",
			setup: func() {
				mockProjectRepo.EXPECT().
					GetByID("box-a").
					Return(&domain.ProjectDefinition{ID: "box-a"}, nil)

				mockProjectRepo.EXPECT().
					Save(gomock.Any()).
					Return(nil)
			},
			validate: func(t *testing.T, project *domain.ProjectDefinition, err error) {
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(project.ID, "box-a-"))
				assert.Len(t, project.ID, len("box-a-")+6)
				assert.Equal(t, strings.ToLower(project.ID), project.ID)
			},
		},
		{
			name:        "Nome sem caracteres válidos cai no slug default",
			projectName: "!!!",
			setup: func() {
				mockProjectRepo.EXPECT().
					GetByID("project").
					Return(nil, nil)

				mockProjectRepo.EXPECT().
					Save(gomock.Any()).
					Return(nil)
			},
			validate: func(t *testing.T, project *domain.ProjectDefinition, err error) {
				require.NoError(t, err)
				assert.Equal(t, "project", project.ID)
			},
		},
		{
			name:        "Falha ao salvar é propagada",
			projectName: "Box B",
			setup: func() {
				mockProjectRepo.EXPECT().
					GetByID("box-b").
					Return(nil, nil)

				mockProjectRepo.EXPECT().
					Save(gomock.Any()).
					Return(errors.New("violação de constraint"))
			},
			validate: func(t *testing.T, project *domain.ProjectDefinition, err error) {
				assert.Error(t, err)
				assert.Nil(t, project)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			project, err := service.Create(tt.projectName)

			tt.validate(t, project, err)
		})
	}
}

func TestCatalogService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProjectRepo := mocks.NewMockProjectRepository(ctrl)

	service := &Service{
		projectRepo: mockProjectRepo,
		cfg:         testConfig(),
	}

	t.Run("Remoção existente retorna true", func(t *testing.T) {
		mockProjectRepo.EXPECT().
			Delete("box-a").
			Return(true, nil)

		deleted, err := service.Delete("box-a")
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("Id inexistente retorna false sem erro", func(t *testing.T) {
		mockProjectRepo.EXPECT().
			Delete("nope").
			Return(false, nil)

		deleted, err := service.Delete("nope")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestCatalogService_EnsureSeeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProjectRepo := mocks.NewMockProjectRepository(ctrl)

	service := &Service{
		projectRepo: mockProjectRepo,
		cfg:         testConfig(),
	}

	t.Run("Banco vazio recebe o catálogo de referência", func(t *testing.T) {
		mockProjectRepo.EXPECT().
			Count().
			Return(0, nil)

		mockProjectRepo.EXPECT().
			Save(gomock.Any()).
			Return(nil).
			Times(5)

		assert.NoError(t, service.EnsureSeeded())
	})

	t.Run("Banco populado não é tocado", func(t *testing.T) {
		mockProjectRepo.EXPECT().
			Count().
			Return(5, nil)

		assert.NoError(t, service.EnsureSeeded())
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Nome simples", input: "Flower Box", expected: "flower-box"},
		{name: "Espaços e pontuação nas bordas", input: "  Dog Treats!  ", expected: "dog-treats"},
		{name: "Só caracteres inválidos", input: "###", expected: "project"},
		{name: "Vazio", input: "", expected: "project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.input))
		})
	}
}
