package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/subscription-forecast-api/infrastructure/repository"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
	"github.com/vfg2006/subscription-forecast-api/internal/usecases/catalog"
	"github.com/vfg2006/subscription-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/subscription-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/subscription-forecast-api/pkg/log"
)

// GetForecastDefaults retorna o blueprint default montado sobre o catálogo
// persistido, pronto para o frontend editar
func GetForecastDefaults(simulator forecasting.Simulator, catalogService catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projects, err := catalogService.List()
		if err != nil {
			logger.WithError(err).Error("forecast-defaults: erro ao carregar catálogo")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar catálogo de projetos", nil)
			return
		}

		blueprint, err := simulator.DefaultPayload(projects)
		if err != nil {
			logger.WithError(err).Error("forecast-defaults: erro ao montar blueprint")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar payload default", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(blueprint); err != nil {
			logger.WithError(err).Error("forecast-defaults: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// SimulateForecast executa a simulação completa a partir do payload recebido.
// Campos omitidos caem nos defaults do catálogo e das settings globais.
func SimulateForecast(simulator forecasting.Simulator, catalogService catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request domain.SimulationRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		projects, err := catalogService.List()
		if err != nil {
			logger.WithError(err).Error("forecast-simulate: erro ao carregar catálogo")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar catálogo de projetos", nil)
			return
		}

		response, err := simulator.Simulate(&request, projects)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"projects_payload":  len(request.Projects),
				"selected_projects": len(request.SelectedProjectIDs),
			}).Error("forecast-simulate: erro ao executar simulação")

			if errors.Is(err, forecasting.ErrInvalidDateRange) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, "Horizonte do forecast inválido: a data final precisa ser posterior à inicial", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrSimulation, "Erro ao executar a simulação", nil)
			return
		}

		logger.WithFields(log.Fields{
			"months":   len(response.Metadata.Months),
			"projects": len(response.Metadata.Projects),
		}).Info("forecast-simulate: simulação concluída")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("forecast-simulate: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetLatestSnapshot retorna o snapshot de baseline mais recente
func GetLatestSnapshot(snapshotRepo repository.SnapshotRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot, err := snapshotRepo.GetLatest()
		if err != nil {
			logger.WithError(err).Error("forecast-snapshot: erro ao buscar snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar snapshot de baseline", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrSnapshotNotFound, "Nenhum snapshot de baseline disponível", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			logger.WithError(err).Error("forecast-snapshot: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
