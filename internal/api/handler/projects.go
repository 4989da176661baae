package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/subscription-forecast-api/internal/usecases/catalog"
	"github.com/vfg2006/subscription-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/subscription-forecast-api/pkg/log"
)

// CreateProjectRequest é o corpo aceito na criação de projetos
type CreateProjectRequest struct {
	Name string `json:"name"`
}

func ProjectList(service catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		projects, err := service.List()
		if err != nil {
			logger.WithError(err).Error("projects: erro ao listar projetos")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar projetos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(projects); err != nil {
			logger.WithError(err).Error("projects: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func CreateProject(service catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if strings.TrimSpace(request.Name) == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do projeto é obrigatório", nil)
			return
		}

		project, err := service.Create(strings.TrimSpace(request.Name))
		if err != nil {
			logger.WithError(err).Error("projects: erro ao criar projeto")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar projeto", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(project); err != nil {
			logger.WithError(err).Error("projects: erro ao codificar resposta")
		}
	})
}

func DeleteProject(service catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do projeto é obrigatório", nil)
			return
		}

		deleted, err := service.Delete(id)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"project_id": id,
			}).Error("projects: erro ao remover projeto")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover projeto", nil)
			return
		}

		if !deleted {
			apiErrors.WriteError(w, apiErrors.ErrProjectNotFound, "Projeto não encontrado", map[string]any{
				"project_id": id,
			})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
