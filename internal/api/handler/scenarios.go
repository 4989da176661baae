package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
	"github.com/vfg2006/subscription-forecast-api/internal/usecases/scenario"
	"github.com/vfg2006/subscription-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/subscription-forecast-api/pkg/log"
)

func ScenarioList(service scenario.ScenarioService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		scenarios, err := service.List()
		if err != nil {
			logger.WithError(err).Error("scenarios: erro ao listar cenários")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar cenários", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(scenarios); err != nil {
			logger.WithError(err).Error("scenarios: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func GetScenario(service scenario.ScenarioService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cenário é obrigatório", nil)
			return
		}

		result, err := service.Get(id)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"scenario_id": id,
			}).Error("scenarios: erro ao buscar cenário")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar cenário", nil)
			return
		}

		if result == nil {
			apiErrors.WriteError(w, apiErrors.ErrScenarioNotFound, "Cenário não encontrado", map[string]any{
				"scenario_id": id,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("scenarios: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func CreateScenario(service scenario.ScenarioService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		input, ok := decodeScenarioInput(w, r)
		if !ok {
			return
		}

		result, err := service.Create(input)
		if err != nil {
			logger.WithError(err).Error("scenarios: erro ao criar cenário")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar cenário", nil)
			return
		}

		logger.WithFields(log.Fields{
			"scenario_id": result.ID,
		}).Info("scenarios: cenário criado")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("scenarios: erro ao codificar resposta")
		}
	})
}

func UpdateScenario(service scenario.ScenarioService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cenário é obrigatório", nil)
			return
		}

		input, ok := decodeScenarioInput(w, r)
		if !ok {
			return
		}

		result, err := service.Update(id, input)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"scenario_id": id,
			}).Error("scenarios: erro ao atualizar cenário")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar cenário", nil)
			return
		}

		if result == nil {
			apiErrors.WriteError(w, apiErrors.ErrScenarioNotFound, "Cenário não encontrado", map[string]any{
				"scenario_id": id,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("scenarios: erro ao codificar resposta")
		}
	})
}

// decodeScenarioInput decodifica e valida o corpo de criação/atualização de
// cenário. Escreve o erro na resposta e retorna false quando inválido.
func decodeScenarioInput(w http.ResponseWriter, r *http.Request) (*domain.ScenarioInput, bool) {
	var input domain.ScenarioInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
		return nil, false
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do cenário é obrigatório", nil)
		return nil, false
	}

	if len(input.SelectedProjectIDs) == 0 {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Pelo menos um projeto deve estar selecionado", nil)
		return nil, false
	}

	return &input, true
}
