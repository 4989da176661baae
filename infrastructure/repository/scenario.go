package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/subscription-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
)

const (
	scenariosTable = "forecast_scenarios fs"
)

type ScenarioRepository interface {
	List() ([]*domain.Scenario, error)
	GetByID(id string) (*domain.Scenario, error)
	Create(scenario *domain.Scenario) error
	Update(scenario *domain.Scenario) (bool, error)
}

type scenarioRepository struct {
	conn *postgres.Connection
}

func NewScenarioRepository(conn *postgres.Connection) ScenarioRepository {
	return &scenarioRepository{
		conn: conn,
	}
}

func (r *scenarioRepository) List() ([]*domain.Scenario, error) {
	query, args, err := squirrel.
		Select("fs.id, fs.name, fs.notes, fs.overrides, fs.project_settings, fs.selected_project_ids, fs.global_settings, fs.created_at, fs.updated_at").
		From(scenariosTable).
		OrderBy("fs.updated_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	scenarios := make([]*domain.Scenario, 0)
	for rows.Next() {
		scenario, err := r.scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cenário: %w", err)
		}
		scenarios = append(scenarios, scenario)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return scenarios, nil
}

func (r *scenarioRepository) GetByID(id string) (*domain.Scenario, error) {
	query, args, err := squirrel.
		Select("fs.id, fs.name, fs.notes, fs.overrides, fs.project_settings, fs.selected_project_ids, fs.global_settings, fs.created_at, fs.updated_at").
		From(scenariosTable).
		Where(squirrel.Eq{"fs.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
		}
		return nil, nil
	}

	scenario, err := r.scanScenario(rows)
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear cenário: %w", err)
	}

	return scenario, nil
}

func (r *scenarioRepository) Create(scenario *domain.Scenario) error {
	overridesJSON, projectSettingsJSON, globalSettingsJSON, err := marshalScenarioPayload(scenario)
	if err != nil {
		return err
	}

	query := squirrel.StatementBuilder.
		Insert("forecast_scenarios").
		Columns("id", "name", "notes", "overrides", "project_settings", "selected_project_ids", "global_settings", "created_at", "updated_at").
		Values(
			scenario.ID,
			scenario.Name,
			scenario.Notes,
			overridesJSON,
			projectSettingsJSON,
			pq.Array(scenario.SelectedProjectIDs),
			globalSettingsJSON,
			scenario.CreatedAt,
			scenario.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *scenarioRepository) Update(scenario *domain.Scenario) (bool, error) {
	overridesJSON, projectSettingsJSON, globalSettingsJSON, err := marshalScenarioPayload(scenario)
	if err != nil {
		return false, err
	}

	query := squirrel.StatementBuilder.
		Update("forecast_scenarios").
		Set("name", scenario.Name).
		Set("notes", scenario.Notes).
		Set("overrides", overridesJSON).
		Set("project_settings", projectSettingsJSON).
		Set("selected_project_ids", pq.Array(scenario.SelectedProjectIDs)).
		Set("global_settings", globalSettingsJSON).
		Set("updated_at", scenario.UpdatedAt).
		Where(squirrel.Eq{"id": scenario.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

func marshalScenarioPayload(scenario *domain.Scenario) ([]byte, []byte, []byte, error) {
	overridesJSON, err := json.Marshal(scenario.Overrides)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("erro ao serializar overrides para JSON: %w", err)
	}

	projectSettingsJSON, err := json.Marshal(scenario.ProjectSettings)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("erro ao serializar project settings para JSON: %w", err)
	}

	var globalSettingsJSON []byte
	if scenario.GlobalSettings != nil {
		globalSettingsJSON, err = json.Marshal(scenario.GlobalSettings)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("erro ao serializar global settings para JSON: %w", err)
		}
	}

	return overridesJSON, projectSettingsJSON, globalSettingsJSON, nil
}

func (r *scenarioRepository) scanScenario(rows *sql.Rows) (*domain.Scenario, error) {
	var (
		scenario            domain.Scenario
		notes               sql.NullString
		overridesJSON       []byte
		projectSettingsJSON []byte
		globalSettingsJSON  []byte
	)

	err := rows.Scan(
		&scenario.ID,
		&scenario.Name,
		&notes,
		&overridesJSON,
		&projectSettingsJSON,
		pq.Array(&scenario.SelectedProjectIDs),
		&globalSettingsJSON,
		&scenario.CreatedAt,
		&scenario.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	scenario.Notes = notes.String

	if len(overridesJSON) > 0 {
		if err := json.Unmarshal(overridesJSON, &scenario.Overrides); err != nil {
			return nil, fmt.Errorf("erro ao deserializar overrides: %w", err)
		}
	}

	if len(projectSettingsJSON) > 0 {
		if err := json.Unmarshal(projectSettingsJSON, &scenario.ProjectSettings); err != nil {
			return nil, fmt.Errorf("erro ao deserializar project settings: %w", err)
		}
	}

	if len(globalSettingsJSON) > 0 {
		if err := json.Unmarshal(globalSettingsJSON, &scenario.GlobalSettings); err != nil {
			return nil, fmt.Errorf("erro ao deserializar global settings: %w", err)
		}
	}

	return &scenario, nil
}
