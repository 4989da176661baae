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
	projectsTable = "forecast_projects fp"
)

type ProjectRepository interface {
	List() ([]*domain.ProjectDefinition, error)
	GetByID(id string) (*domain.ProjectDefinition, error)
	Save(project *domain.ProjectDefinition) error
	Delete(id string) (bool, error)
	Count() (int, error)
}

type projectRepository struct {
	conn *postgres.Connection
}

func NewProjectRepository(conn *postgres.Connection) ProjectRepository {
	return &projectRepository{
		conn: conn,
	}
}

func (r *projectRepository) List() ([]*domain.ProjectDefinition, error) {
	query, args, err := squirrel.
		Select("fp.id, fp.name, fp.description, fp.starting_subscribers, fp.pricing, fp.metrics, fp.monthly_defaults").
		From(projectsTable).
		OrderBy("fp.name ASC").
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

	projects := make([]*domain.ProjectDefinition, 0)
	for rows.Next() {
		project, err := r.scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear projeto: %w", err)
		}
		projects = append(projects, project)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) GetByID(id string) (*domain.ProjectDefinition, error) {
	query, args, err := squirrel.
		Select("fp.id, fp.name, fp.description, fp.starting_subscribers, fp.pricing, fp.metrics, fp.monthly_defaults").
		From(projectsTable).
		Where(squirrel.Eq{"fp.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	project, err := r.scanProjectRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear projeto: %w", err)
	}

	return project, nil
}

func (r *projectRepository) Save(project *domain.ProjectDefinition) error {
	pricingJSON, err := json.Marshal(project.Pricing)
	if err != nil {
		return fmt.Errorf("erro ao serializar pricing para JSON: %w", err)
	}

	metricsJSON, err := json.Marshal(project.Metrics)
	if err != nil {
		return fmt.Errorf("erro ao serializar metrics para JSON: %w", err)
	}

	monthlyDefaultsJSON, err := json.Marshal(project.MonthlyDefaults)
	if err != nil {
		return fmt.Errorf("erro ao serializar monthly defaults para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("forecast_projects").
		Columns("id", "name", "description", "starting_subscribers", "pricing", "metrics", "monthly_defaults").
		Values(
			project.ID,
			project.Name,
			project.Description,
			project.StartingSubscribers,
			pricingJSON,
			metricsJSON,
			monthlyDefaultsJSON,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				starting_subscribers = EXCLUDED.starting_subscribers,
				pricing = EXCLUDED.pricing,
				metrics = EXCLUDED.metrics,
				monthly_defaults = EXCLUDED.monthly_defaults,
				updated_at = NOW()
		`).
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

func (r *projectRepository) Delete(id string) (bool, error) {
	query, args, err := squirrel.
		Delete("forecast_projects").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

func (r *projectRepository) Count() (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("forecast_projects").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar projetos: %w", err)
	}

	return count, nil
}

func (r *projectRepository) scanProject(rows *sql.Rows) (*domain.ProjectDefinition, error) {
	var (
		project             domain.ProjectDefinition
		pricingJSON         []byte
		metricsJSON         []byte
		monthlyDefaultsJSON []byte
	)

	err := rows.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.StartingSubscribers,
		&pricingJSON,
		&metricsJSON,
		&monthlyDefaultsJSON,
	)
	if err != nil {
		return nil, err
	}

	return r.unmarshalProject(&project, pricingJSON, metricsJSON, monthlyDefaultsJSON)
}

func (r *projectRepository) scanProjectRow(row *sql.Row) (*domain.ProjectDefinition, error) {
	var (
		project             domain.ProjectDefinition
		pricingJSON         []byte
		metricsJSON         []byte
		monthlyDefaultsJSON []byte
	)

	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.StartingSubscribers,
		&pricingJSON,
		&metricsJSON,
		&monthlyDefaultsJSON,
	)
	if err != nil {
		return nil, err
	}

	return r.unmarshalProject(&project, pricingJSON, metricsJSON, monthlyDefaultsJSON)
}

func (r *projectRepository) unmarshalProject(
	project *domain.ProjectDefinition,
	pricingJSON, metricsJSON, monthlyDefaultsJSON []byte,
) (*domain.ProjectDefinition, error) {
	if len(pricingJSON) > 0 {
		if err := json.Unmarshal(pricingJSON, &project.Pricing); err != nil {
			return nil, fmt.Errorf("erro ao deserializar pricing: %w", err)
		}
	}

	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &project.Metrics); err != nil {
			return nil, fmt.Errorf("erro ao deserializar metrics: %w", err)
		}
	}

	if len(monthlyDefaultsJSON) > 0 {
		if err := json.Unmarshal(monthlyDefaultsJSON, &project.MonthlyDefaults); err != nil {
			return nil, fmt.Errorf("erro ao deserializar monthly defaults: %w", err)
		}
	}

	return project, nil
}
