package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/subscription-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
)

const (
	snapshotsTable = "forecast_snapshots fsn"
)

type SnapshotRepository interface {
	Save(snapshot *domain.ForecastSnapshot) error
	GetLatest() (*domain.ForecastSnapshot, error)
	DeleteOlderThan(days int) (int64, error)
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) Save(snapshot *domain.ForecastSnapshot) error {
	summaryJSON, err := json.Marshal(snapshot.Summary)
	if err != nil {
		return fmt.Errorf("erro ao serializar summary para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("forecast_snapshots").
		Columns("taken_at", "month_count", "project_count", "summary").
		Values(
			snapshot.TakenAt,
			snapshot.MonthCount,
			snapshot.ProjectCount,
			summaryJSON,
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

func (r *snapshotRepository) GetLatest() (*domain.ForecastSnapshot, error) {
	query, args, err := squirrel.
		Select("fsn.id, fsn.taken_at, fsn.month_count, fsn.project_count, fsn.summary, fsn.created_at").
		From(snapshotsTable).
		OrderBy("fsn.taken_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		snapshot    domain.ForecastSnapshot
		summaryJSON []byte
	)

	row := r.conn.QueryRow(query, args...)
	err = row.Scan(
		&snapshot.ID,
		&snapshot.TakenAt,
		&snapshot.MonthCount,
		&snapshot.ProjectCount,
		&summaryJSON,
		&snapshot.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &snapshot.Summary); err != nil {
			return nil, fmt.Errorf("erro ao deserializar summary: %w", err)
		}
	}

	return &snapshot, nil
}

func (r *snapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query := squirrel.Delete("forecast_snapshots").
		Where(squirrel.Lt{"taken_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	return deleted, nil
}
