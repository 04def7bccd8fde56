package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	"github.com/zatekoja/careprice/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

const proceduresTable = "medical_procedures"

var procedureColumns = []interface{}{"id", "name", "description", "category", "created_at"}

// ProcedureAdapter implements ProcedureRepository
type ProcedureAdapter struct {
	run runner
}

// NewProcedureAdapter creates a new procedure adapter
func NewProcedureAdapter(client *postgres.Client) repositories.ProcedureRepository {
	return &ProcedureAdapter{run: client.DB()}
}

// Create creates a new procedure
func (a *ProcedureAdapter) Create(ctx context.Context, procedure *entities.Procedure) error {
	record := goqu.Record{
		"id":          procedure.ID,
		"name":        procedure.Name,
		"description": nullString(procedure.Description),
		"category":    nullString(procedure.Category),
		"created_at":  procedure.CreatedAt,
	}

	query, args, err := dialect.Insert(proceduresTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.run.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create procedure", err)
	}

	return nil
}

// GetByID retrieves a procedure by ID
func (a *ProcedureAdapter) GetByID(ctx context.Context, id string) (*entities.Procedure, error) {
	return a.getByField(ctx, "id", id)
}

// GetByName retrieves a procedure by exact name
func (a *ProcedureAdapter) GetByName(ctx context.Context, name string) (*entities.Procedure, error) {
	return a.getByField(ctx, "name", name)
}

func (a *ProcedureAdapter) getByField(ctx context.Context, field, value string) (*entities.Procedure, error) {
	query, args, err := dialect.Select(procedureColumns...).
		From(proceduresTable).
		Where(goqu.Ex{field: value}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	procedure, err := scanProcedure(a.run.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("procedure with %s %s not found", field, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get procedure", err)
	}

	return procedure, nil
}

// List retrieves all procedures ordered by name ascending
func (a *ProcedureAdapter) List(ctx context.Context) ([]*entities.Procedure, error) {
	ds := dialect.Select(procedureColumns...).
		From(proceduresTable).
		Order(goqu.I("name").Asc())

	return a.queryProcedures(ctx, ds)
}

// Search retrieves procedures whose name contains the query as a
// case-insensitive substring, optionally restricted to an exact category,
// ordered by name ascending and capped at the filter limit.
func (a *ProcedureAdapter) Search(ctx context.Context, filter repositories.ProcedureSearchFilter) ([]*entities.Procedure, error) {
	ds := dialect.Select(procedureColumns...).
		From(proceduresTable).
		Where(goqu.I("name").ILike(fmt.Sprintf("%%%s%%", filter.Query)))

	if filter.Category != "" {
		ds = ds.Where(goqu.Ex{"category": filter.Category})
	}

	ds = ds.Order(goqu.I("name").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	return a.queryProcedures(ctx, ds)
}

func (a *ProcedureAdapter) queryProcedures(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Procedure, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query procedures", err)
	}
	defer rows.Close()

	procedures := []*entities.Procedure{}
	for rows.Next() {
		procedure, err := scanProcedure(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan procedure", err)
		}
		procedures = append(procedures, procedure)
	}
	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating procedures", err)
	}

	return procedures, nil
}

func scanProcedure(s scanner) (*entities.Procedure, error) {
	procedure := &entities.Procedure{}
	var description, category sql.NullString

	err := s.Scan(
		&procedure.ID,
		&procedure.Name,
		&description,
		&category,
		&procedure.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	procedure.Description = description.String
	procedure.Category = category.String

	return procedure, nil
}
