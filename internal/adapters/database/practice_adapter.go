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

const practicesTable = "medical_practices"

var practiceColumns = []interface{}{"id", "name", "address", "phone", "email", "created_at"}

// PracticeAdapter implements PracticeRepository
type PracticeAdapter struct {
	run runner
}

// NewPracticeAdapter creates a new practice adapter
func NewPracticeAdapter(client *postgres.Client) repositories.PracticeRepository {
	return &PracticeAdapter{run: client.DB()}
}

// Create creates a new practice
func (a *PracticeAdapter) Create(ctx context.Context, practice *entities.Practice) error {
	record := goqu.Record{
		"id":         practice.ID,
		"name":       practice.Name,
		"address":    nullString(practice.Address),
		"phone":      nullString(practice.Phone),
		"email":      nullString(practice.Email),
		"created_at": practice.CreatedAt,
	}

	query, args, err := dialect.Insert(practicesTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.run.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create practice", err)
	}

	return nil
}

// GetByID retrieves a practice by ID
func (a *PracticeAdapter) GetByID(ctx context.Context, id string) (*entities.Practice, error) {
	return a.getByField(ctx, "id", id)
}

// GetByName retrieves a practice by exact name
func (a *PracticeAdapter) GetByName(ctx context.Context, name string) (*entities.Practice, error) {
	return a.getByField(ctx, "name", name)
}

func (a *PracticeAdapter) getByField(ctx context.Context, field, value string) (*entities.Practice, error) {
	query, args, err := dialect.Select(practiceColumns...).
		From(practicesTable).
		Where(goqu.Ex{field: value}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	practice, err := scanPractice(a.run.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("practice with %s %s not found", field, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get practice", err)
	}

	return practice, nil
}

// List retrieves all practices ordered by name ascending
func (a *PracticeAdapter) List(ctx context.Context) ([]*entities.Practice, error) {
	query, args, err := dialect.Select(practiceColumns...).
		From(practicesTable).
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list practices", err)
	}
	defer rows.Close()

	practices := []*entities.Practice{}
	for rows.Next() {
		practice, err := scanPractice(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan practice", err)
		}
		practices = append(practices, practice)
	}
	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating practices", err)
	}

	return practices, nil
}

func scanPractice(s scanner) (*entities.Practice, error) {
	practice := &entities.Practice{}
	var address, phone, email sql.NullString

	err := s.Scan(
		&practice.ID,
		&practice.Name,
		&address,
		&phone,
		&email,
		&practice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	practice.Address = address.String
	practice.Phone = phone.String
	practice.Email = email.String

	return practice, nil
}
