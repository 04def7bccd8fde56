package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	"github.com/zatekoja/careprice/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

const pricingTable = "procedure_pricing"

var pricingColumns = []interface{}{
	"id", "procedure_id", "practice_id", "cost", "currency", "notes",
	"updated_at", "created_at",
}

// PricingAdapter implements PricingRepository
type PricingAdapter struct {
	run runner
}

// NewPricingAdapter creates a new pricing adapter
func NewPricingAdapter(client *postgres.Client) repositories.PricingRepository {
	return &PricingAdapter{run: client.DB()}
}

// Create creates a new pricing entry
func (a *PricingAdapter) Create(ctx context.Context, entry *entities.PricingEntry) error {
	record := goqu.Record{
		"id":           entry.ID,
		"procedure_id": entry.ProcedureID,
		"practice_id":  entry.PracticeID,
		"cost":         entry.Cost,
		"currency":     entry.Currency,
		"notes":        nullString(entry.Notes),
		"updated_at":   entry.UpdatedAt,
		"created_at":   entry.CreatedAt,
	}

	query, args, err := dialect.Insert(pricingTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.run.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create pricing entry", err)
	}

	return nil
}

// GetByProcedureAndPractice retrieves the pricing entry for a (procedure, practice) pair
func (a *PricingAdapter) GetByProcedureAndPractice(ctx context.Context, procedureID, practiceID string) (*entities.PricingEntry, error) {
	query, args, err := dialect.Select(pricingColumns...).
		From(pricingTable).
		Where(goqu.Ex{
			"procedure_id": procedureID,
			"practice_id":  practiceID,
		}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	entry, err := scanPricingEntry(a.run.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf(
			"pricing entry for procedure %s and practice %s not found", procedureID, practiceID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get pricing entry", err)
	}

	return entry, nil
}

// Update overwrites cost, currency and notes of an existing entry
func (a *PricingAdapter) Update(ctx context.Context, entry *entities.PricingEntry) error {
	entry.UpdatedAt = time.Now()

	record := goqu.Record{
		"cost":       entry.Cost,
		"currency":   entry.Currency,
		"notes":      nullString(entry.Notes),
		"updated_at": entry.UpdatedAt,
	}

	query, args, err := dialect.Update(pricingTable).
		Set(record).
		Where(goqu.Ex{"id": entry.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.run.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update pricing entry", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("pricing entry with id %s not found", entry.ID))
	}

	return nil
}

// ListByProcedureWithPractice retrieves every pricing entry for a procedure
// joined with its practice, ordered by cost ascending.
func (a *PricingAdapter) ListByProcedureWithPractice(ctx context.Context, procedureID string) ([]*entities.PricingWithPractice, error) {
	query, args, err := dialect.Select(
		goqu.I("pp.id"), goqu.I("pp.procedure_id"), goqu.I("pp.practice_id"),
		goqu.I("pp.cost"), goqu.I("pp.currency"), goqu.I("pp.notes"),
		goqu.I("pp.updated_at"), goqu.I("pp.created_at"),
		goqu.I("mp.id"), goqu.I("mp.name"), goqu.I("mp.address"),
		goqu.I("mp.phone"), goqu.I("mp.email"), goqu.I("mp.created_at"),
	).
		From(goqu.T(pricingTable).As("pp")).
		Join(goqu.T(practicesTable).As("mp"), goqu.On(goqu.I("pp.practice_id").Eq(goqu.I("mp.id")))).
		Where(goqu.I("pp.procedure_id").Eq(procedureID)).
		Order(goqu.I("pp.cost").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build comparison query", err)
	}

	rows, err := a.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list pricing entries", err)
	}
	defer rows.Close()

	results := []*entities.PricingWithPractice{}
	for rows.Next() {
		row := &entities.PricingWithPractice{}
		var notes, address, phone, email sql.NullString

		err := rows.Scan(
			&row.Entry.ID,
			&row.Entry.ProcedureID,
			&row.Entry.PracticeID,
			&row.Entry.Cost,
			&row.Entry.Currency,
			&notes,
			&row.Entry.UpdatedAt,
			&row.Entry.CreatedAt,
			&row.Practice.ID,
			&row.Practice.Name,
			&address,
			&phone,
			&email,
			&row.Practice.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan pricing row", err)
		}

		row.Entry.Notes = notes.String
		row.Practice.Address = address.String
		row.Practice.Phone = phone.String
		row.Practice.Email = email.String

		results = append(results, row)
	}
	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating pricing rows", err)
	}

	return results, nil
}

func scanPricingEntry(s scanner) (*entities.PricingEntry, error) {
	entry := &entities.PricingEntry{}
	var notes sql.NullString

	err := s.Scan(
		&entry.ID,
		&entry.ProcedureID,
		&entry.PracticeID,
		&entry.Cost,
		&entry.Currency,
		&notes,
		&entry.UpdatedAt,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Notes = notes.String

	return entry, nil
}
