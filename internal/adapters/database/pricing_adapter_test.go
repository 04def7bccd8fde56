package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/careprice/internal/domain/entities"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

func TestPricingAdapter_GetByProcedureAndPractice_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM "procedure_pricing"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	adapter := &PricingAdapter{run: db}
	entry, err := adapter.GetByProcedureAndPractice(context.Background(), "proc-1", "prac-1")

	assert.Nil(t, entry)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricingAdapter_GetByProcedureAndPractice_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "procedure_id", "practice_id", "cost", "currency", "notes",
		"updated_at", "created_at",
	}).AddRow("pe-1", "proc-1", "prac-1", 150.00, "USD", "cash price", now, now)

	mock.ExpectQuery(`SELECT .* FROM "procedure_pricing"`).WillReturnRows(rows)

	adapter := &PricingAdapter{run: db}
	entry, err := adapter.GetByProcedureAndPractice(context.Background(), "proc-1", "prac-1")

	assert.NoError(t, err)
	assert.Equal(t, "pe-1", entry.ID)
	assert.Equal(t, 150.00, entry.Cost)
	assert.Equal(t, "cash price", entry.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricingAdapter_Update_MissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE "procedure_pricing"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	adapter := &PricingAdapter{run: db}
	err = adapter.Update(context.Background(), &entities.PricingEntry{ID: "missing", Cost: 75, Currency: "USD"})

	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricingAdapter_ListByProcedureWithPractice_JoinsAndOrdersByCost(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "procedure_id", "practice_id", "cost", "currency", "notes",
		"updated_at", "created_at",
		"id", "name", "address", "phone", "email", "created_at",
	}).
		AddRow("pe-1", "proc-1", "prac-1", 90.00, "USD", nil, now, now,
			"prac-1", "City Clinic", "1 Main St", nil, nil, now).
		AddRow("pe-2", "proc-1", "prac-2", 120.00, "USD", "includes consult", now, now,
			"prac-2", "Valley Hospital", nil, "555-0100", nil, now)

	mock.ExpectQuery(`SELECT .* FROM "procedure_pricing" AS "pp" INNER JOIN "medical_practices" AS "mp" .* ORDER BY "pp"\."cost" ASC`).
		WillReturnRows(rows)

	adapter := &PricingAdapter{run: db}
	results, err := adapter.ListByProcedureWithPractice(context.Background(), "proc-1")

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 90.00, results[0].Entry.Cost)
	assert.Equal(t, "City Clinic", results[0].Practice.Name)
	assert.Equal(t, "", results[0].Entry.Notes)
	assert.Equal(t, "includes consult", results[1].Entry.Notes)
	assert.Equal(t, "555-0100", results[1].Practice.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
