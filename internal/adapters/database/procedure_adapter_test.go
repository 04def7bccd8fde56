package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

func TestProcedureAdapter_Search_BuildsSubstringQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "description", "category", "created_at"}).
		AddRow("p-1", "Knee Replacement Surgery", nil, "Orthopedic", now)

	// ILIKE with the query embedded in a %..% pattern, name-ascending, capped
	mock.ExpectQuery(`SELECT .* FROM "medical_procedures" WHERE .*ILIKE '%knee%'.* ORDER BY "name" ASC LIMIT 50`).
		WillReturnRows(rows)

	adapter := &ProcedureAdapter{run: db}
	procedures, err := adapter.Search(context.Background(), repositories.ProcedureSearchFilter{
		Query: "knee",
		Limit: 50,
	})

	assert.NoError(t, err)
	assert.Len(t, procedures, 1)
	assert.Equal(t, "Knee Replacement Surgery", procedures[0].Name)
	assert.Equal(t, "", procedures[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcedureAdapter_Search_CategoryFilterAdded(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM "medical_procedures" WHERE .*ILIKE '%surgery%'.*"category" = 'Orthopedic'`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "category", "created_at"}))

	adapter := &ProcedureAdapter{run: db}
	procedures, err := adapter.Search(context.Background(), repositories.ProcedureSearchFilter{
		Query:    "surgery",
		Category: "Orthopedic",
		Limit:    50,
	})

	assert.NoError(t, err)
	assert.Empty(t, procedures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcedureAdapter_GetByName_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM "medical_procedures" WHERE \("name" = 'X-Ray'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	adapter := &ProcedureAdapter{run: db}
	procedure, err := adapter.GetByName(context.Background(), "X-Ray")

	assert.Nil(t, procedure)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
