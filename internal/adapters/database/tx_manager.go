package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	"github.com/zatekoja/careprice/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

// TxManager implements TransactionManager over the postgres client
type TxManager struct {
	client *postgres.Client
}

// NewTxManager creates a new transaction manager
func NewTxManager(client *postgres.Client) repositories.TransactionManager {
	return &TxManager{client: client}
}

// WithinTransaction runs fn against adapters bound to a single transaction.
// A non-nil error from fn rolls everything back and is returned unchanged, so
// callers keep their typed errors.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos repositories.RepositorySet) error) error {
	tx, err := m.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	repos := repositories.RepositorySet{
		Practices:  &PracticeAdapter{run: tx},
		Procedures: &ProcedureAdapter{run: tx},
		Pricing:    &PricingAdapter{run: tx},
	}

	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Warn().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit transaction", err)
	}

	return nil
}
