package repositories

import (
	"context"
)

// RepositorySet bundles the repositories bound to one transactional scope
type RepositorySet struct {
	Practices  PracticeRepository
	Procedures ProcedureRepository
	Pricing    PricingRepository
}

// TransactionManager runs a function against a transaction-bound RepositorySet.
// Either every write performed inside fn becomes visible, or none does: a
// non-nil error from fn rolls the transaction back and is returned unchanged.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos RepositorySet) error) error
}
