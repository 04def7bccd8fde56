package services_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	apperrors "github.com/zatekoja/careprice/pkg/errors"
)

// In-memory repository fakes backing the service tests. They mirror the
// database adapters' contracts: exact-name lookups, NotFound on missing rows,
// cost-ascending comparison listings.

type memProcedureRepo struct {
	procedures map[string]*entities.Procedure
}

func newMemProcedureRepo() *memProcedureRepo {
	return &memProcedureRepo{procedures: map[string]*entities.Procedure{}}
}

func (r *memProcedureRepo) Create(_ context.Context, procedure *entities.Procedure) error {
	cp := *procedure
	r.procedures[procedure.ID] = &cp
	return nil
}

func (r *memProcedureRepo) GetByID(_ context.Context, id string) (*entities.Procedure, error) {
	if p, ok := r.procedures[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperrors.NewNotFoundError("procedure not found")
}

func (r *memProcedureRepo) GetByName(_ context.Context, name string) (*entities.Procedure, error) {
	for _, p := range r.procedures {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("procedure not found")
}

func (r *memProcedureRepo) List(_ context.Context) ([]*entities.Procedure, error) {
	out := make([]*entities.Procedure, 0, len(r.procedures))
	for _, p := range r.procedures {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProcedureRepo) Search(_ context.Context, filter repositories.ProcedureSearchFilter) ([]*entities.Procedure, error) {
	out := []*entities.Procedure{}
	for _, p := range r.procedures {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type memPracticeRepo struct {
	practices map[string]*entities.Practice
}

func newMemPracticeRepo() *memPracticeRepo {
	return &memPracticeRepo{practices: map[string]*entities.Practice{}}
}

func (r *memPracticeRepo) Create(_ context.Context, practice *entities.Practice) error {
	cp := *practice
	r.practices[practice.ID] = &cp
	return nil
}

func (r *memPracticeRepo) GetByID(_ context.Context, id string) (*entities.Practice, error) {
	if p, ok := r.practices[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperrors.NewNotFoundError("practice not found")
}

func (r *memPracticeRepo) GetByName(_ context.Context, name string) (*entities.Practice, error) {
	for _, p := range r.practices {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("practice not found")
}

func (r *memPracticeRepo) List(_ context.Context) ([]*entities.Practice, error) {
	out := make([]*entities.Practice, 0, len(r.practices))
	for _, p := range r.practices {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memPricingRepo struct {
	entries   map[string]*entities.PricingEntry
	practices *memPracticeRepo

	// failOnCost, when non-zero, makes Create fail for an entry with that
	// exact cost. Used to exercise mid-batch rollback.
	failOnCost float64
}

func newMemPricingRepo(practices *memPracticeRepo) *memPricingRepo {
	return &memPricingRepo{entries: map[string]*entities.PricingEntry{}, practices: practices}
}

func (r *memPricingRepo) Create(_ context.Context, entry *entities.PricingEntry) error {
	if r.failOnCost != 0 && entry.Cost == r.failOnCost {
		return apperrors.NewInternalError("failed to create pricing entry", fmt.Errorf("simulated insert failure"))
	}
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *memPricingRepo) GetByProcedureAndPractice(_ context.Context, procedureID, practiceID string) (*entities.PricingEntry, error) {
	for _, e := range r.entries {
		if e.ProcedureID == procedureID && e.PracticeID == practiceID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("pricing entry not found")
}

func (r *memPricingRepo) Update(_ context.Context, entry *entities.PricingEntry) error {
	existing, ok := r.entries[entry.ID]
	if !ok {
		return apperrors.NewNotFoundError("pricing entry not found")
	}
	existing.Cost = entry.Cost
	existing.Currency = entry.Currency
	existing.Notes = entry.Notes
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *memPricingRepo) ListByProcedureWithPractice(_ context.Context, procedureID string) ([]*entities.PricingWithPractice, error) {
	out := []*entities.PricingWithPractice{}
	for _, e := range r.entries {
		if e.ProcedureID != procedureID {
			continue
		}
		row := &entities.PricingWithPractice{Entry: *e}
		if r.practices != nil {
			if p, ok := r.practices.practices[e.PracticeID]; ok {
				row.Practice = *p
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Entry.Cost < out[j].Entry.Cost })
	return out, nil
}

// fakeTxManager hands the same fake repositories to every transaction. Fakes
// apply writes immediately, so rollback tests only assert the returned error.
type fakeTxManager struct {
	repos repositories.RepositorySet
}

func (m *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos repositories.RepositorySet) error) error {
	return fn(ctx, m.repos)
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("key not found: %s", key)
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

type fakeEventBus struct {
	mu        sync.Mutex
	published []*entities.PricingEvent
}

func (b *fakeEventBus) Publish(_ context.Context, _ string, event *entities.PricingEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	return nil
}

func (b *fakeEventBus) Subscribe(_ context.Context, _ string) (<-chan *entities.PricingEvent, error) {
	ch := make(chan *entities.PricingEvent)
	return ch, nil
}

func (b *fakeEventBus) Close() error { return nil }

type fakeSearchRepo struct {
	indexed    []*entities.Procedure
	results    []*entities.Procedure
	searchErr  error
	lastFilter repositories.ProcedureSearchFilter
}

func (r *fakeSearchRepo) Index(_ context.Context, procedure *entities.Procedure) error {
	r.indexed = append(r.indexed, procedure)
	return nil
}

func (r *fakeSearchRepo) Search(_ context.Context, filter repositories.ProcedureSearchFilter) ([]*entities.Procedure, error) {
	r.lastFilter = filter
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.results, nil
}

func (r *fakeSearchRepo) Delete(_ context.Context, _ string) error { return nil }
