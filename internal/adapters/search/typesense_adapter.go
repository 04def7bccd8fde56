package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	tsclient "github.com/zatekoja/careprice/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements procedure search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements ProcedureSearchRepository
var _ repositories.ProcedureSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the procedures collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.ProceduresCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: tsclient.ProceduresCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string", Infix: pointer.True(), Sort: pointer.True()},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "category", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Drop deletes the procedures collection
func (a *TypesenseAdapter) Drop(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.ProceduresCollection).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to drop typesense collection: %w", err)
	}
	return nil
}

// Index adds or replaces a procedure in the search index
func (a *TypesenseAdapter) Index(ctx context.Context, procedure *entities.Procedure) error {
	document := map[string]interface{}{
		"id":          procedure.ID,
		"name":        procedure.Name,
		"description": procedure.Description,
		"category":    procedure.Category,
		"created_at":  procedure.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(tsclient.ProceduresCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index procedure: %w", err)
	}

	return nil
}

// Delete removes a procedure from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.ProceduresCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete procedure from index: %w", err)
	}
	return nil
}

// Search searches indexed procedures by name substring with an optional exact
// category filter, ordered by name ascending.
func (a *TypesenseAdapter) Search(ctx context.Context, filter repositories.ProcedureSearchFilter) ([]*entities.Procedure, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(filter.Query),
		QueryBy: pointer.String("name"),
		Infix:   pointer.String("always"),
		SortBy:  pointer.String("name:asc"),
		PerPage: pointer.Int(filter.Limit),
	}

	if filter.Category != "" {
		searchParams.FilterBy = pointer.String(fmt.Sprintf("category:=`%s`", filter.Category))
	}

	result, err := a.client.Client().Collection(tsclient.ProceduresCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search procedures: %w", err)
	}

	procedures := []*entities.Procedure{}
	if result.Hits == nil {
		return procedures, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		procedure := &entities.Procedure{}
		if id, ok := doc["id"].(string); ok {
			procedure.ID = id
		}
		if name, ok := doc["name"].(string); ok {
			procedure.Name = name
		}
		if description, ok := doc["description"].(string); ok {
			procedure.Description = description
		}
		if category, ok := doc["category"].(string); ok {
			procedure.Category = category
		}
		if createdAt, ok := doc["created_at"].(float64); ok {
			procedure.CreatedAt = time.Unix(int64(createdAt), 0)
		}

		procedures = append(procedures, procedure)
	}

	return procedures, nil
}
