package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careprice/internal/adapters/database"
	"github.com/zatekoja/careprice/internal/adapters/search"
	"github.com/zatekoja/careprice/internal/application/services"
	"github.com/zatekoja/careprice/internal/domain/entities"
	"github.com/zatekoja/careprice/internal/domain/repositories"
	"github.com/zatekoja/careprice/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/careprice/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/careprice/internal/infrastructure/observability"
	"github.com/zatekoja/careprice/pkg/config"
)

// Seeds sample procedures, practices and pricing through the import service,
// so the seeded data goes through the same resolve-or-create path as a real
// bulk import.
func main() {
	observability.InitLogger("careprice-seed", os.Getenv("ENV"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if err := pgClient.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				procedure_pricing,
				medical_procedures,
				medical_practices
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to truncate tables")
		}
	}

	var searchRepo repositories.ProcedureSearchRepository
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err == nil {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(ctx); err == nil {
			searchRepo = adapter
		} else {
			log.Warn().Err(err).Msg("Skipping search indexing")
		}
	}

	txManager := database.NewTxManager(pgClient)
	importService := services.NewImportService(txManager, nil, nil, searchRepo)

	summary, err := importService.Import(ctx, sampleBatch())
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().
		Int("procedures", summary.ImportedProcedures).
		Int("practices", summary.ImportedPractices).
		Int("pricing_entries", summary.ImportedPricingEntries).
		Msg("Seeding complete")
}

func sampleBatch() *entities.ImportBatch {
	return &entities.ImportBatch{
		Procedures: []entities.ImportProcedure{
			{
				Name:        "Knee MRI",
				Description: "Magnetic resonance imaging of the knee joint",
				Category:    "Imaging",
				Practices: []entities.ImportPractice{
					{PracticeName: "City Clinic", PracticeAddress: "1 Main St", PracticePhone: "555-0100", Cost: 450, Notes: "cash price"},
					{PracticeName: "Valley Hospital", PracticeAddress: "20 Valley Rd", Cost: 620, Notes: "includes radiologist report"},
					{PracticeName: "Summit Imaging Center", Cost: 395},
				},
			},
			{
				Name:        "Chest X-Ray",
				Description: "Two-view chest radiograph",
				Category:    "Imaging",
				Practices: []entities.ImportPractice{
					{PracticeName: "City Clinic", Cost: 90},
					{PracticeName: "Valley Hospital", Cost: 140},
				},
			},
			{
				Name:        "Colonoscopy",
				Description: "Screening colonoscopy with sedation",
				Category:    "Gastroenterology",
				Practices: []entities.ImportPractice{
					{PracticeName: "Valley Hospital", Cost: 1850},
					{PracticeName: "Lakeside Endoscopy", PracticeEmail: "info@lakeside.example", Cost: 1320, Notes: "facility fee included"},
				},
			},
			{
				Name:        "Basic Metabolic Panel",
				Description: "Blood chemistry panel of eight tests",
				Category:    "Laboratory",
				Practices: []entities.ImportPractice{
					{PracticeName: "City Clinic", Cost: 35},
					{PracticeName: "Valley Hospital", Cost: 35},
					{PracticeName: "Summit Imaging Center", Cost: 42},
				},
			},
			{
				Name:        "Physical Therapy Session",
				Description: "One-hour outpatient physical therapy visit",
				Category:    "Rehabilitation",
				Practices: []entities.ImportPractice{
					{PracticeName: "City Clinic", Cost: 120},
				},
			},
		},
	}
}
