package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/quickmed-api/internal/config"
	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository/postgres"
	"github.com/jwalitptl/quickmed-api/pkg/logger"
	"github.com/jwalitptl/quickmed-api/pkg/security"
)

type seedUser struct {
	username, email, password string
}

var users = []seedUser{
	{"Admin User", "admin@quickmed.com", "Admin123!@#"},
	{"Doctor Smith", "doctor@quickmed.com", "Doctor123!@#"},
	{"Patient John", "patient@quickmed.com", "Patient123!@#"},
	{"Test User", "test@example.com", "Test123!@#"},
}

func main() {
	schemaOnly := flag.Bool("schema-only", false, "apply the schema without inserting sample rows")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.NewLogger(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Console: true,
	}).SetGlobal()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := postgres.ApplySchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}
	log.Info().Msg("schema applied")
	if *schemaOnly {
		return
	}

	fixtures, err := buildFixtures(security.NewBcryptHasher(security.DefaultCost), time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build fixtures")
	}
	if err := postgres.NewSeeder(postgres.NewBaseRepository(db)).Seed(ctx, fixtures); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	log.Info().
		Int("users", len(fixtures.Users)).
		Int("clinics", len(fixtures.Clinics)).
		Int("services", len(fixtures.Services)).
		Int("slots", len(fixtures.Slots)).
		Msg("database seeded")
}

func buildFixtures(hasher security.PasswordHasher, now time.Time) (postgres.Fixtures, error) {
	f := postgres.Fixtures{
		Clinics:        clinics,
		Services:       services,
		TreatmentTypes: treatmentTypes,
		ServicePrices:  servicePrices,
		Questions:      questions,
	}

	for _, u := range users {
		hash, err := hasher.Hash(u.password)
		if err != nil {
			return f, err
		}
		f.Users = append(f.Users, &model.User{Username: u.username, Email: u.email, PasswordHash: hash})
	}

	tomorrow := now.AddDate(0, 0, 1).Format(model.DateLayout)
	f.Slots = []postgres.SeedSlot{
		{Clinic: clinics[0].Name, Service: services[0].Name, Date: tomorrow, Time: "09:00"},
		{Clinic: clinics[0].Name, Service: services[1].Name, Date: tomorrow, Time: "10:30"},
		{Clinic: clinics[1].Name, Service: services[0].Name, Date: tomorrow, Time: "14:00"},
		{Clinic: clinics[1].Name, Service: services[2].Name, Date: tomorrow, Time: "16:00"},
	}
	return f, nil
}
