package main

import (
	"context"
	"flag"
	"log"

	"dataroom/internal/auth"
	"dataroom/internal/backend"
	"dataroom/internal/config"
	"dataroom/internal/seed"
	"dataroom/internal/service/dataroom"

	"github.com/joho/godotenv"
)

func main() {
	fixtureName := flag.String("fixture", "demo", "Embedded fixture name or path to a fixture YAML file")
	clearData := flag.Bool("clear-data", false, "Delete the user's existing data rooms first")
	email := flag.String("email", "", "Seed for this Supabase user (created if missing; needs SUPABASE_KEY)")
	password := flag.String("password", "", "Password for a newly created -email user")
	userID := flag.String("user", "", "Seed for this user ID (defaults to DEV_USER_ID)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *clearData {
		log.Fatalf("BLOCKED: --clear-data is not allowed in production")
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	ctx := context.Background()

	ownerID := cfg.DevUserID
	if *userID != "" {
		ownerID = *userID
	}
	if *email != "" {
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			log.Fatalf("-email needs SUPABASE_URL and SUPABASE_KEY")
		}
		ownerID, err = auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey).EnsureUser(ctx, *email, *password)
		if err != nil {
			log.Fatalf("Failed to resolve seed user: %v", err)
		}
	}
	if ownerID == "" {
		log.Fatalf("No seed user: pass -user, -email or set DEV_USER_ID")
	}

	fixture, err := seed.Load(*fixtureName)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	backends, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open backends: %v", err)
	}
	defer backends.Close()

	service := dataroom.NewService(backends.Repos, backends.Storage, logger)
	workspaces := dataroom.NewWorkspaceManager(service, auth.StaticIdentity(ownerID))
	ws, err := workspaces.Current(ctx)
	if err != nil {
		log.Fatalf("Failed to load workspace: %v", err)
	}

	seeder := seed.NewSeeder(service, logger)

	if *clearData {
		n, err := seeder.Clear(ctx, ws)
		if err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		logger.Info("cleared data rooms", "count", n)
	}

	result, err := seeder.Apply(ctx, ws, fixture)
	if err != nil {
		log.Fatalf("Seeding failed after %d rooms, %d folders, %d files: %v",
			result.Rooms, result.Folders, result.Files, err)
	}

	logger.Info("seeding complete",
		"owner_id", ownerID,
		"fixture", *fixtureName,
		"rooms", result.Rooms,
		"folders", result.Folders,
		"files", result.Files,
	)
}
