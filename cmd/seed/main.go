package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"careerquest/internal/config"
	"careerquest/internal/database/migration"
	dbpostgres "careerquest/internal/database/postgres"
	"careerquest/internal/database/seeder"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "directory holding versioned SQL migrations")
	skipSeed := flag.Bool("skip-seed", false, "run migrations only")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	runner := migration.Runner{Dir: *migrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		logger.Fatalf("migrations failed: %v", err)
	}
	logger.Printf("migrations applied")

	if *skipSeed {
		return
	}

	seed := seeder.Runner{Seeders: seeder.Defaults()}
	if err := seed.Run(ctx, db); err != nil {
		logger.Fatalf("seeding failed: %v", err)
	}
	logger.Printf("seed data applied")
}
