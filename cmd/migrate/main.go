package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/pkg/config"
	"github.com/noah-isme/timetable-api/pkg/database"
	"github.com/noah-isme/timetable-api/pkg/logger"
)

const usage = `usage: migrate [-steps n] up|down|version`

func main() {
	steps := flag.Int("steps", 0, "number of migrations to apply (up) or roll back (down); 0 means all")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(context.Background(), cfg.Database)
	if err != nil {
		logr.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	m, err := database.NewMigrator(db)
	if err != nil {
		logr.Fatal("migrator unavailable", zap.Error(err))
	}

	switch cmd := flag.Arg(0); cmd {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			logr.Info("no migrations applied")
			return
		}
		if verr != nil {
			logr.Fatal("read version", zap.Error(verr))
		}
		logr.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		flag.Usage()
		os.Exit(2)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logr.Info("schema already up to date")
		return
	}
	if err != nil {
		logr.Fatal("migration failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
	logr.Info("migration complete", zap.String("command", flag.Arg(0)))
}
