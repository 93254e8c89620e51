package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"himti/internal/config"
	"himti/internal/db"
	"himti/internal/logger"
	"himti/internal/migration"
)

func main() {
	command := flag.String("command", "up", "migration command (up/down/status/version/reset)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	if cfg.DBDriver != db.DriverPostgres {
		zl.Fatal("sql migrations only target postgres; use DB_AUTO_MIGRATE for other drivers",
			zap.String("driver", cfg.DBDriver))
	}

	migrator, err := migration.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("create migrator", zap.Error(err))
	}
	defer migrator.Close()

	switch *command {
	case "up":
		if err := migrator.Up(); err != nil {
			zl.Fatal("run migrations", zap.Error(err))
		}
		zl.Info("migrations applied")
	case "down":
		if err := migrator.Down(); err != nil {
			zl.Fatal("roll back migration", zap.Error(err))
		}
		zl.Info("rolled back one migration")
	case "status":
		if err := migrator.Status(); err != nil {
			zl.Fatal("migration status", zap.Error(err))
		}
	case "version":
		current, err := migrator.Version()
		if err != nil {
			zl.Fatal("migration version", zap.Error(err))
		}
		latest, err := migrator.LatestVersion()
		if err != nil {
			zl.Fatal("latest migration version", zap.Error(err))
		}
		zl.Info("migration version", zap.Int64("current", current), zap.Int64("latest", latest))
	case "reset":
		if err := migrator.Reset(); err != nil {
			zl.Fatal("reset migrations", zap.Error(err))
		}
		zl.Info("migrations reset")
	default:
		zl.Fatal("unknown command", zap.String("command", *command))
	}
}
