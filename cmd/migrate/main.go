package main

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/config"
	"github.com/hieudt/minipos/internal/logger"
)

func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", "migrations", "path to migrations directory")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-path dir] up|down|version")
		os.Exit(1)
	}
	command := args[0]

	_ = godotenv.Load()
	cfg := config.LoadEnv()

	log := logger.NewZapLogger(&cfg.Logger)
	defer log.Sync()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(cfg.Postgres.User), url.QueryEscape(cfg.Postgres.Password),
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName, cfg.Postgres.SSLMode)

	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		log.Fatal("failed to open migrations", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
		var version uint
		var dirty bool
		version, dirty, err = m.Version()
		if err == nil {
			log.Info("migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
	default:
		log.Fatal("unknown command", zap.String("command", command))
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to apply")
		return
	}
	if err != nil {
		log.Fatal("migration failed", zap.String("command", command), zap.Error(err))
	}
	log.Info("migration complete", zap.String("command", command))
}
