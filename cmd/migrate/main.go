package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	migrations "github.com/bookchatai/bookchat/db"
	"github.com/bookchatai/bookchat/internal/config"
	"github.com/bookchatai/bookchat/internal/db"
	"github.com/bookchatai/bookchat/internal/logger"
)

func main() {
	var configPath string
	defaultConfig := os.Getenv("CONFIG_PATH")
	if strings.TrimSpace(defaultConfig) == "" {
		defaultConfig = config.DefaultConfigPath
	}
	flag.StringVar(&configPath, "config", defaultConfig, "Path to config.toml")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	command := "up"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	migrationsFS, err := fs.Sub(migrations.MigrationsFS, "migrations")
	if err != nil {
		logger.L.Error("migrations fs", "error", err)
		os.Exit(1)
	}

	if err := db.RunMigrate(logger.L, cfg.Postgres, migrationsFS, command, args); err != nil {
		logger.L.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}
