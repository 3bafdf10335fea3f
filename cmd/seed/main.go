package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pgarat123/livesky/internal/config"
	"github.com/pgarat123/livesky/internal/db"
	"github.com/pgarat123/livesky/internal/logging"
	"github.com/pgarat123/livesky/internal/modules/telemetry/repository"
	"github.com/pgarat123/livesky/internal/seed"
)

const (
	appName = "livesky-seed"
	version = "dev"
)

func main() {
	profilePath := flag.String("profile", "", "path to a YAML seed profile (default: built-in profile)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg, version, appName)
	slog.SetDefault(logger)

	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("db open failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(dbConn); err != nil {
			slog.Error("db close", "error", err)
		}
	}()

	if err := db.EnsureSchema(dbConn); err != nil {
		slog.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	seeder := seed.NewSeeder(repository.NewRepository(dbConn), logger)

	switch command {
	case "clear":
		err = seeder.Clear()
	case "seed":
		var profile seed.Profile
		profile, err = seed.LoadProfile(*profilePath)
		if err == nil {
			err = seeder.Seed(profile)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		usage()
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-profile file] <clear|seed>\n", os.Args[0])
	flag.PrintDefaults()
}
