// Package main is a one-shot timetable importer for Campus Schedule Hub.
//
// It parses the published room-by-slot grids into a course catalog and
// stores it where the API server reads it. Grids come either from local
// files given as day=path arguments, or from the configured sheet URLs
// when no arguments are given:
//
//	importer Monday=monday.csv Tuesday=tuesday.csv
//	importer            # download every configured day
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/campus-hub/campus-schedule-hub/config"
	"github.com/campus-hub/campus-schedule-hub/internal/application/command"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/timetable"
	"github.com/campus-hub/campus-schedule-hub/internal/infrastructure/external/sheets"
	"github.com/campus-hub/campus-schedule-hub/internal/infrastructure/persistence/redis"
	"github.com/campus-hub/campus-schedule-hub/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "overall import timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Default()

	grids, err := readGrids(args)
	if err != nil {
		return err
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Catalog store
	// ─────────────────────────────────────────────────────────────────────────
	cache, err := redis.NewCache(redisConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer cache.Close()

	catalogStore := redis.NewCatalogCache(cache)

	// ─────────────────────────────────────────────────────────────────────────
	// Grid source (only needed when no files were given)
	// ─────────────────────────────────────────────────────────────────────────
	var source timetable.GridSource
	if len(grids) == 0 {
		if len(cfg.Sheets.DayURLs) == 0 {
			return fmt.Errorf("no grid files given and no SHEETS_URL_<DAY> configured")
		}
		sheetsConfig := sheets.DefaultClientConfig(cfg.Sheets.DayURLs)
		sheetsConfig.Timeout = cfg.Sheets.RequestTimeout
		sheetsConfig.Logger = log
		// Reruns within the grid TTL skip days that already downloaded.
		source = redis.NewCachedGridSource(sheets.NewClient(sheetsConfig), redis.NewGridCache(cache, 0))
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Import
	// ─────────────────────────────────────────────────────────────────────────
	parser := timetable.NewParser(timetable.DefaultConfig())
	importer := command.NewImportTimetableHandler(source, catalogStore, parser, nil, log)

	importSource := "sheets"
	if len(grids) > 0 {
		importSource = "file"
	}

	result, err := importer.Handle(ctx, command.ImportTimetableCommand{
		Grids:  grids,
		Source: importSource,
	})
	if err != nil {
		return err
	}

	days := make([]string, 0, len(result.DaysImported))
	for _, d := range result.DaysImported {
		days = append(days, d.String())
	}

	fmt.Printf("catalog imported: %d entries, %d sections (%s)\n",
		result.EntryCount, result.SectionCount, strings.Join(days, ", "))
	return nil
}

// readGrids loads day=path arguments into raw grid texts.
func readGrids(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}

	grids := make(map[string]string, len(args))
	for _, arg := range args {
		day, path, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid argument %q, expected day=path", arg)
		}
		if _, valid := shared.ParseWeekday(day); !valid {
			return nil, fmt.Errorf("unknown weekday %q", day)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		grids[day] = string(raw)
	}
	return grids, nil
}

// redisConfigFrom maps the loaded configuration onto the cache config.
func redisConfigFrom(cfg *config.Config) redis.Config {
	rc := redis.DefaultConfig()
	rc.Host = cfg.Redis.Host
	rc.Port = cfg.Redis.Port
	rc.Password = cfg.Redis.Password
	rc.DB = cfg.Redis.DB
	return rc
}
