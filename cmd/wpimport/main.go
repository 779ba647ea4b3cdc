package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	wpimport "github.com/goliatone/go-wpimport"
	"github.com/goliatone/go-wpimport/internal/logging"
	"github.com/goliatone/go-wpimport/internal/logging/gologger"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("wpimport: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("wpimport", flag.ExitOnError)
	dbPath := fs.String("db", "wpimport.db", "Path to the destination sqlite database")
	mediaDir := fs.String("media-dir", "media", "Destination media base directory")
	path := fs.String("path", "", "Export document (.xml/.txt) or archive (.zip) to import")
	collectionID := fs.Int64("collection", 0, "Destination collection ID")
	mode := fs.String("mode", wpimport.ModeAppend, "Import mode: append or replace")
	deleteFiles := fs.Bool("delete-files", false, "Also delete media files orphaned by a replace run")
	matchImages := fs.Bool("match-images", false, "Rewrite <img> tags matching imported files into inline tags")
	allowExtracted := fs.Bool("allow-extracted", false, "Reuse a previously extracted archive folder")
	charset := fs.String("dest-charset", "", "Destination database charset when not UTF-8")
	typeByName := fs.String("type-by-name", "", "Comma separated itemtype=ID pairs (ID 0 skips the type)")
	typeByUsage := fs.String("type-by-usage", "", "Comma separated posttype=ID pairs (e.g. post=1,page=2)")
	typeFallback := fs.Int64("type-fallback", 1, "Item type ID used when no mapping matches")
	logLevel := fs.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	logFormat := fs.String("log-format", "console", "Log format: json, console, pretty")

	if err := fs.Parse(args); err != nil {
		return err
	}

	byName, err := parseTypeMapping(*typeByName)
	if err != nil {
		return fmt.Errorf("parse type-by-name: %w", err)
	}
	byUsage, err := parseTypeMapping(*typeByUsage)
	if err != nil {
		return fmt.Errorf("parse type-by-usage: %w", err)
	}

	cfg := wpimport.DefaultConfig()
	cfg.MediaDir = *mediaDir
	cfg.Path = *path
	cfg.CollectionID = *collectionID
	cfg.Mode = *mode
	cfg.DeleteFiles = *deleteFiles
	cfg.MatchImages = *matchImages
	cfg.AllowExtracted = *allowExtracted
	cfg.DestinationCharset = *charset
	cfg.TypeByName = byName
	cfg.TypeByUsage = byUsage
	cfg.TypeFallback = *typeFallback

	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  *logLevel,
		Format: *logFormat,
	})
	if err != nil {
		return err
	}
	logger := logging.ImporterLogger(provider)

	sqldb, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", *dbPath, err)
	}
	db := wpimport.OpenDB(sqldb)
	defer db.Close()

	ctx := context.Background()
	if err := wpimport.CreateSchema(ctx, db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	reporter := wpimport.NewConsoleReporter(os.Stdout)
	handler := wpimport.NewImportCollectionHandler(wpimport.Dependencies{
		DB:       db,
		Storage:  wpimport.NewStorage(cfg.MediaDir),
		Reporter: reporter,
		Logger:   logger,
		Provider: provider,
	})

	if err := handler.Execute(ctx, cfg.Command()); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	return nil
}

// parseTypeMapping parses "name=ID,name=ID" flag values.
func parseTypeMapping(value string) (map[string]int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	mapping := map[string]int64{}
	for _, pair := range strings.Split(value, ",") {
		name, idStr, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed ID in %q", pair)
		}
		mapping[strings.TrimSpace(name)] = id
	}
	return mapping, nil
}
