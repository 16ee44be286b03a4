// Package main prints a summary of the chat database: row counts,
// orphaned suggestions and the most linked tags.
//
// Usage:
//
//	DB_PATH=./data/chat.db go run ./cmd/dbinspect
//	POSTGRES_URL=postgres://... go run ./cmd/dbinspect --top 20
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chatlabs/chat-api/internal/config"
	"github.com/chatlabs/chat-api/internal/store/sqlstore"
)

func main() {
	fs := flag.NewFlagSet("dbinspect", flag.ExitOnError)
	top := fs.Int("top", 10, "Number of most linked tags to list")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(nil)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var db *sqlstore.Store
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err = sqlstore.OpenPostgres(cfg.Database.PostgresDSN(), 1, nil)
	default:
		db, err = sqlstore.OpenSQLite(cfg.Database.Path, nil)
	}
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	stats, err := db.Stats(context.Background(), *top)
	if err != nil {
		log.Fatalf("Failed to collect stats: %v", err)
	}

	fmt.Println("=== Database Inspection ===")
	fmt.Printf("Driver: %s\n", db.Dialect())
	fmt.Println()
	fmt.Printf("Messages:          %d\n", stats.Messages)
	fmt.Printf("Tags:              %d\n", stats.Tags)
	fmt.Printf("Message-tag links: %d\n", stats.MessageTags)
	fmt.Printf("Suggestions:       %d\n", stats.Suggestions)
	fmt.Println()

	fmt.Println("=== Integrity ===")
	fmt.Printf("Orphaned suggestions: %d\n", stats.OrphanSuggestions)
	fmt.Printf("Unreferenced tags:    %d\n", stats.UnreferencedTags)

	if len(stats.MostLinked) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("=== Top %d Tags ===\n", len(stats.MostLinked))
	for _, usage := range stats.MostLinked {
		fmt.Printf("  %-24s %-6s %d\n", usage.Tag.Value, usage.Tag.Type, usage.Messages)
	}
}
