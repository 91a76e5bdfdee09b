// Command ingest loads a plain-text file into the similarity index.
//
//	go run ./cmd/ingest -file guide.txt [-source guide.txt] [-replace]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"ai-health-assistant-be/internal/bootstrap"
	"ai-health-assistant-be/internal/config"
	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	file := flag.String("file", "", "path to a UTF-8 text file")
	source := flag.String("source", "", "source name stored with every chunk (default: file name)")
	replace := flag.Bool("replace", false, "drop chunks previously ingested under the same source")
	flag.Parse()

	if *file == "" {
		log.Fatal("Error: -file is required")
	}
	if *source == "" {
		*source = filepath.Base(*file)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Error: Failed to read %s: %v", *file, err)
	}

	cfg := config.Load()

	var gormDB *gorm.DB
	if cfg.Database.Driver != "memory" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
		if err != nil {
			log.Fatalf("Error: Failed to connect to database: %v", err)
		}
		gormDB = db
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	res, err := container.DocumentService.Ingest(context.Background(), &dto.IngestDocumentRequest{
		Source:  *source,
		Text:    string(raw),
		Replace: *replace,
	})
	if err != nil {
		log.Fatalf("Error: Ingestion failed: %v", err)
	}

	if res.Replaced {
		log.Printf("✅ Re-indexed %s with %d chunks", res.Source, res.Chunks)
		return
	}
	log.Printf("✅ Ingested %d chunks from %s", res.Chunks, res.Source)
}
