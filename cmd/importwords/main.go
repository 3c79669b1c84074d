package main

import (
	"context"
	"flag"
	"log"

	"github.com/example/wordday/internal/config"
	"github.com/example/wordday/internal/database"
	"github.com/example/wordday/internal/importer"
)

func main() {
	importConfig := importer.DefaultConfig()
	flag.StringVar(&importConfig.FilePath, "file", "", "path to a JSON, CSV or Excel file containing words")
	flag.StringVar(&importConfig.SheetName, "sheet", importConfig.SheetName, "sheet name (Excel only)")
	flag.IntVar(&importConfig.StartRow, "start-row", importConfig.StartRow, "first row to import, 1-based (CSV/Excel)")
	flag.Parse()

	if importConfig.FilePath == "" {
		log.Fatal("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	words := database.NewWordRepository(db)

	result, err := importer.ImportWords(context.Background(), words, importConfig)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Imported %d of %d words (%d skipped)", result.Created, result.TotalProcessed, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("Error: %s", e)
	}
}
