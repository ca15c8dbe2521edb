package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"techatlas/analysis"
	"techatlas/api"
	"techatlas/catalog"
	"techatlas/config"
	"techatlas/orchestrator"
	"techatlas/report"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	if err := analysis.ValidateTables(); err != nil {
		log.Fatalf("invalid analysis configuration: %v", err)
	}

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	ctx := context.Background()
	cat := catalog.New()
	reports := report.NewStore(ctx, config.GetEnvOrDefault("REPORTS_DIR", config.ReportsDir))

	deps := &api.Deps{
		Pipeline: orchestrator.NewPipeline(cat, reports),
		Tasks:    orchestrator.NewTaskStoreFromEnv(ctx),
		Reports:  reports,
		Catalog:  cat,
	}

	r := api.NewRouter(deps)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/analysis")
	log.Println("  GET  /api/analysis/status/:task_id")
	log.Println("  GET  /api/analysis/download/:filename")
	log.Println("  GET  /api/analysis/history")
	log.Println("  GET  /api/catalog/countries")
	log.Println("  GET  /api/catalog/domains")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
