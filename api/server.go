// Package api exposes the analysis service over HTTP.
package api

import (
	"github.com/gin-gonic/gin"

	"techatlas/catalog"
	"techatlas/orchestrator"
	"techatlas/report"
)

// Deps bundles the shared components the controllers need.
type Deps struct {
	Pipeline *orchestrator.Pipeline
	Tasks    orchestrator.TaskStore
	Reports  *report.Store
	Catalog  *catalog.Catalog
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps *Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterAnalysisRoutes(r, deps)
	RegisterCatalogRoutes(r, deps)
	RegisterHealthRoutes(r)
	return r
}
