package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers catalog discovery endpoints.
func RegisterCatalogRoutes(r *gin.Engine, deps *Deps) {
	g := r.Group("/api/catalog")
	g.GET("/countries", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"countries": deps.Catalog.Countries()})
	})
	g.GET("/domains", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"domains": deps.Catalog.Domains()})
	})
}
