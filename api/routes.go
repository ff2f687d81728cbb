package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jeffsasaki/antipatterns/logging"
)

const BasePath = "/api/v1"

// NewRouter returns an engine with recovery, CORS and every route registered.
func NewRouter(cat Catalog, runs Runs, lggr logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))
	SetupRoutes(r, cat, runs, lggr)
	return r
}

// SetupRoutes registers the v1 routes and the health check on r.
func SetupRoutes(r *gin.Engine, cat Catalog, runs Runs, lggr logging.Logger) {
	h := &handler{catalog: cat, runs: runs, lggr: lggr.Named("api")}

	r.GET("/healthz", h.healthz)

	v1 := r.Group(BasePath)
	v1.GET("/antipatterns", h.listAntipatterns)
	v1.GET("/antipatterns/:slug", h.getAntipattern)
	v1.POST("/antipatterns/:slug/runs", h.submitRun)
	v1.GET("/runs", h.listRuns)
	v1.GET("/runs/:id", h.getRun)
	v1.GET("/healthz", h.healthz)
}
