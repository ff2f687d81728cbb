// Package api serves the catalog and the run history over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffsasaki/antipatterns/catalog"
	"github.com/jeffsasaki/antipatterns/logging"
	"github.com/jeffsasaki/antipatterns/models"
	"github.com/jeffsasaki/antipatterns/store"
)

// Catalog is the read side of *catalog.Catalog.
type Catalog interface {
	List() []catalog.Entry
	Lookup(slug string) (catalog.Entry, error)
}

// Runs is implemented by *runs.Service.
type Runs interface {
	Submit(ctx context.Context, slug string) (models.Run, error)
	Get(ctx context.Context, id string) (models.Run, error)
	List(ctx context.Context) ([]models.Run, error)
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	catalog Catalog
	runs    Runs
	lggr    logging.Logger
}

func (h *handler) listAntipatterns(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}

func (h *handler) getAntipattern(c *gin.Context) {
	entry, err := h.catalog.Lookup(c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *handler) submitRun(c *gin.Context) {
	run, err := h.runs.Submit(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, run)
}

func (h *handler) listRuns(c *gin.Context) {
	list, err := h.runs.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) getRun(c *gin.Context) {
	run, err := h.runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail maps sentinel errors to status codes. Anything unexpected is logged
// and reported without detail.
func (h *handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, store.ErrRunNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		h.lggr.Errorw("Request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
