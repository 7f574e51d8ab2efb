// Package server exposes the ice model over HTTP: single-profile and batch
// computation endpoints plus queries over persisted run summaries.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nlcsci/pmcice/internal/batch"
	"github.com/nlcsci/pmcice/internal/storage/sqlite"
	"github.com/nlcsci/pmcice/pkg/config"
)

// Controller represents the REST server controller
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	cfg      *config.ConfigData
	Server   http.Server
	store    *sqlite.RunStore // nil when run storage is not configured
	pool     *batch.Pool
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController creates a new REST server controller. store may be nil, in
// which case computed runs are served but not persisted and /api/runs
// reports storage as unavailable.
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg *config.ConfigData, store *sqlite.RunStore, logger *zap.SugaredLogger) (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration provided")
	}

	ctrl := &Controller{
		ctx:    ctx,
		wg:     wg,
		cfg:    cfg,
		store:  store,
		pool:   batch.NewPool(cfg.Model.BatchWorkers),
		logger: logger,
	}
	ctrl.handlers = NewHandlers(ctrl)

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", cfg.HTTP.ListenAddr, cfg.HTTP.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	c.logger.Infof("starting REST server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/compute", c.handlers.Compute).Methods(http.MethodPost)
	router.HandleFunc("/api/compute/batch", c.handlers.ComputeBatch).Methods(http.MethodPost)
	router.HandleFunc("/api/runs", c.handlers.GetRuns).Methods(http.MethodGet)
	router.HandleFunc("/api/health", c.handlers.Health).Methods(http.MethodGet)

	return router
}
