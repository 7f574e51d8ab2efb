// Command pmcice runs the ice-model HTTP service: profile computations on
// demand, optional persistence of layer summaries, and queries over past
// runs.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/nlcsci/pmcice/internal/constants"
	"github.com/nlcsci/pmcice/internal/log"
	"github.com/nlcsci/pmcice/internal/server"
	"github.com/nlcsci/pmcice/internal/storage/sqlite"
	"github.com/nlcsci/pmcice/pkg/config"
)

func main() {
	var wg sync.WaitGroup

	cfgFile := flag.String("config", "config.yaml", "Path to config file, YAML or SQLite (default: ./config.yaml)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	// Set up our logger
	if err := log.Init(*debug); err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	log.Infof("pmcice %s starting", constants.Version)

	// Read our server configuration
	filename, _ := filepath.Abs(*cfgFile)
	provider, err := newConfigProvider(filename)
	if err != nil {
		log.Errorf("error opening config source. Did you pass the -config flag? Run with -h for help: %v", err)
		os.Exit(1)
	}
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		log.Errorf("error loading configuration: %v", err)
		os.Exit(1)
	}

	sigs := make(chan os.Signal, 1)
	done := make(chan struct{}, 1)

	ctx, cancel := context.WithCancel(context.Background())

	// Open the run store when one is configured
	var store *sqlite.RunStore
	if cfg.Storage.SQLite != nil {
		store, err = sqlite.Open(cfg.Storage.SQLite.Path)
		if err != nil {
			log.Errorf("failed to open run store: %v", err)
			cancel()
			os.Exit(1)
		}
		defer store.Close()
		log.Infof("recording run summaries to %s", cfg.Storage.SQLite.Path)
	}

	// Initialize the REST controller
	ctrl, err := server.NewController(ctx, &wg, cfg, store, log.GetSugaredLogger())
	if err != nil {
		log.Errorf("could not create REST controller: %v", err)
		cancel()
		os.Exit(1)
	}
	if err := ctrl.StartController(); err != nil {
		log.Errorf("could not start REST controller: %v", err)
		cancel()
		os.Exit(1)
	}

	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func(cancel context.CancelFunc) {
		// If we get a SIGINT or SIGTERM, cancel the context and unblock 'done'
		// to trigger a program shutdown
		<-sigs
		log.Info("shutdown signal received, initiating graceful shutdown...")
		cancel()
		close(done)
	}(cancel)

	// Wait for 'done' to unblock before terminating
	<-done

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")
}

// newConfigProvider picks a provider from the file extension: SQLite for
// .db/.sqlite, YAML otherwise.
func newConfigProvider(filename string) (config.ConfigProvider, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".db", ".sqlite":
		return config.NewSQLiteProvider(filename)
	default:
		return config.NewYAMLProvider(filename), nil
	}
}
