package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "storefront/internal/controllers/http"
	"storefront/internal/controllers/web"
	"storefront/internal/infra"
	"storefront/internal/infra/database"
	"storefront/internal/repository/sqlstore"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and the overview page",
	Long: `Serve GET /api/customers, /api/products, /api/orders and /api/stats as JSON,
GET /healthz, and an HTML overview page at /.

The page reads through the remote API at STORE_API_URL when it is set, and
from the local store otherwise.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default from PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	port := cfg.Port
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	store := services.NewStoreService(sqlstore.NewStoreRepository(db, log), log)
	if rdb := newRedis(cfg); rdb != nil {
		defer rdb.Close()
		store.SetCache(rdb, cfg.CacheTTL)
	}

	var pageAPI infra.StoreAPI = store
	if cfg.StoreAPIURL != "" {
		pageAPI = infra.NewStoreClient(cfg.StoreAPIURL, cfg.StoreAPITimeout)
		log.Info().Str("url", cfg.StoreAPIURL).Msg("overview page reads the remote store api")
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), httpapi.RequestLogger(log), httpapi.CORS())

	web.NewHandler(pageAPI, log).RegisterRoutes(r)
	httpapi.NewHandler(store, store).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting storefront server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
