package main

import (
	"awesome_web/internal/app"
	"awesome_web/internal/connectors"
	"awesome_web/internal/orm"
	"awesome_web/internal/web"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := setup(*configFile)
			if err != nil {
				return err
			}
			defer l.Close()

			// Канал для graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pool, err := connectors.CreatePool(ctx, cfg.Database, l)
			if err != nil {
				l.Fatalf("Failed to connect to %s: %v", cfg.Database.Driver, err)
			}
			defer pool.Close()

			for _, s := range app.Schemas() {
				l.Infof("found model: %s (table: %s)", s.Model(), s.Table())
			}

			gin.SetMode(gin.ReleaseMode)
			router := gin.New()
			router.Use(gin.Recovery())
			if err := web.AddRoutes(router, app.New(orm.New(pool, l), l), l); err != nil {
				l.Fatalf("Failed to register routes: %v", err)
			}
			web.AddStatic(router, cfg.HTTP.StaticDir, l)

			srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				l.Infof("server started at http://%s", cfg.HTTP.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				// Ожидаем сигнала завершения или падения сервера
				<-gctx.Done()
				l.Info("Shutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				l.Errorf("server stopped with error: %v", err)
				return err
			}
			l.Info("Application shutdown complete")
			return nil
		},
	}
}
