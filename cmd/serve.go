package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/kerem-kaynak/redmane/internal/appcontext"
	"github.com/kerem-kaynak/redmane/internal/config"
	apihttp "github.com/kerem-kaynak/redmane/internal/http"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and serve the REST API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Initialize context
	ctx, err := config.InitContext()
	if err != nil {
		return err
	}
	defer closeContext(ctx)

	// Initialize HTTP service
	service := apihttp.NewHTTPService(ctx)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", ctx.Config.Port),
		Handler: service.Engine(),
	}

	signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(signalCtx)
	group.Go(func() error {
		ctx.Logger.Info("Starting the server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ctx.Config.ShutdownTimeout)
		defer cancel()
		ctx.Logger.Info("Shutting down the server")
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// closeContext flushes the logger and closes the database connection.
func closeContext(ctx *appcontext.Context) {
	if sqlDB, err := ctx.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			ctx.Logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	_ = ctx.Logger.Sync()
}
