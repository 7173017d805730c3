package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/yeremiapane/bar-pos/messaging"
	"github.com/yeremiapane/bar-pos/router"
	"github.com/yeremiapane/bar-pos/services"
	"github.com/yeremiapane/bar-pos/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}

		if cfg.GinMode == "release" {
			gin.SetMode(gin.ReleaseMode)
		}

		opts := services.Options{}
		if cfg.AMQPURL != "" {
			pub, err := messaging.NewInvoicePublisher(cfg.AMQPURL, cfg.InvoiceExchange)
			if err != nil {
				// invoices still print locally, only the feed is lost
				utils.ErrorLogger.Warnf("Invoice publishing disabled: %v", err)
			} else {
				defer pub.Close()
				opts.Publisher = pub
			}
		}

		svc := services.New(db, opts)
		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router.SetupRouter(svc, cfg),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		utils.InfoLogger.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
