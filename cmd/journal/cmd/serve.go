package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trading-journal-go/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the journal API server",
	Long:  `Load the trade set (remote first, local fallback) and serve the JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		j, log, cfg, err := buildJournal()
		if err != nil {
			return err
		}
		defer log.Sync()

		source := j.Refresh(cmd.Context())
		log.Info("Initial trade load complete",
			zap.String("source", source.String()),
			zap.Int("count", len(j.Trades())))

		srv := server.New(j, log, cfg.Server.Port)
		srv.Start()

		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
