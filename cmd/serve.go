package cmd

import (
	"fmt"
	"time"

	"github.com/RooCodeInc/convo-viewer/internal"
	"github.com/RooCodeInc/convo-viewer/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveInterval time.Duration
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll the corpus continuously behind a local HTTP API",
	Long: `Start the viewer as a long-running process: the task list and the
selected conversation are refreshed on a fixed interval, and the reconciled
state is exposed over a local HTTP API for a presentation layer to render.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := activeSource()
		if err != nil {
			return err
		}

		repo, err := newRepository()
		if err != nil {
			return err
		}

		ctrl := internal.NewController(repo, source, serveInterval)
		if err := ctrl.Start(); err != nil {
			return fmt.Errorf("initial task list load failed: %w", err)
		}
		defer ctrl.Close()

		return server.New(ctrl).Start(serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:5173", "Listen address")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", 3*time.Second, "Polling interval")
}
