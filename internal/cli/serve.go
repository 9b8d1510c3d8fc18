package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"veracity/internal/pipeline"
	"veracity/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	Long: `Serves the verification pipeline over HTTP:
- POST /api/verify accepts {"claim": "...", ...} and returns the full result
- GET /healthz reports liveness

Example:
  veracity serve
  veracity serve --addr :9000 --strategy agentic`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	registerPipelineFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	return server.New(p, cfg.Server.Addr).Run()
}
