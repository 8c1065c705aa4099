package controllers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitbridge/internal/domain/commands"
	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/mcpserver"
)

const (
	metricsPath         = "/metrics"
	readHeaderTimeout   = 5 * time.Second
	metricsShutdownWait = 5 * time.Second
)

// ServeController handles the "serve" subcommand: the MCP stdio server.
type ServeController struct {
	bootstrap *Bootstrap
	command   commands.Tool
}

// NewServeController creates a new ServeController.
func NewServeController(bootstrap *Bootstrap, command commands.Tool) *ServeController {
	return &ServeController{bootstrap: bootstrap, command: command}
}

// GetBind returns the Cobra command metadata for the serve controller.
func (it *ServeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "serve",
		Short: "Serve the Git hosting tools over MCP stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing one tool per
family (repository, branch, file, commit, issue, pull_request, release, tag,
user, webhook, workflow). Logs go to stderr or to LOG_FILE, stdout is reserved
for the protocol.

With --metrics-addr (or GITBRIDGE_METRICS_ADDR) the outbound request metrics are
exposed in Prometheus format on /metrics.`,
	}
}

// Execute serves until stdin is closed or the process is interrupted.
func (it *ServeController) Execute(cmd *cobra.Command, _ []string) {
	settings, err := it.bootstrap.Load(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	if metricsAddr == "" {
		metricsAddr = settings.MetricsAddr
	}
	if metricsAddr != "" {
		shutdown := it.serveMetrics(metricsAddr)
		defer shutdown()
	}

	server := mcpserver.NewServer(it.command)
	if serveErr := server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); serveErr != nil &&
		!errors.Is(serveErr, context.Canceled) {
		logger.Errorf("MCP server stopped: %v", serveErr)
	}
}

func (it *ServeController) serveMetrics(addr string) func() {
	collector := it.bootstrap.Collector()
	if collector == nil {
		logger.Warn("Metrics were requested but no collector is available")
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, collector.Handler())
	//nolint:exhaustruct // Minimal Server initialization with required fields only
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Infof("Serving metrics on %s%s", addr, metricsPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Metrics server stopped: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownWait)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Warnf("Failed to stop the metrics server: %v", err)
		}
	}
}

// AddFlags adds the serve-specific flags to the given Cobra command.
func (it *ServeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("metrics-addr", "", "Address of the Prometheus /metrics endpoint, e.g. :9090")
}
