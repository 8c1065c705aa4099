package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitbridge/config"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/logging"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/metrics"
	infraRepos "github.com/rios0rios0/gitbridge/internal/infrastructure/repositories"
)

// Bootstrap loads the settings of a subcommand run and configures logging and the
// backend registry from them.
type Bootstrap struct {
	registry  *infraRepos.ProviderRegistry
	collector *metrics.Collector
}

// NewBootstrap creates a Bootstrap for the given registry. The collector may be nil.
func NewBootstrap(registry *infraRepos.ProviderRegistry, collector *metrics.Collector) *Bootstrap {
	return &Bootstrap{registry: registry, collector: collector}
}

// Load reads the --config flag, loads the settings and configures every backend.
func (it *Bootstrap) Load(cmd *cobra.Command) (*config.Settings, error) {
	flagPath, _ := cmd.Flags().GetString("config")
	path := config.ResolvePath(flagPath)

	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logging.Configure(settings.Log)
	if path != "" {
		logger.Debugf("Using config file: %s", path)
	}

	opts := []httpclient.Option{httpclient.WithDebug(settings.Debug)}
	if it.collector != nil {
		opts = append(opts, httpclient.WithCollector(it.collector))
	}
	if err = it.registry.Configure(settings.Backends, settings.Default, opts...); err != nil {
		return nil, fmt.Errorf("failed to configure backends: %w", err)
	}

	logger.Debugf("Configured backends %v (default %q)", it.registry.Names(), it.registry.DefaultName())
	return settings, nil
}

// Collector returns the metrics collector shared by every backend client.
func (it *Bootstrap) Collector() *metrics.Collector {
	return it.collector
}

// Registry returns the configured backend registry.
func (it *Bootstrap) Registry() *infraRepos.ProviderRegistry {
	return it.registry
}
