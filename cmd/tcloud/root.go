package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	transactioncloud "github.com/transactioncloud/transactioncloud-go"
	"github.com/transactioncloud/transactioncloud-go/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "tcloud",
	Short:         "Command line client for the Transaction.Cloud API",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "tcloud.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log every API request")
}

func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// newClient builds the SDK client from the config file. The transport
// owns the timeout; the client itself never retries or times out.
func newClient() (*transactioncloud.Client, *config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	opts := []transactioncloud.Option{
		transactioncloud.WithLogger(newLogger()),
	}
	if cfg.Sandbox {
		opts = append(opts, transactioncloud.WithSandbox())
	}

	transport := &http.Client{Timeout: 30 * time.Second}
	return transactioncloud.New(transport, cfg.APIKey, cfg.APIKeyPassword, opts...), cfg, nil
}
