package propchain

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liftedinit/propchain/internal/config"
	"github.com/liftedinit/propchain/internal/ledger"
	"github.com/liftedinit/propchain/internal/metrics"
	"github.com/liftedinit/propchain/internal/ops"
	"github.com/liftedinit/propchain/internal/output"
)

var ApplyCmd = &cobra.Command{
	Use:   "apply [ops-file]",
	Args:  cobra.ExactArgs(1),
	Short: "Apply an operations script to a fresh ledger",
	Long:  `Apply a JSON-lines script of wallet, mint, transfer, listing and mine operations to a fresh ledger. Use a subcommand to mirror the mined blocks to an output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return apply(cmd, args[0], nil, nil)
	},
}

func init() {
	ApplyCmd.PersistentFlags().Bool("auto-mine", false, "Mine a block after every successful mint, transfer or listing")
	ApplyCmd.PersistentFlags().Bool("mine-remaining", false, "Mine pending operations left at the end of the script")
	ApplyCmd.PersistentFlags().Bool("fail-fast", false, "Stop at the first rejected operation")
	ApplyCmd.PersistentFlags().Bool("verify", true, "Verify the whole chain after applying the script")
	ApplyCmd.PersistentFlags().Bool("summary", false, "Print the chain, the wallets and the properties for sale")
	ApplyCmd.PersistentFlags().Bool("progress", false, "Display a progress bar")
	ApplyCmd.PersistentFlags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	ApplyCmd.PersistentFlags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")
	ApplyCmd.PersistentFlags().Bool("hold", false, "Keep serving metrics after the script completes, until interrupted")
	ApplyCmd.PersistentFlags().String("mirror-tsv", "", "Also write the mined blocks to TSV files in this directory")

	if err := viper.BindPFlags(ApplyCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind ApplyCmd flags", "error", err)
	}

	ApplyCmd.AddCommand(jsonCmd)
	ApplyCmd.AddCommand(tsvCmd)
	ApplyCmd.AddCommand(postgresCmd)
}

// apply runs the script at path against a new ledger. handler and db may be nil.
func apply(cmd *cobra.Command, path string, handler output.OutputHandler, db *sql.DB) error {
	applyConfig := config.LoadApplyConfigFromCLI()
	if err := applyConfig.Validate(); err != nil {
		return fmt.Errorf("invalid Apply configuration: %w", err)
	}
	slog.Debug("Command-line arguments", "applyConfig", applyConfig)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open operations file: %w", err)
	}
	operations, err := ops.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to parse operations file: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	handleInterrupt(cancel)

	if applyConfig.MirrorTSV != "" {
		tsvHandler, err := output.NewTSVOutputHandler(applyConfig.MirrorTSV)
		if err != nil {
			return fmt.Errorf("failed to create TSV mirror: %w", err)
		}
		defer func() {
			if err := tsvHandler.Close(); err != nil {
				slog.Error("Failed to close TSV mirror", "error", err)
			}
		}()
		if handler == nil {
			handler = tsvHandler
		} else {
			// The caller owns handler, so only the mirror is closed here.
			handler = output.NewMultiOutputHandler(handler, tsvHandler)
		}
	}

	l := ledger.New()

	if applyConfig.EnablePrometheus {
		server, err := metrics.CreateMetricsServer(l, db, applyConfig.PrometheusAddr)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				slog.Error("Failed to shut down metrics server", "error", err)
			}
		}()
	}

	slog.Info("Applying operations", "file", path, "count", len(operations))
	runner := ops.NewRunner(l, handler, ops.Options{
		AutoMine:      applyConfig.AutoMine,
		MineRemaining: applyConfig.MineRemaining,
		FailFast:      applyConfig.FailFast,
		Progress:      applyConfig.Progress,
	})
	res, err := runner.Run(ctx, operations)
	if err != nil {
		return fmt.Errorf("failed to apply operations: %w", err)
	}
	slog.Info("Operations applied", "applied", res.Applied, "rejected", res.Failed, "mined", len(res.Mined), "pending", len(l.Pending()))

	if applyConfig.Verify {
		if err := l.VerifyChain(); err != nil {
			return fmt.Errorf("chain verification failed: %w", err)
		}
		slog.Info("Chain verified", "height", len(l.Chain()))
	}

	if applyConfig.ShowSummary {
		if err := printSummary(cmd.OutOrStdout(), l); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}

	if applyConfig.Hold {
		slog.Info("Serving metrics until interrupted", "addr", applyConfig.PrometheusAddr)
		<-ctx.Done()
	}

	return nil
}

// handleInterrupt handles interrupt signals for graceful shutdown.
func handleInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		slog.Info("Received interrupt signal, shutting down...")
		cancel()
	}()
}
