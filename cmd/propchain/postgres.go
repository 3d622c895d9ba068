package propchain

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liftedinit/propchain/internal/config"
	"github.com/liftedinit/propchain/internal/output/postgresql"
)

var postgresCmd = &cobra.Command{
	Use:   "postgres [ops-file] [flags]",
	Short: "Apply operations and mirror the mined blocks to a PostgreSQL database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postgresConfig := config.LoadPostgresConfigFromCLI()
		if err := postgresConfig.Validate(); err != nil {
			return fmt.Errorf("invalid PostgreSQL configuration: %w", err)
		}

		outputHandler, err := postgresql.NewPostgresOutputHandler(cmd.Context(), postgresConfig.ConnString, postgresConfig.MaxConns)
		if err != nil {
			return fmt.Errorf("failed to create PostgreSQL output handler: %w", err)
		}
		defer outputHandler.Close()

		latestBlock, err := outputHandler.GetLatestBlock(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get the latest block: %w", err)
		}
		if latestBlock != nil {
			slog.Warn("Overwriting blocks from a previous run", "height", latestBlock.ID, "hash", latestBlock.Hash)
		}

		db := stdlib.OpenDBFromPool(outputHandler.GetPool())
		defer db.Close()

		return apply(cmd, args[0], outputHandler, db)
	},
}

func init() {
	postgresCmd.Flags().StringP("postgres-conn", "p", "", "PostgreSQL connection string")
	postgresCmd.Flags().Uint("max-conns", 4, "Maximum number of PostgreSQL connections (advanced)")
	if err := viper.BindPFlags(postgresCmd.Flags()); err != nil {
		slog.Error("Failed to bind postgresCmd flags", "error", err)
	}
}
