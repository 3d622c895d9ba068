package propchain

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liftedinit/propchain/internal/config"
	"github.com/liftedinit/propchain/internal/output"
)

var tsvCmd = &cobra.Command{
	Use:   "tsv [ops-file] [flags]",
	Short: "Apply operations and write the mined blocks to TSV files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tsvConfig := config.LoadTSVConfigFromCLI()
		if err := tsvConfig.Validate(); err != nil {
			return errors.WithMessage(err, "invalid TSV configuration")
		}
		slog.Debug("Command-line argument", "tsv-out", tsvConfig.Output)

		outputHandler, err := output.NewTSVOutputHandler(tsvConfig.Output)
		if err != nil {
			return errors.WithMessage(err, "failed to create TSV output handler")
		}

		if err := apply(cmd, args[0], outputHandler, nil); err != nil {
			outputHandler.Close()
			return err
		}
		return errors.WithMessage(outputHandler.Close(), "failed to flush TSV output")
	},
}

func init() {
	tsvCmd.Flags().StringP("tsv-out", "o", "tsv", "Output directory")
	if err := viper.BindPFlags(tsvCmd.Flags()); err != nil {
		slog.Error("Failed to bind tsvCmd flags", "error", err)
	}
}
