package propchain

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/liftedinit/propchain/internal/exporter"
)

var exportTSVCmd = &cobra.Command{
	Use:   "export-tsv [input] [output]",
	Short: "Verify a JSON export and convert it to TSV files",
	Long:  "Reads the blocks written by `apply json` from the input directory, checks that they form an intact chain and writes blocks.tsv and transactions.tsv to the output directory.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir := args[0]
		outputDir := args[1]

		if _, err := os.Stat(inputDir); os.IsNotExist(err) {
			return fmt.Errorf("input directory '%s' does not exist", inputDir)
		}

		n, err := exporter.ExportTSV(cmd.Context(), inputDir, outputDir)
		if err != nil {
			return fmt.Errorf("failed to export TSV: %w", err)
		}

		slog.Info("Export completed successfully", "blocks", n, "output", outputDir)
		return nil
	},
}
