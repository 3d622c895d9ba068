package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/liftedinit/propchain/internal/ledger"
	"github.com/liftedinit/propchain/internal/models"
	"github.com/liftedinit/propchain/internal/output"
)

// LoadBlocks reads the block files written by the JSON output handler, ordered by index.
func LoadBlocks(inputDir string) ([]models.BlockSummary, error) {
	blocksDir := filepath.Join(inputDir, "block")
	entries, err := os.ReadDir(blocksDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read blocks directory: %w", err)
	}

	var blocks []models.BlockSummary
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "block_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(blocksDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read block file '%s': %w", name, err)
		}

		var summary models.BlockSummary
		if err := json.Unmarshal(data, &summary); err != nil {
			return nil, fmt.Errorf("failed to decode block file '%s': %w", name, err)
		}
		if output.BlockFileName(summary.Index) != name {
			return nil, fmt.Errorf("block file '%s' holds block %d", name, summary.Index)
		}
		blocks = append(blocks, summary)
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Index < blocks[j].Index })
	return blocks, nil
}

// VerifyBlocks checks that exported blocks form a contiguous, correctly linked
// chain starting at genesis.
func VerifyBlocks(blocks []models.BlockSummary) error {
	if len(blocks) == 0 {
		return ledger.ErrEmptyChain
	}

	var previous ledger.Block
	for i, s := range blocks {
		current := ledger.Block{
			Index:        s.Index,
			PreviousHash: s.PreviousHash,
			Timestamp:    s.Timestamp,
			Data:         s.Data,
			Hash:         s.Hash,
		}
		if current.Index != uint64(i) {
			return fmt.Errorf("missing block %d: %w", i, ledger.ErrInvalidBlockLink)
		}
		if i == 0 {
			if current.PreviousHash != ledger.GenesisPreviousHash || current.Data != ledger.GenesisData || current.Hash != current.Recompute() {
				return fmt.Errorf("invalid genesis block: %w", ledger.ErrInvalidBlockLink)
			}
		} else if err := ledger.ValidateLink(current, previous); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		previous = current
	}
	return nil
}

// ExportTSV verifies the JSON export in inputDir and rewrites it as TSV files
// in outputDir. It returns the number of blocks exported.
func ExportTSV(ctx context.Context, inputDir, outputDir string) (int, error) {
	blocks, err := LoadBlocks(inputDir)
	if err != nil {
		return 0, err
	}
	if err := VerifyBlocks(blocks); err != nil {
		return 0, fmt.Errorf("exported chain does not verify: %w", err)
	}

	handler, err := output.NewTSVOutputHandler(outputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to create TSV output handler: %w", err)
	}

	for _, summary := range blocks {
		block, txs, err := output.FromSummary(summary)
		if err != nil {
			handler.Close()
			return 0, err
		}
		if err := handler.WriteBlockWithTransactions(ctx, block, txs); err != nil {
			handler.Close()
			return 0, err
		}
	}

	if err := handler.Close(); err != nil {
		return 0, fmt.Errorf("failed to close TSV output: %w", err)
	}
	return len(blocks), nil
}
