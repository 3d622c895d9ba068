package output

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/liftedinit/propchain/internal/models"
)

type TSVOutputHandler struct {
	blockFile   *os.File
	txFile      *os.File
	blockWriter *bufio.Writer
	txWriter    *bufio.Writer
}

const (
	BlocksTSV = "blocks.tsv"
	TxsTSV    = "transactions.tsv"
)

func NewTSVOutputHandler(outDir string) (*TSVOutputHandler, error) {
	err := os.MkdirAll(outDir, 0755)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create output directory")
	}

	blockFile, err := os.Create(filepath.Join(outDir, BlocksTSV))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create blocks TSV file")
	}

	txFile, err := os.Create(filepath.Join(outDir, TxsTSV))
	if err != nil {
		blockFile.Close()
		return nil, errors.WithMessage(err, "failed to create transactions TSV file")
	}

	return &TSVOutputHandler{
		blockFile:   blockFile,
		txFile:      txFile,
		blockWriter: bufio.NewWriter(blockFile),
		txWriter:    bufio.NewWriter(txFile),
	}, nil
}

// WriteBlockWithTransactions writes `id<TAB>hash<TAB>json` to blocks.tsv and
// `block<TAB>position<TAB>json` to transactions.tsv.
func (h *TSVOutputHandler) WriteBlockWithTransactions(_ context.Context, block *models.Block, transactions []*models.Transaction) error {
	line := fmt.Sprintf("%d\t%s\t%s\n", block.ID, block.Hash, string(block.Data))
	if _, err := h.blockWriter.WriteString(line); err != nil {
		return errors.WithMessage(err, "failed to write block")
	}

	for _, tx := range transactions {
		line := fmt.Sprintf("%d\t%d\t%s\n", tx.BlockID, tx.Position, string(tx.Data))
		if _, err := h.txWriter.WriteString(line); err != nil {
			return errors.WithMessage(err, "failed to write transaction")
		}
	}
	return nil
}

func (h *TSVOutputHandler) Close() error {
	if err := h.blockWriter.Flush(); err != nil {
		slog.Error("failed to flush block writer", "errors", err)
		return err
	}
	if err := h.txWriter.Flush(); err != nil {
		slog.Error("failed to flush tx writer", "errors", err)
		return err
	}
	if err := h.blockFile.Close(); err != nil {
		slog.Error("failed to close block file", "errors", err)
		return err
	}
	if err := h.txFile.Close(); err != nil {
		slog.Error("failed to close tx file", "errors", err)
		return err
	}
	return nil
}
