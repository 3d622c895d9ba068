package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/liftedinit/propchain/internal/models"
)

// JSONOutputHandler writes one indented JSON file per block under block/ and
// one per transaction under txs/. A block file is only written once all of its
// transaction files are in place, and every file is renamed into place so
// readers never see a partial write.
type JSONOutputHandler struct {
	blockDir string
	txDir    string
}

func NewJSONOutputHandler(outDir string) (*JSONOutputHandler, error) {
	h := &JSONOutputHandler{
		blockDir: filepath.Join(outDir, "block"),
		txDir:    filepath.Join(outDir, "txs"),
	}
	for _, dir := range []string{h.blockDir, h.txDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return h, nil
}

func (h *JSONOutputHandler) WriteBlockWithTransactions(_ context.Context, block *models.Block, transactions []*models.Transaction) error {
	for _, tx := range transactions {
		if err := writeJSONFile(filepath.Join(h.txDir, TxFileName(tx.BlockID, tx.Position)), tx.Data); err != nil {
			return fmt.Errorf("failed to write transaction %d of block %d: %w", tx.Position, tx.BlockID, err)
		}
	}
	if err := writeJSONFile(filepath.Join(h.blockDir, BlockFileName(block.ID)), block.Data); err != nil {
		return fmt.Errorf("failed to write block %d: %w", block.ID, err)
	}
	return nil
}

// BlockFileName is the name of the JSON file holding block id.
func BlockFileName(id uint64) string {
	return fmt.Sprintf("block_%010d.json", id)
}

// TxFileName is the name of the JSON file holding the transaction at position
// in block id.
func TxFileName(id uint64, position int) string {
	return fmt.Sprintf("tx_%010d_%04d.json", id, position)
}

func (h *JSONOutputHandler) Close() error {
	return nil
}

func writeJSONFile(path string, data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	buf.WriteByte('\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
