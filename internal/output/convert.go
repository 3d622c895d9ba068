package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/liftedinit/propchain/internal/models"
)

type transactionRecord struct {
	Block       uint64 `json:"block"`
	Position    int    `json:"position"`
	Description string `json:"description"`
}

// FromSummary builds the sink models for a chain block. The genesis block
// carries no transactions.
func FromSummary(summary models.BlockSummary) (*models.Block, []*models.Transaction, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal block %d: %w", summary.Index, err)
	}
	block := &models.Block{
		ID:   summary.Index,
		Hash: summary.Hash,
		Data: data,
	}

	if summary.Index == 0 || summary.Data == "" {
		return block, nil, nil
	}

	lines := strings.Split(summary.Data, "\n")
	transactions := make([]*models.Transaction, 0, len(lines))
	for i, line := range lines {
		txData, err := json.Marshal(transactionRecord{Block: summary.Index, Position: i, Description: line})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal transaction %d of block %d: %w", i, summary.Index, err)
		}
		transactions = append(transactions, &models.Transaction{
			BlockID:  summary.Index,
			Position: i,
			Data:     txData,
		})
	}
	return block, transactions, nil
}
