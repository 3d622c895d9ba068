package output

import (
	"context"

	"github.com/liftedinit/propchain/internal/models"
)

// OutputHandler receives every block appended to the ledger chain, genesis
// included, together with the transactions sealed in it.
type OutputHandler interface {
	WriteBlockWithTransactions(ctx context.Context, block *models.Block, transactions []*models.Transaction) error
	Close() error
}
