package ops_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/propchain/internal/ledger"
	"github.com/liftedinit/propchain/internal/models"
	"github.com/liftedinit/propchain/internal/ops"
)

type memoryHandler struct {
	blocks []*models.Block
	txs    []*models.Transaction
	err    error
}

func (h *memoryHandler) WriteBlockWithTransactions(_ context.Context, block *models.Block, txs []*models.Transaction) error {
	if h.err != nil {
		return h.err
	}
	h.blocks = append(h.blocks, block)
	h.txs = append(h.txs, txs...)
	return nil
}

func (h *memoryHandler) Close() error { return nil }

func parseFile(t *testing.T, path string) []ops.Operation {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	parsed, err := ops.Parse(f)
	require.NoError(t, err)
	return parsed
}

func parseString(t *testing.T, s string) []ops.Operation {
	t.Helper()
	parsed, err := ops.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return parsed
}

func TestRunScenario(t *testing.T) {
	l := ledger.New()
	out := &memoryHandler{}

	res, err := ops.NewRunner(l, out, ops.Options{}).Run(context.Background(), parseFile(t, "testdata/scenario.jsonl"))
	require.NoError(t, err)

	assert.Equal(t, 6, res.Applied)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Mined, 2)

	chain := l.Chain()
	require.Len(t, chain, 3)
	assert.Equal(t, "Minted property NFT 1 for alice", chain[1].Data)
	assert.Equal(t, chain[1].Hash, chain[2].PreviousHash)

	require.Len(t, out.blocks, 3)
	assert.Equal(t, uint64(0), out.blocks[0].ID)
	assert.Equal(t, chain[2].Hash, out.blocks[2].Hash)
	assert.Len(t, out.txs, 2)
}

func TestRunAutoMine(t *testing.T) {
	l := ledger.New()
	script := `{"op":"create_wallet","owner":"alice"}
{"op":"mint","owner":"alice","property_id":1,"value":10,"location":"x"}
{"op":"list_for_sale","owner":"alice","property_id":1}
{"op":"mint","owner":"bob","property_id":2,"value":10,"location":"x"}`

	res, err := ops.NewRunner(l, nil, ops.Options{AutoMine: true}).Run(context.Background(), parseString(t, script))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Applied)
	assert.Equal(t, 1, res.Failed)
	assert.Len(t, res.Mined, 2)
	assert.Len(t, l.Chain(), 3)
	assert.Empty(t, l.Pending())
}

func TestRunMineRemaining(t *testing.T) {
	l := ledger.New()
	script := `{"op":"create_wallet","owner":"alice"}
{"op":"mint","owner":"alice","property_id":1,"value":10,"location":"x"}
{"op":"mint","owner":"alice","property_id":2,"value":10,"location":"y"}`

	res, err := ops.NewRunner(l, nil, ops.Options{MineRemaining: true}).Run(context.Background(), parseString(t, script))
	require.NoError(t, err)
	require.Len(t, res.Mined, 1)
	assert.Equal(t, "Minted property NFT 1 for alice\nMinted property NFT 2 for alice", res.Mined[0].Data)
}

func TestRunFailFast(t *testing.T) {
	l := ledger.New()
	script := `{"op":"mine"}
{"op":"create_wallet","owner":"alice"}`

	res, err := ops.NewRunner(l, nil, ops.Options{FailFast: true}).Run(context.Background(), parseString(t, script))
	assert.ErrorIs(t, err, ledger.ErrEmptyTransactionPool)
	assert.ErrorContains(t, err, "line 1")
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 0, res.Applied)
}

func TestRunOutputErrorAborts(t *testing.T) {
	l := ledger.New()
	out := &memoryHandler{err: errors.New("disk full")}

	_, err := ops.NewRunner(l, out, ops.Options{}).Run(context.Background(), nil)
	assert.ErrorContains(t, err, "failed to write block 0: disk full")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ops.NewRunner(ledger.New(), nil, ops.Options{}).Run(ctx, parseString(t, `{"op":"create_wallet","owner":"alice"}`))
	assert.ErrorIs(t, err, context.Canceled)
}
