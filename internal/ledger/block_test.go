package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/propchain/internal/ledger"
)

func TestCalculateHash(t *testing.T) {
	// Known digests; timestamps always carry a fractional part.
	assert.Equal(t,
		"d494800df46be178e4b4d80001de0834a7d0f34191d9a824586b93cf1ac0f9d9",
		ledger.CalculateHash(0, "0", 1700000000, "Genesis Block"))
	assert.Equal(t,
		"5bf9593e71572d7ab2a61b94b5b8c1743917a3588360a96768eec81259b81a6a",
		ledger.CalculateHash(1, "abc", 1700000000.25, "Minted property NFT 1 for alice"))
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1700000000, "1700000000.0"},
		{1700000000.25, "1700000000.25"},
		{0, "0.0"},
		{0.1, "0.1"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1.5e-7, "1.5e-07"},
		{1234567890123456, "1234567890123456.0"},
		{1e16, "1e+16"},
		{12345678901234567, "1.2345678901234568e+16"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ledger.FormatTimestamp(tt.in))
	}
}

func TestNewBlock(t *testing.T) {
	b := ledger.NewBlock(3, "prev", 1700000000.5, "payload")
	assert.Equal(t, uint64(3), b.Index)
	assert.Equal(t, "prev", b.PreviousHash)
	assert.Equal(t, "payload", b.Data)
	assert.Equal(t, ledger.CalculateHash(3, "prev", 1700000000.5, "payload"), b.Hash)
	assert.Equal(t, b.Hash, b.Recompute())
	assert.Len(t, b.Hash, 64)

	// Fields are concatenated without separators.
	assert.Equal(t, ledger.CalculateHash(1, "1", 2, "c"), ledger.CalculateHash(11, "", 2, "c"))
	assert.NotEqual(t, ledger.CalculateHash(1, "a", 2, "c"), ledger.CalculateHash(1, "a", 2, "d"))
}

func TestTimestamp(t *testing.T) {
	ts := time.Unix(1700000000, 250_000_000)
	require.InDelta(t, 1700000000.25, ledger.Timestamp(ts), 1e-6)

	b := ledger.NewBlock(0, "0", ledger.Timestamp(ts), "x")
	assert.Equal(t, ts.Unix(), b.Time().Unix())
}
