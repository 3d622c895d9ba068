package ops_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/propchain/internal/ops"
)

func TestParse(t *testing.T) {
	f, err := os.Open("testdata/scenario.jsonl")
	require.NoError(t, err)
	defer f.Close()

	parsed, err := ops.Parse(f)
	require.NoError(t, err)
	require.Len(t, parsed, 7)

	assert.Equal(t, ops.KindCreateWallet, parsed[0].Op)
	assert.Equal(t, 2, parsed[0].Line)
	assert.Equal(t, ops.KindMint, parsed[1].Op)
	assert.Equal(t, int64(1), *parsed[1].PropertyID)
	assert.Equal(t, 100000.0, parsed[1].Value)
	assert.Equal(t, "Maple St", parsed[1].Location)
	assert.True(t, parsed[1].Mutates())
	assert.False(t, parsed[2].Mutates())
	assert.Equal(t, 9, parsed[6].Line)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"UnknownOp", `{"op":"burn"}`, `line 1: unknown op "burn"`},
		{"UnknownField", `{"op":"mine","extra":1}`, "line 1: failed to decode operation"},
		{"MissingOwner", `{"op":"create_wallet"}`, "create_wallet requires owner"},
		{"MissingPropertyID", `{"op":"mint","owner":"a"}`, "mint requires owner and property_id"},
		{"MissingTo", "\n" + `{"op":"transfer","from":"a","property_id":1}`, "line 2: transfer requires from, to and property_id"},
		{"Malformed", `{"op":`, "failed to decode operation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ops.Parse(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestParsePropertyIDZero(t *testing.T) {
	parsed, err := ops.Parse(strings.NewReader(`{"op":"list_for_sale","owner":"a","property_id":0}`))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, int64(0), *parsed[0].PropertyID)
}
