package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Block is a mined block as handed to the output sinks. Data is the JSON
// encoding of the block summary.
type Block struct {
	ID   uint64
	Hash string
	Data []byte
}

// Transaction is one operation description sealed in a block, identified by
// the block index and its position in the block payload.
type Transaction struct {
	BlockID  uint64
	Position int
	Data     []byte
}

// BlockSummary is the exported view of a chain block.
type BlockSummary struct {
	Index        uint64  `json:"index"`
	Hash         string  `json:"hash"`
	PreviousHash string  `json:"previous_hash"`
	Timestamp    float64 `json:"timestamp"`
	Data         string  `json:"data"`
}

// AssetView is the exported view of a property token.
type AssetView struct {
	PropertyID int64   `json:"property_id"`
	Owner      string  `json:"owner"`
	Value      float64 `json:"value"`
	Location   string  `json:"location"`
	ForSale    bool    `json:"is_for_sale"`
	Status     string  `json:"status"`
}

func (v AssetView) String() string {
	return fmt.Sprintf("Property NFT - ID: %d, Owner: %s, Value: %s, Location: %s, Status: %s",
		v.PropertyID, v.Owner, FormatFloat(v.Value), v.Location, v.Status)
}

// FormatFloat renders f the way Python's str(float) does: the shortest digits
// that round-trip, with a ".0" suffix for integral values and exponent form
// when the decimal exponent is below -4 or at least 16.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return sci
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// LedgerStats is a point-in-time count of the ledger contents.
type LedgerStats struct {
	Height        int  `json:"height"`
	PendingCount  int  `json:"pending_count"`
	Wallets       int  `json:"wallets"`
	Assets        int  `json:"assets"`
	AssetsForSale int  `json:"assets_for_sale"`
	ChainValid    bool `json:"chain_valid"`
}
