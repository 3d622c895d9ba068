package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/liftedinit/propchain/internal/models"
)

const (
	GenesisPreviousHash = "0"
	GenesisData         = "Genesis Block"
)

// Block is an immutable, hash-identified entry of the chain.
type Block struct {
	Index        uint64
	PreviousHash string
	Timestamp    float64
	Data         string
	Hash         string
}

// NewBlock builds a block and seals it with its hash.
func NewBlock(index uint64, previousHash string, timestamp float64, data string) Block {
	return Block{
		Index:        index,
		PreviousHash: previousHash,
		Timestamp:    timestamp,
		Data:         data,
		Hash:         CalculateHash(index, previousHash, timestamp, data),
	}
}

// CalculateHash returns the hex SHA256 digest of index, previous hash, timestamp
// and data concatenated in that order with no separators.
func CalculateHash(index uint64, previousHash string, timestamp float64, data string) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(index, 10))
	sb.WriteString(previousHash)
	sb.WriteString(FormatTimestamp(timestamp))
	sb.WriteString(data)

	hash := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(hash[:])
}

// Recompute returns the digest of the block's stored fields.
func (b Block) Recompute() string {
	return CalculateHash(b.Index, b.PreviousHash, b.Timestamp, b.Data)
}

// Time returns the block timestamp as a time.Time.
func (b Block) Time() time.Time {
	sec := int64(b.Timestamp)
	nsec := int64((b.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// FormatTimestamp renders a timestamp as hashed: 1700000000 becomes
// "1700000000.0", 1e16 becomes "1e+16".
func FormatTimestamp(ts float64) string {
	return models.FormatFloat(ts)
}

// Timestamp converts t to fractional Unix seconds.
func Timestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
