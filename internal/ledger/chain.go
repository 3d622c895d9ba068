package ledger

import (
	"github.com/pkg/errors"
)

// Chain is an append-only sequence of blocks starting at the genesis block.
// It is not safe for concurrent use; Ledger serializes access to it.
type Chain struct {
	blocks []Block
}

// NewChain creates a chain holding only a genesis block stamped with timestamp.
func NewChain(timestamp float64) *Chain {
	return &Chain{
		blocks: []Block{NewBlock(0, GenesisPreviousHash, timestamp, GenesisData)},
	}
}

func (c *Chain) Genesis() Block {
	return c.blocks[0]
}

// Latest returns the tail block.
func (c *Chain) Latest() (Block, error) {
	if len(c.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}
	return c.blocks[len(c.blocks)-1], nil
}

func (c *Chain) Len() int {
	return len(c.blocks)
}

// Blocks returns a copy of the chain.
func (c *Chain) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Append adds candidate at the tail if it directly follows the current latest block.
func (c *Chain) Append(candidate Block) error {
	latest, err := c.Latest()
	if err != nil {
		return err
	}
	if candidate.Index != latest.Index+1 {
		return errors.WithMessagef(ErrInvalidBlockLink, "invalid index: expected %d, got %d", latest.Index+1, candidate.Index)
	}
	if err := ValidateLink(candidate, latest); err != nil {
		return err
	}
	c.blocks = append(c.blocks, candidate)
	return nil
}

// IsValid reports whether every block links to its predecessor.
func (c *Chain) IsValid() bool {
	return c.Verify() == nil
}

// Verify re-checks the genesis block and each link of the chain, returning the first failure.
func (c *Chain) Verify() error {
	if len(c.blocks) == 0 {
		return ErrEmptyChain
	}

	genesis := c.blocks[0]
	if genesis.Index != 0 || genesis.PreviousHash != GenesisPreviousHash || genesis.Data != GenesisData {
		return errors.WithMessage(ErrInvalidBlockLink, "invalid genesis block")
	}
	if genesis.Hash != genesis.Recompute() {
		return errors.WithMessagef(ErrInvalidBlockLink, "invalid genesis hash: expected %s, got %s", genesis.Recompute(), genesis.Hash)
	}

	for i := 1; i < len(c.blocks); i++ {
		current := c.blocks[i]
		previous := c.blocks[i-1]

		if current.Index != previous.Index+1 {
			return errors.WithMessagef(ErrInvalidBlockLink, "block %d: invalid index: expected %d, got %d", i, previous.Index+1, current.Index)
		}
		if err := ValidateLink(current, previous); err != nil {
			return errors.WithMessagef(err, "block %d", i)
		}
	}

	return nil
}

// ValidateLink checks that candidate points at previous and that its hash matches its fields.
func ValidateLink(candidate, previous Block) error {
	if candidate.PreviousHash != previous.Hash {
		return errors.WithMessagef(ErrInvalidBlockLink, "invalid previous hash: expected %s, got %s", previous.Hash, candidate.PreviousHash)
	}

	expected := candidate.Recompute()
	if candidate.Hash != expected {
		return errors.WithMessagef(ErrInvalidBlockLink, "invalid hash: expected %s, got %s", expected, candidate.Hash)
	}

	return nil
}

// IsValidLink is the boolean form of ValidateLink.
func IsValidLink(candidate, previous Block) bool {
	return ValidateLink(candidate, previous) == nil
}
