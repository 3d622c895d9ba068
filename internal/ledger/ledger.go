package ledger

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"

	"github.com/liftedinit/propchain/internal/models"
)

// Ledger composes the chain, the wallet registry and the pending pool behind a
// single lock. Mutations hold the write lock for their whole
// validate-then-write sequence; reads return copies under the read lock.
type Ledger struct {
	mu       deadlock.RWMutex
	chain    *Chain
	registry *Registry
	pool     Pool
	now      func() time.Time
}

type Option func(*Ledger)

// WithClock sets the time source used for block timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New creates a ledger with a fresh genesis block and an empty registry.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		registry: NewRegistry(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.chain = NewChain(Timestamp(l.now()))
	return l
}

func (l *Ledger) CreateWallet(owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.registry.CreateWallet(owner)
}

func (l *Ledger) MintProperty(owner string, propertyID int64, value float64, location string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.registry.Mint(owner, propertyID, value, location); err != nil {
		return err
	}
	l.pool.Add(fmt.Sprintf("Minted property NFT %d for %s", propertyID, owner))
	return nil
}

func (l *Ledger) TransferProperty(from, to string, propertyID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.registry.Transfer(from, to, propertyID); err != nil {
		return err
	}
	l.pool.Add(fmt.Sprintf("Transferred property NFT %d from %s to %s", propertyID, from, to))
	return nil
}

func (l *Ledger) ListPropertyForSale(owner string, propertyID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.registry.ListForSale(owner, propertyID); err != nil {
		return err
	}
	l.pool.Add(fmt.Sprintf("Listed property NFT %d for sale by %s", propertyID, owner))
	return nil
}

// MinePending seals the pending pool into a new block. The pool is only cleared
// once the block has been appended.
func (l *Ledger) MinePending() (models.BlockSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pool.Len() == 0 {
		return models.BlockSummary{}, ErrEmptyTransactionPool
	}

	latest, err := l.chain.Latest()
	if err != nil {
		return models.BlockSummary{}, err
	}

	block := NewBlock(uint64(l.chain.Len()), latest.Hash, Timestamp(l.now()), l.pool.Payload())
	if err := l.chain.Append(block); err != nil {
		return models.BlockSummary{}, errors.WithMessage(err, "failed to append mined block")
	}
	l.pool.Clear()

	return summarize(block), nil
}

// Chain returns the chain as block summaries, genesis first.
func (l *Ledger) Chain() []models.BlockSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	blocks := l.chain.Blocks()
	out := make([]models.BlockSummary, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, summarize(b))
	}
	return out
}

// Latest returns the tail block of the chain.
func (l *Ledger) Latest() (models.BlockSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, err := l.chain.Latest()
	if err != nil {
		return models.BlockSummary{}, err
	}
	return summarize(b), nil
}

// Wallets returns every wallet's assets keyed by owner.
func (l *Ledger) Wallets() map[string][]models.AssetView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	wallets := l.registry.Wallets()
	out := make(map[string][]models.AssetView, len(wallets))
	for owner, assets := range wallets {
		views := make([]models.AssetView, 0, len(assets))
		for _, a := range assets {
			views = append(views, view(a))
		}
		out[owner] = views
	}
	return out
}

// PropertiesForSale returns the assets currently listed for sale.
func (l *Ledger) PropertiesForSale() []models.AssetView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.AssetView
	for _, a := range l.registry.ForSale() {
		out = append(out, view(a))
	}
	return out
}

// OwnerOf returns the current holder of a property.
func (l *Ledger) OwnerOf(propertyID int64) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.registry.OwnerOf(propertyID)
}

// Pending returns the descriptions waiting to be mined.
func (l *Ledger) Pending() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.pool.Entries()
}

func (l *Ledger) IsChainValid() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.chain.IsValid()
}

// VerifyChain re-validates the whole chain and reports the first broken link.
func (l *Ledger) VerifyChain() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.chain.Verify()
}

func (l *Ledger) Stats() models.LedgerStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return models.LedgerStats{
		Height:        l.chain.Len(),
		PendingCount:  l.pool.Len(),
		Wallets:       len(l.registry.wallets),
		Assets:        l.registry.AssetCount(),
		AssetsForSale: len(l.registry.ForSale()),
		ChainValid:    l.chain.IsValid(),
	}
}

func summarize(b Block) models.BlockSummary {
	return models.BlockSummary{
		Index:        b.Index,
		Hash:         b.Hash,
		PreviousHash: b.PreviousHash,
		Timestamp:    b.Timestamp,
		Data:         b.Data,
	}
}

func view(a Asset) models.AssetView {
	return models.AssetView{
		PropertyID: a.PropertyID,
		Owner:      a.Owner,
		Value:      a.Value,
		Location:   a.Location,
		ForSale:    a.ForSale,
		Status:     a.Status(),
	}
}
