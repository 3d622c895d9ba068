package ledger

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Registry maps owner names to wallets and keeps a property index so that a
// property ID is held by at most one wallet.
type Registry struct {
	wallets map[string]*Wallet
	owners  map[int64]string
}

func NewRegistry() *Registry {
	return &Registry{
		wallets: make(map[string]*Wallet),
		owners:  make(map[int64]string),
	}
}

func (r *Registry) CreateWallet(owner string) error {
	if owner == "" {
		return ErrInvalidOwner
	}
	if _, exists := r.wallets[owner]; exists {
		return errors.WithMessagef(ErrWalletAlreadyExists, "wallet for %s already exists", owner)
	}
	r.wallets[owner] = newWallet(owner)
	return nil
}

// Mint creates a new asset, not for sale, in owner's wallet.
func (r *Registry) Mint(owner string, propertyID int64, value float64, location string) error {
	w, err := r.wallet(owner)
	if err != nil {
		return err
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.WithMessagef(ErrInvalidPropertyValue, "property value %v", value)
	}
	if holder, exists := r.owners[propertyID]; exists {
		return errors.WithMessagef(ErrDuplicatePropertyID, "property ID %d already held by %s", propertyID, holder)
	}

	w.add(&Asset{
		PropertyID: propertyID,
		Owner:      owner,
		Value:      value,
		Location:   location,
	})
	r.owners[propertyID] = owner
	return nil
}

// RemoveAsset takes the asset out of owner's wallet and returns it.
func (r *Registry) RemoveAsset(owner string, propertyID int64) (Asset, error) {
	w, err := r.wallet(owner)
	if err != nil {
		return Asset{}, err
	}
	a, err := w.remove(propertyID)
	if err != nil {
		return Asset{}, err
	}
	delete(r.owners, propertyID)
	return *a, nil
}

// Transfer moves an asset between wallets and clears its sale flag. Either both
// wallets change or neither does.
func (r *Registry) Transfer(from, to string, propertyID int64) error {
	src, err := r.wallet(from)
	if err != nil {
		return errors.WithMessagef(err, "wallet for either %s or %s does not exist", from, to)
	}
	dst, err := r.wallet(to)
	if err != nil {
		return errors.WithMessagef(err, "wallet for either %s or %s does not exist", from, to)
	}

	a, err := src.remove(propertyID)
	if err != nil {
		return err
	}
	a.Owner = to
	a.ForSale = false
	dst.add(a)
	r.owners[propertyID] = to
	return nil
}

// ListForSale flags an asset held by owner as for sale.
func (r *Registry) ListForSale(owner string, propertyID int64) error {
	w, err := r.wallet(owner)
	if err != nil {
		return err
	}
	_, a := w.find(propertyID)
	if a == nil {
		return errors.WithMessagef(ErrPropertyNotFound, "property ID %d not found in %s's wallet", propertyID, owner)
	}
	a.ForSale = true
	return nil
}

// OwnerOf returns the current holder of propertyID.
func (r *Registry) OwnerOf(propertyID int64) (string, bool) {
	owner, ok := r.owners[propertyID]
	return owner, ok
}

// Wallet returns the wallet of owner.
func (r *Registry) Wallet(owner string) (*Wallet, bool) {
	w, ok := r.wallets[owner]
	return w, ok
}

// Owners returns the wallet owners in lexical order.
func (r *Registry) Owners() []string {
	owners := make([]string, 0, len(r.wallets))
	for owner := range r.wallets {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}

// Wallets returns a copy of every wallet's assets keyed by owner.
func (r *Registry) Wallets() map[string][]Asset {
	out := make(map[string][]Asset, len(r.wallets))
	for owner, w := range r.wallets {
		out[owner] = w.Assets()
	}
	return out
}

// ForSale returns the listed assets ordered by owner, then by position in the wallet.
func (r *Registry) ForSale() []Asset {
	var out []Asset
	for _, owner := range r.Owners() {
		for _, a := range r.wallets[owner].assets {
			if a.ForSale {
				out = append(out, *a)
			}
		}
	}
	return out
}

// AssetCount returns the number of assets held across all wallets.
func (r *Registry) AssetCount() int {
	return len(r.owners)
}

func (r *Registry) wallet(owner string) (*Wallet, error) {
	w, ok := r.wallets[owner]
	if !ok {
		return nil, errors.WithMessagef(ErrWalletNotFound, "wallet for %s does not exist", owner)
	}
	return w, nil
}
