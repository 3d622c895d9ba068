package ledger

import (
	"github.com/pkg/errors"
)

// Wallet holds the assets of a single owner in insertion order.
type Wallet struct {
	owner  string
	assets []*Asset
}

func newWallet(owner string) *Wallet {
	return &Wallet{owner: owner}
}

func (w *Wallet) Owner() string {
	return w.owner
}

// Assets returns copies of the wallet's assets.
func (w *Wallet) Assets() []Asset {
	out := make([]Asset, 0, len(w.assets))
	for _, a := range w.assets {
		out = append(out, *a)
	}
	return out
}

func (w *Wallet) add(a *Asset) {
	w.assets = append(w.assets, a)
}

func (w *Wallet) find(propertyID int64) (int, *Asset) {
	for i, a := range w.assets {
		if a.PropertyID == propertyID {
			return i, a
		}
	}
	return -1, nil
}

func (w *Wallet) remove(propertyID int64) (*Asset, error) {
	i, a := w.find(propertyID)
	if a == nil {
		return nil, errors.WithMessagef(ErrPropertyNotFound, "property ID %d not found in %s's wallet", propertyID, w.owner)
	}
	w.assets = append(w.assets[:i], w.assets[i+1:]...)
	return a, nil
}
