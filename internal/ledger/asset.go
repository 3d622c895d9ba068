package ledger

// Asset is a property token. PropertyID is unique across the registry.
type Asset struct {
	PropertyID int64
	Owner      string
	Value      float64
	Location   string
	ForSale    bool
}

func (a Asset) Status() string {
	if a.ForSale {
		return "For Sale"
	}
	return "Not For Sale"
}
