package ledger

import "errors"

// Error kinds returned by ledger operations. Callers match them with errors.Is;
// the ledger state is unchanged whenever one of them is returned.
var (
	ErrWalletAlreadyExists  = errors.New("wallet already exists")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrDuplicatePropertyID  = errors.New("duplicate property id")
	ErrInvalidBlockLink     = errors.New("invalid block link")
	ErrEmptyTransactionPool = errors.New("no transactions to mine")
	ErrEmptyChain           = errors.New("blockchain is empty")
	ErrInvalidOwner         = errors.New("invalid owner name")
	ErrInvalidPropertyValue = errors.New("invalid property value")
)
