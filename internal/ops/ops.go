package ops

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type Kind string

const (
	KindCreateWallet Kind = "create_wallet"
	KindMint         Kind = "mint"
	KindTransfer     Kind = "transfer"
	KindListForSale  Kind = "list_for_sale"
	KindMine         Kind = "mine"
)

// Operation is one line of an operations script.
type Operation struct {
	Op         Kind    `json:"op"`
	Owner      string  `json:"owner,omitempty"`
	From       string  `json:"from,omitempty"`
	To         string  `json:"to,omitempty"`
	PropertyID *int64  `json:"property_id,omitempty"`
	Value      float64 `json:"value,omitempty"`
	Location   string  `json:"location,omitempty"`

	Line int `json:"-"`
}

// Mutates reports whether a successful op adds an entry to the pending pool.
func (o Operation) Mutates() bool {
	switch o.Op {
	case KindMint, KindTransfer, KindListForSale:
		return true
	}
	return false
}

func (o Operation) Validate() error {
	switch o.Op {
	case KindCreateWallet:
		if o.Owner == "" {
			return fmt.Errorf("%s requires owner", o.Op)
		}
	case KindMint, KindListForSale:
		if o.Owner == "" || o.PropertyID == nil {
			return fmt.Errorf("%s requires owner and property_id", o.Op)
		}
	case KindTransfer:
		if o.From == "" || o.To == "" || o.PropertyID == nil {
			return fmt.Errorf("%s requires from, to and property_id", o.Op)
		}
	case KindMine:
	default:
		return fmt.Errorf("unknown op %q", o.Op)
	}
	return nil
}

// Parse reads a JSON-lines operations script. Blank lines and lines starting
// with '#' are skipped.
func Parse(r io.Reader) ([]Operation, error) {
	var ops []Operation
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader([]byte(text)))
		dec.DisallowUnknownFields()

		var op Operation
		if err := dec.Decode(&op); err != nil {
			return nil, fmt.Errorf("line %d: failed to decode operation: %w", line, err)
		}
		if err := op.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read operations: %w", err)
	}
	return ops, nil
}
