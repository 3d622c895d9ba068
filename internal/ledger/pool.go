package ledger

import "strings"

// Pool holds descriptions of operations not yet sealed into a block.
type Pool struct {
	entries []string
}

func (p *Pool) Add(description string) {
	p.entries = append(p.entries, description)
}

func (p *Pool) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the pending descriptions in insertion order.
func (p *Pool) Entries() []string {
	out := make([]string, len(p.entries))
	copy(out, p.entries)
	return out
}

// Payload joins the pending descriptions into one block payload.
func (p *Pool) Payload() string {
	return strings.Join(p.entries, "\n")
}

func (p *Pool) Clear() {
	p.entries = nil
}
