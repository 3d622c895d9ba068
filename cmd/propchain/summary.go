package propchain

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/liftedinit/propchain/internal/ledger"
)

// printSummary renders the chain, the wallets and the properties for sale.
func printSummary(w io.Writer, l *ledger.Ledger) error {
	chain := pterm.TableData{{"Index", "Data", "Hash", "Previous Hash"}}
	for _, b := range l.Chain() {
		chain = append(chain, []string{
			strconv.FormatUint(b.Index, 10),
			strings.ReplaceAll(b.Data, "\n", "; "),
			b.Hash,
			b.PreviousHash,
		})
	}

	byOwner := l.Wallets()
	owners := make([]string, 0, len(byOwner))
	for owner := range byOwner {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	wallets := pterm.TableData{{"Owner", "Property"}}
	for _, owner := range owners {
		if len(byOwner[owner]) == 0 {
			wallets = append(wallets, []string{owner, "-"})
		}
		for _, a := range byOwner[owner] {
			wallets = append(wallets, []string{owner, a.String()})
		}
	}

	forSale := pterm.TableData{{"Property"}}
	for _, a := range l.PropertiesForSale() {
		forSale = append(forSale, []string{a.String()})
	}

	for _, section := range []struct {
		title string
		data  pterm.TableData
	}{
		{"Chain", chain},
		{"Wallets", wallets},
		{"Properties for Sale", forSale},
	} {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(section.data).Srender()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", pterm.DefaultSection.Sprint(section.title), table); err != nil {
			return err
		}
	}
	return nil
}
