package ofximport

import (
	"fmt"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Default flags for generated transactions.
const (
	FlagOkay    = '*'
	FlagWarning = '!'
)

// Entry is a ledger directive produced from a statement, a *Transaction or a *BalanceAssertion.
type Entry interface {
	EntryDate() civil.Date
	Metadata() Meta
}

// Meta locates the source of an entry.
type Meta struct {
	Source string // Name of the document the entry was extracted from.
	ID     string // Institution's id for the transaction, if any.
	Line   int    // Position of the entry within the document's extracted entries.
}

// Amount is a number of units of a currency.
type Amount struct {
	Number   decimal.Decimal
	Currency string
}

func (a Amount) String() string {
	return fmt.Sprintf("%s %s", FormatNumber(a.Number), a.Currency)
}

// FormatNumber renders d with the scale it was parsed with, keeping trailing zeros.
func FormatNumber(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Posting books an amount against an account.
type Posting struct {
	Account string
	Units   Amount
}

// Transaction is a dated movement of value with its postings.
type Transaction struct {
	Meta      Meta
	Date      civil.Date
	Flag      rune
	Payee     string
	Narration string
	Postings  []Posting
}

// EntryDate returns the date the transaction was posted.
func (t *Transaction) EntryDate() civil.Date { return t.Date }

// Metadata returns the transaction's source metadata.
func (t *Transaction) Metadata() Meta { return t.Meta }

// BalanceAssertion asserts the balance of an account at the start of Date.
type BalanceAssertion struct {
	Meta    Meta
	Date    civil.Date
	Account string
	Amount  Amount
}

// EntryDate returns the date at the start of which the balance holds.
func (b *BalanceAssertion) EntryDate() civil.Date { return b.Date }

// Metadata returns the assertion's source metadata.
func (b *BalanceAssertion) Metadata() Meta { return b.Meta }

// SortEntries sorts entries by date. On the same date balance assertions come first; otherwise
// the original order is kept.
func SortEntries(entries []Entry) {
	rank := func(e Entry) int {
		if _, ok := e.(*BalanceAssertion); ok {
			return 0
		}
		return 1
	}
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].EntryDate(), entries[j].EntryDate()
		if di != dj {
			return di.Before(dj)
		}
		return rank(entries[i]) < rank(entries[j])
	})
}
