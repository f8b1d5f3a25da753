package ofximport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"cloud.google.com/go/civil"
	"github.com/golang/glog"
)

// Importer extracts the statements of the accounts matching AcctIDPattern from OFX documents and
// books them against Account.
type Importer struct {
	AcctIDPattern *regexp.Regexp
	Account       string
	Currency      string // Used when a statement declares no currency.
	Flag          rune
	BalanceType   BalanceType
	Build         BuildOptions
	Builder       TreeBuilder // GetTreeBuilder() if nil.
}

// NewImporter returns an importer for the accounts whose id matches acctIDRegexp. The
// expression is anchored at the start of the id.
func NewImporter(acctIDRegexp, account, currency string) (*Importer, error) {
	pattern, err := regexp.Compile("^(?:" + acctIDRegexp + ")")
	if err != nil {
		return nil, fmt.Errorf("error - invalid account id pattern: %w", err)
	}
	if account == "" {
		return nil, errors.New("error - account is required")
	}
	return &Importer{
		AcctIDPattern: pattern,
		Account:       account,
		Currency:      currency,
		Flag:          FlagOkay,
	}, nil
}

// Identify returns true if the document holds a statement of a matching account.
func (i *Importer) Identify(doc *Document) bool {
	for id := range FindAcctIDs(doc.Markup) {
		if i.AcctIDPattern.MatchString(id) {
			return true
		}
	}
	return false
}

// FileAccount returns the account documents are filed under.
func (i *Importer) FileAccount() string {
	return i.Account
}

// FileDate returns the latest ledger balance date of the document, or nil if it has none.
func (i *Importer) FileDate(doc *Document) (*civil.Date, error) {
	return FindMaxDate(doc.Tree(i.builder()))
}

// Extract reads a document from reader and returns its entries. source names the document in
// entry metadata.
func (i *Importer) Extract(ctx context.Context, reader io.Reader, source string) ([]Entry, error) {
	doc, err := ReadDocument(reader)
	if err != nil {
		return nil, fmt.Errorf("error - reading %s: %w", source, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return i.ExtractDocument(doc, source)
}

// ExtractDocument returns the entries of an already read document.
func (i *Importer) ExtractDocument(doc *Document, source string) ([]Entry, error) {
	glog.V(2).Infof("%s: %s", source, doc)
	root := doc.Tree(i.builder())
	return ExtractMatching(root, source, i.AcctIDPattern, i.config())
}

func (i *Importer) config() Config {
	return Config{
		Flag:            i.Flag,
		Account:         i.Account,
		DefaultCurrency: i.Currency,
		BalanceType:     i.BalanceType,
		Build:           i.Build,
	}
}

func (i *Importer) builder() TreeBuilder {
	if i.Builder != nil {
		return i.Builder
	}
	return GetTreeBuilder()
}
