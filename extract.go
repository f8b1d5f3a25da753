package ofximport

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/golang/glog"
)

// BalanceType selects the balance assertion emitted after an account's transactions.
type BalanceType int

const (
	// BalanceDeclared asserts the ledger balance the day after its as-of date.
	BalanceDeclared BalanceType = iota
	// BalanceLast asserts the ledger balance the day after the last transaction.
	BalanceLast
	// BalanceNone emits no balance assertion.
	BalanceNone
)

func (b BalanceType) String() string {
	switch b {
	case BalanceDeclared:
		return "declared"
	case BalanceLast:
		return "last"
	case BalanceNone:
		return "none"
	}
	return fmt.Sprintf("BalanceType(%d)", int(b))
}

// ParseBalanceType parses "declared", "last" or "none". The empty string is BalanceDeclared.
func ParseBalanceType(s string) (BalanceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "declared":
		return BalanceDeclared, nil
	case "last":
		return BalanceLast, nil
	case "none":
		return BalanceNone, nil
	}
	return BalanceDeclared, fmt.Errorf("error - unknown balance type %q", s)
}

// Config holds the values entries are built with.
type Config struct {
	Flag            rune
	Account         string
	DefaultCurrency string
	BalanceType     BalanceType
	Build           BuildOptions
}

// Extract returns the entries for the statement of account targetAcctID: one transaction per
// statement transaction in document order, followed by a balance assertion if the statement
// reports a ledger balance. A document without that account yields no entries.
func Extract(root *Node, sourceID, targetAcctID string, cfg Config) ([]Entry, error) {
	return extract(root, sourceID, cfg, func(id string) bool { return id == targetAcctID })
}

// ExtractMatching is Extract for every account whose id matches pattern.
func ExtractMatching(root *Node, sourceID string, pattern *regexp.Regexp, cfg Config) ([]Entry, error) {
	return extract(root, sourceID, cfg, pattern.MatchString)
}

func extract(root *Node, sourceID string, cfg Config, match func(string) bool) ([]Entry, error) {
	entries := make([]Entry, 0)
	for _, group := range FindStatementTransactions(root) {
		if !match(group.AccountID) {
			glog.V(2).Infof("%s: skipping account %s", sourceID, group.AccountID)
			continue
		}
		var err error
		if entries, err = extractGroup(entries, group, sourceID, cfg); err != nil {
			return nil, fmt.Errorf("%s: account %s: %w", sourceID, group.AccountID, err)
		}
	}
	return entries, nil
}

func extractGroup(entries []Entry, group AccountTransactionGroup, sourceID string, cfg Config) ([]Entry, error) {
	currency := group.Currency(cfg.DefaultCurrency)
	var last *Transaction
	for _, record := range group.Transactions {
		txn, err := BuildTransactionWith(record, cfg.Flag, cfg.Account, currency, cfg.Build)
		if err != nil {
			return nil, err
		}
		txn.Meta = Meta{Source: sourceID, ID: record.ID(), Line: len(entries)}
		entries = append(entries, txn)
		last = txn
	}

	if cfg.BalanceType == BalanceNone {
		return entries, nil
	}
	balance, err := group.LedgerBalance()
	if err != nil {
		return nil, err
	}
	if balance == nil {
		glog.V(1).Infof("%s: account %s has no ledger balance", sourceID, group.AccountID)
		return entries, nil
	}
	date := balance.Date
	if cfg.BalanceType == BalanceLast && last != nil {
		date = last.Date
	}
	// A balance assertion holds at the start of its date, so it goes on the following day.
	entries = append(entries, &BalanceAssertion{
		Meta:    Meta{Source: sourceID, Line: len(entries)},
		Date:    date.AddDays(1),
		Account: cfg.Account,
		Amount:  Amount{Number: balance.Amount, Currency: currency},
	})
	return entries, nil
}
