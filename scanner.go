package ofximport

import (
	"iter"
	"regexp"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/golang/glog"
	"github.com/shopspring/decimal"
)

// acctIDPattern matches a numeric account id following an ACCTID tag. The id is bounded by
// whitespace, the next tag or the end of the text, so "<ACCTID>1234<DOWNLOAD.FLAG>" yields 1234.
var acctIDPattern = regexp.MustCompile(`(?i)<ACCTID>\s*([0-9][0-9-]*)(?:\s|<|$)`)

// AccountTransactionGroup holds the transactions of one statement response block.
type AccountTransactionGroup struct {
	AccountID    string
	Statement    *Node
	Transactions []TransactionRecord
}

// Balance is a balance reported by the institution at the end of a statement.
type Balance struct {
	Amount decimal.Decimal
	Date   civil.Date
}

// FindAcctIDs returns the distinct account ids found in the raw document text, in document order.
//
// Unlike every other lookup this works on the text instead of the tag tree. Institutions place
// ACCTID in different aggregates, and some documents are damaged enough that the tree can not
// scope it reliably, while the tag itself is always recognizable.
func FindAcctIDs(raw string) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		rest := raw
		for {
			loc := acctIDPattern.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			id := rest[loc[2]:loc[3]]
			rest = rest[loc[3]:]
			if _, found := seen[id]; found {
				continue
			}
			seen[id] = struct{}{}
			if !yield(id) {
				return
			}
		}
	}
}

// FindDate returns the as-of date of the first ledger balance in the document, or nil if the
// document has none.
func FindDate(root *Node) (*civil.Date, error) {
	ledgerBal := Find(root, tagLedgerBal)
	if ledgerBal == nil {
		return nil, nil
	}
	date, found, err := AsDate(ledgerBal, tagDtAsOf)
	if err != nil || !found {
		return nil, err
	}
	return &date, nil
}

// FindMaxDate returns the latest as-of date over all ledger balances in the document, or nil if
// the document has none.
func FindMaxDate(root *Node) (*civil.Date, error) {
	var latest *civil.Date
	for _, ledgerBal := range FindAll(root, tagLedgerBal) {
		date, found, err := AsDate(ledgerBal, tagDtAsOf)
		if err != nil {
			return nil, err
		}
		if found && (latest == nil || date.After(*latest)) {
			d := date
			latest = &d
		}
	}
	return latest, nil
}

// FindCurrency returns the default currency of the first statement response block declaring
// one. If no block does, any CURDEF in the document is used, then defaultCurrency.
func FindCurrency(root *Node, defaultCurrency string) string {
	for _, stmt := range findStatementResponses(root) {
		if c := strings.TrimSpace(textOf(findScoped(stmt, tagCurDef))); c != "" {
			return c
		}
	}
	if c := AsText(root, tagCurDef); c != "" {
		return c
	}
	return defaultCurrency
}

// FindStatementTransactions returns one group per bank or credit card statement response
// block, in document order.
func FindStatementTransactions(root *Node) []AccountTransactionGroup {
	stmts := findStatementResponses(root)
	groups := make([]AccountTransactionGroup, 0, len(stmts))
	for _, stmt := range stmts {
		group := AccountTransactionGroup{
			AccountID: strings.TrimSpace(textOf(findScoped(stmt, tagAcctID))),
			Statement: stmt,
		}
		scope := stmt
		if tranList := findScoped(stmt, tagBankTranList); tranList != nil {
			scope = tranList
		}
		for _, n := range findAllScoped(scope, tagStmtTrn) {
			group.Transactions = append(group.Transactions, TransactionRecord{Node: n})
		}
		glog.V(2).Infof("statement %s account %s: %d transactions", stmt.Name, group.AccountID, len(group.Transactions))
		groups = append(groups, group)
	}
	return groups
}

// Currency returns the default currency declared by the group's statement block, or
// defaultCurrency.
func (g AccountTransactionGroup) Currency(defaultCurrency string) string {
	if c := strings.TrimSpace(textOf(findScoped(g.Statement, tagCurDef))); c != "" {
		return c
	}
	return defaultCurrency
}

// LedgerBalance returns the ledger balance of the group's statement block, or nil if the block
// has none or it lacks an amount or as-of date.
func (g AccountTransactionGroup) LedgerBalance() (*Balance, error) {
	ledgerBal := findScoped(g.Statement, tagLedgerBal)
	if ledgerBal == nil {
		return nil, nil
	}
	amount, found, err := AsDecimal(ledgerBal, tagBalAmt)
	if err != nil || !found {
		return nil, err
	}
	date, found, err := AsDate(ledgerBal, tagDtAsOf)
	if err != nil || !found {
		return nil, err
	}
	return &Balance{Amount: amount, Date: date}, nil
}

// findStatementResponses returns every statement response block in document order, including
// blocks left nested inside another by a missing end tag.
func findStatementResponses(root *Node) []*Node {
	var result []*Node
	root.Walk(func(n *Node) bool {
		if IsStatementResponse(n.Name) {
			result = append(result, n)
		}
		return true
	})
	return result
}

// findScoped is Find restricted to node's own statement block.
func findScoped(node *Node, name string) *Node {
	all := findAllScopedN(node, name, 1)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// findAllScoped is FindAll restricted to node's own statement block.
func findAllScoped(node *Node, name string) []*Node {
	return findAllScopedN(node, name, -1)
}

// findAllScopedN collects up to limit descendants named name, without descending into nested
// statement response blocks. A negative limit collects all of them.
func findAllScopedN(node *Node, name string, limit int) []*Node {
	var (
		result []*Node
		visit  func(*Node) bool
	)
	visit = func(n *Node) bool {
		for _, c := range n.Children {
			if IsStatementResponse(c.Name) {
				continue
			}
			if c.Name == name {
				result = append(result, c)
				if len(result) == limit {
					return false
				}
			}
			if !visit(c) {
				return false
			}
		}
		return true
	}
	if node != nil {
		visit(node)
	}
	return result
}

func textOf(n *Node) string {
	if n == nil {
		return ""
	}
	return n.Text
}
