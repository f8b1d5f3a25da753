package ofximport

import (
	"strings"

	"github.com/golang/glog"
)

// TransactionType is a transaction type as per the OFX Spec 2.2 Section 11.4.4.3
// https://www.ofx.net/downloads/OFX%202.2.pdf
type TransactionType string

//revive:disable:exported

const (
	// Common Transaction Types
	DEBIT  TransactionType = "DEBIT"
	CREDIT TransactionType = "CREDIT"
	// Uncommon Transaction Types
	INTEREST      TransactionType = "INT"
	DIVIDEND      TransactionType = "DIV"
	FEE           TransactionType = "FEE"
	SERVICECHARGE TransactionType = "SRVCHG"
	DEPOSIT       TransactionType = "DEP"
	ATM           TransactionType = "ATM"
	POS           TransactionType = "POS"
	TRANSFER      TransactionType = "XFER"
	CHECK         TransactionType = "CHECK"
	PAYMENT       TransactionType = "PAYMENT"
	CASH          TransactionType = "CASH"
	DIRECTDEPOSIT TransactionType = "DIRECTDEP"
	DIRECTDEBIT   TransactionType = "DIRECTDEBIT"
	REPEATPAYMENT TransactionType = "REPEATPMT"
	OTHER         TransactionType = "OTHER"
)

//revive:enable:exported

// DefaultSeparator joins the name and memo of a transaction into its narration.
const DefaultSeparator = " / "

// TransactionRecord is a view over a single STMTTRN aggregate.
type TransactionRecord struct {
	Node *Node
}

// Type returns the upper-cased transaction type.
func (r TransactionRecord) Type() TransactionType {
	return TransactionType(strings.ToUpper(AsText(r.Node, tagTrnType)))
}

// Posted returns the raw posted date time.
func (r TransactionRecord) Posted() string { return AsText(r.Node, tagDtPosted) }

// Amount returns the raw amount.
func (r TransactionRecord) Amount() string { return AsText(r.Node, tagTrnAmt) }

// FitID returns the institution's unique id of the transaction.
func (r TransactionRecord) FitID() string { return AsText(r.Node, tagFitID) }

// RefNum returns the reference number of the transaction.
func (r TransactionRecord) RefNum() string { return AsText(r.Node, tagRefNum) }

// Name returns the payee name.
func (r TransactionRecord) Name() string { return AsText(r.Node, tagName) }

// Memo returns the transaction memo.
func (r TransactionRecord) Memo() string { return AsText(r.Node, tagMemo) }

// ID returns the fit id of the transaction, falling back to its reference number.
func (r TransactionRecord) ID() string {
	if id := r.FitID(); id != "" {
		return id
	}
	return r.RefNum()
}

// BuildOptions controls how transactions are built.
type BuildOptions struct {
	// Separator joins narration parts, DefaultSeparator if empty.
	Separator string
	// IncludeType appends the transaction type to the narration unless it is DEBIT or CREDIT.
	IncludeType bool
}

// BuildTransaction builds a single posting transaction against account from the given record.
func BuildTransaction(r TransactionRecord, flag rune, account, currency string) (*Transaction, error) {
	return BuildTransactionWith(r, flag, account, currency, BuildOptions{})
}

// BuildTransactionWith is BuildTransaction with explicit options.
// DTPOSTED and TRNAMT are mandatory, every other field may be absent.
func BuildTransactionWith(r TransactionRecord, flag rune, account, currency string, opts BuildOptions) (*Transaction, error) {
	date, found, err := AsDate(r.Node, tagDtPosted)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &MissingFieldError{Field: "DTPOSTED"}
	}
	number, found, err := AsDecimal(r.Node, tagTrnAmt)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &MissingFieldError{Field: "TRNAMT"}
	}

	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	name, memo := r.Name(), r.Memo()
	// Some institutions repeat the name in the memo.
	if memo == name {
		memo = ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{name, memo} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if opts.IncludeType {
		if t := r.Type(); t != "" && t != DEBIT && t != CREDIT {
			parts = append(parts, string(t))
		}
	}

	txn := &Transaction{
		Date:      date,
		Flag:      flag,
		Narration: strings.Join(parts, sep),
		Postings: []Posting{
			{Account: account, Units: Amount{Number: number, Currency: currency}},
		},
	}
	glog.V(3).Infof("built transaction %s %q %s", txn.Date, txn.Narration, txn.Postings[0].Units)
	return txn, nil
}
