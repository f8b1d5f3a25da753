package ofximport

import (
	"strings"
	"sync"
)

// Tag names used to navigate statement documents.
const (
	tagAcctID       = "acctid"
	tagCurDef       = "curdef"
	tagBankTranList = "banktranlist"
	tagStmtTrn      = "stmttrn"
	tagLedgerBal    = "ledgerbal"
	tagBalAmt       = "balamt"
	tagDtAsOf       = "dtasof"
	tagTrnType      = "trntype"
	tagDtPosted     = "dtposted"
	tagTrnAmt       = "trnamt"
	tagFitID        = "fitid"
	tagRefNum       = "refnum"
	tagName         = "name"
	tagMemo         = "memo"
)

var aggregatesMap map[string]struct{}
var initAggregatesMap sync.Once

// GetAggregates returns the singleton set of known aggregate tags. Aggregates hold other
// elements and never text, which settles ambiguous markup such as text before an end tag
// whose start tag is missing.
func GetAggregates() map[string]struct{} {
	initAggregatesMap.Do(func() {
		var aggregates = []string{
			"ofx",
			"signonmsgsrsv1", "sonrs", "status", "fi",
			"bankmsgsrsv1", "stmttrnrs", "stmtrs", "bankacctfrom", "bankacctto",
			"creditcardmsgsrsv1", "ccstmttrnrs", "ccstmtrs", "ccacctfrom", "ccacctto",
			"banktranlist", "stmttrn", "payee", "ledgerbal", "availbal", "ballist", "bal",
		}
		aggregatesMap = make(map[string]struct{}, len(aggregates))
		for _, a := range aggregates {
			aggregatesMap[a] = struct{}{}
		}
	})
	return aggregatesMap
}

// IsAggregate returns true if the given tag is a known aggregate tag.
func IsAggregate(tag string) bool {
	_, found := GetAggregates()[strings.ToLower(tag)]
	return found
}

var elementsMap map[string]struct{}
var initElementsMap sync.Once

// GetElements returns the singleton set of known element tags. Elements hold a value and never
// other elements, so an element followed directly by a start tag is empty rather than an
// aggregate.
func GetElements() map[string]struct{} {
	initElementsMap.Do(func() {
		var elements = []string{
			"code", "severity", "message", "dtserver", "language", "org", "fid", "trnuid",
			"curdef", "bankid", "branchid", "acctid", "accttype", "acctkey",
			"dtstart", "dtend", "balamt", "dtasof",
			"trntype", "dtposted", "dtuser", "dtavail", "trnamt", "fitid", "correctfitid",
			"correctaction", "srvrtid", "checknum", "refnum", "sic", "payeeid", "name", "memo",
		}
		elementsMap = make(map[string]struct{}, len(elements))
		for _, e := range elements {
			elementsMap[e] = struct{}{}
		}
	})
	return elementsMap
}

// IsElement returns true if the given tag is a known element tag.
func IsElement(tag string) bool {
	_, found := GetElements()[strings.ToLower(tag)]
	return found
}

var statementResponsesMap map[string]struct{}
var initStatementResponsesMap sync.Once

// GetStatementResponses returns the singleton set of statement response aggregates, one per
// supported message set: STMTRS for banking and CCSTMTRS for credit cards.
func GetStatementResponses() map[string]struct{} {
	initStatementResponsesMap.Do(func() {
		var responses = []string{"stmtrs", "ccstmtrs"}
		statementResponsesMap = make(map[string]struct{}, len(responses))
		for _, r := range responses {
			statementResponsesMap[r] = struct{}{}
		}
	})
	return statementResponsesMap
}

// IsStatementResponse returns true if the given tag opens a statement response block.
func IsStatementResponse(tag string) bool {
	_, found := GetStatementResponses()[strings.ToLower(tag)]
	return found
}
