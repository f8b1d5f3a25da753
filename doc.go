/*
Package ofximport converts OFX/QFX bank and credit card statements into ledger entries.

OFX 1.x documents are SGML, not XML: closing tags are routinely omitted, tag case varies between
institutions and statements may carry several accounts. ofximport parses such documents into a
tolerant tag tree, locates statement blocks, account ids, currencies and balances inside it, and
builds one Transaction per statement transaction plus a trailing BalanceAssertion per account.

*/
package ofximport
