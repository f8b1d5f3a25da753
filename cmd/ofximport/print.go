package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/rockstardevs/ofximport"
)

// accountWidth is the width of the account column of postings.
const accountWidth = 40

// writeText writes entries in beancount syntax.
func writeText(w io.Writer, entries []ofximport.Entry) error {
	for _, e := range entries {
		var err error
		switch e := e.(type) {
		case *ofximport.Transaction:
			_, err = fmt.Fprintf(w, "%s %c %s\n", e.Date, e.Flag, strconv.Quote(e.Narration))
			if err == nil && e.Meta.ID != "" {
				_, err = fmt.Fprintf(w, "  fitid: %s\n", strconv.Quote(e.Meta.ID))
			}
			for _, p := range e.Postings {
				if err != nil {
					break
				}
				_, err = fmt.Fprintf(w, "  %-*s  %s\n", accountWidth, p.Account, p.Units)
			}
		case *ofximport.BalanceAssertion:
			_, err = fmt.Fprintf(w, "%s balance %-*s  %s\n", e.Date, accountWidth, e.Account, e.Amount)
		}
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// csvRow is one entry in CSV output.
type csvRow struct {
	Date      string `csv:"date"`
	Kind      string `csv:"kind"`
	Flag      string `csv:"flag"`
	Account   string `csv:"account"`
	Narration string `csv:"narration"`
	Amount    string `csv:"amount"`
	Currency  string `csv:"currency"`
	Source    string `csv:"source"`
	ID        string `csv:"id"`
}

// writeCSV writes entries as CSV, one row per posting or balance assertion.
func writeCSV(w io.Writer, entries []ofximport.Entry) error {
	rows := make([]csvRow, 0, len(entries))
	for _, e := range entries {
		switch e := e.(type) {
		case *ofximport.Transaction:
			for _, p := range e.Postings {
				rows = append(rows, csvRow{
					Date:      e.Date.String(),
					Kind:      "transaction",
					Flag:      string(e.Flag),
					Account:   p.Account,
					Narration: e.Narration,
					Amount:    ofximport.FormatNumber(p.Units.Number),
					Currency:  p.Units.Currency,
					Source:    e.Meta.Source,
					ID:        e.Meta.ID,
				})
			}
		case *ofximport.BalanceAssertion:
			rows = append(rows, csvRow{
				Date:     e.Date.String(),
				Kind:     "balance",
				Account:  e.Account,
				Amount:   ofximport.FormatNumber(e.Amount.Number),
				Currency: e.Amount.Currency,
				Source:   e.Meta.Source,
			})
		}
	}
	return gocsv.Marshal(rows, w)
}
