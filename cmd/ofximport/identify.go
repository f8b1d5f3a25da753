package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/rockstardevs/ofximport"
)

var identifyCmd = &cobra.Command{
	Use:   "identify FILE...",
	Short: "Print the account ids, ledger account and date of statements",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	importers, err := loadImporters()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		doc, err := ofximport.ReadDocument(f)
		f.Close()
		if err != nil {
			return err
		}
		for id := range ofximport.FindAcctIDs(doc.Markup) {
			fmt.Fprintf(out, "%s\tacctid\t%s\n", path, id)
		}
		for _, imp := range importers {
			if !imp.Identify(doc) {
				continue
			}
			date, err := imp.FileDate(doc)
			if err != nil {
				glog.Warningf("%s: %v", path, err)
			}
			if date != nil {
				fmt.Fprintf(out, "%s\t%s\t%s\n", path, imp.FileAccount(), date)
			} else {
				fmt.Fprintf(out, "%s\t%s\n", path, imp.FileAccount())
			}
		}
	}
	return nil
}
