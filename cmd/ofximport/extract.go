package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/rockstardevs/ofximport"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Extract ledger entries from statements",
	Long: `Extracts the entries of every given statement. Each file is matched against
the configured importers; files that fail are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("format", "f", "text", "output format, text or csv")
	_ = viper.BindPFlag("format", extractCmd.Flags().Lookup("format"))
}

// fileResult holds the outcome of one file.
type fileResult struct {
	path    string
	entries []ofximport.Entry
	err     error
}

func runExtract(cmd *cobra.Command, args []string) error {
	importers, err := loadImporters()
	if err != nil {
		return err
	}
	results := extractFiles(cmd.Context(), importers, args, viper.GetInt("workers"))

	var entries []ofximport.Entry
	failed := 0
	for _, r := range results {
		if r.err != nil {
			glog.Errorf("%s: %v", r.path, r.err)
			failed++
			continue
		}
		entries = append(entries, r.entries...)
	}
	ofximport.SortEntries(entries)

	out := cmd.OutOrStdout()
	switch format := viper.GetString("format"); format {
	case "csv":
		err = writeCSV(out, entries)
	case "text", "":
		err = writeText(out, entries)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// extractFiles extracts every file with up to workers files in flight. A failing file does not
// stop the others; results keep the order of paths.
func extractFiles(ctx context.Context, importers []*ofximport.Importer, paths []string, workers int) []fileResult {
	if ctx == nil {
		ctx = context.Background()
	}
	if workers < 1 {
		workers = 1
	}
	results := make([]fileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for n, path := range paths {
		g.Go(func() error {
			entries, err := extractFile(ctx, importers, path)
			results[n] = fileResult{path: path, entries: entries, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// extractFile runs every importer that identifies the file.
func extractFile(ctx context.Context, importers []*ofximport.Importer, path string) ([]ofximport.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := ofximport.ReadDocument(f)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source := filepath.Base(path)
	var entries []ofximport.Entry
	matched := false
	for _, imp := range importers {
		if !imp.Identify(doc) {
			continue
		}
		matched = true
		e, err := imp.ExtractDocument(doc, source)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e...)
	}
	if !matched {
		glog.Warningf("%s: no importer matches any account of the file", path)
	}
	return entries, nil
}
