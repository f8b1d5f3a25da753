package main

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/rockstardevs/ofximport"
)

// importerConfig maps statements of matching account ids to a ledger account.
type importerConfig struct {
	AcctID      string `mapstructure:"acctid"`
	Account     string `mapstructure:"account"`
	Currency    string `mapstructure:"currency"`
	Flag        string `mapstructure:"flag"`
	Balance     string `mapstructure:"balance"`
	IncludeType bool   `mapstructure:"include_type"`
	Separator   string `mapstructure:"separator"`
}

// loadImporters builds the importers listed in the config.
func loadImporters() ([]*ofximport.Importer, error) {
	var configs []importerConfig
	if err := viper.UnmarshalKey("importers", &configs); err != nil {
		return nil, fmt.Errorf("reading importers: %w", err)
	}
	if len(configs) == 0 {
		return nil, errors.New("no importers configured")
	}
	importers := make([]*ofximport.Importer, 0, len(configs))
	for n, c := range configs {
		imp, err := c.importer()
		if err != nil {
			return nil, fmt.Errorf("importer %d: %w", n, err)
		}
		importers = append(importers, imp)
	}
	return importers, nil
}

func (c importerConfig) importer() (*ofximport.Importer, error) {
	imp, err := ofximport.NewImporter(c.AcctID, c.Account, c.Currency)
	if err != nil {
		return nil, err
	}
	if c.Flag != "" {
		if utf8.RuneCountInString(c.Flag) != 1 {
			return nil, fmt.Errorf("flag %q must be a single character", c.Flag)
		}
		imp.Flag, _ = utf8.DecodeRuneInString(c.Flag)
	}
	if imp.BalanceType, err = ofximport.ParseBalanceType(c.Balance); err != nil {
		return nil, err
	}
	imp.Build = ofximport.BuildOptions{Separator: c.Separator, IncludeType: c.IncludeType}
	return imp, nil
}
