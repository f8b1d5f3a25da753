package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultConfigYAML is used when no config file is found.
const defaultConfigYAML = `
workers: 4
format: text
importers: []
`

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "ofximport",
		Short: "Convert OFX/QFX statements into ledger entries",
		Long: `ofximport reads OFX/QFX bank and credit card statements and prints one
transaction per statement transaction plus a balance assertion per account.
Accounts are mapped to ledger accounts by the importers of the config file.`,
		SilenceUsage: true,
	}
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.ofximport.yaml)")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "number of files processed concurrently")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
}

func initConfig() {
	// glog reads its settings from the go flag set, which cobra has already filled in.
	_ = flag.CommandLine.Parse(nil)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".ofximport")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ofximport")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			cobra.CheckErr(fmt.Errorf("reading config file: %w", err))
		}
		glog.V(1).Info("no config file found, using defaults")
		viper.SetConfigType("yaml")
		cobra.CheckErr(viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)))
	}
	glog.V(2).Infof("using config %s", viper.ConfigFileUsed())
}
