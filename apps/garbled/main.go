//
// main.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Command garbled evaluates boolean circuits in plaintext and with
// Yao's garbled circuits, and runs the two-party protocol locally.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/group"
	"github.com/markkurossi/yao/oracle"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "YAO"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "garbled",
	Short: "Yao garbled circuit evaluator",
	Long: `Garbled evaluates boolean circuits in plaintext and with Yao's
garbled circuits. It can garble circuits into files, evaluate garbled
files, and run the two-party protocol with oblivious transfer.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "garbled: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (YAML, JSON, or TOML)")
	flags.CountP("verbose", "v", "verbose output (repeat for more)")
	flags.String("group", group.Secp256k1.Name(),
		fmt.Sprintf("OT group: %s", strings.Join(group.Names(), ", ")))
	flags.String("oracle", oracle.SHA256.Name(),
		fmt.Sprintf("OT random oracle: %s",
			strings.Join(oracle.Names(), ", ")))
	flags.Int("workers", 0, "number of worker goroutines (0=#CPUs)")
	flags.Bool("point-and-permute", false,
		"order garbled rows by the label color bits")

	for _, name := range []string{
		"verbose", "group", "oracle", "workers", "point-and-permute",
	} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %q: %v", name, err))
		}
	}
}

// initConfig reads in the config file and the environment variables.
func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "garbled: config file %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}

func newLogger() logr.Logger {
	stdr.SetVerbosity(viper.GetInt("verbose"))
	return stdr.New(nil).WithName("garbled")
}

// newConfig creates the protocol configuration from the flags, the
// environment, and the config file.
func newConfig() (*env.Config, error) {
	g, err := group.ByName(viper.GetString("group"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid group")
	}
	o, err := oracle.ByName(viper.GetString("oracle"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid oracle")
	}
	workers := viper.GetInt("workers")
	if workers < 0 {
		return nil, errors.Errorf("invalid workers: %d", workers)
	}
	return &env.Config{
		Group:   g,
		Oracle:  o,
		Logger:  newLogger(),
		Workers: workers,
	}, nil
}
