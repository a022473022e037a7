package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

type rootCmdConfig struct {
	configFile string
	verbose    bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ex3",
		Short:         "ex3 builds fixed-shape decision trees and evaluates k-NN errors",
		Long:          `A tool to build three-split decision trees over two-feature labelled points by exhaustive and greedy search, render them, and estimate k-nearest-neighbour errors.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML config file (defaults to ex3_config.yaml in $EX3_CFG_PATH or the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log at DEBUG level")
	rootCmd.PersistentFlags().String("data", "", "path to the data source")
	rootCmd.PersistentFlags().String("format", "", "data source format: text, npy or sqlite")
	rootCmd.PersistentFlags().String("log-level", "", "log level: DEBUG, INFO, WARN or ERROR")
	rootCmd.AddCommand(versionCmd(), treeCmd(config), graphCmd(config), knnCmd(config))
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ex3",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ex3 v%s\n", version)
		},
	}
}
