package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yed1dya/machine-learning-ex3/golang/dtree"
)

func graphCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Build the trees and render them with graphviz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, log, err := commandConfig(cmd, rootConfig)
			if err != nil {
				return err
			}
			defer log.Sync()

			if _, err = dtree.GraphvizFormat(config.Graph.Format); err != nil {
				return err
			}
			trees, err := loadAndBuild(config, log)
			if err != nil {
				return err
			}
			for _, tree := range trees {
				filename := fmt.Sprintf("%s_%s.%s", config.Graph.Output, tree.name, config.Graph.Format)
				if err = dtree.RenderTree(tree.root, config.Graph.Format, filename); err != nil {
					return err
				}
				log.Infof("%s tree rendered to %s", tree.name, filename)
				fmt.Fprintln(cmd.OutOrStdout(), filename)
			}
			return nil
		},
	}
	addTreeFlags(cmd)
	cmd.Flags().String("figure", "", "figure type: png, svg, jpg or dot")
	cmd.Flags().String("output", "", "output file prefix")
	return cmd
}
