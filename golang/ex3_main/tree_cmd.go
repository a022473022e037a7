package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yed1dya/machine-learning-ex3/golang/dataset"
	"github.com/yed1dya/machine-learning-ex3/golang/dtree"
)

type namedTree struct {
	name  string
	root  *dtree.TreeNode
	error int
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Build the best three-split trees and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, log, err := commandConfig(cmd, rootConfig)
			if err != nil {
				return err
			}
			defer log.Sync()

			trees, err := loadAndBuild(config, log)
			if err != nil {
				return err
			}
			return printTrees(cmd.OutOrStdout(), trees)
		},
	}
	addTreeFlags(cmd)
	return cmd
}

func addTreeFlags(cmd *cobra.Command) {
	cmd.Flags().String("strategy", "", "tree building strategy: exhaustive, greedy or both")
	cmd.Flags().Int("threads", 0, "number of threads for the exhaustive search")
}

func loadAndBuild(config *Config, log *zap.SugaredLogger) ([]namedTree, error) {
	d, err := config.Data.Load(log)
	if err != nil {
		return nil, err
	}
	return buildTrees(config.Tree, d, log)
}

func buildTrees(config TreeConfig, d *dataset.Dataset, log *zap.SugaredLogger) ([]namedTree, error) {
	var exhaustive, greedy bool
	switch config.Strategy {
	case "exhaustive":
		exhaustive = true
	case "greedy":
		greedy = true
	case "both":
		exhaustive, greedy = true, true
	default:
		return nil, errors.Errorf("unknown tree strategy %q", config.Strategy)
	}

	var trees []namedTree
	if exhaustive {
		result, err := dtree.BuildExhaustive(dtree.ExhaustiveParams{
			Points:     d.Points,
			Candidates: d.Candidates(),
			ThreadsNum: config.Threads,
			LogEvery:   config.LogEvery,
			Logger:     log.With("strategy", "exhaustive"),
		})
		if err != nil {
			return nil, errors.Wrap(err, "exhaustive search")
		}
		log.Infof("best tree with error = %d found with %v at try %d / %d, root split %s", result.Error, result.Triple, result.Rank, result.Total, result.Root.Candidate())
		trees = append(trees, namedTree{"exhaustive", result.Root, result.Error})
	}
	if greedy {
		result, err := dtree.BuildGreedy(dtree.GreedyParams{
			Points:     d.Points,
			Candidates: d.Candidates(),
			Logger:     log.With("strategy", "greedy"),
		})
		if err != nil {
			return nil, errors.Wrap(err, "greedy search")
		}
		trees = append(trees, namedTree{"greedy", result.Root, result.Error})
	}
	return trees, nil
}

func printTrees(w io.Writer, trees []namedTree) error {
	for _, tree := range trees {
		if _, err := fmt.Fprintf(w, "%s tree, error = %d\n", tree.name, tree.error); err != nil {
			return err
		}
		if err := dtree.Draw(w, tree.root); err != nil {
			return err
		}
	}
	return nil
}
