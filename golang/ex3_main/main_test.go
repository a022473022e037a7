package main

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yed1dya/machine-learning-ex3/golang/dataset"
	"github.com/yed1dya/machine-learning-ex3/golang/dtree"
)

func runCli(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cliParser()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCli(t, "version")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ex3 v%s\n", version), out)
}

func TestTreeCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "iris.txt", irisSample)
	configFile := writeFile(t, dir, "ex3_config.yaml", "log:\n  console: false\n")

	out, err := runCli(t, "tree", "--config", configFile, "--data", data, "--threads", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "exhaustive tree, error = 0\n")
	assert.Contains(t, out, "greedy tree, error = 0\n")
	assert.Contains(t, out, "Node(split_feature=1, split_value=4.7, points=4)\n")
}

func TestTreeCommandUnknownStrategy(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "iris.txt", irisSample)
	configFile := writeFile(t, dir, "ex3_config.yaml", "log:\n  console: false\n")

	_, err := runCli(t, "tree", "--config", configFile, "--data", data, "--strategy", "random")
	assert.Error(t, err)
}

func TestBuildTreesStrategies(t *testing.T) {
	d := &dataset.Dataset{
		Points:  []dtree.Point{{X: 0, Y: 0, Label: 0}, {X: 0, Y: 2, Label: 1}, {X: 2, Y: 0, Label: 1}, {X: 2, Y: 2, Label: 0}},
		XValues: []float64{0, 2},
		YValues: []float64{0, 2},
	}
	log := zaptest.NewLogger(t).Sugar()

	trees, err := buildTrees(TreeConfig{Strategy: "both", Threads: 1}, d, log)
	require.NoError(t, err)
	require.Len(t, trees, 2)
	assert.Equal(t, "exhaustive", trees[0].name)
	assert.Equal(t, 1, trees[0].error)
	assert.Equal(t, "greedy", trees[1].name)
	assert.Equal(t, 2, trees[1].error)

	trees, err = buildTrees(TreeConfig{Strategy: "greedy"}, d, log)
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.Equal(t, "greedy", trees[0].name)
}

func TestKnnCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "iris.txt", irisSample)
	configFile := writeFile(t, dir, "ex3_config.yaml", `
log:
  console: false
knn:
  p: ["1", "inf"]
  k: [1, 3]
  runs: 3
`)
	out, err := runCli(t, "knn", "--config", configFile, "--data", data, "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "inf  3")
	assert.Contains(t, out, "min true error:")
}

func TestKnnNpyFlagDescribesAverageGrid(t *testing.T) {
	flag := knnCmd(&rootCmdConfig{}).Flags().Lookup("npy")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "average true errors")
}
