package dtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pkg/errors"
)

//Draw writes an indented rendering of the tree, four spaces per level, left subtree first.
func Draw(w io.Writer, root *TreeNode) error {
	return draw(w, root, 0)
}

func draw(w io.Writer, node *TreeNode, level int) error {
	if node == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("    ", level), node); err != nil {
		return err
	}
	if err := draw(w, node.Left, level+1); err != nil {
		return err
	}
	return draw(w, node.Right, level+1)
}

//GraphDescription returns the description of a node for tree rendering as a graph
func (node *TreeNode) GraphDescription() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln("#", len(node.Points)))
	if node.Leaf {
		sb.WriteString(fmt.Sprintln("label: ", node.Label))
		sb.WriteString(fmt.Sprint("error: ", node.Error))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintln("entropy: ", node.Entropy))
	sb.WriteString(fmt.Sprintf("f_%d <= %s", node.SplitFeature, formatThreshold(node.SplitThreshold)))
	return sb.String()
}

func recurrentDraw(g *cgraph.Graph, node *TreeNode, nodeNumber *int, parentNode *cgraph.Node) error {
	currentNode, err := g.CreateNode(fmt.Sprint(*nodeNumber))
	if err != nil {
		return err
	}
	*nodeNumber++

	if parentNode != nil {
		if _, err = g.CreateEdge("", parentNode, currentNode); err != nil {
			return err
		}
	}

	currentNode.Set("label", node.GraphDescription())
	if node.Leaf || node.Left == nil || node.Right == nil {
		currentNode.Set("shape", "box")
		return nil
	}
	if err = recurrentDraw(g, node.Left, nodeNumber, currentNode); err != nil {
		return err
	}
	return recurrentDraw(g, node.Right, nodeNumber, currentNode)
}

//DrawGraph builds a graphviz graph of the tree. The caller closes both returned values.
func DrawGraph(root *TreeNode) (*graphviz.Graphviz, *cgraph.Graph, error) {
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	if err != nil {
		return nil, nil, err
	}

	nodeNumber := 0
	if err = recurrentDraw(graph, root, &nodeNumber, nil); err != nil {
		graph.Close()
		graphViz.Close()
		return nil, nil, err
	}
	return graphViz, graph, nil
}

//GraphvizFormat maps a figure type name (png, svg, jpg, dot) to a graphviz format.
func GraphvizFormat(figureType string) (graphviz.Format, error) {
	format, ok := map[string]graphviz.Format{
		"png": graphviz.PNG,
		"svg": graphviz.SVG,
		"jpg": graphviz.JPG,
		"dot": graphviz.XDOT,
	}[figureType]
	if !ok {
		return "", errors.Errorf("unknown figure type %q", figureType)
	}
	return format, nil
}

//RenderTree renders the tree to filename in the given figure type.
func RenderTree(root *TreeNode, figureType, filename string) error {
	format, err := GraphvizFormat(figureType)
	if err != nil {
		return err
	}
	graphViz, graph, err := DrawGraph(root)
	if err != nil {
		return errors.Wrap(err, "drawing tree graph")
	}
	defer func() {
		graph.Close()
		graphViz.Close()
	}()
	return errors.Wrapf(graphViz.RenderFilename(graph, format, filename), "rendering %s", filename)
}
