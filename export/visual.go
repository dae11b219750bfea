package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/graphmind-ai/sdk/graph"
)

// exportDOT serializes the graph in Graphviz DOT syntax. Export-only.
func exportDOT(g *graph.Graph) []byte {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	for _, n := range sortedNodes(g) {
		label := n.Content
		if label == "" {
			label = n.ID
		}
		fmt.Fprintf(&b, "  %s [label=%s];\n", strconv.Quote(n.ID), strconv.Quote(label))
	}
	for _, e := range sortedEdges(g) {
		fmt.Fprintf(&b, "  %s -> %s [weight=%s];\n",
			strconv.Quote(e.From), strconv.Quote(e.To), formatWeight(e.Weight))
	}
	b.WriteString("}\n")
	return []byte(b.String())
}

// GEXF document structure (https://gexf.net), export-only.
type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	Xmlns   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfGraph struct {
	DefaultEdgeType string     `xml:"defaultedgetype,attr"`
	Nodes           []gexfNode `xml:"nodes>node"`
	Edges           []gexfEdge `xml:"edges>edge"`
}

type gexfNode struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr"`
}

type gexfEdge struct {
	ID     string  `xml:"id,attr"`
	Source string  `xml:"source,attr"`
	Target string  `xml:"target,attr"`
	Weight float64 `xml:"weight,attr"`
}

func exportGEXF(g *graph.Graph) ([]byte, error) {
	doc := gexfDoc{
		Xmlns:   "http://gexf.net/1.3",
		Version: "1.3",
		Graph:   gexfGraph{DefaultEdgeType: "directed"},
	}
	for _, n := range sortedNodes(g) {
		label := n.Content
		if label == "" {
			label = n.ID
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, gexfNode{ID: n.ID, Label: label})
	}
	for _, e := range sortedEdges(g) {
		doc.Graph.Edges = append(doc.Graph.Edges, gexfEdge{
			ID:     e.ID(),
			Source: e.From,
			Target: e.To,
			Weight: e.Weight,
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(data)
	return buf.Bytes(), nil
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

func parseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad weight %q: %v", ErrSerialization, s, err)
	}
	return w, nil
}
