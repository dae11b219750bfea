package export

import (
	"encoding/xml"
	"fmt"
	"sort"

	"github.com/graphmind-ai/sdk/graph"
)

// GraphML document structure. Only node identity and edge weight survive
// this format; node content and metadata are dropped.
type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	Xmlns   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID string `xml:"id,attr"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

const graphmlNamespace = "http://graphml.graphdrawing.org/xmlns"

func exportGraphML(g *graph.Graph) ([]byte, error) {
	doc := graphmlDoc{
		Xmlns: graphmlNamespace,
		Keys: []graphmlKey{
			{ID: "weight", For: "edge", AttrName: "weight", AttrType: "double"},
		},
		Graph: graphmlGraph{
			ID:          "G",
			EdgeDefault: "directed",
		},
	}

	for _, n := range sortedNodes(g) {
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{ID: n.ID})
	}
	for _, e := range sortedEdges(g) {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: e.From,
			Target: e.To,
			Data:   []graphmlData{{Key: "weight", Value: formatWeight(e.Weight)}},
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return append([]byte(xml.Header), data...), nil
}

func importGraphML(data []byte) (*graph.Graph, error) {
	var doc graphmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	g := graph.New()
	for _, n := range doc.Graph.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node without id", ErrSerialization)
		}
		ensureNode(g, n.ID)
	}
	for _, e := range doc.Graph.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("%w: edge without endpoints", ErrSerialization)
		}
		weight := 1.0
		for _, d := range e.Data {
			if d.Key == "weight" {
				w, err := parseWeight(d.Value)
				if err != nil {
					return nil, err
				}
				weight = w
			}
		}
		ensureNode(g, e.Source)
		ensureNode(g, e.Target)
		g.Edges[graph.EdgeID(e.Source, e.Target)] = graph.NewEdge(e.Source, e.Target, weight)
		g.Nodes[e.Source].Connect(e.Target, weight)
	}
	return g, nil
}

// sortedNodes returns the graph's nodes in deterministic ID order.
func sortedNodes(g *graph.Graph) []*graph.Node {
	nodes := make([]*graph.Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// sortedEdges returns the graph's edges in deterministic key order.
func sortedEdges(g *graph.Graph) []*graph.Edge {
	ids := make([]string, 0, len(g.Edges))
	for id := range g.Edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	edges := make([]*graph.Edge, 0, len(ids))
	for _, id := range ids {
		edges = append(edges, g.Edges[id])
	}
	return edges
}
