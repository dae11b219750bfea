// Package export serializes namespace graphs for backup, exchange, and
// visualization tooling.
//
// Three interchange formats are supported for export and import:
//
//   - JSON: full fidelity, round-trips nodes, metadata, and edges
//   - CSV: an edge list with a mandatory "from,to,weight" header; lossy,
//     drops node content and metadata
//   - GraphML: nodes and edges with a weight attribute only
//
// Two additional formats, DOT and GEXF, are export-only serializations for
// visualization tooling; this package never renders anything.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/graphmind-ai/sdk/graph"
)

// Format identifies a serialization format.
type Format string

// Supported formats.
const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatGraphML Format = "graphml"
	FormatDOT     Format = "dot"
	FormatGEXF    Format = "gexf"
)

// Errors returned by export and import operations.
var (
	// ErrSerialization indicates a malformed payload or a marshal failure.
	ErrSerialization = errors.New("export: serialization error")

	// ErrUnsupportedFormat indicates an unknown format, or an export-only
	// format passed to Import.
	ErrUnsupportedFormat = errors.New("export: unsupported format")
)

// ParseFormat parses a format string. Returns ErrUnsupportedFormat for
// unknown values.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV, FormatGraphML, FormatDOT, FormatGEXF:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Export serializes the graph in the given format.
func Export(g *graph.Graph, format Format) ([]byte, error) {
	if g == nil {
		g = graph.New()
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return data, nil
	case FormatCSV:
		return exportCSV(g)
	case FormatGraphML:
		return exportGraphML(g)
	case FormatDOT:
		return exportDOT(g), nil
	case FormatGEXF:
		return exportGEXF(g)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Import parses a payload in the given format into a Graph. The resulting
// graph is validated; malformed payloads return ErrSerialization.
//
// DOT and GEXF are export-only and return ErrUnsupportedFormat.
func Import(data []byte, format Format) (*graph.Graph, error) {
	var (
		g   *graph.Graph
		err error
	)
	switch format {
	case FormatJSON:
		g, err = importJSON(data)
	case FormatCSV:
		g, err = importCSV(data)
	case FormatGraphML:
		g, err = importGraphML(data)
	case FormatDOT, FormatGEXF:
		return nil, fmt.Errorf("%w: %q is export-only", ErrUnsupportedFormat, format)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return g, nil
}

func importJSON(data []byte) (*graph.Graph, error) {
	g := graph.New()
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if g.Nodes == nil {
		g.Nodes = make(map[string]*graph.Node)
	}
	if g.Edges == nil {
		g.Edges = make(map[string]*graph.Edge)
	}
	// Defensive re-keying: honor the map keys over embedded IDs.
	for id, n := range g.Nodes {
		if n == nil {
			return nil, fmt.Errorf("%w: nil node %q", ErrSerialization, id)
		}
		n.ID = id
		if n.ConnectionWeights == nil {
			n.ConnectionWeights = make(map[string]float64)
		}
		if n.Connections == nil {
			n.Connections = make([]string, 0)
		}
	}
	return g, nil
}

func exportCSV(g *graph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"from", "to", "weight"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	for _, e := range sortedEdges(g) {
		record := []string{e.From, e.To, strconv.FormatFloat(e.Weight, 'g', -1, 64)}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

// importCSV rebuilds a graph from an edge list. Node content and metadata
// are not representable in CSV; placeholder nodes are created for every
// endpoint so the resulting graph is structurally valid (documented lossy
// case).
//
// The "from,to,weight" header row is mandatory. Sniffing it instead would
// silently drop a first edge whose endpoints happen to be named "from" and
// "to".
func importCSV(data []byte) (*graph.Graph, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 3

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing from,to,weight header: %v", ErrSerialization, err)
	}
	if header[0] != "from" || header[1] != "to" || header[2] != "weight" {
		return nil, fmt.Errorf("%w: expected from,to,weight header, got %q", ErrSerialization, header)
	}

	g := graph.New()
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
		}

		weight, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad weight %q: %v", ErrSerialization, record[2], err)
		}
		from, to := record[0], record[1]
		if from == "" || to == "" {
			return nil, fmt.Errorf("%w: blank edge endpoint", ErrSerialization)
		}

		ensureNode(g, from)
		ensureNode(g, to)
		g.Edges[graph.EdgeID(from, to)] = graph.NewEdge(from, to, weight)
		g.Nodes[from].Connect(to, weight)
	}
	return g, nil
}

func ensureNode(g *graph.Graph, id string) {
	if _, ok := g.Nodes[id]; !ok {
		g.Nodes[id] = graph.NewNode(id)
	}
}
