package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphmind-ai/sdk/graph"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()

	s := graph.NewStore(nil)
	require.NoError(t, s.AddNode("ns", graph.NewNode("cats").
		WithContent("cats are mammals").WithMetadata("lang", "en")))
	require.NoError(t, s.AddNode("ns", graph.NewNode("dogs").
		WithContent("dogs are mammals")))
	require.NoError(t, s.AddNode("ns", graph.NewNode("stocks").
		WithContent("stock market rallied")))
	require.NoError(t, s.AddEdge("ns", "cats", "dogs", 0.8))
	require.NoError(t, s.AddEdge("ns", "dogs", "cats", 0.8))

	g, err := s.Snapshot("ns")
	require.NoError(t, err)
	return g
}

func TestJSON_RoundTrip(t *testing.T) {
	g := sampleGraph(t)

	data, err := Export(g, FormatJSON)
	require.NoError(t, err)

	got, err := Import(data, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, g.NodeCount(), got.NodeCount())
	assert.Equal(t, g.EdgeCount(), got.EdgeCount())
	assert.Equal(t, "cats are mammals", got.Nodes["cats"].Content)
	assert.Equal(t, "en", got.Nodes["cats"].Metadata["lang"])
	assert.Equal(t, []string{"dogs"}, got.Nodes["cats"].Connections)
	assert.Equal(t, 0.8, got.Edges[graph.EdgeID("cats", "dogs")].Weight)
	assert.NoError(t, got.Validate())
}

func TestCSV_RoundTripsEdgesOnly(t *testing.T) {
	g := sampleGraph(t)

	data, err := Export(g, FormatCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "from,to,weight\n"))

	got, err := Import(data, FormatCSV)
	require.NoError(t, err)

	// Edges round-trip; the unconnected node and all content/metadata do not.
	assert.Equal(t, 2, got.EdgeCount())
	assert.Equal(t, 2, got.NodeCount())
	assert.Equal(t, 0.8, got.Edges[graph.EdgeID("cats", "dogs")].Weight)
	assert.Empty(t, got.Nodes["cats"].Content)
	assert.NoError(t, got.Validate())
}

func TestCSV_RequiresHeader(t *testing.T) {
	// A first record is data, never a header substitute.
	_, err := Import([]byte("a,b,0.5\n"), FormatCSV)
	assert.ErrorIs(t, err, ErrSerialization)

	_, err = Import(nil, FormatCSV)
	assert.ErrorIs(t, err, ErrSerialization)

	_, err = Import([]byte("source,target,w\na,b,0.5\n"), FormatCSV)
	assert.ErrorIs(t, err, ErrSerialization)
}

func TestCSV_EdgeNamedLikeHeader(t *testing.T) {
	// Nodes literally named "from" and "to" must survive the round trip.
	got, err := Import([]byte("from,to,weight\nfrom,to,0.5\n"), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, 1, got.EdgeCount())
	require.Contains(t, got.Edges, graph.EdgeID("from", "to"))
	assert.Equal(t, 0.5, got.Edges[graph.EdgeID("from", "to")].Weight)
}

func TestGraphML_RoundTrip(t *testing.T) {
	g := sampleGraph(t)

	data, err := Export(g, FormatGraphML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "graphml")

	got, err := Import(data, FormatGraphML)
	require.NoError(t, err)

	// Node identity and edge weights survive; content does not.
	assert.Equal(t, 3, got.NodeCount())
	assert.Equal(t, 2, got.EdgeCount())
	assert.Equal(t, 0.8, got.Edges[graph.EdgeID("dogs", "cats")].Weight)
	assert.NoError(t, got.Validate())
}

func TestExport_DOT(t *testing.T) {
	data, err := Export(sampleGraph(t), FormatDOT)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "digraph G {"))
	assert.Contains(t, out, `"cats" [label="cats are mammals"];`)
	assert.Contains(t, out, `"cats" -> "dogs" [weight=0.8];`)
}

func TestExport_GEXF(t *testing.T) {
	data, err := Export(sampleGraph(t), FormatGEXF)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "gexf")
	assert.Contains(t, out, `source="cats"`)
	assert.Contains(t, out, `weight="0.8"`)
}

func TestImport_MalformedPayloads(t *testing.T) {
	_, err := Import([]byte("{not json"), FormatJSON)
	assert.ErrorIs(t, err, ErrSerialization)

	_, err = Import([]byte("from,to,weight\na,b,notafloat\n"), FormatCSV)
	assert.ErrorIs(t, err, ErrSerialization)

	_, err = Import([]byte("<graphml"), FormatGraphML)
	assert.ErrorIs(t, err, ErrSerialization)
}

func TestImport_ExportOnlyFormats(t *testing.T) {
	_, err := Import([]byte("digraph G {}"), FormatDOT)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Import(nil, FormatGEXF)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExport_NilGraph(t *testing.T) {
	data, err := Export(nil, FormatJSON)
	require.NoError(t, err)

	got, err := Import(data, FormatJSON)
	require.NoError(t, err)
	assert.Zero(t, got.NodeCount())
}
