package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_Builder(t *testing.T) {
	n := NewNode("n1").
		WithContent("cats are mammals").
		WithMetadata("source", "test")

	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, "cats are mammals", n.Content)
	assert.Equal(t, "test", n.Metadata["source"])
	assert.NotNil(t, n.ConnectionWeights)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestNode_ConnectDisconnect(t *testing.T) {
	n := NewNode("a")
	n.Connect("b", 0.8)
	n.Connect("c", 0.5)
	n.Connect("b", 0.9) // update weight, keep position

	assert.Equal(t, []string{"b", "c"}, n.Connections)
	assert.Equal(t, 0.9, n.ConnectionWeights["b"])

	n.Disconnect("b")
	assert.Equal(t, []string{"c"}, n.Connections)
	_, ok := n.Connected("b")
	assert.False(t, ok)

	// Disconnecting an unknown neighbor is a no-op.
	n.Disconnect("missing")
	assert.Equal(t, []string{"c"}, n.Connections)
}

func TestNode_Connect_IgnoresSelf(t *testing.T) {
	n := NewNode("a")
	n.Connect("a", 0.5)
	assert.Empty(t, n.Connections)
}

func TestNode_Validate(t *testing.T) {
	require.Error(t, NewNode("").Validate())
	require.NoError(t, NewNode("a").Validate())

	broken := NewNode("a")
	broken.Connections = []string{"b"}
	assert.ErrorIs(t, broken.Validate(), ErrInvalidNode)

	self := NewNode("a")
	self.Connections = []string{"a"}
	self.ConnectionWeights = map[string]float64{"a": 1}
	assert.ErrorIs(t, self.Validate(), ErrInvalidNode)
}

func TestNode_Clone(t *testing.T) {
	n := NewNode("a").WithContent("text").WithMetadata("k", "v")
	n.Connect("b", 0.7)

	clone := n.Clone()
	clone.Content = "changed"
	clone.Metadata["k"] = "changed"
	clone.Connect("c", 0.1)

	assert.Equal(t, "text", n.Content)
	assert.Equal(t, "v", n.Metadata["k"])
	assert.Equal(t, []string{"b"}, n.Connections)
}

func TestEdge_Validate(t *testing.T) {
	assert.NoError(t, NewEdge("a", "b", 0.5).Validate())
	assert.ErrorIs(t, NewEdge("", "b", 0.5).Validate(), ErrInvalidEdge)
	assert.ErrorIs(t, NewEdge("a", "", 0.5).Validate(), ErrInvalidEdge)
	assert.ErrorIs(t, NewEdge("a", "a", 0.5).Validate(), ErrInvalidEdge)
	assert.ErrorIs(t, NewEdge("a", "b", -0.01).Validate(), ErrInvalidEdge)
	assert.ErrorIs(t, NewEdge("a", "b", 1.01).Validate(), ErrInvalidEdge)
}

func TestEdgeID(t *testing.T) {
	assert.Equal(t, "a->b", EdgeID("a", "b"))
	assert.Equal(t, "a->b", NewEdge("a", "b", 1).ID())
}
