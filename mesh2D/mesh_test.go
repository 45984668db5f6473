package mesh2D

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomesh/types"
)

func TestMeshInsertion(t *testing.T) {
	m := NewMesh()
	assert.Equal(t, 2, m.Dim())
	// No deduplication of vertices in 2D
	assert.Equal(t, 0, m.AddVertex(0, 0))
	assert.Equal(t, 1, m.AddVertex(0, 0, 3))
	assert.Equal(t, 2, m.AddVertex(1, 0))
	assert.Equal(t, 3, m.NumVertices())
	assert.Equal(t, 3, m.Verts[1].Label)

	{ // Edges are canonical and deduplicated, label applied on first insert only
		e, err := m.AddEdge(2, 0, 7)
		require.NoError(t, err)
		assert.Equal(t, 0, e)
		assert.Equal(t, [2]int{0, 2}, m.Edges[0].Verts)
		e, err = m.AddEdge(0, 2, 9)
		require.NoError(t, err)
		assert.Equal(t, 0, e)
		assert.Equal(t, 7, m.Edges[0].Label)
		assert.Equal(t, 1, m.NumEdges())

		e, err = m.EdgeIndexOf(2, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, e)
		label, err := m.EdgeLabelOf(0, 2)
		require.NoError(t, err)
		assert.Equal(t, 7, label)

		_, err = m.EdgeIndexOf(0, 1)
		assert.True(t, errors.Is(err, types.ErrEdgeNotFound))
		_, err = m.EdgeIndexOf(-1, 1)
		assert.True(t, errors.Is(err, types.ErrEdgeNotFound))
		// Indices too large to pack into a key are simply absent
		assert.NotPanics(t, func() { _, err = m.EdgeIndexOf(0, 1<<33) })
		assert.True(t, errors.Is(err, types.ErrEdgeNotFound))
		_, err = m.EdgeIndexOf(3, 0)
		assert.True(t, errors.Is(err, types.ErrEdgeNotFound))
		_, err = m.AddEdge(0, 3)
		assert.True(t, errors.Is(err, types.ErrVertexOutOfRange))
	}
	{ // Elements are stored verbatim and registered with their vertices
		k, err := m.AddElement(2, 1, 0, 4)
		require.NoError(t, err)
		assert.Equal(t, 0, k)
		assert.Equal(t, [3]int{2, 1, 0}, m.Elems[0].Verts)
		for v := 0; v < 3; v++ {
			assert.True(t, m.Verts[v].Cofacets.Contains(0))
		}
		_, err = m.AddElement(0, 1, 5)
		assert.True(t, errors.Is(err, types.ErrVertexOutOfRange))
		assert.Equal(t, 1, m.NumElements())
	}
	{ // Labels
		require.NoError(t, m.SetLabel(types.Vertex, 2, 11))
		require.NoError(t, m.SetLabel(types.Edge, 0, 12))
		require.NoError(t, m.SetLabel(types.Element, 0, 13))
		for dim, want := range map[types.CellDim]int{types.Vertex: 11, types.Edge: 12, types.Element: 13} {
			id := 0
			if dim == types.Vertex {
				id = 2
			}
			got, err := m.LabelOf(dim, id)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		_, err := m.LabelOf(types.Edge, 4)
		assert.True(t, errors.Is(err, types.ErrCellOutOfRange))
		err = m.SetLabel(types.Element, -1, 1)
		assert.True(t, errors.Is(err, types.ErrCellOutOfRange))
		err = m.SetLabel(types.CellDim(5), 0, 1)
		assert.True(t, errors.Is(err, types.ErrBadCellDim))
	}
}

func TestValidate(t *testing.T) {
	m := NewMesh()
	m.AddVertex(0, 0)
	m.AddVertex(1, 0)
	m.AddVertex(0, 1)
	_, err := m.AddElement(0, 1, 2)
	require.NoError(t, err)
	err = m.Validate()
	assert.True(t, errors.Is(err, types.ErrEdgeNotFound))
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 0}} {
		_, err = m.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}
	assert.NoError(t, m.Validate())

	keys := m.ElementEdges(0)
	assert.Equal(t, types.NewEdgeKey([2]int{1, 2}), keys[0])
	assert.Equal(t, types.NewEdgeKey([2]int{2, 0}), keys[1])
	assert.Equal(t, types.NewEdgeKey([2]int{0, 1}), keys[2])
}

func TestGenerators(t *testing.T) {
	{
		m := TwoElemSquare()
		assert.Equal(t, 4, m.NumVertices())
		assert.Equal(t, 5, m.NumEdges())
		assert.Equal(t, 2, m.NumElements())
		assert.NoError(t, m.Validate())
		label, err := m.EdgeLabelOf(3, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, label)
	}
	{
		m := GoofySquare()
		assert.Equal(t, 13, m.NumVertices())
		assert.Equal(t, 25, m.NumEdges())
		assert.Equal(t, 13, m.NumElements())
		assert.NoError(t, m.Validate())
	}
	{
		nx, ny := 5, 3
		m, err := UniformRectangle(0, 1, nx, 0, 1, ny)
		require.NoError(t, err)
		assert.Equal(t, (nx+1)*(ny+1), m.NumVertices())
		assert.Equal(t, 2*nx*ny, m.NumElements())
		// Horizontal, vertical and one diagonal per cell
		assert.Equal(t, nx*(ny+1)+ny*(nx+1)+nx*ny, m.NumEdges())
		assert.NoError(t, m.Validate())
		counts := make(map[int]int)
		for _, e := range m.Edges {
			counts[e.Label]++
		}
		assert.Equal(t, nx, counts[Bottom])
		assert.Equal(t, nx, counts[Top])
		assert.Equal(t, ny, counts[Left])
		assert.Equal(t, ny, counts[Right])
		assert.InDelta(t, 0.2, m.Verts[1].X[0], 1.e-12)
		assert.InDelta(t, 1./3., m.Verts[nx+1].X[1], 1.e-12)
		// Generated edge sets are sorted, so the mesh is reproducible
		for i := 1; i < m.NumEdges(); i++ {
			assert.Equal(t, -1, types.CompareEdgeKeys(
				types.NewEdgeKey(m.Edges[i-1].Verts), types.NewEdgeKey(m.Edges[i].Verts)))
		}
	}
}

func TestFindEdges(t *testing.T) {
	edges := FindEdges([][3]int{{0, 1, 2}, {2, 1, 3}})
	require.Len(t, edges, 5)
	assert.Equal(t, types.NewEdgeKey([2]int{0, 1}), edges[0])
	assert.Equal(t, types.NewEdgeKey([2]int{2, 3}), edges[4])
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	TwoElemSquare().Dump(&buf)
	out := buf.String()
	assert.Contains(t, out, "Vertices: num=4")
	assert.Contains(t, out, "Edges: num=5")
	assert.Contains(t, out, "Elements: num=2")
}
