package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))
		assert.Equal(t, [2]int{1, 0}, en.GetVertices(true))

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))
		assert.Equal(t, "(1,100)", en.String())

		// Test maximum/minimum indices
		en = NewEdgeKey([2]int{1<<32 - 1, 1<<32 - 1})
		assert.Equal(t, EdgeKey(1<<64-1), en)
		assert.Equal(t, [2]int{1<<32 - 1, 1<<32 - 1}, en.GetVertices(false))

		assert.Panics(t, func() { NewEdgeKey([2]int{-1, 2}) })
	}
	{ // Ordering used by sorted edge sets
		a := NewEdgeKey([2]int{0, 5})
		b := NewEdgeKey([2]int{1, 2})
		c := NewEdgeKey([2]int{5, 0})
		assert.Equal(t, -1, CompareEdgeKeys(a, b))
		assert.Equal(t, 1, CompareEdgeKeys(b, a))
		assert.Equal(t, 0, CompareEdgeKeys(a, c))
		assert.Equal(t, -1, CompareEdgeKeys(NewEdgeKey([2]int{1, 2}), NewEdgeKey([2]int{1, 3})))
	}
	{
		assert.Equal(t, "Vertex", Vertex.String())
		assert.Equal(t, "Element", Element.String())
		assert.Equal(t, "CellDim(7)", CellDim(7).String())
	}
}
