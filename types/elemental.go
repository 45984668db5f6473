package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

// GetVertices returns the canonical pair, smallest index first, or reversed when rev is set
func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

func (ek EdgeKey) String() string {
	v := ek.GetVertices(false)
	return fmt.Sprintf("(%d,%d)", v[0], v[1])
}

// CompareEdgeKeys orders keys by their smallest vertex, then the largest
func CompareEdgeKeys(a, b interface{}) int {
	va, vb := a.(EdgeKey).GetVertices(false), b.(EdgeKey).GetVertices(false)
	switch {
	case va[0] < vb[0]:
		return -1
	case va[0] > vb[0]:
		return 1
	case va[1] < vb[1]:
		return -1
	case va[1] > vb[1]:
		return 1
	}
	return 0
}

// CellDim selects the cell family a label belongs to
type CellDim uint8

const (
	Vertex CellDim = iota
	Edge
	Element
)

func (cd CellDim) String() string {
	switch cd {
	case Vertex:
		return "Vertex"
	case Edge:
		return "Edge"
	case Element:
		return "Element"
	default:
		return fmt.Sprintf("CellDim(%d)", uint8(cd))
	}
}
