package mesh1D

import (
	"fmt"
	"io"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/pkg/errors"

	"github.com/notargets/gomesh/types"
)

type Vertex struct {
	X        float64
	Label    int
	Cofacets *roaring.Bitmap
}

type Element struct {
	Verts [2]int // Sorted
	Label int
}

// Mesh is a 1D mesh of line segments. Unlike the 2D mesh, a coordinate can only be inserted once
type Mesh struct {
	Verts   []Vertex
	Elems   []Element
	vertMap map[float64]int
}

func NewMesh() (m *Mesh) {
	m = &Mesh{
		vertMap: make(map[float64]int),
	}
	return
}

func (m *Mesh) Dim() int         { return 1 }
func (m *Mesh) NumVertices() int { return len(m.Verts) }
func (m *Mesh) NumElements() int { return len(m.Elems) }

func (m *Mesh) AddVertex(x float64, labelO ...int) (vertIndex int, err error) {
	var label int
	if math.IsNaN(x) {
		err = fmt.Errorf("unable to add NaN vertex")
		return
	}
	if _, ok := m.vertMap[x]; ok {
		err = errors.Wrapf(types.ErrDuplicateVertex, "added vertex (%g) twice", x)
		return
	}
	if len(labelO) != 0 {
		label = labelO[0]
	}
	vertIndex = len(m.Verts)
	m.vertMap[x] = vertIndex
	m.Verts = append(m.Verts, Vertex{
		X:        x,
		Label:    label,
		Cofacets: roaring.New(),
	})
	return
}

// VertexIndexOf returns the index of the vertex at exactly x
func (m *Mesh) VertexIndexOf(x float64) (vertIndex int, ok bool) {
	vertIndex, ok = m.vertMap[x]
	return
}

func (m *Mesh) AddElement(a, b int, labelO ...int) (elemIndex int, err error) {
	var label int
	for _, v := range [2]int{a, b} {
		if v < 0 || v >= len(m.Verts) {
			err = errors.Wrapf(types.ErrVertexOutOfRange, "vertex %d, mesh has %d vertices", v, len(m.Verts))
			return
		}
	}
	if len(labelO) != 0 {
		label = labelO[0]
	}
	if a > b {
		a, b = b, a
	}
	elemIndex = len(m.Elems)
	m.Elems = append(m.Elems, Element{
		Verts: [2]int{a, b},
		Label: label,
	})
	m.Verts[a].Cofacets.Add(uint32(elemIndex))
	m.Verts[b].Cofacets.Add(uint32(elemIndex))
	return
}

// Only vertex and element labels exist in 1D, the element is the 1-cell
func (m *Mesh) LabelOf(dim types.CellDim, id int) (label int, err error) {
	if err = m.checkCell(dim, id); err != nil {
		return
	}
	if dim == types.Vertex {
		label = m.Verts[id].Label
	} else {
		label = m.Elems[id].Label
	}
	return
}

func (m *Mesh) SetLabel(dim types.CellDim, id, label int) (err error) {
	if err = m.checkCell(dim, id); err != nil {
		return
	}
	if dim == types.Vertex {
		m.Verts[id].Label = label
	} else {
		m.Elems[id].Label = label
	}
	return
}

func (m *Mesh) checkCell(dim types.CellDim, id int) (err error) {
	var n int
	switch dim {
	case types.Vertex:
		n = len(m.Verts)
	case types.Edge, types.Element:
		n = len(m.Elems)
	default:
		err = errors.Wrapf(types.ErrBadCellDim, "dimension %d", dim)
		return
	}
	if id < 0 || id >= n {
		err = errors.Wrapf(types.ErrCellOutOfRange, "%s index %d, valid range [0,%d)", dim, id, n)
	}
	return
}

func (m *Mesh) Dump(w io.Writer) {
	fmt.Fprintf(w, "Vertices: num=%d\n", len(m.Verts))
	for _, v := range m.Verts {
		fmt.Fprintf(w, "\t%-10.3g cofacets=%-8v label=%d\n", v.X, v.Cofacets.ToArray(), v.Label)
	}
	fmt.Fprintf(w, "Elements: num=%d\n", len(m.Elems))
	for _, e := range m.Elems {
		fmt.Fprintf(w, "\t%-20v label=%d\n", e.Verts, e.Label)
	}
}

// UniformLine divides [a,b] into nx segments, the left end is labeled 1 and the right end 2
func UniformLine(a, b float64, nx int) (m *Mesh, err error) {
	if nx < 1 {
		err = fmt.Errorf("need at least one segment, have nx = %d", nx)
		return
	}
	m = NewMesh()
	h := (b - a) / float64(nx)
	for i := 0; i <= nx; i++ {
		if _, err = m.AddVertex(a + float64(i)*h); err != nil {
			return nil, err
		}
	}
	_ = m.SetLabel(types.Vertex, 0, 1)
	_ = m.SetLabel(types.Vertex, nx, 2)
	for i := 0; i < nx; i++ {
		if _, err = m.AddElement(i, i+1); err != nil {
			return nil, err
		}
	}
	return
}

// FourElemLine is a non-uniform four segment mesh of [0,1] with labeled ends
func FourElemLine() (m *Mesh) {
	m = NewMesh()
	for i, x := range []float64{0, 0.25, 0.5, math.Sqrt(0.5), 1} {
		var label int
		if i == 0 || i == 4 {
			label = 1
		}
		if _, err := m.AddVertex(x, label); err != nil {
			panic(err)
		}
	}
	for i := 0; i < 4; i++ {
		if _, err := m.AddElement(i, i+1); err != nil {
			panic(err)
		}
	}
	return
}
