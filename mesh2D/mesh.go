package mesh2D

import (
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/pkg/errors"

	"github.com/notargets/gomesh/types"
)

type Vertex struct {
	X        [2]float64
	Label    int
	Cofacets *roaring.Bitmap // Elements incident on this vertex
}

type Edge struct {
	Verts [2]int // Canonical, smallest index first
	Label int
}

type Element struct {
	Verts [3]int // Traversal order as inserted
	Label int
}

/*
Mesh is an unstructured triangular mesh. Vertices and elements are appended as given, only edges are
deduplicated, using the canonical vertex pair as the key
*/
type Mesh struct {
	Verts   []Vertex
	Edges   []Edge
	Elems   []Element
	edgeMap map[types.EdgeKey]int
}

func NewMesh() (m *Mesh) {
	m = &Mesh{
		edgeMap: make(map[types.EdgeKey]int),
	}
	return
}

func (m *Mesh) Dim() int         { return 2 }
func (m *Mesh) NumVertices() int { return len(m.Verts) }
func (m *Mesh) NumEdges() int    { return len(m.Edges) }
func (m *Mesh) NumElements() int { return len(m.Elems) }

func (m *Mesh) AddVertex(x, y float64, labelO ...int) (vertIndex int) {
	var label int
	if len(labelO) != 0 {
		label = labelO[0]
	}
	vertIndex = len(m.Verts)
	m.Verts = append(m.Verts, Vertex{
		X:        [2]float64{x, y},
		Label:    label,
		Cofacets: roaring.New(),
	})
	return
}

// AddEdge returns the index of the edge joining v0 and v1, the label is only applied when the edge is new
func (m *Mesh) AddEdge(v0, v1 int, labelO ...int) (edgeIndex int, err error) {
	var (
		label int
		ok    bool
	)
	if err = m.checkVertices(v0, v1); err != nil {
		return
	}
	if len(labelO) != 0 {
		label = labelO[0]
	}
	key := types.NewEdgeKey([2]int{v0, v1})
	if edgeIndex, ok = m.edgeMap[key]; ok {
		return
	}
	edgeIndex = len(m.Edges)
	m.Edges = append(m.Edges, Edge{
		Verts: key.GetVertices(false),
		Label: label,
	})
	m.edgeMap[key] = edgeIndex
	return
}

func (m *Mesh) AddElement(a, b, c int, labelO ...int) (elemIndex int, err error) {
	var label int
	if err = m.checkVertices(a, b, c); err != nil {
		return
	}
	if len(labelO) != 0 {
		label = labelO[0]
	}
	elemIndex = len(m.Elems)
	m.Elems = append(m.Elems, Element{
		Verts: [3]int{a, b, c},
		Label: label,
	})
	for _, v := range [3]int{a, b, c} {
		m.Verts[v].Cofacets.Add(uint32(elemIndex))
	}
	return
}

func (m *Mesh) EdgeIndexOf(v0, v1 int) (edgeIndex int, err error) {
	var ok bool
	if v0 < 0 || v1 < 0 || v0 >= len(m.Verts) || v1 >= len(m.Verts) {
		err = errors.Wrapf(types.ErrEdgeNotFound, "edge (%d,%d)", v0, v1)
		return
	}
	if edgeIndex, ok = m.edgeMap[types.NewEdgeKey([2]int{v0, v1})]; !ok {
		err = errors.Wrapf(types.ErrEdgeNotFound, "edge (%d,%d)", v0, v1)
	}
	return
}

// EdgeLabelOf looks up the label of the edge joining v0 and v1
func (m *Mesh) EdgeLabelOf(v0, v1 int) (label int, err error) {
	var ei int
	if ei, err = m.EdgeIndexOf(v0, v1); err != nil {
		return
	}
	label = m.Edges[ei].Label
	return
}

func (m *Mesh) LabelOf(dim types.CellDim, id int) (label int, err error) {
	if err = m.checkCell(dim, id); err != nil {
		return
	}
	switch dim {
	case types.Vertex:
		label = m.Verts[id].Label
	case types.Edge:
		label = m.Edges[id].Label
	case types.Element:
		label = m.Elems[id].Label
	}
	return
}

func (m *Mesh) SetLabel(dim types.CellDim, id, label int) (err error) {
	if err = m.checkCell(dim, id); err != nil {
		return
	}
	switch dim {
	case types.Vertex:
		m.Verts[id].Label = label
	case types.Edge:
		m.Edges[id].Label = label
	case types.Element:
		m.Elems[id].Label = label
	}
	return
}

// ElementEdges returns the canonical keys of an element's edges, edge i is opposite corner i
func (m *Mesh) ElementEdges(k int) (keys [3]types.EdgeKey) {
	tri := m.Elems[k].Verts
	for i := 0; i < 3; i++ {
		keys[i] = types.NewEdgeKey([2]int{tri[(i+1)%3], tri[(i+2)%3]})
	}
	return
}

// Validate checks that every element's edges are registered, which refinement depends on
func (m *Mesh) Validate() (err error) {
	for k := range m.Elems {
		for _, key := range m.ElementEdges(k) {
			if _, ok := m.edgeMap[key]; !ok {
				err = errors.Wrapf(types.ErrEdgeNotFound, "element %d references edge %s", k, key)
				return
			}
		}
	}
	return
}

func (m *Mesh) Dump(w io.Writer) {
	fmt.Fprintf(w, "Vertices: num=%d\n", len(m.Verts))
	for i, v := range m.Verts {
		fmt.Fprintf(w, "\t%6d (%10.3g, %10.3g) cofacets=%v label=%d\n",
			i, v.X[0], v.X[1], v.Cofacets.ToArray(), v.Label)
	}
	fmt.Fprintf(w, "Edges: num=%d\n", len(m.Edges))
	for i, e := range m.Edges {
		fmt.Fprintf(w, "\t%6d %-20v label=%d\n", i, e.Verts, e.Label)
	}
	fmt.Fprintf(w, "Elements: num=%d\n", len(m.Elems))
	for i, el := range m.Elems {
		fmt.Fprintf(w, "\t%6d %-20v label=%d\n", i, el.Verts, el.Label)
	}
}

func (m *Mesh) checkVertices(verts ...int) (err error) {
	for _, v := range verts {
		if v < 0 || v >= len(m.Verts) {
			err = errors.Wrapf(types.ErrVertexOutOfRange, "vertex %d, mesh has %d vertices", v, len(m.Verts))
			return
		}
	}
	return
}

func (m *Mesh) checkCell(dim types.CellDim, id int) (err error) {
	var n int
	switch dim {
	case types.Vertex:
		n = len(m.Verts)
	case types.Edge:
		n = len(m.Edges)
	case types.Element:
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
