package mesh2D

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/notargets/gomesh/types"
)

// Boundary labels applied by UniformRectangle
const (
	Interior = iota
	Bottom
	Right
	Top
	Left
)

// FindEdges returns the canonical edges of a set of triangles in ascending order
func FindEdges(elems [][3]int) (edges []types.EdgeKey) {
	set := treeset.NewWith(types.CompareEdgeKeys)
	for _, e := range elems {
		set.Add(
			types.NewEdgeKey([2]int{e[0], e[1]}),
			types.NewEdgeKey([2]int{e[1], e[2]}),
			types.NewEdgeKey([2]int{e[2], e[0]}),
		)
	}
	edges = make([]types.EdgeKey, 0, set.Size())
	for _, val := range set.Values() {
		edges = append(edges, val.(types.EdgeKey))
	}
	return
}

/*
NewMeshFromTriangles loads vertices, computes and registers the edge set, then adds the elements.
edgeLabel is consulted for each edge and may be nil, in which case all edges are interior
*/
func NewMeshFromTriangles(verts [][2]float64, elems [][3]int,
	edgeLabel func(v0, v1 int) int) (m *Mesh, err error) {
	m = NewMesh()
	for _, v := range verts {
		m.AddVertex(v[0], v[1])
	}
	for _, key := range FindEdges(elems) {
		var label int
		ev := key.GetVertices(false)
		if edgeLabel != nil {
			label = edgeLabel(ev[0], ev[1])
		}
		if _, err = m.AddEdge(ev[0], ev[1], label); err != nil {
			return nil, err
		}
	}
	for _, e := range elems {
		if _, err = m.AddElement(e[0], e[1], e[2]); err != nil {
			return nil, err
		}
	}
	return
}

func runningVertIndex(nx, ix, iy int) int { return ix + (nx+1)*iy }

/*
UniformRectangle triangulates [ax,bx]x[ay,by] with nx by ny cells, two triangles per cell with the
diagonal alternating in a checkerboard. Boundary edges are labeled Bottom, Right, Top and Left
*/
func UniformRectangle(ax, bx float64, nx int, ay, by float64, ny int) (m *Mesh, err error) {
	var (
		verts = make([][2]float64, 0, (nx+1)*(ny+1))
		elems = make([][3]int, 0, 2*nx*ny)
	)
	for iy := 0; iy <= ny; iy++ {
		for ix := 0; ix <= nx; ix++ {
			verts = append(verts, [2]float64{
				ax + float64(ix)*(bx-ax)/float64(nx),
				ay + float64(iy)*(by-ay)/float64(ny),
			})
		}
	}
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			a := runningVertIndex(nx, ix, iy)
			b := runningVertIndex(nx, ix+1, iy)
			c := runningVertIndex(nx, ix+1, iy+1)
			d := runningVertIndex(nx, ix, iy+1)
			if (ix+iy)%2 == 0 {
				elems = append(elems, [3]int{a, b, c}, [3]int{a, c, d})
			} else {
				elems = append(elems, [3]int{a, b, d}, [3]int{b, c, d})
			}
		}
	}
	ij := func(v int) (ix, iy int) { return v % (nx + 1), v / (nx + 1) }
	label := func(v0, v1 int) int {
		ix0, iy0 := ij(v0)
		ix1, iy1 := ij(v1)
		switch {
		case iy0 == 0 && iy1 == 0:
			return Bottom
		case ix0 == nx && ix1 == nx:
			return Right
		case iy0 == ny && iy1 == ny:
			return Top
		case ix0 == 0 && ix1 == 0:
			return Left
		}
		return Interior
	}
	return NewMeshFromTriangles(verts, elems, label)
}

// TwoElemSquare is the unit square split along the (0,2) diagonal, with labeled sides
func TwoElemSquare() (m *Mesh) {
	m = NewMesh()
	m.AddVertex(0, 0)
	m.AddVertex(1, 0)
	m.AddVertex(1, 1)
	m.AddVertex(0, 1)
	for _, s := range [][3]int{
		{0, 1, 1},
		{1, 2, 2},
		{2, 3, 1},
		{0, 3, 2},
		{0, 2, 0},
	} {
		mustAdd(m.AddEdge(s[0], s[1], s[2]))
	}
	mustAdd(m.AddElement(0, 1, 2))
	mustAdd(m.AddElement(0, 2, 3))
	return
}

// GoofySquare is an irregular 13 element triangulation of the unit square
func GoofySquare() (m *Mesh) {
	var err error
	verts := [][2]float64{
		{0.0, 0.0}, {0.25, 0.0}, {0.5, 0.0}, {0.75, 0.0}, {1.0, 0.0},
		{0.0, 0.5}, {0.25, 0.5}, {0.5, 0.5},
		{0.0, 1.0}, {0.25, 1.0}, {0.5, 1.0}, {0.75, 1.0}, {1.0, 1.0},
	}
	elems := [][3]int{
		{0, 1, 6}, {0, 6, 5}, {1, 2, 7}, {1, 7, 6}, {2, 3, 7}, {3, 11, 7}, {3, 12, 11},
		{3, 4, 12}, {7, 11, 10}, {6, 7, 10}, {6, 10, 9}, {6, 9, 8}, {5, 6, 8},
	}
	if m, err = NewMeshFromTriangles(verts, elems, nil); err != nil {
		panic(err)
	}
	return
}

func mustAdd(_ int, err error) {
	if err != nil {
		panic(err)
	}
}
