package refinement

import (
	"github.com/plan-systems/klog"

	"github.com/notargets/gomesh/mesh2D"
)

/*
UniformTriangular splits every element of the coarse mesh into four by bisecting its edges.

	           2
	          / \
	         4 - 3
	        / \ / \
	       0 - 5 - 1

Midpoint 3+i lies on the edge opposite corner i. Coarse vertices and edges are visited exactly once in
element order, so a midpoint shared by two elements is created by the first and reused by the second.
The fine mesh has V+E vertices, 2E+3T edges and 4T elements.
*/
func UniformTriangular(coarse *mesh2D.Mesh) (fine *mesh2D.Mesh, tr *Transfer, err error) {
	var (
		nv, ne     = coarse.NumVertices(), coarse.NumEdges()
		vertDone   = make([]bool, nv)
		edgeDone   = make([]bool, ne)
		oldToNew   = make([]int, nv)
		edgeToMid  = make([]int, ne)
		ra         = &rowAccumulator{}
		f          = mesh2D.NewMesh()
		interiorEd = [3][2]int{{3, 5}, {3, 4}, {4, 5}}
		children   = [4][3]int{{0, 5, 4}, {1, 3, 5}, {2, 4, 3}, {3, 4, 5}}
	)
	klog.V(3).Infof("refining triangular mesh: %d vertices, %d edges, %d elements",
		nv, ne, coarse.NumElements())
	for k, el := range coarse.Elems {
		var local [6]int
		for i, v := range el.Verts {
			if !vertDone[v] {
				cv := coarse.Verts[v]
				oldToNew[v] = f.AddVertex(cv.X[0], cv.X[1], cv.Label)
				ra.carry(oldToNew[v], v)
				vertDone[v] = true
			}
			local[i] = oldToNew[v]
		}
		for i := 0; i < 3; i++ {
			var (
				c0, c1 = el.Verts[(i+1)%3], el.Verts[(i+2)%3]
				ei     int
			)
			if ei, err = coarse.EdgeIndexOf(c0, c1); err != nil {
				klog.V(3).Infof("element %d: %v", k, err)
				return nil, nil, err
			}
			if !edgeDone[ei] {
				var (
					p0, p1 = coarse.Verts[c0].X, coarse.Verts[c1].X
					label  = coarse.Edges[ei].Label
				)
				mid := f.AddVertex(0.5*(p0[0]+p1[0]), 0.5*(p0[1]+p1[1]))
				ra.bisect(mid, c0, c1)
				if _, err = f.AddEdge(oldToNew[c0], mid, label); err != nil {
					return nil, nil, err
				}
				if _, err = f.AddEdge(mid, oldToNew[c1], label); err != nil {
					return nil, nil, err
				}
				edgeToMid[ei] = mid
				edgeDone[ei] = true
			}
			local[3+i] = edgeToMid[ei]
		}
		for _, ie := range interiorEd {
			if _, err = f.AddEdge(local[ie[0]], local[ie[1]], mesh2D.Interior); err != nil {
				return nil, nil, err
			}
		}
		for _, ch := range children {
			if _, err = f.AddElement(local[ch[0]], local[ch[1]], local[ch[2]], el.Label); err != nil {
				return nil, nil, err
			}
		}
	}
	if tr, err = ra.assemble(nv); err != nil {
		return nil, nil, err
	}
	fine = f
	klog.V(3).Infof("refined triangular mesh: %d vertices, %d edges, %d elements",
		fine.NumVertices(), fine.NumEdges(), fine.NumElements())
	return
}
