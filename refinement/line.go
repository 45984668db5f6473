package refinement

import (
	"github.com/plan-systems/klog"

	"github.com/notargets/gomesh/mesh1D"
)

// UniformLine bisects every segment of the coarse mesh, both halves keep the segment's label
func UniformLine(coarse *mesh1D.Mesh) (fine *mesh1D.Mesh, tr *Transfer, err error) {
	var (
		nv       = coarse.NumVertices()
		vertDone = make([]bool, nv)
		oldToNew = make([]int, nv)
		ra       = &rowAccumulator{}
		f        = mesh1D.NewMesh()
	)
	klog.V(3).Infof("refining line mesh: %d vertices, %d elements", nv, coarse.NumElements())
	for _, el := range coarse.Elems {
		for _, v := range el.Verts {
			if vertDone[v] {
				continue
			}
			cv := coarse.Verts[v]
			if oldToNew[v], err = f.AddVertex(cv.X, cv.Label); err != nil {
				return nil, nil, err
			}
			ra.carry(oldToNew[v], v)
			vertDone[v] = true
		}
		var (
			c0, c1 = el.Verts[0], el.Verts[1]
			mid    int
		)
		if mid, err = f.AddVertex(0.5 * (coarse.Verts[c0].X + coarse.Verts[c1].X)); err != nil {
			return nil, nil, err
		}
		ra.bisect(mid, c0, c1)
		if _, err = f.AddElement(oldToNew[c0], mid, el.Label); err != nil {
			return nil, nil, err
		}
		if _, err = f.AddElement(mid, oldToNew[c1], el.Label); err != nil {
			return nil, nil, err
		}
	}
	if tr, err = ra.assemble(nv); err != nil {
		return nil, nil, err
	}
	fine = f
	return
}
