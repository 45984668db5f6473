package refinement

import (
	"github.com/pkg/errors"

	"github.com/notargets/gomesh/utils"
)

var ErrOrphanVertex = errors.New("coarse vertex has no fine level contribution")

// Transfer holds the pair of operators carrying vertex fields between two mesh levels
type Transfer struct {
	Update   utils.CSR // Fine x Coarse, interpolation
	Downdate utils.CSR // Coarse x Fine, weighted average
}

type interpRow struct {
	cols    []int
	weights []float64
}

// rowAccumulator collects one interpolation row per fine vertex, indexed by fine vertex
type rowAccumulator struct {
	rows []interpRow
}

func (ra *rowAccumulator) carry(fine, coarse int) {
	ra.set(fine, interpRow{cols: []int{coarse}, weights: []float64{1}})
}

func (ra *rowAccumulator) bisect(fine, c0, c1 int) {
	ra.set(fine, interpRow{cols: []int{c0, c1}, weights: []float64{.5, .5}})
}

func (ra *rowAccumulator) set(fine int, r interpRow) {
	for len(ra.rows) <= fine {
		ra.rows = append(ra.rows, interpRow{})
	}
	ra.rows[fine] = r
}

/*
assemble freezes the accumulated rows into the update operator and builds the downdate as its transpose,
with each coarse row divided by the sum of the weights actually accumulated into it
*/
func (ra *rowAccumulator) assemble(nCoarse int) (tr *Transfer, err error) {
	var (
		nFine = len(ra.rows)
		U     = utils.NewDOK(nFine, nCoarse)
		D     = utils.NewDOK(nCoarse, nFine)
		sums  = make([]float64, nCoarse)
	)
	for i, r := range ra.rows {
		for n, j := range r.cols {
			U.Add(i, j, r.weights[n])
			sums[j] += r.weights[n]
		}
	}
	for j, sum := range sums {
		if sum == 0 {
			err = errors.Wrapf(ErrOrphanVertex, "coarse vertex %d", j)
			return
		}
	}
	for i, r := range ra.rows {
		for n, j := range r.cols {
			D.Add(j, i, r.weights[n]/sums[j])
		}
	}
	tr = &Transfer{
		Update:   U.SetReadOnly("Update").ToCSR(),
		Downdate: D.SetReadOnly("Downdate").ToCSR(),
	}
	return
}
