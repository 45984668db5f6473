package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is the assembly form of a sparse operator, entries are keyed by (row, column)
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }
func (m DOK) NNZ() int            { return m.M.NNZ() }

func (m DOK) Set(i, j int, val float64) {
	m.checkWritable()
	m.M.Set(i, j, val)
}

// Add accumulates val into the (i,j) entry
func (m DOK) Add(i, j int, val float64) {
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
}

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

// ToCSR freezes the assembled entries into compressed row form, the result is read only
func (m DOK) ToCSR(name ...string) CSR {
	R := CSR{
		M:        m.M.ToCSR(),
		readOnly: true,
		name:     m.name,
	}
	if len(name) != 0 {
		R.name = name[0]
	}
	return R
}

// CSR is the frozen, multiplication ready form of a sparse operator
type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }
func (m CSR) Name() string        { return m.name }
func (m CSR) IsReadOnly() bool    { return m.readOnly }

func (m CSR) DoNonZero(fn func(i, j int, v float64)) {
	m.M.DoNonZero(fn)
}

func (m CSR) RowSums() (sums []float64) {
	nr, _ := m.Dims()
	sums = make([]float64, nr)
	m.M.DoNonZero(func(i, _ int, v float64) {
		sums[i] += v
	})
	return
}

// MulVec returns m * x
func (m CSR) MulVec(x []float64) (y []float64, err error) {
	var (
		nr, nc = m.Dims()
	)
	if len(x) != nc {
		err = fmt.Errorf("dimension mismatch multiplying %s [%d x %d] by vector of length %d",
			m.name, nr, nc, len(x))
		return
	}
	y = make([]float64, nr)
	m.M.MulVecTo(y, false, x)
	return
}

// Galerkin returns the triple product L * A * R, used to carry an operator
// between levels with a restriction on the left and a prolongation on the right
func Galerkin(L CSR, A mat.Matrix, R CSR) (P *sparse.CSR, err error) {
	var (
		lr, lc = L.Dims()
		ar, ac = A.Dims()
		rr, rc = R.Dims()
	)
	if lc != ar || ac != rr {
		err = fmt.Errorf("incompatible dimensions for triple product: [%d x %d] * [%d x %d] * [%d x %d]",
			lr, lc, ar, ac, rr, rc)
		return
	}
	AR := sparse.NewCSR(ar, rc, nil, nil, nil)
	AR.Mul(A, R.M)
	P = sparse.NewCSR(lr, rc, nil, nil, nil)
	P.Mul(L.M, AR)
	return
}
