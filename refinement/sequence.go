package refinement

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomesh/mesh1D"
	"github.com/notargets/gomesh/mesh2D"
	"github.com/notargets/gomesh/types"
	"github.com/notargets/gomesh/utils"
)

// Mesh is what a Sequence needs to know about a level before choosing how to refine it
type Mesh interface {
	Dim() int
	NumVertices() int
}

/*
Sequence is a hierarchy of uniformly refined meshes, level 0 is the coarse input mesh and level
NumLevels()-1 the finest. Transfer i carries fields between levels i and i+1.
*/
type Sequence struct {
	meshes    []Mesh
	transfers []*Transfer
}

func NewSequence(coarse Mesh, numLevels int) (s *Sequence, err error) {
	if numLevels < 1 {
		err = fmt.Errorf("number of levels must be at least 1, have %d", numLevels)
		return
	}
	s = &Sequence{
		meshes:    make([]Mesh, 0, numLevels),
		transfers: make([]*Transfer, 0, numLevels-1),
	}
	s.meshes = append(s.meshes, coarse)
	for lev := 1; lev < numLevels; lev++ {
		var (
			fine Mesh
			tr   *Transfer
		)
		if fine, tr, err = refine(s.meshes[lev-1]); err != nil {
			return nil, errors.Wrapf(err, "refining level %d", lev-1)
		}
		klog.V(1).Infof("level %d: %d vertices", lev, fine.NumVertices())
		s.meshes = append(s.meshes, fine)
		s.transfers = append(s.transfers, tr)
	}
	return
}

func refine(m Mesh) (fine Mesh, tr *Transfer, err error) {
	switch m.Dim() {
	case 1:
		if mm, ok := m.(*mesh1D.Mesh); ok {
			return UniformLine(mm)
		}
	case 2:
		if mm, ok := m.(*mesh2D.Mesh); ok {
			return UniformTriangular(mm)
		}
	default:
		err = errors.Wrapf(types.ErrUnsupportedDimension, "dimension %d", m.Dim())
		return
	}
	err = fmt.Errorf("no refinement for dimension %d mesh of type %T", m.Dim(), m)
	return
}

func (s *Sequence) NumLevels() int { return len(s.meshes) }

func (s *Sequence) Mesh(i int) Mesh { return s.meshes[i] }

// Update maps vertex fields from level i-1 to level i
func (s *Sequence) Update(i int) utils.CSR { return s.transfers[i-1].Update }

// Downdate maps vertex fields from level i to level i-1
func (s *Sequence) Downdate(i int) utils.CSR { return s.transfers[i-1].Downdate }

// MakeVectorSequence restricts a finest level field to every level, the result is indexed by level
func (s *Sequence) MakeVectorSequence(fine []float64) (seq [][]float64, err error) {
	var (
		nl = s.NumLevels()
	)
	if len(fine) != s.meshes[nl-1].NumVertices() {
		err = fmt.Errorf("field length %d does not match finest level with %d vertices",
			len(fine), s.meshes[nl-1].NumVertices())
		return
	}
	seq = make([][]float64, nl)
	seq[nl-1] = fine
	for i := nl - 2; i >= 0; i-- {
		if seq[i], err = s.Downdate(i + 1).MulVec(seq[i+1]); err != nil {
			return nil, err
		}
	}
	return
}

// MakeMatrixSequence forms the Galerkin operator D*A*U at every level below the finest
func (s *Sequence) MakeMatrixSequence(fine mat.Matrix) (seq []mat.Matrix, err error) {
	var (
		nl   = s.NumLevels()
		n    = s.meshes[nl-1].NumVertices()
		r, c = fine.Dims()
	)
	if r != n || c != n {
		err = fmt.Errorf("matrix [%d x %d] does not match finest level with %d vertices", r, c, n)
		return
	}
	if csr, ok := fine.(utils.CSR); ok {
		fine = csr.M
	}
	seq = make([]mat.Matrix, nl)
	seq[nl-1] = fine
	for i := nl - 2; i >= 0; i-- {
		if seq[i], err = utils.Galerkin(s.Downdate(i+1), seq[i+1], s.Update(i+1)); err != nil {
			return nil, err
		}
	}
	return
}

// Prolong interpolates a coarse level field up through every level
func (s *Sequence) Prolong(field []float64) (seq [][]float64, err error) {
	var (
		nl = s.NumLevels()
	)
	if len(field) != s.meshes[0].NumVertices() {
		err = fmt.Errorf("field length %d does not match coarse level with %d vertices",
			len(field), s.meshes[0].NumVertices())
		return
	}
	seq = make([][]float64, nl)
	seq[0] = field
	for i := 1; i < nl; i++ {
		if seq[i], err = s.Update(i).MulVec(seq[i-1]); err != nil {
			return nil, err
		}
	}
	return
}

/*
VertexOrigins partitions the finest level vertices by the level on which each first appeared, set j holds
the vertices introduced by level j. A vertex is carried when its update row is a single unit weight
*/
func (s *Sequence) VertexOrigins() (origins []*roaring.Bitmap) {
	var (
		nl   = s.NumLevels()
		born = make([]int, s.meshes[0].NumVertices())
	)
	for i := 1; i < nl; i++ {
		var (
			U     = s.Update(i)
			nf, _ = U.Dims()
			nnz   = make([]int, nf)
			from  = make([]int, nf)
			next  = make([]int, nf)
		)
		U.DoNonZero(func(r, c int, v float64) {
			nnz[r]++
			from[r] = c
		})
		for r := range next {
			if nnz[r] == 1 && U.At(r, from[r]) == 1 {
				next[r] = born[from[r]]
			} else {
				next[r] = i
			}
		}
		born = next
	}
	origins = make([]*roaring.Bitmap, nl)
	for i := range origins {
		origins[i] = roaring.New()
	}
	for v, lev := range born {
		origins[lev].Add(uint32(v))
	}
	return
}
