package geometry2D

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/notargets/gomesh/utils"
)

/*
PSLG is a planar straight line graph: labeled boundary segments and hole seed points, the input
to a constrained triangulator. Vertices are deduplicated by exact coordinate so closed loops share
their corners.
*/
type PSLG struct {
	Verts   []Point
	Edges   [][2]int
	Labels  []int
	Holes   []Point
	Loops   []*Polygon
	vertMap map[Point]int
}

func NewPSLG() (p *PSLG) {
	p = &PSLG{
		vertMap: make(map[Point]int),
	}
	return
}

func (p *PSLG) AddVertex(pt Point) (vertIndex int) {
	var ok bool
	if vertIndex, ok = p.vertMap[pt]; ok {
		return
	}
	vertIndex = len(p.Verts)
	p.vertMap[pt] = vertIndex
	p.Verts = append(p.Verts, pt)
	return
}

func (p *PSLG) AddEdge(start, end Point, label int) {
	p.Edges = append(p.Edges, [2]int{p.AddVertex(start), p.AddVertex(end)})
	p.Labels = append(p.Labels, label)
}

func (p *PSLG) AddHole(pt Point) {
	p.Holes = append(p.Holes, pt)
}

// MakeClosedPoly joins consecutive points and the last back to the first, all segments get the label
func (p *PSLG) MakeClosedPoly(verts []Point, label int) (err error) {
	n := len(verts)
	if n < 3 {
		return fmt.Errorf("closed polygon needs at least 3 points, have %d", n)
	}
	for i := 0; i < n; i++ {
		p.AddEdge(verts[i], verts[(i+1)%n], label)
	}
	p.Loops = append(p.Loops, NewPolygon(append([]Point{}, verts...)))
	return
}

// MakeCircle approximates a circle with a closed polygon of nPts points, default 180
func (p *PSLG) MakeCircle(center Point, radius float64, label int, nPtsO ...int) (err error) {
	nPts := 180
	if len(nPtsO) != 0 {
		nPts = nPtsO[0]
	}
	return p.MakeClosedPoly(NewNgon(center, radius, nPts), label)
}

func (p *PSLG) BoundingBox() (bb *BoundingBox) {
	return NewBoundingBox(p.Verts)
}

// CheckHoles verifies each hole seed lies inside at least one of the closed loops
func (p *PSLG) CheckHoles() (err error) {
	if len(p.Loops) == 0 {
		return
	}
	for i, h := range p.Holes {
		var inside bool
		for _, loop := range p.Loops {
			if loop.PointInside(h) {
				inside = true
				break
			}
		}
		if !inside {
			err = fmt.Errorf("hole %d at (%g,%g) is not inside any closed boundary", i, h.X[0], h.X[1])
			return
		}
	}
	return
}

// Write emits the .poly format read by Triangle, indices start at 0
func (p *PSLG) Write(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d 2 0 0\n", len(p.Verts))
	for i, v := range p.Verts {
		fmt.Fprintf(bw, "%d %g %g\n", i, v.X[0], v.X[1])
	}
	fmt.Fprintf(bw, "%d 1\n", len(p.Edges))
	for i, e := range p.Edges {
		fmt.Fprintf(bw, "%d %d %d %d\n", i, e[0], e[1], p.Labels[i])
	}
	fmt.Fprintf(bw, "%d\n", len(p.Holes))
	for i, h := range p.Holes {
		fmt.Fprintf(bw, "%d %g %g\n", i, h.X[0], h.X[1])
	}
	return bw.Flush()
}

func (p *PSLG) WriteFile(fileName string) (err error) {
	var file *os.File
	if file, err = os.Create(fileName); err != nil {
		return
	}
	if err = p.Write(file); err != nil {
		file.Close()
		return
	}
	return file.Close()
}

/*
ReadPoly parses a .poly file with its vertices inline. Segment markers default to 0 when the file
carries none. Closed loops are not recovered.
*/
func ReadPoly(r io.Reader, name string) (p *PSLG, err error) {
	var (
		tk     = utils.NewTokenizer(r, name)
		toks   []string
		header []int
		offset int
	)
	p = NewPSLG()
	if toks, err = tk.MustNext(1); err != nil {
		return nil, err
	}
	if header, err = tk.Ints(toks); err != nil {
		return nil, err
	}
	if header[0] == 0 {
		return nil, tk.Errorf("vertices in a separate .node file are not supported")
	}
	for i := 0; i < header[0]; i++ {
		var pt Point
		if toks, err = tk.MustNext(3); err != nil {
			return nil, err
		}
		if i == 0 {
			if offset, err = tk.Int(toks[0]); err != nil {
				return nil, err
			}
		}
		for n := 0; n < 2; n++ {
			if pt.X[n], err = tk.Float(toks[n+1]); err != nil {
				return nil, err
			}
		}
		if _, ok := p.vertMap[pt]; !ok {
			p.vertMap[pt] = len(p.Verts)
		}
		p.Verts = append(p.Verts, pt)
	}
	if toks, err = tk.MustNext(1); err != nil {
		return nil, err
	}
	if header, err = tk.Ints(toks); err != nil {
		return nil, err
	}
	for i := 0; i < header[0]; i++ {
		var vals []int
		if toks, err = tk.MustNext(3); err != nil {
			return nil, err
		}
		if vals, err = tk.Ints(toks); err != nil {
			return nil, err
		}
		e := [2]int{vals[1] - offset, vals[2] - offset}
		for _, v := range e {
			if v < 0 || v >= len(p.Verts) {
				return nil, tk.Errorf("segment vertex %d out of range", v+offset)
			}
		}
		var label int
		if len(vals) > 3 {
			label = vals[3]
		}
		p.Edges = append(p.Edges, e)
		p.Labels = append(p.Labels, label)
	}
	// The hole section is optional
	if toks, err = tk.Next(); err == io.EOF {
		return p, nil
	} else if err != nil {
		return nil, err
	}
	var nHoles int
	if nHoles, err = tk.Int(toks[0]); err != nil {
		return nil, err
	}
	for i := 0; i < nHoles; i++ {
		var pt Point
		if toks, err = tk.MustNext(3); err != nil {
			return nil, err
		}
		for n := 0; n < 2; n++ {
			if pt.X[n], err = tk.Float(toks[n+1]); err != nil {
				return nil, err
			}
		}
		p.Holes = append(p.Holes, pt)
	}
	return
}

// TwoHoles is a 2x1 rectangle with two circular holes of radius 0.2
func TwoHoles() (p *PSLG) {
	p = NewPSLG()
	p.MakeClosedPoly([]Point{
		*NewPoint(0, 0), *NewPoint(2, 0), *NewPoint(2, 1), *NewPoint(0, 1),
	}, 1)
	p.MakeCircle(*NewPoint(0.5, 0.5), 0.2, 2, 45)
	p.MakeCircle(*NewPoint(1.5, 0.5), 0.2, 3, 45)
	p.AddHole(*NewPoint(0.5, 0.5))
	p.AddHole(*NewPoint(1.5, 0.5))
	return
}

// OneHole is a 2x2 square with a centered square hole of side 1
func OneHole() (p *PSLG) {
	p = NewPSLG()
	p.MakeClosedPoly([]Point{
		*NewPoint(0, 0), *NewPoint(2, 0), *NewPoint(2, 2), *NewPoint(0, 2),
	}, 1)
	p.MakeClosedPoly([]Point{
		*NewPoint(0.5, 0.5), *NewPoint(1.5, 0.5), *NewPoint(1.5, 1.5), *NewPoint(0.5, 1.5),
	}, 2)
	p.AddHole(*NewPoint(1, 1))
	return
}
