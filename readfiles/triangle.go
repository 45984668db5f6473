package readfiles

import (
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/notargets/gomesh/mesh2D"
	"github.com/notargets/gomesh/utils"
)

/*
ReadTriangleMesh loads basename.node, basename.edge and basename.ele as written by Shewchuk's
Triangle (use its -e switch to get the .edge file). Indices may start at 0 or 1, the first vertex
row decides. Boundary markers become labels, absent markers read as 0.
*/
func ReadTriangleMesh(basename string) (m *mesh2D.Mesh, err error) {
	var (
		offset int
	)
	m = mesh2D.NewMesh()
	if err = readTriangleFile(basename+".node", func(r io.Reader, name string) (err error) {
		offset, err = readNodes(r, name, m)
		return
	}); err != nil {
		return nil, err
	}
	if err = readTriangleFile(basename+".edge", func(r io.Reader, name string) error {
		return readSides(r, name, m, offset)
	}); err != nil {
		return nil, err
	}
	if err = readTriangleFile(basename+".ele", func(r io.Reader, name string) error {
		return readElements(r, name, m, offset)
	}); err != nil {
		return nil, err
	}
	klog.V(1).Infof("read %s: %d vertices, %d edges, %d elements",
		basename, m.NumVertices(), m.NumEdges(), m.NumElements())
	return
}

func readTriangleFile(fileName string, reader func(r io.Reader, name string) error) (err error) {
	var file *os.File
	if file, err = os.Open(fileName); err != nil {
		return errors.Wrap(err, "unable to open Triangle file")
	}
	defer file.Close()
	return reader(file, fileName)
}

// readNodes returns the index of the first vertex, which sets the numbering base of the other files
func readNodes(r io.Reader, name string, m *mesh2D.Mesh) (offset int, err error) {
	var (
		tk     = utils.NewTokenizer(r, name)
		toks   []string
		header []int
	)
	if toks, err = tk.MustNext(1); err != nil {
		return
	}
	if header, err = tk.Ints(toks); err != nil {
		return
	}
	var (
		nNodes    = header[0]
		nAttr     int
		hasMarker bool
	)
	if len(header) > 2 {
		nAttr = header[2]
	}
	if len(header) > 3 {
		hasMarker = header[3] == 1
	}
	for i := 0; i < nNodes; i++ {
		var (
			x, y  float64
			label int
		)
		if toks, err = tk.MustNext(3); err != nil {
			return
		}
		if i == 0 {
			if offset, err = tk.Int(toks[0]); err != nil {
				return
			}
		}
		if x, err = tk.Float(toks[1]); err != nil {
			return
		}
		if y, err = tk.Float(toks[2]); err != nil {
			return
		}
		if hasMarker && len(toks) > 3+nAttr {
			if label, err = tk.Int(toks[3+nAttr]); err != nil {
				return
			}
		}
		m.AddVertex(x, y, label)
	}
	if offset != 0 && offset != 1 {
		err = errors.Errorf("%s: first vertex index is %d, expected 0 or 1", name, offset)
	}
	return
}

func readSides(r io.Reader, name string, m *mesh2D.Mesh, offset int) (err error) {
	var (
		tk     = utils.NewTokenizer(r, name)
		toks   []string
		nSides int
	)
	if toks, err = tk.MustNext(1); err != nil {
		return
	}
	if nSides, err = tk.Int(toks[0]); err != nil {
		return
	}
	for i := 0; i < nSides; i++ {
		var vals []int
		if toks, err = tk.MustNext(3); err != nil {
			return
		}
		if vals, err = tk.Ints(toks); err != nil {
			return
		}
		var label int
		if len(vals) > 3 {
			label = vals[3]
		}
		if _, err = m.AddEdge(vals[1]-offset, vals[2]-offset, label); err != nil {
			return tk.Wrap(err)
		}
	}
	return
}

// A first regional attribute on an element, as written by Triangle's -A switch, becomes its label
func readElements(r io.Reader, name string, m *mesh2D.Mesh, offset int) (err error) {
	var (
		tk     = utils.NewTokenizer(r, name)
		toks   []string
		header []int
	)
	if toks, err = tk.MustNext(1); err != nil {
		return
	}
	if header, err = tk.Ints(toks); err != nil {
		return
	}
	var (
		nElems   = header[0]
		nCorners = 3
		nAttr    int
	)
	if len(header) > 1 {
		nCorners = header[1]
	}
	if len(header) > 2 {
		nAttr = header[2]
	}
	if nCorners != 3 {
		return tk.Errorf("only linear triangles are supported, have %d nodes per element", nCorners)
	}
	for k := 0; k < nElems; k++ {
		var (
			vals  []int
			label int
		)
		if toks, err = tk.MustNext(4); err != nil {
			return
		}
		if vals, err = tk.Ints(toks[:4]); err != nil {
			return
		}
		if nAttr > 0 && len(toks) > 4 {
			var attr float64
			if attr, err = tk.Float(toks[4]); err != nil {
				return
			}
			label = int(math.Round(attr))
		}
		if _, err = m.AddElement(vals[1]-offset, vals[2]-offset, vals[3]-offset, label); err != nil {
			return tk.Wrap(err)
		}
	}
	return
}
