package readfiles

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/notargets/gomesh/mesh2D"
)

const vtkTriangle = 5

// VTKWriter writes a triangle mesh and named vertex fields as a VTK XML unstructured grid (.vtu)
type VTKWriter struct {
	mesh   *mesh2D.Mesh
	names  []string
	fields map[string][]float64
}

func NewVTKWriter(m *mesh2D.Mesh) (vw *VTKWriter) {
	vw = &VTKWriter{
		mesh:   m,
		fields: make(map[string][]float64),
	}
	return
}

// AddField registers a vertex field, fields are written in the order first added. The first is the active scalar
func (vw *VTKWriter) AddField(name string, vals []float64) (err error) {
	if len(vals) != vw.mesh.NumVertices() {
		err = fmt.Errorf("field %s has %d values, mesh has %d vertices", name, len(vals), vw.mesh.NumVertices())
		return
	}
	if _, ok := vw.fields[name]; !ok {
		vw.names = append(vw.names, name)
	}
	vw.fields[name] = vals
	return
}

type vtkTag struct {
	w      *bufio.Writer
	indent int
}

func (vt *vtkTag) open(name string, attrs ...string) {
	fmt.Fprintf(vt.w, "%s<%s", strings.Repeat("  ", vt.indent), name)
	for i := 0; i+1 < len(attrs); i += 2 {
		fmt.Fprintf(vt.w, " %s=\"%s\"", attrs[i], escapeAttr(attrs[i+1]))
	}
	fmt.Fprintf(vt.w, ">\n")
	vt.indent++
}

func (vt *vtkTag) close(name string) {
	vt.indent--
	fmt.Fprintf(vt.w, "%s</%s>\n", strings.Repeat("  ", vt.indent), name)
}

func escapeAttr(val string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(val))
	return buf.String()
}

func (vw *VTKWriter) Write(w io.Writer) (err error) {
	var (
		m  = vw.mesh
		bw = bufio.NewWriter(w)
		vt = &vtkTag{w: bw}
	)
	vt.open("VTKFile", "type", "UnstructuredGrid", "version", "0.1")
	vt.open("UnstructuredGrid")
	vt.open("Piece",
		"NumberOfPoints", fmt.Sprint(m.NumVertices()),
		"NumberOfCells", fmt.Sprint(m.NumElements()))

	vt.open("Points")
	vt.open("DataArray", "NumberOfComponents", "3", "type", "Float32", "format", "ascii")
	for _, v := range m.Verts {
		fmt.Fprintf(bw, "%g %g 0.0\n", float32(v.X[0]), float32(v.X[1]))
	}
	vt.close("DataArray")
	vt.close("Points")

	vt.open("Cells")
	vt.open("DataArray", "Name", "connectivity", "type", "Int32", "format", "ascii")
	for _, el := range m.Elems {
		fmt.Fprintf(bw, "%d %d %d\n", el.Verts[0], el.Verts[1], el.Verts[2])
	}
	vt.close("DataArray")
	vt.open("DataArray", "Name", "offsets", "type", "Int32", "format", "ascii")
	for k := range m.Elems {
		fmt.Fprintf(bw, "%d\n", 3*(k+1))
	}
	vt.close("DataArray")
	vt.open("DataArray", "Name", "types", "type", "UInt8", "format", "ascii")
	for range m.Elems {
		fmt.Fprintf(bw, "%d\n", vtkTriangle)
	}
	vt.close("DataArray")
	vt.close("Cells")

	if len(vw.names) > 0 {
		vt.open("PointData", "Scalars", vw.names[0])
	} else {
		vt.open("PointData")
	}
	for _, name := range vw.names {
		vt.open("DataArray", "Name", name, "type", "Float32", "format", "ascii")
		for _, f := range vw.fields[name] {
			fmt.Fprintf(bw, "%g\n", float32(f))
		}
		vt.close("DataArray")
	}
	vt.close("PointData")
	vt.open("CellData")
	vt.close("CellData")

	vt.close("Piece")
	vt.close("UnstructuredGrid")
	vt.close("VTKFile")
	return bw.Flush()
}

// WriteFile writes to fileName, gzip compressed when the name ends in .gz
func (vw *VTKWriter) WriteFile(fileName string) (err error) {
	var (
		file *os.File
		w    io.Writer
		gz   *gzip.Writer
	)
	if file, err = os.Create(fileName); err != nil {
		return errors.Wrap(err, "unable to create VTK file")
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	w = file
	if strings.HasSuffix(fileName, ".gz") {
		gz = gzip.NewWriter(file)
		w = gz
	}
	if err = vw.Write(w); err != nil {
		return errors.Wrapf(err, "writing %s", fileName)
	}
	if gz != nil {
		err = gz.Close()
	}
	return
}
