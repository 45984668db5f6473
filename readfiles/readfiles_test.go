package readfiles

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomesh/mesh2D"
	"github.com/notargets/gomesh/types"
)

func writeTriangleFiles(t *testing.T, node, edge, ele string) (basename string) {
	basename = filepath.Join(t.TempDir(), "triExample")
	for ext, data := range map[string]string{".node": node, ".edge": edge, ".ele": ele} {
		require.NoError(t, os.WriteFile(basename+ext, []byte(data), 0644))
	}
	return
}

func TestReadTriangleMesh(t *testing.T) {
	{ // Zero based, edge markers only
		basename := writeTriangleFiles(t, `
    4 2 0 0
    0 0 0
    1 1 0
    2 1 1
    3 0 1
    `, `
    5 1
    0 0 1 1
    1 1 2 2
    2 2 3 1
    3 0 3 2
    4 0 2 0
    `, `
    2 3 0
    0 0 1 2
    1 0 2 3
    `)
		m, err := ReadTriangleMesh(basename)
		require.NoError(t, err)
		assert.Equal(t, 4, m.NumVertices())
		assert.Equal(t, 5, m.NumEdges())
		assert.Equal(t, 2, m.NumElements())
		assert.NoError(t, m.Validate())
		assert.Equal(t, [2]float64{1, 1}, m.Verts[2].X)
		label, err := m.EdgeLabelOf(3, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, label)
		assert.Equal(t, [3]int{0, 2, 3}, m.Elems[1].Verts)
	}
	{ // One based with comments, vertex markers, unlabeled edges and region attributes
		basename := writeTriangleFiles(t, `# Generated by hand
4 2 1 1
1 0 0 0.5 7
2 1 0 0.5 7

3 1 1 0.5 8 # corner
4 0 1 0.5 8
`, `5 0
1 1 2
2 2 3
3 3 4
4 4 1
5 1 3
`, `2 3 1
1 1 2 3 1.0
2 1 3 4 2.0
`)
		m, err := ReadTriangleMesh(basename)
		require.NoError(t, err)
		assert.Equal(t, 4, m.NumVertices())
		assert.Equal(t, 7, m.Verts[0].Label)
		assert.Equal(t, 8, m.Verts[3].Label)
		assert.Equal(t, [2]int{0, 1}, m.Edges[0].Verts)
		for _, e := range m.Edges {
			assert.Equal(t, 0, e.Label)
		}
		assert.Equal(t, [3]int{0, 1, 2}, m.Elems[0].Verts)
		assert.Equal(t, 1, m.Elems[0].Label)
		assert.Equal(t, 2, m.Elems[1].Label)
		assert.NoError(t, m.Validate())
	}
}

func TestReadTriangleMeshErrors(t *testing.T) {
	_, err := ReadTriangleMesh(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	basename := writeTriangleFiles(t, "3 2 0 0\n0 0 0\n1 1 x\n2 0 1\n", "0 0\n", "0 3 0\n")
	_, err = ReadTriangleMesh(basename)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "triExample.node:3")

	basename = writeTriangleFiles(t, "3 2 0 0\n0 0 0\n1 1 0\n2 0 1\n", "0 0\n", "1 3 0\n0 0 1 9\n")
	_, err = ReadTriangleMesh(basename)
	assert.True(t, errors.Is(err, types.ErrVertexOutOfRange))

	basename = writeTriangleFiles(t, "3 2 0 0\n0 0 0\n1 1 0\n2 0 1\n", "2 0\n0 0 1\n", "1 3 0\n0 0 1 2\n")
	_, err = ReadTriangleMesh(basename)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "early end of file")

	basename = writeTriangleFiles(t, "1 2 0 0\n5 0 0\n", "0 0\n", "0 3 0\n")
	_, err = ReadTriangleMesh(basename)
	assert.Error(t, err)

	basename = writeTriangleFiles(t, "3 2 0 0\n0 0 0\n1 1 0\n2 0 1\n", "0 0\n", "1 6 0\n0 0 1 2 3 4 5\n")
	_, err = ReadTriangleMesh(basename)
	assert.Error(t, err)
}

func TestVTKWriter(t *testing.T) {
	m := mesh2D.TwoElemSquare()
	vw := NewVTKWriter(m)
	require.NoError(t, vw.AddField("fEx", []float64{0, 1, 2, 3}))
	require.NoError(t, vw.AddField("fUp", []float64{0.5, 0.5, 0.5, 0.5}))
	require.NoError(t, vw.AddField("fEx", []float64{3, 2, 1, 0}))
	assert.Error(t, vw.AddField("short", []float64{1}))

	var buf bytes.Buffer
	require.NoError(t, vw.Write(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<VTKFile type="UnstructuredGrid" version="0.1">`))
	assert.Contains(t, out, `<Piece NumberOfPoints="4" NumberOfCells="2">`)
	assert.Contains(t, out, "1 1 0.0\n")
	assert.Contains(t, out, "0 2 3\n")
	assert.Contains(t, out, `<PointData Scalars="fEx">`)
	assert.Contains(t, out, "<CellData>")
	iEx := strings.Index(out, `Name="fEx"`)
	iUp := strings.Index(out, `Name="fUp"`)
	assert.True(t, iEx > 0 && iUp > iEx)
	assert.Equal(t, 1, strings.Count(out, `Name="fEx"`))

	var (
		dec     = xml.NewDecoder(strings.NewReader(out))
		arrays  int
		offsets string
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "DataArray" {
			arrays++
			for _, a := range se.Attr {
				if a.Name.Local == "Name" && a.Value == "offsets" {
					cd, err := dec.Token()
					require.NoError(t, err)
					offsets = strings.Join(strings.Fields(string(cd.(xml.CharData))), " ")
				}
			}
		}
	}
	// Points, three cell arrays and two fields
	assert.Equal(t, 6, arrays)
	assert.Equal(t, "3 6", offsets)

	fileName := filepath.Join(t.TempDir(), "refine.0.vtu.gz")
	require.NoError(t, vw.WriteFile(fileName))
	file, err := os.Open(fileName)
	require.NoError(t, err)
	defer file.Close()
	gz, err := gzip.NewReader(file)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))

	fileName = filepath.Join(t.TempDir(), "refine.0.vtu")
	require.NoError(t, vw.WriteFile(fileName))
	data, err = os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}
