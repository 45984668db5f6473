package geometry2D

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry(t *testing.T) {
	square := NewPolygon([]Point{*NewPoint(0, 0), *NewPoint(1, 0), *NewPoint(1, 1), *NewPoint(0, 1)})
	assert.Len(t, square.Geometry, 5)
	assert.InDelta(t, 1., square.Area(), 1.e-12)
	assert.True(t, square.PointInside(*NewPoint(0.5, 0.5)))
	assert.False(t, square.PointInside(*NewPoint(1.5, 0.5)))

	ngon := NewNgon(*NewPoint(1, 1), 2, 4)
	require.Len(t, ngon, 4)
	assert.InDelta(t, 3., ngon[0].X[0], 1.e-12)
	assert.InDelta(t, 3., ngon[1].X[1], 1.e-12)
	// Counterclockwise, so positive area
	assert.InDelta(t, 8., NewPolygon(ngon).Area(), 1.e-12)

	bb := NewBoundingBox(square.Geometry)
	assert.Equal(t, [2]float64{0.5, 0.5}, bb.Centroid().X)
	big := bb.Scale(2)
	assert.Equal(t, [2]float64{-0.5, -0.5}, big.XMin)
	assert.Equal(t, [2]float64{1.5, 1.5}, big.XMax)
	bb.Grow(&BoundingBox{XMin: [2]float64{-1, 0}, XMax: [2]float64{0, 3}})
	assert.Equal(t, [2]float64{-1, 0}, bb.XMin)
	assert.Equal(t, [2]float64{1, 3}, bb.XMax)
	assert.Nil(t, NewBoundingBox(nil))
	assert.Nil(t, NewPolygon(nil))
	tri := NewPolygon([]Point{*NewPoint(0, 0), *NewPoint(1, 0), *NewPoint(0, 1)})
	assert.Len(t, tri.Geometry, 4)
}

func TestPSLG(t *testing.T) {
	p := NewPSLG()
	a, b := *NewPoint(0, 0), *NewPoint(1, 0)
	p.AddEdge(a, b, 4)
	p.AddEdge(b, a, 5)
	assert.Len(t, p.Verts, 2)
	assert.Equal(t, [][2]int{{0, 1}, {1, 0}}, p.Edges)
	assert.Equal(t, []int{4, 5}, p.Labels)

	p = TwoHoles()
	assert.Len(t, p.Verts, 4+45+45)
	assert.Len(t, p.Edges, 4+45+45)
	assert.Len(t, p.Holes, 2)
	assert.Len(t, p.Loops, 3)
	assert.NoError(t, p.CheckHoles())
	bb := p.BoundingBox()
	assert.Equal(t, [2]float64{0, 0}, bb.XMin)
	assert.Equal(t, [2]float64{2, 1}, bb.XMax)

	p = OneHole()
	assert.Len(t, p.Verts, 8)
	assert.Len(t, p.Edges, 8)
	assert.Equal(t, 2, p.Labels[7])
	assert.NoError(t, p.CheckHoles())
	p.AddHole(*NewPoint(5, 5))
	assert.Error(t, p.CheckHoles())

	p = NewPSLG()
	require.NoError(t, p.MakeCircle(*NewPoint(0, 0), 1, 1))
	assert.Len(t, p.Verts, 180)

	// Degenerate loops are rejected and leave the graph untouched
	p = NewPSLG()
	assert.NotPanics(t, func() { assert.Error(t, p.MakeClosedPoly(nil, 1)) })
	assert.Error(t, p.MakeClosedPoly([]Point{a, b}, 1))
	assert.Error(t, p.MakeCircle(*NewPoint(0, 0), 1, 1, 2))
	assert.Empty(t, p.Verts)
	assert.Empty(t, p.Loops)
}

func TestPolyRoundTrip(t *testing.T) {
	for _, p := range []*PSLG{TwoHoles(), OneHole()} {
		var buf bytes.Buffer
		require.NoError(t, p.Write(&buf))
		q, err := ReadPoly(&buf, "roundtrip.poly")
		require.NoError(t, err)
		assert.Equal(t, len(p.Verts), len(q.Verts))
		assert.Equal(t, len(p.Edges), len(q.Edges))
		assert.Equal(t, len(p.Holes), len(q.Holes))
		assert.Equal(t, p.Edges, q.Edges)
		assert.Equal(t, p.Labels, q.Labels)
		assert.Equal(t, p.Verts, q.Verts)
	}
	{
		var buf bytes.Buffer
		require.NoError(t, OneHole().Write(&buf))
		lines := strings.Split(buf.String(), "\n")
		assert.Equal(t, "8 2 0 0", lines[0])
		assert.Equal(t, "1 2 0", lines[2])
		assert.Equal(t, "8 1", lines[9])
		assert.Equal(t, "0 0 1 1", lines[10])
		assert.Equal(t, "1", lines[18])
		assert.Equal(t, "0 1 1", lines[19])
	}
	{
		fileName := filepath.Join(t.TempDir(), "oneHole.poly")
		require.NoError(t, OneHole().WriteFile(fileName))
		file, err := os.Open(fileName)
		require.NoError(t, err)
		defer file.Close()
		q, err := ReadPoly(file, fileName)
		require.NoError(t, err)
		assert.Len(t, q.Verts, 8)
	}
}

func TestReadPoly(t *testing.T) {
	{ // One based, no markers and no hole section
		input := `# triangle
3 2 0 0
1 0 0
2 1 0
3 0 1
3 0
1 1 2
2 2 3
3 3 1
`
		p, err := ReadPoly(strings.NewReader(input), "tri.poly")
		require.NoError(t, err)
		assert.Len(t, p.Verts, 3)
		assert.Equal(t, [2]int{2, 0}, p.Edges[2])
		assert.Equal(t, []int{0, 0, 0}, p.Labels)
		assert.Len(t, p.Holes, 0)
	}
	{
		_, err := ReadPoly(strings.NewReader("2 2 0 0\n0 0 0\n1 1 0\n1 1\n0 0 5 1\n"), "bad.poly")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.poly:5")
	}
	{
		_, err := ReadPoly(strings.NewReader("0 2 0 1\n"), "nodes.poly")
		assert.Error(t, err)
	}
	{
		_, err := ReadPoly(strings.NewReader("3 2 0 0\n0 0 0\n"), "short.poly")
		assert.Error(t, err)
	}
}
