package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/notargets/gomesh/geometry2D"
	"github.com/notargets/gomesh/mesh1D"
	"github.com/notargets/gomesh/mesh2D"
)

/*
Palette colors edges by label, cycling when labels run past the end. Label 0 is drawn in white to
stand out on the chart's black background
*/
var Palette = []color.RGBA{
	{R: 255, G: 255, B: 255, A: 255}, // white
	{R: 50, G: 0, B: 255, A: 255},    // blue
	{R: 255, G: 0, B: 50, A: 255},    // red
	{R: 46, G: 139, B: 87, A: 255},   // seagreen
	{R: 255, G: 69, B: 0, A: 255},    // orangered
	{R: 30, G: 144, B: 255, A: 255},  // dodgerblue
	{R: 34, G: 139, B: 34, A: 255},   // forestgreen
}

var LightGray = color.RGBA{R: 211, G: 211, B: 211, A: 255}

func LabelColor(label int) color.RGBA {
	n := len(Palette)
	return Palette[((label%n)+n)%n]
}

// DistinctColors steps the hue by the golden angle so neighboring indices get well separated colors
func DistinctColors(n int) (colors []color.RGBA) {
	var (
		golden = (math.Sqrt(5) - 1) / 2
		hue    float64
	)
	colors = make([]color.RGBA, n)
	for i := range colors {
		r, g, b := colorful.Hsv(360*hue, 0.75, 0.95).RGB255()
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
		hue = math.Mod(hue+golden, 1)
	}
	return
}

// Scene collects colored line segments, stored as x1,y1,x2,y2 runs per color, and the box containing them
type Scene struct {
	Lines map[color.RGBA][]float32
	Box   *geometry2D.BoundingBox
}

func NewScene() (sc *Scene) {
	sc = &Scene{
		Lines: make(map[color.RGBA][]float32),
	}
	return
}

func (sc *Scene) grow(x, y float64) {
	pt := geometry2D.Point{X: [2]float64{x, y}}
	if sc.Box == nil {
		sc.Box = geometry2D.NewBoundingBox([]geometry2D.Point{pt})
		return
	}
	sc.Box.Grow(&geometry2D.BoundingBox{XMin: pt.X, XMax: pt.X})
}

func (sc *Scene) AddLine(x1, y1, x2, y2 float64, col color.RGBA) {
	sc.Lines[col] = append(sc.Lines[col],
		float32(x1), float32(y1),
		float32(x2), float32(y2),
	)
	sc.grow(x1, y1)
	sc.grow(x2, y2)
}

func (sc *Scene) AddCrossHairs(x, y, size float64, col color.RGBA) {
	sc.AddLine(x-size, y, x+size, y, col)
	sc.AddLine(x, y-size, x, y+size, col)
}

// AddMesh draws the registered edges colored by label, meshes without edges get their element outlines
func (sc *Scene) AddMesh(m *mesh2D.Mesh) {
	if m.NumEdges() == 0 {
		for k := range m.Elems {
			for _, key := range m.ElementEdges(k) {
				ev := key.GetVertices(false)
				sc.addSegment(m, ev, LabelColor(0))
			}
		}
		return
	}
	for _, e := range m.Edges {
		sc.addSegment(m, e.Verts, LabelColor(e.Label))
	}
}

func (sc *Scene) addSegment(m *mesh2D.Mesh, ev [2]int, col color.RGBA) {
	p0, p1 := m.Verts[ev[0]].X, m.Verts[ev[1]].X
	sc.AddLine(p0[0], p0[1], p1[0], p1[1], col)
}

// AddLineMesh lays a 1D mesh along y = 0, segments colored by label with a tick at each vertex
func (sc *Scene) AddLineMesh(m *mesh1D.Mesh) {
	var xMin, xMax = math.Inf(1), math.Inf(-1)
	for _, v := range m.Verts {
		xMin, xMax = math.Min(xMin, v.X), math.Max(xMax, v.X)
	}
	tick := 0.01 * (xMax - xMin)
	for _, el := range m.Elems {
		x0, x1 := m.Verts[el.Verts[0]].X, m.Verts[el.Verts[1]].X
		sc.AddLine(x0, 0, x1, 0, LabelColor(el.Label))
	}
	for _, v := range m.Verts {
		sc.AddLine(v.X, -tick, v.X, tick, LabelColor(v.Label))
	}
}

/*
AddAggregates marks every vertex with a cross hair in the color of the aggregate containing it,
vertices in no aggregate are light gray. A later aggregate wins when the sets overlap
*/
func (sc *Scene) AddAggregates(m *mesh2D.Mesh, aggregates []*roaring.Bitmap, colors []color.RGBA) (err error) {
	if colors == nil {
		colors = DistinctColors(len(aggregates))
	}
	if len(colors) < len(aggregates) {
		err = fmt.Errorf("have %d colors for %d aggregates", len(colors), len(aggregates))
		return
	}
	bb := geometry2D.NewBoundingBox(vertexPoints(m))
	if bb == nil {
		return
	}
	size := 0.01 * math.Max(bb.XMax[0]-bb.XMin[0], bb.XMax[1]-bb.XMin[1])
	for i, v := range m.Verts {
		col := LightGray
		for j, agg := range aggregates {
			if agg.Contains(uint32(i)) {
				col = colors[j]
			}
		}
		sc.AddCrossHairs(v.X[0], v.X[1], size, col)
	}
	return
}

// Bounds returns the scene box enlarged by scale about its center, as chart coordinates
func (sc *Scene) Bounds(scale float64) (xMin, xMax, yMin, yMax float32) {
	if sc.Box == nil {
		return -1, 1, -1, 1
	}
	bb := sc.Box.Scale(scale)
	return float32(bb.XMin[0]), float32(bb.XMax[0]), float32(bb.XMin[1]), float32(bb.XMax[1])
}

// TriMeshArrays flattens vertex coordinates and element connectivity for a renderer
func TriMeshArrays(m *mesh2D.Mesh) (xy []float32, triVerts [][3]int64) {
	xy = make([]float32, 0, 2*m.NumVertices())
	for _, v := range m.Verts {
		xy = append(xy, float32(v.X[0]), float32(v.X[1]))
	}
	triVerts = make([][3]int64, m.NumElements())
	for k, el := range m.Elems {
		for i := 0; i < 3; i++ {
			triVerts[k][i] = int64(el.Verts[i])
		}
	}
	return
}

func vertexPoints(m *mesh2D.Mesh) (pts []geometry2D.Point) {
	pts = make([]geometry2D.Point, len(m.Verts))
	for i, v := range m.Verts {
		pts[i].X = v.X
	}
	return
}
