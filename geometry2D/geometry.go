package geometry2D

import (
	"math"
)

type Point struct {
	X [2]float64
}

func NewPoint(x, y float64) *Point {
	a := new(Point)
	a.X = [2]float64{x, y}
	return a
}

func (pt *Point) Plus(rhs *Point) (res *Point) {
	return &Point{X: [2]float64{
		pt.X[0] + rhs.X[0],
		pt.X[1] + rhs.X[1],
	}}
}
func (pt *Point) Equal(rhs Point) bool {
	return pt.X[0] == rhs.X[0] && pt.X[1] == rhs.X[1]
}

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(Geometry []Point) (Box *BoundingBox) {
	if len(Geometry) == 0 {
		return nil
	}
	Box = new(BoundingBox)
	Box.XMin[0], Box.XMin[1] = Geometry[0].X[0], Geometry[0].X[1]
	Box.XMax[0], Box.XMax[1] = Geometry[0].X[0], Geometry[0].X[1]
	for _, point := range Geometry {
		for i := 0; i < 2; i++ {
			if point.X[i] < Box.XMin[i] {
				Box.XMin[i] = point.X[i]
			}
			if point.X[i] > Box.XMax[i] {
				Box.XMax[i] = point.X[i]
			}
		}
	}
	return Box
}

func (bb *BoundingBox) Centroid() (centroid *Point) {
	return &Point{X: [2]float64{
		0.5 * (bb.XMax[0] + bb.XMin[0]),
		0.5 * (bb.XMax[1] + bb.XMin[1]),
	}}
}

// Scale grows or shrinks the box about its centroid
func (bb *BoundingBox) Scale(scale float64) (bbOut *BoundingBox) {
	var (
		centroid = bb.Centroid()
	)
	bbOut = new(BoundingBox)
	for i := 0; i < 2; i++ {
		bbOut.XMin[i] = scale*(bb.XMin[i]-centroid.X[i]) + centroid.X[i]
		bbOut.XMax[i] = scale*(bb.XMax[i]-centroid.X[i]) + centroid.X[i]
	}
	return bbOut
}

func (bb *BoundingBox) Grow(newBB *BoundingBox) {
	for i := 0; i < 2; i++ {
		bb.XMin[i] = math.Min(bb.XMin[i], newBB.XMin[i])
		bb.XMax[i] = math.Max(bb.XMax[i], newBB.XMax[i])
	}
}

func (bb *BoundingBox) PointInside(point *Point) (within bool) {
	for ii := 0; ii < 2; ii++ {
		if point.X[ii] > bb.XMax[ii] || point.X[ii] < bb.XMin[ii] {
			return false
		}
	}
	return true
}

// Polygon is a closed loop, the first point is repeated at the end
type Polygon struct {
	Box      *BoundingBox
	Geometry []Point
}

func NewPolygon(geom []Point) (poly *Polygon) {
	if len(geom) == 0 {
		return nil
	}
	/*
		Close off the polygon if needed
	*/
	if !geom[len(geom)-1].Equal(geom[0]) {
		geom = append(geom, geom[0])
	}
	poly = &Polygon{
		Box:      NewBoundingBox(geom),
		Geometry: geom,
	}
	return
}

// NewNgon places n points counterclockwise on a circle, starting on the positive x axis
func NewNgon(centroid Point, radius float64, n int) (geom []Point) {
	angleInc := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		angle := float64(i) * angleInc
		geom = append(geom,
			*centroid.Plus(&Point{X: [2]float64{
				radius * math.Cos(angle),
				radius * math.Sin(angle),
			}}))
	}
	return
}

// Area is signed, positive for counterclockwise loops
func (pg *Polygon) Area() (area float64) {
	/*
		Algorithm: Green's theorem in the plane
	*/
	for i := 0; i < len(pg.Geometry)-1; i++ {
		pt0 := pg.Geometry[i]
		pt1 := pg.Geometry[i+1]
		area += pt0.X[0]*pt1.X[1] - pt1.X[0]*pt0.X[1]
	}
	return 0.5 * area
}

func (pg *Polygon) PointInside(point Point) (inside bool) {
	if !pg.Box.PointInside(&point) {
		return false
	}
	/*
		Winding Number from http://geomalgorithms.com/a03-_inclusion.html#wn_PnPoly()
		if wn = 0, the point is outside
	*/
	isLeft := func(P0, P1, P2 Point) float64 {
		return (P1.X[0]-P0.X[0])*(P2.X[1]-P0.X[1]) -
			(P2.X[0]-P0.X[0])*(P1.X[1]-P0.X[1])
	}
	var wn int
	for i := 0; i < len(pg.Geometry)-1; i++ {
		pt0 := pg.Geometry[i]
		pt1 := pg.Geometry[i+1]
		if pt0.X[1] <= point.X[1] {
			if pt1.X[1] > point.X[1] {
				if isLeft(pt0, pt1, point) > 0 {
					wn++
				}
			}
		} else {
			if pt1.X[1] <= point.X[1] {
				if isLeft(pt0, pt1, point) < 0 {
					wn--
				}
			}
		}
	}
	return wn != 0
}
