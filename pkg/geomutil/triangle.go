// Package geomutil is a standalone 2D geometry helper, unrelated to route
// parsing: it answers whether two triangles collide. It's carried forward
// because the system this repository is modeled on ships one, not because
// any parser component calls it — see §12.
package geomutil

// Point2D is a bare 2D coordinate, independent of the geographic Point
// type in pkg/geo since this helper operates on planar triangles, not
// positions on a sphere.
type Point2D struct {
	X, Y float64
}

// Triangle is three vertices, expected to be wound anti-clockwise.
type Triangle struct {
	A, B, C Point2D
}

// det2D is twice the signed area of the triangle (p1, p2, p3); its sign
// gives the winding direction.
func det2D(p1, p2, p3 Point2D) float64 {
	return p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y)
}

// normalizeWinding returns t with vertices reordered to be anti-clockwise,
// swapping B and C if the triangle is wound clockwise.
func normalizeWinding(t Triangle) Triangle {
	if det2D(t.A, t.B, t.C) < 0 {
		t.B, t.C = t.C, t.B
	}
	return t
}

func boundaryCollides(p1, p2, p3 Point2D, eps float64) bool {
	return det2D(p1, p2, p3) < eps
}

func boundaryDoesNotCollide(p1, p2, p3 Point2D, eps float64) bool {
	return det2D(p1, p2, p3) <= eps
}

// TrianglesIntersect reports whether two triangles collide, using the
// separating-axis test over each triangle's three edges: if every vertex
// of the other triangle lies strictly on the external side of an edge,
// the triangles do not collide. eps is a tolerance on the separating
// determinant; onBoundary controls whether touching edges/vertices count
// as a collision.
func TrianglesIntersect(t1, t2 Triangle, eps float64, onBoundary bool) bool {
	t1 = normalizeWinding(t1)
	t2 = normalizeWinding(t2)

	chkEdge := boundaryDoesNotCollide
	if onBoundary {
		chkEdge = boundaryCollides
	}

	e1 := [3][2]Point2D{{t1.A, t1.B}, {t1.B, t1.C}, {t1.C, t1.A}}
	other1 := [3]Point2D{t2.A, t2.B, t2.C}
	for _, e := range e1 {
		if chkEdge(e[0], e[1], other1[0], eps) &&
			chkEdge(e[0], e[1], other1[1], eps) &&
			chkEdge(e[0], e[1], other1[2], eps) {
			return false
		}
	}

	e2 := [3][2]Point2D{{t2.A, t2.B}, {t2.B, t2.C}, {t2.C, t2.A}}
	other2 := [3]Point2D{t1.A, t1.B, t1.C}
	for _, e := range e2 {
		if chkEdge(e[0], e[1], other2[0], eps) &&
			chkEdge(e[0], e[1], other2[1], eps) &&
			chkEdge(e[0], e[1], other2[2], eps) {
			return false
		}
	}

	return true
}
