// Package geom provides the geometric predicates used by ball pivoting:
// ball-center placement, face normals, normal compatibility, coplanarity,
// and segment-to-segment distance. All functions work on raw positions
// and normals; none of them know about the topology store.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// BallCenter computes the center of a sphere with the given radius that
// touches the three points p1, p2, p3 on the side consistent with the
// average of their normals n1, n2, n3. The second return value is false
// when the points are (near) collinear or the circumradius of the
// triangle exceeds the ball radius.
func BallCenter(p1, p2, p3, n1, n2, n3 v3.Vec, radius float64) (v3.Vec, bool) {
	c := p2.Sub(p1).Length2()
	b := p1.Sub(p3).Length2()
	a := p3.Sub(p2).Length2()

	// Barycentric weights of the circumcenter.
	alpha := a * (b + c - a)
	beta := b * (a + c - b)
	gamma := c * (a + b - c)
	abg := alpha + beta + gamma
	if abg < 1e-16 {
		return v3.Vec{}, false
	}
	alpha /= abg
	beta /= abg
	gamma /= abg

	circCenter := p1.MulScalar(alpha).Add(p2.MulScalar(beta)).Add(p3.MulScalar(gamma))

	// Circumradius² via Heron's formula on the squared edge lengths.
	circRadius2 := a * b * c
	a = math.Sqrt(a)
	b = math.Sqrt(b)
	c = math.Sqrt(c)
	circRadius2 /= (a + b + c) * (b + c - a) * (c + a - b) * (a + b - c)

	height := radius*radius - circRadius2
	if height < 0 {
		return v3.Vec{}, false
	}

	trNorm := p2.Sub(p1).Cross(p3.Sub(p1))
	trNorm = trNorm.DivScalar(trNorm.Length())
	ptNorm := n1.Add(n2).Add(n3)
	ptNorm = ptNorm.DivScalar(ptNorm.Length())
	if trNorm.Dot(ptNorm) < 0 {
		trNorm = trNorm.Neg()
	}

	return circCenter.Add(trNorm.MulScalar(math.Sqrt(height))), true
}

// FaceNormal returns the unit normal of the triangle (v0, v1, v2), or the
// zero vector when the triangle is degenerate.
func FaceNormal(v0, v1, v2 v3.Vec) v3.Vec {
	normal := v1.Sub(v0).Cross(v2.Sub(v0))
	if length := normal.Length(); length > 0 {
		normal = normal.DivScalar(length)
	}
	return normal
}

// Compatible reports whether a triangle over the three points can be
// oriented consistently with all three vertex normals. The face normal is
// flipped toward n0 first; the triangle is compatible when the flipped
// normal does not oppose any vertex normal.
func Compatible(p0, p1, p2, n0, n1, n2 v3.Vec) bool {
	normal := FaceNormal(p0, p1, p2)
	if normal.Dot(n0) < -1e-16 {
		normal = normal.Neg()
	}
	return normal.Dot(n0) > -1e-16 &&
		normal.Dot(n1) > -1e-16 &&
		normal.Dot(n2) > -1e-16
}

// PointsCoplanar reports whether the four points lie on a single plane.
func PointsCoplanar(p0, p1, p2, p3 v3.Vec) bool {
	return p1.Sub(p0).Dot(p2.Sub(p0).Cross(p3.Sub(p0))) == 0
}

// SegmentsMinDistance returns the minimum distance between the segments
// (p0, p1) and (q0, q1). Degenerate segments are treated as points.
func SegmentsMinDistance(p0, p1, q0, q1 v3.Vec) float64 {
	d1 := p1.Sub(p0)
	d2 := q1.Sub(q0)
	r := p0.Sub(q0)
	a := d1.Length2()
	e := d2.Length2()
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a == 0 && e == 0:
		return r.Length()
	case a == 0:
		s = 0
		t = clamp(f/e, 0, 1)
	case e == 0:
		t = 0
		s = clamp(-d1.Dot(r)/a, 0, 1)
	default:
		c := d1.Dot(r)
		b := d1.Dot(d2)
		denom := a*e - b*b
		if denom != 0 {
			s = clamp((b*f-c*e)/denom, 0, 1)
		}
		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = clamp(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = clamp((b-c)/a, 0, 1)
		}
	}

	cp := p0.Add(d1.MulScalar(s))
	cq := q0.Add(d2.MulScalar(t))
	return cp.Sub(cq).Length()
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
