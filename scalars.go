package blitzar

import (
	"encoding/binary"
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

func innerProduct(a []*ristretto.Scalar, b []*ristretto.Scalar) *ristretto.Scalar {
	if len(a) != len(b) {
		panic(fmt.Sprintf("innerProduct lengths of vectors do not match %d, %d", len(a), len(b)))
	}
	var out ristretto.Scalar
	out.SetZero()
	for i := range a {
		var t ristretto.Scalar
		t.Mul(a[i], b[i])
		out.Add(&out, &t)
	}
	return &out
}

// mulAdd sets r = a*b + c.
func mulAdd(r, a, b, c *ristretto.Scalar) *ristretto.Scalar {
	var t ristretto.Scalar
	t.Mul(a, b)
	return r.Add(&t, c)
}

func multiscalarMul(scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point {
	var p ristretto.Point
	p.SetZero()
	for i := range scalars {
		var t ristretto.Point
		t.ScalarMult(points[i], scalars[i])
		p.Add(&p, &t)
	}
	return &p
}

func uint64ToScalar(i uint64) *ristretto.Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:], i)
	var s ristretto.Scalar
	return s.SetBytes(&buf)
}

func copyScalars(src []*ristretto.Scalar) []*ristretto.Scalar {
	out := make([]*ristretto.Scalar, len(src))
	for i := range src {
		var s ristretto.Scalar
		out[i] = s.Add(&s, src[i])
	}
	return out
}

func copyPoints(src []*ristretto.Point) []*ristretto.Point {
	out := make([]*ristretto.Point, len(src))
	for i := range src {
		var p ristretto.Point
		p.SetZero()
		out[i] = p.Add(&p, src[i])
	}
	return out
}
