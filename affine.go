package arbor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Affine2D is a 2D affine transform stored as a 3x3 homogeneous matrix.
//
// The matrix is column-major and multiplies column vectors (p' = M * p):
//
//	| a  c  tx |   column 0 (a, b):   image of the X axis ("right")
//	| b  d  ty |   column 1 (c, d):   image of the Y axis ("forward")
//	| 0  0   1 |   column 2 (tx, ty): translation
//
// The zero value is the all-zero matrix, not the identity. Use [Identity].
type Affine2D struct {
	m mgl64.Mat3
}

// singularEpsilon bounds the determinant, relative to the squared magnitude
// of the linear part, below which a transform is treated as non-invertible.
const singularEpsilon = 1e-12

// Identity returns the identity transform.
func Identity() Affine2D {
	return Affine2D{mgl64.Ident3()}
}

// Rotation returns a rotation by the given angle in radians. With Y pointing
// down (screen space) a positive angle turns clockwise on screen.
func Rotation(radians float64) Affine2D {
	return Affine2D{mgl64.HomogRotate2D(radians)}
}

// Scaling returns a non-uniform scale. Zero factors are legal and collapse
// the corresponding axis.
func Scaling(sx, sy float64) Affine2D {
	return Affine2D{mgl64.Scale2D(sx, sy)}
}

// Translation returns a translation by (tx, ty).
func Translation(tx, ty float64) Affine2D {
	return Affine2D{mgl64.Translate2D(tx, ty)}
}

// Compose returns a * b: the transform that applies b first, then a.
//
//	Compose(a, b).TransformPoint(p) == a.TransformPoint(b.TransformPoint(p))
//
// A node's global transform is Compose(parent.Global(), node.Local()).
func Compose(a, b Affine2D) Affine2D {
	return Affine2D{a.m.Mul3(b.m)}
}

// Mul is the method form of [Compose]: it applies o first, then a.
func (a Affine2D) Mul(o Affine2D) Affine2D {
	return Compose(a, o)
}

// TransformPoint applies the full transform, including translation, to p.
func (a Affine2D) TransformPoint(p Vec2) Vec2 {
	v := a.m.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return Vec2{v[0], v[1]}
}

// TransformVector applies only the linear part (rotation, scale) to v.
func (a Affine2D) TransformVector(v Vec2) Vec2 {
	r := a.m.Mul3x1(mgl64.Vec3{v.X, v.Y, 0})
	return Vec2{r[0], r[1]}
}

// Inverse returns the inverse transform. ok is false, and the identity is
// returned, when the transform is singular (for example a zero scale).
func (a Affine2D) Inverse() (inv Affine2D, ok bool) {
	if a.singular() {
		return Identity(), false
	}
	return Affine2D{a.m.Inv()}, true
}

// singular reports whether the linear part is degenerate. The threshold
// scales with the matrix so uniformly tiny scales stay invertible.
func (a Affine2D) singular() bool {
	det := a.m[0]*a.m[4] - a.m[3]*a.m[1]
	norm := math.Max(math.Max(math.Abs(a.m[0]), math.Abs(a.m[1])),
		math.Max(math.Abs(a.m[3]), math.Abs(a.m[4])))
	return math.Abs(det) <= singularEpsilon*norm*norm
}

// At returns the element at the given row and column.
func (a Affine2D) At(row, col int) float64 {
	return a.m.At(row, col)
}

// Column returns the first two components of column i (0, 1 or 2).
// Column 0 is the X axis, column 1 the Y axis, column 2 the translation.
func (a Affine2D) Column(i int) Vec2 {
	c := a.m.Col(i)
	return Vec2{c[0], c[1]}
}

// Translation returns the translation component.
func (a Affine2D) Translation() Vec2 {
	return a.Column(2)
}

// Rotation returns the rotation angle of the X axis in radians, in (-π, π].
func (a Affine2D) Rotation() float64 {
	return math.Atan2(a.m[1], a.m[0])
}

// ScaleFactors returns the lengths of the transformed X and Y axes. The Y
// factor is negative when the transform mirrors.
func (a Affine2D) ScaleFactors() (sx, sy float64) {
	sx = math.Hypot(a.m[0], a.m[1])
	sy = math.Hypot(a.m[3], a.m[4])
	if a.m[0]*a.m[4]-a.m[3]*a.m[1] < 0 {
		sy = -sy
	}
	return sx, sy
}

// ApproxEqual reports whether every element of a and o differs by at most eps.
func (a Affine2D) ApproxEqual(o Affine2D, eps float64) bool {
	return a.m.ApproxEqualThreshold(o.m, eps)
}

// Flat returns the matrix as a column-major float buffer, the layout the
// renderer consumes.
func (a Affine2D) Flat() [9]float32 {
	var f [9]float32
	for i, v := range a.m {
		f[i] = float32(v)
	}
	return f
}

// FromFlat builds a transform from a column-major float buffer.
func FromFlat(f [9]float32) Affine2D {
	var m mgl64.Mat3
	for i, v := range f {
		m[i] = float64(v)
	}
	return Affine2D{m}
}

// GeoM converts the transform to an ebiten.GeoM. The projective row is
// dropped; it is always (0, 0, 1) for transforms built by this package.
func (a Affine2D) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			g.SetElement(row, col, a.m.At(row, col))
		}
	}
	return g
}

// withTranslation returns a copy of a with its translation replaced.
func (a Affine2D) withTranslation(tx, ty float64) Affine2D {
	a.m.SetCol(2, mgl64.Vec3{tx, ty, 1})
	return a
}

// withLinear returns lin with a's translation.
func (a Affine2D) withLinear(lin Affine2D) Affine2D {
	t := a.Translation()
	return lin.withTranslation(t.X, t.Y)
}

func (a Affine2D) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]",
		a.m.At(0, 0), a.m.At(0, 1), a.m.At(0, 2),
		a.m.At(1, 0), a.m.At(1, 1), a.m.At(1, 2))
}
