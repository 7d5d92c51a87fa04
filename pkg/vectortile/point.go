package vectortile

// Point is implemented by both the 2D and 3D point types so that geometry
// decoding can be written once and driven uniformly by either dimension.
// On a 2D point, Z always reads 0 and SetZ/AddToZ are no-ops.
type Point interface {
	X() int32
	Y() int32
	Z() int64
	SetZ(z int64)
	AddToZ(dz int64)
}

// Point2D is a plain (x, y) tile-local coordinate.
type Point2D struct {
	Xc, Yc int32
}

func (p *Point2D) X() int32        { return p.Xc }
func (p *Point2D) Y() int32        { return p.Yc }
func (p *Point2D) Z() int64        { return 0 }
func (p *Point2D) SetZ(int64)      {}
func (p *Point2D) AddToZ(int64)    {}

// Point3D adds an elevation component. Geometry decoding stores the raw
// accumulated integer z; it is not passed through any Scaling.
type Point3D struct {
	Xc, Yc int32
	Zc     int64
}

func (p *Point3D) X() int32       { return p.Xc }
func (p *Point3D) Y() int32       { return p.Yc }
func (p *Point3D) Z() int64       { return p.Zc }
func (p *Point3D) SetZ(z int64)   { p.Zc = z }
func (p *Point3D) AddToZ(dz int64) { p.Zc += dz }

var (
	_ Point = (*Point2D)(nil)
	_ Point = (*Point3D)(nil)
)
