package roi

import "fmt"

// Plane identifies the 2D slice of a multi-dimensional image that a ROI is
// attached to. Two ROIs on different planes never interact: the combination
// engine rejects cross-plane operations outright.
type Plane struct {
	// C is the channel index. A value of -1 means the ROI applies to all
	// channels, which is the common case for annotations.
	C int

	// Z is the z-slice index within an image stack.
	Z int

	// T is the timepoint index within a time series.
	T int
}

// DefaultPlane returns the plane used for ROIs on 2D images: first z-slice,
// first timepoint, all channels.
func DefaultPlane() Plane {
	return Plane{C: -1, Z: 0, T: 0}
}

// PlaneWithChannel returns a plane restricted to a single channel.
func PlaneWithChannel(c, z, t int) Plane {
	return Plane{C: c, Z: z, T: t}
}

func (p Plane) String() string {
	return fmt.Sprintf("plane(z=%d, t=%d, c=%d)", p.Z, p.T, p.C)
}
