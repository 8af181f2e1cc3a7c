// Package navigation implements static-obstacle context steering for
// enemy AI and bilinear heightmap terrain sampling.
package navigation

import (
	"math"

	"github.com/embervale/coreserver/internal/model"
)

// Circle is a static circular obstacle in the XZ plane.
type Circle struct {
	Center model.Vec3 // Y ignored
	Radius float32
}

// Box is a static axis-aligned box obstacle in the XZ plane.
type Box struct {
	Min model.Vec3 // Y ignored
	Max model.Vec3
}

// Obstacle is the tagged union of static obstacle shapes a zone can hold.
type Obstacle struct {
	IsBox  bool
	Circle Circle
	Box    Box
}

// PenetrationXZ returns how far point (x,z) lies inside the obstacle
// once expanded by margin, in meters. A non-positive result means the
// point is outside (or exactly on) the expanded obstacle.
func (o Obstacle) PenetrationXZ(x, z, margin float32) float32 {
	if o.IsBox {
		return boxPenetration(o.Box, x, z, margin)
	}
	return circlePenetration(o.Circle, x, z, margin)
}

func circlePenetration(c Circle, x, z, margin float32) float32 {
	dx := x - c.Center.X
	dz := z - c.Center.Z
	dist := sqrt32(dx*dx + dz*dz)
	return (c.Radius + margin) - dist
}

func boxPenetration(b Box, x, z, margin float32) float32 {
	minX, maxX := b.Min.X-margin, b.Max.X+margin
	minZ, maxZ := b.Min.Z-margin, b.Max.Z+margin
	if x < minX || x > maxX || z < minZ || z > maxZ {
		return -1
	}
	// Penetration depth = distance to the nearest expanded edge.
	dLeft := x - minX
	dRight := maxX - x
	dTop := z - minZ
	dBottom := maxZ - z
	return minOf(dLeft, dRight, dTop, dBottom)
}

func minOf(vals ...float32) float32 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
