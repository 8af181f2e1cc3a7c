package navigation

import (
	"math"

	"github.com/embervale/coreserver/internal/model"
)

const (
	// EnemyRadius is the collision radius used for obstacle-penetration checks.
	EnemyRadius = 0.6
	// SteeringDirections is the number of candidate directions sampled
	// evenly around the circle.
	SteeringDirections = 16
	// SteeringLookahead is how far ahead (meters) each candidate ray is cast.
	SteeringLookahead = 3.0
	// ObstacleMargin is added to EnemyRadius when testing ray penetration.
	ObstacleMargin = 0.3
	// EnemySpeed is the enemy movement speed in meters/second.
	EnemySpeed = 3.0
)

// Steer chooses a movement direction from `from` toward `to`, avoiding
// obstacles via context steering: SteeringDirections candidate unit
// vectors are tested by casting a lookahead ray into each obstacle
// expanded by EnemyRadius+ObstacleMargin; a candidate whose ray end
// penetrates any obstacle is discarded, and the remaining candidate best
// aligned with the desired direction wins. Returns the chosen unit direction and
// true, or the zero vector and false if every direction is dangerous (the
// caller should not move that tick).
func Steer(from, to model.Vec3, obstacles []Obstacle) (model.Vec3, bool) {
	dx := to.X - from.X
	dz := to.Z - from.Z
	desiredLen := float32(math.Sqrt(float64(dx*dx + dz*dz)))
	if desiredLen < 1e-6 {
		return model.Vec3{}, false
	}
	desiredX, desiredZ := dx/desiredLen, dz/desiredLen

	margin := EnemyRadius + ObstacleMargin
	bestScore := float32(math.Inf(-1))
	var bestX, bestZ float32
	found := false

	for i := 0; i < SteeringDirections; i++ {
		angle := float64(i) * 2 * math.Pi / SteeringDirections
		candX := float32(math.Cos(angle))
		candZ := float32(math.Sin(angle))

		alignment := candX*desiredX + candZ*desiredZ

		danger := float32(0)
		rayX := from.X + candX*SteeringLookahead
		rayZ := from.Z + candZ*SteeringLookahead
		for _, o := range obstacles {
			pen := o.PenetrationXZ(rayX, rayZ, margin)
			if pen > danger {
				danger = pen
			}
		}

		// A direction that penetrates any obstacle at all is rejected
		// outright: no live enemy should end up inside an expanded
		// obstacle, so candidates with any danger never win.
		if danger > 0 {
			continue
		}

		score := alignment
		if score > bestScore {
			bestScore = score
			bestX, bestZ = candX, candZ
			found = true
		}
	}

	if !found {
		return model.Vec3{}, false
	}
	return model.Vec3{X: bestX, Z: bestZ}, true
}

// Heading returns the yaw (atan2(dz, dx)) of a movement direction.
func Heading(dir model.Vec3) float32 {
	return float32(math.Atan2(float64(dir.Z), float64(dir.X)))
}
