package navigation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embervale/coreserver/internal/model"
)

func TestObstacle_CirclePenetration(t *testing.T) {
	o := Obstacle{Circle: Circle{Center: model.Vec3{X: 0, Z: 0}, Radius: 2}}

	assert.Greater(t, o.PenetrationXZ(0, 0, 0.5), float32(0))
	assert.LessOrEqual(t, o.PenetrationXZ(10, 10, 0.5), float32(0))
}

func TestObstacle_BoxPenetration(t *testing.T) {
	o := Obstacle{IsBox: true, Box: Box{Min: model.Vec3{X: 8, Z: -3}, Max: model.Vec3{X: 12, Z: 3}}}

	assert.Greater(t, o.PenetrationXZ(10, 0, 0.3), float32(0))
	assert.LessOrEqual(t, o.PenetrationXZ(50, 50, 0.3), float32(0))
}

func TestSteer_PicksDirectionTowardTargetWhenClear(t *testing.T) {
	from := model.Vec3{X: 0, Y: 0, Z: 0}
	to := model.Vec3{X: 10, Y: 0, Z: 0}

	dir, ok := Steer(from, to, nil)
	assert.True(t, ok)
	assert.Greater(t, dir.X, float32(0.9))
}

func TestSteer_AvoidsObstacleDirectlyInPath(t *testing.T) {
	from := model.Vec3{X: 0, Y: 0, Z: 0}
	to := model.Vec3{X: 10, Y: 0, Z: 0}
	obstacles := []Obstacle{{Circle: Circle{Center: model.Vec3{X: 3, Z: 0}, Radius: 5}}}

	dir, ok := Steer(from, to, obstacles)
	assert.True(t, ok)
	// The straight line is blocked; the chosen direction must not point
	// directly at the obstacle center.
	assert.Less(t, dir.X, float32(0.99))
}

func TestSteer_SamePointReturnsFalse(t *testing.T) {
	_, ok := Steer(model.Vec3{}, model.Vec3{}, nil)
	assert.False(t, ok)
}

func TestHeading_MatchesAtan2(t *testing.T) {
	h := Heading(model.Vec3{X: 0, Z: 1})
	assert.InDelta(t, math.Pi/2, h, 1e-5)
}

func TestHeightmap_GetHeight_BilinearInterpolation(t *testing.T) {
	h := &Heightmap{
		width: 2, height: 2,
		minX: 0, maxX: 10, minZ: 0, maxZ: 10,
		heights: []float32{0, 10, 20, 30}, // (x0,z0)=0 (x1,z0)=10 (x0,z1)=20 (x1,z1)=30
	}

	assert.InDelta(t, 0, h.GetHeight(0, 0), 1e-5)
	assert.InDelta(t, 10, h.GetHeight(10, 0), 1e-5)
	assert.InDelta(t, 20, h.GetHeight(0, 10), 1e-5)
	assert.InDelta(t, 30, h.GetHeight(10, 10), 1e-5)
	assert.InDelta(t, 15, h.GetHeight(5, 5), 1e-5)
}

func TestHeightmap_GetHeight_ClampsOutOfBounds(t *testing.T) {
	h := &Heightmap{
		width: 2, height: 2,
		minX: 0, maxX: 10, minZ: 0, maxZ: 10,
		heights: []float32{5, 5, 5, 5},
	}
	assert.InDelta(t, 5, h.GetHeight(-100, -100), 1e-5)
	assert.InDelta(t, 5, h.GetHeight(1000, 1000), 1e-5)
}
