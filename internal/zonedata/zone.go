// Package zonedata holds zone definitions, spawn tables, obstacle sets
// and heightmaps: the read-only registry the world simulation consults
// every tick.
package zonedata

import (
	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/navigation"
)

// SpawnPoint is a named candidate location within a zone.
type SpawnPoint struct {
	Name      string
	Position  model.Vec3
	IsDefault bool
}

// EnemySpawnEntry seeds one enemy at boot and on respawn.
type EnemySpawnEntry struct {
	Type     model.EnemyType
	Position model.Vec3
	Level    int32
}

// NpcSpawnEntry seeds one NPC at boot.
type NpcSpawnEntry struct {
	Type     model.NpcType
	Position model.Vec3
	Rotation float32
}

// Zone is a named, isolated region of the simulation.
type Zone struct {
	ID              int32
	Name            string
	Empire          *model.Empire // nil = neutral
	SceneIdentifier string
	IsDefaultSpawn  bool

	SpawnPoints []SpawnPoint
	EnemySpawns []EnemySpawnEntry
	NpcSpawns   []NpcSpawnEntry
	Obstacles   []navigation.Obstacle
	Heightmap   *navigation.Heightmap // nil = use VillagePlateauHeight
}

// EmpireForZoneID derives the owning empire from the zone id range:
// 1-99 Red, 100-199 Yellow, 200-299 Blue, 300+ neutral.
func EmpireForZoneID(id int32) (model.Empire, bool) {
	switch {
	case id >= 1 && id <= 99:
		return model.EmpireRed, true
	case id >= 100 && id <= 199:
		return model.EmpireYellow, true
	case id >= 200 && id <= 299:
		return model.EmpireBlue, true
	default:
		return 0, false
	}
}

// DefaultSpawnPoint returns the zone's default-flagged spawn point, or
// the first spawn point, or the zero vector if the zone has none.
func (z *Zone) DefaultSpawnPoint() model.Vec3 {
	for _, sp := range z.SpawnPoints {
		if sp.IsDefault {
			return sp.Position
		}
	}
	if len(z.SpawnPoints) > 0 {
		return z.SpawnPoints[0].Position
	}
	return model.Vec3{}
}

// TerrainHeight samples the zone's heightmap, or returns the village
// plateau constant if none is loaded.
func (z *Zone) TerrainHeight(x, zCoord float32) float32 {
	if z.Heightmap == nil {
		return navigation.VillagePlateauHeight
	}
	return z.Heightmap.GetHeight(x, zCoord)
}
