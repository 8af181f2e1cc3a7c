package zonedata

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/navigation"
)

type spawnPointFile struct {
	Name      string  `json:"name"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	Z         float32 `json:"z"`
	IsDefault bool    `json:"is_default"`
}

type obstacleFile struct {
	Type string  `json:"type"` // "circle" | "box"
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	Z    float32 `json:"z"`
	Radius float32 `json:"radius"`
	MinX float32 `json:"min_x"`
	MinZ float32 `json:"min_z"`
	MaxX float32 `json:"max_x"`
	MaxZ float32 `json:"max_z"`
}

// LoadSpawnPoints merges `map[zone_id][]spawn point` JSON at path into
// zones, replacing each zone's SpawnPoints when present. Missing file is
// not an error: the caller keeps whatever defaults it already has.
func LoadSpawnPoints(zones map[int32]*Zone, path string) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Info("spawn_points.json not found, using hard-coded defaults", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var parsed map[string][]spawnPointFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for zoneIDStr, points := range parsed {
		var zoneID int32
		if _, err := fmt.Sscanf(zoneIDStr, "%d", &zoneID); err != nil {
			slog.Warn("skipping malformed zone id in spawn_points.json", "key", zoneIDStr)
			continue
		}
		z, ok := zones[zoneID]
		if !ok {
			slog.Warn("spawn_points.json references unknown zone", "zone_id", zoneID)
			continue
		}
		sps := make([]SpawnPoint, 0, len(points))
		for _, p := range points {
			sps = append(sps, SpawnPoint{
				Name:      p.Name,
				Position:  model.Vec3{X: p.X, Y: p.Y, Z: p.Z},
				IsDefault: p.IsDefault,
			})
		}
		z.SpawnPoints = sps
	}
	return nil
}

// LoadObstacles merges `map[zone_id][]obstacle` JSON at path into zones.
// Missing file is not an error.
func LoadObstacles(zones map[int32]*Zone, path string) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Info("obstacles.json not found, using hard-coded defaults", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var parsed map[string][]obstacleFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for zoneIDStr, obs := range parsed {
		var zoneID int32
		if _, err := fmt.Sscanf(zoneIDStr, "%d", &zoneID); err != nil {
			slog.Warn("skipping malformed zone id in obstacles.json", "key", zoneIDStr)
			continue
		}
		z, ok := zones[zoneID]
		if !ok {
			slog.Warn("obstacles.json references unknown zone", "zone_id", zoneID)
			continue
		}
		result := make([]navigation.Obstacle, 0, len(obs))
		for _, o := range obs {
			switch o.Type {
			case "circle":
				result = append(result, navigation.Obstacle{
					Circle: navigation.Circle{Center: model.Vec3{X: o.X, Y: o.Y, Z: o.Z}, Radius: o.Radius},
				})
			case "box":
				result = append(result, navigation.Obstacle{
					IsBox: true,
					Box: navigation.Box{
						Min: model.Vec3{X: o.MinX, Z: o.MinZ},
						Max: model.Vec3{X: o.MaxX, Z: o.MaxZ},
					},
				})
			default:
				slog.Warn("unknown obstacle type", "zone_id", zoneID, "type", o.Type)
			}
		}
		z.Obstacles = result
	}
	return nil
}

// LoadHeightmaps attaches a Heightmap to every zone whose empire has a
// "<empire>_heightmap.json" file under dir. Missing files leave the
// zone's heightmap nil (falls back to the village plateau constant).
func LoadHeightmaps(zones map[int32]*Zone, dir string) {
	for _, z := range zones {
		if z.Empire == nil {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_heightmap.json", empireFileName(*z.Empire)))
		hm, err := navigation.LoadHeightmap(path)
		if err != nil {
			slog.Debug("no heightmap for zone, using village plateau", "zone_id", z.ID, "error", err)
			continue
		}
		z.Heightmap = hm
	}
}

func empireFileName(e model.Empire) string {
	switch e {
	case model.EmpireRed:
		return "red"
	case model.EmpireYellow:
		return "yellow"
	case model.EmpireBlue:
		return "blue"
	default:
		return "neutral"
	}
}

// LoadRegistry builds a Registry starting from DefaultZones and
// overlaying whatever config files exist under configDir.
func LoadRegistry(configDir string) *Registry {
	zones := DefaultZones()
	byID := make(map[int32]*Zone, len(zones))
	for _, z := range zones {
		byID[z.ID] = z
	}

	if err := LoadSpawnPoints(byID, filepath.Join(configDir, "spawn_points.json")); err != nil {
		slog.Warn("loading spawn points", "error", err)
	}
	if err := LoadObstacles(byID, filepath.Join(configDir, "obstacles.json")); err != nil {
		slog.Warn("loading obstacles", "error", err)
	}
	LoadHeightmaps(byID, filepath.Join(configDir, "heightmaps"))

	return NewRegistry(zones)
}
