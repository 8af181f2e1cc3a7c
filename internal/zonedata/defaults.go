package zonedata

import (
	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/navigation"
)

func empirePtr(e model.Empire) *model.Empire { return &e }

// DefaultZones returns the hard-coded zone set used when no zone config
// files are present on disk, matching the authored starter scenes.
func DefaultZones() []*Zone {
	red := empirePtr(model.EmpireRed)
	yellow := empirePtr(model.EmpireYellow)
	blue := empirePtr(model.EmpireBlue)

	return []*Zone{
		{
			ID: 1, Name: "Shinsoo Village", Empire: red,
			SceneIdentifier: "scenes/shinsoo_village", IsDefaultSpawn: true,
			SpawnPoints: []SpawnPoint{{Name: "village_center", Position: model.Vec3{X: 0, Y: 1, Z: 0}, IsDefault: true}},
			NpcSpawns: []NpcSpawnEntry{
				{Type: model.NpcMerchant, Position: model.Vec3{X: 5, Y: 1, Z: 5}},
				{Type: model.NpcBlacksmith, Position: model.Vec3{X: -5, Y: 1, Z: 5}},
			},
		},
		{
			ID: 100, Name: "Chunjo Village", Empire: yellow,
			SceneIdentifier: "scenes/chunjo_village", IsDefaultSpawn: true,
			SpawnPoints: []SpawnPoint{{Name: "village_center", Position: model.Vec3{X: 0, Y: 1, Z: 0}, IsDefault: true}},
			NpcSpawns: []NpcSpawnEntry{
				{Type: model.NpcMerchant, Position: model.Vec3{X: 5, Y: 1, Z: 5}},
			},
		},
		{
			ID: 200, Name: "Jinno Village", Empire: blue,
			SceneIdentifier: "scenes/jinno_village", IsDefaultSpawn: true,
			SpawnPoints: []SpawnPoint{{Name: "village_center", Position: model.Vec3{X: 0, Y: 1, Z: 0}, IsDefault: true}},
			NpcSpawns: []NpcSpawnEntry{
				{Type: model.NpcMerchant, Position: model.Vec3{X: 5, Y: 1, Z: 5}},
			},
		},
		{
			ID: 300, Name: "Goblin Hollow", Empire: nil,
			SceneIdentifier: "scenes/goblin_hollow", IsDefaultSpawn: false,
			SpawnPoints: []SpawnPoint{
				{Name: "hollow_entrance", Position: model.Vec3{X: -15, Y: 0, Z: 0}, IsDefault: true},
			},
			EnemySpawns: []EnemySpawnEntry{
				{Type: model.EnemyGoblin, Position: model.Vec3{X: 0, Y: 0, Z: 0}, Level: 1},
				{Type: model.EnemyGoblin, Position: model.Vec3{X: 20, Y: 0, Z: 3}, Level: 1},
				{Type: model.EnemyWolf, Position: model.Vec3{X: 20, Y: 0, Z: -3}, Level: 2},
			},
			Obstacles: []navigation.Obstacle{
				{
					IsBox: true,
					Box: navigation.Box{
						Min: model.Vec3{X: 8, Z: -3},
						Max: model.Vec3{X: 12, Z: 3},
					},
				},
			},
		},
	}
}
