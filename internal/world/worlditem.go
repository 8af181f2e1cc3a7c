package world

import "github.com/embervale/coreserver/internal/model"

// WorldItem is a dropped item instance lying in a zone, created by loot
// rolls or DropItem and removed on pickup or despawn.
type WorldItem struct {
	InstanceID uint32
	ZoneID     int32
	ItemID     uint32
	Quantity   int32
	Position   model.Vec3
}
