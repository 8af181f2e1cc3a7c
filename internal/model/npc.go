package model

// NpcType identifies an NPC's template/appearance. NPCs are static:
// position never changes once spawned at boot.
type NpcType uint8

const (
	NpcVillager NpcType = iota
	NpcMerchant
	NpcBlacksmith
	NpcGuard
)

// Npc is a static, non-combat entity created once at boot and never
// destroyed.
type Npc struct {
	ID             uint32
	ZoneID         int32
	Type           NpcType
	Position       Vec3
	Rotation       float32
	AnimationState AnimationState // always AnimationIdle
}
