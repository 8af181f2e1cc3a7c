package model

// Well-known catalog item ids referenced outside the data package (loot
// tables, starting inventory).
const (
	HealthPotionItemID uint32 = 1
	GoblinEarItemID    uint32 = 3
	// TeleportRingID is the universal item every new character receives.
	TeleportRingID uint32 = 100
)

// ItemEffect is a tagged union of passive effects an item applies when
// used (Consumables) or while equipped (stat items are not modeled here;
// only Consumable effects fire on UseItem).
type ItemEffect struct {
	Kind   ItemEffectKind
	Amount int32   // RestoreHealth/RestoreMana/IncreaseAttack/IncreaseDefense
	Speed  float32 // IncreaseSpeed
}

// ItemEffectKind enumerates the ItemEffect tagged-union cases.
type ItemEffectKind uint8

const (
	EffectRestoreHealth ItemEffectKind = iota
	EffectRestoreMana
	EffectIncreaseAttack
	EffectIncreaseDefense
	EffectIncreaseSpeed
)

// WeaponStats holds weapon-only attributes.
type WeaponStats struct {
	Damage              int32
	AttackSpeedMult     float32
	RequiredClass       Class
	HasClassRestriction bool
}

// ItemDefinition is a read-only catalog entry loaded once at boot.
type ItemDefinition struct {
	ID           uint32
	Name         string
	Description  string
	Type         ItemType
	Rarity       ItemRarity
	MaxStack     int32
	Effects      []ItemEffect
	WeaponStats  *WeaponStats
}
