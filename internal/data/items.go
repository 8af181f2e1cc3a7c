package data

import "github.com/embervale/coreserver/internal/model"

// Catalog is a read-only, boot-loaded index of item definitions.
type Catalog struct {
	items map[uint32]model.ItemDefinition
}

// NewCatalog builds the catalog from the built-in item table. A future
// content patch can instead load this from a config-driven items table;
// the in-process fallback below is shaped so swapping the source
// requires no caller changes.
func NewCatalog() *Catalog {
	c := &Catalog{items: make(map[uint32]model.ItemDefinition, len(builtinItems))}
	for _, it := range builtinItems {
		c.items[it.ID] = it
	}
	return c
}

// Get returns the item definition for id, if known.
func (c *Catalog) Get(id uint32) (model.ItemDefinition, bool) {
	it, ok := c.items[id]
	return it, ok
}

// MaxStack returns the item's max stack size, or 1 for unknown items.
func (c *Catalog) MaxStack(id uint32) int32 {
	if it, ok := c.items[id]; ok {
		if it.MaxStack < 1 {
			return 1
		}
		return it.MaxStack
	}
	return 1
}

func weapon(id uint32, name, desc string, rarity model.ItemRarity, damage int32, speed float32, class model.Class, restricted bool) model.ItemDefinition {
	return model.ItemDefinition{
		ID: id, Name: name, Description: desc,
		Type: model.ItemWeapon, Rarity: rarity, MaxStack: 1,
		WeaponStats: &model.WeaponStats{Damage: damage, AttackSpeedMult: speed, RequiredClass: class, HasClassRestriction: restricted},
	}
}

// builtinItems mirrors the prototype's fallback item table (shared/items
// in the original source), the universal starter set plus one signature
// weapon pair per class.
var builtinItems = []model.ItemDefinition{
	{
		ID: 1, Name: "Health Potion", Description: "Restores 50 health.",
		Type: model.ItemConsumable, Rarity: model.RarityCommon, MaxStack: 20,
		Effects: []model.ItemEffect{{Kind: model.EffectRestoreHealth, Amount: 50}},
	},
	{
		ID: 2, Name: "Mana Potion", Description: "Restores 30 mana.",
		Type: model.ItemConsumable, Rarity: model.RarityCommon, MaxStack: 20,
		Effects: []model.ItemEffect{{Kind: model.EffectRestoreMana, Amount: 30}},
	},
	{
		ID: 3, Name: "Goblin Ear", Description: "A trophy from a slain goblin.",
		Type: model.ItemMaterial, Rarity: model.RarityCommon, MaxStack: 99,
	},
	weapon(4, "Rusty Sword", "A worn blade. Better than nothing.", model.RarityCommon, 8, 1.0, 0, false),
	weapon(5, "Iron Sword", "A sturdy iron blade.", model.RarityUncommon, 12, 1.0, 0, false),

	weapon(10, "Shadow Dagger", "A swift blade favored by ninjas.", model.RarityCommon, 10, 1.3, model.ClassNinja, true),
	weapon(11, "Viper's Fang", "A deadly dagger that strikes like a serpent.", model.RarityRare, 18, 1.4, model.ClassNinja, true),

	weapon(12, "Steel Claymore", "A heavy two-handed sword for warriors.", model.RarityCommon, 16, 0.85, model.ClassWarrior, true),
	weapon(13, "Berserker's Axe", "A massive axe that cleaves through armor.", model.RarityRare, 26, 0.8, model.ClassWarrior, true),

	weapon(14, "Cursed Scimitar", "A blade infused with dark magic.", model.RarityCommon, 12, 1.15, model.ClassSura, true),
	weapon(15, "Soulreaver Blade", "A sword that hungers for souls.", model.RarityRare, 22, 1.2, model.ClassSura, true),

	weapon(16, "Oak Staff", "A simple staff for channeling nature magic.", model.RarityCommon, 8, 1.0, model.ClassShaman, true),
	weapon(17, "Spirit Totem", "A totem imbued with ancestral spirits.", model.RarityRare, 14, 1.1, model.ClassShaman, true),

	{
		ID: 20, Name: "Leather Armor", Description: "Simple protective leather.",
		Type: model.ItemArmor, Rarity: model.RarityCommon, MaxStack: 1,
	},
	{
		ID: 21, Name: "Chainmail", Description: "Interlocking steel rings.",
		Type: model.ItemArmor, Rarity: model.RarityUncommon, MaxStack: 1,
	},

	{
		ID: model.TeleportRingID, Name: "Teleport Ring",
		Description: "A magical ring that allows instant travel between villages.",
		Type: model.ItemSpecial, Rarity: model.RarityRare, MaxStack: 1,
	},
}
