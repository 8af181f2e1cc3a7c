package persistence

import "github.com/embervale/coreserver/internal/model"

// starterWeapon is the signature weapon each class is issued on character
// creation (catalog ids defined in internal/data/items.go).
var starterWeapon = map[model.Class]uint32{
	model.ClassNinja:   10, // Shadow Dagger
	model.ClassWarrior: 12, // Steel Claymore
	model.ClassSura:    14, // Cursed Scimitar
	model.ClassShaman:  16, // Oak Staff
}

// starterPotions maps class to the quantity of Health Potions issued at
// creation.
var starterPotions = map[model.Class]int32{
	model.ClassNinja:   10,
	model.ClassWarrior: 5,
	model.ClassSura:    5,
	model.ClassShaman:  3,
}

// classesWithManaPotions receive Mana Potions in addition to Health
// Potions: the two caster classes.
var classesWithManaPotions = map[model.Class]bool{
	model.ClassSura:   true,
	model.ClassShaman: true,
}

// StarterLoadout returns the weapon and stackable items a freshly
// created character of class receives: the class's signature weapon,
// its quota of Health Potions, Mana Potions for Sura/Shaman, and the
// universal Teleport Ring.
func StarterLoadout(class model.Class) (weaponID uint32, stacks []model.InventorySlot) {
	weaponID = starterWeapon[class]
	stacks = []model.InventorySlot{
		{ItemID: model.HealthPotionItemID, Quantity: starterPotions[class]},
	}
	if classesWithManaPotions[class] {
		stacks = append(stacks, model.InventorySlot{ItemID: 2, Quantity: 10})
	}
	stacks = append(stacks, model.InventorySlot{ItemID: model.TeleportRingID, Quantity: 1})
	return weaponID, stacks
}
