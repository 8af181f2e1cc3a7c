package model

import "fmt"

// ItemLookup resolves a full item definition by id. Implemented by
// internal/data.Catalog.
type ItemLookup interface {
	Get(itemID uint32) (ItemDefinition, bool)
}

// Equipment holds the currently worn weapon and armor, if any.
type Equipment struct {
	WeaponID uint32 // 0 = none
	ArmorID  uint32 // 0 = none
}

// EquipResult reports what changed after a successful Equip.
type EquipResult struct {
	Kind        EquipmentKind
	NewItemID   uint32
	OldItemID   uint32 // 0 if nothing was previously equipped
	HadOldItem  bool
}

// Equip swaps the item in inventory slot `slot` into the matching
// equipment kind, atomically: the previously equipped item (if any)
// goes back into `slot`. Class restrictions on WeaponStats are enforced.
// Fails without mutating anything if the slot is empty, out of range,
// not equipable, or class-restricted against the character.
func Equip(inv *Inventory, equip *Equipment, lookup ItemLookup, slot int, class Class) (EquipResult, error) {
	if slot < 0 || slot >= InventorySize {
		return EquipResult{}, fmt.Errorf("invalid inventory slot %d", slot)
	}
	s := inv.Slots[slot]
	if s.Empty() {
		return EquipResult{}, fmt.Errorf("no item in slot %d", slot)
	}
	def, ok := lookup.Get(s.ItemID)
	if !ok {
		return EquipResult{}, fmt.Errorf("unknown item %d", s.ItemID)
	}

	var kind EquipmentKind
	switch def.Type {
	case ItemWeapon:
		kind = EquipWeapon
		if def.WeaponStats != nil && def.WeaponStats.HasClassRestriction && def.WeaponStats.RequiredClass != class {
			return EquipResult{}, fmt.Errorf("wrong class for %s", def.Name)
		}
	case ItemArmor:
		kind = EquipArmor
	default:
		return EquipResult{}, fmt.Errorf("%s cannot be equipped", def.Name)
	}

	var oldItemID uint32
	var hadOld bool
	switch kind {
	case EquipWeapon:
		oldItemID, hadOld = equip.WeaponID, equip.WeaponID != 0
		equip.WeaponID = s.ItemID
	case EquipArmor:
		oldItemID, hadOld = equip.ArmorID, equip.ArmorID != 0
		equip.ArmorID = s.ItemID
	}

	if hadOld {
		inv.Slots[slot] = InventorySlot{ItemID: oldItemID, Quantity: 1}
	} else {
		inv.Slots[slot] = InventorySlot{}
	}

	return EquipResult{Kind: kind, NewItemID: s.ItemID, OldItemID: oldItemID, HadOldItem: hadOld}, nil
}

// Unequip removes the item of `kind` and places it into the first empty
// inventory slot. Fails if nothing is equipped or there is no free slot
// (per invariant: "Unequipping requires an empty inventory slot").
func Unequip(inv *Inventory, equip *Equipment, kind EquipmentKind) (uint32, error) {
	var current uint32
	switch kind {
	case EquipWeapon:
		current = equip.WeaponID
	case EquipArmor:
		current = equip.ArmorID
	}
	if current == 0 {
		return 0, fmt.Errorf("nothing equipped")
	}
	slot := inv.FirstEmptySlot()
	if slot == -1 {
		return 0, fmt.Errorf("inventory full")
	}
	inv.Slots[slot] = InventorySlot{ItemID: current, Quantity: 1}
	switch kind {
	case EquipWeapon:
		equip.WeaponID = 0
	case EquipArmor:
		equip.ArmorID = 0
	}
	return current, nil
}
