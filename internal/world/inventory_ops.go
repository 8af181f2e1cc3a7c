package world

import (
	"fmt"

	"github.com/embervale/coreserver/internal/model"
)

// PickupItem moves a dropped world item into the player's inventory.
// Returns an error if the player, item, or the player's zone doesn't
// match, or the inventory has no room.
func (w *World) PickupItem(runtimeID uint32, itemInstanceID uint32) error {
	p, ok := w.players[runtimeID]
	if !ok {
		return fmt.Errorf("unknown player")
	}
	item, ok := w.worldItems[itemInstanceID]
	if !ok {
		return fmt.Errorf("item not found")
	}
	if item.ZoneID != p.State.ZoneID {
		return fmt.Errorf("item is in another zone")
	}
	if !p.Inventory.Add(w.items, item.ItemID, item.Quantity) {
		return fmt.Errorf("inventory full")
	}
	delete(w.worldItems, itemInstanceID)
	return nil
}

// UseItem consumes the item at slot, applying its effects.
func (w *World) UseItem(runtimeID uint32, slot int) error {
	p, ok := w.players[runtimeID]
	if !ok {
		return fmt.Errorf("unknown player")
	}
	if !p.UseItem(slot, w.items) {
		return fmt.Errorf("cannot use item in slot %d", slot)
	}
	return nil
}

// DropItem discards the stack at slot into a new world item at the
// player's current position.
func (w *World) DropItem(runtimeID uint32, slot int) (*WorldItem, error) {
	p, ok := w.players[runtimeID]
	if !ok {
		return nil, fmt.Errorf("unknown player")
	}
	itemID, qty, ok := p.Inventory.RemoveSlot(slot)
	if !ok {
		return nil, fmt.Errorf("slot %d is empty", slot)
	}
	w.nextItemID++
	wi := &WorldItem{InstanceID: w.nextItemID, ZoneID: p.State.ZoneID, ItemID: itemID, Quantity: qty, Position: p.State.Position}
	w.worldItems[wi.InstanceID] = wi
	return wi, nil
}

// SwapInventorySlots exchanges the contents of two slots.
func (w *World) SwapInventorySlots(runtimeID uint32, from, to int) error {
	p, ok := w.players[runtimeID]
	if !ok {
		return fmt.Errorf("unknown player")
	}
	if !p.Inventory.SwapSlots(from, to) {
		return fmt.Errorf("invalid slot swap %d <-> %d", from, to)
	}
	return nil
}

// EquipItem equips the item at slot into its matching equipment kind.
func (w *World) EquipItem(runtimeID uint32, slot int) (model.EquipResult, error) {
	p, ok := w.players[runtimeID]
	if !ok {
		return model.EquipResult{}, fmt.Errorf("unknown player")
	}
	return model.Equip(&p.Inventory, &p.Equipment, w.items, slot, p.Class)
}

// UnequipItem clears the given equipment kind back into inventory.
func (w *World) UnequipItem(runtimeID uint32, kind model.EquipmentKind) (uint32, error) {
	p, ok := w.players[runtimeID]
	if !ok {
		return 0, fmt.Errorf("unknown player")
	}
	return model.Unequip(&p.Inventory, &p.Equipment, kind)
}

// DevAddItem grants item stacks directly, bypassing any drop/pickup
// flow. Used by the DevAddItem message and the "/item" admin command.
func (w *World) DevAddItem(runtimeID uint32, itemID uint32, quantity int32) error {
	p, ok := w.players[runtimeID]
	if !ok {
		return fmt.Errorf("unknown player")
	}
	if !p.Inventory.Add(w.items, itemID, quantity) {
		return fmt.Errorf("inventory full")
	}
	return nil
}
