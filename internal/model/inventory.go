package model

// InventorySize is the fixed slot count of every character's inventory.
const InventorySize = 20

// InventorySlot holds a single stack, or is empty when ItemID == 0.
type InventorySlot struct {
	ItemID   uint32
	Quantity int32
}

// Empty reports whether the slot holds no item.
func (s InventorySlot) Empty() bool {
	return s.ItemID == 0
}

// StackLimiter resolves an item's maximum stack size. Implemented by
// internal/data.Catalog; declared here to avoid an import cycle
// (internal/data imports internal/model for ItemDefinition).
type StackLimiter interface {
	MaxStack(itemID uint32) int32
}

// Inventory is a fixed-length ordered sequence of slots.
type Inventory struct {
	Slots [InventorySize]InventorySlot
}

// Add stacks quantity of itemID into existing compatible slots first,
// then empty slots. Returns false (with no partial effect) if there is
// not enough space to place the whole quantity.
func (inv *Inventory) Add(limiter StackLimiter, itemID uint32, quantity int32) bool {
	if quantity <= 0 {
		return true
	}
	maxStack := limiter.MaxStack(itemID)
	if maxStack < 1 {
		maxStack = 1
	}

	// Dry run: verify there is enough capacity before mutating anything,
	// so a rejected add never leaves a partial stack visible.
	remaining := quantity
	for _, s := range inv.Slots {
		if remaining == 0 {
			break
		}
		if s.ItemID == itemID && s.Quantity < maxStack {
			remaining -= min32(maxStack-s.Quantity, remaining)
		}
	}
	for _, s := range inv.Slots {
		if remaining == 0 {
			break
		}
		if s.Empty() {
			remaining -= min32(maxStack, remaining)
		}
	}
	if remaining != 0 {
		return false
	}

	remaining = quantity
	for i := range inv.Slots {
		if remaining == 0 {
			break
		}
		s := &inv.Slots[i]
		if s.ItemID == itemID && s.Quantity < maxStack {
			add := min32(maxStack-s.Quantity, remaining)
			s.Quantity += add
			remaining -= add
		}
	}
	for i := range inv.Slots {
		if remaining == 0 {
			break
		}
		s := &inv.Slots[i]
		if s.Empty() {
			add := min32(maxStack, remaining)
			*s = InventorySlot{ItemID: itemID, Quantity: add}
			remaining -= add
		}
	}
	return true
}

// RemoveSlot clears slot and returns what was in it. Returns (0,0,false)
// if the slot was out of range or already empty.
func (inv *Inventory) RemoveSlot(slot int) (uint32, int32, bool) {
	if slot < 0 || slot >= InventorySize || inv.Slots[slot].Empty() {
		return 0, 0, false
	}
	s := inv.Slots[slot]
	inv.Slots[slot] = InventorySlot{}
	return s.ItemID, s.Quantity, true
}

// SwapSlots exchanges the contents of two slots. Swap∘Swap = id.
func (inv *Inventory) SwapSlots(a, b int) bool {
	if a < 0 || a >= InventorySize || b < 0 || b >= InventorySize {
		return false
	}
	inv.Slots[a], inv.Slots[b] = inv.Slots[b], inv.Slots[a]
	return true
}

// FirstEmptySlot returns the index of the first empty slot, or -1.
func (inv *Inventory) FirstEmptySlot() int {
	for i, s := range inv.Slots {
		if s.Empty() {
			return i
		}
	}
	return -1
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
