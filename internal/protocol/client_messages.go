package protocol

import "github.com/embervale/coreserver/internal/model"

// Register asks the server to create a new account.
type Register struct {
	Username string
	Password string
}

func (m *Register) Opcode() Opcode { return OpRegister }
func (m *Register) Encode(w *Writer) {
	w.WriteString(m.Username)
	w.WriteString(m.Password)
}
func DecodeRegister(r *Reader) (*Register, error) {
	user, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	pass, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &Register{Username: user, Password: pass}, nil
}

// Login authenticates an existing account. ProtocolVersion lets the
// server reject a stale client before it can desync the codec.
type Login struct {
	ProtocolVersion uint16
	Username        string
	Password        string
}

func (m *Login) Opcode() Opcode { return OpLogin }
func (m *Login) Encode(w *Writer) {
	w.WriteUint16(m.ProtocolVersion)
	w.WriteString(m.Username)
	w.WriteString(m.Password)
}
func DecodeLogin(r *Reader) (*Login, error) {
	ver, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	user, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	pass, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &Login{ProtocolVersion: ver, Username: user, Password: pass}, nil
}

// GetCharacterList requests the roster for the authenticated account.
type GetCharacterList struct{}

func (m *GetCharacterList) Opcode() Opcode       { return OpGetCharacterList }
func (m *GetCharacterList) Encode(w *Writer)     {}
func DecodeGetCharacterList(r *Reader) (*GetCharacterList, error) {
	return &GetCharacterList{}, nil
}

// CreateCharacter creates a new character slot on the account.
type CreateCharacter struct {
	Name   string
	Class  model.Class
	Gender model.Gender
	Empire model.Empire
}

func (m *CreateCharacter) Opcode() Opcode { return OpCreateCharacter }
func (m *CreateCharacter) Encode(w *Writer) {
	w.WriteString(m.Name)
	w.WriteByte(byte(m.Class))
	w.WriteByte(byte(m.Gender))
	w.WriteByte(byte(m.Empire))
}
func DecodeCreateCharacter(r *Reader) (*CreateCharacter, error) {
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	class, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	gender, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	empire, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return &CreateCharacter{Name: name, Class: model.Class(class), Gender: model.Gender(gender), Empire: model.Empire(empire)}, nil
}

// SelectCharacter enters the world with the given character.
type SelectCharacter struct {
	CharacterID uint32
}

func (m *SelectCharacter) Opcode() Opcode   { return OpSelectCharacter }
func (m *SelectCharacter) Encode(w *Writer) { w.WriteUint32(m.CharacterID) }
func DecodeSelectCharacter(r *Reader) (*SelectCharacter, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &SelectCharacter{CharacterID: id}, nil
}

// DeleteCharacter permanently removes a character; ConfirmName must
// match the character's name exactly as a guard against misclicks.
type DeleteCharacter struct {
	CharacterID uint32
	ConfirmName string
}

func (m *DeleteCharacter) Opcode() Opcode { return OpDeleteCharacter }
func (m *DeleteCharacter) Encode(w *Writer) {
	w.WriteUint32(m.CharacterID)
	w.WriteString(m.ConfirmName)
}
func DecodeDeleteCharacter(r *Reader) (*DeleteCharacter, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &DeleteCharacter{CharacterID: id, ConfirmName: name}, nil
}

// Disconnect is a voluntary session teardown notice.
type Disconnect struct{}

func (m *Disconnect) Opcode() Opcode               { return OpDisconnect }
func (m *Disconnect) Encode(w *Writer)             {}
func DecodeDisconnect(r *Reader) (*Disconnect, error) { return &Disconnect{}, nil }

// PlayerUpdate is the per-tick client input: desired position, facing
// and animation state, sent once per client frame.
type PlayerUpdate struct {
	Position model.Vec3
	Rotation float32
	State    model.AnimationState
}

func (m *PlayerUpdate) Opcode() Opcode { return OpPlayerUpdate }
func (m *PlayerUpdate) Encode(w *Writer) {
	w.WriteVec3(m.Position)
	w.WriteFloat32(m.Rotation)
	w.WriteByte(byte(m.State))
}
func DecodePlayerUpdate(r *Reader) (*PlayerUpdate, error) {
	pos, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	rot, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	state, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return &PlayerUpdate{Position: pos, Rotation: rot, State: model.AnimationState(state)}, nil
}

// ChatMessage broadcasts text to every in-game player.
type ChatMessage struct {
	Text string
}

func (m *ChatMessage) Opcode() Opcode   { return OpChatMessage }
func (m *ChatMessage) Encode(w *Writer) { w.WriteString(m.Text) }
func DecodeChatMessage(r *Reader) (*ChatMessage, error) {
	text, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &ChatMessage{Text: text}, nil
}

// Attack requests a melee strike against TargetID (an enemy runtime id).
type Attack struct {
	TargetID uint32
}

func (m *Attack) Opcode() Opcode   { return OpAttack }
func (m *Attack) Encode(w *Writer) { w.WriteUint32(m.TargetID) }
func DecodeAttack(r *Reader) (*Attack, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &Attack{TargetID: id}, nil
}

// PickupItem requests pickup of a world item drop.
type PickupItem struct {
	ItemInstanceID uint32
}

func (m *PickupItem) Opcode() Opcode   { return OpPickupItem }
func (m *PickupItem) Encode(w *Writer) { w.WriteUint32(m.ItemInstanceID) }
func DecodePickupItem(r *Reader) (*PickupItem, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &PickupItem{ItemInstanceID: id}, nil
}

// UseItem consumes the item in the given inventory slot.
type UseItem struct {
	Slot int32
}

func (m *UseItem) Opcode() Opcode   { return OpUseItem }
func (m *UseItem) Encode(w *Writer) { w.WriteInt32(m.Slot) }
func DecodeUseItem(r *Reader) (*UseItem, error) {
	slot, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &UseItem{Slot: slot}, nil
}

// DropItem discards the stack in the given inventory slot.
type DropItem struct {
	Slot int32
}

func (m *DropItem) Opcode() Opcode   { return OpDropItem }
func (m *DropItem) Encode(w *Writer) { w.WriteInt32(m.Slot) }
func DecodeDropItem(r *Reader) (*DropItem, error) {
	slot, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &DropItem{Slot: slot}, nil
}

// EquipItem equips the item at Slot into its matching equipment kind.
type EquipItem struct {
	Slot int32
}

func (m *EquipItem) Opcode() Opcode   { return OpEquipItem }
func (m *EquipItem) Encode(w *Writer) { w.WriteInt32(m.Slot) }
func DecodeEquipItem(r *Reader) (*EquipItem, error) {
	slot, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &EquipItem{Slot: slot}, nil
}

// UnequipItem clears the given equipment kind back into inventory.
type UnequipItem struct {
	Kind model.EquipmentKind
}

func (m *UnequipItem) Opcode() Opcode   { return OpUnequipItem }
func (m *UnequipItem) Encode(w *Writer) { w.WriteByte(byte(m.Kind)) }
func DecodeUnequipItem(r *Reader) (*UnequipItem, error) {
	kind, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return &UnequipItem{Kind: model.EquipmentKind(kind)}, nil
}

// SwapInventorySlots exchanges the contents of two inventory slots.
type SwapInventorySlots struct {
	From, To int32
}

func (m *SwapInventorySlots) Opcode() Opcode { return OpSwapInventorySlots }
func (m *SwapInventorySlots) Encode(w *Writer) {
	w.WriteInt32(m.From)
	w.WriteInt32(m.To)
}
func DecodeSwapInventorySlots(r *Reader) (*SwapInventorySlots, error) {
	from, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	to, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &SwapInventorySlots{From: from, To: to}, nil
}

// UseAbility invokes AbilityID, aimed at TargetID only when HasTarget is
// set.
type UseAbility struct {
	AbilityID uint32
	TargetID  uint32
	HasTarget bool
}

func (m *UseAbility) Opcode() Opcode { return OpUseAbility }
func (m *UseAbility) Encode(w *Writer) {
	w.WriteUint32(m.AbilityID)
	w.WriteBool(m.HasTarget)
	w.WriteUint32(m.TargetID)
}
func DecodeUseAbility(r *Reader) (*UseAbility, error) {
	abilityID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	hasTarget, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	targetID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &UseAbility{AbilityID: abilityID, TargetID: targetID, HasTarget: hasTarget}, nil
}

// RespawnRequest asks to respawn at the empire spawn or at the death site.
type RespawnRequest struct {
	Kind model.RespawnKind
}

func (m *RespawnRequest) Opcode() Opcode   { return OpRespawnRequest }
func (m *RespawnRequest) Encode(w *Writer) { w.WriteByte(byte(m.Kind)) }
func DecodeRespawnRequest(r *Reader) (*RespawnRequest, error) {
	kind, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return &RespawnRequest{Kind: model.RespawnKind(kind)}, nil
}

// TeleportRequest asks to move to another zone. The server does not
// check that the player holds a teleport item.
type TeleportRequest struct {
	ZoneID int32
}

func (m *TeleportRequest) Opcode() Opcode   { return OpTeleportRequest }
func (m *TeleportRequest) Encode(w *Writer) { w.WriteInt32(m.ZoneID) }
func DecodeTeleportRequest(r *Reader) (*TeleportRequest, error) {
	zoneID, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &TeleportRequest{ZoneID: zoneID}, nil
}

// DevAddItem is a development/admin convenience to grant items directly.
type DevAddItem struct {
	ItemID   uint32
	Quantity int32
}

func (m *DevAddItem) Opcode() Opcode { return OpDevAddItem }
func (m *DevAddItem) Encode(w *Writer) {
	w.WriteUint32(m.ItemID)
	w.WriteInt32(m.Quantity)
}
func DecodeDevAddItem(r *Reader) (*DevAddItem, error) {
	itemID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	qty, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &DevAddItem{ItemID: itemID, Quantity: qty}, nil
}

// AdminCommand carries a slash-command line ("/lvl 10", "/tp 300", ...).
type AdminCommand struct {
	Line string
}

func (m *AdminCommand) Opcode() Opcode   { return OpAdminCommand }
func (m *AdminCommand) Encode(w *Writer) { w.WriteString(m.Line) }
func DecodeAdminCommand(r *Reader) (*AdminCommand, error) {
	line, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &AdminCommand{Line: line}, nil
}
