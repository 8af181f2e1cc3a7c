package protocol

import "github.com/embervale/coreserver/internal/model"

// RegisterSuccess confirms account creation.
type RegisterSuccess struct{ AccountID uint32 }

func (m *RegisterSuccess) Opcode() Opcode   { return OpRegisterSuccess }
func (m *RegisterSuccess) Encode(w *Writer) { w.WriteUint32(m.AccountID) }
func DecodeRegisterSuccess(r *Reader) (*RegisterSuccess, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &RegisterSuccess{AccountID: id}, nil
}

// RegisterFailed reports why account creation was rejected.
type RegisterFailed struct{ Reason string }

func (m *RegisterFailed) Opcode() Opcode   { return OpRegisterFailed }
func (m *RegisterFailed) Encode(w *Writer) { w.WriteString(m.Reason) }
func DecodeRegisterFailed(r *Reader) (*RegisterFailed, error) {
	reason, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &RegisterFailed{Reason: reason}, nil
}

// LoginSuccess confirms authentication.
type LoginSuccess struct{ AccountID uint32 }

func (m *LoginSuccess) Opcode() Opcode   { return OpLoginSuccess }
func (m *LoginSuccess) Encode(w *Writer) { w.WriteUint32(m.AccountID) }
func DecodeLoginSuccess(r *Reader) (*LoginSuccess, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &LoginSuccess{AccountID: id}, nil
}

// LoginFailed reports why authentication was rejected.
type LoginFailed struct{ Reason string }

func (m *LoginFailed) Opcode() Opcode   { return OpLoginFailed }
func (m *LoginFailed) Encode(w *Writer) { w.WriteString(m.Reason) }
func DecodeLoginFailed(r *Reader) (*LoginFailed, error) {
	reason, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &LoginFailed{Reason: reason}, nil
}

// CharacterSummary is one roster row within CharacterList.
type CharacterSummary struct {
	CharacterID uint32
	Name        string
	Class       model.Class
	Gender      model.Gender
	Empire      model.Empire
	Level       int32
}

func writeCharacterSummary(w *Writer, c CharacterSummary) {
	w.WriteUint32(c.CharacterID)
	w.WriteString(c.Name)
	w.WriteByte(byte(c.Class))
	w.WriteByte(byte(c.Gender))
	w.WriteByte(byte(c.Empire))
	w.WriteInt32(c.Level)
}

func readCharacterSummary(r *Reader) (CharacterSummary, error) {
	var c CharacterSummary
	id, err := r.ReadUint32()
	if err != nil {
		return c, err
	}
	name, err := r.ReadString()
	if err != nil {
		return c, err
	}
	class, err := r.ReadByte()
	if err != nil {
		return c, err
	}
	gender, err := r.ReadByte()
	if err != nil {
		return c, err
	}
	empire, err := r.ReadByte()
	if err != nil {
		return c, err
	}
	level, err := r.ReadInt32()
	if err != nil {
		return c, err
	}
	c = CharacterSummary{CharacterID: id, Name: name, Class: model.Class(class), Gender: model.Gender(gender), Empire: model.Empire(empire), Level: level}
	return c, nil
}

// CharacterList is the account's roster.
type CharacterList struct {
	Characters []CharacterSummary
}

func (m *CharacterList) Opcode() Opcode { return OpCharacterList }
func (m *CharacterList) Encode(w *Writer) {
	w.WriteUint16(uint16(len(m.Characters)))
	for _, c := range m.Characters {
		writeCharacterSummary(w, c)
	}
}
func DecodeCharacterList(r *Reader) (*CharacterList, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	list := make([]CharacterSummary, 0, n)
	for i := 0; i < int(n); i++ {
		c, err := readCharacterSummary(r)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return &CharacterList{Characters: list}, nil
}

// CharacterCreated confirms a new character slot.
type CharacterCreated struct{ Character CharacterSummary }

func (m *CharacterCreated) Opcode() Opcode   { return OpCharacterCreated }
func (m *CharacterCreated) Encode(w *Writer) { writeCharacterSummary(w, m.Character) }
func DecodeCharacterCreated(r *Reader) (*CharacterCreated, error) {
	c, err := readCharacterSummary(r)
	if err != nil {
		return nil, err
	}
	return &CharacterCreated{Character: c}, nil
}

// CreateCharacterFailed reports why creation was rejected.
type CreateCharacterFailed struct{ Reason string }

func (m *CreateCharacterFailed) Opcode() Opcode   { return OpCreateCharacterFailed }
func (m *CreateCharacterFailed) Encode(w *Writer) { w.WriteString(m.Reason) }
func DecodeCreateCharacterFailed(r *Reader) (*CreateCharacterFailed, error) {
	reason, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &CreateCharacterFailed{Reason: reason}, nil
}

// CharacterSelected confirms entry into the world and gives the client
// its initial zone and runtime id.
type CharacterSelected struct {
	RuntimeID uint32
	ZoneID    int32
	Position  model.Vec3
}

func (m *CharacterSelected) Opcode() Opcode { return OpCharacterSelected }
func (m *CharacterSelected) Encode(w *Writer) {
	w.WriteUint32(m.RuntimeID)
	w.WriteInt32(m.ZoneID)
	w.WriteVec3(m.Position)
}
func DecodeCharacterSelected(r *Reader) (*CharacterSelected, error) {
	rid, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	zoneID, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	pos, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	return &CharacterSelected{RuntimeID: rid, ZoneID: zoneID, Position: pos}, nil
}

// CharacterSelectFailed reports why world entry was rejected.
type CharacterSelectFailed struct{ Reason string }

func (m *CharacterSelectFailed) Opcode() Opcode   { return OpCharacterSelectFailed }
func (m *CharacterSelectFailed) Encode(w *Writer) { w.WriteString(m.Reason) }
func DecodeCharacterSelectFailed(r *Reader) (*CharacterSelectFailed, error) {
	reason, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &CharacterSelectFailed{Reason: reason}, nil
}

// CharacterDeleted confirms a roster deletion.
type CharacterDeleted struct{ CharacterID uint32 }

func (m *CharacterDeleted) Opcode() Opcode   { return OpCharacterDeleted }
func (m *CharacterDeleted) Encode(w *Writer) { w.WriteUint32(m.CharacterID) }
func DecodeCharacterDeleted(r *Reader) (*CharacterDeleted, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &CharacterDeleted{CharacterID: id}, nil
}

// DeleteCharacterFailed reports why deletion was rejected.
type DeleteCharacterFailed struct{ Reason string }

func (m *DeleteCharacterFailed) Opcode() Opcode   { return OpDeleteCharacterFailed }
func (m *DeleteCharacterFailed) Encode(w *Writer) { w.WriteString(m.Reason) }
func DecodeDeleteCharacterFailed(r *Reader) (*DeleteCharacterFailed, error) {
	reason, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &DeleteCharacterFailed{Reason: reason}, nil
}

// PlayerSpawn announces a player entity entering interest range.
type PlayerSpawn struct {
	RuntimeID uint32
	Name      string
	Class     model.Class
	Gender    model.Gender
	Empire    model.Empire
	Level     int32
	Position  model.Vec3
	Rotation  float32
}

func (m *PlayerSpawn) Opcode() Opcode { return OpPlayerSpawn }
func (m *PlayerSpawn) Encode(w *Writer) {
	w.WriteUint32(m.RuntimeID)
	w.WriteString(m.Name)
	w.WriteByte(byte(m.Class))
	w.WriteByte(byte(m.Gender))
	w.WriteByte(byte(m.Empire))
	w.WriteInt32(m.Level)
	w.WriteVec3(m.Position)
	w.WriteFloat32(m.Rotation)
}
func DecodePlayerSpawn(r *Reader) (*PlayerSpawn, error) {
	rid, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
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
	level, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	pos, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	rot, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return &PlayerSpawn{RuntimeID: rid, Name: name, Class: model.Class(class), Gender: model.Gender(gender), Empire: model.Empire(empire), Level: level, Position: pos, Rotation: rot}, nil
}

// PlayerDespawn announces a player leaving interest range.
type PlayerDespawn struct{ RuntimeID uint32 }

func (m *PlayerDespawn) Opcode() Opcode   { return OpPlayerDespawn }
func (m *PlayerDespawn) Encode(w *Writer) { w.WriteUint32(m.RuntimeID) }
func DecodePlayerDespawn(r *Reader) (*PlayerDespawn, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &PlayerDespawn{RuntimeID: id}, nil
}

// EnemySpawn announces an enemy entity entering interest range.
type EnemySpawn struct {
	EnemyID  uint32
	Type     model.EnemyType
	Level    int32
	Position model.Vec3
	Rotation float32
	Health   int32
	MaxHealth int32
}

func (m *EnemySpawn) Opcode() Opcode { return OpEnemySpawn }
func (m *EnemySpawn) Encode(w *Writer) {
	w.WriteUint32(m.EnemyID)
	w.WriteByte(byte(m.Type))
	w.WriteInt32(m.Level)
	w.WriteVec3(m.Position)
	w.WriteFloat32(m.Rotation)
	w.WriteInt32(m.Health)
	w.WriteInt32(m.MaxHealth)
}
func DecodeEnemySpawn(r *Reader) (*EnemySpawn, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	typ, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	level, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	pos, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	rot, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	hp, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	maxHP, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &EnemySpawn{EnemyID: id, Type: model.EnemyType(typ), Level: level, Position: pos, Rotation: rot, Health: hp, MaxHealth: maxHP}, nil
}

// EnemyDespawn announces an enemy leaving interest range.
type EnemyDespawn struct{ EnemyID uint32 }

func (m *EnemyDespawn) Opcode() Opcode   { return OpEnemyDespawn }
func (m *EnemyDespawn) Encode(w *Writer) { w.WriteUint32(m.EnemyID) }
func DecodeEnemyDespawn(r *Reader) (*EnemyDespawn, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &EnemyDespawn{EnemyID: id}, nil
}

// NpcSpawn announces a static NPC entering interest range.
type NpcSpawn struct {
	NpcID    uint32
	Type     model.NpcType
	Position model.Vec3
	Rotation float32
}

func (m *NpcSpawn) Opcode() Opcode { return OpNpcSpawn }
func (m *NpcSpawn) Encode(w *Writer) {
	w.WriteUint32(m.NpcID)
	w.WriteByte(byte(m.Type))
	w.WriteVec3(m.Position)
	w.WriteFloat32(m.Rotation)
}
func DecodeNpcSpawn(r *Reader) (*NpcSpawn, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	typ, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	pos, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	rot, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return &NpcSpawn{NpcID: id, Type: model.NpcType(typ), Position: pos, Rotation: rot}, nil
}

// EntityTransform is one row within a WorldState snapshot.
type EntityTransform struct {
	RuntimeID uint32
	IsEnemy   bool
	Position  model.Vec3
	Rotation  float32
	State     model.AnimationState
}

// WorldState is the per-tick broadcast of every interest-visible
// player's and enemy's transform, sent once per simulation tick.
type WorldState struct {
	Transforms []EntityTransform
}

func (m *WorldState) Opcode() Opcode { return OpWorldState }
func (m *WorldState) Encode(w *Writer) {
	w.WriteUint16(uint16(len(m.Transforms)))
	for _, t := range m.Transforms {
		w.WriteUint32(t.RuntimeID)
		w.WriteBool(t.IsEnemy)
		w.WriteVec3(t.Position)
		w.WriteFloat32(t.Rotation)
		w.WriteByte(byte(t.State))
	}
}
func DecodeWorldState(r *Reader) (*WorldState, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	out := make([]EntityTransform, 0, n)
	for i := 0; i < int(n); i++ {
		rid, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		isEnemy, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
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
		out = append(out, EntityTransform{RuntimeID: rid, IsEnemy: isEnemy, Position: pos, Rotation: rot, State: model.AnimationState(state)})
	}
	return &WorldState{Transforms: out}, nil
}

// ChatBroadcast relays a chat line with its speaker's runtime id.
type ChatBroadcast struct {
	SenderRuntimeID uint32
	SenderName      string
	Text            string
}

func (m *ChatBroadcast) Opcode() Opcode { return OpChatBroadcast }
func (m *ChatBroadcast) Encode(w *Writer) {
	w.WriteUint32(m.SenderRuntimeID)
	w.WriteString(m.SenderName)
	w.WriteString(m.Text)
}
func DecodeChatBroadcast(r *Reader) (*ChatBroadcast, error) {
	rid, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	text, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &ChatBroadcast{SenderRuntimeID: rid, SenderName: name, Text: text}, nil
}

// DamageEvent reports damage dealt from one entity to another.
type DamageEvent struct {
	SourceID   uint32
	TargetID   uint32
	TargetIsEnemy bool
	Amount     int32
	WasCrit    bool
}

func (m *DamageEvent) Opcode() Opcode { return OpDamageEvent }
func (m *DamageEvent) Encode(w *Writer) {
	w.WriteUint32(m.SourceID)
	w.WriteUint32(m.TargetID)
	w.WriteBool(m.TargetIsEnemy)
	w.WriteInt32(m.Amount)
	w.WriteBool(m.WasCrit)
}
func DecodeDamageEvent(r *Reader) (*DamageEvent, error) {
	src, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	tgt, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	isEnemy, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	amount, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	crit, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	return &DamageEvent{SourceID: src, TargetID: tgt, TargetIsEnemy: isEnemy, Amount: amount, WasCrit: crit}, nil
}

// HealEvent reports healing applied to an entity.
type HealEvent struct {
	SourceID uint32
	TargetID uint32
	Amount   int32
}

func (m *HealEvent) Opcode() Opcode { return OpHealEvent }
func (m *HealEvent) Encode(w *Writer) {
	w.WriteUint32(m.SourceID)
	w.WriteUint32(m.TargetID)
	w.WriteInt32(m.Amount)
}
func DecodeHealEvent(r *Reader) (*HealEvent, error) {
	src, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	tgt, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	amount, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &HealEvent{SourceID: src, TargetID: tgt, Amount: amount}, nil
}

// EntityDeath announces a player reaching zero health. KillerID is the
// enemy id that landed the killing blow, or 0 if none is on record.
// Enemy deaths are announced with EnemyDespawn instead.
type EntityDeath struct {
	EntityID uint32
	IsEnemy  bool
	KillerID uint32
}

func (m *EntityDeath) Opcode() Opcode { return OpEntityDeath }
func (m *EntityDeath) Encode(w *Writer) {
	w.WriteUint32(m.EntityID)
	w.WriteBool(m.IsEnemy)
	w.WriteUint32(m.KillerID)
}
func DecodeEntityDeath(r *Reader) (*EntityDeath, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	isEnemy, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	killerID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &EntityDeath{EntityID: id, IsEnemy: isEnemy, KillerID: killerID}, nil
}

// EntityRespawn announces a player's respawn to the other players in the
// zone it respawned into. A respawned enemy is announced with EnemySpawn.
type EntityRespawn struct {
	EntityID uint32
	Position model.Vec3
	Health   int32
}

func (m *EntityRespawn) Opcode() Opcode { return OpEntityRespawn }
func (m *EntityRespawn) Encode(w *Writer) {
	w.WriteUint32(m.EntityID)
	w.WriteVec3(m.Position)
	w.WriteInt32(m.Health)
}
func DecodeEntityRespawn(r *Reader) (*EntityRespawn, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	pos, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	hp, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &EntityRespawn{EntityID: id, Position: pos, Health: hp}, nil
}

// PlayerRespawned confirms the requesting player's own respawn.
type PlayerRespawned struct {
	ZoneID   int32
	Position model.Vec3
	Health   int32
	Mana     int32
}

func (m *PlayerRespawned) Opcode() Opcode { return OpPlayerRespawned }
func (m *PlayerRespawned) Encode(w *Writer) {
	w.WriteInt32(m.ZoneID)
	w.WriteVec3(m.Position)
	w.WriteInt32(m.Health)
	w.WriteInt32(m.Mana)
}
func DecodePlayerRespawned(r *Reader) (*PlayerRespawned, error) {
	zoneID, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	pos, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	hp, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	mana, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &PlayerRespawned{ZoneID: zoneID, Position: pos, Health: hp, Mana: mana}, nil
}

// InventoryUpdate is a full snapshot of the requesting player's
// inventory, sent after any mutation.
type InventoryUpdate struct {
	Slots []InventorySlotWire
}

// InventorySlotWire is one inventory slot on the wire.
type InventorySlotWire struct {
	ItemID   uint32
	Quantity int32
}

func (m *InventoryUpdate) Opcode() Opcode { return OpInventoryUpdate }
func (m *InventoryUpdate) Encode(w *Writer) {
	w.WriteUint16(uint16(len(m.Slots)))
	for _, s := range m.Slots {
		w.WriteUint32(s.ItemID)
		w.WriteInt32(s.Quantity)
	}
}
func DecodeInventoryUpdate(r *Reader) (*InventoryUpdate, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	slots := make([]InventorySlotWire, 0, n)
	for i := 0; i < int(n); i++ {
		itemID, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		qty, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		slots = append(slots, InventorySlotWire{ItemID: itemID, Quantity: qty})
	}
	return &InventoryUpdate{Slots: slots}, nil
}

// EquipmentUpdate reports the requesting player's current equipment.
type EquipmentUpdate struct {
	WeaponID uint32
	ArmorID  uint32
}

func (m *EquipmentUpdate) Opcode() Opcode { return OpEquipmentUpdate }
func (m *EquipmentUpdate) Encode(w *Writer) {
	w.WriteUint32(m.WeaponID)
	w.WriteUint32(m.ArmorID)
}
func DecodeEquipmentUpdate(r *Reader) (*EquipmentUpdate, error) {
	weapon, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	armor, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &EquipmentUpdate{WeaponID: weapon, ArmorID: armor}, nil
}

// ItemSpawn announces a world item drop entering interest range.
type ItemSpawn struct {
	ItemInstanceID uint32
	ItemID         uint32
	Quantity       int32
	Position       model.Vec3
}

func (m *ItemSpawn) Opcode() Opcode { return OpItemSpawn }
func (m *ItemSpawn) Encode(w *Writer) {
	w.WriteUint32(m.ItemInstanceID)
	w.WriteUint32(m.ItemID)
	w.WriteInt32(m.Quantity)
	w.WriteVec3(m.Position)
}
func DecodeItemSpawn(r *Reader) (*ItemSpawn, error) {
	instID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	itemID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	qty, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	pos, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	return &ItemSpawn{ItemInstanceID: instID, ItemID: itemID, Quantity: qty, Position: pos}, nil
}

// ItemDespawn announces a world item drop leaving interest range or
// being picked up.
type ItemDespawn struct{ ItemInstanceID uint32 }

func (m *ItemDespawn) Opcode() Opcode   { return OpItemDespawn }
func (m *ItemDespawn) Encode(w *Writer) { w.WriteUint32(m.ItemInstanceID) }
func DecodeItemDespawn(r *Reader) (*ItemDespawn, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &ItemDespawn{ItemInstanceID: id}, nil
}

// ZoneChange tells the client which zone it is in (on character select
// and on teleport), with the zone's scene identifier for asset loading.
// A respawn is reported with PlayerRespawned instead.
type ZoneChange struct {
	ZoneID          int32
	SceneIdentifier string
	Position        model.Vec3
}

func (m *ZoneChange) Opcode() Opcode { return OpZoneChange }
func (m *ZoneChange) Encode(w *Writer) {
	w.WriteInt32(m.ZoneID)
	w.WriteString(m.SceneIdentifier)
	w.WriteVec3(m.Position)
}
func DecodeZoneChange(r *Reader) (*ZoneChange, error) {
	zoneID, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	scene, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	pos, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	return &ZoneChange{ZoneID: zoneID, SceneIdentifier: scene, Position: pos}, nil
}

// TimeSync carries the server's tick counter for client-side
// interpolation and drift correction.
type TimeSync struct{ ServerTick uint64 }

func (m *TimeSync) Opcode() Opcode   { return OpTimeSync }
func (m *TimeSync) Encode(w *Writer) { w.WriteUint64(m.ServerTick) }
func DecodeTimeSync(r *Reader) (*TimeSync, error) {
	tick, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return &TimeSync{ServerTick: tick}, nil
}

// CommandResponse is free-form text returned from an admin command.
type CommandResponse struct{ Text string }

func (m *CommandResponse) Opcode() Opcode   { return OpCommandResponse }
func (m *CommandResponse) Encode(w *Writer) { w.WriteString(m.Text) }
func DecodeCommandResponse(r *Reader) (*CommandResponse, error) {
	text, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &CommandResponse{Text: text}, nil
}

// StatsUpdate reports the requesting player's current core stats.
type StatsUpdate struct {
	Health, MaxHealth int32
	Mana, MaxMana     int32
	Attack, Defense   int32
}

func (m *StatsUpdate) Opcode() Opcode { return OpStatsUpdate }
func (m *StatsUpdate) Encode(w *Writer) {
	w.WriteInt32(m.Health)
	w.WriteInt32(m.MaxHealth)
	w.WriteInt32(m.Mana)
	w.WriteInt32(m.MaxMana)
	w.WriteInt32(m.Attack)
	w.WriteInt32(m.Defense)
}
func DecodeStatsUpdate(r *Reader) (*StatsUpdate, error) {
	var m StatsUpdate
	var err error
	if m.Health, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if m.MaxHealth, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if m.Mana, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if m.MaxMana, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if m.Attack, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if m.Defense, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	return &m, nil
}

// GoldUpdate reports the requesting player's current gold balance.
type GoldUpdate struct{ Gold int64 }

func (m *GoldUpdate) Opcode() Opcode   { return OpGoldUpdate }
func (m *GoldUpdate) Encode(w *Writer) { w.WriteUint64(uint64(m.Gold)) }
func DecodeGoldUpdate(r *Reader) (*GoldUpdate, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return &GoldUpdate{Gold: int64(v)}, nil
}

// ExperienceGained reports an XP award and the new running total.
type ExperienceGained struct {
	Amount     int64
	NewTotal   int64
}

func (m *ExperienceGained) Opcode() Opcode { return OpExperienceGained }
func (m *ExperienceGained) Encode(w *Writer) {
	w.WriteUint64(uint64(m.Amount))
	w.WriteUint64(uint64(m.NewTotal))
}
func DecodeExperienceGained(r *Reader) (*ExperienceGained, error) {
	amount, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	total, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return &ExperienceGained{Amount: int64(amount), NewTotal: int64(total)}, nil
}

// LevelUp reports the requesting player reaching a new level, with the
// recomputed max stats delivered so the client can refresh its HUD
// without waiting for the next StatsUpdate.
type LevelUp struct {
	NewLevel  int32
	MaxHealth int32
	MaxMana   int32
	Attack    int32
	Defense   int32
}

func (m *LevelUp) Opcode() Opcode { return OpLevelUp }
func (m *LevelUp) Encode(w *Writer) {
	w.WriteInt32(m.NewLevel)
	w.WriteInt32(m.MaxHealth)
	w.WriteInt32(m.MaxMana)
	w.WriteInt32(m.Attack)
	w.WriteInt32(m.Defense)
}
func DecodeLevelUp(r *Reader) (*LevelUp, error) {
	var m LevelUp
	var err error
	if m.NewLevel, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if m.MaxHealth, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if m.MaxMana, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if m.Attack, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if m.Defense, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	return &m, nil
}

// AbilityUsed announces a successfully resolved ability cast.
type AbilityUsed struct {
	SourceID  uint32
	AbilityID uint32
	TargetID  uint32
	HasTarget bool
}

func (m *AbilityUsed) Opcode() Opcode { return OpAbilityUsed }
func (m *AbilityUsed) Encode(w *Writer) {
	w.WriteUint32(m.SourceID)
	w.WriteUint32(m.AbilityID)
	w.WriteBool(m.HasTarget)
	w.WriteUint32(m.TargetID)
}
func DecodeAbilityUsed(r *Reader) (*AbilityUsed, error) {
	src, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
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
	return &AbilityUsed{SourceID: src, AbilityID: abilityID, TargetID: targetID, HasTarget: hasTarget}, nil
}

// AbilityFailed reports why a UseAbility request was rejected.
type AbilityFailed struct {
	AbilityID uint32
	Reason    string
}

func (m *AbilityFailed) Opcode() Opcode { return OpAbilityFailed }
func (m *AbilityFailed) Encode(w *Writer) {
	w.WriteUint32(m.AbilityID)
	w.WriteString(m.Reason)
}
func DecodeAbilityFailed(r *Reader) (*AbilityFailed, error) {
	abilityID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	reason, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &AbilityFailed{AbilityID: abilityID, Reason: reason}, nil
}

// AbilityCooldown reports the remaining cooldown on an ability, sent to
// the caster after a successful cast. A UseAbility rejected for being on
// cooldown is answered with AbilityFailed instead.
type AbilityCooldown struct {
	AbilityID         uint32
	RemainingSeconds  float32
}

func (m *AbilityCooldown) Opcode() Opcode { return OpAbilityCooldown }
func (m *AbilityCooldown) Encode(w *Writer) {
	w.WriteUint32(m.AbilityID)
	w.WriteFloat32(m.RemainingSeconds)
}
func DecodeAbilityCooldown(r *Reader) (*AbilityCooldown, error) {
	abilityID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	remaining, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return &AbilityCooldown{AbilityID: abilityID, RemainingSeconds: remaining}, nil
}

// BuffApplied announces a buff/debuff taking effect on an entity.
type BuffApplied struct {
	EntityID uint32
	IsEnemy  bool
	BuffID   uint32
	Kind     model.BuffKind
	Duration float32
}

func (m *BuffApplied) Opcode() Opcode { return OpBuffApplied }
func (m *BuffApplied) Encode(w *Writer) {
	w.WriteUint32(m.EntityID)
	w.WriteBool(m.IsEnemy)
	w.WriteUint32(m.BuffID)
	w.WriteByte(byte(m.Kind))
	w.WriteFloat32(m.Duration)
}
func DecodeBuffApplied(r *Reader) (*BuffApplied, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	isEnemy, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	buffID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	kind, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	duration, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return &BuffApplied{EntityID: id, IsEnemy: isEnemy, BuffID: buffID, Kind: model.BuffKind(kind), Duration: duration}, nil
}

// BuffRemoved announces a buff/debuff expiring or being cleared.
type BuffRemoved struct {
	EntityID uint32
	IsEnemy  bool
	BuffID   uint32
}

func (m *BuffRemoved) Opcode() Opcode { return OpBuffRemoved }
func (m *BuffRemoved) Encode(w *Writer) {
	w.WriteUint32(m.EntityID)
	w.WriteBool(m.IsEnemy)
	w.WriteUint32(m.BuffID)
}
func DecodeBuffRemoved(r *Reader) (*BuffRemoved, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	isEnemy, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	buffID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &BuffRemoved{EntityID: id, IsEnemy: isEnemy, BuffID: buffID}, nil
}

// ActionBarUpdate reports the requesting player's current action bar
// ability bindings.
type ActionBarUpdate struct {
	AbilityIDs [9]uint32
}

func (m *ActionBarUpdate) Opcode() Opcode { return OpActionBarUpdate }
func (m *ActionBarUpdate) Encode(w *Writer) {
	for _, id := range m.AbilityIDs {
		w.WriteUint32(id)
	}
}
func DecodeActionBarUpdate(r *Reader) (*ActionBarUpdate, error) {
	var m ActionBarUpdate
	for i := range m.AbilityIDs {
		id, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		m.AbilityIDs[i] = id
	}
	return &m, nil
}
