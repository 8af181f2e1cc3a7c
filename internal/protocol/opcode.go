package protocol

// Opcode identifies a message's wire shape. Client and server opcodes
// share one byte space; a handler only ever dispatches the half it owns.
type Opcode byte

// ProtocolVersion must match between client and server; Login carries it
// so a stale client fails fast instead of desyncing the codec.
const ProtocolVersion uint16 = 9

// MaxDatagramSize bounds every encoded message; Encode rejects anything
// that would not fit in one UDP datagram, and no caller splits a message.
const MaxDatagramSize = 1200

const (
	// Client -> server
	OpRegister Opcode = iota + 1
	OpLogin
	OpGetCharacterList
	OpCreateCharacter
	OpSelectCharacter
	OpDeleteCharacter
	OpDisconnect
	OpPlayerUpdate
	OpChatMessage
	OpAttack
	OpPickupItem
	OpUseItem
	OpDropItem
	OpEquipItem
	OpUnequipItem
	OpSwapInventorySlots
	OpUseAbility
	OpRespawnRequest
	OpTeleportRequest
	OpDevAddItem
	OpAdminCommand
)

const (
	// Server -> client
	OpRegisterSuccess Opcode = iota + 100
	OpRegisterFailed
	OpLoginSuccess
	OpLoginFailed
	OpCharacterList
	OpCharacterCreated
	OpCreateCharacterFailed
	OpCharacterSelected
	OpCharacterSelectFailed
	OpCharacterDeleted
	OpDeleteCharacterFailed
	OpPlayerSpawn
	OpPlayerDespawn
	OpEnemySpawn
	OpEnemyDespawn
	OpNpcSpawn
	OpWorldState
	OpChatBroadcast
	OpDamageEvent
	OpHealEvent
	OpEntityDeath
	OpEntityRespawn
	OpPlayerRespawned
	OpInventoryUpdate
	OpEquipmentUpdate
	OpItemSpawn
	OpItemDespawn
	OpZoneChange
	OpTimeSync
	OpCommandResponse
	OpStatsUpdate
	OpGoldUpdate
	OpExperienceGained
	OpLevelUp
	OpAbilityUsed
	OpAbilityFailed
	OpAbilityCooldown
	OpBuffApplied
	OpBuffRemoved
	OpActionBarUpdate
)
