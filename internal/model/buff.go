package model

// BuffKind is the tagged union of ability effects that persist over time.
type BuffKind uint8

const (
	BuffDamageOverTime BuffKind = iota
	BuffHealOverTime
	BuffAttackUp
	BuffDefenseUp
	BuffAttackSpeedUp
	BuffAttackDown
	BuffDefenseDown
	BuffSlow
	BuffStun
)

// ActiveBuff is a single running instance of a timed ability effect.
// A buff id is unique per target; re-applying the same ability
// overwrites the existing instance by BuffID equality (latest wins).
type ActiveBuff struct {
	BuffID            uint32 // derived from the AbilityID that created it
	Kind              BuffKind
	Amount            float32 // per-tick damage/heal, or flat stat delta
	TickInterval      float32 // seconds between DoT/HoT ticks; 0 = not periodic
	TimeSinceLastTick float32
	RemainingSeconds  float32
}

// Expired reports whether the buff's duration has elapsed.
func (b ActiveBuff) Expired() bool {
	return b.RemainingSeconds <= 0
}

// IsControl reports whether this buff kind disables acting (stun) or
// movement (slow is a speed multiplier, not a full disable).
func (b ActiveBuff) IsControl() bool {
	return b.Kind == BuffStun
}
