package model

import "time"

// Character is a persisted character identity, owned by exactly one
// Account. Each character owns one PersistedState, one Inventory and one
// Equipment.
type Character struct {
	CharacterID int64
	AccountID   int64
	Name        string
	Class       Class
	Gender      Gender
	Empire      Empire
	Level       int32
	CreatedAt   time.Time
}

// PersistedState is the mutable runtime state of a character that survives
// across sessions.
type PersistedState struct {
	ZoneID     int32
	Position   Vec3
	Rotation   float32
	Health     int32
	MaxHealth  int32
	Mana       int32
	MaxMana    int32
	Level      int32
	Experience int64
	Attack     int32
	Defense    int32
	Gold       int64
}

// ClampStats enforces 0 <= Health <= MaxHealth and 0 <= Mana <= MaxMana.
func (s *PersistedState) ClampStats() {
	if s.Health < 0 {
		s.Health = 0
	}
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	if s.Mana < 0 {
		s.Mana = 0
	}
	if s.Mana > s.MaxMana {
		s.Mana = s.MaxMana
	}
}

// classStartingStats holds (health, mana, attack, defense) at level 1,
// resolved from the distilled prototype. The class starter items live
// separately in internal/persistence/catalog.go.
var classStartingStats = map[Class]struct {
	Health, Mana, Attack, Defense int32
}{
	ClassNinja:   {Health: 80, Mana: 40, Attack: 12, Defense: 4},
	ClassWarrior: {Health: 120, Mana: 20, Attack: 10, Defense: 8},
	ClassSura:    {Health: 90, Mana: 60, Attack: 11, Defense: 5},
	ClassShaman:  {Health: 70, Mana: 80, Attack: 8, Defense: 4},
}

// NewPersistedState returns the level-1 starting state for class/empire,
// placed at the empire's default zone (x=0, y=1, z=0 within that zone).
func NewPersistedState(class Class, empire Empire) PersistedState {
	base := classStartingStats[class]
	return PersistedState{
		ZoneID:     empire.DefaultZone(),
		Position:   Vec3{X: 0, Y: 1, Z: 0},
		Rotation:   0,
		Health:     base.Health,
		MaxHealth:  base.Health,
		Mana:       base.Mana,
		MaxMana:    base.Mana,
		Level:      1,
		Experience: 0,
		Attack:     base.Attack,
		Defense:    base.Defense,
		Gold:       0,
	}
}

// RecomputeForLevel recomputes MaxHealth/MaxMana/Attack/Defense from
// class+level using a fixed per-level growth rate over the class's
// level-1 baseline, and fully heals. Called on level-up.
func (s *PersistedState) RecomputeForLevel(class Class) {
	base := classStartingStats[class]
	levels := int64(s.Level - 1)
	s.MaxHealth = base.Health + int32(levels*12)
	s.MaxMana = base.Mana + int32(levels*6)
	s.Attack = base.Attack + int32(levels*2)
	s.Defense = base.Defense + int32(levels*1)
	s.Health = s.MaxHealth
	s.Mana = s.MaxMana
}
