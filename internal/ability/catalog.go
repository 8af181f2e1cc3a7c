package ability

import "github.com/embervale/coreserver/internal/model"

func classPtr(c model.Class) *model.Class { return &c }

// Catalog is the boot-loaded, read-only set of ability definitions.
type Catalog struct {
	abilities map[uint32]Definition
}

// NewCatalog builds the catalog from the built-in ability table.
func NewCatalog() *Catalog {
	c := &Catalog{abilities: make(map[uint32]Definition, len(builtinAbilities))}
	for _, a := range builtinAbilities {
		c.abilities[a.ID] = a
	}
	return c
}

// Get looks up an ability by id.
func (c *Catalog) Get(id uint32) (Definition, bool) {
	a, ok := c.abilities[id]
	return a, ok
}

// builtinAbilities is the starting ability roster, two-to-three per
// class plus one area ability, covering every effect kind the wire
// protocol and ability engine define except EffectDebuffDefense, which
// no builtin ability uses.
var builtinAbilities = []Definition{
	{
		ID: 1, Name: "Throwing Knives", ClassRestriction: classPtr(model.ClassNinja),
		LevelRequirement: 1, ManaCost: 10, Cooldown: 4, Range: 8,
		TargetType: model.TargetEnemy,
		Effects:    []Effect{{Kind: EffectDamage, Base: 8, AttackScaling: 0.6}},
	},
	{
		ID: 2, Name: "Poison Strike", ClassRestriction: classPtr(model.ClassNinja),
		LevelRequirement: 5, ManaCost: 15, Cooldown: 8, Range: 3,
		TargetType: model.TargetEnemy,
		Effects: []Effect{
			{Kind: EffectDamage, Base: 5, AttackScaling: 0.3},
			{Kind: EffectDamageOverTime, PerTick: 4, Interval: 2, Duration: 10},
		},
	},
	{
		ID: 10, Name: "Power Strike", ClassRestriction: classPtr(model.ClassWarrior),
		LevelRequirement: 1, ManaCost: 10, Cooldown: 3, Range: 3,
		TargetType: model.TargetEnemy,
		Effects:    []Effect{{Kind: EffectDamage, Base: 12, AttackScaling: 0.8}},
	},
	{
		ID: 11, Name: "Battle Cry", ClassRestriction: classPtr(model.ClassWarrior),
		LevelRequirement: 5, ManaCost: 20, Cooldown: 20, Range: 0,
		TargetType: model.TargetSelfOnly,
		Effects:    []Effect{{Kind: EffectBuffAttack, Amount: 10, Duration: 15}},
	},
	{
		ID: 12, Name: "Concussive Blow", ClassRestriction: classPtr(model.ClassWarrior),
		LevelRequirement: 10, ManaCost: 20, Cooldown: 15, Range: 3,
		TargetType: model.TargetEnemy,
		Effects:    []Effect{{Kind: EffectStun, Duration: 2}},
	},
	{
		ID: 20, Name: "Dark Spear", ClassRestriction: classPtr(model.ClassSura),
		LevelRequirement: 1, ManaCost: 15, Cooldown: 5, Range: 10,
		TargetType: model.TargetEnemy,
		Effects:    []Effect{{Kind: EffectDamage, Base: 10, AttackScaling: 0.7}},
	},
	{
		ID: 21, Name: "Crippling Curse", ClassRestriction: classPtr(model.ClassSura),
		LevelRequirement: 8, ManaCost: 20, Cooldown: 10, Range: 8,
		TargetType: model.TargetEnemy,
		Effects: []Effect{
			{Kind: EffectDebuffAttack, Amount: 5, Duration: 8},
			{Kind: EffectSlow, Multiplier: 0.5, Duration: 8},
		},
	},
	{
		ID: 22, Name: "Soul Siphon", ClassRestriction: classPtr(model.ClassSura),
		LevelRequirement: 12, ManaCost: 25, Cooldown: 12, Range: 8,
		TargetType: model.TargetEnemy,
		Effects:    []Effect{{Kind: EffectDamage, Base: 14, AttackScaling: 0.5}},
	},
	{
		ID: 30, Name: "Healing Wave", ClassRestriction: classPtr(model.ClassShaman),
		LevelRequirement: 1, ManaCost: 20, Cooldown: 4, Range: 10,
		TargetType: model.TargetAlly,
		Effects:    []Effect{{Kind: EffectHeal, HealBase: 20, HealthScaling: 0.15}},
	},
	{
		ID: 31, Name: "Blessing", ClassRestriction: classPtr(model.ClassShaman),
		LevelRequirement: 5, ManaCost: 25, Cooldown: 15, Range: 10,
		TargetType: model.TargetAlly,
		Effects: []Effect{
			{Kind: EffectBuffDefense, Amount: 8, Duration: 20},
			{Kind: EffectHealOverTime, PerTick: 0, Interval: 3, Duration: 12},
		},
	},
	{
		ID: 32, Name: "Spirit Haste", ClassRestriction: classPtr(model.ClassShaman),
		LevelRequirement: 10, ManaCost: 20, Cooldown: 20, Range: 10,
		TargetType: model.TargetAlly,
		Effects:    []Effect{{Kind: EffectBuffAttackSpeed, Multiplier: 1.3, Duration: 15}},
	},
	{
		ID: 40, Name: "Earthquake Stomp", ClassRestriction: classPtr(model.ClassWarrior),
		LevelRequirement: 15, ManaCost: 30, Cooldown: 20, Range: 5,
		TargetType: model.TargetAreaAroundSelf,
		Effects:    []Effect{{Kind: EffectDamage, Base: 10, AttackScaling: 0.4}},
	},
}
