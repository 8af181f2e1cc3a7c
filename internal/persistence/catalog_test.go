package persistence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/persistence"
)

func TestStarterLoadout_WarriorGetsClaymoreAndFivePotions(t *testing.T) {
	weaponID, stacks := persistence.StarterLoadout(model.ClassWarrior)
	assert.Equal(t, uint32(12), weaponID)

	var potionQty int32
	var hasRing bool
	for _, s := range stacks {
		if s.ItemID == model.HealthPotionItemID {
			potionQty = s.Quantity
		}
		if s.ItemID == model.TeleportRingID {
			hasRing = true
		}
	}
	assert.Equal(t, int32(5), potionQty)
	assert.True(t, hasRing)
}

func TestStarterLoadout_ShamanGetsManaPotions(t *testing.T) {
	_, stacks := persistence.StarterLoadout(model.ClassShaman)
	var hasMana bool
	for _, s := range stacks {
		if s.ItemID == 2 {
			hasMana = true
		}
	}
	assert.True(t, hasMana)
}

func TestStarterLoadout_WarriorHasNoManaPotions(t *testing.T) {
	_, stacks := persistence.StarterLoadout(model.ClassWarrior)
	for _, s := range stacks {
		assert.NotEqual(t, uint32(2), s.ItemID)
	}
}
