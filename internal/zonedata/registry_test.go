package zonedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervale/coreserver/internal/model"
)

func TestRegistry_GetAndValid(t *testing.T) {
	r := NewRegistry(DefaultZones())

	z, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Shinsoo Village", z.Name)

	assert.True(t, r.Valid(300))
	assert.False(t, r.Valid(9999))

	_, ok = r.Get(9999)
	assert.False(t, ok)
}

func TestRegistry_MustGet_FallsBackOnUnknownZone(t *testing.T) {
	r := NewRegistry(DefaultZones())

	z := r.MustGet(9999)
	require.NotNil(t, z)
	assert.True(t, z.IsDefaultSpawn)
}

func TestRegistry_DefaultZoneForEmpire(t *testing.T) {
	r := NewRegistry(DefaultZones())

	z := r.DefaultZoneForEmpire(int(model.EmpireYellow), 1)
	require.NotNil(t, z)
	assert.Equal(t, int32(100), z.ID)

	// Empire with no registered default falls back to the given zone id.
	z = r.DefaultZoneForEmpire(999, 1)
	require.NotNil(t, z)
	assert.Equal(t, int32(1), z.ID)
}

func TestRegistry_All_ReturnsEveryZone(t *testing.T) {
	r := NewRegistry(DefaultZones())
	assert.Len(t, r.All(), 4)
}

func TestErrZoneNotFound_Error(t *testing.T) {
	err := ErrZoneNotFound{ZoneID: 42}
	assert.Contains(t, err.Error(), "42")
}
