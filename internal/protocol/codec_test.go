package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervale/coreserver/internal/model"
)

func TestEncodeDecode_ClientMessages(t *testing.T) {
	cases := []Message{
		&Login{ProtocolVersion: ProtocolVersion, Username: "adventurer", Password: "hunter2"},
		&CreateCharacter{Name: "Ari", Class: model.ClassWarrior, Gender: model.GenderFemale, Empire: model.EmpireRed},
		&Attack{TargetID: 42},
		&ZoneChange{ZoneID: 3, SceneIdentifier: "frostreach", Position: model.Vec3{X: 1, Y: 2, Z: 3}},
	}

	for _, want := range cases {
		data, err := Encode(want)
		require.NoError(t, err)
		assert.Equal(t, byte(want.Opcode()), data[0])

		var got Message
		if _, ok := want.(*ZoneChange); ok {
			got, err = DecodeServerMessage(data)
		} else {
			got, err = DecodeClientMessage(data)
		}
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEncodeDecode_ServerMessages(t *testing.T) {
	cases := []Message{
		&PlayerSpawn{
			RuntimeID: 7, Name: "Ari", Class: model.ClassWarrior, Gender: model.GenderFemale,
			Empire: model.EmpireRed, Level: 5, Position: model.Vec3{X: 10, Y: 0, Z: -5}, Rotation: 1.5,
		},
		&DamageEvent{SourceID: 1, TargetID: 2, TargetIsEnemy: true, Amount: 37, WasCrit: true},
		&CommandResponse{Text: "Unknown command: frobnicate"},
	}

	for _, want := range cases {
		data, err := Encode(want)
		require.NoError(t, err)

		got, err := DecodeServerMessage(data)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodeClientMessage_EmptyDatagramErrors(t *testing.T) {
	_, err := DecodeClientMessage(nil)
	assert.Error(t, err)
}

func TestDecodeClientMessage_UnknownOpcodeErrors(t *testing.T) {
	_, err := DecodeClientMessage([]byte{0xFF})
	assert.Error(t, err)
}

func TestEncode_RejectsOversizedDatagram(t *testing.T) {
	huge := make([]byte, MaxDatagramSize)
	_, err := Encode(&CommandResponse{Text: string(huge)})
	assert.Error(t, err)
}
