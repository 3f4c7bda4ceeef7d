package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMessage(t *testing.T) {
	// Test creating a simple message
	payload := JoinRoomPayload{RoomCode: "1234"}
	msg, err := NewMessage(MsgJoinRoom, payload)

	assert.NoError(t, err)
	assert.NotNil(t, msg)
	assert.Equal(t, MsgJoinRoom, msg.Type)
	assert.NotEmpty(t, msg.Payload)
}

func TestEncodeDecode(t *testing.T) {
	// Setup original message
	payload := JoinRoomPayload{RoomCode: "1234"}
	originalMsg, err := NewMessage(MsgJoinRoom, payload)
	assert.NoError(t, err)

	// Encode
	bytes, err := originalMsg.Encode()
	assert.NoError(t, err)
	assert.NotEmpty(t, bytes)

	// Decode
	decodedMsg, err := Decode(bytes)
	assert.NoError(t, err)
	assert.NotNil(t, decodedMsg)

	// Verify
	assert.Equal(t, originalMsg.Type, decodedMsg.Type)
	assert.Equal(t, originalMsg.Payload, decodedMsg.Payload)
}

func TestParsePayload(t *testing.T) {
	yes := true
	original := MovePayload{Action: ActionVote, Vote: &yes}
	msg := MustNewMessage(MsgMove, original)

	parsed, err := ParsePayload[MovePayload](msg)
	assert.NoError(t, err)
	assert.Equal(t, ActionVote, parsed.Action)
	if assert.NotNil(t, parsed.Vote) {
		assert.True(t, *parsed.Vote)
	}
	// Optional fields stay nil when absent
	assert.Nil(t, parsed.Accept)
	assert.Nil(t, parsed.LineStart)
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage(ErrCodeRoomNotFound)
	assert.Equal(t, MsgError, msg.Type)

	parsed, err := ParsePayload[ErrorPayload](msg)
	assert.NoError(t, err)
	assert.Equal(t, ErrCodeRoomNotFound, parsed.Code)
	assert.Equal(t, ErrorText(ErrCodeRoomNotFound), parsed.Message)
}

func TestNewErrorMessageWithText(t *testing.T) {
	msg := NewErrorMessageWithText(ErrCodeInvalidTarget, "不能选择自己")

	parsed, err := ParsePayload[ErrorPayload](msg)
	assert.NoError(t, err)
	assert.Equal(t, ErrCodeInvalidTarget, parsed.Code)
	assert.Equal(t, "不能选择自己", parsed.Message)
}

func TestErrorTextUnknownCode(t *testing.T) {
	// Unknown codes fall back to the generic message
	assert.Equal(t, ErrorText(ErrCodeUnknown), ErrorText(424242))
}
