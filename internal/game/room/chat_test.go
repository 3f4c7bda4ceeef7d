package room

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hunt-the-demon/internal/apperrors"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

func TestChat_RoomChannelBroadcast(t *testing.T) {
	t.Parallel()

	r, clients := NewTestRoom(3)
	require.NoError(t, r.HandleChat("p0", &protocol.ChatPayload{Content: "大家好"}))

	for _, c := range clients {
		msgs := c.MessagesOfType(protocol.MsgChat)
		require.Len(t, msgs, 1)
		payload, err := protocol.ParsePayload[protocol.ChatPayload](msgs[0])
		require.NoError(t, err)
		assert.Equal(t, "p0", payload.SenderID)
		assert.Equal(t, "大家好", payload.Content)
		assert.Equal(t, protocol.ChannelRoom, payload.Channel)
	}
}

func TestChat_HistoryReplay(t *testing.T) {
	t.Parallel()

	r, clients := NewTestRoom(3)
	require.NoError(t, r.HandleChat("p0", &protocol.ChatPayload{Content: "first"}))
	require.NoError(t, r.HandleChat("p1", &protocol.ChatPayload{Content: "second"}))

	// A (re)joining player gets the full public history in order
	late := clients[2]
	late.Messages = nil
	r.mu.Lock()
	r.replayChat("p2")
	r.mu.Unlock()

	msgs := late.MessagesOfType(protocol.MsgChat)
	require.Len(t, msgs, 2)
	first, err := protocol.ParsePayload[protocol.ChatPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, "first", first.Content)
}

func TestChat_HistoryBounded(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(2)
	for i := 0; i < chatHistoryLimit+10; i++ {
		require.NoError(t, r.HandleChat("p0", &protocol.ChatPayload{Content: fmt.Sprintf("msg %d", i)}))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Len(t, r.chatHistory, chatHistoryLimit)
	assert.Equal(t, "msg 10", r.chatHistory[0].Content)
}

func TestChat_DemonChannelPrivacy(t *testing.T) {
	t.Parallel()

	r, clients := NewTestRoom(4)
	r.Players["p1"].IsDemon = true
	r.possessed["p2"] = true

	// Demon whispers to the possessed player
	require.NoError(t, r.HandleChat("p1", &protocol.ChatPayload{
		Content: "听我说",
		Channel: protocol.ChannelDemon,
		PeerID:  "p2",
	}))
	// The possessed player answers; no peer needed, it always reaches the demon
	require.NoError(t, r.HandleChat("p2", &protocol.ChatPayload{
		Content: "我在",
		Channel: protocol.ChannelDemon,
	}))

	assert.Len(t, clients[1].MessagesOfType(protocol.MsgChat), 2)
	assert.Len(t, clients[2].MessagesOfType(protocol.MsgChat), 2)
	// Bystanders see nothing
	assert.Empty(t, clients[0].MessagesOfType(protocol.MsgChat))
	assert.Empty(t, clients[3].MessagesOfType(protocol.MsgChat))
}

func TestChat_DemonChannelRequiresPossession(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(4)
	r.Players["p1"].IsDemon = true

	// Whispering to a player who is not possessed is rejected
	err := r.HandleChat("p1", &protocol.ChatPayload{
		Content: "喂",
		Channel: protocol.ChannelDemon,
		PeerID:  "p2",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotEligible)

	// A free player cannot reach the demon either
	err = r.HandleChat("p3", &protocol.ChatPayload{
		Content: "喂",
		Channel: protocol.ChannelDemon,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotEligible)
}

func TestChat_FreeingDiscardsChannelHistory(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(4)
	r.Players["p1"].IsDemon = true
	r.possessed["p2"] = true

	require.NoError(t, r.HandleChat("p1", &protocol.ChatPayload{
		Content: "秘密",
		Channel: protocol.ChannelDemon,
		PeerID:  "p2",
	}))

	r.mu.Lock()
	require.NotEmpty(t, r.demonHistory["p2"])
	r.freePlayer(r.Players["p2"])
	_, exists := r.demonHistory["p2"]
	r.mu.Unlock()

	assert.False(t, exists)

	// The channel is gone with the possession
	err := r.HandleChat("p2", &protocol.ChatPayload{Content: "还在吗", Channel: protocol.ChannelDemon})
	assert.ErrorIs(t, err, apperrors.ErrNotEligible)
}
