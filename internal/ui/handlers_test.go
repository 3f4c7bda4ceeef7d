package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

func TestHandleMsgRoomCreated(t *testing.T) {
	model := NewModel("ws://localhost:1831/ws")
	player := protocol.PlayerInfo{ID: "p1", Name: "守夜人", IsOwner: true}
	msg := protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: "ABCD12",
		Player:   player,
	})

	model.handleServerMessage(msg)

	assert.Equal(t, ScreenRoom, model.screen)
	assert.Equal(t, "ABCD12", model.state.RoomCode)
	assert.Equal(t, "LOBBY", model.state.Phase)
	assert.Len(t, model.state.Players, 1)
	assert.Equal(t, "p1", model.state.Players[0].ID)
}

func TestHandleMsgRoomState_PhaseChange(t *testing.T) {
	model := NewModel("ws://localhost:1831/ws")
	model.playerID = "p1"
	model.screen = ScreenRoom

	msg := protocol.MustNewMessage(protocol.MsgRoomState, protocol.RoomStatePayload{
		RoomCode: "ABCD12",
		Phase:    "NIGHT",
		Round:    1,
		Players:  []protocol.PlayerInfo{{ID: "p1", Name: "守夜人"}},
	})

	model.handleServerMessage(msg)

	assert.Equal(t, "NIGHT", model.phase())
	// 非恶魔夜晚只能等待
	assert.Contains(t, model.input.Placeholder, "闭眼等待")

	// 进入表决阶段
	msgVote := protocol.MustNewMessage(protocol.MsgRoomState, protocol.RoomStatePayload{
		RoomCode: "ABCD12",
		Phase:    "VOTING",
		Round:    1,
		Players:  []protocol.PlayerInfo{{ID: "p1", Name: "守夜人"}},
	})
	model.handleServerMessage(msgVote)

	assert.Contains(t, model.input.Placeholder, "表决")
}

func TestHandleMsgRoleOffer_YesNoRouting(t *testing.T) {
	model := NewModel("ws://localhost:1831/ws")
	msg := protocol.MustNewMessage(protocol.MsgRoleOffer, protocol.RoleOfferPayload{Timeout: 15})

	model.handleServerMessage(msg)
	assert.True(t, model.roleOffered)
	assert.Contains(t, model.input.Placeholder, "恶魔之位")

	// y 应答后候选状态清除
	model.answerYesNo(true)
	assert.False(t, model.roleOffered)
}

func TestAnswerYesNo_NoContext(t *testing.T) {
	model := NewModel("ws://localhost:1831/ws")
	model.answerYesNo(true)
	assert.NotEmpty(t, model.err)
}

func TestHandleMsgReveal_PossessedSwitchesChannel(t *testing.T) {
	model := NewModel("ws://localhost:1831/ws")
	assert.Equal(t, protocol.ChannelRoom, model.chatChannel)

	msg := protocol.MustNewMessage(protocol.MsgReveal, protocol.RevealPayload{Kind: "possessed_you"})
	model.handleServerMessage(msg)

	assert.Equal(t, protocol.ChannelDemon, model.chatChannel)
	assert.Len(t, model.reveals, 1)
	assert.Contains(t, model.reveals[0], "附身")
}

func TestHandleMsgReveal_RodResult(t *testing.T) {
	model := NewModel("ws://localhost:1831/ws")
	possessed := true
	msg := protocol.MustNewMessage(protocol.MsgReveal, protocol.RevealPayload{
		Kind:       "rod",
		TargetID:   "p2",
		TargetName: "敲钟人",
		Possessed:  &possessed,
	})

	model.handleServerMessage(msg)

	assert.Len(t, model.reveals, 1)
	assert.Contains(t, model.reveals[0], "敲钟人")
	assert.Contains(t, model.reveals[0], "被附身")
}

func TestHandleMsgGameOver(t *testing.T) {
	model := NewModel("ws://localhost:1831/ws")
	model.playerID = "p1"
	msg := protocol.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		Winner:    "humans",
		DemonID:   "p3",
		DemonName: "掘墓人",
		Rounds:    4,
	})

	model.handleServerMessage(msg)

	assert.NotNil(t, model.gameOver)
	assert.Equal(t, "humans", model.gameOver.Winner)
}

func TestHandleMsgPlayerOfflineOnline(t *testing.T) {
	model := NewModel("ws://localhost:1831/ws")
	model.state = &protocol.RoomStatePayload{
		Players: []protocol.PlayerInfo{
			{ID: "p1", Name: "守夜人", Active: true},
			{ID: "p2", Name: "敲钟人", Active: true},
		},
	}

	off := protocol.MustNewMessage(protocol.MsgPlayerOffline, protocol.PlayerOfflinePayload{
		PlayerID: "p2", PlayerName: "敲钟人", Timeout: 120,
	})
	model.handleServerMessage(off)
	assert.False(t, model.state.Players[1].Active)
	assert.Contains(t, model.notice, "掉线")

	on := protocol.MustNewMessage(protocol.MsgPlayerOnline, protocol.PlayerOnlinePayload{
		PlayerID: "p2", PlayerName: "敲钟人",
	})
	model.handleServerMessage(on)
	assert.True(t, model.state.Players[1].Active)
}

func TestHandleMsgChat_Capped(t *testing.T) {
	model := NewModel("ws://localhost:1831/ws")
	for i := 0; i < maxChatLines+10; i++ {
		msg := protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{
			SenderID: "p2", SenderName: "敲钟人", Content: "嘘", Channel: protocol.ChannelRoom,
		})
		model.handleServerMessage(msg)
	}
	assert.Len(t, model.chat, maxChatLines)
}

func TestFormatToolResult(t *testing.T) {
	possessed := true
	tests := []struct {
		name    string
		payload protocol.ToolResultPayload
		want    string
	}{
		{
			name:    "board verdict",
			payload: protocol.ToolResultPayload{Tool: "board", TargetName: "敲钟人", Possessed: &possessed},
			want:    "被附身",
		},
		{
			name:    "water purified",
			payload: protocol.ToolResultPayload{Tool: "water", TargetName: "敲钟人", Purified: true},
			want:    "净化",
		},
		{
			name:    "rod silent",
			payload: protocol.ToolResultPayload{Tool: "rod", ActorName: "守夜人", Report: protocol.ReportSilent},
			want:    "拒绝透露",
		},
		{
			name:    "exorcism",
			payload: protocol.ToolResultPayload{Tool: "exorcism", TargetName: "敲钟人"},
			want:    "驱魔",
		},
		{
			name:    "salt",
			payload: protocol.ToolResultPayload{Tool: "salt", Warded: []string{"p1", "p2"}},
			want:    "守护了 2 名",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, formatToolResult(&tt.payload), tt.want)
		})
	}
}
