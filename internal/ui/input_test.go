package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

func newRoomModel() *Model {
	m := NewModel("ws://localhost:1831/ws")
	m.playerID = "p1"
	m.screen = ScreenRoom
	m.state = &protocol.RoomStatePayload{
		RoomCode: "ABCD12",
		Phase:    "DAY",
		Players: []protocol.PlayerInfo{
			{ID: "p1", Name: "守夜人", IsOwner: true, Active: true},
			{ID: "p2", Name: "敲钟人", Active: true},
			{ID: "p3", Name: "点灯人", Active: true},
		},
	}
	return m
}

func TestTargetFromSeat(t *testing.T) {
	m := newRoomModel()

	assert.Equal(t, "p2", m.targetFromSeat([]string{"2"}))
	assert.Empty(t, m.err)

	assert.Empty(t, m.targetFromSeat([]string{"9"}))
	assert.Contains(t, m.err, "没有 9 号座位")

	m.err = ""
	assert.Empty(t, m.targetFromSeat([]string{"abc"}))
	assert.Contains(t, m.err, "必须是数字")

	m.err = ""
	assert.Empty(t, m.targetFromSeat(nil))
	assert.Contains(t, m.err, "缺少座位号")
}

func TestHandleRoomCommand_Unknown(t *testing.T) {
	m := newRoomModel()
	m.handleRoomCommand("abracadabra")
	assert.Contains(t, m.err, "未知命令")
}

func TestHandleRoomCommand_UseWithoutTool(t *testing.T) {
	m := newRoomModel()
	m.handleRoomCommand("use")
	assert.Contains(t, m.err, "用法")
}

func TestHandleLineCommand(t *testing.T) {
	m := newRoomModel()

	m.handleLineCommand([]string{"1"})
	assert.Contains(t, m.err, "用法")

	m.err = ""
	m.handleLineCommand([]string{"x", "y"})
	assert.Contains(t, m.err, "必须是数字")
}

func TestToggleChatChannel(t *testing.T) {
	m := newRoomModel()
	assert.Equal(t, protocol.ChannelRoom, m.chatChannel)
	m.toggleChatChannel()
	assert.Equal(t, protocol.ChannelDemon, m.chatChannel)
	m.toggleChatChannel()
	assert.Equal(t, protocol.ChannelRoom, m.chatChannel)
}

func TestSeatLine_Marks(t *testing.T) {
	m := newRoomModel()
	m.state.Players[1].IsExorcised = true
	m.state.Players[2].Active = false

	line1 := m.seatLine(1, m.state.Players[0])
	assert.Contains(t, line1, "(你)")
	assert.Contains(t, line1, OwnerIcon)

	line2 := m.seatLine(2, m.state.Players[1])
	assert.Contains(t, line2, ExorcisedIcon)

	line3 := m.seatLine(3, m.state.Players[2])
	assert.Contains(t, line3, OfflineIcon)
}

func TestVotingYesNoRoutesToVote(t *testing.T) {
	m := newRoomModel()
	m.state.Phase = "VOTING"
	m.answerYesNo(true)
	// 表决上下文存在，不应报错
	assert.Empty(t, m.err)
}
