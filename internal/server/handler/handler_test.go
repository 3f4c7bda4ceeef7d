package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hunt-the-demon/internal/config"
	r "github.com/palemoky/hunt-the-demon/internal/game/room"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/server/session"
	"github.com/palemoky/hunt-the-demon/internal/testutil"
)

func newTestHandler(server *testutil.MockServer) (*Handler, *r.RoomManager, *session.SessionManager) {
	cfg := config.Default()
	rm := r.NewRoomManager(nil, &cfg.Game)
	sm := session.NewSessionManager()
	h := NewHandler(HandlerDeps{
		Server:         server,
		RoomManager:    rm,
		SessionManager: sm,
		GameConfig:     &cfg.Game,
	})
	return h, rm, sm
}

func TestHandler_UnknownMessageType(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	h, _, _ := newTestHandler(mockServer)

	client := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.Handle(client, &protocol.Message{Type: "definitely_not_a_thing"})

	require.Len(t, client.Messages, 1)
	assert.Equal(t, protocol.MsgError, client.Messages[0].Type)
}

func TestHandler_HandlePing(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	h, _, _ := newTestHandler(mockServer)

	client := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	msg := protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 12345})
	h.Handle(client, msg)

	msgs := client.MessagesOfType(protocol.MsgPong)
	require.Len(t, msgs, 1)
	pong, err := protocol.ParsePayload[protocol.PongPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(12345), pong.ClientTimestamp)
	assert.NotZero(t, pong.ServerTimestamp)
}

func TestHandler_CreateAndJoinRoom(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	mockServer.On("IsMaintenanceMode").Return(false)
	h, _, _ := newTestHandler(mockServer)

	owner := &testutil.SimpleClient{ID: "p0", Name: "Alice"}
	h.handleCreateRoom(owner, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{}))

	created := owner.MessagesOfType(protocol.MsgRoomCreated)
	require.Len(t, created, 1)
	payload, err := protocol.ParsePayload[protocol.RoomCreatedPayload](created[0])
	require.NoError(t, err)
	assert.NotEmpty(t, payload.RoomCode)
	assert.True(t, payload.Player.IsOwner)
	assert.NotZero(t, payload.Settings.MaxPlayers)

	joiner := &testutil.SimpleClient{ID: "p1", Name: "Bob"}
	h.handleJoinRoom(joiner, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode: payload.RoomCode,
	}))

	joined := joiner.MessagesOfType(protocol.MsgRoomJoined)
	require.Len(t, joined, 1)
	joinedPayload, err := protocol.ParsePayload[protocol.RoomJoinedPayload](joined[0])
	require.NoError(t, err)
	assert.Len(t, joinedPayload.Players, 2)
}

func TestHandler_CreateRoom_MaintenanceMode(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	mockServer.On("IsMaintenanceMode").Return(true)
	h, _, _ := newTestHandler(mockServer)

	client := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.handleCreateRoom(client, &protocol.Message{Type: protocol.MsgCreateRoom})

	msgs := client.MessagesOfType(protocol.MsgError)
	require.Len(t, msgs, 1)
	errPayload, err := protocol.ParsePayload[protocol.ErrorPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeMaintenance, errPayload.Code)
}

func TestHandler_JoinRoom_UnknownCode(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	mockServer.On("IsMaintenanceMode").Return(false)
	h, _, _ := newTestHandler(mockServer)

	client := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.handleJoinRoom(client, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode: "000000",
	}))

	msgs := client.MessagesOfType(protocol.MsgError)
	require.Len(t, msgs, 1)
	errPayload, err := protocol.ParsePayload[protocol.ErrorPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeRoomNotFound, errPayload.Code)
}

func TestHandler_CustomNameApplied(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	mockServer.On("IsMaintenanceMode").Return(false)
	h, _, sm := newTestHandler(mockServer)

	client := &testutil.SimpleClient{ID: "p1", Name: "随机昵称"}
	sm.CreateSession("p1", "随机昵称")

	h.handleCreateRoom(client, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		Name: "夜行者",
	}))

	assert.Equal(t, "夜行者", client.Name)
	assert.Equal(t, "夜行者", sm.GetSession("p1").PlayerName)
}

func TestHandler_HandleMove_NotInRoom(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	h, _, _ := newTestHandler(mockServer)

	client := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	h.handleMove(client, protocol.MustNewMessage(protocol.MsgMove, protocol.MovePayload{
		Action: protocol.ActionPass,
	}))

	msgs := client.MessagesOfType(protocol.MsgError)
	require.Len(t, msgs, 1)
	errPayload, err := protocol.ParsePayload[protocol.ErrorPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeNotInRoom, errPayload.Code)
}

func TestHandler_HandleMove_RoutedToRoom(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	mockServer.On("IsMaintenanceMode").Return(false)
	h, rm, _ := newTestHandler(mockServer)

	owner := &testutil.SimpleClient{ID: "p0", Name: "Alice"}
	h.handleCreateRoom(owner, &protocol.Message{Type: protocol.MsgCreateRoom})

	// 人数不足时开局会被引擎拒绝，错误码经处理器转发
	h.handleMove(owner, protocol.MustNewMessage(protocol.MsgMove, protocol.MovePayload{
		Action: protocol.ActionStart,
	}))

	msgs := owner.MessagesOfType(protocol.MsgError)
	require.Len(t, msgs, 1)
	errPayload, err := protocol.ParsePayload[protocol.ErrorPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeTooFewPlayers, errPayload.Code)
	assert.NotNil(t, rm.GetRoom(owner.RoomCode))
}

func TestHandler_UpdateSettings(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	mockServer.On("IsMaintenanceMode").Return(false)
	h, rm, _ := newTestHandler(mockServer)

	owner := &testutil.SimpleClient{ID: "p0", Name: "Alice"}
	h.handleCreateRoom(owner, &protocol.Message{Type: protocol.MsgCreateRoom})

	h.handleUpdateSettings(owner, protocol.MustNewMessage(protocol.MsgUpdateSettings, protocol.SettingsInfo{
		MinPlayers: 5,
		DayTimeout: 45,
	}))

	room := rm.GetRoom(owner.RoomCode)
	require.NotNil(t, room)
	info := room.SettingsInfo()
	assert.Equal(t, 5, info.MinPlayers)
	assert.Equal(t, 45, info.DayTimeout)
}

func TestHandler_HandleChat_RateLimited(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	mockClient := new(testutil.MockClient)
	mockLimiter := new(testutil.MockChatLimiter)

	cfg := config.Default()
	h := NewHandler(HandlerDeps{
		Server:      mockServer,
		ChatLimiter: mockLimiter,
		GameConfig:  &cfg.Game,
	})

	mockClient.On("GetID").Return("p1")
	mockLimiter.On("AllowChat", "p1").Return(false, "说太快了")
	mockClient.On("SendMessage", mock.MatchedBy(func(msg *protocol.Message) bool {
		return msg.Type == protocol.MsgError
	})).Return()

	msg := protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{Content: "Spam"})
	h.handleChat(mockClient, msg)

	mockClient.AssertExpectations(t)
	mockLimiter.AssertExpectations(t)
}

func TestHandler_HandleChat_Room(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	mockLimiter := new(testutil.MockChatLimiter)
	mockLimiter.On("AllowChat", "p0").Return(true, "")

	cfg := config.Default()
	rm := r.NewRoomManager(nil, &cfg.Game)
	room, clients := r.NewTestRoom(3)
	rm.AddRoomForTest(room)

	h := NewHandler(HandlerDeps{
		Server:      mockServer,
		RoomManager: rm,
		ChatLimiter: mockLimiter,
		GameConfig:  &cfg.Game,
	})

	sender := clients[0]
	sender.RoomCode = room.Code
	h.handleChat(sender, protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{
		Content: "大家好",
	}))

	// 全房间都收到，频道默认公共
	for _, c := range clients {
		msgs := c.MessagesOfType(protocol.MsgChat)
		require.Len(t, msgs, 1)
		payload, err := protocol.ParsePayload[protocol.ChatPayload](msgs[0])
		require.NoError(t, err)
		assert.Equal(t, protocol.ChannelRoom, payload.Channel)
		assert.Equal(t, "大家好", payload.Content)
	}
	mockLimiter.AssertExpectations(t)
}

func TestHandler_Reconnect_InvalidToken(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	h, _, sm := newTestHandler(mockServer)
	sm.CreateSession("p1", "Alice")

	client := &testutil.SimpleClient{ID: "tmp", Name: "新连接"}
	h.handleReconnect(client, protocol.MustNewMessage(protocol.MsgReconnect, protocol.ReconnectPayload{
		Token:    "bogus",
		PlayerID: "p1",
	}))

	msgs := client.MessagesOfType(protocol.MsgError)
	require.Len(t, msgs, 1)
	assert.Empty(t, client.MessagesOfType(protocol.MsgReconnected))
}

func TestHandler_Reconnect_RestoresRoom(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	mockServer.On("IsMaintenanceMode").Return(false)
	mockServer.On("UnregisterClient", "tmp").Return()
	mockServer.On("RegisterClient", "p0", mock.Anything).Return()
	h, rm, sm := newTestHandler(mockServer)

	// 建房后掉线
	owner := &testutil.SimpleClient{ID: "p0", Name: "Alice"}
	sess := sm.CreateSession("p0", "Alice")
	h.handleCreateRoom(owner, &protocol.Message{Type: protocol.MsgCreateRoom})
	roomCode := owner.RoomCode
	sm.SetRoom("p0", roomCode)
	sm.SetOffline("p0")
	rm.NotifyPlayerOffline(owner, 120)

	// 新连接带令牌重连
	fresh := &testutil.SimpleClient{ID: "tmp", Name: "新连接"}
	h.handleReconnect(fresh, protocol.MustNewMessage(protocol.MsgReconnect, protocol.ReconnectPayload{
		Token:    sess.ReconnectToken,
		PlayerID: "p0",
	}))

	assert.Equal(t, "p0", fresh.ID)
	assert.Equal(t, roomCode, fresh.RoomCode)
	assert.True(t, sm.IsOnline("p0"))

	msgs := fresh.MessagesOfType(protocol.MsgReconnected)
	require.Len(t, msgs, 1)
	payload, err := protocol.ParsePayload[protocol.ReconnectedPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, roomCode, payload.RoomCode)
	require.NotNil(t, payload.RoomState)
	assert.Equal(t, "LOBBY", payload.RoomState.Phase)

	mockServer.AssertExpectations(t)
}
