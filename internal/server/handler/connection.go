package handler

import (
	"log"
	"time"

	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	// 立即回复 pong
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleReconnect 处理断线重连
func (h *Handler) handleReconnect(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMessage))
		return
	}

	// 验证重连令牌
	if !h.sessionManager.CanReconnect(payload.Token, payload.PlayerID) {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "重连令牌无效或已过期"))
		return
	}

	sess := h.sessionManager.GetSession(payload.PlayerID)
	if sess == nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "会话不存在"))
		return
	}

	// 新连接接手旧会话的身份，旧连接 ID 注销
	oldID := client.GetID()
	h.server.UnregisterClient(oldID)
	h.sessionManager.DeleteSession(oldID)
	client.SetIdentity(sess.PlayerID, sess.PlayerName)
	h.server.RegisterClient(sess.PlayerID, client)

	h.sessionManager.SetOnline(sess.PlayerID)

	reconnectPayload := protocol.ReconnectedPayload{
		PlayerID:   sess.PlayerID,
		PlayerName: sess.PlayerName,
	}

	// 如果掉线前在房间中，换上新连接并恢复状态
	if roomCode := h.sessionManager.GetRoom(sess.PlayerID); roomCode != "" {
		h.tryRestoreRoomState(client, sess.PlayerID, &reconnectPayload)
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgReconnected, reconnectPayload))

	log.Printf("🔄 玩家 %s (%s) 重连成功", sess.PlayerName, sess.PlayerID)
}

// tryRestoreRoomState 尝试恢复房间状态
func (h *Handler) tryRestoreRoomState(client types.ClientInterface, playerID string, payload *protocol.ReconnectedPayload) {
	rm, err := h.roomManager.ReconnectPlayer(playerID, client)
	if err != nil {
		log.Printf("重连到房间失败: %v", err)
		return
	}

	payload.RoomCode = rm.Code
	state := rm.StatePayload()
	payload.RoomState = &state
}
