package handler

import (
	"time"

	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/types"
)

// handleChat 处理聊天消息
// 公共频道广播给全房间，恶魔频道由房间引擎校验可见性
func (h *Handler) handleChat(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChatPayload](msg)
	if err != nil {
		return
	}

	// 聊天限流检查
	if h.chatLimiter != nil {
		allowed, reason := h.chatLimiter.AllowChat(client.GetID())
		if !allowed {
			client.SendMessage(protocol.NewErrorMessageWithText(
				protocol.ErrCodeRateLimited, reason))
			return
		}
	}

	// 填充发送者信息
	payload.SenderID = client.GetID()
	payload.SenderName = client.GetName()
	payload.Time = time.Now().Unix()
	if payload.Channel == "" {
		payload.Channel = protocol.ChannelRoom
	}

	room := h.roomManager.GetRoom(client.GetRoom())
	if room == nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeNotInRoom, "不在房间中，无法发送消息"))
		return
	}

	if err := room.HandleChat(client.GetID(), payload); err != nil {
		sendError(client, err)
	}
}
