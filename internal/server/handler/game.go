package handler

import (
	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/types"
)

// handleMove 处理统一行动消息，交给房间引擎按阶段仲裁
func (h *Handler) handleMove(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.MovePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMessage))
		return
	}

	room := h.roomManager.GetRoom(client.GetRoom())
	if room == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return
	}

	if err := room.SubmitMove(client.GetID(), payload); err != nil {
		sendError(client, err)
	}
}
