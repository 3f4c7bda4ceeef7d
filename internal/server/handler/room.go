package handler

import (
	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeMaintenance, "服务器维护中，暂停创建房间"))
		return
	}

	var payload protocol.CreateRoomPayload
	if len(msg.Payload) > 0 {
		p, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
		if err != nil {
			client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMessage))
			return
		}
		payload = *p
	}

	if payload.Name != "" {
		h.rename(client, payload.Name)
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.roomManager.LeaveRoom(client)
	}

	room, err := h.roomManager.CreateRoom(client, payload.Color, payload.AvatarID)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: room.Code,
		Player:   room.GetPlayerInfo(client.GetID()),
		Settings: room.SettingsInfo(),
	}))
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeMaintenance, "服务器维护中，暂停加入房间"))
		return
	}

	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMessage))
		return
	}

	if payload.Name != "" {
		h.rename(client, payload.Name)
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.roomManager.LeaveRoom(client)
	}

	room, err := h.roomManager.JoinRoom(client, payload.RoomCode, payload.Color, payload.AvatarID)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: room.Code,
		Player:   room.GetPlayerInfo(client.GetID()),
		Players:  room.GetAllPlayersInfo(),
		Settings: room.SettingsInfo(),
	}))
}

// handleLeaveRoom 处理离开房间
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	h.roomManager.LeaveRoom(client)
}

// handleUpdateSettings 房主修改房间设置
func (h *Handler) handleUpdateSettings(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SettingsInfo](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMessage))
		return
	}

	room := h.roomManager.GetRoom(client.GetRoom())
	if room == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return
	}

	if err := room.UpdateSettings(client.GetID(), payload, h.gameCfg.MaxPlayers); err != nil {
		sendError(client, err)
	}
}

// rename 更新客户端显示名，会话同步
func (h *Handler) rename(client types.ClientInterface, name string) {
	client.SetIdentity(client.GetID(), name)
	if h.sessionManager != nil {
		h.sessionManager.Rename(client.GetID(), name)
	}
}
