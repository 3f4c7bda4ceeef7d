package room

import (
	"log"

	"github.com/palemoky/hunt-the-demon/internal/apperrors"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/types"
)

// NotifyPlayerOffline 玩家掉线：保留座位，等待重连
func (rm *RoomManager) NotifyPlayerOffline(client types.ClientInterface, graceSeconds int) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	rm.mu.RUnlock()
	if !exists {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	player, exists := room.Players[client.GetID()]
	if !exists {
		return
	}
	player.Client = nil

	room.Broadcast(protocol.MustNewMessage(protocol.MsgPlayerOffline, protocol.PlayerOfflinePayload{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Timeout:    graceSeconds,
	}))
	room.broadcastState()

	log.Printf("📴 玩家 %s 在房间 %s 中掉线", player.Name, roomCode)
}

// ReconnectPlayer 玩家重连：换上新连接，重放聊天并补发快照
func (rm *RoomManager) ReconnectPlayer(playerID string, newClient types.ClientInterface) (*Room, error) {
	rm.mu.RLock()
	var room *Room
	for _, candidate := range rm.rooms {
		candidate.mu.Lock()
		_, exists := candidate.Players[playerID]
		candidate.mu.Unlock()
		if exists {
			room = candidate
			break
		}
	}
	rm.mu.RUnlock()

	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	player, exists := room.Players[playerID]
	if !exists {
		return nil, apperrors.ErrNotInRoom
	}

	player.Client = newClient
	newClient.SetRoom(room.Code)

	// 通知其他玩家该玩家已上线
	room.BroadcastExcept(playerID, protocol.MustNewMessage(protocol.MsgPlayerOnline, protocol.PlayerOnlinePayload{
		PlayerID:   player.ID,
		PlayerName: player.Name,
	}))

	// 重放公共与私密聊天，补发快照与恶魔私有状态
	room.replayChat(playerID)
	room.replayDemonChat(playerID)
	room.sendTo(playerID, protocol.MustNewMessage(protocol.MsgRoomState, room.statePayload()))
	if player.IsDemon {
		room.sendDemonState()
	}
	room.broadcastState()

	log.Printf("📶 玩家 %s 重连到房间 %s", player.Name, room.Code)

	return room, nil
}
