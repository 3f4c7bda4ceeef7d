package room

import (
	"context"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/palemoky/hunt-the-demon/internal/apperrors"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/types"
)

// CreateRoom 创建房间，创建者即房主
func (rm *RoomManager) CreateRoom(client types.ClientInterface, color string, avatarID int) (*Room, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	// 生成唯一房间号
	code := rm.generateRoomCode()

	room := &Room{
		Code:           code,
		Phase:          PhaseLobby,
		Players:        make(map[string]*RoomPlayer),
		PlayerOrder:    make([]string, 0, rm.gameCfg.MaxPlayers),
		Settings:       defaultSettings(rm.gameCfg),
		Resources:      make(map[Tool]int),
		Deadlines:      make(map[string]int64),
		CreatedAt:      time.Now(),
		possessed:      make(map[string]bool),
		freedThisRound: make(map[string]bool),
		votes:          make(map[string]bool),
		charges:        make(map[Tool]int),
		demonHistory:   make(map[string][]protocol.ChatPayload),
	}

	// 添加创建者
	player := newRoomPlayer(client, color, avatarID, 0)
	player.IsOwner = true
	room.Players[client.GetID()] = player
	room.PlayerOrder = append(room.PlayerOrder, client.GetID())
	client.SetRoom(code)

	rm.rooms[code] = room

	rm.persistRoom(room)

	log.Printf("🏠 房间 %s 已创建，玩家 %s", code, client.GetName())

	return room, nil
}

// JoinRoom 加入房间，只允许在大厅阶段进出
func (rm *RoomManager) JoinRoom(client types.ClientInterface, code, color string, avatarID int) (*Room, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, exists := rm.rooms[code]
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Phase != PhaseLobby {
		return nil, apperrors.ErrGameStarted
	}
	if len(room.Players) >= room.Settings.MaxPlayers {
		return nil, apperrors.ErrRoomFull
	}
	// 房间内名字不区分大小写唯一
	for _, p := range room.Players {
		if strings.EqualFold(p.Name, client.GetName()) {
			return nil, apperrors.ErrNameTaken
		}
	}

	seat := len(room.PlayerOrder)
	player := newRoomPlayer(client, color, avatarID, seat)
	room.Players[client.GetID()] = player
	room.PlayerOrder = append(room.PlayerOrder, client.GetID())
	client.SetRoom(code)

	log.Printf("👤 玩家 %s 加入房间 %s（座位 %d）", client.GetName(), code, seat)

	// 通知房间内其他玩家，并向新玩家重放公共聊天
	room.BroadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: room.playerInfo(player),
	}))
	room.replayChat(client.GetID())

	rm.persistRoom(room)

	return room, nil
}

// LeaveRoom 离开房间
// 大厅阶段真正移除；对局中只标记离线保住座位，花名册长度在场上不变
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return
	}

	rm.mu.Lock()
	room, exists := rm.rooms[roomCode]
	if !exists {
		rm.mu.Unlock()
		return
	}
	rm.mu.Unlock()

	room.mu.Lock()

	player, exists := room.Players[client.GetID()]
	if !exists {
		room.mu.Unlock()
		return
	}

	if room.Phase != PhaseLobby {
		player.Client = nil
		client.SetRoom("")
		room.Broadcast(protocol.MustNewMessage(protocol.MsgPlayerOffline, protocol.PlayerOfflinePayload{
			PlayerID:   player.ID,
			PlayerName: player.Name,
		}))
		room.mu.Unlock()
		log.Printf("👋 玩家 %s 离席房间 %s（对局保留座位）", player.Name, roomCode)
		return
	}

	// 通知其他玩家
	room.BroadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   player.ID,
		PlayerName: player.Name,
	}))

	// 移除玩家并重排座位
	delete(room.Players, client.GetID())
	for i, id := range room.PlayerOrder {
		if id == client.GetID() {
			room.PlayerOrder = append(room.PlayerOrder[:i], room.PlayerOrder[i+1:]...)
			break
		}
	}
	for i, id := range room.PlayerOrder {
		room.Players[id].Seat = i
	}
	client.SetRoom("")

	log.Printf("👋 玩家 %s 离开房间 %s", player.Name, roomCode)

	empty := len(room.Players) == 0
	if !empty {
		// 房主离开则顺延给下一位入座者
		if player.IsOwner {
			if next := room.Players[room.PlayerOrder[0]]; next != nil {
				next.IsOwner = true
				room.popupAll(next.Name + " 成为新房主")
			}
		}
		room.broadcastState()
	}
	room.mu.Unlock()

	if empty {
		// 删除房间前必须先放掉房间锁，加锁顺序始终是 rm.mu → room.mu
		rm.mu.Lock()
		delete(rm.rooms, roomCode)
		rm.mu.Unlock()
		rm.dropRoomData(roomCode)
		log.Printf("🏠 房间 %s 已解散", roomCode)
		return
	}

	rm.persistRoom(room)
}

// UpdateSettings 房主在大厅阶段修改设置
func (r *Room) UpdateSettings(playerID string, info *protocol.SettingsInfo, hardMax int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.player(playerID)
	if p == nil {
		return apperrors.ErrNotInRoom
	}
	if !p.IsOwner {
		return apperrors.ErrNotOwner
	}
	if r.Phase != PhaseLobby {
		return apperrors.ErrWrongPhase
	}

	r.Settings.applyInfo(info, hardMax)
	r.broadcastState()
	return nil
}

// persistRoom 异步镜像房间快照到 Redis
func (rm *RoomManager) persistRoom(room *Room) {
	if rm.redisStore == nil {
		return
	}
	go func() { _ = rm.redisStore.SaveRoom(context.Background(), room.Code, room.ToRoomData()) }()
}

// dropRoomData 异步删除 Redis 中的房间镜像
func (rm *RoomManager) dropRoomData(code string) {
	if rm.redisStore == nil {
		return
	}
	go func() { _ = rm.redisStore.DeleteRoom(context.Background(), code) }()
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// GetRoomByPlayerID 通过玩家 ID 获取房间
func (rm *RoomManager) GetRoomByPlayerID(playerID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	for _, room := range rm.rooms {
		room.mu.Lock()
		_, exists := room.Players[playerID]
		room.mu.Unlock()
		if exists {
			return room
		}
	}
	return nil
}

// GetActiveGamesCount 获取进行中的对局数量
func (rm *RoomManager) GetActiveGamesCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	count := 0
	for _, room := range rm.rooms {
		room.mu.Lock()
		if room.Phase != PhaseLobby && room.Phase != PhaseEnd {
			count++
		}
		room.mu.Unlock()
	}
	return count
}

// generateRoomCode 生成房间号
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// cleanupLoop 定期清理超时房间
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rm.cleanup()
	}
}

// cleanup 清理大厅里等过久的房间和全员离线的房间
func (rm *RoomManager) cleanup() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	now := time.Now()

	for code, room := range rm.rooms {
		room.mu.Lock()

		idle := room.Phase == PhaseLobby && now.Sub(room.CreatedAt) > rm.roomTimeout
		allOffline := true
		for _, p := range room.Players {
			if p.Client != nil {
				allOffline = false
				break
			}
		}

		if !idle && !allOffline {
			room.mu.Unlock()
			continue
		}

		room.cancelAdvanceTimer()
		room.cancelRoundTimer()
		room.Broadcast(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "房间超时已关闭"))
		for _, p := range room.Players {
			if p.Client != nil {
				p.Client.SetRoom("")
			}
		}
		room.mu.Unlock()

		delete(rm.rooms, code)
		rm.dropRoomData(code)
		log.Printf("🧹 房间 %s 超时已清理", code)
	}
}
