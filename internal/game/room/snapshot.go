package room

import (
	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

// playerInfo 玩家公开信息，调用方必须持有 r.mu
func (r *Room) playerInfo(p *RoomPlayer) protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:          p.ID,
		Name:        p.Name,
		Color:       p.Color,
		AvatarID:    p.AvatarID,
		Active:      p.Active(),
		IsOwner:     p.IsOwner,
		IsDemon:     p.IsDemon,
		WasDemon:    p.WasDemon,
		Moved:       p.Moved,
		Ready:       p.Ready,
		Voted:       p.Voted, // 只公开是否投过票，不公开票面
		IsExorcised: p.IsExorcised,
		IsPurified:  p.IsPurified,
		WasPurified: p.WasPurified,
		IsWarded:    p.IsWarded,
		WasWarded:   p.WasWarded,
		IsDamned:    p.IsDamned,
	}
}

// GetPlayerInfo 对外的玩家信息查询
func (r *Room) GetPlayerInfo(playerID string) protocol.PlayerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p := r.player(playerID); p != nil {
		return r.playerInfo(p)
	}
	return protocol.PlayerInfo{}
}

// GetAllPlayersInfo 按入座顺序返回所有玩家的公开信息
func (r *Room) GetAllPlayersInfo() []protocol.PlayerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]protocol.PlayerInfo, 0, len(r.PlayerOrder))
	for _, id := range r.PlayerOrder {
		if p := r.Players[id]; p != nil {
			players = append(players, r.playerInfo(p))
		}
	}
	return players
}

// SettingsInfo 当前房间设置
func (r *Room) SettingsInfo() protocol.SettingsInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Settings.ToInfo()
}

// statePayload 构建公开快照
// 秘密状态（附身名单、票面、干扰次数、候选池）一律不进入
// 调用方必须持有 r.mu
func (r *Room) statePayload() protocol.RoomStatePayload {
	players := make([]protocol.PlayerInfo, 0, len(r.PlayerOrder))
	for _, id := range r.PlayerOrder {
		if p := r.Players[id]; p != nil {
			players = append(players, r.playerInfo(p))
		}
	}

	resources := make(map[string]int, len(r.Resources))
	for t, n := range r.Resources {
		resources[string(t)] = n
	}

	deadlines := make(map[string]int64, len(r.Deadlines))
	for k, v := range r.Deadlines {
		deadlines[k] = v
	}

	payload := protocol.RoomStatePayload{
		RoomCode:  r.Code,
		Phase:     r.Phase.String(),
		Round:     r.Round,
		Players:   players,
		Settings:  r.Settings.ToInfo(),
		Resources: resources,
		Deadlines: deadlines,
	}

	if mv := r.CurrentMove; mv != nil {
		info := protocol.MoveInfo{
			Tool:       string(mv.Tool),
			ActorID:    mv.ActorID,
			Seconded:   mv.Seconded,
			SeconderID: mv.SeconderID,
		}
		if actor := r.player(mv.ActorID); actor != nil {
			info.ActorName = actor.Name
		}
		// 目标只在选定后才进入快照
		if mv.Selected && mv.TargetID != "" {
			info.TargetID = mv.TargetID
			if target := r.player(mv.TargetID); target != nil {
				info.TargetName = target.Name
			}
		}
		payload.Move = &info
	}

	if r.Turn != nil {
		turn := protocol.TurnInfo{
			CurrentIndex: r.Turn.Current,
			StartIndex:   r.Turn.Start,
		}
		if p := r.playerAt(r.Turn.Current); p != nil {
			turn.CurrentID = p.ID
		}
		payload.Turn = &turn
	}

	return payload
}

// broadcastState 每次状态变更后广播公开快照，恶魔额外收到私有状态
// 调用方必须持有 r.mu
func (r *Room) broadcastState() {
	r.Broadcast(protocol.MustNewMessage(protocol.MsgRoomState, r.statePayload()))
}

// StatePayload 对外的快照查询（重连恢复用）
func (r *Room) StatePayload() protocol.RoomStatePayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statePayload()
}

// sendDemonState 恶魔私有状态：附身名单、解救名单、干扰次数、待干扰结果
// 调用方必须持有 r.mu
func (r *Room) sendDemonState() {
	d := r.demon()
	if d == nil {
		return
	}

	payload := protocol.DemonStatePayload{
		Possessed: make([]string, 0, len(r.possessed)),
		Freed:     make([]string, 0, len(r.freedThisRound)),
		Charges:   make(map[string]int, len(r.charges)),
	}
	for _, id := range r.PlayerOrder {
		if r.possessed[id] {
			payload.Possessed = append(payload.Possessed, id)
		}
		if r.freedThisRound[id] {
			payload.Freed = append(payload.Freed, id)
		}
	}
	for t, n := range r.charges {
		payload.Charges[string(t)] = n
	}
	if r.Phase == PhaseInterfere && r.CurrentMove != nil {
		payload.PendingTool = string(r.CurrentMove.Tool)
		result := r.pendingResult
		payload.TrueResult = &result
	}

	r.sendTo(d.ID, protocol.MustNewMessage(protocol.MsgDemonState, payload))
}
