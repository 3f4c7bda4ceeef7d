package room

import (
	"time"

	"github.com/palemoky/hunt-the-demon/internal/apperrors"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

// 公共频道保留的最大消息数
const chatHistoryLimit = 100

// HandleChat 聊天入口
// room 频道全员可见并重放；demon 频道只存在于恶魔与每位被附身者之间
func (r *Room) HandleChat(playerID string, payload *protocol.ChatPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.player(playerID)
	if p == nil {
		return apperrors.ErrNotInRoom
	}

	msg := protocol.ChatPayload{
		SenderID:   p.ID,
		SenderName: p.Name,
		Content:    payload.Content,
		Channel:    payload.Channel,
		Time:       time.Now().UnixMilli(),
	}

	switch payload.Channel {
	case "", protocol.ChannelRoom:
		msg.Channel = protocol.ChannelRoom
		r.chatHistory = append(r.chatHistory, msg)
		if len(r.chatHistory) > chatHistoryLimit {
			r.chatHistory = r.chatHistory[len(r.chatHistory)-chatHistoryLimit:]
		}
		r.Broadcast(protocol.MustNewMessage(protocol.MsgChat, msg))
		return nil

	case protocol.ChannelDemon:
		return r.handleDemonChat(p, &msg, payload.PeerID)
	}

	return apperrors.ErrInvalidMessage
}

// handleDemonChat 私密频道：恶魔指定对端，被附身者固定发给恶魔
// 调用方必须持有 r.mu
func (r *Room) handleDemonChat(p *RoomPlayer, msg *protocol.ChatPayload, peerID string) error {
	d := r.demon()
	if d == nil {
		return apperrors.ErrNotEligible
	}

	// 确定这条消息属于哪位被附身者的频道
	var channelOwner string
	if p.IsDemon {
		channelOwner = peerID
	} else {
		channelOwner = p.ID
	}
	if !r.possessed[channelOwner] {
		return apperrors.ErrNotEligible
	}

	msg.PeerID = channelOwner
	r.demonHistory[channelOwner] = append(r.demonHistory[channelOwner], *msg)

	out := protocol.MustNewMessage(protocol.MsgChat, *msg)
	r.sendTo(d.ID, out)
	r.sendTo(channelOwner, out)
	return nil
}

// replayChat 向（重）入房的玩家重放公共频道历史
// 调用方必须持有 r.mu
func (r *Room) replayChat(playerID string) {
	for _, msg := range r.chatHistory {
		r.sendTo(playerID, protocol.MustNewMessage(protocol.MsgChat, msg))
	}
}

// replayDemonChat 重连的恶魔或被附身者恢复私密频道历史
// 调用方必须持有 r.mu
func (r *Room) replayDemonChat(playerID string) {
	p := r.player(playerID)
	if p == nil {
		return
	}
	if p.IsDemon {
		for _, id := range r.PlayerOrder {
			for _, msg := range r.demonHistory[id] {
				r.sendTo(playerID, protocol.MustNewMessage(protocol.MsgChat, msg))
			}
		}
		return
	}
	if r.possessed[p.ID] {
		for _, msg := range r.demonHistory[p.ID] {
			r.sendTo(playerID, protocol.MustNewMessage(protocol.MsgChat, msg))
		}
	}
}
