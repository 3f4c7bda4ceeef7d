package room

import (
	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

// Broadcast 向房间内所有在线玩家发送消息
func (r *Room) Broadcast(msg *protocol.Message) {
	for _, p := range r.Players {
		if p.Client != nil {
			p.Client.SendMessage(msg)
		}
	}
}

// BroadcastExcept 向除指定玩家外的所有在线玩家发送消息
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	for id, p := range r.Players {
		if id != excludeID && p.Client != nil {
			p.Client.SendMessage(msg)
		}
	}
}

// sendTo 向指定玩家发送消息，掉线则丢弃
func (r *Room) sendTo(playerID string, msg *protocol.Message) {
	if p := r.Players[playerID]; p != nil && p.Client != nil {
		p.Client.SendMessage(msg)
	}
}

// popupTo 向指定玩家弹窗
func (r *Room) popupTo(playerID, text string) {
	r.sendTo(playerID, protocol.MustNewMessage(protocol.MsgPopup, protocol.PopupPayload{Text: text}))
}

// popupAll 向所有玩家弹窗
func (r *Room) popupAll(text string) {
	r.Broadcast(protocol.MustNewMessage(protocol.MsgPopup, protocol.PopupPayload{Text: text}))
}
