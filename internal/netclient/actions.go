package netclient

import (
	"time"

	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}

// Reconnect 发送重连请求
func (c *Client) Reconnect() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgReconnect, protocol.ReconnectPayload{
		Token:    c.ReconnectToken,
		PlayerID: c.PlayerID,
	}))
}

// CreateRoom 创建房间
func (c *Client) CreateRoom(name, color string, avatarID int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		Name:     name,
		Color:    color,
		AvatarID: avatarID,
	}))
}

// JoinRoom 加入房间
func (c *Client) JoinRoom(roomCode, name, color string, avatarID int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode: roomCode,
		Name:     name,
		Color:    color,
		AvatarID: avatarID,
	}))
}

// LeaveRoom 离开房间
func (c *Client) LeaveRoom() error {
	return c.SendMessage(&protocol.Message{Type: protocol.MsgLeaveRoom})
}

// UpdateSettings 房主修改房间设置
func (c *Client) UpdateSettings(settings protocol.SettingsInfo) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgUpdateSettings, settings))
}

// SendChat 发送聊天消息
func (c *Client) SendChat(content, channel string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{
		Content: content,
		Channel: channel,
	}))
}

// move 提交统一行动
func (c *Client) move(payload protocol.MovePayload) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgMove, payload))
}

// StartGame 房主开局
func (c *Client) StartGame() error {
	return c.move(protocol.MovePayload{Action: protocol.ActionStart})
}

// FinishGame 房主终局回大厅
func (c *Client) FinishGame() error {
	return c.move(protocol.MovePayload{Action: protocol.ActionFinish})
}

// AnswerRoleOffer 应答恶魔候选邀请
func (c *Client) AnswerRoleOffer(accept bool) error {
	return c.move(protocol.MovePayload{Action: protocol.ActionRole, Accept: &accept})
}

// Possess 恶魔夜晚附身目标
func (c *Client) Possess(targetID string) error {
	return c.move(protocol.MovePayload{Action: protocol.ActionPossess, TargetID: targetID})
}

// Ready 讨论阶段就绪
func (c *Client) Ready() error {
	return c.move(protocol.MovePayload{Action: protocol.ActionReady})
}

// UseTool 提议使用法器
func (c *Client) UseTool(tool string) error {
	return c.move(protocol.MovePayload{Action: protocol.ActionUseTool, Tool: tool})
}

// Pass 放弃本轮行动
func (c *Client) Pass() error {
	return c.move(protocol.MovePayload{Action: protocol.ActionPass})
}

// Second 附议当前提案
func (c *Client) Second() error {
	return c.move(protocol.MovePayload{Action: protocol.ActionSecond})
}

// Vote 表决当前提案
func (c *Client) Vote(approve bool) error {
	return c.move(protocol.MovePayload{Action: protocol.ActionVote, Vote: &approve})
}

// SelectTarget 选择法器目标
func (c *Client) SelectTarget(targetID string) error {
	return c.move(protocol.MovePayload{Action: protocol.ActionSelect, TargetID: targetID})
}

// SelectSaltLine 盐线在两道缝隙之间落线
func (c *Client) SelectSaltLine(start, end int) error {
	return c.move(protocol.MovePayload{
		Action:    protocol.ActionSelect,
		LineStart: &start,
		LineEnd:   &end,
	})
}

// AnswerInterfere 恶魔干扰应答
func (c *Client) AnswerInterfere(accept bool) error {
	return c.move(protocol.MovePayload{Action: protocol.ActionInterfere, Accept: &accept})
}

// Report 探灵杖结果汇报
func (c *Client) Report(report string) error {
	return c.move(protocol.MovePayload{Action: protocol.ActionReport, Report: report})
}
