package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/sound"
)

// handleServerMessage 按消息类型分发
func (m *Model) handleServerMessage(msg *protocol.Message) tea.Cmd {
	switch msg.Type {
	case protocol.MsgConnected:
		return m.handleMsgConnected(msg)
	case protocol.MsgReconnected:
		return m.handleMsgReconnected(msg)
	case protocol.MsgPong:
		return nil // 延迟由 netclient 统计
	case protocol.MsgError:
		return m.handleMsgError(msg)

	case protocol.MsgRoomCreated:
		return m.handleMsgRoomCreated(msg)
	case protocol.MsgRoomJoined:
		return m.handleMsgRoomJoined(msg)
	case protocol.MsgPlayerJoined:
		return m.handleMsgPlayerJoined(msg)
	case protocol.MsgPlayerLeft:
		return m.handleMsgPlayerLeft(msg)
	case protocol.MsgPlayerOffline:
		return m.handleMsgPlayerOffline(msg)
	case protocol.MsgPlayerOnline:
		return m.handleMsgPlayerOnline(msg)

	case protocol.MsgRoomState:
		return m.handleMsgRoomState(msg)
	case protocol.MsgRoleOffer:
		return m.handleMsgRoleOffer(msg)
	case protocol.MsgDemonAssigned:
		return m.handleMsgDemonAssigned(msg)
	case protocol.MsgDemonState:
		return m.handleMsgDemonState(msg)
	case protocol.MsgReveal:
		return m.handleMsgReveal(msg)
	case protocol.MsgToolResult:
		return m.handleMsgToolResult(msg)
	case protocol.MsgPopup:
		return m.handleMsgPopup(msg)
	case protocol.MsgGameOver:
		return m.handleMsgGameOver(msg)

	case protocol.MsgChat:
		return m.handleMsgChat(msg)
	}

	return nil
}

// --- 连接相关 ---

func (m *Model) handleMsgConnected(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ConnectedPayload](msg)
	if err != nil {
		return nil
	}
	m.playerID = payload.PlayerID
	m.playerName = payload.PlayerName
	return nil
}

func (m *Model) handleMsgReconnected(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ReconnectedPayload](msg)
	if err != nil {
		return nil
	}

	m.playerID = payload.PlayerID
	if payload.PlayerName != "" {
		m.playerName = payload.PlayerName
	}

	if payload.RoomCode != "" {
		m.screen = ScreenRoom
		if payload.RoomState != nil {
			m.state = payload.RoomState
		}
	} else {
		m.screen = ScreenMenu
		m.resetRoomState()
		m.input.Placeholder = "输入选项 (1-2) 或房间号"
		m.input.Focus()
	}
	return nil
}

func (m *Model) handleMsgError(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		return nil
	}
	m.err = payload.Message
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

// --- 房间相关 ---

func (m *Model) handleMsgRoomCreated(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.RoomCreatedPayload](msg)
	if err != nil {
		return nil
	}
	m.screen = ScreenRoom
	m.state = &protocol.RoomStatePayload{
		RoomCode: payload.RoomCode,
		Phase:    "LOBBY",
		Players:  []protocol.PlayerInfo{payload.Player},
		Settings: payload.Settings,
	}
	m.input.Placeholder = "人齐后输入 start 开局"
	return nil
}

func (m *Model) handleMsgRoomJoined(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.RoomJoinedPayload](msg)
	if err != nil {
		return nil
	}
	m.screen = ScreenRoom
	m.state = &protocol.RoomStatePayload{
		RoomCode: payload.RoomCode,
		Phase:    "LOBBY",
		Players:  payload.Players,
		Settings: payload.Settings,
	}
	m.input.Placeholder = "等待房主开局..."
	m.sounds.Play(sound.CuePlayerJoin)
	return nil
}

func (m *Model) handleMsgPlayerJoined(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerJoinedPayload](msg)
	if err != nil || m.state == nil {
		return nil
	}
	m.state.Players = append(m.state.Players, payload.Player)
	m.sounds.Play(sound.CuePlayerJoin)
	return nil
}

func (m *Model) handleMsgPlayerLeft(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerLeftPayload](msg)
	if err != nil || m.state == nil {
		return nil
	}
	for i, p := range m.state.Players {
		if p.ID == payload.PlayerID {
			m.state.Players = append(m.state.Players[:i], m.state.Players[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Model) handleMsgPlayerOffline(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerOfflinePayload](msg)
	if err != nil || m.state == nil {
		return nil
	}
	for i, p := range m.state.Players {
		if p.ID == payload.PlayerID {
			m.state.Players[i].Active = false
			break
		}
	}
	m.notice = fmt.Sprintf("📶 %s 掉线，等待重连 (%d 秒)", payload.PlayerName, payload.Timeout)
	return m.clearNoticeLater()
}

func (m *Model) handleMsgPlayerOnline(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerOnlinePayload](msg)
	if err != nil || m.state == nil {
		return nil
	}
	for i, p := range m.state.Players {
		if p.ID == payload.PlayerID {
			m.state.Players[i].Active = true
			break
		}
	}
	m.notice = fmt.Sprintf("✅ %s 重新上线", payload.PlayerName)
	return m.clearNoticeLater()
}

// --- 游戏流程 ---

func (m *Model) handleMsgRoomState(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.RoomStatePayload](msg)
	if err != nil {
		return nil
	}

	prevPhase := m.phase()
	m.state = payload

	if payload.Phase != prevPhase {
		m.onPhaseChange(prevPhase, payload.Phase)
	}
	return nil
}

// onPhaseChange 阶段切换时的音效与输入提示
func (m *Model) onPhaseChange(from, to string) {
	m.roleOffered = false

	switch to {
	case "NIGHT":
		m.sounds.Play(sound.CueNightFall)
		if m.isDemon() {
			m.input.Placeholder = "夜深了，possess <座位号> 附身"
		} else {
			m.input.Placeholder = "夜深了，闭眼等待..."
		}
	case "DAY":
		m.sounds.Play(sound.CueDayBreak)
		m.input.Placeholder = "use <法器> 提议 / pass 放弃"
	case "DISCUSS":
		m.input.Placeholder = "自由讨论，ready 进入白天"
	case "VOTING":
		m.sounds.Play(sound.CueBell)
		m.input.Placeholder = "表决: y 赞成 / n 反对"
	case "SECONDING":
		m.input.Placeholder = "second 附议 / 等待他人附议"
	case "SELECT":
		m.input.Placeholder = "select <座位号> 选择目标"
	case "INTERPRET":
		m.input.Placeholder = "report possessed/clear/silent 汇报"
	case "LOBBY":
		if from != "" && from != "LOBBY" {
			// 终局回大厅，清掉上一局的状态
			m.demon = nil
			m.gameOver = nil
			m.reveals = nil
			m.results = nil
		}
		if m.isOwner() {
			m.input.Placeholder = "人齐后输入 start 开局"
		} else {
			m.input.Placeholder = "等待房主开局..."
		}
	case "END":
		m.input.Placeholder = "finish 回大厅 (房主)"
	}
}

func (m *Model) handleMsgRoleOffer(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.RoleOfferPayload](msg)
	if err != nil {
		return nil
	}
	m.roleOffered = true
	m.input.Placeholder = fmt.Sprintf("恶魔之位向你招手: y 接受 / n 拒绝 (%d 秒)", payload.Timeout)
	m.sounds.Play(sound.CueWhisper)
	return nil
}

func (m *Model) handleMsgDemonAssigned(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.DemonAssignedPayload](msg)
	if err != nil {
		return nil
	}
	m.roleOffered = false
	if payload.PlayerID == m.playerID {
		m.notice = "😈 你就是恶魔，夜晚行动吧"
	} else {
		m.notice = fmt.Sprintf("😈 %s 成为了恶魔", payload.PlayerName)
	}
	return m.clearNoticeLater()
}

func (m *Model) handleMsgDemonState(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.DemonStatePayload](msg)
	if err != nil {
		return nil
	}
	m.demon = payload
	if payload.PendingTool != "" {
		m.input.Placeholder = fmt.Sprintf("干扰 %s 的结果? y/n", payload.PendingTool)
	}
	return nil
}

func (m *Model) handleMsgReveal(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.RevealPayload](msg)
	if err != nil {
		return nil
	}

	switch payload.Kind {
	case "possessed_you":
		m.reveals = append(m.reveals, "👻 你被附身了，现在与恶魔共进退")
		m.chatChannel = protocol.ChannelDemon
		m.sounds.Play(sound.CueWhisper)
	case "rod":
		verdict := "清白"
		if payload.Possessed != nil && *payload.Possessed {
			verdict = "被附身"
		}
		m.reveals = append(m.reveals, fmt.Sprintf("🔮 探灵杖显示 %s: %s", payload.TargetName, verdict))
	}
	return nil
}

func (m *Model) handleMsgToolResult(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ToolResultPayload](msg)
	if err != nil {
		return nil
	}
	m.results = append(m.results, formatToolResult(payload))
	m.sounds.Play(sound.CueReveal)
	return nil
}

// formatToolResult 法器结算的一行公示
func formatToolResult(p *protocol.ToolResultPayload) string {
	switch p.Tool {
	case "board":
		verdict := "清白"
		if p.Possessed != nil && *p.Possessed {
			verdict = "被附身"
		}
		return fmt.Sprintf("🪧 通灵板: %s → %s", p.TargetName, verdict)
	case "water":
		if p.Purified {
			return fmt.Sprintf("💧 圣水净化了 %s", p.TargetName)
		}
		return fmt.Sprintf("💧 圣水泼向了 %s", p.TargetName)
	case "rod":
		switch p.Report {
		case protocol.ReportPossessed:
			return fmt.Sprintf("🔮 %s 宣称: %s 被附身", p.ActorName, p.TargetName)
		case protocol.ReportClear:
			return fmt.Sprintf("🔮 %s 宣称: %s 清白", p.ActorName, p.TargetName)
		default:
			return fmt.Sprintf("🔮 %s 拒绝透露探灵杖的结果", p.ActorName)
		}
	case "exorcism":
		return fmt.Sprintf("🕯️ %s 被驱魔，退出表决与轮转", p.TargetName)
	case "salt":
		return fmt.Sprintf("🧂 盐线守护了 %d 名玩家", len(p.Warded))
	}
	return fmt.Sprintf("✨ %s 使用了 %s", p.ActorName, p.Tool)
}

func (m *Model) handleMsgPopup(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PopupPayload](msg)
	if err != nil {
		return nil
	}
	m.notice = payload.Text
	return m.clearNoticeLater()
}

func (m *Model) handleMsgGameOver(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.GameOverPayload](msg)
	if err != nil {
		return nil
	}
	m.gameOver = payload

	demonWon := payload.Winner == "demon"
	iAmDemon := payload.DemonID == m.playerID
	if demonWon == iAmDemon {
		m.sounds.Play(sound.CueVictory)
	} else {
		m.sounds.Play(sound.CueDoom)
	}
	return nil
}

// --- 聊天 ---

func (m *Model) handleMsgChat(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ChatPayload](msg)
	if err != nil {
		return nil
	}
	m.appendChat(*payload)
	if payload.SenderID != m.playerID && !payload.IsSystem {
		m.sounds.Play(sound.CueChat)
	}
	return nil
}
