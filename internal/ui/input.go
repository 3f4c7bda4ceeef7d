package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

// handleKeyPress 处理按键消息，返回是否已处理和命令
func (m *Model) handleKeyPress(msg tea.KeyMsg) (bool, tea.Cmd) {
	// 聊天输入框聚焦时优先处理
	if m.screen == ScreenRoom && m.chatInput.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			content := strings.TrimSpace(m.chatInput.Value())
			if content != "" {
				if err := m.client.SendChat(content, m.chatChannel); err != nil {
					m.err = fmt.Sprintf("发送消息失败: %v", err)
				}
				m.chatInput.SetValue("")
			}
			return true, nil
		case tea.KeyEsc:
			m.chatInput.Blur()
			m.input.Focus()
			return true, nil
		case tea.KeyTab:
			m.toggleChatChannel()
			return true, nil
		default:
			var cmd tea.Cmd
			m.chatInput, cmd = m.chatInput.Update(msg)
			return true, cmd
		}
	}

	// "/" 切换到聊天输入
	if m.screen == ScreenRoom && msg.String() == "/" {
		m.input.Blur()
		m.chatInput.Focus()
		return true, nil
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.handleEscKey()
	case tea.KeyUp:
		if m.screen == ScreenMenu && m.menuIndex > 0 {
			m.menuIndex--
			return true, nil
		}
	case tea.KeyDown:
		if m.screen == ScreenMenu && m.menuIndex < 1 {
			m.menuIndex++
			return true, nil
		}
	case tea.KeyEnter:
		return true, m.handleEnter()
	}
	return false, nil
}

// toggleChatChannel 公共频道与恶魔频道互切（仅恶魔与被附身者可见恶魔频道）
func (m *Model) toggleChatChannel() {
	if m.chatChannel == protocol.ChannelRoom {
		m.chatChannel = protocol.ChannelDemon
	} else {
		m.chatChannel = protocol.ChannelRoom
	}
}

// handleEscKey 处理 ESC 键
func (m *Model) handleEscKey() (bool, tea.Cmd) {
	if m.screen == ScreenRoom {
		phase := m.phase()
		// 大厅或终局可以直接离开房间，对局中 ESC 不退出避免误操作
		if phase == "LOBBY" || phase == "END" || phase == "" {
			_ = m.client.LeaveRoom()
			m.screen = ScreenMenu
			m.resetRoomState()
			m.input.Placeholder = "输入选项 (1-2) 或房间号"
			m.input.Reset()
			m.input.Focus()
			return true, nil
		}
		m.err = "对局进行中，无法退出！"
		return true, m.clearErrorLater()
	}

	m.client.Close()
	return true, tea.Quit
}

// handleEnter 解析命令输入
func (m *Model) handleEnter() tea.Cmd {
	input := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.err = ""

	switch m.screen {
	case ScreenMenu:
		m.handleMenuInput(input)
	case ScreenRoom:
		m.handleRoomCommand(input)
	}

	return nil
}

// handleMenuInput 大厅菜单：1=创建房间，2/房间号=加入
func (m *Model) handleMenuInput(input string) {
	if input == "" {
		input = strconv.Itoa(m.menuIndex + 1)
	}

	switch input {
	case "1":
		_ = m.client.CreateRoom("", "", 0)
	case "2":
		m.input.Placeholder = "输入房间号..."
	default:
		if len(input) > 0 {
			_ = m.client.JoinRoom(strings.ToUpper(input), "", "", 0)
		}
	}
}

// handleRoomCommand 房间内命令
func (m *Model) handleRoomCommand(input string) {
	if input == "" {
		return
	}

	fields := strings.Fields(strings.ToLower(input))
	cmd := fields[0]

	// 候选邀请与干扰应答都走 y/n，按上下文路由
	switch cmd {
	case "y", "yes":
		m.answerYesNo(true)
		return
	case "n", "no":
		m.answerYesNo(false)
		return
	}

	switch cmd {
	case "start":
		_ = m.client.StartGame()
	case "finish":
		_ = m.client.FinishGame()
	case "ready", "r":
		_ = m.client.Ready()
	case "pass", "p":
		_ = m.client.Pass()
	case "second", "s":
		_ = m.client.Second()
	case "use":
		if len(fields) < 2 {
			m.err = "用法: use board/water/rod/exorcism/salt"
			return
		}
		_ = m.client.UseTool(fields[1])
	case "select", "sel":
		m.handleSelectCommand(fields[1:])
	case "line":
		m.handleLineCommand(fields[1:])
	case "possess":
		if target := m.targetFromSeat(fields[1:]); target != "" {
			_ = m.client.Possess(target)
		}
	case "report":
		if len(fields) < 2 {
			m.err = "用法: report possessed/clear/silent"
			return
		}
		_ = m.client.Report(fields[1])
	default:
		m.err = fmt.Sprintf("未知命令: %s", cmd)
	}
}

// answerYesNo 按当前上下文路由 y/n
func (m *Model) answerYesNo(yes bool) {
	switch {
	case m.roleOffered:
		m.roleOffered = false
		_ = m.client.AnswerRoleOffer(yes)
	case m.phase() == "INTERFERE" && m.demon != nil && m.demon.PendingTool != "":
		_ = m.client.AnswerInterfere(yes)
	case m.phase() == "VOTING":
		_ = m.client.Vote(yes)
	default:
		m.err = "现在没有需要应答的事项"
	}
}

// handleSelectCommand select <座位号>
func (m *Model) handleSelectCommand(args []string) {
	if target := m.targetFromSeat(args); target != "" {
		_ = m.client.SelectTarget(target)
	}
}

// handleLineCommand line <起点缝隙> <终点缝隙>
func (m *Model) handleLineCommand(args []string) {
	if len(args) < 2 {
		m.err = "用法: line <起点缝隙> <终点缝隙>"
		return
	}
	start, err1 := strconv.Atoi(args[0])
	end, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		m.err = "缝隙编号必须是数字"
		return
	}
	_ = m.client.SelectSaltLine(start, end)
}

// targetFromSeat 把座位号参数换算成玩家 ID
func (m *Model) targetFromSeat(args []string) string {
	if len(args) < 1 {
		m.err = "缺少座位号"
		return ""
	}
	seat, err := strconv.Atoi(args[0])
	if err != nil {
		m.err = "座位号必须是数字"
		return ""
	}
	p := m.seatOf(seat)
	if p == nil {
		m.err = fmt.Sprintf("没有 %d 号座位", seat)
		return ""
	}
	return p.ID
}
