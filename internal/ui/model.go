package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/hunt-the-demon/internal/netclient"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/sound"
)

// Screen 客户端界面
type Screen int

const (
	ScreenConnecting Screen = iota
	ScreenMenu              // 大厅菜单：创建 / 加入
	ScreenRoom              // 房间内，按服务端阶段渲染
)

// ServerMessage 服务器消息（用于 tea.Msg）
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg 连接成功消息
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接错误消息
type ConnectionErrorMsg struct {
	Err error
}

// ReconnectSuccessMsg 重连成功消息
type ReconnectSuccessMsg struct{}

// ClearNoticeMsg 清除通知消息
type ClearNoticeMsg struct{}

// ClearErrorMsg 清除错误提示
type ClearErrorMsg struct{}

// tickMsg 每秒刷新倒计时
type tickMsg time.Time

const maxChatLines = 100

// Model 客户端主模型
type Model struct {
	client *netclient.Client
	screen Screen
	err    string
	notice string

	playerID   string
	playerName string
	latency    int64

	// 房间状态，以服务端快照为准
	state    *protocol.RoomStatePayload
	demon    *protocol.DemonStatePayload
	gameOver *protocol.GameOverPayload

	// 恶魔候选邀请待应答
	roleOffered bool

	// 私密揭示日志（探灵杖结果、被附身通知）
	reveals []string
	// 法器结算公示日志
	results []string

	chat        []protocol.ChatPayload
	chatChannel string // room / demon

	reconnectChan chan tea.Msg

	sounds    *sound.Manager
	input     textinput.Model // 命令输入
	chatInput textinput.Model
	menuIndex int
	width     int
	height    int
}

// NewModel 创建客户端模型
func NewModel(serverURL string) *Model {
	ti := textinput.New()
	ti.Placeholder = "输入选项 (1-2) 或房间号"
	ti.CharLimit = 32
	ti.Width = 30
	ti.Focus()

	ci := textinput.New()
	ci.Placeholder = "闲聊两句..."
	ci.CharLimit = 200
	ci.Width = 40

	c := netclient.NewClient(serverURL)
	reconnectChan := make(chan tea.Msg, 10)

	m := &Model{
		client:        c,
		screen:        ScreenConnecting,
		input:         ti,
		chatInput:     ci,
		chatChannel:   protocol.ChannelRoom,
		reconnectChan: reconnectChan,
		sounds:        sound.NewManager(),
	}

	// 重连成功通过 channel 送回 Bubble Tea 事件循环
	c.OnReconnect = func() {
		select {
		case reconnectChan <- ReconnectSuccessMsg{}:
		default:
		}
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	go func() {
		_ = m.sounds.Init()
	}()

	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
		m.listenForReconnect(),
		m.tick(),
	)
}

// connectToServer 连接服务器
func (m *Model) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

// listenForMessages 监听服务器消息
func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

// listenForReconnect 监听重连事件
func (m *Model) listenForReconnect() tea.Cmd {
	return func() tea.Msg {
		return <-m.reconnectChan
	}
}

// tick 每秒刷新一次，驱动倒计时渲染
func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		handled, cmd := m.handleKeyPress(msg)
		if handled {
			return m, cmd
		}

	case ConnectedMsg:
		m.screen = ScreenMenu
		m.playerID = m.client.PlayerID
		m.playerName = m.client.PlayerName
		m.client.StartHeartbeat()
		cmds = append(cmds, m.listenForMessages())

	case ConnectionErrorMsg:
		m.err = fmt.Sprintf("无法连接到服务器: %v\n\n按 ESC 退出", msg.Err)
		m.screen = ScreenConnecting

	case ReconnectSuccessMsg:
		m.notice = "✅ 重连成功！"
		cmds = append(cmds, m.clearNoticeLater(), m.listenForReconnect())
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case ClearNoticeMsg:
		m.notice = ""

	case ClearErrorMsg:
		m.err = ""

	case ServerMessage:
		if cmd := m.handleServerMessage(msg.Msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case tickMsg:
		m.latency = m.client.Latency
		cmds = append(cmds, m.tick())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.chatInput, cmd = m.chatInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// clearNoticeLater 3 秒后清除通知
func (m *Model) clearNoticeLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}

// clearErrorLater 3 秒后清除错误提示
func (m *Model) clearErrorLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

// me 从快照里找自己
func (m *Model) me() *protocol.PlayerInfo {
	if m.state == nil {
		return nil
	}
	for i := range m.state.Players {
		if m.state.Players[i].ID == m.playerID {
			return &m.state.Players[i]
		}
	}
	return nil
}

// isDemon 恶魔身份公开后以快照为准，私有状态推送也能提前确认
func (m *Model) isDemon() bool {
	if m.demon != nil {
		return true
	}
	if p := m.me(); p != nil {
		return p.IsDemon
	}
	return false
}

// isOwner 是否房主
func (m *Model) isOwner() bool {
	if p := m.me(); p != nil {
		return p.IsOwner
	}
	return false
}

// phase 当前服务端阶段，未入房时为空
func (m *Model) phase() string {
	if m.state == nil {
		return ""
	}
	return m.state.Phase
}

// seatOf 按座位号（1 起）找玩家
func (m *Model) seatOf(seat int) *protocol.PlayerInfo {
	if m.state == nil || seat < 1 || seat > len(m.state.Players) {
		return nil
	}
	return &m.state.Players[seat-1]
}

// appendChat 追加聊天记录，超限丢弃最旧的
func (m *Model) appendChat(p protocol.ChatPayload) {
	m.chat = append(m.chat, p)
	if len(m.chat) > maxChatLines {
		m.chat = m.chat[len(m.chat)-maxChatLines:]
	}
}

// resetRoomState 回到大厅菜单时清空房间状态
func (m *Model) resetRoomState() {
	m.state = nil
	m.demon = nil
	m.gameOver = nil
	m.roleOffered = false
	m.reveals = nil
	m.results = nil
	m.chat = nil
	m.chatChannel = protocol.ChannelRoom
}
