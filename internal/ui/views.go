package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

// 阶段的中文标题
var phaseTitles = map[string]string{
	"LOBBY":           "🏠 大厅",
	"DEMON_SELECTION": "🎴 抽取恶魔",
	"NIGHT":           "🌙 夜晚",
	"DISCUSS":         "💬 自由讨论",
	"DAY":             "☀️ 白天",
	"SECONDING":       "🤝 等待附议",
	"VOTING":          "🔔 表决",
	"SELECT":          "🎯 选择目标",
	"INTERFERE":       "😈 恶魔干扰",
	"INTERPRET":       "🔮 解读汇报",
	"DISPLAY":         "📜 结果公示",
	"END":             "🏁 终局",
}

// 法器的中文名
var toolNames = map[string]string{
	"board":    "通灵板",
	"water":    "圣水",
	"rod":      "探灵杖",
	"exorcism": "驱魔",
	"salt":     "盐线",
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.screen {
	case ScreenConnecting:
		content = m.connectingView()
	case ScreenMenu:
		content = m.menuView()
	case ScreenRoom:
		content = m.roomView()
	}

	return docStyle.Render(content)
}

func (m *Model) connectingView() string {
	var b strings.Builder
	b.WriteString(titleStyle("👻 捉恶魔"))
	b.WriteString("\n\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
	} else {
		b.WriteString("正在连接服务器...")
	}
	return b.String()
}

func (m *Model) menuView() string {
	var b strings.Builder
	b.WriteString(titleStyle("👻 捉恶魔"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("你是 %s\n\n", m.playerName))

	options := []string{"创建房间", "加入房间"}
	for i, opt := range options {
		cursor := "  "
		if i == m.menuIndex {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%d. %s\n", cursor, i+1, opt))
	}

	b.WriteString(promptStyle.Render(m.input.View()))
	b.WriteString("\n")
	m.writeStatusLines(&b)
	b.WriteString(dimStyle.Render("\n↑/↓ 选择，回车确认，ESC 退出"))
	return b.String()
}

func (m *Model) roomView() string {
	if m.state == nil {
		return "进入房间..."
	}

	var b strings.Builder

	// 标题行：房间号 / 阶段 / 轮次 / 延迟
	title := phaseTitles[m.state.Phase]
	if title == "" {
		title = m.state.Phase
	}
	b.WriteString(fmt.Sprintf("%s  %s", titleStyle("房间 "+m.state.RoomCode), phaseStyle.Render(title)))
	if m.state.Round > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  第 %d 轮", m.state.Round)))
	}
	if m.latency > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %dms", m.latency)))
	}
	b.WriteString("\n")
	b.WriteString(m.deadlinesLine())
	b.WriteString("\n")

	// 左侧座位区
	b.WriteString(boxStyle.Render(m.seatsView()))
	b.WriteString("\n")

	// 法器剩余
	if line := m.resourcesLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	// 正在裁决的提案
	if m.state.Move != nil {
		b.WriteString(m.moveView())
		b.WriteString("\n")
	}

	// 恶魔私有面板
	if m.demon != nil {
		b.WriteString(demonStyle.Render(m.demonPanel()))
		b.WriteString("\n")
	}

	// 私密揭示与公示日志
	for _, line := range tail(m.reveals, 3) {
		b.WriteString(whisperSty.Render(line))
		b.WriteString("\n")
	}
	for _, line := range tail(m.results, 4) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	// 终局结算
	if m.gameOver != nil {
		b.WriteString(m.gameOverView())
		b.WriteString("\n")
	}

	// 聊天区
	b.WriteString(m.chatView())

	m.writeStatusLines(&b)

	// 输入区
	b.WriteString("\n")
	if m.chatInput.Focused() {
		channel := "🗣️ 公共"
		if m.chatChannel == protocol.ChannelDemon {
			channel = "😈 密谈"
		}
		b.WriteString(fmt.Sprintf("%s %s", channel, m.chatInput.View()))
		b.WriteString(dimStyle.Render("\nTab 切频道，ESC 回到命令"))
	} else {
		b.WriteString(m.input.View())
		b.WriteString(dimStyle.Render("\n/ 聊天，ESC 离开"))
	}

	return b.String()
}

// seatsView 座位列表
func (m *Model) seatsView() string {
	var b strings.Builder
	for i, p := range m.state.Players {
		b.WriteString(m.seatLine(i+1, p))
		if i < len(m.state.Players)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// seatLine 单个座位的一行
func (m *Model) seatLine(seat int, p protocol.PlayerInfo) string {
	var marks []string
	if p.IsOwner {
		marks = append(marks, OwnerIcon)
	}
	if p.IsDemon {
		marks = append(marks, DemonIcon)
	}
	if !p.Active {
		marks = append(marks, OfflineIcon)
	}
	if p.IsExorcised {
		marks = append(marks, ExorcisedIcon)
	}
	if p.IsPurified {
		marks = append(marks, PurifiedIcon)
	}
	if p.IsWarded {
		marks = append(marks, WardedIcon)
	}
	if p.IsDamned {
		marks = append(marks, DamnedIcon)
	}

	status := ""
	switch m.state.Phase {
	case "DISCUSS":
		if p.Ready {
			status = " ✅"
		}
	case "DAY":
		if p.Moved {
			status = " ✅"
		}
	case "VOTING":
		if p.Voted {
			status = " 🗳️"
		}
	}

	name := p.Name
	if p.ID == m.playerID {
		name += " (你)"
	}

	line := fmt.Sprintf("%2d. %s %s%s", seat, name, strings.Join(marks, ""), status)

	// 回合制时标记当前行动者
	if m.state.Turn != nil && m.state.Turn.CurrentID == p.ID {
		line = "→" + line[1:]
	}
	return line
}

// resourcesLine 法器剩余次数
func (m *Model) resourcesLine() string {
	if len(m.state.Resources) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.state.Resources))
	for _, tool := range []string{"board", "water", "rod", "exorcism", "salt"} {
		if n, ok := m.state.Resources[tool]; ok {
			parts = append(parts, fmt.Sprintf("%s×%d", toolNames[tool], n))
		}
	}
	return dimStyle.Render("法器: " + strings.Join(parts, "  "))
}

// moveView 正在裁决的提案
func (m *Model) moveView() string {
	mv := m.state.Move
	name := toolNames[mv.Tool]
	if name == "" {
		name = mv.Tool
	}
	s := fmt.Sprintf("📜 %s 提议使用 %s", mv.ActorName, name)
	if mv.TargetName != "" {
		s += fmt.Sprintf(" → %s", mv.TargetName)
	}
	if mv.Seconded {
		s += " (已附议)"
	}
	return s
}

// demonPanel 恶魔私有面板
func (m *Model) demonPanel() string {
	var parts []string
	if len(m.demon.Possessed) > 0 {
		names := make([]string, 0, len(m.demon.Possessed))
		for _, id := range m.demon.Possessed {
			names = append(names, m.nameOf(id))
		}
		parts = append(parts, "附身: "+strings.Join(names, ", "))
	}
	if len(m.demon.Charges) > 0 {
		charges := make([]string, 0, len(m.demon.Charges))
		for tool, n := range m.demon.Charges {
			charges = append(charges, fmt.Sprintf("%s×%d", toolNames[tool], n))
		}
		parts = append(parts, "干扰: "+strings.Join(charges, " "))
	}
	if m.demon.PendingTool != "" && m.demon.TrueResult != nil {
		verdict := "清白"
		if *m.demon.TrueResult {
			verdict = "被附身"
		}
		parts = append(parts, fmt.Sprintf("真实结果: %s", verdict))
	}
	if len(parts) == 0 {
		return "😈 恶魔视角"
	}
	return "😈 " + strings.Join(parts, " | ")
}

// gameOverView 终局结算
func (m *Model) gameOverView() string {
	g := m.gameOver
	var b strings.Builder
	if g.Winner == "demon" {
		b.WriteString(demonStyle.Render("😈 恶魔获胜！"))
	} else {
		b.WriteString(noticeStyle.Render("🎉 人类获胜！"))
	}
	b.WriteString(fmt.Sprintf("\n恶魔是 %s，共 %d 轮", g.DemonName, g.Rounds))
	if len(g.Possessed) > 0 {
		names := make([]string, 0, len(g.Possessed))
		for _, p := range g.Possessed {
			names = append(names, p.Name)
		}
		b.WriteString("\n终局仍被附身: " + strings.Join(names, ", "))
	}
	return boxStyle.Render(b.String())
}

// chatView 聊天记录
func (m *Model) chatView() string {
	var b strings.Builder
	for _, c := range tail(m.chat, 6) {
		line := fmt.Sprintf("%s: %s", c.SenderName, c.Content)
		switch {
		case c.IsSystem:
			b.WriteString(dimStyle.Render("📢 " + c.Content))
		case c.Channel == protocol.ChannelDemon:
			b.WriteString(whisperSty.Render("😈 " + line))
		default:
			b.WriteString(chatStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// deadlinesLine 各计时器剩余秒数
func (m *Model) deadlinesLine() string {
	if len(m.state.Deadlines) == 0 {
		return ""
	}
	now := time.Now().UnixMilli()
	parts := make([]string, 0, len(m.state.Deadlines))
	for _, key := range []string{"advance", "round"} {
		deadline, ok := m.state.Deadlines[key]
		if !ok {
			continue
		}
		remain := (deadline - now) / 1000
		if remain < 0 {
			remain = 0
		}
		label := "⏳"
		if key == "round" {
			label = "🕐"
		}
		parts = append(parts, fmt.Sprintf("%s %ds", label, remain))
	}
	return dimStyle.Render(strings.Join(parts, "  "))
}

// writeStatusLines 通知与错误提示
func (m *Model) writeStatusLines(b *strings.Builder) {
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("⚠️ " + m.err))
	}
}

// nameOf 按 ID 查玩家名
func (m *Model) nameOf(id string) string {
	if m.state != nil {
		for _, p := range m.state.Players {
			if p.ID == id {
				return p.Name
			}
		}
	}
	return id
}

// tail 取切片末尾 n 个元素
func tail[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
