package room

import (
	"github.com/palemoky/hunt-the-demon/internal/config"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

// Settings 房间设置，房主仅可在大厅阶段修改
type Settings struct {
	MinPlayers  int
	MaxPlayers  int
	Tools       map[Tool]bool // 各法器启用开关
	TurnOrder   bool          // 回合制开关
	WaterPurify bool          // 圣水附带净化

	// 各阶段时限（秒）
	SelectionTimeout int
	NightTimeout     int
	DiscussTimeout   int
	DayTimeout       int
	VoteTimeout      int
	SelectTimeout    int
	InterfereTimeout int
	InterpretTimeout int
	DisplayTimeout   int
	EndTimeout       int
	RoundCeiling     int
}

// defaultSettings 从服务配置生成房间默认设置
func defaultSettings(cfg *config.GameConfig) *Settings {
	tools := make(map[Tool]bool, len(AllTools))
	for _, t := range AllTools {
		tools[t] = true
	}
	return &Settings{
		MinPlayers:       cfg.MinPlayers,
		MaxPlayers:       cfg.MaxPlayers,
		Tools:            tools,
		TurnOrder:        true,
		WaterPurify:      true,
		SelectionTimeout: cfg.SelectionTimeout,
		NightTimeout:     cfg.NightTimeout,
		DiscussTimeout:   cfg.DiscussTimeout,
		DayTimeout:       cfg.DayTimeout,
		VoteTimeout:      cfg.VoteTimeout,
		SelectTimeout:    cfg.SelectTimeout,
		InterfereTimeout: cfg.InterfereTimeout,
		InterpretTimeout: cfg.InterpretTimeout,
		DisplayTimeout:   cfg.DisplayTimeout,
		EndTimeout:       cfg.EndTimeout,
		RoundCeiling:     cfg.RoundCeiling,
	}
}

// ToInfo 转换为协议层结构
func (s *Settings) ToInfo() protocol.SettingsInfo {
	tools := make(map[string]bool, len(s.Tools))
	for t, on := range s.Tools {
		tools[string(t)] = on
	}
	return protocol.SettingsInfo{
		MinPlayers:       s.MinPlayers,
		MaxPlayers:       s.MaxPlayers,
		Tools:            tools,
		TurnOrder:        s.TurnOrder,
		WaterPurify:      s.WaterPurify,
		SelectionTimeout: s.SelectionTimeout,
		NightTimeout:     s.NightTimeout,
		DiscussTimeout:   s.DiscussTimeout,
		DayTimeout:       s.DayTimeout,
		VoteTimeout:      s.VoteTimeout,
		SelectTimeout:    s.SelectTimeout,
		InterfereTimeout: s.InterfereTimeout,
		InterpretTimeout: s.InterpretTimeout,
		DisplayTimeout:   s.DisplayTimeout,
		EndTimeout:       s.EndTimeout,
		RoundCeiling:     s.RoundCeiling,
	}
}

// applyInfo 应用房主提交的设置，非法值保持原样
func (s *Settings) applyInfo(info *protocol.SettingsInfo, hardMax int) {
	if info.MinPlayers >= 2 && info.MinPlayers <= hardMax {
		s.MinPlayers = info.MinPlayers
	}
	if info.MaxPlayers >= s.MinPlayers && info.MaxPlayers <= hardMax {
		s.MaxPlayers = info.MaxPlayers
	}
	for name, on := range info.Tools {
		if t, ok := ParseTool(name); ok {
			s.Tools[t] = on
		}
	}
	s.TurnOrder = info.TurnOrder
	s.WaterPurify = info.WaterPurify

	applyTimeout := func(dst *int, v int) {
		if v > 0 && v <= 600 {
			*dst = v
		}
	}
	applyTimeout(&s.SelectionTimeout, info.SelectionTimeout)
	applyTimeout(&s.NightTimeout, info.NightTimeout)
	applyTimeout(&s.DiscussTimeout, info.DiscussTimeout)
	applyTimeout(&s.DayTimeout, info.DayTimeout)
	applyTimeout(&s.VoteTimeout, info.VoteTimeout)
	applyTimeout(&s.SelectTimeout, info.SelectTimeout)
	applyTimeout(&s.InterfereTimeout, info.InterfereTimeout)
	applyTimeout(&s.InterpretTimeout, info.InterpretTimeout)
	applyTimeout(&s.DisplayTimeout, info.DisplayTimeout)
	applyTimeout(&s.EndTimeout, info.EndTimeout)
	if info.RoundCeiling > 0 && info.RoundCeiling <= 1800 {
		s.RoundCeiling = info.RoundCeiling
	}
}
