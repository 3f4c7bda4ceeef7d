package room

// Phase 游戏阶段
type Phase int

const (
	PhaseLobby     Phase = iota // 大厅，玩家进出
	PhaseSelection              // 抽取恶魔候选
	PhaseNight                  // 夜晚，恶魔附身
	PhaseDiscuss                // 自由讨论
	PhaseDay                    // 白天，提议使用法器
	PhaseSeconding              // 等待附议
	PhaseVoting                 // 表决提案
	PhaseSelect                 // 提案者选择目标
	PhaseInterfere              // 恶魔决定是否干扰结果
	PhaseInterpret              // 探灵杖持有者解读汇报
	PhaseDisplay                // 结果展示与回合结算
	PhaseEnd                    // 终局展示
)

var phaseNames = map[Phase]string{
	PhaseLobby:     "LOBBY",
	PhaseSelection: "DEMON_SELECTION",
	PhaseNight:     "NIGHT",
	PhaseDiscuss:   "DISCUSS",
	PhaseDay:       "DAY",
	PhaseSeconding: "SECONDING",
	PhaseVoting:    "VOTING",
	PhaseSelect:    "SELECT",
	PhaseInterfere: "INTERFERE",
	PhaseInterpret: "INTERPRET",
	PhaseDisplay:   "DISPLAY",
	PhaseEnd:       "END",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// inDayCycle 判断阶段是否属于白天裁决周期（回合限时只在这些阶段生效）
func (p Phase) inDayCycle() bool {
	switch p {
	case PhaseDay, PhaseSeconding, PhaseVoting, PhaseSelect, PhaseInterfere, PhaseInterpret:
		return true
	}
	return false
}
