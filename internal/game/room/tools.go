package room

// Tool 白天可提议使用的法器
type Tool string

const (
	ToolBoard    Tool = "board"    // 通灵板：公开揭示目标是否被附身
	ToolWater    Tool = "water"    // 圣水：解救被附身者，可累积
	ToolRod      Tool = "rod"      // 探灵杖：私密揭示，由持有者解读汇报
	ToolExorcism Tool = "exorcism" // 驱魔：解救并使目标退出表决与轮转
	ToolSalt     Tool = "salt"     // 盐线：在座位圈上画线，守护一段弧内的玩家
)

// AllTools 全部法器，按展示顺序
var AllTools = []Tool{ToolBoard, ToolWater, ToolRod, ToolExorcism, ToolSalt}

// ParseTool 解析法器名
func ParseTool(s string) (Tool, bool) {
	switch Tool(s) {
	case ToolBoard, ToolWater, ToolRod, ToolExorcism, ToolSalt:
		return Tool(s), true
	}
	return "", false
}

// needsTarget 法器是否需要指定单个目标（盐线指定的是缝隙而非玩家）
func (t Tool) needsTarget() bool {
	return t != ToolSalt
}

// revealTool 法器是否产生可被恶魔干扰的附身揭示结果
func (t Tool) revealTool() bool {
	return t == ToolBoard || t == ToolRod
}

// waterCap 圣水的累积上限，随房间人数增长
func waterCap(playerCount int) int {
	return 1 + playerCount/5
}
