package room

// 每轮基础配额
const baseAllotment = 1

// 恶魔干扰次数的初始配额（按揭示法器分池）
const baseCharges = 1

// refillResources 每轮开始时重置法器配额
// 圣水是累积型：next = min(人数上限, 上轮剩余+1)，首轮为 0
func (r *Room) refillResources() {
	prevWater := r.Resources[ToolWater]

	for _, t := range AllTools {
		if !r.Settings.Tools[t] {
			r.Resources[t] = 0
			continue
		}
		r.Resources[t] = baseAllotment
	}

	if r.Settings.Tools[ToolWater] {
		if r.Round <= 1 {
			r.Resources[ToolWater] = 0
		} else {
			next := prevWater + 1
			if limit := waterCap(len(r.PlayerOrder)); next > limit {
				next = limit
			}
			r.Resources[ToolWater] = next
		}
	}
}

// initCharges 对局开始时初始化恶魔干扰次数
func (r *Room) initCharges() {
	r.charges = map[Tool]int{
		ToolBoard: baseCharges,
		ToolRod:   baseCharges,
	}
}

// replenishCharge 反制法器生效时为恶魔补充一次对应揭示池的干扰次数
// 圣水补通灵板池，驱魔补探灵杖池
func (r *Room) replenishCharge(used Tool) {
	switch used {
	case ToolWater:
		r.charges[ToolBoard]++
	case ToolExorcism:
		r.charges[ToolRod]++
	}
}

// anyResourceLeft 是否还有任何已启用法器的剩余次数
func (r *Room) anyResourceLeft() bool {
	for _, t := range AllTools {
		if r.Settings.Tools[t] && r.Resources[t] > 0 {
			return true
		}
	}
	return false
}

// anyEligibleUnmoved 是否还有有资格且未行动的玩家
func (r *Room) anyEligibleUnmoved() bool {
	for _, p := range r.Players {
		if p.eligible() && !p.Moved {
			return true
		}
	}
	return false
}

// dayResolved 白天是否已无可继续的行动
// 所有有资格的玩家都已行动，或已无任何法器可用
func (r *Room) dayResolved() bool {
	return !r.anyEligibleUnmoved() || !r.anyResourceLeft()
}
