package room

import (
	"log"
	"math/rand/v2"

	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

// 胜方
const (
	WinnerHumans = "humans"
	WinnerDemon  = "demon"
)

// enterPhase 进入新阶段：代数递增使旧回调失效，重新布置自动推进计时器
// 调用方必须持有 r.mu
func (r *Room) enterPhase(p Phase, timeoutSeconds int) {
	r.generation++
	r.Phase = p
	r.armAdvanceTimer(timeoutSeconds)
}

// advance 唯一的阶段推进入口
// 手动触发（行动满足条件）与计时器触发都走这里，阶段退出逻辑不重复实现
// 调用方必须持有 r.mu
func (r *Room) advance() {
	switch r.Phase {
	case PhaseSelection:
		if r.demon() != nil {
			r.beginRound()
		} else {
			// 候选人超时视为拒绝，继续抽下一位
			r.offerNextCandidate()
		}

	case PhaseNight:
		// 上一轮的解救保护到此失效
		r.freedThisRound = make(map[string]bool)
		r.enterPhase(PhaseDiscuss, r.Settings.DiscussTimeout)

	case PhaseDiscuss:
		r.enterDay()

	case PhaseDay:
		if r.CurrentMove != nil {
			r.enterPhase(PhaseSeconding, r.Settings.VoteTimeout)
			return
		}
		if r.Turn != nil {
			// 回合制：当前行动者超时视为放弃
			if cur := r.currentActor(); cur != nil && !cur.Moved {
				cur.Moved = true
			}
			if r.rotateTurn() || r.dayResolved() {
				r.enterDisplay()
			} else {
				r.enterPhase(PhaseDay, r.Settings.DayTimeout)
			}
			return
		}
		// 自由行动：超时时未行动者一律视为放弃
		if !r.dayResolved() {
			for _, p := range r.Players {
				if p.eligible() && !p.Moved {
					p.Moved = true
				}
			}
		}
		r.enterDisplay()

	case PhaseSeconding:
		if r.CurrentMove != nil && r.CurrentMove.Seconded {
			r.votes = make(map[string]bool)
			r.enterPhase(PhaseVoting, r.Settings.VoteTimeout)
		} else {
			r.popupAll("无人附议，提案作废")
			r.returnToDay()
		}

	case PhaseVoting:
		r.settleVote()

	case PhaseSelect:
		if r.CurrentMove != nil && r.CurrentMove.Selected {
			r.resolveSelection()
		} else {
			// 超时弃权，票决时已消耗的次数不退还
			r.popupAll("提案者未及时选择目标，行动作废")
			r.returnToDay()
		}

	case PhaseInterfere:
		r.resolveTool()

	case PhaseInterpret:
		r.settleReport()

	case PhaseDisplay:
		r.evaluateRound()

	case PhaseEnd:
		r.resetToLobby()
	}
}

// startGame 初始化对局并进入恶魔候选阶段
// 人数校验由行动入口完成，这里只做状态初始化
func (r *Room) startGame() {
	r.Round = 0
	r.possessed = make(map[string]bool)
	r.freedThisRound = make(map[string]bool)
	r.votes = make(map[string]bool)
	r.demonHistory = make(map[string][]protocol.ChatPayload)
	r.Resources = make(map[Tool]int)
	r.CurrentMove = nil
	r.Turn = nil
	r.initCharges()

	// 候选池：全员乱序，逐个邀请，拒绝者在池耗尽前不再被抽中
	r.candidates = append([]string(nil), r.PlayerOrder...)
	rand.Shuffle(len(r.candidates), func(i, j int) {
		r.candidates[i], r.candidates[j] = r.candidates[j], r.candidates[i]
	})

	log.Printf("🎮 房间 %s 开局，%d 名玩家", r.Code, len(r.PlayerOrder))
	r.offerNextCandidate()
}

// offerNextCandidate 从候选池抽下一位邀请成为恶魔，池空则从全员重新补满
func (r *Room) offerNextCandidate() {
	if len(r.candidates) == 0 {
		r.candidates = append([]string(nil), r.PlayerOrder...)
		rand.Shuffle(len(r.candidates), func(i, j int) {
			r.candidates[i], r.candidates[j] = r.candidates[j], r.candidates[i]
		})
	}

	r.candidateID = r.candidates[0]
	r.candidates = r.candidates[1:]

	r.sendTo(r.candidateID, protocol.MustNewMessage(protocol.MsgRoleOffer, protocol.RoleOfferPayload{
		Timeout: r.Settings.SelectionTimeout,
	}))
	r.enterPhase(PhaseSelection, r.Settings.SelectionTimeout)
}

// assignDemon 候选人接受邀请，恶魔身份即刻公开
func (r *Room) assignDemon(p *RoomPlayer) {
	p.IsDemon = true
	p.WasDemon = true
	r.candidateID = ""
	r.candidates = nil

	log.Printf("😈 房间 %s 恶魔确定：%s", r.Code, p.Name)
	r.Broadcast(protocol.MustNewMessage(protocol.MsgDemonAssigned, protocol.DemonAssignedPayload{
		PlayerID:   p.ID,
		PlayerName: p.Name,
	}))
}

// beginRound 开始新一轮：重置临时状态、补充法器、入夜
func (r *Room) beginRound() {
	r.Round++
	for _, p := range r.Players {
		p.resetRound()
	}
	r.votes = make(map[string]bool)
	r.CurrentMove = nil
	r.pendingReport = ""
	r.refillResources()

	if r.Settings.TurnOrder {
		start := 0
		if r.Turn != nil {
			start = mod(r.Turn.Start+1, len(r.PlayerOrder))
		}
		if s := r.nextEligibleFrom(start); s >= 0 {
			r.Turn = &TurnState{Current: s, Start: s}
		} else {
			r.Turn = nil
		}
	} else {
		r.Turn = nil
	}

	r.enterPhase(PhaseNight, r.Settings.NightTimeout)
	r.sendDemonState()

	log.Printf("🌙 房间 %s 进入第 %d 轮夜晚", r.Code, r.Round)
}

// enterDay 进入白天，已无可行动时直接结算
// 回合上限在此布置：它约束的是白天裁决周期，夜晚与讨论不计入
func (r *Room) enterDay() {
	if r.dayResolved() {
		r.enterDisplay()
		return
	}
	r.armRoundTimer()
	r.enterPhase(PhaseDay, r.Settings.DayTimeout)
}

// returnToDay 提案流产后回到白天继续
func (r *Room) returnToDay() {
	r.CurrentMove = nil
	r.votes = make(map[string]bool)
	r.pendingReport = ""

	if r.Turn != nil {
		if r.rotateTurn() || r.dayResolved() {
			r.enterDisplay()
			return
		}
	} else if r.dayResolved() {
		r.enterDisplay()
		return
	}
	r.enterPhase(PhaseDay, r.Settings.DayTimeout)
}

// enterDisplay 进入结果展示，白天周期结束，撤掉回合上限
func (r *Room) enterDisplay() {
	r.cancelRoundTimer()
	r.enterPhase(PhaseDisplay, r.Settings.DisplayTimeout)
}

// forceDisplay 回合上限触发，无视未决行动强制收束
func (r *Room) forceDisplay(reason string) {
	r.popupAll(reason)
	r.CurrentMove = nil
	r.votes = make(map[string]bool)
	r.pendingReport = ""
	// 未行动者视为放弃，避免结算后又弹回白天
	for _, p := range r.Players {
		if p.eligible() && !p.Moved {
			p.Moved = true
		}
	}
	r.enterDisplay()
}

// settleVote 计票：赞成 ≥ 反对即通过，弃权不计入任何一方
func (r *Room) settleVote() {
	if r.CurrentMove == nil {
		r.returnToDay()
		return
	}

	yes, no := 0, 0
	for _, v := range r.votes {
		if v {
			yes++
		} else {
			no++
		}
	}

	if yes >= no {
		// 通过才消耗法器次数，之后弃权不退还
		r.Resources[r.CurrentMove.Tool]--
		r.enterPhase(PhaseSelect, r.Settings.SelectTimeout)
		log.Printf("🗳️ 房间 %s 表决通过（%d:%d），等待选择目标", r.Code, yes, no)
	} else {
		r.popupAll("表决未通过，提案作废")
		log.Printf("🗳️ 房间 %s 表决未通过（%d:%d）", r.Code, yes, no)
		r.returnToDay()
	}
}

// resolveSelection 目标已定，揭示类法器先询问恶魔是否干扰
func (r *Room) resolveSelection() {
	mv := r.CurrentMove
	if mv.Tool.revealTool() {
		r.pendingResult = r.possessed[mv.TargetID]
		r.shownResult = r.pendingResult
		r.interfered = false
		if r.demon() != nil && r.charges[mv.Tool] > 0 {
			r.enterPhase(PhaseInterfere, r.Settings.InterfereTimeout)
			r.sendDemonState()
			return
		}
	}
	r.resolveTool()
}

// resolveTool 结算法器效果
func (r *Room) resolveTool() {
	mv := r.CurrentMove
	actor := r.player(mv.ActorID)
	target := r.player(mv.TargetID)

	result := protocol.ToolResultPayload{
		Tool:    string(mv.Tool),
		ActorID: mv.ActorID,
	}
	if actor != nil {
		result.ActorName = actor.Name
	}
	if target != nil {
		result.TargetID = target.ID
		result.TargetName = target.Name
	}

	switch mv.Tool {
	case ToolBoard:
		// 公示结果（可能已被恶魔干扰）
		shown := r.shownResult
		result.Possessed = &shown
		if shown && target != nil {
			target.IsDamned = true
		}
		r.Broadcast(protocol.MustNewMessage(protocol.MsgToolResult, result))
		r.enterDisplay()

	case ToolRod:
		// 结果只给提案者本人，由其决定是否、如何汇报
		shown := r.shownResult
		r.sendTo(mv.ActorID, protocol.MustNewMessage(protocol.MsgReveal, protocol.RevealPayload{
			Kind:       "rod",
			TargetID:   result.TargetID,
			TargetName: result.TargetName,
			Possessed:  &shown,
		}))
		r.pendingReport = ""
		r.enterPhase(PhaseInterpret, r.Settings.InterpretTimeout)

	case ToolWater:
		// 解救本身不公示，是否曾被附身仍是秘密
		if target != nil && r.possessed[target.ID] {
			r.freePlayer(target)
		}
		if target != nil && r.Settings.WaterPurify {
			target.IsPurified = true
			target.WasPurified = true
			result.Purified = true
		}
		r.replenishCharge(ToolWater)
		r.Broadcast(protocol.MustNewMessage(protocol.MsgToolResult, result))
		r.sendDemonState()
		r.enterDisplay()

	case ToolExorcism:
		if target != nil {
			if r.possessed[target.ID] {
				r.freePlayer(target)
			}
			target.IsExorcised = true
			result.Exorcised = true
			r.popupTo(target.ID, "你被驱魔束缚，退出表决与轮转")
		}
		r.replenishCharge(ToolExorcism)
		r.Broadcast(protocol.MustNewMessage(protocol.MsgToolResult, result))
		r.sendDemonState()
		r.enterDisplay()

	case ToolSalt:
		result.Warded = r.wardArc(mv.LineStart, mv.LineEnd)
		r.Broadcast(protocol.MustNewMessage(protocol.MsgToolResult, result))
		r.enterDisplay()
	}
}

// settleReport 探灵杖持有者的汇报公示，超时视为沉默
func (r *Room) settleReport() {
	mv := r.CurrentMove
	report := r.pendingReport
	if report == "" {
		report = protocol.ReportSilent
	}

	result := protocol.ToolResultPayload{
		Tool:    string(ToolRod),
		ActorID: mv.ActorID,
		Report:  report,
	}
	if actor := r.player(mv.ActorID); actor != nil {
		result.ActorName = actor.Name
	}
	if target := r.player(mv.TargetID); target != nil {
		result.TargetID = target.ID
		result.TargetName = target.Name
	}
	r.Broadcast(protocol.MustNewMessage(protocol.MsgToolResult, result))
	r.enterDisplay()
}

// freePlayer 解救被附身者：移出附身名单，关闭私密频道并销毁记录
func (r *Room) freePlayer(p *RoomPlayer) {
	delete(r.possessed, p.ID)
	r.freedThisRound[p.ID] = true
	delete(r.demonHistory, p.ID)
	log.Printf("✨ 房间 %s 玩家 %s 已解脱", r.Code, p.Name)
}

// wardArc 在座位圈上从缝隙 start 顺时针到缝隙 end，弧内玩家本轮受守护
// 缝隙 i 位于座位 i-1 与座位 i 之间
func (r *Room) wardArc(start, end int) []string {
	n := len(r.PlayerOrder)
	if n == 0 {
		return nil
	}
	start = mod(start, n)
	end = mod(end, n)

	var warded []string
	for s := start; s != end; s = mod(s+1, n) {
		p := r.playerAt(s)
		if p == nil || p.IsDemon {
			continue
		}
		p.IsWarded = true
		warded = append(warded, p.ID)
		if len(warded) >= n {
			break
		}
	}
	return warded
}

// evaluateRound 回合与终局结算，顺序固定：
// 1) 无人被附身 → 人类胜
// 2) 仍有法器且有人未行动 → 回到白天继续
// 3) 被附身者达到有效人数一半 → 恶魔胜
// 4) 进入下一轮夜晚
func (r *Room) evaluateRound() {
	if r.possessedCount() == 0 {
		r.endGame(WinnerHumans)
		return
	}
	if r.anyResourceLeft() && r.anyEligibleUnmoved() {
		r.returnToDay()
		return
	}
	if r.possessedCount()*2 >= r.eligibleCount() {
		r.endGame(WinnerDemon)
		return
	}
	r.beginRound()
}

// endGame 终局：公布恶魔与仍被附身者，停留展示后回大厅
func (r *Room) endGame(winner string) {
	r.cancelRoundTimer()

	payload := protocol.GameOverPayload{
		Winner: winner,
		Rounds: r.Round,
	}
	if d := r.demon(); d != nil {
		payload.DemonID = d.ID
		payload.DemonName = d.Name
	}
	for id := range r.possessed {
		if p := r.player(id); p != nil {
			payload.Possessed = append(payload.Possessed, r.playerInfo(p))
		}
	}

	r.enterPhase(PhaseEnd, r.Settings.EndTimeout)
	r.Broadcast(protocol.MustNewMessage(protocol.MsgGameOver, payload))

	log.Printf("🏁 房间 %s 对局结束，%s 获胜（%d 轮）", r.Code, winner, r.Round)
}

// resetToLobby 终局收尾：清空对局状态，玩家重获新生，回到大厅
func (r *Room) resetToLobby() {
	r.cancelRoundTimer()
	for _, p := range r.Players {
		p.freshLife()
	}
	r.Round = 0
	r.Resources = make(map[Tool]int)
	r.CurrentMove = nil
	r.Turn = nil
	r.possessed = make(map[string]bool)
	r.freedThisRound = make(map[string]bool)
	r.votes = make(map[string]bool)
	r.charges = make(map[Tool]int)
	r.candidates = nil
	r.candidateID = ""
	r.pendingReport = ""
	r.demonHistory = make(map[string][]protocol.ChatPayload)

	r.enterPhase(PhaseLobby, 0)
	log.Printf("🔄 房间 %s 回到大厅", r.Code)
}
