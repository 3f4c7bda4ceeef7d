package room

import (
	"log"

	"github.com/palemoky/hunt-the-demon/internal/apperrors"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

// verdict 行动仲裁结果
type verdict struct {
	handled bool // 是否产生了状态变更
	advance bool // 是否触发阶段推进
}

// SubmitMove 房间状态的唯一行动入口
// 非法行动静默丢弃；权限与前置条件类错误返回给行动者本人
func (r *Room) SubmitMove(playerID string, mv *protocol.MovePayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.player(playerID)
	if p == nil {
		return apperrors.ErrNotInRoom
	}

	var v verdict
	var err error
	if p.IsDemon {
		v, err = r.handleDemonMove(p, mv)
	} else {
		v, err = r.handlePublicMove(p, mv)
	}
	if err != nil {
		return err
	}
	if !v.handled {
		log.Printf("🚫 房间 %s 丢弃非法行动：玩家 %s 在 %s 阶段提交 %s", r.Code, p.Name, r.Phase, mv.Action)
		return nil
	}

	if v.advance {
		r.advance()
	}
	r.broadcastState()
	return nil
}

// handleDemonMove 恶魔行动仲裁
func (r *Room) handleDemonMove(p *RoomPlayer, mv *protocol.MovePayload) (verdict, error) {
	switch mv.Action {
	case protocol.ActionStart, protocol.ActionFinish:
		// 房主权限不随恶魔身份失效，走公共仲裁
		return r.handlePublicMove(p, mv)

	case protocol.ActionPossess:
		if r.Phase != PhaseNight {
			return verdict{}, nil
		}
		target := r.player(mv.TargetID)
		if target == nil || target.ID == p.ID {
			return verdict{}, apperrors.ErrInvalidTarget
		}
		// 已被附身、受净化、受盐线守护、上轮刚被解救的玩家都不可附
		if r.possessed[target.ID] || target.IsPurified || target.IsWarded ||
			target.IsExorcised || r.freedThisRound[target.ID] {
			return verdict{}, apperrors.ErrInvalidTarget
		}

		r.possessed[target.ID] = true
		r.demonHistory[target.ID] = nil
		r.sendTo(target.ID, protocol.MustNewMessage(protocol.MsgReveal, protocol.RevealPayload{
			Kind: "possessed_you",
		}))
		r.sendDemonState()
		log.Printf("👻 房间 %s 恶魔在夜里行动了", r.Code)
		return verdict{handled: true, advance: true}, nil

	case protocol.ActionInterfere:
		if r.Phase != PhaseInterfere || mv.Accept == nil {
			return verdict{}, nil
		}
		if *mv.Accept {
			tool := r.CurrentMove.Tool
			if r.charges[tool] <= 0 {
				return verdict{}, apperrors.ErrNoResource
			}
			r.charges[tool]--
			r.shownResult = !r.pendingResult
			r.interfered = true
			r.sendDemonState()
			log.Printf("🌀 房间 %s 恶魔干扰了 %s 的结果", r.Code, tool)
		}
		return verdict{handled: true, advance: true}, nil
	}

	return verdict{}, nil
}

// handlePublicMove 普通玩家行动仲裁
func (r *Room) handlePublicMove(p *RoomPlayer, mv *protocol.MovePayload) (verdict, error) {
	switch mv.Action {
	case protocol.ActionStart:
		if r.Phase != PhaseLobby {
			return verdict{}, nil
		}
		if !p.IsOwner {
			return verdict{}, apperrors.ErrNotOwner
		}
		if len(r.PlayerOrder) < r.Settings.MinPlayers {
			return verdict{}, apperrors.ErrTooFewPlayers
		}
		if len(r.PlayerOrder) > r.Settings.MaxPlayers {
			return verdict{}, apperrors.ErrTooManyPlayers
		}
		r.startGame()
		return verdict{handled: true}, nil

	case protocol.ActionFinish:
		if r.Phase != PhaseEnd {
			return verdict{}, nil
		}
		if !p.IsOwner {
			return verdict{}, apperrors.ErrNotOwner
		}
		return verdict{handled: true, advance: true}, nil

	case protocol.ActionRole:
		if r.Phase != PhaseSelection || p.ID != r.candidateID || mv.Accept == nil {
			return verdict{}, nil
		}
		if *mv.Accept {
			r.assignDemon(p)
			return verdict{handled: true, advance: true}, nil
		}
		r.offerNextCandidate()
		return verdict{handled: true}, nil

	case protocol.ActionReady:
		if r.Phase != PhaseDiscuss || !p.eligible() || p.Ready {
			return verdict{}, nil
		}
		p.Ready = true
		return verdict{handled: true, advance: r.allEligibleReady()}, nil

	case protocol.ActionUseTool:
		return r.handleUseTool(p, mv)

	case protocol.ActionPass:
		if r.Phase != PhaseDay || !p.eligible() || p.Moved {
			return verdict{}, nil
		}
		if r.Turn != nil && r.currentActor() != p {
			return verdict{}, apperrors.ErrNotYourTurn
		}
		p.Moved = true
		if r.Turn != nil {
			// 回合制下任何行动都推进轮转
			return verdict{handled: true, advance: true}, nil
		}
		// 自由行动下只有全员行动完毕才结算
		return verdict{handled: true, advance: r.dayResolved()}, nil

	case protocol.ActionSecond:
		if r.Phase != PhaseSeconding || r.CurrentMove == nil || r.CurrentMove.Seconded {
			return verdict{}, nil
		}
		if !p.eligible() || p.ID == r.CurrentMove.ActorID {
			return verdict{}, apperrors.ErrNotEligible
		}
		r.CurrentMove.Seconded = true
		r.CurrentMove.SeconderID = p.ID
		return verdict{handled: true, advance: true}, nil

	case protocol.ActionVote:
		if r.Phase != PhaseVoting || mv.Vote == nil {
			return verdict{}, nil
		}
		if !p.eligible() {
			return verdict{}, apperrors.ErrNotEligible
		}
		if p.Voted {
			return verdict{}, apperrors.ErrAlreadyMoved
		}
		p.Voted = true
		p.Vote = *mv.Vote
		r.votes[p.ID] = *mv.Vote
		return verdict{handled: true, advance: r.allEligibleVoted()}, nil

	case protocol.ActionSelect:
		return r.handleSelect(p, mv)

	case protocol.ActionReport:
		if r.Phase != PhaseInterpret || r.CurrentMove == nil || p.ID != r.CurrentMove.ActorID {
			return verdict{}, nil
		}
		switch mv.Report {
		case protocol.ReportPossessed, protocol.ReportClear, protocol.ReportSilent:
		default:
			return verdict{}, nil
		}
		r.pendingReport = mv.Report
		return verdict{handled: true, advance: true}, nil
	}

	return verdict{}, nil
}

// handleUseTool 白天提议使用法器
func (r *Room) handleUseTool(p *RoomPlayer, mv *protocol.MovePayload) (verdict, error) {
	if r.Phase != PhaseDay || !p.eligible() {
		return verdict{}, nil
	}
	if p.Moved {
		return verdict{}, apperrors.ErrAlreadyMoved
	}
	if r.Turn != nil && r.currentActor() != p {
		return verdict{}, apperrors.ErrNotYourTurn
	}
	tool, ok := ParseTool(mv.Tool)
	if !ok {
		return verdict{}, nil
	}
	if !r.Settings.Tools[tool] || r.Resources[tool] <= 0 {
		return verdict{}, apperrors.ErrNoResource
	}

	p.Moved = true
	r.CurrentMove = &Move{Tool: tool, ActorID: p.ID}
	log.Printf("🔧 房间 %s 玩家 %s 提议使用 %s", r.Code, p.Name, tool)
	return verdict{handled: true, advance: true}, nil
}

// handleSelect 提案者选定法器目标（盐线选定的是缝隙区间）
func (r *Room) handleSelect(p *RoomPlayer, mv *protocol.MovePayload) (verdict, error) {
	if r.Phase != PhaseSelect || r.CurrentMove == nil || p.ID != r.CurrentMove.ActorID {
		return verdict{}, nil
	}

	if !r.CurrentMove.Tool.needsTarget() {
		if mv.LineStart == nil || mv.LineEnd == nil {
			return verdict{}, apperrors.ErrInvalidTarget
		}
		r.CurrentMove.LineStart = *mv.LineStart
		r.CurrentMove.LineEnd = *mv.LineEnd
		r.CurrentMove.Selected = true
		return verdict{handled: true, advance: true}, nil
	}

	target := r.player(mv.TargetID)
	if target == nil || target.ID == p.ID {
		// 法器不可指向自己
		return verdict{}, apperrors.ErrInvalidTarget
	}
	r.CurrentMove.TargetID = target.ID
	r.CurrentMove.Selected = true
	return verdict{handled: true, advance: true}, nil
}

// allEligibleReady 有资格的玩家是否全部就绪
func (r *Room) allEligibleReady() bool {
	for _, p := range r.Players {
		if p.eligible() && !p.Ready {
			return false
		}
	}
	return true
}

// allEligibleVoted 有资格的玩家是否全部投票
func (r *Room) allEligibleVoted() bool {
	for _, p := range r.Players {
		if p.eligible() && !p.Voted {
			return false
		}
	}
	return true
}
