package apperrors

import (
	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

// GameError 游戏错误（房间和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound   = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "房间不存在"}
	ErrRoomFull       = &GameError{Code: protocol.ErrCodeRoomFull, Message: "房间已满"}
	ErrNotInRoom      = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "您不在房间中"}
	ErrAlreadyInRoom  = &GameError{Code: protocol.ErrCodeAlreadyInRoom, Message: "您已在房间中"}
	ErrGameStarted    = &GameError{Code: protocol.ErrCodeGameStarted, Message: "游戏已开始"}
	ErrGameNotStart   = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "游戏尚未开始"}
	ErrNameTaken      = &GameError{Code: protocol.ErrCodeNameTaken, Message: "该名字已被使用"}
	ErrNotYourTurn    = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您行动"}
	ErrWrongPhase     = &GameError{Code: protocol.ErrCodeWrongPhase, Message: "当前阶段不能进行此操作"}
	ErrNotOwner       = &GameError{Code: protocol.ErrCodeNotOwner, Message: "只有房主可以进行此操作"}
	ErrTooFewPlayers  = &GameError{Code: protocol.ErrCodeTooFewPlayers, Message: "人数不足，无法开始"}
	ErrTooManyPlayers = &GameError{Code: protocol.ErrCodeTooManyPlayers, Message: "超过房间人数上限"}
	ErrNoResource     = &GameError{Code: protocol.ErrCodeNoResource, Message: "该法器已无剩余次数"}
	ErrAlreadyMoved   = &GameError{Code: protocol.ErrCodeAlreadyMoved, Message: "您本轮已经行动过了"}
	ErrInvalidTarget  = &GameError{Code: protocol.ErrCodeInvalidTarget, Message: "目标不合法"}
	ErrNotEligible    = &GameError{Code: protocol.ErrCodeNotEligible, Message: "您没有资格参与"}
	ErrInvalidMessage = &GameError{Code: protocol.ErrCodeInvalidMessage, Message: "消息格式错误"}
)
