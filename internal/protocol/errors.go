package protocol

// 协议错误码
// 1xxx 通用错误，2xxx 房间错误，3xxx 游戏错误，5xxx 服务器错误
const (
	ErrCodeUnknown        = 1000 // 未知错误
	ErrCodeInvalidMessage = 1001 // 非法消息
	ErrCodeRateLimited    = 1002 // 触发限流

	ErrCodeRoomNotFound  = 2001 // 房间不存在
	ErrCodeRoomFull      = 2002 // 房间已满
	ErrCodeNotInRoom     = 2003 // 不在房间中
	ErrCodeGameStarted   = 2004 // 游戏已开始
	ErrCodeNameTaken     = 2005 // 名字已被占用
	ErrCodeAlreadyInRoom = 2006 // 已在房间中

	ErrCodeGameNotStart   = 3001 // 游戏未开始
	ErrCodeNotYourTurn    = 3002 // 还没轮到你
	ErrCodeWrongPhase     = 3003 // 当前阶段不允许此操作
	ErrCodeNotOwner       = 3004 // 需要房主权限
	ErrCodeTooFewPlayers  = 3005 // 人数不足
	ErrCodeTooManyPlayers = 3006 // 人数超限
	ErrCodeNoResource     = 3007 // 法器次数耗尽
	ErrCodeAlreadyMoved   = 3008 // 本轮已行动
	ErrCodeInvalidTarget  = 3009 // 非法目标
	ErrCodeNotEligible    = 3010 // 无资格参与

	ErrCodeMaintenance = 5003 // 服务器维护中
)

// errorMessages 错误码对应的默认提示文案
var errorMessages = map[int]string{
	ErrCodeUnknown:        "未知错误",
	ErrCodeInvalidMessage: "消息格式错误",
	ErrCodeRateLimited:    "操作太频繁，请稍后再试",

	ErrCodeRoomNotFound:  "房间不存在",
	ErrCodeRoomFull:      "房间已满",
	ErrCodeNotInRoom:     "你不在房间中",
	ErrCodeGameStarted:   "游戏已经开始",
	ErrCodeNameTaken:     "该名字已被使用",
	ErrCodeAlreadyInRoom: "你已在房间中",

	ErrCodeGameNotStart:   "游戏尚未开始",
	ErrCodeNotYourTurn:    "还没轮到你行动",
	ErrCodeWrongPhase:     "当前阶段不能进行此操作",
	ErrCodeNotOwner:       "只有房主可以进行此操作",
	ErrCodeTooFewPlayers:  "人数不足，无法开始",
	ErrCodeTooManyPlayers: "超过房间人数上限",
	ErrCodeNoResource:     "该法器已无剩余次数",
	ErrCodeAlreadyMoved:   "你本轮已经行动过了",
	ErrCodeInvalidTarget:  "目标不合法",
	ErrCodeNotEligible:    "你没有资格参与",

	ErrCodeMaintenance: "服务器维护中，请稍后再来",
}

// ErrorText 返回错误码对应的文案
func ErrorText(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return errorMessages[ErrCodeUnknown]
}
