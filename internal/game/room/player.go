package room

import (
	"github.com/palemoky/hunt-the-demon/internal/types"
)

// RoomPlayer 房间中的玩家
// ID/Name 冗余保存一份，掉线时 Client 为 nil 仍可引用
type RoomPlayer struct {
	Client   types.ClientInterface
	ID       string
	Name     string
	Color    string
	AvatarID int
	Seat     int // 入座顺序，即轮转顺序

	IsOwner bool // 房主（首位入座者）

	// 对局内状态，终局时整体重置
	IsDemon     bool
	WasDemon    bool
	Moved       bool // 本轮已行动（提议或放弃）
	Ready       bool // 讨论阶段已就绪
	Voted       bool
	Vote        bool // 仅 Voted 为 true 时有意义
	IsExorcised bool // 被驱魔，退出表决与轮转
	IsPurified  bool // 被净化，不可再被附身
	WasPurified bool
	IsWarded    bool // 本轮被盐线守护
	WasWarded   bool
	IsDamned    bool // 曾被通灵板公示为附身
}

// newRoomPlayer 创建入座玩家
func newRoomPlayer(client types.ClientInterface, color string, avatarID, seat int) *RoomPlayer {
	return &RoomPlayer{
		Client:   client,
		ID:       client.GetID(),
		Name:     client.GetName(),
		Color:    color,
		AvatarID: avatarID,
		Seat:     seat,
	}
}

// freshLife 终局时整体重置对局内状态，只保留身份与座位
func (p *RoomPlayer) freshLife() {
	p.IsDemon = false
	p.WasDemon = false
	p.Moved = false
	p.Ready = false
	p.Voted = false
	p.Vote = false
	p.IsExorcised = false
	p.IsPurified = false
	p.WasPurified = false
	p.IsWarded = false
	p.WasWarded = false
	p.IsDamned = false
}

// resetRound 每轮开始时清理临时标记
func (p *RoomPlayer) resetRound() {
	p.Moved = false
	p.Ready = false
	p.Voted = false
	p.Vote = false
	if p.IsWarded {
		p.WasWarded = true
		p.IsWarded = false
	}
}

// eligible 是否计入表决与轮转（恶魔与被驱魔者除外）
func (p *RoomPlayer) eligible() bool {
	return !p.IsDemon && !p.IsExorcised
}

// Active 是否在线
func (p *RoomPlayer) Active() bool {
	return p.Client != nil
}
