package room

import (
	"sync"
	"time"

	"github.com/palemoky/hunt-the-demon/internal/config"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/server/storage"
)

const (
	roomCodeLength = 6            // 房间号长度
	roomCodeChars  = "0123456789" // 房间号字符集
)

// 计时器键
const (
	TimerAdvance = "advance" // 阶段自动推进
	TimerRound   = "round"   // 每轮白天总时长上限
)

// Move 正在裁决的提案
type Move struct {
	Tool       Tool
	ActorID    string
	TargetID   string // SELECT 阶段填入
	Seconded   bool
	SeconderID string
	LineStart  int  // 盐线缝隙
	LineEnd    int
	Selected   bool // SELECT 阶段已指定目标
}

// TurnState 回合制指针
type TurnState struct {
	Current int // 当前行动者座位
	Start   int // 本轮起始座位
}

// Room 游戏房间，所有状态只在持有 mu 时读写
type Room struct {
	Code        string
	Phase       Phase
	Round       int
	Players     map[string]*RoomPlayer
	PlayerOrder []string // 入座顺序，即轮转顺序
	Settings    *Settings
	Resources   map[Tool]int
	CurrentMove *Move
	Turn        *TurnState
	Deadlines   map[string]int64 // 计时器截止（毫秒时间戳），供快照展示
	CreatedAt   time.Time

	// 秘密状态，绝不进入公开快照
	possessed      map[string]bool // 被附身玩家
	freedThisRound map[string]bool // 上夜之后被解救的玩家，下夜不可立即再附
	votes          map[string]bool // 表决台账
	charges        map[Tool]int    // 恶魔干扰次数，按揭示法器分池
	pendingResult  bool            // 待干扰/解读的真实结果
	shownResult    bool            // 干扰后展示的结果
	interfered     bool            // 本次结果是否被干扰
	pendingReport  string          // 探灵杖持有者的汇报，超时视为沉默
	candidates     []string        // 恶魔候选池（待抽取）
	candidateID    string          // 当前被邀请的候选人

	// 聊天
	chatHistory  []protocol.ChatPayload            // 公共频道，入房重放
	demonHistory map[string][]protocol.ChatPayload // 私密频道，按被附身者分键，解救即销毁

	// 计时
	generation    uint64 // 每次进入新阶段递增，旧回调失效
	advanceTimer  *time.Timer
	roundTimer    *time.Timer
	roundDeadline time.Time

	mu sync.Mutex
}

// RoomManager 房间管理器
type RoomManager struct {
	redisStore  *storage.RedisStore
	gameCfg     *config.GameConfig
	roomTimeout time.Duration
	rooms       map[string]*Room
	mu          sync.RWMutex
}

// NewRoomManager 创建房间管理器
func NewRoomManager(rs *storage.RedisStore, gameCfg *config.GameConfig) *RoomManager {
	rm := &RoomManager{
		redisStore:  rs,
		gameCfg:     gameCfg,
		roomTimeout: gameCfg.RoomTimeoutDuration(),
		rooms:       make(map[string]*Room),
	}

	// 启动房间清理协程
	go rm.cleanupLoop()

	return rm
}

// player 按 ID 查玩家
func (r *Room) player(id string) *RoomPlayer {
	return r.Players[id]
}

// demon 当前恶魔，未选定时返回 nil
func (r *Room) demon() *RoomPlayer {
	for _, p := range r.Players {
		if p.IsDemon {
			return p
		}
	}
	return nil
}

// owner 房主
func (r *Room) owner() *RoomPlayer {
	for _, p := range r.Players {
		if p.IsOwner {
			return p
		}
	}
	return nil
}

// eligibleCount 计入表决与轮转的人数
func (r *Room) eligibleCount() int {
	n := 0
	for _, p := range r.Players {
		if p.eligible() {
			n++
		}
	}
	return n
}

// possessedCount 当前被附身人数
func (r *Room) possessedCount() int {
	return len(r.possessed)
}
