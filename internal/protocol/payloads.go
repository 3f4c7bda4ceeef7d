package protocol

// --- 行动类型 ---

// 统一行动消息的 Action 取值
const (
	ActionStart     = "start"     // 房主开局
	ActionFinish    = "finish"    // 房主终局回大厅
	ActionRole      = "role"      // 恶魔候选应答（accept 字段）
	ActionPossess   = "possess"   // 恶魔夜晚附身
	ActionReady     = "ready"     // 讨论阶段就绪
	ActionUseTool   = "use_tool"  // 提议使用法器
	ActionPass      = "pass"      // 放弃本轮行动
	ActionSecond    = "second"    // 附议提案
	ActionVote      = "vote"      // 表决提案
	ActionSelect    = "select"    // 选择法器目标
	ActionInterfere = "interfere" // 恶魔干扰应答（accept 字段）
	ActionReport    = "report"    // 探灵杖结果汇报
)

// 探灵杖汇报取值
const (
	ReportPossessed = "possessed" // 宣称目标被附身
	ReportClear     = "clear"     // 宣称目标清白
	ReportSilent    = "silent"    // 拒绝汇报
)

// 聊天频道
const (
	ChannelRoom  = "room"  // 公共频道
	ChannelDemon = "demon" // 恶魔与被附身者的私密频道
)

// --- 客户端请求 Payloads ---

// ReconnectPayload 断线重连请求
type ReconnectPayload struct {
	Token    string `json:"token"`     // 重连令牌
	PlayerID string `json:"player_id"` // 玩家 ID
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	Name     string `json:"name,omitempty"`      // 显示名，留空则随机生成
	Color    string `json:"color,omitempty"`     // 显示颜色
	AvatarID int    `json:"avatar_id,omitempty"` // 头像编号
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
	Name     string `json:"name,omitempty"`
	Color    string `json:"color,omitempty"`
	AvatarID int    `json:"avatar_id,omitempty"`
}

// MovePayload 统一行动请求
type MovePayload struct {
	Action    string `json:"action"`
	Tool      string `json:"tool,omitempty"`
	TargetID  string `json:"target_id,omitempty"`
	Vote      *bool  `json:"vote,omitempty"`
	LineStart *int   `json:"line_start,omitempty"` // 盐线起点缝隙（座位间）
	LineEnd   *int   `json:"line_end,omitempty"`   // 盐线终点缝隙
	Accept    *bool  `json:"accept,omitempty"`     // 候选应答 / 干扰应答
	Report    string `json:"report,omitempty"`     // possessed/clear/silent
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	ReconnectToken string `json:"reconnect_token"` // 重连令牌
}

// ReconnectedPayload 重连成功响应
type ReconnectedPayload struct {
	PlayerID   string            `json:"player_id"`
	PlayerName string            `json:"player_name"`
	RoomCode   string            `json:"room_code,omitempty"`  // 如果在房间中
	RoomState  *RoomStatePayload `json:"room_state,omitempty"` // 如果在对局中
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// PlayerOfflinePayload 玩家掉线通知
type PlayerOfflinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Timeout    int    `json:"timeout"` // 等待重连超时（秒）
}

// PlayerOnlinePayload 玩家上线通知
type PlayerOnlinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode string       `json:"room_code"`
	Player   PlayerInfo   `json:"player"`
	Settings SettingsInfo `json:"settings"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	RoomCode string       `json:"room_code"`
	Player   PlayerInfo   `json:"player"`
	Players  []PlayerInfo `json:"players"` // 房间内所有玩家
	Settings SettingsInfo `json:"settings"`
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// RoomStatePayload 房间公开快照
// 不包含任何秘密字段：附身名单、投票明细、干扰次数、候选状态一律不下发
type RoomStatePayload struct {
	RoomCode  string           `json:"room_code"`
	Phase     string           `json:"phase"`
	Round     int              `json:"round"`
	Players   []PlayerInfo     `json:"players"` // 按入座顺序
	Settings  SettingsInfo     `json:"settings"`
	Resources map[string]int   `json:"resources"`           // 法器剩余次数
	Move      *MoveInfo        `json:"move,omitempty"`      // 正在裁决的提案
	Turn      *TurnInfo        `json:"turn,omitempty"`      // 回合制开启时
	Deadlines map[string]int64 `json:"deadlines,omitempty"` // 计时器截止（毫秒时间戳）
}

// RoleOfferPayload 恶魔候选邀请（仅候选人收到）
type RoleOfferPayload struct {
	Timeout int `json:"timeout"` // 应答超时（秒）
}

// DemonAssignedPayload 恶魔确定通知
type DemonAssignedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// DemonStatePayload 恶魔私有状态（仅恶魔收到）
type DemonStatePayload struct {
	Possessed   []string       `json:"possessed"`              // 当前被附身玩家 ID
	Freed       []string       `json:"freed"`                  // 本轮被解救玩家 ID
	Charges     map[string]int `json:"charges"`                // 各法器剩余干扰次数
	PendingTool string         `json:"pending_tool,omitempty"` // 等待干扰应答的法器
	TrueResult  *bool          `json:"true_result,omitempty"`  // 待干扰的真实结果
}

// RevealPayload 私密揭示
type RevealPayload struct {
	Kind       string `json:"kind"` // possessed_you / rod
	TargetID   string `json:"target_id,omitempty"`
	TargetName string `json:"target_name,omitempty"`
	Possessed  *bool  `json:"possessed,omitempty"` // 探灵杖显示的结果
}

// ToolResultPayload 法器结算公示
type ToolResultPayload struct {
	Tool       string   `json:"tool"`
	ActorID    string   `json:"actor_id"`
	ActorName  string   `json:"actor_name"`
	TargetID   string   `json:"target_id,omitempty"`
	TargetName string   `json:"target_name,omitempty"`
	Possessed  *bool    `json:"possessed,omitempty"` // 通灵板公示结果
	Freed      bool     `json:"freed,omitempty"`     // 圣水解救成功
	Purified   bool     `json:"purified,omitempty"`  // 圣水净化生效
	Exorcised  bool     `json:"exorcised,omitempty"` // 驱魔生效
	Warded     []string `json:"warded,omitempty"`    // 盐线守护的玩家 ID
	Report     string   `json:"report,omitempty"`    // 探灵杖汇报（possessed/clear/silent）
}

// PopupPayload 弹窗提示
type PopupPayload struct {
	Text string `json:"text"`
}

// GameOverPayload 游戏结束通知
type GameOverPayload struct {
	Winner    string       `json:"winner"` // humans / demon
	DemonID   string       `json:"demon_id"`
	DemonName string       `json:"demon_name"`
	Possessed []PlayerInfo `json:"possessed"` // 终局时仍被附身的玩家
	Rounds    int          `json:"rounds"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ChatPayload 聊天消息
type ChatPayload struct {
	SenderID   string `json:"sender_id,omitempty"`   // 发送者 ID (服务端填充)
	SenderName string `json:"sender_name,omitempty"` // 发送者名字 (服务端填充)
	Content    string `json:"content"`               // 消息内容
	Channel    string `json:"channel"`               // room / demon
	PeerID     string `json:"peer_id,omitempty"`     // 恶魔发私聊时指定的对端
	Time       int64  `json:"time,omitempty"`        // 发送时间 (服务端填充)
	IsSystem   bool   `json:"is_system,omitempty"`   // 是否是系统消息
}

// --- 通用数据结构 ---

// PlayerInfo 玩家公开信息
type PlayerInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	AvatarID int    `json:"avatar_id"`
	Active   bool   `json:"active"`   // 是否在线
	IsOwner  bool   `json:"is_owner"` // 房主（首位入座者）
	IsDemon  bool   `json:"is_demon"` // 恶魔身份选定后公开
	WasDemon bool   `json:"was_demon"`

	// 每轮临时状态（公开部分）
	Moved       bool `json:"moved"`        // 本轮已行动
	Ready       bool `json:"ready"`        // 讨论阶段已就绪
	Voted       bool `json:"voted"`        // 已表决（不公开票面）
	IsExorcised bool `json:"is_exorcised"` // 被驱魔，失去行动与表决权
	IsPurified  bool `json:"is_purified"`  // 被净化，不可再被附身
	WasPurified bool `json:"was_purified"`
	IsWarded    bool `json:"is_warded"` // 本轮被盐线守护
	WasWarded   bool `json:"was_warded"`
	IsDamned    bool `json:"is_damned"` // 曾被公示为附身
}

// SettingsInfo 房间设置（房主在大厅阶段可修改）
type SettingsInfo struct {
	MinPlayers  int             `json:"min_players"`
	MaxPlayers  int             `json:"max_players"`
	Tools       map[string]bool `json:"tools"`        // 各法器启用开关
	TurnOrder   bool            `json:"turn_order"`   // 回合制开关
	WaterPurify bool            `json:"water_purify"` // 圣水净化开关

	// 各阶段时限（秒）
	SelectionTimeout int `json:"selection_timeout"`
	NightTimeout     int `json:"night_timeout"`
	DiscussTimeout   int `json:"discuss_timeout"`
	DayTimeout       int `json:"day_timeout"`
	VoteTimeout      int `json:"vote_timeout"`
	SelectTimeout    int `json:"select_timeout"`
	InterfereTimeout int `json:"interfere_timeout"`
	InterpretTimeout int `json:"interpret_timeout"`
	DisplayTimeout   int `json:"display_timeout"`
	EndTimeout       int `json:"end_timeout"`
	RoundCeiling     int `json:"round_ceiling"` // 每轮白天总时长上限（秒）
}

// MoveInfo 正在裁决的提案
type MoveInfo struct {
	Tool       string `json:"tool"`
	ActorID    string `json:"actor_id"`
	ActorName  string `json:"actor_name"`
	TargetID   string `json:"target_id,omitempty"`
	TargetName string `json:"target_name,omitempty"`
	Seconded   bool   `json:"seconded"`
	SeconderID string `json:"seconder_id,omitempty"`
}

// TurnInfo 回合制指针
type TurnInfo struct {
	CurrentIndex int    `json:"current_index"` // 当前行动者座位
	StartIndex   int    `json:"start_index"`   // 本轮起始座位
	CurrentID    string `json:"current_id"`    // 当前行动者 ID
}
