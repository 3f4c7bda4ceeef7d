package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgReconnect MessageType = "reconnect" // 断线重连
	MsgPing      MessageType = "ping"      // 心跳 ping

	// 房间操作
	MsgCreateRoom     MessageType = "create_room"     // 创建房间
	MsgJoinRoom       MessageType = "join_room"       // 加入房间
	MsgLeaveRoom      MessageType = "leave_room"      // 离开房间
	MsgUpdateSettings MessageType = "update_settings" // 房主修改房间设置

	// 游戏操作：统一的行动消息，由房间引擎按阶段仲裁
	MsgMove MessageType = "move" // 提交行动
	MsgChat MessageType = "chat" // 聊天消息
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected     MessageType = "connected"      // 连接成功
	MsgReconnected   MessageType = "reconnected"    // 重连成功
	MsgPong          MessageType = "pong"           // 心跳 pong
	MsgPlayerOffline MessageType = "player_offline" // 玩家掉线通知
	MsgPlayerOnline  MessageType = "player_online"  // 玩家上线通知

	// 房间相关
	MsgRoomCreated  MessageType = "room_created"  // 房间创建成功
	MsgRoomJoined   MessageType = "room_joined"   // 加入房间成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "player_left"   // 玩家离开

	// 游戏流程
	MsgRoomState     MessageType = "room_state"     // 房间公开快照（每次变更后广播）
	MsgRoleOffer     MessageType = "role_offer"     // 恶魔候选邀请（仅候选人可见）
	MsgDemonAssigned MessageType = "demon_assigned" // 恶魔已确定
	MsgDemonState    MessageType = "demon_state"    // 恶魔私有状态（附身名单、干扰次数）
	MsgReveal        MessageType = "reveal"         // 私密揭示（探灵杖结果、被附身通知）
	MsgToolResult    MessageType = "tool_result"    // 法器结算结果公示
	MsgPopup         MessageType = "popup"          // 弹窗提示
	MsgGameOver      MessageType = "game_over"      // 游戏结束

	// 错误
	MsgError MessageType = "error" // 错误消息
)
