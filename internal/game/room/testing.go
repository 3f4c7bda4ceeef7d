//go:build !production

package room

import (
	"fmt"
	"time"

	"github.com/palemoky/hunt-the-demon/internal/config"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
	"github.com/palemoky/hunt-the-demon/internal/testutil"
)

// NewTestRoom 创建测试房间，n 名玩家按座位入座，首位是房主
func NewTestRoom(n int) (*Room, []*testutil.SimpleClient) {
	cfg := config.Default()
	r := &Room{
		Code:           "123456",
		Phase:          PhaseLobby,
		Players:        make(map[string]*RoomPlayer),
		PlayerOrder:    make([]string, 0, n),
		Settings:       defaultSettings(&cfg.Game),
		Resources:      make(map[Tool]int),
		Deadlines:      make(map[string]int64),
		CreatedAt:      time.Now(),
		possessed:      make(map[string]bool),
		freedThisRound: make(map[string]bool),
		votes:          make(map[string]bool),
		charges:        make(map[Tool]int),
		demonHistory:   make(map[string][]protocol.ChatPayload),
	}

	clients := make([]*testutil.SimpleClient, 0, n)
	for i := 0; i < n; i++ {
		c := &testutil.SimpleClient{
			ID:       fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("Player%d", i),
			RoomCode: r.Code,
		}
		p := newRoomPlayer(c, "", i, i)
		p.IsOwner = i == 0
		r.Players[c.ID] = p
		r.PlayerOrder = append(r.PlayerOrder, c.ID)
		clients = append(clients, c)
	}
	return r, clients
}

// AddRoomForTest 添加房间用于测试
func (rm *RoomManager) AddRoomForTest(room *Room) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.rooms[room.Code] = room
}

// AdvanceForTest 在测试中手动触发一次阶段推进
func (r *Room) AdvanceForTest() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advance()
}

// PhaseForTest 读取当前阶段
func (r *Room) PhaseForTest() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Phase
}
