package room

import (
	"github.com/palemoky/hunt-the-demon/internal/server/storage"
)

// ToRoomData 将 Room 转换为可序列化的 RoomData
// 只镜像公开状态，秘密字段不落 Redis
func (r *Room) ToRoomData() *storage.RoomData {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := &storage.RoomData{
		Code:        r.Code,
		Phase:       int(r.Phase),
		Round:       r.Round,
		Players:     make([]storage.PlayerData, 0, len(r.PlayerOrder)),
		PlayerOrder: append([]string(nil), r.PlayerOrder...),
		CreatedAt:   r.CreatedAt.Unix(),
	}

	for _, id := range r.PlayerOrder {
		p := r.Players[id]
		if p == nil {
			continue
		}
		data.Players = append(data.Players, storage.PlayerData{
			ID:          p.ID,
			Name:        p.Name,
			Seat:        p.Seat,
			IsOwner:     p.IsOwner,
			IsDemon:     p.IsDemon,
			IsExorcised: p.IsExorcised,
			Active:      p.Active(),
		})
	}

	return data
}
