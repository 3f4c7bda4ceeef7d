package room

// mod 安全取模，负数也落在 [0, n)
func mod(a, n int) int {
	return ((a % n) + n) % n
}

// playerAt 按座位取玩家
func (r *Room) playerAt(seat int) *RoomPlayer {
	if seat < 0 || seat >= len(r.PlayerOrder) {
		return nil
	}
	return r.Players[r.PlayerOrder[seat]]
}

// nextEligibleFrom 从 seat 起（含 seat）顺时针找下一个有资格行动的座位，找不到返回 -1
func (r *Room) nextEligibleFrom(seat int) int {
	n := len(r.PlayerOrder)
	if n == 0 {
		return -1
	}
	for i := 0; i < n; i++ {
		s := mod(seat+i, n)
		if p := r.playerAt(s); p != nil && p.eligible() {
			return s
		}
	}
	return -1
}

// rotateTurn 轮转到下一个有资格的座位；转回起始座位表示本轮轮转完成
func (r *Room) rotateTurn() (done bool) {
	if r.Turn == nil {
		return false
	}
	n := len(r.PlayerOrder)
	next := r.nextEligibleFrom(mod(r.Turn.Current+1, n))
	if next == -1 || next == r.Turn.Start {
		return true
	}
	r.Turn.Current = next
	return false
}

// currentActor 回合制下当前行动者；未开启回合制返回 nil
func (r *Room) currentActor() *RoomPlayer {
	if r.Turn == nil {
		return nil
	}
	return r.playerAt(r.Turn.Current)
}
