package room

import (
	"log"
	"time"
)

// armAdvanceTimer 为当前阶段布置自动推进计时器，替换旧的计时器
// 回调捕获布置时的代数，阶段一变旧回调即失效
// 调用方必须持有 r.mu
func (r *Room) armAdvanceTimer(seconds int) {
	r.cancelAdvanceTimer()
	if seconds <= 0 {
		return
	}

	d := time.Duration(seconds) * time.Second
	gen := r.generation
	r.advanceTimer = time.AfterFunc(d, func() {
		r.advanceTimerFired(gen)
	})
	r.Deadlines[TimerAdvance] = time.Now().Add(d).UnixMilli()
}

// cancelAdvanceTimer 取消自动推进计时器
// 调用方必须持有 r.mu
func (r *Room) cancelAdvanceTimer() {
	if r.advanceTimer != nil {
		r.advanceTimer.Stop()
		r.advanceTimer = nil
	}
	delete(r.Deadlines, TimerAdvance)
}

// advanceTimerFired 自动推进回调，代数不匹配说明阶段已被手动推进过，不重复推进
func (r *Room) advanceTimerFired(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		return // 过期回调
	}

	log.Printf("⏰ 房间 %s 阶段 %s 超时，自动推进", r.Code, r.Phase)
	r.advance()
	r.broadcastState()
}

// armRoundTimer 布置每轮白天总时长上限计时器，在首次进入白天时布置一次
// 调用方必须持有 r.mu
func (r *Room) armRoundTimer() {
	r.cancelRoundTimer()
	if r.Settings.RoundCeiling <= 0 {
		return
	}

	d := time.Duration(r.Settings.RoundCeiling) * time.Second
	round := r.Round
	r.roundTimer = time.AfterFunc(d, func() {
		r.roundTimerFired(round)
	})
	r.roundDeadline = time.Now().Add(d)
	r.Deadlines[TimerRound] = r.roundDeadline.UnixMilli()
}

// cancelRoundTimer 取消回合上限计时器
// 调用方必须持有 r.mu
func (r *Room) cancelRoundTimer() {
	if r.roundTimer != nil {
		r.roundTimer.Stop()
		r.roundTimer = nil
	}
	delete(r.Deadlines, TimerRound)
}

// roundTimerFired 回合上限回调
// 轮数不匹配或已不在白天周期时为空操作；否则强制收束到结果展示
func (r *Room) roundTimerFired(round int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if round != r.Round || !r.Phase.inDayCycle() {
		return // 过期回调
	}

	log.Printf("⏰ 房间 %s 第 %d 轮白天超时，强制结算", r.Code, r.Round)
	r.forceDisplay("本轮时间耗尽")
	r.broadcastState()
}
