//go:build ci

package sound

// 音效名占位，保持与正式实现一致的调用点
const (
	CueNightFall  = "night_fall"
	CueDayBreak   = "day_break"
	CueBell       = "bell"
	CueReveal     = "reveal"
	CueWhisper    = "whisper"
	CueVictory    = "victory"
	CueDoom       = "doom"
	CueChat       = "chat"
	CuePlayerJoin = "player_join"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Init() error {
	return nil
}

func (m *Manager) Play(name string) {
	// No-op
}

func (m *Manager) SetMuted(muted bool) {
	// No-op
}

func (m *Manager) IsMuted() bool {
	return false
}

func (m *Manager) Close() {
	// No-op
}
