//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// 音效名对应 assets/sounds 下的文件名（不含扩展名）
const (
	CueNightFall  = "night_fall"  // 入夜
	CueDayBreak   = "day_break"   // 天亮
	CueBell       = "bell"        // 表决开始
	CueReveal     = "reveal"      // 法器结算公示
	CueWhisper    = "whisper"     // 被附身私密提示
	CueVictory    = "victory"     // 人类胜利
	CueDoom       = "doom"        // 恶魔胜利
	CueChat       = "chat"        // 聊天消息
	CuePlayerJoin = "player_join" // 玩家加入
)

type Manager struct {
	mu      sync.RWMutex
	buffers map[string]*beep.Buffer
	enabled bool
	muted   bool
}

func NewManager() *Manager {
	return &Manager{
		buffers: make(map[string]*beep.Buffer),
	}
}

func (m *Manager) Init() error {
	sampleRate := beep.SampleRate(44100)
	// 小缓冲区降低播放延迟
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	m.enabled = true

	return m.loadSoundFiles(sampleRate)
}

// loadSoundFiles 从 assets/sounds 加载全部音效
func (m *Manager) loadSoundFiles(sampleRate beep.SampleRate) error {
	soundDir := "assets/sounds"
	files, err := os.ReadDir(soundDir)
	if err != nil {
		// 目录不存在则静默运行
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		baseName := strings.TrimSuffix(name, filepath.Ext(name))

		// 单个文件失败不影响其余音效
		_ = m.loadSoundFile(soundDir, name, baseName, ext, sampleRate)
	}

	return nil
}

func (m *Manager) loadSoundFile(soundDir, name, baseName, ext string, sampleRate beep.SampleRate) error {
	path := filepath.Join(soundDir, name)
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}

	if err != nil {
		return err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   4,
	})
	buffer.Append(resampled)

	m.mu.Lock()
	m.buffers[baseName] = buffer
	m.mu.Unlock()
	return nil
}

// Play 播放指定音效，未加载时静默忽略
func (m *Manager) Play(name string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.enabled || m.muted {
		return
	}

	buffer, ok := m.buffers[name]
	if !ok {
		return
	}

	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

// SetMuted 静音开关
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	m.muted = muted
	m.mu.Unlock()
}

// IsMuted 是否静音
func (m *Manager) IsMuted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

func (m *Manager) Close() {
	m.mu.Lock()
	m.enabled = false
	m.mu.Unlock()
}
