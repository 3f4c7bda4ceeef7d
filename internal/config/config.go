package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Security SecurityConfig `yaml:"security"`
	Game     GameConfig     `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string           `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig    `yaml:"rate_limit"`
	MessageLimit   MessageLimitConfig `yaml:"message_limit"`
	ChatLimit      ChatLimitConfig    `yaml:"chat_limit"`
}

// RateLimitConfig 连接速率限制
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	BanDuration  int `yaml:"ban_duration"` // 封禁时长（分钟）
}

// BanDurationTime 返回封禁时长
func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Minute
}

// MessageLimitConfig 消息速率限制
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
}

// ChatLimitConfig 聊天速率限制
type ChatLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	Cooldown     int `yaml:"cooldown"` // 冷却时间（秒）
}

// CooldownDuration 返回聊天冷却时长
func (c *ChatLimitConfig) CooldownDuration() time.Duration {
	return time.Duration(c.Cooldown) * time.Second
}

// GameConfig 游戏配置，作为每个房间设置的默认值
type GameConfig struct {
	MinPlayers int `yaml:"min_players"` // 开局最少人数
	MaxPlayers int `yaml:"max_players"` // 房间最大人数

	SelectionTimeout int `yaml:"selection_timeout"` // 恶魔候选应答超时（秒）
	NightTimeout     int `yaml:"night_timeout"`     // 夜晚附身超时（秒）
	DiscussTimeout   int `yaml:"discuss_timeout"`   // 讨论阶段超时（秒）
	DayTimeout       int `yaml:"day_timeout"`       // 白天单次行动超时（秒）
	VoteTimeout      int `yaml:"vote_timeout"`      // 附议/投票超时（秒）
	SelectTimeout    int `yaml:"select_timeout"`    // 选择目标超时（秒）
	InterfereTimeout int `yaml:"interfere_timeout"` // 恶魔干扰应答超时（秒）
	InterpretTimeout int `yaml:"interpret_timeout"` // 解读汇报超时（秒）
	DisplayTimeout   int `yaml:"display_timeout"`   // 结果展示时长（秒）
	EndTimeout       int `yaml:"end_timeout"`       // 终局展示后自动回大厅（秒）
	RoundCeiling     int `yaml:"round_ceiling"`     // 每轮白天总时长上限（秒）

	RoomTimeout           int `yaml:"room_timeout"`            // 房间等待超时（分钟）
	RoomCleanupDelay      int `yaml:"room_cleanup_delay"`      // 关闭前延迟（秒）
	ShutdownCheckInterval int `yaml:"shutdown_check_interval"` // 优雅关闭检查间隔（秒）
}

// RoomTimeoutDuration 返回房间等待超时时长
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// RoomCleanupDelayDuration 返回关闭前延迟时长
func (c *GameConfig) RoomCleanupDelayDuration() time.Duration {
	return time.Duration(c.RoomCleanupDelay) * time.Second
}

// ShutdownCheckIntervalDuration 返回优雅关闭检查间隔
func (c *GameConfig) ShutdownCheckIntervalDuration() time.Duration {
	return time.Duration(c.ShutdownCheckInterval) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults 填充未设置的配置项
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 1831
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = 1000
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if len(cfg.Security.AllowedOrigins) == 0 {
		cfg.Security.AllowedOrigins = []string{"*"}
	}
	if cfg.Security.RateLimit.MaxPerSecond == 0 {
		cfg.Security.RateLimit.MaxPerSecond = 5
	}
	if cfg.Security.RateLimit.MaxPerMinute == 0 {
		cfg.Security.RateLimit.MaxPerMinute = 60
	}
	if cfg.Security.RateLimit.BanDuration == 0 {
		cfg.Security.RateLimit.BanDuration = 10
	}
	if cfg.Security.MessageLimit.MaxPerSecond == 0 {
		cfg.Security.MessageLimit.MaxPerSecond = 20
	}
	if cfg.Security.ChatLimit.MaxPerSecond == 0 {
		cfg.Security.ChatLimit.MaxPerSecond = 2
	}
	if cfg.Security.ChatLimit.MaxPerMinute == 0 {
		cfg.Security.ChatLimit.MaxPerMinute = 30
	}
	if cfg.Security.ChatLimit.Cooldown == 0 {
		cfg.Security.ChatLimit.Cooldown = 10
	}

	g := &cfg.Game
	if g.MinPlayers == 0 {
		g.MinPlayers = 4
	}
	if g.MaxPlayers == 0 {
		g.MaxPlayers = 12
	}
	if g.SelectionTimeout == 0 {
		g.SelectionTimeout = 20
	}
	if g.NightTimeout == 0 {
		g.NightTimeout = 30
	}
	if g.DiscussTimeout == 0 {
		g.DiscussTimeout = 120
	}
	if g.DayTimeout == 0 {
		g.DayTimeout = 60
	}
	if g.VoteTimeout == 0 {
		g.VoteTimeout = 30
	}
	if g.SelectTimeout == 0 {
		g.SelectTimeout = 30
	}
	if g.InterfereTimeout == 0 {
		g.InterfereTimeout = 15
	}
	if g.InterpretTimeout == 0 {
		g.InterpretTimeout = 30
	}
	if g.DisplayTimeout == 0 {
		g.DisplayTimeout = 8
	}
	if g.EndTimeout == 0 {
		g.EndTimeout = 60
	}
	if g.RoundCeiling == 0 {
		g.RoundCeiling = 300
	}
	if g.RoomTimeout == 0 {
		g.RoomTimeout = 10
	}
	if g.RoomCleanupDelay == 0 {
		g.RoomCleanupDelay = 3
	}
	if g.ShutdownCheckInterval == 0 {
		g.ShutdownCheckInterval = 5
	}
}
