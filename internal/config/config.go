package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 客户端协调层配置
type Config struct {
	API struct {
		BaseURL        string // 后端 REST API 地址
		Token          string // Bearer Token（可选）
		TimeoutSeconds int    // 单次请求超时（秒）
	}
	Redis struct {
		Enabled  bool // 是否启用 Redis（watch-alerts 的已通知缓存；禁用时退化为内存缓存）
		Addr     string
		Password string
		DB       int
	}
	MQTT     MQTTConfig
	Telegram TelegramConfig
	Watch    struct {
		PollInterval     int    // 报警轮询间隔（秒）
		NotifyTTLHours   int    // 已通知报警的去重窗口（小时）
		ThrottleMinutes  int    // 同一设备的通知节流窗口（分钟）
		ResolverIdentity string // 自动化工具解除报警时使用的身份标识
	}
	Log struct {
		Level  string
		Format string
	}
}

// MQTTConfig MQTT 配置（用于触发报警刷新，默认禁用）
type MQTTConfig struct {
	Enabled  bool   // 是否启用 MQTT 触发刷新
	Broker   string // Broker 地址（如 "tcp://localhost:1883"）
	ClientID string // 客户端 ID
	Username string // 用户名（可选）
	Password string // 密码（可选）
	Topic    string // 订阅的主题（如 "smarthospital/alerts/refresh"）
}

// TelegramConfig Telegram 通知配置（未配置 BotToken 则不启用）
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// Load 从环境变量加载配置（存在 .env 文件时先行加载）
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.API.BaseURL = getEnv("API_BASE_URL", "http://localhost:8000")
	cfg.API.Token = getEnv("API_TOKEN", "")
	cfg.API.TimeoutSeconds = parseInt(getEnv("API_TIMEOUT_SECONDS", "30"), 30)
	if cfg.API.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT_SECONDS must be positive")
	}

	cfg.Redis.Enabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "smarthospital-client")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "smarthospital/alerts/refresh")

	cfg.Telegram.BotToken = getEnv("TELEGRAM_BOT_TOKEN", "")
	cfg.Telegram.ChatID = getEnv("TELEGRAM_CHAT_ID", "")

	cfg.Watch.PollInterval = parseInt(getEnv("POLL_INTERVAL", "30"), 30)
	cfg.Watch.NotifyTTLHours = parseInt(getEnv("NOTIFY_TTL_HOURS", "24"), 24)
	cfg.Watch.ThrottleMinutes = parseInt(getEnv("THROTTLE_MINUTES", "5"), 5)
	cfg.Watch.ResolverIdentity = getEnv("RESOLVER_IDENTITY", "watch-alerts")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, defaultValue int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return defaultValue
}
