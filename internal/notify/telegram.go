package notify

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"smarthospital-client/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramNotifier 通过 Telegram 转发 critical 级报警
// 同一设备在节流窗口内只通知一次，避免刷屏
type TelegramNotifier struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	throttle       time.Duration
	mu             sync.Mutex
	lastAlertTimes map[string]time.Time
	logger         *zap.Logger
}

// NewTelegramNotifier 创建 Telegram 通知器
func NewTelegramNotifier(botToken, chatID string, throttle time.Duration, logger *zap.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("error creating telegram bot: %w", err)
	}

	parsedChatID, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("error parsing chat ID: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", bot.Self.UserName))

	return &TelegramNotifier{
		bot:            bot,
		chatID:         parsedChatID,
		throttle:       throttle,
		lastAlertTimes: make(map[string]time.Time),
		logger:         logger,
	}, nil
}

// SendCriticalAlert 转发一条 critical 报警（节流窗口内的重复设备跳过）
func (n *TelegramNotifier) SendCriticalAlert(alert service.AggregatedAlert) error {
	n.mu.Lock()
	last, seen := n.lastAlertTimes[alert.DeviceID]
	if seen && time.Since(last) < n.throttle {
		n.mu.Unlock()
		n.logger.Debug("Alert notification throttled",
			zap.String("device_id", alert.DeviceID),
			zap.String("alert_id", alert.ID),
		)
		return nil
	}
	n.lastAlertTimes[alert.DeviceID] = time.Now()
	n.mu.Unlock()

	text := formatAlertMessage(alert)
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	n.logger.Info("Critical alert forwarded to Telegram",
		zap.String("device_id", alert.DeviceID),
		zap.String("alert_id", alert.ID),
	)
	return nil
}

func formatAlertMessage(alert service.AggregatedAlert) string {
	room := alert.RoomID
	if room == "" {
		room = "unassigned"
	}
	return fmt.Sprintf("🚨 *CRITICAL ALERT*\n\n"+
		"*Device:* %s (%s)\n"+
		"*Room:* %s\n"+
		"*Message:* %s\n"+
		"*Time:* %s",
		alert.DeviceName, alert.DeviceID,
		room,
		alert.Message,
		alert.Timestamp.Format(time.RFC3339),
	)
}
