package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smarthospital-client/internal/client"
	"smarthospital-client/internal/config"
	"smarthospital-client/internal/logger"
	"smarthospital-client/internal/mqtt"
	"smarthospital-client/internal/notify"
	"smarthospital-client/internal/repository"
	"smarthospital-client/internal/service"
	"smarthospital-client/internal/store"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// watch-alerts 报警巡视守护进程
// 周期性聚合全部设备报警，把尚未通知过的 critical 报警转发到 Telegram。
// 已通知的报警 ID 记录在 KV（Redis 或内存）里做去重；
// 可选地订阅 MQTT 主题，收到消息立即触发一次刷新。
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format, "watch-alerts")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	apiClient := client.New(cfg.API.BaseURL, cfg.API.Token,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second, zapLogger)
	devicesRepo := repository.NewRestDevicesRepo(apiClient, zapLogger)
	alertService := service.NewAlertService(devicesRepo, zapLogger)

	// 去重缓存：Redis 未启用时退化为进程内缓存（重启后会重发一轮通知）
	var kv store.KV
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv = store.NewRedisKV(redisClient)
		zapLogger.Info("Using Redis for notification de-dup", zap.String("addr", cfg.Redis.Addr))
	} else {
		kv = store.NewMemoryKV()
		zapLogger.Info("Using in-memory notification de-dup")
	}

	var notifier *notify.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier, err = notify.NewTelegramNotifier(
			cfg.Telegram.BotToken,
			cfg.Telegram.ChatID,
			time.Duration(cfg.Watch.ThrottleMinutes)*time.Minute,
			zapLogger,
		)
		if err != nil {
			zapLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
		}
	} else {
		zapLogger.Warn("Telegram not configured, critical alerts will only be logged")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 立即刷新信号（MQTT 触发）
	refresh := make(chan struct{}, 1)

	if cfg.MQTT.Enabled {
		mqttCfg := cfg.MQTT
		mqttCfg.ClientID = fmt.Sprintf("%s-%s", mqttCfg.ClientID, uuid.NewString()[:8])
		mqttClient, err := mqtt.NewClient(mqttCfg, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to MQTT broker", zap.Error(err))
		}
		defer mqttClient.Disconnect()

		err = mqttClient.Subscribe(mqttCfg.Topic, 1, func(topic string, payload []byte) error {
			zapLogger.Debug("Refresh trigger received",
				zap.String("topic", topic),
				zap.Int("payload_size", len(payload)),
			)
			select {
			case refresh <- struct{}{}:
			default: // 已有待处理的刷新
			}
			return nil
		})
		if err != nil {
			zapLogger.Fatal("Failed to subscribe to refresh topic", zap.Error(err))
		}
		zapLogger.Info("MQTT refresh trigger enabled", zap.String("topic", mqttCfg.Topic))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		zapLogger.Info("Shutdown signal received, stopping watcher")
		cancel()
	}()

	zapLogger.Info("Alert watcher started",
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.Int("poll_interval_sec", cfg.Watch.PollInterval),
	)

	notifyTTL := time.Duration(cfg.Watch.NotifyTTLHours) * time.Hour
	ticker := time.NewTicker(time.Duration(cfg.Watch.PollInterval) * time.Second)
	defer ticker.Stop()

	pollOnce(ctx, alertService, kv, notifier, notifyTTL, zapLogger)
	for {
		select {
		case <-ctx.Done():
			zapLogger.Info("Alert watcher stopped")
			return
		case <-ticker.C:
			pollOnce(ctx, alertService, kv, notifier, notifyTTL, zapLogger)
		case <-refresh:
			pollOnce(ctx, alertService, kv, notifier, notifyTTL, zapLogger)
		}
	}
}

// pollOnce 执行一轮报警聚合与通知
func pollOnce(
	ctx context.Context,
	alertService service.AlertService,
	kv store.KV,
	notifier *notify.TelegramNotifier,
	notifyTTL time.Duration,
	zapLogger *zap.Logger,
) {
	alerts, err := alertService.AggregateAlerts(ctx, service.AlertFilterUnresolved)
	if err != nil {
		zapLogger.Error("Alert aggregation failed", zap.Error(err))
		return
	}

	critical := 0
	for _, a := range alerts {
		if a.AlertType != "critical" {
			continue
		}
		critical++

		key := "alert:notified:" + a.ID
		if _, err := kv.Get(ctx, key); err == nil {
			continue // 已通知过
		}

		zapLogger.Warn("Critical alert detected",
			zap.String("alert_id", a.ID),
			zap.String("device_id", a.DeviceID),
			zap.String("room_id", a.RoomID),
			zap.String("message", a.Message),
		)
		if notifier != nil {
			if err := notifier.SendCriticalAlert(a); err != nil {
				zapLogger.Error("Failed to forward alert", zap.String("alert_id", a.ID), zap.Error(err))
				continue // 通知失败不标记，下一轮重试
			}
		}
		if err := kv.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), notifyTTL); err != nil {
			zapLogger.Error("Failed to record notification", zap.String("alert_id", a.ID), zap.Error(err))
		}
	}

	zapLogger.Info("Alert poll completed",
		zap.Int("unresolved", len(alerts)),
		zap.Int("critical", critical),
	)
}
