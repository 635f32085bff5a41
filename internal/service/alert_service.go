package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"smarthospital-client/internal/client"
	"smarthospital-client/internal/domain"
	"smarthospital-client/internal/repository"

	"go.uber.org/zap"
)

// AlertFilter 报警过滤条件
type AlertFilter string

const (
	AlertFilterAll        AlertFilter = ""
	AlertFilterCritical   AlertFilter = "critical"
	AlertFilterWarning    AlertFilter = "warning"
	AlertFilterInfo       AlertFilter = "info"
	AlertFilterUnresolved AlertFilter = "unresolved"
)

// AggregatedAlert 聚合后的单条报警，带来源设备/病房标签
// ID 为 {deviceId}_{alertKey} 复合形式，可直接传给 ResolveAlert
type AggregatedAlert struct {
	ID         string
	DeviceID   string
	DeviceName string
	RoomID     string
	AlertType  string
	Message    string
	Timestamp  time.Time
	RawKey     string
	Resolved   bool
	ResolvedBy string
	ResolvedAt string
	AssignedTo string
}

// AlertService 报警聚合服务
// 将各设备内嵌的报警 map 摊平成单一的、按时间倒序的可过滤视图，并支持解除
type AlertService interface {
	AggregateAlerts(ctx context.Context, filter AlertFilter) ([]AggregatedAlert, error)
	ResolveAlert(ctx context.Context, req ResolveAlertRequest) (*ResolveAlertResponse, error)
	VitalsOverview(ctx context.Context) (map[string]map[string]domain.VitalReading, error)
}

type alertService struct {
	devicesRepo repository.DevicesRepository
	logger      *zap.Logger
}

// NewAlertService 创建报警聚合服务
func NewAlertService(devicesRepo repository.DevicesRepository, logger *zap.Logger) AlertService {
	return &alertService{
		devicesRepo: devicesRepo,
		logger:      logger,
	}
}

// AggregateAlerts 聚合全部设备的报警并按时间倒序排列
// 时间戳无法解析的报警跳过并记录，不让单条脏数据拖垮整个视图
func (s *alertService) AggregateAlerts(ctx context.Context, filter AlertFilter) ([]AggregatedAlert, error) {
	devices, err := s.devicesRepo.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	alerts := make([]AggregatedAlert, 0)
	for _, d := range devices {
		roomID := ""
		if d.DeviceInfo.RoomID != nil {
			roomID = *d.DeviceInfo.RoomID
		}
		for key, a := range d.Alerts {
			ts, err := ParseAlertTimestamp(a.Timestamp)
			if err != nil {
				// 键本身也是时间戳形式，作为兜底再试一次
				if ts, err = ParseAlertTimestamp(key); err != nil {
					s.logger.Warn("Skipping alert with unparsable timestamp",
						zap.String("device_id", d.ID),
						zap.String("alert_key", key),
						zap.String("timestamp", a.Timestamp),
					)
					continue
				}
			}
			if !matchesFilter(a, filter) {
				continue
			}
			alerts = append(alerts, AggregatedAlert{
				ID:         fmt.Sprintf("%s_%s", d.ID, key),
				DeviceID:   d.ID,
				DeviceName: d.Name,
				RoomID:     roomID,
				AlertType:  a.AlertType,
				Message:    a.Message,
				Timestamp:  ts,
				RawKey:     key,
				Resolved:   a.Resolved,
				ResolvedBy: a.ResolvedBy,
				ResolvedAt: a.ResolvedAt,
				AssignedTo: a.AssignedTo,
			})
		}
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})
	return alerts, nil
}

func matchesFilter(a domain.Alert, filter AlertFilter) bool {
	switch filter {
	case AlertFilterAll:
		return true
	case AlertFilterUnresolved:
		return !a.Resolved
	default:
		return a.AlertType == string(filter)
	}
}

// ResolveAlertRequest 解除报警请求
type ResolveAlertRequest struct {
	AlertID    string // {deviceId}_{alertTimestamp} 复合 ID
	ResolvedBy string
}

// ResolveAlertResponse 解除报警响应（乐观更新后的本地副本）
type ResolveAlertResponse struct {
	DeviceID string
	AlertKey string
	Alert    domain.Alert
}

// ResolveAlert 解除一条报警
// 解除是单向迁移：已解除的报警再次解除返回 ConflictError，不覆盖 resolvedBy/resolvedAt
func (s *alertService) ResolveAlert(ctx context.Context, req ResolveAlertRequest) (*ResolveAlertResponse, error) {
	// 1. 拆分复合 ID（时间戳形态匹配，设备 ID 可含下划线）
	deviceID, alertKey, err := SplitAlertID(req.AlertID)
	if err != nil {
		return nil, &client.ValidationError{Message: err.Error()}
	}

	// 2. 定位报警
	device, err := s.devicesRepo.GetDevice(ctx, deviceID)
	if err != nil {
		if isNotFound(err) {
			return nil, &client.NotFoundError{Resource: "device", ID: deviceID}
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	alert, ok := device.Alerts[alertKey]
	if !ok {
		return nil, &client.NotFoundError{Resource: "alert", ID: req.AlertID}
	}

	// 3. 单向状态检查
	if alert.Resolved {
		return nil, &client.ConflictError{
			Message: fmt.Sprintf("alert %s already resolved by %s", req.AlertID, alert.ResolvedBy),
		}
	}

	// 4. 调用后端解除
	if err := s.devicesRepo.ResolveAlert(ctx, deviceID, alertKey, req.ResolvedBy); err != nil {
		return nil, fmt.Errorf("resolve alert: %w", err)
	}

	// 5. 乐观更新本地副本，不等待重新拉取
	alert.Resolved = true
	alert.ResolvedBy = req.ResolvedBy
	alert.ResolvedAt = time.Now().UTC().Format(time.RFC3339)
	device.Alerts[alertKey] = alert

	s.logger.Info("Alert resolved",
		zap.String("device_id", deviceID),
		zap.String("alert_key", alertKey),
		zap.String("resolved_by", req.ResolvedBy),
	)
	return &ResolveAlertResponse{
		DeviceID: deviceID,
		AlertKey: alertKey,
		Alert:    alert,
	}, nil
}

// VitalsOverview 并发拉取所有设备的最新生命体征
// 只读操作之间没有顺序约束，可以并发发出后汇合；单台设备失败只记录并跳过
func (s *alertService) VitalsOverview(ctx context.Context) (map[string]map[string]domain.VitalReading, error) {
	devices, err := s.devicesRepo.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		overview = make(map[string]map[string]domain.VitalReading, len(devices))
	)
	for _, d := range devices {
		wg.Add(1)
		go func(deviceID string) {
			defer wg.Done()
			vitals, err := s.devicesRepo.GetLatestVitals(ctx, deviceID)
			if err != nil {
				s.logger.Warn("Get latest vitals failed",
					zap.String("device_id", deviceID),
					zap.Error(err),
				)
				return
			}
			mu.Lock()
			overview[deviceID] = vitals
			mu.Unlock()
		}(d.ID)
	}
	wg.Wait()
	return overview, nil
}
