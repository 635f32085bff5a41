package repository

import (
	"context"

	"smarthospital-client/internal/domain"
)

// DevicesRepository IoT 设备 Repository 接口
// deviceInfo 的写入是单资源更新，一致性引擎在其上编排多步操作
type DevicesRepository interface {
	ListDevices(ctx context.Context) ([]*domain.Device, error)
	GetDevice(ctx context.Context, deviceID string) (*domain.Device, error)
	CreateDevice(ctx context.Context, device *domain.Device) (*domain.Device, error)

	// UpdateDeviceInfo 整体覆盖设备的 deviceInfo（roomId/bedId/currentPatientId）
	UpdateDeviceInfo(ctx context.Context, deviceID string, info domain.DeviceInfo) error

	// GetLatestVitals 读取设备最新一组生命体征
	GetLatestVitals(ctx context.Context, deviceID string) (map[string]domain.VitalReading, error)

	// ResolveAlert 解除报警：alertID 为设备报警 map 的键（时间戳形式）
	ResolveAlert(ctx context.Context, deviceID, alertID, resolvedBy string) error

	// 监护仪与患者的关联
	AssignPatient(ctx context.Context, deviceID, patientID string) error
	UnassignPatient(ctx context.Context, deviceID string) error
}
