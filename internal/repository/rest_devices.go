package repository

import (
	"context"
	"fmt"

	"smarthospital-client/internal/client"
	"smarthospital-client/internal/domain"

	"go.uber.org/zap"
)

type RestDevicesRepo struct {
	client *client.Client
	logger *zap.Logger
}

func NewRestDevicesRepo(c *client.Client, logger *zap.Logger) *RestDevicesRepo {
	return &RestDevicesRepo{client: c, logger: logger}
}

func (r *RestDevicesRepo) ListDevices(ctx context.Context) ([]*domain.Device, error) {
	var devices []*domain.Device
	if err := r.client.Get(ctx, "/iotData", &devices); err != nil {
		return nil, err
	}
	for _, d := range devices {
		d.Normalize()
	}
	return devices, nil
}

func (r *RestDevicesRepo) GetDevice(ctx context.Context, deviceID string) (*domain.Device, error) {
	var device domain.Device
	if err := r.client.Get(ctx, fmt.Sprintf("/iotData/%s", deviceID), &device); err != nil {
		return nil, err
	}
	device.Normalize()
	return &device, nil
}

func (r *RestDevicesRepo) CreateDevice(ctx context.Context, device *domain.Device) (*domain.Device, error) {
	var created domain.Device
	if err := r.client.Post(ctx, "/iotData", device, &created); err != nil {
		return nil, err
	}
	created.Normalize()
	return &created, nil
}

func (r *RestDevicesRepo) UpdateDeviceInfo(ctx context.Context, deviceID string, info domain.DeviceInfo) error {
	return r.client.Put(ctx, fmt.Sprintf("/iotData/%s/deviceInfo", deviceID), info, nil)
}

func (r *RestDevicesRepo) GetLatestVitals(ctx context.Context, deviceID string) (map[string]domain.VitalReading, error) {
	var vitals map[string]domain.VitalReading
	if err := r.client.Get(ctx, fmt.Sprintf("/iotData/%s/vitals/latest", deviceID), &vitals); err != nil {
		return nil, err
	}
	if vitals == nil {
		vitals = map[string]domain.VitalReading{}
	}
	return vitals, nil
}

func (r *RestDevicesRepo) ResolveAlert(ctx context.Context, deviceID, alertID, resolvedBy string) error {
	body := map[string]string{"resolvedBy": resolvedBy, "timestamp": alertID}
	return r.client.Post(ctx, fmt.Sprintf("/iotData/%s/alerts/%s/resolve", deviceID, alertID), body, nil)
}

func (r *RestDevicesRepo) AssignPatient(ctx context.Context, deviceID, patientID string) error {
	body := map[string]string{"patientId": patientID}
	return r.client.Post(ctx, fmt.Sprintf("/iotData/%s/assign-patient", deviceID), body, nil)
}

func (r *RestDevicesRepo) UnassignPatient(ctx context.Context, deviceID string) error {
	return r.client.Delete(ctx, fmt.Sprintf("/iotData/%s/unassign-patient", deviceID), nil)
}
