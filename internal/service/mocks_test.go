package service

import (
	"context"

	"smarthospital-client/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBedsRepository 是 BedsRepository 的 mock 实现
type MockBedsRepository struct {
	mock.Mock
}

func (m *MockBedsRepository) ListBeds(ctx context.Context) ([]*domain.Bed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Bed), args.Error(1)
}

func (m *MockBedsRepository) GetBed(ctx context.Context, bedID string) (*domain.Bed, error) {
	args := m.Called(ctx, bedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bed), args.Error(1)
}

func (m *MockBedsRepository) ListBedsByRoom(ctx context.Context, roomID string) ([]*domain.Bed, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Bed), args.Error(1)
}

func (m *MockBedsRepository) ListAvailableBedsByRoom(ctx context.Context, roomID string) ([]*domain.Bed, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Bed), args.Error(1)
}

func (m *MockBedsRepository) AssignPatient(ctx context.Context, bedID, patientID string) error {
	args := m.Called(ctx, bedID, patientID)
	return args.Error(0)
}

func (m *MockBedsRepository) DischargePatient(ctx context.Context, bedID, patientID string) error {
	args := m.Called(ctx, bedID, patientID)
	return args.Error(0)
}

// MockDevicesRepository 是 DevicesRepository 的 mock 实现
type MockDevicesRepository struct {
	mock.Mock
}

func (m *MockDevicesRepository) ListDevices(ctx context.Context) ([]*domain.Device, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Device), args.Error(1)
}

func (m *MockDevicesRepository) GetDevice(ctx context.Context, deviceID string) (*domain.Device, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Device), args.Error(1)
}

func (m *MockDevicesRepository) CreateDevice(ctx context.Context, device *domain.Device) (*domain.Device, error) {
	args := m.Called(ctx, device)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Device), args.Error(1)
}

func (m *MockDevicesRepository) UpdateDeviceInfo(ctx context.Context, deviceID string, info domain.DeviceInfo) error {
	args := m.Called(ctx, deviceID, info)
	return args.Error(0)
}

func (m *MockDevicesRepository) GetLatestVitals(ctx context.Context, deviceID string) (map[string]domain.VitalReading, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.VitalReading), args.Error(1)
}

func (m *MockDevicesRepository) ResolveAlert(ctx context.Context, deviceID, alertID, resolvedBy string) error {
	args := m.Called(ctx, deviceID, alertID, resolvedBy)
	return args.Error(0)
}

func (m *MockDevicesRepository) AssignPatient(ctx context.Context, deviceID, patientID string) error {
	args := m.Called(ctx, deviceID, patientID)
	return args.Error(0)
}

func (m *MockDevicesRepository) UnassignPatient(ctx context.Context, deviceID string) error {
	args := m.Called(ctx, deviceID)
	return args.Error(0)
}

// MockPatientsRepository 是 PatientsRepository 的 mock 实现
type MockPatientsRepository struct {
	mock.Mock
}

func (m *MockPatientsRepository) ListPatients(ctx context.Context) ([]*domain.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Patient), args.Error(1)
}

func (m *MockPatientsRepository) GetPatient(ctx context.Context, patientID string) (*domain.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockPatientsRepository) CreatePatient(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	args := m.Called(ctx, patient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockPatientsRepository) UpdatePatient(ctx context.Context, patientID string, patient *domain.Patient) (*domain.Patient, error) {
	args := m.Called(ctx, patientID, patient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockPatientsRepository) DeletePatient(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

func (m *MockPatientsRepository) ListPatientsByWard(ctx context.Context, ward string) ([]*domain.Patient, error) {
	args := m.Called(ctx, ward)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Patient), args.Error(1)
}

func (m *MockPatientsRepository) ListPatientsByRisk(ctx context.Context, riskLevel string) ([]*domain.Patient, error) {
	args := m.Called(ctx, riskLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Patient), args.Error(1)
}

// MockRoomsRepository 是 RoomsRepository 的 mock 实现
type MockRoomsRepository struct {
	mock.Mock
}

func (m *MockRoomsRepository) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}

func (m *MockRoomsRepository) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomsRepository) CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomsRepository) UpdateRoom(ctx context.Context, roomID string, room *domain.Room) (*domain.Room, error) {
	args := m.Called(ctx, roomID, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomsRepository) DeleteRoom(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *MockRoomsRepository) AssignPatient(ctx context.Context, roomID, patientID string) error {
	args := m.Called(ctx, roomID, patientID)
	return args.Error(0)
}

func (m *MockRoomsRepository) UnassignPatient(ctx context.Context, roomID, patientID string) error {
	args := m.Called(ctx, roomID, patientID)
	return args.Error(0)
}

func (m *MockRoomsRepository) AssignDevice(ctx context.Context, roomID, deviceID string) error {
	args := m.Called(ctx, roomID, deviceID)
	return args.Error(0)
}
