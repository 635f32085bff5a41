package repository

import (
	"context"

	"smarthospital-client/internal/domain"
)

// RoomsRepository 病房 Repository 接口
type RoomsRepository interface {
	ListRooms(ctx context.Context) ([]*domain.Room, error)
	GetRoom(ctx context.Context, roomID string) (*domain.Room, error)
	CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error)
	UpdateRoom(ctx context.Context, roomID string, room *domain.Room) (*domain.Room, error)
	DeleteRoom(ctx context.Context, roomID string) error

	// 病房级的绑定操作
	AssignPatient(ctx context.Context, roomID, patientID string) error
	UnassignPatient(ctx context.Context, roomID, patientID string) error
	AssignDevice(ctx context.Context, roomID, deviceID string) error
}
