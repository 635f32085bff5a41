package repository

import (
	"context"
	"fmt"

	"smarthospital-client/internal/client"
	"smarthospital-client/internal/domain"

	"go.uber.org/zap"
)

type RestRoomsRepo struct {
	client *client.Client
	logger *zap.Logger
}

func NewRestRoomsRepo(c *client.Client, logger *zap.Logger) *RestRoomsRepo {
	return &RestRoomsRepo{client: c, logger: logger}
}

func (r *RestRoomsRepo) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	var rooms []*domain.Room
	if err := r.client.Get(ctx, "/rooms", &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RestRoomsRepo) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	var room domain.Room
	if err := r.client.Get(ctx, fmt.Sprintf("/rooms/%s", roomID), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RestRoomsRepo) CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	var created domain.Room
	if err := r.client.Post(ctx, "/rooms", room, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *RestRoomsRepo) UpdateRoom(ctx context.Context, roomID string, room *domain.Room) (*domain.Room, error) {
	var updated domain.Room
	if err := r.client.Put(ctx, fmt.Sprintf("/rooms/%s", roomID), room, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *RestRoomsRepo) DeleteRoom(ctx context.Context, roomID string) error {
	return r.client.Delete(ctx, fmt.Sprintf("/rooms/%s", roomID), nil)
}

func (r *RestRoomsRepo) AssignPatient(ctx context.Context, roomID, patientID string) error {
	return r.client.Post(ctx, fmt.Sprintf("/rooms/%s/assign-patient/%s", roomID, patientID), nil, nil)
}

func (r *RestRoomsRepo) UnassignPatient(ctx context.Context, roomID, patientID string) error {
	return r.client.Delete(ctx, fmt.Sprintf("/rooms/%s/assign-patient/%s", roomID, patientID), nil)
}

func (r *RestRoomsRepo) AssignDevice(ctx context.Context, roomID, deviceID string) error {
	return r.client.Post(ctx, fmt.Sprintf("/rooms/%s/assign-device/%s", roomID, deviceID), nil, nil)
}
