package repository

import (
	"context"
	"fmt"

	"smarthospital-client/internal/client"
	"smarthospital-client/internal/domain"

	"go.uber.org/zap"
)

type RestBedsRepo struct {
	client *client.Client
	logger *zap.Logger
}

func NewRestBedsRepo(c *client.Client, logger *zap.Logger) *RestBedsRepo {
	return &RestBedsRepo{client: c, logger: logger}
}

func (r *RestBedsRepo) ListBeds(ctx context.Context) ([]*domain.Bed, error) {
	var beds []*domain.Bed
	if err := r.client.Get(ctx, "/beds", &beds); err != nil {
		return nil, err
	}
	return beds, nil
}

func (r *RestBedsRepo) GetBed(ctx context.Context, bedID string) (*domain.Bed, error) {
	var bed domain.Bed
	if err := r.client.Get(ctx, fmt.Sprintf("/beds/%s", bedID), &bed); err != nil {
		return nil, err
	}
	return &bed, nil
}

func (r *RestBedsRepo) ListBedsByRoom(ctx context.Context, roomID string) ([]*domain.Bed, error) {
	var beds []*domain.Bed
	if err := r.client.Get(ctx, fmt.Sprintf("/beds/room/%s", roomID), &beds); err != nil {
		return nil, err
	}
	return beds, nil
}

func (r *RestBedsRepo) ListAvailableBedsByRoom(ctx context.Context, roomID string) ([]*domain.Bed, error) {
	var beds []*domain.Bed
	if err := r.client.Get(ctx, fmt.Sprintf("/beds/room/%s/available", roomID), &beds); err != nil {
		return nil, err
	}
	return beds, nil
}

func (r *RestBedsRepo) AssignPatient(ctx context.Context, bedID, patientID string) error {
	return r.client.Post(ctx, fmt.Sprintf("/beds/%s/assign-patient/%s", bedID, patientID), nil, nil)
}

func (r *RestBedsRepo) DischargePatient(ctx context.Context, bedID, patientID string) error {
	return r.client.Delete(ctx, fmt.Sprintf("/beds/%s/discharge-patient/%s", bedID, patientID), nil)
}
