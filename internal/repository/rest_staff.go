package repository

import (
	"context"
	"fmt"

	"smarthospital-client/internal/client"
	"smarthospital-client/internal/domain"

	"go.uber.org/zap"
)

type RestStaffRepo struct {
	client *client.Client
	logger *zap.Logger
}

func NewRestStaffRepo(c *client.Client, logger *zap.Logger) *RestStaffRepo {
	return &RestStaffRepo{client: c, logger: logger}
}

func (r *RestStaffRepo) ListStaff(ctx context.Context) ([]*domain.Staff, error) {
	var staff []*domain.Staff
	if err := r.client.Get(ctx, "/staff", &staff); err != nil {
		return nil, err
	}
	for _, s := range staff {
		s.Normalize()
	}
	return staff, nil
}

func (r *RestStaffRepo) GetStaff(ctx context.Context, staffID string) (*domain.Staff, error) {
	var staff domain.Staff
	if err := r.client.Get(ctx, fmt.Sprintf("/staff/%s", staffID), &staff); err != nil {
		return nil, err
	}
	staff.Normalize()
	return &staff, nil
}

func (r *RestStaffRepo) CreateStaff(ctx context.Context, staff *domain.Staff) (*domain.Staff, error) {
	var created domain.Staff
	if err := r.client.Post(ctx, "/staff", staff, &created); err != nil {
		return nil, err
	}
	created.Normalize()
	return &created, nil
}

func (r *RestStaffRepo) UpdateStaff(ctx context.Context, staffID string, staff *domain.Staff) (*domain.Staff, error) {
	var updated domain.Staff
	if err := r.client.Put(ctx, fmt.Sprintf("/staff/%s", staffID), staff, &updated); err != nil {
		return nil, err
	}
	updated.Normalize()
	return &updated, nil
}

func (r *RestStaffRepo) DeleteStaff(ctx context.Context, staffID string) error {
	return r.client.Delete(ctx, fmt.Sprintf("/staff/%s", staffID), nil)
}

func (r *RestStaffRepo) GetSchedule(ctx context.Context, staffID string) (map[string]domain.ShiftEntry, error) {
	var schedule map[string]domain.ShiftEntry
	if err := r.client.Get(ctx, fmt.Sprintf("/staff/%s/schedule", staffID), &schedule); err != nil {
		return nil, err
	}
	if schedule == nil {
		schedule = map[string]domain.ShiftEntry{}
	}
	return schedule, nil
}

func (r *RestStaffRepo) ToggleDuty(ctx context.Context, staffID string) (*domain.Staff, error) {
	var updated domain.Staff
	if err := r.client.Post(ctx, fmt.Sprintf("/staff/%s/toggle-duty", staffID), nil, &updated); err != nil {
		return nil, err
	}
	updated.Normalize()
	return &updated, nil
}
