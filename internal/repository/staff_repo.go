package repository

import (
	"context"

	"smarthospital-client/internal/domain"
)

// StaffRepository 员工 Repository 接口
type StaffRepository interface {
	ListStaff(ctx context.Context) ([]*domain.Staff, error)
	GetStaff(ctx context.Context, staffID string) (*domain.Staff, error)
	CreateStaff(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	UpdateStaff(ctx context.Context, staffID string, staff *domain.Staff) (*domain.Staff, error)
	DeleteStaff(ctx context.Context, staffID string) error

	GetSchedule(ctx context.Context, staffID string) (map[string]domain.ShiftEntry, error)
	ToggleDuty(ctx context.Context, staffID string) (*domain.Staff, error)
}
