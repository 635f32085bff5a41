package repository

import (
	"context"

	"smarthospital-client/internal/domain"
)

// PatientsRepository 患者 Repository 接口
// 错误按 client 包的分类原样上抛，本层只负责类型化
type PatientsRepository interface {
	ListPatients(ctx context.Context) ([]*domain.Patient, error)
	GetPatient(ctx context.Context, patientID string) (*domain.Patient, error)
	CreatePatient(ctx context.Context, patient *domain.Patient) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, patientID string, patient *domain.Patient) (*domain.Patient, error)
	DeletePatient(ctx context.Context, patientID string) error

	// 子查询
	ListPatientsByWard(ctx context.Context, ward string) ([]*domain.Patient, error)
	ListPatientsByRisk(ctx context.Context, riskLevel string) ([]*domain.Patient, error)
}
