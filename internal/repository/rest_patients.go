package repository

import (
	"context"
	"fmt"

	"smarthospital-client/internal/client"
	"smarthospital-client/internal/domain"

	"go.uber.org/zap"
)

type RestPatientsRepo struct {
	client *client.Client
	logger *zap.Logger
}

func NewRestPatientsRepo(c *client.Client, logger *zap.Logger) *RestPatientsRepo {
	return &RestPatientsRepo{client: c, logger: logger}
}

func (r *RestPatientsRepo) ListPatients(ctx context.Context) ([]*domain.Patient, error) {
	var patients []*domain.Patient
	if err := r.client.Get(ctx, "/patients", &patients); err != nil {
		return nil, err
	}
	normalizePatients(patients)
	return patients, nil
}

func (r *RestPatientsRepo) GetPatient(ctx context.Context, patientID string) (*domain.Patient, error) {
	var patient domain.Patient
	if err := r.client.Get(ctx, fmt.Sprintf("/patients/%s", patientID), &patient); err != nil {
		return nil, err
	}
	patient.Normalize()
	return &patient, nil
}

func (r *RestPatientsRepo) CreatePatient(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	var created domain.Patient
	if err := r.client.Post(ctx, "/patients", patient, &created); err != nil {
		return nil, err
	}
	created.Normalize()
	return &created, nil
}

func (r *RestPatientsRepo) UpdatePatient(ctx context.Context, patientID string, patient *domain.Patient) (*domain.Patient, error) {
	var updated domain.Patient
	if err := r.client.Put(ctx, fmt.Sprintf("/patients/%s", patientID), patient, &updated); err != nil {
		return nil, err
	}
	updated.Normalize()
	return &updated, nil
}

func (r *RestPatientsRepo) DeletePatient(ctx context.Context, patientID string) error {
	return r.client.Delete(ctx, fmt.Sprintf("/patients/%s", patientID), nil)
}

func (r *RestPatientsRepo) ListPatientsByWard(ctx context.Context, ward string) ([]*domain.Patient, error) {
	var patients []*domain.Patient
	if err := r.client.Get(ctx, fmt.Sprintf("/patients/ward/%s", ward), &patients); err != nil {
		return nil, err
	}
	normalizePatients(patients)
	return patients, nil
}

func (r *RestPatientsRepo) ListPatientsByRisk(ctx context.Context, riskLevel string) ([]*domain.Patient, error) {
	var patients []*domain.Patient
	if err := r.client.Get(ctx, fmt.Sprintf("/patients/risk/%s", riskLevel), &patients); err != nil {
		return nil, err
	}
	normalizePatients(patients)
	return patients, nil
}

func normalizePatients(patients []*domain.Patient) {
	for _, p := range patients {
		p.Normalize()
	}
}
