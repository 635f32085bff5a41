package repository

import (
	"context"

	"smarthospital-client/internal/domain"
)

// BedsRepository 床位 Repository 接口
// 床位由后端随病房创建/销毁，本层只读查询加占用/出院两个写操作
type BedsRepository interface {
	ListBeds(ctx context.Context) ([]*domain.Bed, error)
	GetBed(ctx context.Context, bedID string) (*domain.Bed, error)
	ListBedsByRoom(ctx context.Context, roomID string) ([]*domain.Bed, error)
	ListAvailableBedsByRoom(ctx context.Context, roomID string) ([]*domain.Bed, error)

	// AssignPatient 占用床位：bed.patientId、bed.status=occupied、patient.roomId/bedId 由后端一并写入
	AssignPatient(ctx context.Context, bedID, patientID string) error

	// DischargePatient 出院：清空 bed.patientId、bed.status=available、patient.roomId/bedId
	DischargePatient(ctx context.Context, bedID, patientID string) error
}
