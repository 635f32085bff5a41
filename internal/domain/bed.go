package domain

// 床位状态
const (
	BedStatusAvailable   = "available"
	BedStatusOccupied    = "occupied"
	BedStatusMaintenance = "maintenance"
	BedStatusCleaning    = "cleaning"
)

// Bed 床位领域模型（后端 /beds 资源）
// 约束：PatientID 非空 ⇔ 恰有一名患者的 (RoomID, BedID) 等于 (bed.RoomID, bed.ID)
type Bed struct {
	ID        string  `json:"id"`
	RoomID    string  `json:"roomId"`
	BedNumber string  `json:"bedNumber"`
	BedType   string  `json:"type"`
	Status    string  `json:"status"`
	PatientID *string `json:"patientId,omitempty"`
}

// IsAvailable 床位是否可分配
func (b *Bed) IsAvailable() bool {
	return b.Status == BedStatusAvailable
}
