package domain

// 病房类型
const (
	RoomTypeICU       = "icu"
	RoomTypeER        = "er"
	RoomTypeSurgery   = "surgery"
	RoomTypeIsolation = "isolation"
	RoomTypeGeneral   = "general"
)

// 病房状态
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
	RoomStatusReserved    = "reserved"
)

// Room 病房领域模型（后端 /rooms 资源）
type Room struct {
	ID         string   `json:"id"`
	RoomNumber string   `json:"roomNumber"`
	RoomType   string   `json:"type"`
	Floor      int      `json:"floor"`
	Capacity   int      `json:"capacity"`
	Status     string   `json:"status"`
	BedIDs     []string `json:"beds"`
}
